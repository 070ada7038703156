package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docsearch/internal/indexer"
)

const testArchive = `{
  "description": "test docs",
  "docs": [
    {"id": 1, "text": "Caching caching layer", "url": "https://example.com/caching"},
    {"id": 2, "text": "Tokenizer splits words", "url": "https://example.com/tokenizer"},
    {"id": 3, "text": "Installation guide"}
  ]
}`

// isolate keeps user config files and DOCSEARCH_* variables out of the test
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DOCSEARCH_EMBEDDING_PROVIDER", "local")
	t.Chdir(t.TempDir())
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func createIndex(t *testing.T) string {
	t.Helper()
	stdout, stderr, err := execute(t, testArchive,
		"create-index", "--cache-backend", "none", "--extractor", "none", "--no-embeddings")
	require.NoError(t, err, stderr)

	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, os.WriteFile(path, []byte(stdout), 0o600))
	return path
}

func TestCreateIndex(t *testing.T) {
	isolate(t)

	stdout, stderr, err := execute(t, testArchive,
		"create-index", "--cache-backend", "none", "--extractor", "none", "--no-embeddings")
	require.NoError(t, err)

	assert.Contains(t, stderr, `# Using archive: 3 docs, content ID `)
	assert.Contains(t, stderr, `description "test docs"`)
	assert.Contains(t, stderr, "# Index complete [")

	ci, err := indexer.Load(strings.NewReader(stdout))
	require.NoError(t, err)
	require.Len(t, ci.Docs, 3)
	assert.Equal(t, 3, ci.ChunkCount())
	assert.Empty(t, ci.Docs[0].Chunks[0].Embeddings)
}

func TestCreateIndex_InvalidArchive(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, `{"docs": [`, "create-index", "--cache-backend", "none", "--no-embeddings")
	require.Error(t, err)
	assert.ErrorIs(t, err, indexer.ErrInvalidArchive)
}

func TestSearch(t *testing.T) {
	isolate(t)
	index := createIndex(t)

	stdout, stderr, err := execute(t, "",
		"search", index, "caching", "--cache-backend", "none", "--search-mode", "keyword")
	require.NoError(t, err)

	assert.Equal(t, "# 1 results\n", stderr)
	assert.Equal(t, "#1 [0.462] https://example.com/caching#chunk0\n\tCaching caching layer\n", stdout)
}

func TestSearch_NoResults(t *testing.T) {
	isolate(t)
	index := createIndex(t)

	stdout, stderr, err := execute(t, "",
		"search", index, "kubernetes", "--cache-backend", "none", "--search-mode", "keyword")
	require.NoError(t, err)
	assert.Equal(t, "# 0 results\n", stderr)
	assert.Empty(t, stdout)
}

func TestSearch_Args(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "search", "index.json")
	require.Error(t, err)

	_, _, err = execute(t, "", "search", filepath.Join(t.TempDir(), "missing.json"), "query", "--cache-backend", "none")
	require.Error(t, err)
}

func TestRelated(t *testing.T) {
	isolate(t)
	index := createIndex(t)

	source := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(source, []byte("Caching caching layer notes\n"), 0o600))

	stdout, _, err := execute(t, "",
		"related", index, source, "--cache-backend", "none", "--search-mode", "keyword")
	require.NoError(t, err)
	assert.Contains(t, stdout, source+":1-1\t[")
	assert.Contains(t, stdout, "<https://example.com/caching>")
	assert.NotContains(t, stdout, "tokenizer")
}

func TestCacheCommands(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	// Indexing memoizes the indexed docs and the TF-IDF statistics
	_, _, err := execute(t, testArchive, "create-index",
		"--cache-backend", "sqlite", "--cache-dir", dir, "--extractor", "none", "--no-embeddings")
	require.NoError(t, err)

	stdout, _, err := execute(t, "", "cache", "stats", "--cache-backend", "sqlite", "--cache-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Entries: 2\n")
	assert.Contains(t, stdout, "Schema:  1.1.0\n")

	stdout, _, err = execute(t, "", "cache", "reset", "--cache-backend", "sqlite", "--cache-dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Cache reset\n", stdout)

	stdout, _, err = execute(t, "", "cache", "stats", "--cache-backend", "sqlite", "--cache-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Entries: 0\n")

	_, _, err = execute(t, "", "cache", "stats", "--cache-backend", "memory")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Version: dev")
	assert.Contains(t, stdout, "SQLite Driver: ")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab...", truncate("abc", 2))
	assert.Equal(t, "éé...", truncate("ééé", 2))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "", indent("", "\t"))
	assert.Equal(t, "\ta\n\tb", indent("a\nb", "\t"))
}
