package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docsearch/internal/cache"
	"github.com/dshills/docsearch/internal/client"
	"github.com/dshills/docsearch/internal/extractor"
	"github.com/dshills/docsearch/internal/indexer"
	"github.com/dshills/docsearch/internal/searcher"
	"github.com/dshills/docsearch/pkg/types"
)

func testIndex(t *testing.T) *indexer.CorpusIndex {
	t.Helper()
	archive, err := indexer.NewArchive([]types.Doc{
		{ID: 1, Text: "# Caching\n\nEmbeddings are cached on disk between runs.", URL: "https://docs.example.com/caching"},
		{ID: 2, Text: "# Tokenizer\n\nQueries are split into lowercase terms.", URL: "https://docs.example.com/tokenizer"},
		{ID: 3, Text: "Released under the MIT license."},
	}, "")
	require.NoError(t, err)

	idx, err := indexer.New(indexer.Options{Extractor: extractor.Markdown()}).Index(context.Background(), archive)
	require.NoError(t, err)
	return idx
}

func newTestServer(t *testing.T, h *indexer.Holder) *Server {
	t.Helper()
	c, err := client.NewWithHolder(h, client.Options{Config: searcher.Config{Mode: searcher.SearchModeKeyword}})
	require.NoError(t, err)
	return NewServer(c, nil)
}

func call(args map[string]interface{}) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func decodeResult(t *testing.T, res *mcp.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &out))
	return out
}

func requireMCPError(t *testing.T, err error, code int) {
	t.Helper()
	var mcpErr *MCPError
	require.True(t, errors.As(err, &mcpErr), "expected MCPError, got %v", err)
	assert.Equal(t, code, mcpErr.Code)
}

func TestHandleSearchDocs(t *testing.T) {
	s := newTestServer(t, indexer.NewHolder(testIndex(t), ""))

	res, err := s.handleSearchDocs(context.Background(), call(map[string]interface{}{
		"query": "lowercase lowercase terms",
		"limit": float64(3),
	}))
	require.NoError(t, err)

	out := decodeResult(t, res)
	assert.Equal(t, float64(1), out["total_results"])
	results := out["results"].([]interface{})
	require.Len(t, results, 1)

	first := results[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["rank"])
	assert.Equal(t, float64(2), first["doc"])
	assert.Equal(t, "https://docs.example.com/tokenizer", first["url"])
	assert.Equal(t, "Tokenizer", first["title"])
}

func TestHandleSearchDocs_InvalidParams(t *testing.T) {
	s := newTestServer(t, indexer.NewHolder(testIndex(t), ""))

	tests := []struct {
		name string
		args map[string]interface{}
		code int
	}{
		{"missing query", map[string]interface{}{}, ErrorCodeEmptyQuery},
		{"blank query", map[string]interface{}{"query": "  "}, ErrorCodeEmptyQuery},
		{"limit too small", map[string]interface{}{"query": "terms", "limit": float64(0)}, ErrorCodeInvalidParams},
		{"limit too large", map[string]interface{}{"query": "terms", "limit": float64(MaxSearchLimit + 1)}, ErrorCodeInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.handleSearchDocs(context.Background(), call(tt.args))
			requireMCPError(t, err, tt.code)
		})
	}
}

func TestHandleGetDoc(t *testing.T) {
	s := newTestServer(t, indexer.NewHolder(testIndex(t), ""))

	res, err := s.handleGetDoc(context.Background(), call(map[string]interface{}{"id": float64(1)}))
	require.NoError(t, err)
	out := decodeResult(t, res)
	assert.Equal(t, "Caching", out["title"])
	assert.Equal(t, "https://docs.example.com/caching", out["url"])
	assert.Len(t, out["chunks"], 1)

	_, err = s.handleGetDoc(context.Background(), call(map[string]interface{}{"id": float64(9)}))
	requireMCPError(t, err, ErrorCodeDocNotFound)

	_, err = s.handleGetDoc(context.Background(), call(map[string]interface{}{"id": "one"}))
	requireMCPError(t, err, ErrorCodeInvalidParams)

	_, err = s.handleGetDoc(context.Background(), call(map[string]interface{}{"id": 1.5}))
	requireMCPError(t, err, ErrorCodeInvalidParams)
}

func TestHandleRelatedDocs(t *testing.T) {
	s := newTestServer(t, indexer.NewHolder(testIndex(t), ""))

	res, err := s.handleRelatedDocs(context.Background(), call(map[string]interface{}{
		"filename": "notes.txt",
		"content":  "Queries are split into lowercase terms, lowercase terms are scored.",
	}))
	require.NoError(t, err)
	out := decodeResult(t, res)
	annotations := out["annotations"].([]interface{})
	require.Len(t, annotations, 1)
	assert.Equal(t, "Tokenizer", annotations[0].(map[string]interface{})["title"])

	_, err = s.handleRelatedDocs(context.Background(), call(map[string]interface{}{"content": "x"}))
	requireMCPError(t, err, ErrorCodeInvalidParams)
}

func TestHandleGetStatus(t *testing.T) {
	s := newTestServer(t, indexer.NewHolder(testIndex(t), ""))

	res, err := s.handleGetStatus(context.Background(), call(nil))
	require.NoError(t, err)
	out := decodeResult(t, res)
	assert.Equal(t, float64(3), out["docs_count"])
	assert.Equal(t, float64(3), out["chunks_count"])
	assert.Equal(t, float64(0), out["embeddings_count"])
	assert.Equal(t, []interface{}{searcher.KeywordMethodName}, out["search_methods"])
	assert.NotContains(t, out, "source")
	assert.NotContains(t, out, "cache_entries")
}

func TestHandleGetStatus_CacheEntries(t *testing.T) {
	store := cache.NewMemoryStore(10)
	require.NoError(t, store.Set(context.Background(), "k", []byte("v")))
	c, err := client.New(testIndex(t), client.Options{
		Cache:  cache.New(store),
		Config: searcher.Config{Mode: searcher.SearchModeKeyword},
	})
	require.NoError(t, err)

	res, err := NewServer(c, nil).handleGetStatus(context.Background(), call(nil))
	require.NoError(t, err)
	out := decodeResult(t, res)
	assert.Equal(t, float64(1), out["cache_entries"])
}

func TestHandleReloadIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, testIndex(t).Save(f))
	require.NoError(t, f.Close())

	s := newTestServer(t, indexer.NewHolder(&indexer.CorpusIndex{}, path))

	res, err := s.handleReloadIndex(context.Background(), call(nil))
	require.NoError(t, err)
	out := decodeResult(t, res)
	assert.Equal(t, true, out["reloaded"])
	assert.Equal(t, float64(3), out["docs_count"])

	// Without a source there is nothing to reload from
	fixed := newTestServer(t, indexer.NewHolder(testIndex(t), ""))
	_, err = fixed.handleReloadIndex(context.Background(), call(nil))
	requireMCPError(t, err, ErrorCodeInvalidParams)
}

func TestServer_ListenStopsOnCancel(t *testing.T) {
	s := newTestServer(t, indexer.NewHolder(testIndex(t), ""))
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- s.Listen(ctx, inR, outW) }()

	go func() {
		_, _ = io.WriteString(inW, `{"jsonrpc":"2.0","id":1,"method":"ping"}`+"\n")
	}()
	line, err := bufio.NewReader(outR).ReadString('\n')
	require.NoError(t, err)
	assert.Contains(t, line, `"id":1`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
