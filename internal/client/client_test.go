package client

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docsearch/internal/extractor"
	"github.com/dshills/docsearch/internal/indexer"
	"github.com/dshills/docsearch/internal/searcher"
	"github.com/dshills/docsearch/pkg/types"
)

func testIndex(t *testing.T) *indexer.CorpusIndex {
	t.Helper()
	archive, err := indexer.NewArchive([]types.Doc{
		{ID: 1, Text: "# Caching - Docs\n\nEmbeddings are cached on disk between runs.", URL: "https://docs.example.com/caching"},
		{ID: 2, Text: "# Tokenizer - Docs\n\nQueries are split into lowercase terms.", URL: "https://docs.example.com/tokenizer"},
		{ID: 3, Text: "Released under the MIT license."},
	}, "")
	require.NoError(t, err)

	idx, err := indexer.New(indexer.Options{Extractor: extractor.Markdown()}).Index(context.Background(), archive)
	require.NoError(t, err)
	return idx
}

func keywordClient(t *testing.T, idx *indexer.CorpusIndex) *Client {
	t.Helper()
	c, err := New(idx, Options{Config: searcher.Config{Mode: searcher.SearchModeKeyword}})
	require.NoError(t, err)
	return c
}

func TestClient_Doc(t *testing.T) {
	c := keywordClient(t, testIndex(t))

	d, err := c.Doc(2)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.example.com/tokenizer", d.Doc.URL)
	require.NotNil(t, d.Content)
	assert.Equal(t, "Tokenizer - Docs", d.Content.Title)

	_, err = c.Doc(42)
	assert.ErrorIs(t, err, indexer.ErrDocNotFound)
	assert.Contains(t, err.Error(), "no document with id 42 in corpus")
}

func TestClient_Search(t *testing.T) {
	c := keywordClient(t, testIndex(t))

	results, err := c.Search(context.Background(), types.Query{Text: "lowercase lowercase terms"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Doc)
	assert.Equal(t, 0, results[0].Chunk)
}

func TestClient_SearchInSnapshotAcrossReload(t *testing.T) {
	ctx := context.Background()
	archive, err := indexer.NewArchive([]types.Doc{{ID: 3, Text: "Released under the MIT license."}}, "")
	require.NoError(t, err)
	replacement, err := indexer.New(indexer.Options{}).Index(ctx, archive)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "index.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, replacement.Save(f))
	require.NoError(t, f.Close())

	c, err := NewWithHolder(indexer.NewHolder(testIndex(t), path), Options{
		Config: searcher.Config{Mode: searcher.SearchModeKeyword},
	})
	require.NoError(t, err)

	snapshot := c.Index()
	_, err = c.Reload(ctx)
	require.NoError(t, err)
	require.NotSame(t, snapshot, c.Index())

	query := types.Query{Text: "lowercase lowercase terms"}
	results, err := c.SearchIn(ctx, snapshot, query)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 2, results[0].Doc)

	results, err = c.Search(ctx, query)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClient_Related(t *testing.T) {
	c := keywordClient(t, testIndex(t))
	content := "## Cache\n\nThe embeddings cached on disk are reused between runs of the tool.\n\n" +
		"## Terms\n\nQueries are split into lowercase terms, lowercase terms are scored.\n"

	annotations, err := c.Related(context.Background(), "notes.md", content, 4)
	require.NoError(t, err)
	require.Len(t, annotations, 2)

	titles := []string{annotations[0].Title, annotations[1].Title}
	assert.ElementsMatch(t, []string{"Caching", "Tokenizer"}, titles)

	for _, a := range annotations {
		assert.NotEmpty(t, a.URL)
		assert.NotEmpty(t, a.Detail)
		assert.LessOrEqual(t, a.Range.End, len(content))
		assert.Equal(t, 0, a.Start.Line)
	}
}

func TestClient_RelatedEmptyFile(t *testing.T) {
	c := keywordClient(t, testIndex(t))

	annotations, err := c.Related(context.Background(), "empty.go", "  \n", 4)
	require.NoError(t, err)
	assert.Empty(t, annotations)
}

func TestClient_NoEmbedderForEmbeddingsMode(t *testing.T) {
	_, err := New(testIndex(t), Options{Config: searcher.Config{Mode: searcher.SearchModeEmbeddings}})
	assert.ErrorIs(t, err, searcher.ErrNoEmbedder)
}

func TestAnnotation_TitleFallback(t *testing.T) {
	pos := newPositionCalculator("text")
	r := types.SearchResult{Doc: 1, Excerpt: "the excerpt"}

	tests := []struct {
		name       string
		doc        types.IndexedDoc
		wantTitle  string
		wantDetail string
	}{
		{
			name:       "content title",
			doc:        types.IndexedDoc{Doc: types.DocRef{ID: 1, URL: "u"}, Content: &types.Content{Title: "T", TextContent: "body"}},
			wantTitle:  "T",
			wantDetail: "body",
		},
		{
			name:       "url",
			doc:        types.IndexedDoc{Doc: types.DocRef{ID: 1, URL: "u"}},
			wantTitle:  "u",
			wantDetail: "the excerpt",
		},
		{
			name:       "untitled",
			doc:        types.IndexedDoc{Doc: types.DocRef{ID: 1}},
			wantTitle:  "Untitled",
			wantDetail: "the excerpt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := annotation(&tt.doc, r, types.Range{Start: 0, End: 4}, pos)
			assert.Equal(t, tt.wantTitle, a.Title)
			assert.Equal(t, tt.wantDetail, a.Detail)
		})
	}
}

func TestTrimTitles(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
		want   []string
	}{
		{
			name:   "common site suffix",
			titles: []string{"Install - My Docs", "Usage - My Docs"},
			want:   []string{"Install", "Usage"},
		},
		{
			name:   "single title kept",
			titles: []string{"Install - My Docs"},
			want:   []string{"Install - My Docs"},
		},
		{
			name:   "identical titles kept",
			titles: []string{"Install", "Install"},
			want:   []string{"Install", "Install"},
		},
		{
			name:   "truncated after trimming",
			titles: []string{"A very long title that goes on and on and on forever | Site", "Short | Site"},
			want:   []string{"A very long title that goes on and on and on forev...", "Short"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annotations := make([]Annotation, len(tt.titles))
			for i, title := range tt.titles {
				annotations[i].Title = title
			}
			trimTitles(annotations)

			got := make([]string, len(annotations))
			for i, a := range annotations {
				got[i] = a.Title
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLongestCommonSuffix(t *testing.T) {
	assert.Equal(t, "", longestCommonSuffix(nil))
	assert.Equal(t, "abc", longestCommonSuffix([]string{"abc"}))
	assert.Equal(t, "bc", longestCommonSuffix([]string{"abc", "xbc", "bc"}))
	assert.Equal(t, "", longestCommonSuffix([]string{"abc", "abd"}))
	assert.Equal(t, "é", longestCommonSuffix([]string{"aé", "bé"}))
	// © and é end in the same byte
	assert.Equal(t, "", longestCommonSuffix([]string{"x©", "yé"}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly", truncate("exactly", 7))
	assert.Equal(t, "trunc...", truncate("truncated", 5))
	assert.Equal(t, "héll...", truncate("héllo wörld", 4))
}

func TestPositionCalculator(t *testing.T) {
	pos := newPositionCalculator("ab\ncdé\n\nf")

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{0, 0}},
		{2, Position{0, 2}},
		{3, Position{1, 0}},
		{7, Position{1, 3}},
		{8, Position{2, 0}},
		{9, Position{3, 0}},
		{100, Position{3, 1}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pos(tt.offset), "offset %d", tt.offset)
	}
}
