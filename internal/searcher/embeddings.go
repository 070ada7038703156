package searcher

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/docsearch/internal/embedder"
	"github.com/dshills/docsearch/internal/indexer"
	"github.com/dshills/docsearch/internal/terms"
	"github.com/dshills/docsearch/pkg/types"
)

// Embeddings scores chunks by cosine similarity to the query embedding
type Embeddings struct {
	Embedder embedder.Embedder

	// MinSimilarity is the cosine similarity a chunk needs to be returned.
	// Zero means DefaultMinSimilarity.
	MinSimilarity float64
}

func (e *Embeddings) Name() string { return EmbeddingsMethodName }

// QueryText is the text embedded for a query: an optional "// <file>" line
// naming the active file, then the query, with code keywords removed
func QueryText(query types.Query) string {
	text := query.Text
	if name := query.ActiveFilename(); name != "" {
		text = "// " + name + "\n" + text
	}
	return terms.WithoutCodeStopwords(text)
}

// Search returns chunks at or above MinSimilarity, most similar first.
// Chunks without embeddings or with a different dimension are skipped.
func (e *Embeddings) Search(ctx context.Context, idx *indexer.CorpusIndex, query types.Query, opts Options) ([]types.SearchResult, error) {
	text := QueryText(query)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	vec, err := embedder.Cached(e.Embedder, opts.Cache).Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	similarity := embedder.CosineWith(vec)
	minSimilarity := e.MinSimilarity
	if minSimilarity == 0 {
		minSimilarity = DefaultMinSimilarity
	}

	var results []types.SearchResult
	for _, doc := range idx.Docs {
		for i, chunk := range doc.Chunks {
			if len(chunk.Embeddings) != len(vec) {
				continue
			}
			score := similarity(chunk.Embeddings)
			if score >= minSimilarity {
				results = append(results, types.SearchResult{
					Doc:     doc.Doc.ID,
					Chunk:   i,
					Score:   score,
					Excerpt: chunk.Text,
				})
			}
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}
