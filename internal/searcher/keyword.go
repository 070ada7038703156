package searcher

import (
	"context"

	"github.com/dshills/docsearch/internal/indexer"
	"github.com/dshills/docsearch/internal/tfidf"
	"github.com/dshills/docsearch/pkg/types"
)

// Keyword scores chunks by the summed TF-IDF of the query terms
type Keyword struct {
	MinTermLength int
}

func (k *Keyword) Name() string { return KeywordMethodName }

// Search returns every chunk with a positive score, in index order
func (k *Keyword) Search(ctx context.Context, idx *indexer.CorpusIndex, query types.Query, _ Options) ([]types.SearchResult, error) {
	minLength := k.MinTermLength
	if minLength <= 0 {
		minLength = DefaultMinTermLength
	}
	queryTerms := tfidf.QueryTerms(query.Text, minLength)
	if len(queryTerms) == 0 || idx.TFIDF == nil {
		return nil, nil
	}

	var results []types.SearchResult
	for _, doc := range idx.Docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i, chunk := range doc.Chunks {
			score := idx.TFIDF.QueryScore(queryTerms, doc.Doc.ID, i)
			if score > 0 {
				results = append(results, types.SearchResult{
					Doc:     doc.Doc.ID,
					Chunk:   i,
					Score:   score,
					Excerpt: chunk.Text,
				})
			}
		}
	}
	return results, nil
}
