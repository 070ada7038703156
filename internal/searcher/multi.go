package searcher

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/docsearch/internal/cache"
	"github.com/dshills/docsearch/internal/indexer"
	"github.com/dshills/docsearch/internal/logger"
	"github.com/dshills/docsearch/pkg/types"
)

// MultiOptions configures Multi
type MultiOptions struct {
	Cache  *cache.Cache
	Logger *slog.Logger

	// MinScore is the fused score a result needs to be kept. Zero means
	// DefaultMinScore.
	MinScore float64
}

type resultKey struct {
	doc   types.DocID
	chunk types.ChunkIndex
}

// Multi runs methods concurrently and fuses their results.
//
// Each method gets the cache scoped to its name. Scores for the same chunk
// are summed across methods and the per-method scores are kept in Scores.
// Results below MinScore are dropped; the rest are sorted by score, ties by
// doc ID and then chunk index.
func Multi(ctx context.Context, methods []Method, idx *indexer.CorpusIndex, query types.Query, opts MultiOptions) ([]types.SearchResult, error) {
	log := logger.OrNop(opts.Logger)
	c := opts.Cache
	if c == nil {
		c = cache.Noop()
	}

	perMethod := make([][]types.SearchResult, len(methods))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range methods {
		g.Go(func() error {
			start := time.Now()
			results, err := m.Search(gctx, idx, query, Options{
				Cache:  cache.Scoped(c, m.Name()),
				Logger: log,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", m.Name(), err)
			}
			log.Debug("search", "method", m.Name(), "results", len(results), "took", time.Since(start))
			perMethod[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	minScore := opts.MinScore
	if minScore == 0 {
		minScore = DefaultMinScore
	}
	return fuse(methods, perMethod, minScore), nil
}

func fuse(methods []Method, perMethod [][]types.SearchResult, minScore float64) []types.SearchResult {
	byKey := make(map[resultKey]*types.SearchResult)
	var order []resultKey

	for i, results := range perMethod {
		name := methods[i].Name()
		for _, r := range results {
			k := resultKey{doc: r.Doc, chunk: r.Chunk}
			fused, ok := byKey[k]
			if !ok {
				fused = &types.SearchResult{
					Doc:     r.Doc,
					Chunk:   r.Chunk,
					Scores:  make(map[string]float64, len(methods)),
					Excerpt: r.Excerpt,
				}
				byKey[k] = fused
				order = append(order, k)
			}
			fused.Score += r.Score
			fused.Scores[name] += r.Score
		}
	}

	out := make([]types.SearchResult, 0, len(order))
	for _, k := range order {
		if r := byKey[k]; r.Score >= minScore {
			out = append(out, *r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Doc != out[j].Doc {
			return out[i].Doc < out[j].Doc
		}
		return out[i].Chunk < out[j].Chunk
	})
	return out
}
