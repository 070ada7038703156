package embedder

import (
	"context"

	"github.com/dshills/docsearch/internal/cache"
)

// CachedEmbedder memoizes another Embedder per text content
type CachedEmbedder struct {
	Embedder
	cache *cache.Cache
}

// Cached wraps e so that each distinct text is embedded once per cache.
// Concurrent requests for the same text share one call to e. An e that is
// already cached is rewrapped around its underlying embedder, so vectors are
// only memoized in c.
func Cached(e Embedder, c *cache.Cache) *CachedEmbedder {
	if c == nil {
		c = cache.Noop()
	}
	if ce, ok := e.(*CachedEmbedder); ok {
		e = ce.Unwrap()
	}
	return &CachedEmbedder{Embedder: e, cache: c}
}

// Key returns the cache key under which the vector for text is stored
func (c *CachedEmbedder) Key(text string) string {
	return "embed:" + c.Embedder.ID() + ":" + cache.ContentID(text)
}

// Embed returns the cached vector for text, computing it on a miss
func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}
	return cache.Memo(ctx, c.cache, c.Key(text), func(ctx context.Context) ([]float32, error) {
		return c.Embedder.Embed(ctx, text)
	}, cache.VectorCodec())
}

// Unwrap returns the underlying embedder
func (c *CachedEmbedder) Unwrap() Embedder {
	return c.Embedder
}
