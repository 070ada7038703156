package client

import (
	"context"
	"log/slog"

	"github.com/dshills/docsearch/internal/cache"
	"github.com/dshills/docsearch/internal/embedder"
	"github.com/dshills/docsearch/internal/indexer"
	"github.com/dshills/docsearch/internal/logger"
	"github.com/dshills/docsearch/internal/searcher"
	"github.com/dshills/docsearch/pkg/types"
)

// Options configures a Client
type Options struct {
	// Cache memoizes query embeddings. Nil disables caching.
	Cache *cache.Cache

	// Embedder embeds queries. It must be the embedder the index was built
	// with. Nil restricts search to keywords.
	Embedder embedder.Embedder

	Logger *slog.Logger

	// Config holds search thresholds; zero values take the defaults
	Config searcher.Config
}

// Client answers queries against a corpus index
type Client struct {
	holder   *indexer.Holder
	searcher *searcher.Searcher
	cache    *cache.Cache
	logger   *slog.Logger
}

// New creates a client for a fixed index
func New(idx *indexer.CorpusIndex, opts Options) (*Client, error) {
	return NewWithHolder(indexer.NewHolder(idx, ""), opts)
}

// NewWithHolder creates a client that always searches the holder's current
// index
func NewWithHolder(h *indexer.Holder, opts Options) (*Client, error) {
	log := logger.OrNop(opts.Logger)
	s, err := searcher.NewSearcher(opts.Embedder, opts.Config, opts.Cache, log)
	if err != nil {
		return nil, err
	}
	return &Client{holder: h, searcher: s, cache: opts.Cache, logger: log}, nil
}

// Index returns the index the client currently searches
func (c *Client) Index() *indexer.CorpusIndex {
	return c.holder.Index()
}

// Source returns the file path or URL the index was loaded from, if any
func (c *Client) Source() string {
	return c.holder.Source()
}

// Methods returns the names of the search methods the client runs
func (c *Client) Methods() []string {
	return c.searcher.Methods()
}

// CacheEntries returns the number of cached entries when the cache store can
// report it
func (c *Client) CacheEntries() (int, bool) {
	if c.cache == nil {
		return 0, false
	}
	return c.cache.Len()
}

// Reload reloads the index from its source
func (c *Client) Reload(ctx context.Context) (*indexer.CorpusIndex, error) {
	return c.holder.Reload(ctx)
}

// Doc returns the indexed doc with the given ID
func (c *Client) Doc(id types.DocID) (*types.IndexedDoc, error) {
	return c.holder.Index().Doc(id)
}

// Search returns the results for query against the current index, best first
func (c *Client) Search(ctx context.Context, query types.Query) ([]types.SearchResult, error) {
	return c.SearchIn(ctx, c.holder.Index(), query)
}

// SearchIn searches idx, normally a snapshot taken with Index. Callers that
// resolve results to docs afterwards should search and resolve against the
// same snapshot, since a reload may swap the current index in between.
func (c *Client) SearchIn(ctx context.Context, idx *indexer.CorpusIndex, query types.Query) ([]types.SearchResult, error) {
	return c.searcher.Search(ctx, idx, query)
}
