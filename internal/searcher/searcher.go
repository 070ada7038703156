package searcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dshills/docsearch/internal/cache"
	"github.com/dshills/docsearch/internal/embedder"
	"github.com/dshills/docsearch/internal/indexer"
	"github.com/dshills/docsearch/internal/logger"
	"github.com/dshills/docsearch/pkg/types"
)

// SearchMode defines which methods a Searcher runs
type SearchMode string

const (
	SearchModeHybrid     SearchMode = "hybrid"     // Keyword + embeddings, scores summed
	SearchModeKeyword    SearchMode = "keyword"    // TF-IDF only
	SearchModeEmbeddings SearchMode = "embeddings" // Embedding similarity only
)

// Method names, also used as the cache scope of each method
const (
	KeywordMethodName    = "keywordSearch"
	EmbeddingsMethodName = "embeddingsSearch"
)

// Defaults for Config
const (
	DefaultMinTermLength = 3
	DefaultMinSimilarity = 0.25
	DefaultMinScore      = 0.3
)

var (
	ErrUnknownMode = errors.New("unknown search mode")
	ErrNoEmbedder  = errors.New("search mode requires an embedder")
)

// Options are passed to every Method.Search call
type Options struct {
	// Cache is scoped to the method being run
	Cache  *cache.Cache
	Logger *slog.Logger
}

// Method is a single search strategy over a CorpusIndex
type Method interface {
	Name() string
	Search(ctx context.Context, idx *indexer.CorpusIndex, query types.Query, opts Options) ([]types.SearchResult, error)
}

// Config holds the tunable thresholds of the search methods
type Config struct {
	Mode SearchMode

	// MinTermLength drops shorter query terms from keyword search
	MinTermLength int

	// MinSimilarity is the lowest cosine similarity embeddings search keeps
	MinSimilarity float64

	// MinScore is the lowest combined score a result needs to be returned
	MinScore float64
}

// DefaultConfig returns the default search configuration
func DefaultConfig() Config {
	return Config{
		Mode:          SearchModeHybrid,
		MinTermLength: DefaultMinTermLength,
		MinSimilarity: DefaultMinSimilarity,
		MinScore:      DefaultMinScore,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Mode == "" {
		c.Mode = d.Mode
	}
	if c.MinTermLength <= 0 {
		c.MinTermLength = d.MinTermLength
	}
	if c.MinSimilarity == 0 {
		c.MinSimilarity = d.MinSimilarity
	}
	if c.MinScore == 0 {
		c.MinScore = d.MinScore
	}
	return c
}

// Searcher runs the configured methods against an index and fuses their results
type Searcher struct {
	methods  []Method
	minScore float64
	cache    *cache.Cache
	logger   *slog.Logger
}

// NewSearcher creates a Searcher. emb may be nil for keyword-only search;
// hybrid mode then falls back to keyword search.
func NewSearcher(emb embedder.Embedder, cfg Config, c *cache.Cache, log *slog.Logger) (*Searcher, error) {
	cfg = cfg.withDefaults()
	log = logger.OrNop(log)
	if c == nil {
		c = cache.Noop()
	}

	keyword := &Keyword{MinTermLength: cfg.MinTermLength}
	var methods []Method
	switch cfg.Mode {
	case SearchModeHybrid:
		methods = append(methods, keyword)
		if emb != nil {
			methods = append(methods, &Embeddings{Embedder: emb, MinSimilarity: cfg.MinSimilarity})
		} else {
			log.Warn("no embedder configured, using keyword search only")
		}
	case SearchModeKeyword:
		methods = append(methods, keyword)
	case SearchModeEmbeddings:
		if emb == nil {
			return nil, ErrNoEmbedder
		}
		methods = append(methods, &Embeddings{Embedder: emb, MinSimilarity: cfg.MinSimilarity})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMode, cfg.Mode)
	}

	return &Searcher{
		methods:  methods,
		minScore: cfg.MinScore,
		cache:    c,
		logger:   log,
	}, nil
}

// Methods returns the names of the methods the searcher runs
func (s *Searcher) Methods() []string {
	names := make([]string, len(s.methods))
	for i, m := range s.methods {
		names[i] = m.Name()
	}
	return names
}

// Search runs every method and returns the fused results, best first. A
// blank query has no results.
func (s *Searcher) Search(ctx context.Context, idx *indexer.CorpusIndex, query types.Query) ([]types.SearchResult, error) {
	if strings.TrimSpace(query.Text) == "" {
		return []types.SearchResult{}, nil
	}
	return Multi(ctx, s.methods, idx, query, MultiOptions{
		Cache:    s.cache,
		Logger:   s.logger,
		MinScore: s.minScore,
	})
}
