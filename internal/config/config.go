package config

import (
	"os"
	"path/filepath"

	"github.com/dshills/docsearch/internal/embedder"
	"github.com/dshills/docsearch/internal/searcher"
)

// Config represents the docsearch configuration stored as config.toml. The
// TOML layout uses sections for logical grouping.
type Config struct {
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Index     IndexConfig     `mapstructure:"index"`
	Search    SearchConfig    `mapstructure:"search"`
}

// EmbeddingConfig holds embedding provider settings
type EmbeddingConfig struct {
	Provider      string   `mapstructure:"provider"`
	Model         string   `mapstructure:"model"`
	Endpoint      string   `mapstructure:"endpoint"`
	Dimension     int      `mapstructure:"dimension"`
	Mode          string   `mapstructure:"mode"`
	WorkerCommand []string `mapstructure:"worker_command"`
}

// Cache backends
const (
	CacheBackendFS     = "fs"
	CacheBackendSQLite = "sqlite"
	CacheBackendMemory = "memory"
	CacheBackendNone   = "none"
)

// CacheConfig holds cache store settings
type CacheConfig struct {
	Backend string `mapstructure:"backend"`

	// Dir holds the fs cache entries and the sqlite database
	Dir string `mapstructure:"dir"`

	// MemoryEntries bounds the memory backend
	MemoryEntries int `mapstructure:"memory_entries"`
}

// IndexConfig holds corpus indexing settings
type IndexConfig struct {
	Extractor string `mapstructure:"extractor"`
	Workers   int    `mapstructure:"workers"`
}

// SearchConfig holds search thresholds and output settings
type SearchConfig struct {
	Mode          string  `mapstructure:"mode"`
	MinTermLength int     `mapstructure:"min_term_length"`
	MinSimilarity float64 `mapstructure:"min_similarity"`
	MinScore      float64 `mapstructure:"min_score"`
	Limit         int     `mapstructure:"limit"`
}

// NewDefaultConfig returns the configuration used when nothing is set
func NewDefaultConfig() *Config {
	return &Config{
		// An empty provider is detected from the available API keys
		Embedding: EmbeddingConfig{
			Mode: embedder.ModeInProcess,
		},
		Cache: CacheConfig{
			Backend:       CacheBackendFS,
			Dir:           DefaultCacheDir(),
			MemoryEntries: 10000,
		},
		Index: IndexConfig{
			Extractor: "auto",
		},
		Search: SearchConfig{
			Mode:          string(searcher.SearchModeHybrid),
			MinTermLength: searcher.DefaultMinTermLength,
			MinSimilarity: searcher.DefaultMinSimilarity,
			MinScore:      searcher.DefaultMinScore,
			Limit:         5,
		},
	}
}

// DefaultCacheDir returns the user cache directory for docsearch, or a
// directory under the system temp dir when there is none
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "docsearch")
}

// EmbedderConfig converts the embedding section for embedder.New
func (c *Config) EmbedderConfig() embedder.Config {
	return embedder.Config{
		Provider:      c.Embedding.Provider,
		Model:         c.Embedding.Model,
		Endpoint:      c.Embedding.Endpoint,
		Dimension:     c.Embedding.Dimension,
		Mode:          c.Embedding.Mode,
		WorkerCommand: c.Embedding.WorkerCommand,
	}
}

// SearcherConfig converts the search section for searcher.NewSearcher
func (c *Config) SearcherConfig() searcher.Config {
	return searcher.Config{
		Mode:          searcher.SearchMode(c.Search.Mode),
		MinTermLength: c.Search.MinTermLength,
		MinSimilarity: c.Search.MinSimilarity,
		MinScore:      c.Search.MinScore,
	}
}
