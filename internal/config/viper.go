package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables: DOCSEARCH_CACHE_BACKEND etc.
const EnvPrefix = "DOCSEARCH"

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads configFile (or config.toml
// from the user config dir or ./.docsearch when configFile is empty), and
// binds environment variables with the DOCSEARCH_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (DOCSEARCH_SEARCH_LIMIT, DOCSEARCH_CACHE_DIR, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configFile string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "docsearch"))
		}
		v.AddConfigPath(".docsearch")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine unless it was asked for explicitly
		if configFile != "" || !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// Load decodes the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks values that would otherwise fail late
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheBackendFS, CacheBackendSQLite, CacheBackendMemory, CacheBackendNone:
	default:
		return fmt.Errorf("%w: unknown cache backend %q", ErrInvalidConfig, c.Cache.Backend)
	}
	if (c.Cache.Backend == CacheBackendFS || c.Cache.Backend == CacheBackendSQLite) && c.Cache.Dir == "" {
		return fmt.Errorf("%w: cache.dir is required for the %s backend", ErrInvalidConfig, c.Cache.Backend)
	}
	if c.Search.Limit < 1 {
		return fmt.Errorf("%w: search.limit must be positive", ErrInvalidConfig)
	}
	if c.Search.MinScore < 0 || c.Search.MinSimilarity < 0 {
		return fmt.Errorf("%w: search thresholds must not be negative", ErrInvalidConfig)
	}
	return nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. Every key needs a default for environment
// variables to reach Unmarshal.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	// Embedding
	v.SetDefault("embedding.provider", d.Embedding.Provider)
	v.SetDefault("embedding.model", d.Embedding.Model)
	v.SetDefault("embedding.endpoint", d.Embedding.Endpoint)
	v.SetDefault("embedding.dimension", d.Embedding.Dimension)
	v.SetDefault("embedding.mode", d.Embedding.Mode)
	v.SetDefault("embedding.worker_command", d.Embedding.WorkerCommand)

	// Cache
	v.SetDefault("cache.backend", d.Cache.Backend)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.memory_entries", d.Cache.MemoryEntries)

	// Index
	v.SetDefault("index.extractor", d.Index.Extractor)
	v.SetDefault("index.workers", d.Index.Workers)

	// Search
	v.SetDefault("search.mode", d.Search.Mode)
	v.SetDefault("search.min_term_length", d.Search.MinTermLength)
	v.SetDefault("search.min_similarity", d.Search.MinSimilarity)
	v.SetDefault("search.min_score", d.Search.MinScore)
	v.SetDefault("search.limit", d.Search.Limit)
}
