package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dshills/docsearch/internal/cache"
	"github.com/dshills/docsearch/internal/storage"
)

// SQLiteFilename is the database file of the sqlite backend inside cache.dir
const SQLiteFilename = "cache.db"

// OpenCache opens the configured cache store. The returned close function
// releases the store and is never nil.
func (c *CacheConfig) OpenCache(log *slog.Logger) (*cache.Cache, func() error, error) {
	noClose := func() error { return nil }

	switch c.Backend {
	case CacheBackendNone:
		return cache.Noop(), noClose, nil
	case CacheBackendMemory:
		return cache.New(cache.NewMemoryStore(c.MemoryEntries), cache.WithLogger(log)), noClose, nil
	case CacheBackendFS:
		return cache.New(cache.NewFileSystemStore(filepath.Join(c.Dir, "entries")), cache.WithLogger(log)), noClose, nil
	case CacheBackendSQLite:
		if err := os.MkdirAll(c.Dir, 0o700); err != nil {
			return nil, nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		store, err := storage.NewSQLiteStore(filepath.Join(c.Dir, SQLiteFilename))
		if err != nil {
			return nil, nil, err
		}
		return cache.New(store, cache.WithLogger(log)), store.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown cache backend %q", ErrInvalidConfig, c.Backend)
	}
}
