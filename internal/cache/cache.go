package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/dshills/docsearch/internal/logger"
)

// ScopeSeparator joins scope prefixes and the key into a full key
const ScopeSeparator = ":"

// ErrEmptyKey is returned when a cache operation is given an empty key
var ErrEmptyKey = errors.New("cache key cannot be empty")

// Store is a key-value backend for a Cache.
//
// Get reports a missing key as found == false with a nil error. An error
// means the backend failed, never that the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// Cache wraps a Store with scoped keys and single-flight memoization.
//
// Scoped caches share the store and the in-flight table of the cache they
// were derived from, so concurrent Memo calls that resolve to the same full
// key are deduplicated no matter which scope they came through.
type Cache struct {
	store  Store
	scope  []string
	flight *singleflight.Group
	logger *slog.Logger
}

// Option configures a Cache
type Option func(*Cache)

// WithLogger sets the logger used for hit/miss debug output
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = logger.OrNop(l)
	}
}

// New creates a root cache over store
func New(store Store, opts ...Option) *Cache {
	if store == nil {
		store = NoopStore{}
	}
	c := &Cache{
		store:  store,
		flight: &singleflight.Group{},
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Noop returns a cache that never stores anything. Memo still deduplicates
// concurrent calls.
func Noop() *Cache {
	return New(NoopStore{})
}

// Scoped returns a cache whose keys are prefixed with prefix, after any
// prefixes c already carries
func Scoped(c *Cache, prefix string) *Cache {
	return c.Scope(prefix)
}

// Scope is the method form of Scoped
func (c *Cache) Scope(prefix string) *Cache {
	scope := make([]string, len(c.scope), len(c.scope)+1)
	copy(scope, c.scope)
	return &Cache{
		store:  c.store,
		scope:  append(scope, prefix),
		flight: c.flight,
		logger: c.logger,
	}
}

// Prefixes returns the scope chain of c, outermost first
func (c *Cache) Prefixes() []string {
	out := make([]string, len(c.scope))
	copy(out, c.scope)
	return out
}

// FullKey returns key with every scope prefix applied, e.g. "s1:s2:key"
func (c *Cache) FullKey(key string) string {
	if len(c.scope) == 0 {
		return key
	}
	return strings.Join(c.scope, ScopeSeparator) + ScopeSeparator + key
}

// Len reports the number of entries in the underlying store. ok is false for
// stores that cannot count their entries without a query.
func (c *Cache) Len() (n int, ok bool) {
	if s, ok := c.store.(interface{ Len() int }); ok {
		return s.Len(), true
	}
	return 0, false
}

// Get reads the raw value stored under key in this scope
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	return c.store.Get(ctx, c.FullKey(key))
}

// Set writes a raw value under key in this scope
func (c *Cache) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	return c.store.Set(ctx, c.FullKey(key), value)
}

// NoopStore stores nothing and always misses
type NoopStore struct{}

// Get always misses
func (NoopStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value
func (NoopStore) Set(context.Context, string, []byte) error {
	return nil
}
