package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoryEntries is the capacity used when NewMemoryStore is given a
// non-positive size
const DefaultMemoryEntries = 10000

// MemoryStore is a bounded in-process store with LRU eviction
type MemoryStore struct {
	cache *lru.Cache[string, []byte]
}

// NewMemoryStore creates a store holding at most size entries
func NewMemoryStore(size int) *MemoryStore {
	if size <= 0 {
		size = DefaultMemoryEntries
	}
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		// Only fails for non-positive sizes
		cache, _ = lru.New[string, []byte](DefaultMemoryEntries)
	}
	return &MemoryStore{cache: cache}
}

// Get returns a copy of the value under key
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set stores a copy of value under key
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	s.cache.Add(key, v)
	return nil
}

// Len returns the number of entries held
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}
