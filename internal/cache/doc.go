// Package cache provides the scoped, content-addressed cache that makes
// extraction, embedding and index builds idempotent.
//
// # Stores
//
// A Store is a plain key-value backend. Get distinguishes a miss (found is
// false, err is nil) from a failure (err is non-nil); the two are never
// conflated. Implementations in this package:
//   - FileSystemStore: one file per key under a directory
//   - MemoryStore: bounded LRU, for tests and long-running servers
//   - NoopStore: stores nothing
//
// The storage package adds a SQLite-backed store.
//
// # Scoping
//
// Scoped caches prefix their keys and compose:
//
//	c := cache.New(store)
//	s := cache.Scoped(cache.Scoped(c, "s1"), "s2")
//	s.FullKey("k") // "s1:s2:k"
//
// # Memoization
//
// Memo returns the cached value for a key or computes, stores and returns
// it. Concurrent calls for the same full key run the producer once and share
// its result:
//
//	idx, err := cache.Memo(ctx, c, "tfidfIndex:"+id, func(ctx context.Context) (*tfidf.Index, error) {
//	    return tfidf.Build(docs), nil
//	})
//
// Values are JSON encoded unless WithCodec says otherwise; VectorCodec packs
// embeddings as little-endian float32.
//
// # Content IDs
//
// ContentID hashes text with SHA-256. Keys built from content IDs change
// exactly when the content changes, so entries never need explicit
// invalidation.
package cache
