// Package storage provides a SQLite-backed cache.Store.
//
// A single database file holds every cache entry (extracted documents,
// chunk embeddings, TF-IDF indexes) keyed by its full scoped cache key.
// This is the persistent alternative to cache.FileSystemStore when a cache
// directory with one file per key is undesirable.
//
// # Database Schema
//
// Tables:
//   - schema_version: applied migration versions
//   - cache_entries: key, value blob, size, created/updated timestamps
//
// Migrations are versioned with semantic versions and applied in order on
// open; SchemaVersion reports the highest applied one.
//
// # Basic Usage
//
//	store, err := storage.NewSQLiteStore("~/.cache/docsearch/cache.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	c := cache.New(store)
//
// # Build Modes
//
// Built with the sqlite_cgo tag and CGO, the mattn/go-sqlite3 driver is
// used. Otherwise the pure Go modernc.org/sqlite driver is used and no C
// compiler is required. BuildMode and DriverName report the choice.
package storage
