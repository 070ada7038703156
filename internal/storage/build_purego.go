//go:build purego || !sqlite_cgo

package storage

// The default build. modernc.org/sqlite is a translation of SQLite to Go, so
// the binary cross-compiles and no C compiler is needed.

import (
	_ "modernc.org/sqlite"
)

const (
	// DriverName is the database/sql driver the cache store opens
	DriverName = "sqlite"

	// BuildMode is reported by `docsearch version` and `cache stats`
	BuildMode = "purego"
)
