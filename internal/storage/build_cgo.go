//go:build sqlite_cgo && !purego

package storage

// Compiled with CGO_ENABLED=1 and the sqlite_cgo tag:
//
//	CGO_ENABLED=1 go build -tags sqlite_cgo ./...

import (
	_ "github.com/mattn/go-sqlite3"
)

const (
	// DriverName is the database/sql driver the cache store opens
	DriverName = "sqlite3"

	// BuildMode is reported by `docsearch version` and `cache stats`
	BuildMode = "cgo"
)
