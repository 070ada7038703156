package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
)

// SQLiteStore is a cache.Store that keeps every entry in one SQLite file
type SQLiteStore struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	return db, nil
}

// NewSQLiteStore opens (or creates) the database at dbPath and brings its
// schema up to date. ":memory:" gives a private in-memory store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key. A missing key is a miss, not an error.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM cache_entries WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cache entry: %w", err)
	}
	return value, true, nil
}

// Set inserts or replaces the value under key
func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, size, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			size = excluded.size,
			updated_at = excluded.updated_at
	`, key, value, len(value))
	if err != nil {
		return fmt.Errorf("failed to set cache entry: %w", err)
	}
	return nil
}

// Stats summarizes the store contents
type Stats struct {
	Entries       int
	TotalBytes    int64
	SchemaVersion string
}

// Stats returns the number of entries, their total size and the schema version
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*), COALESCE(SUM(size), 0) FROM cache_entries").Scan(&st.Entries, &st.TotalBytes)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read cache stats: %w", err)
	}
	v, err := SchemaVersion(ctx, s.db)
	if err != nil {
		return Stats{}, err
	}
	st.SchemaVersion = v.String()
	return st, nil
}

// Reset removes every entry by rolling back all migrations and applying them
// again, which also repairs a schema left half-migrated
func (s *SQLiteStore) Reset(ctx context.Context) error {
	empty := semver.MustParse("0.0.0")
	for {
		v, err := SchemaVersion(ctx, s.db)
		if err != nil {
			return err
		}
		if v.Equal(empty) {
			break
		}
		if err := RollbackMigration(ctx, s.db); err != nil {
			return fmt.Errorf("failed to reset cache: %w", err)
		}
	}
	return ApplyMigrations(ctx, s.db)
}

// Prune deletes entries not written since before cutoff and returns how many
// were removed
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM cache_entries WHERE updated_at < ?", cutoff.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
