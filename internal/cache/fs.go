package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystemStore keeps one file per key under a base directory
type FileSystemStore struct {
	baseDir string
}

// NewFileSystemStore creates a store rooted at baseDir. The directory is
// created on first write.
func NewFileSystemStore(baseDir string) *FileSystemStore {
	return &FileSystemStore{baseDir: baseDir}
}

// Path returns the file that holds key
func (s *FileSystemStore) Path(key string) string {
	return filepath.Join(s.baseDir, strings.ReplaceAll(key, "/", "_")+".json")
}

// Get reads the file for key. A missing file is a miss.
func (s *FileSystemStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache file: %w", err)
	}
	return data, true, nil
}

// Set writes the file for key, replacing it atomically
func (s *FileSystemStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.baseDir, 0o700); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.baseDir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(key)); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}
