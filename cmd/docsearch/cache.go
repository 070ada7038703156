package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/docsearch/internal/config"
	"github.com/dshills/docsearch/internal/storage"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and prune the sqlite cache",
	}
	cmd.AddCommand(newCacheStatsCmd(a), newCachePruneCmd(a), newCacheResetCmd(a))
	return cmd
}

func newCacheStatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openSQLiteStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Entries: %d\nSize:    %.2f MB\nSchema:  %s\nDriver:  %s (%s)\n",
				stats.Entries, float64(stats.TotalBytes)/1024/1024, stats.SchemaVersion, storage.DriverName, storage.BuildMode)
			return nil
		},
	}
	addCacheFlags(cmd)
	return cmd
}

func newCachePruneCmd(a *app) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove cache entries not written recently",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openSQLiteStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			n, err := store.Prune(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d entries\n", n)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Remove entries last written before this long ago")
	addCacheFlags(cmd)
	return cmd
}

func newCacheResetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Remove every cache entry and recreate the schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openSQLiteStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cache reset")
			return nil
		},
	}
	addCacheFlags(cmd)
	return cmd
}

func (a *app) openSQLiteStore() (*storage.SQLiteStore, error) {
	if a.cfg.Cache.Backend != config.CacheBackendSQLite {
		return nil, fmt.Errorf("cache commands need the sqlite backend (cache.backend is %q)", a.cfg.Cache.Backend)
	}
	if err := os.MkdirAll(a.cfg.Cache.Dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return storage.NewSQLiteStore(filepath.Join(a.cfg.Cache.Dir, config.SQLiteFilename))
}

func addCacheFlags(cmd *cobra.Command) {
	config.AddStringFlag(cmd, config.Flags, config.FlagCacheBackend, new(string))
	config.AddStringFlag(cmd, config.Flags, config.FlagCacheDir, new(string))
}
