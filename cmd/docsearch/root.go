package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/docsearch/internal/cache"
	"github.com/dshills/docsearch/internal/config"
	"github.com/dshills/docsearch/internal/embedder"
	"github.com/dshills/docsearch/internal/logger"
)

const rootLongDesc string = `docsearch indexes a documentation corpus and finds the docs relevant to a
query or to the code you are working on.

Typical workflow:
  docsearch create-index < archive.json > index.json
  docsearch search index.json "how do I configure caching"
  docsearch related index.json internal/cache/fs.go
  docsearch serve --index index.json     Run as an MCP server on stdio`

// app holds the state shared by all commands, set up before each command runs
type app struct {
	configFile string
	debug      bool
	pretty     bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "docsearch",
		Short:         "Search documentation with keyword and embedding search",
		Long:          rootLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "Path to config.toml")
	cmd.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(&a.pretty, "pretty", false, "Human friendly log output")

	cmd.AddCommand(
		newCreateIndexCmd(a),
		newSearchCmd(a),
		newRelatedCmd(a),
		newServeCmd(a),
		newEmbedWorkerCmd(a),
		newCacheCmd(a),
		newVersionCmd(),
	)

	return cmd
}

// load reads the configuration, binding the flags defined on cmd
func (a *app) load(cmd *cobra.Command) error {
	v, err := config.InitViper(a.configFile)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(config.Flags))
	for key := range config.Flags {
		keys = append(keys, key)
	}
	config.BindRegisteredFlags(v, cmd, config.Flags, keys)

	a.cfg, err = config.Load(v)
	if err != nil {
		return err
	}

	a.logger = logger.New(
		logger.WithDebug(a.debug),
		logger.WithPretty(a.pretty),
		logger.WithWriter(cmd.ErrOrStderr()),
	)
	return nil
}

func (a *app) openCache() (*cache.Cache, func() error, error) {
	return a.cfg.Cache.OpenCache(a.logger)
}

// newEmbedder creates the configured embedder. In worker mode without an
// explicit command the worker is this executable's embed-worker command.
func (a *app) newEmbedder(ctx context.Context) (embedder.Embedder, error) {
	ecfg := a.cfg.EmbedderConfig()
	if ecfg.Mode == embedder.ModeWorker && len(ecfg.WorkerCommand) == 0 {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to locate executable for embed worker: %w", err)
		}
		ecfg.WorkerCommand = []string{exe, "embed-worker"}
		if a.configFile != "" {
			ecfg.WorkerCommand = append(ecfg.WorkerCommand, "--config", a.configFile)
		}
	}

	e, err := embedder.New(ctx, ecfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	a.logger.Debug("embedder ready", "id", e.ID(), "dimension", e.Dimension())
	return e, nil
}
