package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/docsearch/internal/config"
	"github.com/dshills/docsearch/internal/embedder"
	"github.com/dshills/docsearch/internal/extractor"
	"github.com/dshills/docsearch/internal/indexer"
)

const createIndexLongDesc string = `Create a search index from a corpus archive.

The archive is read from stdin as JSON:
  {"docs": [{"id": 1, "text": "...", "url": "https://..."}], "description": "..."}

The index is written to stdout; progress goes to stderr. Indexing is cached, so
running it again on an unchanged archive is fast.

Example:
  docsearch create-index < archive.json > index.json
  docsearch create-index --extractor html --no-embeddings < site.json > index.json`

type createIndexCommander struct {
	extractor    string
	workers      int
	noEmbeddings bool
}

func newCreateIndexCmd(a *app) *cobra.Command {
	cmder := &createIndexCommander{}

	cmd := &cobra.Command{
		Use:   "create-index",
		Short: "Create a search index from an archive on stdin",
		Long:  createIndexLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd, a)
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagExtractor, &cmder.extractor)
	config.AddIntFlag(cmd, config.Flags, config.FlagWorkers, &cmder.workers)
	addEmbedderFlags(cmd)
	cmd.Flags().BoolVar(&cmder.noEmbeddings, "no-embeddings", false, "Skip chunk embeddings (keyword search only)")

	return cmd
}

func (c *createIndexCommander) run(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()

	archive, err := indexer.ReadArchive(bufio.NewReader(cmd.InOrStdin()))
	if err != nil {
		return err
	}
	description, _ := json.Marshal(archive.Description)
	fmt.Fprintf(stderr, "# Using archive: %d docs, content ID %s, description %s\n",
		len(archive.Docs), archive.ContentID, description)

	ext, err := extractor.New(a.cfg.Index.Extractor)
	if err != nil {
		return err
	}

	docCache, closeCache, err := a.openCache()
	if err != nil {
		return err
	}
	defer func() { _ = closeCache() }()

	var emb embedder.Embedder
	if !c.noEmbeddings {
		emb, err = a.newEmbedder(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = emb.Close() }()
	}

	start := time.Now()
	idx := indexer.New(indexer.Options{
		Extractor: ext,
		Embedder:  emb,
		Cache:     docCache,
		Logger:    a.logger,
		Workers:   a.cfg.Index.Workers,
	})
	ci, err := idx.Index(ctx, archive)
	if err != nil {
		return err
	}

	data, err := json.Marshal(ci)
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	fmt.Fprintf(stderr, "# Index complete [%dms]: %d docs (%.2f MB)\n",
		time.Since(start).Milliseconds(), len(ci.Docs), float64(len(data))/1024/1024)

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
