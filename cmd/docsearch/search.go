package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/dshills/docsearch/internal/client"
	"github.com/dshills/docsearch/internal/config"
	"github.com/dshills/docsearch/internal/embedder"
	"github.com/dshills/docsearch/internal/indexer"
	"github.com/dshills/docsearch/internal/searcher"
	"github.com/dshills/docsearch/pkg/types"
)

const searchLongDesc string = `Search an index created with create-index.

The index may be a file path or an http(s) URL. The top results are printed
with their score, location and excerpt.

Example:
  docsearch search index.json "how do I configure caching"
  docsearch search https://example.com/docs/index.json "install" --limit 10
  docsearch search index.json "tokenizer" --search-mode keyword`

const maxExcerptLength = 500

type searchCommander struct {
	limit      int
	searchMode string
}

func newSearchCmd(a *app) *cobra.Command {
	cmder := &searchCommander{}

	cmd := &cobra.Command{
		Use:   "search <index-file> <query>",
		Short: "Search an index",
		Long:  searchLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, a, args[0], args[1])
		},
	}

	config.AddIntFlag(cmd, config.Flags, config.FlagLimit, &cmder.limit)
	config.AddStringFlag(cmd, config.Flags, config.FlagSearchMode, &cmder.searchMode)
	addEmbedderFlags(cmd)

	return cmd
}

func (c *searchCommander) run(cmd *cobra.Command, a *app, source, query string) error {
	ctx := cmd.Context()

	cl, closeFn, err := a.openClient(ctx, source)
	if err != nil {
		return err
	}
	defer closeFn()

	results, err := cl.Search(ctx, types.Query{Text: query})
	if err != nil {
		return err
	}

	limit := a.cfg.Search.Limit
	if len(results) > limit {
		fmt.Fprintf(cmd.ErrOrStderr(), "# %d results (showing top %d)\n", len(results), limit)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "# %d results\n", len(results))
	}
	return printResults(cmd.OutOrStdout(), cl, results[:min(limit, len(results))])
}

// printResults writes each result as a header line followed by its indented
// excerpt, separated by blank lines
func printResults(w io.Writer, cl *client.Client, results []types.SearchResult) error {
	for i, r := range results {
		doc, err := cl.Doc(r.Doc)
		if err != nil {
			return err
		}
		location := doc.Doc.URL
		if location == "" {
			location = fmt.Sprintf("doc%d", doc.Doc.ID)
		}

		if i != 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "#%d [%.3f] %s#chunk%d\n", i+1, r.Score, location, r.Chunk)
		fmt.Fprintln(w, indent(truncate(strings.ReplaceAll(r.Excerpt, "\n\n", "\n"), maxExcerptLength), "\t"))
	}
	return nil
}

func truncate(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	return string([]rune(text)[:maxLength]) + "..."
}

func indent(text, prefix string) string {
	if text == "" {
		return ""
	}
	return prefix + strings.ReplaceAll(text, "\n", "\n"+prefix)
}

// addEmbedderFlags registers the config-backed flags of commands that load
// an index and may embed queries
func addEmbedderFlags(cmd *cobra.Command) {
	addCacheFlags(cmd)
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingProvider, new(string))
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingMode, new(string))
	config.AddStringFlag(cmd, config.Flags, config.FlagEmbeddingModel, new(string))
}

// openClient loads the index at source and creates a client for it. An
// embedder is only created when the index has embeddings to compare against.
func (a *app) openClient(ctx context.Context, source string) (*client.Client, func(), error) {
	ci, err := indexer.Open(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("loaded index", "source", source, "docs", len(ci.Docs), "chunks", ci.ChunkCount())

	docCache, closeCache, err := a.openCache()
	if err != nil {
		return nil, nil, err
	}
	closers := []func() error{closeCache}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	var emb embedder.Embedder
	if dim := embeddingDimension(ci); dim > 0 && searcher.SearchMode(a.cfg.Search.Mode) != searcher.SearchModeKeyword {
		emb, err = a.newEmbedder(ctx)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, emb.Close)
		if emb.Dimension() != dim {
			closeAll()
			return nil, nil, fmt.Errorf("%w: index embeddings have dimension %d but embedder %s produces %d",
				embedder.ErrDimensionMismatch, dim, emb.ID(), emb.Dimension())
		}
	}

	cl, err := client.NewWithHolder(indexer.NewHolder(ci, source), client.Options{
		Cache:    docCache,
		Embedder: emb,
		Logger:   a.logger,
		Config:   a.cfg.SearcherConfig(),
	})
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	return cl, closeAll, nil
}

// embeddingDimension returns the length of the first chunk embedding in ci,
// or 0 when the index has no embeddings
func embeddingDimension(ci *indexer.CorpusIndex) int {
	for _, d := range ci.Docs {
		for _, c := range d.Chunks {
			if len(c.Embeddings) > 0 {
				return len(c.Embeddings)
			}
		}
	}
	return 0
}
