package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/docsearch/internal/client"
	"github.com/dshills/docsearch/internal/config"
)

const relatedLongDesc string = `Find the docs related to each part of a source file.

The file is split into chunks (top-level declarations for Go files, sections for
markdown) and the index is searched with each chunk.

Example:
  docsearch related index.json internal/cache/fs.go
  docsearch related index.json README.md --per-chunk 2 --json`

type relatedCommander struct {
	perChunk   int
	jsonOutput bool
	searchMode string
}

func newRelatedCmd(a *app) *cobra.Command {
	cmder := &relatedCommander{}

	cmd := &cobra.Command{
		Use:   "related <index-file> <source-file>",
		Short: "Find docs related to a source file",
		Long:  relatedLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, a, args[0], args[1])
		},
	}

	cmd.Flags().IntVar(&cmder.perChunk, "per-chunk", client.DefaultRelatedLimit, "Maximum number of docs per chunk")
	cmd.Flags().BoolVar(&cmder.jsonOutput, "json", false, "Print annotations as JSON")
	config.AddStringFlag(cmd, config.Flags, config.FlagSearchMode, &cmder.searchMode)
	addEmbedderFlags(cmd)

	return cmd
}

func (c *relatedCommander) run(cmd *cobra.Command, a *app, source, filename string) error {
	ctx := cmd.Context()

	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	cl, closeFn, err := a.openClient(ctx, source)
	if err != nil {
		return err
	}
	defer closeFn()

	annotations, err := cl.Related(ctx, filename, string(content), c.perChunk)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if c.jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(annotations)
	}

	if len(annotations) == 0 {
		fmt.Fprintln(w, "No related docs found.")
		return nil
	}
	for _, an := range annotations {
		fmt.Fprintf(w, "%s:%d-%d\t[%.3f] %s", filename, an.Start.Line+1, an.End.Line+1, an.Score, an.Title)
		if an.URL != "" {
			fmt.Fprintf(w, " <%s>", an.URL)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, indent(an.Detail, "\t"))
	}
	return nil
}
