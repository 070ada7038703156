package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dshills/docsearch/internal/config"
	"github.com/dshills/docsearch/internal/mcp"
)

const serveLongDesc string = `Run an MCP server on stdio exposing the index to AI assistants.

Tools: search_docs, get_doc, related_docs, get_status, reload_index.
Stdout is reserved for the protocol; logs go to stderr.

Example:
  docsearch serve --index index.json`

type serveCommander struct {
	index      string
	searchMode string
}

func newServeCmd(a *app) *cobra.Command {
	cmder := &serveCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdio",
		Long:  serveLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmder.index == "" {
				return errors.New("no index specified (use --index)")
			}

			cl, closeFn, err := a.openClient(cmd.Context(), cmder.index)
			if err != nil {
				return err
			}
			defer closeFn()

			return mcp.NewServer(cl, a.logger).Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&cmder.index, "index", "i", "", "Index file or URL to serve")
	config.AddStringFlag(cmd, config.Flags, config.FlagSearchMode, &cmder.searchMode)
	addEmbedderFlags(cmd)

	return cmd
}
