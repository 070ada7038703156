package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/docsearch/internal/embedder"
)

const embedWorkerLongDesc string = `Run as an embedding worker.

Reads newline-delimited JSON requests from stdin and writes responses to
stdout. Started automatically when embedding.mode is "worker"; there is no need
to run it by hand.`

func newEmbedWorkerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "embed-worker",
		Short:  "Serve embedding requests on stdin/stdout",
		Long:   embedWorkerLongDesc,
		Args:   cobra.NoArgs,
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// The worker always embeds in process
			a.cfg.Embedding.Mode = embedder.ModeInProcess
			e, err := a.newEmbedder(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = e.Close() }()

			if err := embedder.ServeWorker(ctx, e, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger); err != nil {
				return fmt.Errorf("embed worker: %w", err)
			}
			return nil
		},
	}
	addEmbedderFlags(cmd)
	return cmd
}
