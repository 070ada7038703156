package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/docsearch/internal/storage"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Needs no configuration
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "docsearch")
			fmt.Fprintf(w, "Version: %s\n", version)
			fmt.Fprintf(w, "Build Time: %s\n", buildTime)
			fmt.Fprintf(w, "Build Mode: %s\n", storage.BuildMode)
			fmt.Fprintf(w, "SQLite Driver: %s\n", storage.DriverName)
		},
	}
}
