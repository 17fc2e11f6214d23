package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	// Diagnostics go to stderr so console summaries stay clean on stdout.
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	root := &cobra.Command{
		Use:           "structsum",
		Short:         "Extract section-separator outlines from text documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newScanCmd(log))
	root.AddCommand(newServeCmd(log))

	if err := root.Execute(); err != nil {
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
