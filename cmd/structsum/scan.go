package main

import (
	"fmt"
	"log/slog"

	"github.com/dgallion1/structsum/internal/batch"
	"github.com/dgallion1/structsum/internal/config"
	"github.com/spf13/cobra"
)

func newScanCmd(log *slog.Logger) *cobra.Command {
	var (
		suffix        string
		write         bool
		out           string
		ext           string
		granularity   int
		width         int
		keepLowest    bool
		noLineNumbers bool
		noHeader      bool
		noTitle       bool
	)

	cmd := &cobra.Command{
		Use:   "scan <file-or-directory>",
		Short: "Summarize a file, or every matching file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			opts := cfg.Options()

			f := cmd.Flags()
			if f.Changed("granularity") {
				opts.MinGranularity = granularity
			}
			if f.Changed("width") {
				opts.Width = width
			}
			if keepLowest {
				opts.SuppressLowest = false
			}
			if noLineNumbers {
				opts.IncludeLineNumbers = false
			}
			if noHeader {
				opts.IncludeHeader = false
			}
			if noTitle {
				opts.IncludeTitle = false
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			paths, err := batch.Resolve(args[0], suffix)
			if err != nil {
				return fmt.Errorf("resolve input: %w", err)
			}
			if len(paths) == 0 {
				log.Info("no input files matched", "path", args[0], "suffix", suffix)
				return nil
			}
			if out != "" && len(paths) > 1 {
				return fmt.Errorf("--out needs a single input, got %d files", len(paths))
			}

			outputExt := cfg.OutputExt
			if f.Changed("ext") {
				outputExt = ext
				if outputExt != "" && outputExt[0] != '.' {
					outputExt = "." + outputExt
				}
			}

			runner := &batch.Runner{
				Log:         log,
				Options:     opts,
				OutputPath:  out,
				OutputExt:   outputExt,
				PDFFallback: cfg.PDFFallbackPdftotext,
			}
			if !write && out == "" {
				runner.Console = cmd.OutOrStdout()
			}

			res := runner.Run(paths)
			log.Info("scan finished",
				"processed", res.Processed,
				"no_match", res.NoMatch,
				"failed", res.Failed,
			)
			if res.Failed > 0 {
				return fmt.Errorf("%d of %d files failed", res.Failed, len(paths))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&suffix, "suffix", "", "file-name suffix filter for directory inputs")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write a summary file per input instead of printing")
	cmd.Flags().StringVarP(&out, "out", "o", "", "explicit output path (single input only)")
	cmd.Flags().StringVar(&ext, "ext", ".txt", "extension for derived summary file names")
	cmd.Flags().IntVarP(&granularity, "granularity", "g", 3, "finest outline level to include (1-3)")
	cmd.Flags().IntVar(&width, "width", 0, "truncate entries to this many characters (0 = auto)")
	cmd.Flags().BoolVar(&keepLowest, "keep-lowest", false, "keep break lines of the deepest level present")
	cmd.Flags().BoolVar(&noLineNumbers, "no-line-numbers", false, "omit source line numbers")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "omit the column header line")
	cmd.Flags().BoolVar(&noTitle, "no-title", false, "omit the source file title line")

	return cmd
}
