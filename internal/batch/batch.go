// Package batch resolves input paths and runs the summary pipeline over
// them, one file at a time. A file's failure never aborts the rest of the
// run.
package batch

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/structsum/internal/outline"
	"github.com/dgallion1/structsum/internal/source"
)

// OutputPrefix is prepended to derived per-input output file names.
const OutputPrefix = "code_summary-"

// Runner drives the pipeline over a resolved set of input files.
type Runner struct {
	Log     *slog.Logger
	Options outline.Options

	// Console receives every summary when non-nil; otherwise each input
	// gets its own output file.
	Console io.Writer

	// OutputPath overrides the derived output name. Only meaningful for a
	// single input.
	OutputPath string

	// OutputExt is appended to derived output names, e.g. ".txt".
	OutputExt string

	// PDFFallback enables the pdftotext fallback for PDF inputs.
	PDFFallback bool
}

// Result counts the outcomes of a run.
type Result struct {
	Processed int
	NoMatch   int
	Failed    int
}

// Resolve expands a path into the input file list: an explicit file is
// itself; a directory contributes its regular files matching the name
// suffix, in lexical order. An empty suffix matches everything.
func Resolve(path, suffix string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if suffix != "" && !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	return files, nil
}

// Run processes each file to completion before the next. Errors are logged
// per file and counted; no-match is informational, not a failure.
func (r *Runner) Run(paths []string) Result {
	var res Result
	for _, p := range paths {
		log := r.Log.With("file", p)
		err := r.processFile(p)
		switch {
		case err == nil:
			res.Processed++
		case errors.Is(err, outline.ErrNoMatch):
			log.Info("no matching structure found")
			res.NoMatch++
		default:
			log.Error("summarize failed", "error", err)
			res.Failed++
		}
	}
	return res
}

func (r *Runner) processFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	loader := source.ForFile(path)
	if pl, ok := loader.(*source.PDFLoader); ok {
		pl.FallbackPdftotext = r.PDFFallback
	}

	lines, err := loader.Load(f, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	text, err := outline.Render(path, lines, r.Options)
	if err != nil {
		return err
	}

	return r.write(path, text)
}

func (r *Runner) write(inputPath, text string) error {
	if r.Console != nil {
		_, err := io.WriteString(r.Console, text)
		return err
	}
	dest := r.OutputPath
	if dest == "" {
		name := OutputPrefix + filepath.Base(inputPath) + r.OutputExt
		dest = filepath.Join(filepath.Dir(inputPath), name)
	}
	if err := os.WriteFile(dest, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
