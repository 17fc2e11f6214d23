// Package outline turns classified separator lines into a condensed
// structure summary. Each stage is a pure function threading the line set
// through: suppress lowest breaks -> granularity filter -> width resolve ->
// format.
package outline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dgallion1/structsum/internal/marker"
	"github.com/dgallion1/structsum/internal/source"
)

// ErrNoMatch reports that a file contains no separator lines, or that
// filtering removed every candidate. Informational, not fatal: callers log
// it and move on without producing output.
var ErrNoMatch = errors.New("no matching structure found")

// Options controls filtering and formatting of a summary.
type Options struct {
	// MinGranularity is the finest level to include (1..3). Lines with a
	// level above it are dropped; level 1 is always retained.
	MinGranularity int

	// SuppressLowest removes break lines (never comment lines) belonging
	// to the deepest level actually present in the file.
	SuppressLowest bool

	// Width truncates every emitted line to this many characters. Zero
	// means auto: the longest surviving comment line. Lines are never
	// padded.
	Width int

	IncludeLineNumbers bool
	IncludeHeader      bool
	IncludeTitle       bool
}

// DefaultOptions mirrors the command defaults.
func DefaultOptions() Options {
	return Options{
		MinGranularity:     marker.MaxLevel,
		SuppressLowest:     true,
		IncludeLineNumbers: true,
		IncludeHeader:      true,
		IncludeTitle:       true,
	}
}

func (o Options) Validate() error {
	if o.MinGranularity < 1 || o.MinGranularity > marker.MaxLevel {
		return fmt.Errorf("granularity must be between 1 and %d, got %d", marker.MaxLevel, o.MinGranularity)
	}
	if o.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", o.Width)
	}
	return nil
}

// Render produces the summary document for one file. title names the
// source and is only emitted when IncludeTitle is set. The returned text
// ends with a newline; entries keep the original ascending line order.
func Render(title string, lines []source.Line, opts Options) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}

	classified := marker.ClassifyAll(lines)

	if opts.SuppressLowest {
		if lowest, ok := marker.Probe(classified, marker.Down); ok {
			classified = dropBreaks(classified, lowest)
		}
	}

	classified = filterLevel(classified, opts.MinGranularity)
	if len(classified) == 0 {
		return "", ErrNoMatch
	}

	width := opts.Width
	if width == 0 {
		width = autoWidth(classified)
	}

	var buf strings.Builder
	if opts.IncludeTitle {
		buf.WriteString(title)
		buf.WriteString("\n")
	}
	if opts.IncludeHeader {
		if opts.IncludeLineNumbers {
			buf.WriteString("line\tsection\n")
		} else {
			buf.WriteString("section\n")
		}
	}
	for _, ln := range classified {
		if opts.IncludeLineNumbers {
			fmt.Fprintf(&buf, "%d\t%s\n", ln.Number, truncate(ln.Text, width))
		} else {
			buf.WriteString(truncate(ln.Text, width))
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}

// dropBreaks removes break lines at exactly the given level. Comment lines
// at that level survive.
func dropBreaks(lines []marker.Line, level int) []marker.Line {
	out := lines[:0:0]
	for _, ln := range lines {
		if ln.Kind == marker.KindBreak && ln.Level == level {
			continue
		}
		out = append(out, ln)
	}
	return out
}

// filterLevel retains lines whose level does not exceed max.
func filterLevel(lines []marker.Line, max int) []marker.Line {
	out := lines[:0:0]
	for _, ln := range lines {
		if ln.Level <= max {
			out = append(out, ln)
		}
	}
	return out
}

// autoWidth is the length of the longest surviving comment line. Break
// lines are repetitive filler and do not count; if only breaks survive,
// they set the width instead so output is not truncated to nothing.
func autoWidth(lines []marker.Line) int {
	w := 0
	comments := false
	for _, ln := range lines {
		if ln.Kind != marker.KindComment {
			continue
		}
		comments = true
		if n := len([]rune(ln.Text)); n > w {
			w = n
		}
	}
	if !comments {
		for _, ln := range lines {
			if n := len([]rune(ln.Text)); n > w {
				w = n
			}
		}
	}
	return w
}

// truncate keeps the first width characters. No ellipsis, no padding.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width])
}
