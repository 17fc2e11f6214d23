package source

import (
	"io"
	"path/filepath"
	"strings"
)

// Line is an immutable pairing of a 1-based line number and the raw text
// read from the input. It is the source of truth for everything downstream.
type Line struct {
	Number int
	Text   string
}

// Loader converts raw document bytes into an ordered sequence of lines.
type Loader interface {
	Load(r io.Reader, filename string) ([]Line, error)
}

// ForFile returns the appropriate loader for a filename. Anything without a
// recognized binary/markup extension is read as plain text, so arbitrary
// source-code extensions work without registration.
func ForFile(filename string) Loader {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return &PDFLoader{}
	case ".docx":
		return &DOCXLoader{}
	case ".html", ".htm":
		return &HTMLLoader{}
	default:
		return &TextLoader{}
	}
}

// numberLines pairs extracted text lines with their 1-based positions.
// Used by loaders that recover text from non-text formats, where the
// position is within the extracted text rather than the original bytes.
func numberLines(text string) []Line {
	if text == "" {
		return nil
	}
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]Line, 0, len(raw))
	for i, t := range raw {
		lines = append(lines, Line{Number: i + 1, Text: t})
	}
	return lines
}
