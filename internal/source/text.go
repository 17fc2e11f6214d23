package source

import (
	"bufio"
	"io"
)

// TextLoader handles plain text files, which is every file not claimed by a
// format-specific loader.
type TextLoader struct{}

func (l *TextLoader) Load(r io.Reader, filename string) ([]Line, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []Line
	n := 0
	for scanner.Scan() {
		n++
		lines = append(lines, Line{Number: n, Text: scanner.Text()})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
