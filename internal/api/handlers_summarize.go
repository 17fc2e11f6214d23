package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/structsum/internal/outline"
	"github.com/dgallion1/structsum/internal/source"
)

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	// Limit total request size, extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	opts, err := s.requestOptions(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	loader := source.ForFile(filename)
	if pl, ok := loader.(*source.PDFLoader); ok {
		pl.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}
	lines, err := loader.Load(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "load: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	text, err := outline.Render(filename, lines, opts)
	switch {
	case errors.Is(err, outline.ErrNoMatch):
		jsonError(w, outline.ErrNoMatch.Error(), http.StatusUnprocessableEntity)
		return
	case err != nil:
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, text)
}

// requestOptions starts from the configured defaults and applies per-request
// form overrides. Invalid combinations are rejected by Render's validation.
func (s *Server) requestOptions(r *http.Request) (outline.Options, error) {
	opts := s.cfg.Options()

	if v := r.FormValue("granularity"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("granularity: %w", err)
		}
		opts.MinGranularity = n
	}
	if v := r.FormValue("width"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, fmt.Errorf("width: %w", err)
		}
		opts.Width = n
	}
	for name, dst := range map[string]*bool{
		"suppress_lowest": &opts.SuppressLowest,
		"line_numbers":    &opts.IncludeLineNumbers,
		"header":          &opts.IncludeHeader,
		"title":           &opts.IncludeTitle,
	} {
		if v := r.FormValue(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, fmt.Errorf("%s: %w", name, err)
			}
			*dst = b
		}
	}
	return opts, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "upload.txt"
	}
	return name
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
