package api

import (
	"bytes"
	_ "embed"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed docs.md
var docsMarkdown []byte

// handleDocs renders the embedded usage document to HTML.
func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var body bytes.Buffer
	if err := md.Convert(docsMarkdown, &body); err != nil {
		s.log.Error("render docs", "error", err)
		http.Error(w, "failed to render docs", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<!DOCTYPE html><html><head><title>structsum</title></head><body>"))
	w.Write(body.Bytes())
	w.Write([]byte("</body></html>"))
}
