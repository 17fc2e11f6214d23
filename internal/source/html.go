package source

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLLoader flattens the text content of an HTML document to lines.
// Pre-formatted blocks keep their internal line breaks; other block
// elements contribute one line each.
type HTMLLoader struct{}

func (l *HTMLLoader) Load(r io.Reader, filename string) ([]Line, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var chunks []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "pre":
				// Preserve line structure inside code/pre blocks.
				t := rawTextContent(n)
				for _, ln := range strings.Split(t, "\n") {
					chunks = append(chunks, ln)
				}
				return
			case "p", "li", "td", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote":
				if t := textContent(n); t != "" {
					chunks = append(chunks, t)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return numberLines(strings.Join(chunks, "\n")), nil
}

func textContent(n *html.Node) string {
	return strings.TrimSpace(rawTextContent(n))
}

func rawTextContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
