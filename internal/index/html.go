package index

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/carequery/carequery/internal/model"
)

// HTMLExtractor extracts the visible text of HTML documents as a single
// page, skipping script and style content.
type HTMLExtractor struct{}

// NewHTMLExtractor creates an HTML extraction adapter
func NewHTMLExtractor() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extensions implements PageExtractor
func (e *HTMLExtractor) Extensions() []string {
	return []string{".html", ".htm"}
}

// ExtractPages implements PageExtractor
func (e *HTMLExtractor) ExtractPages(path string) ([]model.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open html file: %w", err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	text := strings.TrimSpace(visibleText(doc))
	if text == "" {
		return nil, nil
	}

	return []model.Page{{Number: 1, Text: text}}, nil
}

// visibleText walks the parse tree collecting text nodes, skipping
// script, style and other non-content elements
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
