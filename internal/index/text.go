package index

import (
	"fmt"
	"os"
	"strings"

	"github.com/carequery/carequery/internal/model"
)

// TextExtractor extracts plain-text documents. Form feeds act as page
// separators; a file without them is a single page.
type TextExtractor struct{}

// NewTextExtractor creates a plain-text extraction adapter
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extensions implements PageExtractor
func (e *TextExtractor) Extensions() []string {
	return []string{".txt", ".md"}
}

// ExtractPages implements PageExtractor
func (e *TextExtractor) ExtractPages(path string) ([]model.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read text file: %w", err)
	}

	var pages []model.Page
	for i, chunk := range strings.Split(string(data), "\f") {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		pages = append(pages, model.Page{Number: i + 1, Text: chunk})
	}

	return pages, nil
}
