// Package index scans corpus documents into scored page sections.
// Text extraction is delegated to per-format adapters; extracted pages
// are cached keyed by a path+size+mtime fingerprint so unchanged
// documents are never extracted twice.
package index

import (
	"path/filepath"
	"strings"

	"github.com/carequery/carequery/internal/model"
)

// PageExtractor is a text-extraction collaborator for one document format.
// Implementations may fail per file; the index treats a failure as zero
// pages for that file and keeps scanning the rest of the corpus.
type PageExtractor interface {
	// Extensions lists the lowercase file extensions the adapter handles,
	// including the dot.
	Extensions() []string

	// ExtractPages returns the ordered page-level plain text of the file.
	ExtractPages(path string) ([]model.Page, error)
}

// DefaultExtractors returns the standard adapter set: PDF, plain text
// and HTML.
func DefaultExtractors() []PageExtractor {
	return []PageExtractor{
		NewPDFExtractor(),
		NewTextExtractor(),
		NewHTMLExtractor(),
	}
}

func extractorIndex(extractors []PageExtractor) map[string]PageExtractor {
	byExt := make(map[string]PageExtractor)
	for _, ex := range extractors {
		for _, ext := range ex.Extensions() {
			byExt[ext] = ex
		}
	}
	return byExt
}

func fileExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
