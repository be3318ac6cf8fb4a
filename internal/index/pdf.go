package index

import (
	"fmt"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/carequery/carequery/internal/model"
)

// PDFExtractor extracts page-indexed plain text from PDF files
type PDFExtractor struct{}

// NewPDFExtractor creates a PDF extraction adapter
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extensions implements PageExtractor
func (e *PDFExtractor) Extensions() []string {
	return []string{".pdf"}
}

// ExtractPages reads every page of the PDF. Pages whose text cannot be
// decoded are skipped rather than failing the whole document.
func (e *PDFExtractor) ExtractPages(path string) ([]model.Page, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var pages []model.Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		pages = append(pages, model.Page{Number: i, Text: text})
	}

	return pages, nil
}
