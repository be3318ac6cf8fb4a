// Package classify maps document storage paths to semantic document types.
// The corpus layout is the only classification signal: policy documents
// live directly under a "docs" directory, operational material under
// "operational_docs" (with "forms" and "operational_guidelines" subtrees),
// and per-case material under "case_docs".
package classify

import (
	"path/filepath"
	"strings"

	"github.com/carequery/carequery/internal/model"
)

// Classify derives the document type from the path alone. Pure function:
// identical paths always produce identical types. Rules are evaluated in
// order and the first match wins.
func Classify(path string) model.DocumentType {
	segments := strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")

	if len(segments) >= 2 && segments[len(segments)-2] == "docs" {
		return model.DocPolicy
	}

	if hasSegment(segments, "operational_docs") {
		switch {
		case hasSegment(segments, "forms"):
			return model.DocForm
		case hasSegment(segments, "operational_guidelines"):
			return model.DocOperationalGuideline
		default:
			return model.DocOperational
		}
	}

	if hasSegment(segments, "case_docs") {
		return model.DocCaseFile
	}

	return model.DocUnknown
}

func hasSegment(segments []string, want string) bool {
	for _, s := range segments {
		if s == want {
			return true
		}
	}
	return false
}
