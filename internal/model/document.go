package model

// DocumentType is the semantic category a document belongs to,
// derived from its location in the corpus
type DocumentType string

const (
	DocUnknown              DocumentType = "unknown"
	DocPolicy               DocumentType = "policy"
	DocOperational          DocumentType = "operational"
	DocOperationalGuideline DocumentType = "operational_guideline"
	DocForm                 DocumentType = "form"
	DocCaseFile             DocumentType = "case_file"
)

// Label returns the human-readable name used in assembled context headers
func (t DocumentType) Label() string {
	switch t {
	case DocPolicy:
		return "Policy"
	case DocOperational:
		return "Operational"
	case DocOperationalGuideline:
		return "Operational Guideline"
	case DocForm:
		return "Form"
	case DocCaseFile:
		return "Case File"
	default:
		return "Unknown"
	}
}

// Page is one page of extracted document text as returned by an
// extraction collaborator
type Page struct {
	Number int    `json:"number"` // 1-based
	Text   string `json:"text"`
}

// PageRecord is a single scanned page with its document identity attached
type PageRecord struct {
	Path        string       `json:"path"`
	DisplayName string       `json:"display_name"`
	Number      int          `json:"number"`
	Text        string       `json:"text"`
	Type        DocumentType `json:"type"`
}

// ScoredSection is a page that scored above zero for a query,
// together with the entities found on that page
type ScoredSection struct {
	Page     PageRecord `json:"page"`
	Entities EntitySet  `json:"entities,omitempty"`
	Score    float64    `json:"score"`
}

// RootRole tags a corpus root directory by its semantic role
type RootRole string

const (
	RolePolicy      RootRole = "policy"
	RoleOperational RootRole = "operational"
	RoleCase        RootRole = "case"
)

// CorpusRoot is a corpus root directory tagged by role
type CorpusRoot struct {
	Role RootRole
	Path string
}
