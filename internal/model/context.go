package model

// SearchContext is a parsed question: lowercase keyword terms plus the
// entities extracted from the question text. Read-only after creation.
type SearchContext struct {
	Terms    []string  `json:"terms"` // sorted, deduplicated, lowercase
	Entities EntitySet `json:"entities,omitempty"`
}

// HasTerm reports whether the context contains the exact term
func (c SearchContext) HasTerm(term string) bool {
	for _, t := range c.Terms {
		if t == term {
			return true
		}
	}
	return false
}

// AssembledContext is the budgeted, score-ordered context handed to the
// answer-synthesis step. Chars never exceeds the budget it was built under.
type AssembledContext struct {
	Text               string `json:"text"`
	Chars              int    `json:"chars"`
	SectionsIncluded   int    `json:"sections_included"`
	SectionsConsidered int    `json:"sections_considered"`
	DocumentsIncluded  int    `json:"documents_included"`
}

// Truncated reports whether relevant sections were dropped for budget
func (a AssembledContext) Truncated() bool {
	return a.SectionsIncluded < a.SectionsConsidered
}

// RetrievalStatus distinguishes normal terminal outcomes of a retrieval
type RetrievalStatus string

const (
	StatusOK                = RetrievalStatus("ok")
	StatusNoRelevantContent = RetrievalStatus("no_relevant_content")
)

// Coverage reports how much of the corpus was scanned and how much
// contributed to the assembled context
type Coverage struct {
	DocumentsVisited map[RootRole]int `json:"documents_visited"`
	DocumentsMatched int              `json:"documents_matched"`
	DocumentsFailed  int              `json:"documents_failed"`
}

// TotalVisited sums visited documents across all roots
func (c Coverage) TotalVisited() int {
	total := 0
	for _, n := range c.DocumentsVisited {
		total += n
	}
	return total
}

// RetrievalResult is the complete outcome of one retrieval call
type RetrievalResult struct {
	Status   RetrievalStatus  `json:"status"`
	Context  AssembledContext `json:"context"`
	Coverage Coverage         `json:"coverage"`
	Query    SearchContext    `json:"query"`
}
