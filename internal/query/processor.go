package query

import (
	"sort"
	"strings"

	"github.com/carequery/carequery/internal/extract"
	"github.com/carequery/carequery/internal/model"
)

// stopWords are dropped from question keywords: articles, auxiliaries,
// wh-words and a small domain list that carries no retrieval signal.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "being": true,
	"do": true, "does": true, "did": true, "have": true, "has": true,
	"had": true, "will": true, "would": true, "can": true, "could": true,
	"should": true, "shall": true, "may": true, "might": true,
	"what": true, "who": true, "where": true, "when": true, "why": true,
	"how": true, "which": true, "there": true, "their": true, "they": true,
	"them": true, "this": true, "that": true, "these": true, "those": true,
	"it": true, "its": true, "i": true, "we": true, "you": true,
	"your": true, "my": true, "me": true, "our": true,
	"and": true, "or": true, "but": true, "for": true, "of": true,
	"to": true, "in": true, "on": true, "at": true, "with": true,
	"about": true, "any": true, "all": true, "please": true, "tell": true,
	"visiting": true, "need": true, "know": true,
}

// riskVocabulary is unioned into the terms when the question mentions risk
var riskVocabulary = []string{"risk", "hazard", "safety", "danger", "incident"}

// visitVocabulary is unioned into the terms when the question mentions visits
var visitVocabulary = []string{"visit", "assessment", "safety", "procedure"}

// Processor turns a raw question into a structured search context
type Processor struct {
	extractor *extract.EntityExtractor
}

// NewProcessor creates a query processor backed by the given extractor
func NewProcessor(extractor *extract.EntityExtractor) *Processor {
	return &Processor{extractor: extractor}
}

// Process parses the question into keyword terms and extracted entities.
// It always succeeds; a question with no usable keywords yields an
// empty-terms context.
func (p *Processor) Process(question string) model.SearchContext {
	entities := p.extractor.Extract(question)

	terms := make(map[string]bool)
	for _, token := range strings.Fields(question) {
		token = strings.ToLower(strings.TrimRight(token, "?.,!"))
		if token == "" || stopWords[token] {
			continue
		}
		// A fragment of an extracted name is not a generic keyword.
		if entities.ContainsFold(token) {
			continue
		}
		terms[token] = true
	}

	lower := strings.ToLower(question)
	if strings.Contains(lower, "risk") {
		for _, term := range riskVocabulary {
			terms[term] = true
		}
	}
	if strings.Contains(lower, "visit") {
		for _, term := range visitVocabulary {
			terms[term] = true
		}
	}

	sorted := make([]string, 0, len(terms))
	for term := range terms {
		sorted = append(sorted, term)
	}
	sort.Strings(sorted)

	return model.SearchContext{Terms: sorted, Entities: entities}
}
