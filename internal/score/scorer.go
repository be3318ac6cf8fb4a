package score

import (
	"strings"

	"github.com/carequery/carequery/internal/model"
)

// riskKeywords grant a flat bonus when any of them appears in the page
var riskKeywords = []string{"risk", "hazard", "danger", "safety", "warning", "incident"}

// proceduralKeywords boost guideline and form pages for how-to queries
var proceduralKeywords = []string{"procedure", "form", "guide", "visit"}

// caseKeywords mark person-centric context near a family-name match
var caseKeywords = []string{"client", "case", "family", "mother", "father", "child"}

// proximityWindow is how far (in characters) a case keyword may sit from a
// family-name match and still count as nearby context
const proximityWindow = 50

// Scorer computes the additive relevance score of a page for a query.
// Pure and deterministic: no state beyond the configured weights.
//
// Term matching counts presence per term, not occurrences: a term found
// three times on a page scores the same as a term found once.
type Scorer struct {
	weights model.ScoringWeights
}

// NewScorer creates a scorer with the given weights
func NewScorer(weights model.ScoringWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Score rates how well the page text matches the query terms and entities,
// given the document type the page belongs to. Always >= 0. Pages scoring
// zero are irrelevant and must not enter ranking.
func (s *Scorer) Score(text string, terms []string, pageEntities, queryEntities model.EntitySet, docType model.DocumentType) float64 {
	lower := strings.ToLower(text)
	total := 0.0

	for _, term := range terms {
		if strings.Contains(lower, term) {
			total += s.weights.TermMatch
		}
	}

	for _, kind := range queryEntities.Kinds() {
		for _, value := range queryEntities.Values(kind) {
			idx := strings.Index(lower, strings.ToLower(value))
			if idx < 0 {
				continue
			}
			if kind == model.KindFamilyName {
				total += s.weights.FamilyNameMatch
				total += s.familyBonuses(lower, value, idx)
			} else {
				total += s.weights.EntityMatch
			}
		}
	}

	if docType == model.DocCaseFile {
		total += s.weights.CaseFileBonus
	}

	for _, keyword := range riskKeywords {
		if strings.Contains(lower, keyword) {
			total += s.weights.RiskKeywordBonus
			break
		}
	}

	if docType == model.DocOperationalGuideline || docType == model.DocForm {
		for _, keyword := range proceduralKeywords {
			if hasTerm(terms, keyword) {
				total += s.weights.ProceduralBonus
				break
			}
		}
	}

	return total
}

// familyBonuses adds the literal-phrase bonus and the nearby case-keyword
// bonus for a family-name match found at idx in the lowercased text
func (s *Scorer) familyBonuses(lower, value string, idx int) float64 {
	bonus := 0.0
	lowerValue := strings.ToLower(value)

	if strings.Contains(lower, lowerValue+" family") || strings.Contains(lower, "family "+lowerValue) {
		bonus += s.weights.FamilyPhraseBonus
	}

	start := idx - proximityWindow
	if start < 0 {
		start = 0
	}
	end := idx + len(lowerValue) + proximityWindow
	if end > len(lower) {
		end = len(lower)
	}
	window := lower[start:end]
	for _, keyword := range caseKeywords {
		if strings.Contains(window, keyword) {
			bonus += s.weights.FamilyContextBonus
			break
		}
	}

	return bonus
}

func hasTerm(terms []string, want string) bool {
	for _, term := range terms {
		if term == want {
			return true
		}
	}
	return false
}
