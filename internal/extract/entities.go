package extract

import (
	"regexp"
	"strings"

	"github.com/carequery/carequery/internal/model"
)

// capitalized-word sequence: one or more consecutive tokens each starting
// with an uppercase letter. Single capitals ("I") are too noisy to count.
const nameSeq = `[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*`

// roleIndicators are person-role words that precede a name
// ("mother Jane Smith" -> person_role:mother = Jane Smith)
var roleIndicators = []string{"mother", "father", "child", "worker", "carer", "guardian"}

// familyIndicators mark family/household names on either side
// ("Smith family", "household of the Smiths")
var familyIndicators = []string{"family", "household", "home"}

// commonWords are capitalized sentence-leading words that are never names.
// Without this list every question-initial "What"/"The" would be captured
// as a person entity and wrongly pull case files into scope.
var commonWords = map[string]bool{
	"What": true, "Who": true, "Where": true, "When": true, "Why": true,
	"How": true, "Which": true, "The": true, "This": true, "That": true,
	"These": true, "Those": true, "Is": true, "Are": true, "Was": true,
	"Were": true, "Do": true, "Does": true, "Did": true, "Can": true,
	"Could": true, "Should": true, "Would": true, "Will": true, "Has": true,
	"Have": true, "Had": true, "If": true, "In": true, "On": true,
	"At": true, "For": true, "And": true, "Or": true, "But": true,
	"Please": true, "Tell": true, "Give": true, "We": true, "You": true,
	"It": true, "They": true, "There": true,
}

// EntityExtractor pulls person, family and client-id references out of
// free text using precompiled pattern rules. Pure and deterministic:
// identical input always yields an identical EntitySet.
type EntityExtractor struct {
	rolePatterns   map[string]*regexp.Regexp
	familyBefore   []*regexp.Regexp // "<indicator> <Name>"
	familyAfter    []*regexp.Regexp // "<Name> <indicator>"
	standalonePat  *regexp.Regexp
	clientIDPat    *regexp.Regexp
}

// NewEntityExtractor creates an extractor with the standard rule set
func NewEntityExtractor() *EntityExtractor {
	e := &EntityExtractor{
		rolePatterns:  make(map[string]*regexp.Regexp, len(roleIndicators)),
		standalonePat: regexp.MustCompile(nameSeq),
		clientIDPat:   regexp.MustCompile(`(?i)client[_\s]*(\d+)`),
	}

	// Indicator matching is case-insensitive, the captured name is not.
	for _, role := range roleIndicators {
		e.rolePatterns[role] = regexp.MustCompile(`\b(?i:` + role + `)\s+(` + nameSeq + `)`)
	}
	for _, ind := range familyIndicators {
		e.familyBefore = append(e.familyBefore, regexp.MustCompile(`\b(?i:`+ind+`)\s+(`+nameSeq+`)`))
		e.familyAfter = append(e.familyAfter, regexp.MustCompile(`(`+nameSeq+`)\s+(?i:`+ind+`)\b`))
	}

	return e
}

// Extract pulls all entities from the text. Values recorded under a
// role-specific or family kind are also recorded under the generic
// "name" kind, once.
func (e *EntityExtractor) Extract(text string) model.EntitySet {
	entities := model.NewEntitySet()
	captured := make(map[string]bool)

	record := func(kind model.EntityKind, value string) {
		value = trimCommonPrefix(value)
		if value == "" {
			return
		}
		entities.Add(kind, value)
		entities.Add(model.KindName, value)
		captured[value] = true
	}

	// 1. Role-bound names.
	for _, role := range roleIndicators {
		for _, m := range e.rolePatterns[role].FindAllStringSubmatch(text, -1) {
			record(model.RoleKind(role), m[1])
		}
	}

	// 2. Family/household names on either side of the indicator.
	for _, pat := range e.familyBefore {
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			record(model.KindFamilyName, m[1])
		}
	}
	for _, pat := range e.familyAfter {
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			record(model.KindFamilyName, m[1])
		}
	}

	// 3. Remaining standalone capitalized sequences go to "name" only,
	// unless already captured under a more specific kind.
	for _, m := range e.standalonePat.FindAllString(text, -1) {
		value := trimCommonPrefix(m)
		if value == "" || captured[value] {
			continue
		}
		entities.Add(model.KindName, value)
	}

	// 4. Client identifiers ("client 12345", "client_12345").
	for _, m := range e.clientIDPat.FindAllStringSubmatch(text, -1) {
		entities.Add(model.KindClientID, m[1])
	}

	return entities
}

// trimCommonPrefix strips leading non-name words from a captured sequence
// ("The Smith" -> "Smith") and discards sequences that are nothing but
// common words ("What" -> "")
func trimCommonPrefix(value string) string {
	words := strings.Fields(value)
	for len(words) > 0 && commonWords[words[0]] {
		words = words[1:]
	}
	return strings.Join(words, " ")
}
