// Package assemble ranks scored sections and packs them into a bounded
// context window for the answer-synthesis step.
package assemble

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/carequery/carequery/internal/model"
)

// Assembler renders scored sections into a character-budgeted context
type Assembler struct{}

// NewAssembler creates an assembler
func NewAssembler() *Assembler {
	return &Assembler{}
}

// Assemble sorts the sections by descending score (stable, so ties keep
// their scan order) and greedily appends rendered blocks until the next
// block would exceed charBudget. The budget counts Unicode characters,
// not bytes, so multibyte corpora get the full window. Packing is
// strict-prefix: once a block does not fit, assembly stops rather than
// skipping ahead to a smaller one, preserving score order over maximal
// fill.
func (a *Assembler) Assemble(sections []model.ScoredSection, charBudget int) model.AssembledContext {
	ordered := make([]model.ScoredSection, len(sections))
	copy(ordered, sections)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score > ordered[j].Score
	})

	var buf strings.Builder
	chars := 0
	included := 0
	docs := make(map[string]bool)

	for _, section := range ordered {
		block := renderSection(section)
		blockChars := utf8.RuneCountInString(block)
		if chars+blockChars > charBudget {
			break
		}
		buf.WriteString(block)
		chars += blockChars
		included++
		docs[section.Page.Path] = true
	}

	return model.AssembledContext{
		Text:               buf.String(),
		Chars:              chars,
		SectionsIncluded:   included,
		SectionsConsidered: len(sections),
		DocumentsIncluded:  len(docs),
	}
}

// renderSection formats one labeled context block: document type, display
// name, page number, entity kinds found on the page, then the page text.
func renderSection(section model.ScoredSection) string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "=== [%s] %s (page %d) ===\n",
		section.Page.Type.Label(), section.Page.DisplayName, section.Page.Number)

	if kinds := section.Entities.Kinds(); len(kinds) > 0 {
		buf.WriteString("Entities: ")
		for i, kind := range kinds {
			if i > 0 {
				buf.WriteString("; ")
			}
			fmt.Fprintf(&buf, "%s: %s", kind, strings.Join(section.Entities.Values(kind), ", "))
		}
		buf.WriteString("\n")
	}

	buf.WriteString(strings.TrimSpace(section.Page.Text))
	buf.WriteString("\n\n")

	return buf.String()
}
