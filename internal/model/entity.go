package model

import (
	"sort"
	"strings"
)

// EntityKind classifies an extracted entity value
type EntityKind string

const (
	KindName       EntityKind = "name"        // Any person or family name
	KindFamilyName EntityKind = "family_name" // Name tied to a family/household indicator
	KindClientID   EntityKind = "client_id"   // Numeric client/case identifier
)

// RoleKind builds the kind for a person tied to a role indicator,
// e.g. RoleKind("mother") == "person_role:mother"
func RoleKind(role string) EntityKind {
	return EntityKind("person_role:" + strings.ToLower(role))
}

// EntitySet holds extracted entity values grouped by kind.
// Values are deduplicated and keep their original casing and insertion order.
type EntitySet map[EntityKind][]string

// NewEntitySet creates an empty entity set
func NewEntitySet() EntitySet {
	return make(EntitySet)
}

// Add records a value under the given kind, ignoring duplicates
func (s EntitySet) Add(kind EntityKind, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	for _, existing := range s[kind] {
		if existing == value {
			return
		}
	}
	s[kind] = append(s[kind], value)
}

// Has reports whether the set holds at least one value under the kind
func (s EntitySet) Has(kind EntityKind) bool {
	return len(s[kind]) > 0
}

// Values returns the values recorded under the kind in insertion order
func (s EntitySet) Values(kind EntityKind) []string {
	return s[kind]
}

// Kinds returns all kinds holding at least one value, sorted for determinism
func (s EntitySet) Kinds() []EntityKind {
	kinds := make([]EntityKind, 0, len(s))
	for kind, values := range s {
		if len(values) > 0 {
			kinds = append(kinds, kind)
		}
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Empty reports whether the set holds no values at all
func (s EntitySet) Empty() bool {
	for _, values := range s {
		if len(values) > 0 {
			return false
		}
	}
	return true
}

// ContainsFold reports whether any recorded value contains the token
// case-insensitively, or vice versa. Used to drop query keywords that
// are really fragments of an extracted name.
func (s EntitySet) ContainsFold(token string) bool {
	lower := strings.ToLower(token)
	for _, values := range s {
		for _, value := range values {
			v := strings.ToLower(value)
			if strings.Contains(v, lower) || strings.Contains(lower, v) {
				return true
			}
		}
	}
	return false
}
