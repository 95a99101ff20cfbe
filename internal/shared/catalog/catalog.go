// Package catalog holds the pieces shared by the reference-data tables
// (monsters, spells): the name filter used by search and the insert outcome
// reported by the seed pipeline.
package catalog

import "strings"

// InsertStatus is the outcome of an insert-if-absent call.
type InsertStatus string

const (
	// StatusInserted means a new row was written.
	StatusInserted InsertStatus = "inserted"
	// StatusSkipped means a row with the same slug already existed and was left untouched.
	StatusSkipped InsertStatus = "skipped"
)

// InsertResult is returned for every record handed to an insert-if-absent operation.
type InsertResult struct {
	Status InsertStatus `json:"action"`
	Slug   string       `json:"slug"`
}

// SearchTerm reports whether term carries a usable search string.
// nil, empty and whitespace-only terms are treated as "no search".
func SearchTerm(term *string) (string, bool) {
	if term == nil || strings.TrimSpace(*term) == "" {
		return "", false
	}
	return *term, true
}

// FilterByName keeps the items whose lower-cased name contains the lower-cased term.
// The order of items is preserved. The term is not trimmed, so surrounding
// spaces take part in the match.
func FilterByName[T any](items []T, term string, name func(T) string) []T {
	needle := strings.ToLower(term)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(name(it)), needle) {
			out = append(out, it)
		}
	}
	return out
}
