// Package entity defines the domain entities for the spells feature.
package entity

import (
	"slices"
	"strings"
	"time"
)

// Spell is one entry of the spell reference table.
// Tier is kept string-encoded ("1".."5") as it appears in the source data.
type Spell struct {
	ID        uint
	CreatedAt time.Time

	Name        string
	Slug        string
	Description string
	Classes     []string
	Duration    string
	Range       string
	Tier        string
}

// CastableBy reports whether class appears in the spell's class list, ignoring case.
func (s Spell) CastableBy(class string) bool {
	return slices.ContainsFunc(s.Classes, func(c string) bool {
		return strings.EqualFold(c, class)
	})
}
