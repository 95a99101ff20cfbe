// Package entity defines the domain entities for the monsters feature.
package entity

import "time"

// Alignment codes used by monster stat blocks.
const (
	AlignmentLawful  = "L"
	AlignmentChaotic = "C"
	AlignmentNeutral = "N"
)

// Trait is a named special ability of a monster.
type Trait struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Monster is one stat block of the reference table.
// Ability fields hold modifiers, not raw scores, and may be negative.
type Monster struct {
	ID        uint
	CreatedAt time.Time

	Name        string
	Slug        string
	Description string

	ArmorClass int
	ArmorType  *string
	HitPoints  int
	Attacks    string
	Movement   string

	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int

	Alignment string
	Level     int
	Traits    []Trait
}
