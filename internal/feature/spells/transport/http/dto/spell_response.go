// Package dto defines data transfer objects for the spells HTTP API.
package dto

import (
	"time"

	"shadowdark_backend/internal/feature/spells/domain/entity"
	"shadowdark_backend/internal/shared/catalog"
)

// SpellItem is a spell as returned by list and detail endpoints.
type SpellItem struct {
	ID          uint      `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Classes     []string  `json:"classes"`
	ClassNames  []string  `json:"class_names"`
	Duration    string    `json:"duration"`
	Range       string    `json:"range"`
	Tier        string    `json:"tier"`
	TierLabel   string    `json:"tier_label"`
}

// FromEntity converts a spell entity to its API representation.
func FromEntity(s entity.Spell) SpellItem {
	classes := s.Classes
	if classes == nil {
		classes = []string{}
	}
	return SpellItem{
		ID:          s.ID,
		CreatedAt:   s.CreatedAt,
		Name:        s.Name,
		Slug:        s.Slug,
		Description: s.Description,
		Classes:     classes,
		ClassNames:  catalog.ClassNames(classes),
		Duration:    s.Duration,
		Range:       s.Range,
		Tier:        s.Tier,
		TierLabel:   catalog.TierLabel(s.Tier),
	}
}
