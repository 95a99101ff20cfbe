// Package dto defines data transfer objects for the monsters HTTP API.
package dto

import (
	"time"

	"shadowdark_backend/internal/feature/monsters/domain/entity"
	"shadowdark_backend/internal/shared/catalog"
)

// TraitItem is one special ability in a monster response.
type TraitItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MonsterItem is a full monster stat block as returned by list and detail endpoints.
type MonsterItem struct {
	ID            uint        `json:"id"`
	CreatedAt     time.Time   `json:"created_at"`
	Name          string      `json:"name"`
	Slug          string      `json:"slug"`
	Description   string      `json:"description"`
	ArmorClass    int         `json:"armor_class"`
	ArmorType     *string     `json:"armor_type"`
	HitPoints     int         `json:"hit_points"`
	Attacks       string      `json:"attacks"`
	Movement      string      `json:"movement"`
	Strength      int         `json:"strength"`
	Dexterity     int         `json:"dexterity"`
	Constitution  int         `json:"constitution"`
	Intelligence  int         `json:"intelligence"`
	Wisdom        int         `json:"wisdom"`
	Charisma      int         `json:"charisma"`
	Alignment     string      `json:"alignment"`
	AlignmentName string      `json:"alignment_name"`
	Level         int         `json:"level"`
	Traits        []TraitItem `json:"traits"`
}

// FromEntity converts a monster entity to its API representation.
func FromEntity(m entity.Monster) MonsterItem {
	traits := make([]TraitItem, 0, len(m.Traits))
	for _, t := range m.Traits {
		traits = append(traits, TraitItem{Name: t.Name, Description: t.Description})
	}
	return MonsterItem{
		ID:            m.ID,
		CreatedAt:     m.CreatedAt,
		Name:          m.Name,
		Slug:          m.Slug,
		Description:   m.Description,
		ArmorClass:    m.ArmorClass,
		ArmorType:     m.ArmorType,
		HitPoints:     m.HitPoints,
		Attacks:       m.Attacks,
		Movement:      m.Movement,
		Strength:      m.Strength,
		Dexterity:     m.Dexterity,
		Constitution:  m.Constitution,
		Intelligence:  m.Intelligence,
		Wisdom:        m.Wisdom,
		Charisma:      m.Charisma,
		Alignment:     m.Alignment,
		AlignmentName: catalog.AlignmentName(m.Alignment),
		Level:         m.Level,
		Traits:        traits,
	}
}
