package adapters

import (
	"time"

	"gorm.io/datatypes"

	"shadowdark_backend/internal/feature/spells/domain/entity"
)

// SpellModel is the GORM model for the spells table.
type SpellModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`

	Name        string                      `gorm:"size:255;not null;index:idx_spells_by_name"`
	Slug        string                      `gorm:"size:255;not null;uniqueIndex:idx_spells_by_slug"`
	Description string                      `gorm:"type:text;not null;default:''"`
	Classes     datatypes.JSONSlice[string] `gorm:"not null"`
	Duration    string                      `gorm:"size:255;not null;default:''"`
	Range       string                      `gorm:"size:255;not null;default:''"`
	Tier        string                      `gorm:"size:8;not null;index:idx_spells_by_tier"`
}

// TableName returns the table name for GORM.
func (SpellModel) TableName() string {
	return "spells"
}

// ToEntity converts the GORM model to a domain entity.
func (m *SpellModel) ToEntity() entity.Spell {
	classes := make([]string, len(m.Classes))
	copy(classes, m.Classes)
	return entity.Spell{
		ID:          m.ID,
		CreatedAt:   m.CreatedAt,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Classes:     classes,
		Duration:    m.Duration,
		Range:       m.Range,
		Tier:        m.Tier,
	}
}

// SpellModelFromEntity converts a domain entity to a GORM model.
func SpellModelFromEntity(e *entity.Spell) *SpellModel {
	classes := e.Classes
	if classes == nil {
		classes = []string{}
	}
	return &SpellModel{
		ID:          e.ID,
		CreatedAt:   e.CreatedAt,
		Name:        e.Name,
		Slug:        e.Slug,
		Description: e.Description,
		Classes:     datatypes.NewJSONSlice(classes),
		Duration:    e.Duration,
		Range:       e.Range,
		Tier:        e.Tier,
	}
}
