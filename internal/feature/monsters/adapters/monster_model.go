package adapters

import (
	"time"

	"gorm.io/datatypes"

	"shadowdark_backend/internal/feature/monsters/domain/entity"
)

// MonsterModel is the GORM model for the monsters table.
type MonsterModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`

	Name        string `gorm:"size:255;not null;index:idx_monsters_by_name"`
	Slug        string `gorm:"size:255;not null;uniqueIndex:idx_monsters_by_slug"`
	Description string `gorm:"type:text;not null;default:''"`

	ArmorClass int     `gorm:"not null"`
	ArmorType  *string `gorm:"size:255"`
	HitPoints  int     `gorm:"not null"`
	Attacks    string  `gorm:"type:text;not null;default:''"`
	Movement   string  `gorm:"size:255;not null;default:''"`

	Strength     int `gorm:"not null"`
	Dexterity    int `gorm:"not null"`
	Constitution int `gorm:"not null"`
	Intelligence int `gorm:"not null"`
	Wisdom       int `gorm:"not null"`
	Charisma     int `gorm:"not null"`

	Alignment string                            `gorm:"size:1;not null"`
	Level     int                               `gorm:"not null;index:idx_monsters_by_level"`
	Traits    datatypes.JSONSlice[entity.Trait] `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (MonsterModel) TableName() string {
	return "monsters"
}

// ToEntity converts the GORM model to a domain entity.
func (m *MonsterModel) ToEntity() entity.Monster {
	traits := make([]entity.Trait, len(m.Traits))
	copy(traits, m.Traits)
	return entity.Monster{
		ID:           m.ID,
		CreatedAt:    m.CreatedAt,
		Name:         m.Name,
		Slug:         m.Slug,
		Description:  m.Description,
		ArmorClass:   m.ArmorClass,
		ArmorType:    m.ArmorType,
		HitPoints:    m.HitPoints,
		Attacks:      m.Attacks,
		Movement:     m.Movement,
		Strength:     m.Strength,
		Dexterity:    m.Dexterity,
		Constitution: m.Constitution,
		Intelligence: m.Intelligence,
		Wisdom:       m.Wisdom,
		Charisma:     m.Charisma,
		Alignment:    m.Alignment,
		Level:        m.Level,
		Traits:       traits,
	}
}

// MonsterModelFromEntity converts a domain entity to a GORM model.
func MonsterModelFromEntity(e *entity.Monster) *MonsterModel {
	traits := e.Traits
	if traits == nil {
		traits = []entity.Trait{}
	}
	return &MonsterModel{
		ID:           e.ID,
		CreatedAt:    e.CreatedAt,
		Name:         e.Name,
		Slug:         e.Slug,
		Description:  e.Description,
		ArmorClass:   e.ArmorClass,
		ArmorType:    e.ArmorType,
		HitPoints:    e.HitPoints,
		Attacks:      e.Attacks,
		Movement:     e.Movement,
		Strength:     e.Strength,
		Dexterity:    e.Dexterity,
		Constitution: e.Constitution,
		Intelligence: e.Intelligence,
		Wisdom:       e.Wisdom,
		Charisma:     e.Charisma,
		Alignment:    e.Alignment,
		Level:        e.Level,
		Traits:       datatypes.NewJSONSlice(traits),
	}
}
