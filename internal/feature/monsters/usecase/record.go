package usecase

import (
	"encoding/json"
	"fmt"

	"shadowdark_backend/internal/feature/monsters/domain/entity"
	"shadowdark_backend/internal/shared/catalog"
)

// MonsterRecord is the shape of one element of a monster seed collection.
// Numeric fields are pointers so a legitimate zero modifier passes "required".
type MonsterRecord struct {
	Name         string        `json:"name" validate:"required"`
	Slug         string        `json:"slug" validate:"required"`
	Description  string        `json:"description"`
	ArmorClass   *int          `json:"armor_class" validate:"required"`
	ArmorType    *string       `json:"armor_type"`
	HitPoints    *int          `json:"hit_points" validate:"required"`
	Attacks      string        `json:"attacks"`
	Movement     string        `json:"movement"`
	Strength     *int          `json:"strength" validate:"required"`
	Dexterity    *int          `json:"dexterity" validate:"required"`
	Constitution *int          `json:"constitution" validate:"required"`
	Intelligence *int          `json:"intelligence" validate:"required"`
	Wisdom       *int          `json:"wisdom" validate:"required"`
	Charisma     *int          `json:"charisma" validate:"required"`
	Alignment    string        `json:"alignment" validate:"required,oneof=L C N"`
	Level        *int          `json:"level" validate:"required"`
	Traits       []TraitRecord `json:"traits" validate:"dive"`
}

// TraitRecord is one element of MonsterRecord.Traits.
type TraitRecord struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

var validate = catalog.NewValidator()

// DecodeRecord parses and validates one seed element.
func DecodeRecord(raw json.RawMessage) (entity.Monster, error) {
	var rec MonsterRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return entity.Monster{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if err := validate.Struct(rec); err != nil {
		return entity.Monster{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return rec.toEntity(), nil
}

func (r MonsterRecord) toEntity() entity.Monster {
	traits := make([]entity.Trait, 0, len(r.Traits))
	for _, t := range r.Traits {
		traits = append(traits, entity.Trait{Name: t.Name, Description: t.Description})
	}
	return entity.Monster{
		Name:         r.Name,
		Slug:         r.Slug,
		Description:  r.Description,
		ArmorClass:   *r.ArmorClass,
		ArmorType:    r.ArmorType,
		HitPoints:    *r.HitPoints,
		Attacks:      r.Attacks,
		Movement:     r.Movement,
		Strength:     *r.Strength,
		Dexterity:    *r.Dexterity,
		Constitution: *r.Constitution,
		Intelligence: *r.Intelligence,
		Wisdom:       *r.Wisdom,
		Charisma:     *r.Charisma,
		Alignment:    r.Alignment,
		Level:        *r.Level,
		Traits:       traits,
	}
}
