package usecase

import (
	"encoding/json"
	"fmt"

	"shadowdark_backend/internal/feature/spells/domain/entity"
	"shadowdark_backend/internal/shared/catalog"
)

// SpellRecord is the shape of one element of a spell seed collection.
type SpellRecord struct {
	Name        string   `json:"name" validate:"required"`
	Slug        string   `json:"slug" validate:"required"`
	Description string   `json:"description"`
	Classes     []string `json:"classes" validate:"dive,required"`
	Duration    string   `json:"duration"`
	Range       string   `json:"range"`
	Tier        string   `json:"tier" validate:"required,oneof=1 2 3 4 5"`
}

var validate = catalog.NewValidator()

// DecodeRecord parses and validates one seed element.
func DecodeRecord(raw json.RawMessage) (entity.Spell, error) {
	var rec SpellRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return entity.Spell{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if err := validate.Struct(rec); err != nil {
		return entity.Spell{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	classes := rec.Classes
	if classes == nil {
		classes = []string{}
	}
	return entity.Spell{
		Name:        rec.Name,
		Slug:        rec.Slug,
		Description: rec.Description,
		Classes:     classes,
		Duration:    rec.Duration,
		Range:       rec.Range,
		Tier:        rec.Tier,
	}, nil
}
