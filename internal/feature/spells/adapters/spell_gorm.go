// Package adapters provides repository implementations for the spells feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shadowdark_backend/internal/feature/spells/domain/entity"
	"shadowdark_backend/internal/feature/spells/usecase"
	"shadowdark_backend/internal/shared/catalog"
)

type spellGorm struct {
	db *gorm.DB
}

var _ usecase.SpellRepository = (*spellGorm)(nil)

// NewSpellRepository creates a GORM-backed spell repository.
func NewSpellRepository(db *gorm.DB) *spellGorm {
	return &spellGorm{db: db}
}

// ListSortedByName walks the by_name index. Equal names fall back to insertion order.
func (r *spellGorm) ListSortedByName(ctx context.Context) ([]entity.Spell, error) {
	var rows []SpellModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// ListByTier walks the tier index and sorts by name.
func (r *spellGorm) ListByTier(ctx context.Context, tier string) ([]entity.Spell, error) {
	var rows []SpellModel
	if err := r.db.WithContext(ctx).
		Where("tier = ?", tier).
		Order("name ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// FindBySlug returns the spell with the given slug.
func (r *spellGorm) FindBySlug(ctx context.Context, slug string) (*entity.Spell, error) {
	var m SpellModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSpellNotFound
		}
		return nil, err
	}
	e := m.ToEntity()
	return &e, nil
}

// InsertIfAbsent inserts s unless its slug is taken. A unique-index violation
// from a concurrent insert of the same slug is reported as skipped.
func (r *spellGorm) InsertIfAbsent(ctx context.Context, s *entity.Spell) (catalog.InsertStatus, error) {
	db := r.db.WithContext(ctx)

	var existing SpellModel
	err := db.Select("id").Where("slug = ?", s.Slug).First(&existing).Error
	if err == nil {
		return catalog.StatusSkipped, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	model := SpellModelFromEntity(s)
	model.ID = 0
	if err := db.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return catalog.StatusSkipped, nil
		}
		return "", err
	}
	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	return catalog.StatusInserted, nil
}

func toEntities(rows []SpellModel) []entity.Spell {
	out := make([]entity.Spell, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out
}
