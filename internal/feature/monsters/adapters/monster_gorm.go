// Package adapters provides repository implementations for the monsters feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shadowdark_backend/internal/feature/monsters/domain/entity"
	"shadowdark_backend/internal/feature/monsters/usecase"
	"shadowdark_backend/internal/shared/catalog"
)

type monsterGorm struct {
	db *gorm.DB
}

var _ usecase.MonsterRepository = (*monsterGorm)(nil)

// NewMonsterRepository creates a GORM-backed monster repository.
func NewMonsterRepository(db *gorm.DB) *monsterGorm {
	return &monsterGorm{db: db}
}

// ListSortedByName walks the by_name index. Equal names fall back to insertion order.
func (r *monsterGorm) ListSortedByName(ctx context.Context) ([]entity.Monster, error) {
	var rows []MonsterModel
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// ListByLevel walks the by_level index and sorts by name.
func (r *monsterGorm) ListByLevel(ctx context.Context, level int) ([]entity.Monster, error) {
	var rows []MonsterModel
	if err := r.db.WithContext(ctx).
		Where("level = ?", level).
		Order("name ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toEntities(rows), nil
}

// FindBySlug returns the monster with the given slug.
func (r *monsterGorm) FindBySlug(ctx context.Context, slug string) (*entity.Monster, error) {
	var m MonsterModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMonsterNotFound
		}
		return nil, err
	}
	e := m.ToEntity()
	return &e, nil
}

// InsertIfAbsent inserts m unless its slug is taken. A unique-index violation
// from a concurrent insert of the same slug is reported as skipped.
func (r *monsterGorm) InsertIfAbsent(ctx context.Context, m *entity.Monster) (catalog.InsertStatus, error) {
	db := r.db.WithContext(ctx)

	var existing MonsterModel
	err := db.Select("id").Where("slug = ?", m.Slug).First(&existing).Error
	if err == nil {
		return catalog.StatusSkipped, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	model := MonsterModelFromEntity(m)
	model.ID = 0
	if err := db.Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return catalog.StatusSkipped, nil
		}
		return "", err
	}
	m.ID = model.ID
	m.CreatedAt = model.CreatedAt
	return catalog.StatusInserted, nil
}

func toEntities(rows []MonsterModel) []entity.Monster {
	out := make([]entity.Monster, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToEntity())
	}
	return out
}
