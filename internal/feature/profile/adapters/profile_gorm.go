// Package adapters provides the GORM implementation of the profile repository.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shadowdark_backend/internal/feature/profile/domain/entity"
	"shadowdark_backend/internal/feature/profile/usecase"
)

type profileGorm struct {
	db *gorm.DB
}

var _ usecase.ProfileRepository = (*profileGorm)(nil)

// NewProfileRepository creates a GORM-backed profile repository.
func NewProfileRepository(db *gorm.DB) *profileGorm {
	return &profileGorm{db: db}
}

func (r *profileGorm) FindByUserID(ctx context.Context, userID uint) (*entity.UserProfile, error) {
	var m UserProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProfileNotFound
		}
		return nil, err
	}
	p := m.ToEntity()
	return &p, nil
}

func (r *profileGorm) Create(ctx context.Context, p *entity.UserProfile) error {
	m, err := UserProfileModelFromEntity(p)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return usecase.ErrProfileExists
		}
		return err
	}
	p.ID = m.ID
	p.CreatedAt = m.CreatedAt
	p.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *profileGorm) UpdateIdentity(ctx context.Context, id uint, displayName string, avatarURL *string) error {
	return r.update(ctx, id, map[string]any{
		"display_name": displayName,
		"avatar_url":   avatarURL,
	})
}

func (r *profileGorm) UpdatePreferences(ctx context.Context, id uint, prefs *entity.TablePreferences, theme *string) error {
	encoded, err := encodePreferences(prefs)
	if err != nil {
		return err
	}
	values := map[string]any{"theme_preference": theme}
	if encoded == nil {
		values["favorite_tables_preferences"] = gorm.Expr("NULL")
	} else {
		values["favorite_tables_preferences"] = encoded
	}
	return r.update(ctx, id, values)
}

// update writes values to one row. Map updates keep nil values so they clear the column.
func (r *profileGorm) update(ctx context.Context, id uint, values map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&UserProfileModel{}).
		Where("id = ?", id).
		Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProfileNotFound
	}
	return nil
}
