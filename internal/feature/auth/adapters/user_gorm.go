package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shadowdark_backend/internal/feature/auth/domain/entity"
	"shadowdark_backend/internal/feature/auth/usecase"
)

type userGorm struct {
	db *gorm.DB
}

var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserRepository creates a GORM-backed user repository.
func NewUserRepository(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// UpsertByIdentity inserts the user or, on a (provider, subject) conflict,
// refreshes the provider-sourced columns. The stored row is returned.
func (r *userGorm) UpsertByIdentity(ctx context.Context, id entity.ExternalIdentity) (*entity.User, error) {
	m := UserModel{
		Provider:    id.Provider,
		Subject:     id.Subject,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		AvatarURL:   id.AvatarURL,
	}
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "provider"}, {Name: "subject"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "display_name", "avatar_url", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return nil, err
	}

	var stored UserModel
	if err := db.Where("provider = ? AND subject = ?", id.Provider, id.Subject).First(&stored).Error; err != nil {
		return nil, err
	}
	return stored.ToEntity(), nil
}

func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var m UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}
