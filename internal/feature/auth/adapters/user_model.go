package adapters

import (
	"time"

	"shadowdark_backend/internal/feature/auth/domain/entity"
)

// UserModel represents the "users" table.
type UserModel struct {
	ID          uint      `gorm:"primaryKey"`
	Provider    string    `gorm:"size:32;not null;uniqueIndex:idx_users_by_identity,priority:1"`
	Subject     string    `gorm:"size:128;not null;uniqueIndex:idx_users_by_identity,priority:2"`
	Email       string    `gorm:"size:255;index"`
	DisplayName string    `gorm:"size:255;not null"`
	AvatarURL   *string   `gorm:"size:1024"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName overrides the default table name.
func (UserModel) TableName() string { return "users" }

// ToEntity converts the model to a domain entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:          m.ID,
		Provider:    m.Provider,
		Subject:     m.Subject,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		AvatarURL:   m.AvatarURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
