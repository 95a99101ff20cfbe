package adapters

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"shadowdark_backend/internal/feature/profile/domain/entity"
)

// UserProfileModel represents the "user_profiles" table.
type UserProfileModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	UserID                    uint           `gorm:"not null;uniqueIndex:idx_user_profiles_by_user_id"`
	DisplayName               string         `gorm:"size:255;not null"`
	AvatarURL                 *string        `gorm:"size:1024"`
	FavoriteTablesPreferences datatypes.JSON `gorm:"column:favorite_tables_preferences"`
	ThemePreference           *string        `gorm:"size:32"`
}

// TableName overrides the default table name.
func (UserProfileModel) TableName() string { return "user_profiles" }

// ToEntity converts the model to a domain entity. Unreadable preferences are
// dropped rather than failing the whole profile.
func (m *UserProfileModel) ToEntity() entity.UserProfile {
	return entity.UserProfile{
		ID:                        m.ID,
		CreatedAt:                 m.CreatedAt,
		UpdatedAt:                 m.UpdatedAt,
		UserID:                    m.UserID,
		DisplayName:               m.DisplayName,
		AvatarURL:                 m.AvatarURL,
		FavoriteTablesPreferences: decodePreferences(m.FavoriteTablesPreferences),
		ThemePreference:           m.ThemePreference,
	}
}

// UserProfileModelFromEntity converts a domain entity to a model.
func UserProfileModelFromEntity(p *entity.UserProfile) (*UserProfileModel, error) {
	prefs, err := encodePreferences(p.FavoriteTablesPreferences)
	if err != nil {
		return nil, err
	}
	return &UserProfileModel{
		ID:                        p.ID,
		CreatedAt:                 p.CreatedAt,
		UpdatedAt:                 p.UpdatedAt,
		UserID:                    p.UserID,
		DisplayName:               p.DisplayName,
		AvatarURL:                 p.AvatarURL,
		FavoriteTablesPreferences: prefs,
		ThemePreference:           p.ThemePreference,
	}, nil
}

func encodePreferences(p *entity.TablePreferences) (datatypes.JSON, error) {
	if p == nil {
		return nil, nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func decodePreferences(raw datatypes.JSON) *entity.TablePreferences {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var p entity.TablePreferences
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return &p
}
