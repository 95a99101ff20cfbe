// Package dto defines data transfer objects for the profile HTTP API.
package dto

import (
	"time"

	"shadowdark_backend/internal/feature/profile/domain/entity"
	"shadowdark_backend/internal/feature/profile/usecase"
)

// UpsertProfileRequest is the body of PUT /me/profile.
type UpsertProfileRequest struct {
	DisplayName string  `json:"display_name" binding:"required,max=255"`
	AvatarURL   *string `json:"avatar_url" binding:"omitempty,url,max=1024"`
}

// UpdatePreferencesRequest is the body of PUT /me/preferences.
// Omitted fields clear the stored value.
type UpdatePreferencesRequest struct {
	FavoriteTablesPreferences *entity.TablePreferences `json:"favorite_tables_preferences"`
	ThemePreference           *string                  `json:"theme_preference" binding:"omitempty,oneof=light dark system"`
}

// ProfileResponse is the caller's profile as returned by GET /me/profile.
type ProfileResponse struct {
	ID                        uint                     `json:"id"`
	CreatedAt                 time.Time                `json:"created_at"`
	UpdatedAt                 time.Time                `json:"updated_at"`
	UserID                    uint                     `json:"user_id"`
	DisplayName               string                   `json:"display_name"`
	AvatarURL                 *string                  `json:"avatar_url"`
	FavoriteTablesPreferences *entity.TablePreferences `json:"favorite_tables_preferences"`
	ThemePreference           *string                  `json:"theme_preference"`
	Email                     string                   `json:"email,omitempty"`
}

// FromCurrent converts the usecase result to its API representation.
func FromCurrent(cp usecase.CurrentProfile) ProfileResponse {
	p := cp.Profile
	return ProfileResponse{
		ID:                        p.ID,
		CreatedAt:                 p.CreatedAt,
		UpdatedAt:                 p.UpdatedAt,
		UserID:                    p.UserID,
		DisplayName:               p.DisplayName,
		AvatarURL:                 p.AvatarURL,
		FavoriteTablesPreferences: p.FavoriteTablesPreferences,
		ThemePreference:           p.ThemePreference,
		Email:                     cp.Email,
	}
}
