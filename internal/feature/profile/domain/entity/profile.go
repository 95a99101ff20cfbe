// Package entity defines the domain entities for the profile feature.
package entity

import "time"

// PreferencesVersion is the only TablePreferences layout this build understands.
const PreferencesVersion = 1

// TablePreferences is the user's saved state for the reference tables.
// Version is bumped whenever the layout changes incompatibly.
type TablePreferences struct {
	Version          int      `json:"version"`
	FavoriteMonsters []string `json:"favorite_monsters"`
	FavoriteSpells   []string `json:"favorite_spells"`
}

// UserProfile is the application-level profile attached to one user.
type UserProfile struct {
	ID        uint
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID                    uint
	DisplayName               string
	AvatarURL                 *string
	FavoriteTablesPreferences *TablePreferences
	ThemePreference           *string
}
