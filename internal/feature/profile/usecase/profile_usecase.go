// Package usecase implements the user profile operations.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"shadowdark_backend/internal/feature/profile/domain/entity"
)

// Identity is the authenticated caller as established by the access token.
type Identity struct {
	UserID uint
	Email  string
}

// CurrentProfile is the caller's profile together with the email of their account.
type CurrentProfile struct {
	Profile entity.UserProfile
	Email   string
}

// ProfileRepository abstracts the user_profiles table.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ProfileRepository interface {
	// FindByUserID returns ErrProfileNotFound when the user has no profile.
	FindByUserID(ctx context.Context, userID uint) (*entity.UserProfile, error)

	// Create returns ErrProfileExists when the user already has a profile.
	Create(ctx context.Context, p *entity.UserProfile) error

	// UpdateIdentity overwrites display_name and avatar_url.
	UpdateIdentity(ctx context.Context, id uint, displayName string, avatarURL *string) error

	// UpdatePreferences overwrites both preference columns; nil clears a column.
	UpdatePreferences(ctx context.Context, id uint, prefs *entity.TablePreferences, theme *string) error
}

type profileUsecase struct {
	repo ProfileRepository
}

// NewProfileUsecase creates a profileUsecase backed by repo.
func NewProfileUsecase(repo ProfileRepository) *profileUsecase {
	return &profileUsecase{repo: repo}
}

// GetCurrent returns the caller's profile, or nil when the caller is anonymous
// or has no profile yet.
func (u *profileUsecase) GetCurrent(ctx context.Context, id *Identity) (*CurrentProfile, error) {
	if id == nil {
		return nil, nil
	}
	p, err := u.repo.FindByUserID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &CurrentProfile{Profile: *p, Email: id.Email}, nil
}

// Upsert sets display name and avatar on the caller's profile, creating the
// profile when it does not exist yet. It returns the profile ID.
func (u *profileUsecase) Upsert(ctx context.Context, id *Identity, displayName string, avatarURL *string) (uint, error) {
	if id == nil {
		return 0, ErrUnauthenticated
	}

	existing, err := u.repo.FindByUserID(ctx, id.UserID)
	switch {
	case err == nil:
		return existing.ID, u.repo.UpdateIdentity(ctx, existing.ID, displayName, avatarURL)
	case !errors.Is(err, ErrProfileNotFound):
		return 0, err
	}

	p := &entity.UserProfile{UserID: id.UserID, DisplayName: displayName, AvatarURL: avatarURL}
	err = u.repo.Create(ctx, p)
	if err == nil {
		return p.ID, nil
	}
	if !errors.Is(err, ErrProfileExists) {
		return 0, err
	}

	// lost the race against a concurrent first write; patch the winner instead
	existing, err = u.repo.FindByUserID(ctx, id.UserID)
	if err != nil {
		return 0, fmt.Errorf("reload profile after conflict: %w", err)
	}
	return existing.ID, u.repo.UpdateIdentity(ctx, existing.ID, displayName, avatarURL)
}

// UpdatePreferences replaces the caller's table and theme preferences.
// Omitted values clear the stored ones.
func (u *profileUsecase) UpdatePreferences(ctx context.Context, id *Identity, prefs *entity.TablePreferences, theme *string) error {
	if id == nil {
		return ErrUnauthenticated
	}
	if prefs != nil && prefs.Version != entity.PreferencesVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedPreferencesVersion, prefs.Version)
	}

	p, err := u.repo.FindByUserID(ctx, id.UserID)
	if err != nil {
		return err
	}
	return u.repo.UpdatePreferences(ctx, p.ID, prefs, theme)
}

// EnsureProfile creates a profile for a freshly signed-in user. An existing
// profile is left as it is.
func (u *profileUsecase) EnsureProfile(ctx context.Context, userID uint, displayName string, avatarURL *string) error {
	_, err := u.repo.FindByUserID(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return err
	}
	err = u.repo.Create(ctx, &entity.UserProfile{UserID: userID, DisplayName: displayName, AvatarURL: avatarURL})
	if errors.Is(err, ErrProfileExists) {
		return nil
	}
	return err
}
