package usecase

import "errors"

var (
	// ErrUnauthenticated is returned when an operation needs a signed-in caller.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrProfileNotFound is returned when the caller has no profile yet.
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrProfileExists is returned by a repository when a profile for the user already exists.
	ErrProfileExists = errors.New("user profile already exists")

	// ErrUnsupportedPreferencesVersion is returned for preferences written in an unknown layout.
	ErrUnsupportedPreferencesVersion = errors.New("unsupported preferences version")
)
