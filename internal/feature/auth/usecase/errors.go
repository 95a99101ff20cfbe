// Package usecase implements sign-in and session management for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidState is returned when an OAuth callback carries an unknown or reused state.
	ErrInvalidState = errors.New("invalid oauth state")

	// ErrProviderExchange is returned when the identity provider rejects the authorization code.
	ErrProviderExchange = errors.New("identity provider exchange failed")

	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionRevoked is returned when attempting to use a revoked session.
	ErrSessionRevoked = errors.New("session has been revoked")

	// ErrSessionExpired is returned when attempting to use an expired session.
	ErrSessionExpired = errors.New("session has expired")

	// ErrInvalidRefreshToken is returned when a refresh token is unknown or malformed.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
