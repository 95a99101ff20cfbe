package usecase

import (
	"context"

	"shadowdark_backend/internal/feature/auth/domain/entity"
)

// SessionRepository stores refresh-token sessions. Both the SQL adapter and
// the Redis store in platform/session satisfy it.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error

	// FindByID returns ErrSessionNotFound for unknown refresh tokens.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Revoke stamps RevokedAt; ErrSessionNotFound when the ID is unknown.
	Revoke(ctx context.Context, id string) error

	RevokeAllByUserID(ctx context.Context, userID uint) error

	// DeleteExpired removes sessions past their expiry and returns how many went.
	DeleteExpired(ctx context.Context) (int64, error)

	// CountByUserID counts sessions that are neither revoked nor expired.
	CountByUserID(ctx context.Context, userID uint) (int64, error)

	// DeleteOldestByUserID drops the oldest live session; no-op when there is none.
	DeleteOldestByUserID(ctx context.Context, userID uint) error
}
