// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "shadowdark_backend/internal/feature/auth/adapters"
	"shadowdark_backend/internal/feature/auth/usecase"
	"shadowdark_backend/internal/platform/oauthstate"
	"shadowdark_backend/internal/platform/session"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the sessions table.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return authadapters.NewSessionRepository(db)
}

// NewStateStore creates the OAuth state store, shared through Redis when available.
// The in-memory fallback only works with a single server instance.
func NewStateStore(rdb *redis.Client, ttl time.Duration) usecase.StateStore {
	if rdb != nil {
		return oauthstate.NewRedisStore(rdb, "oauth_state", ttl)
	}
	return oauthstate.NewMemoryStore(ttl)
}
