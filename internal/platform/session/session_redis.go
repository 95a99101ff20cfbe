// Package session stores refresh-token sessions in Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shadowdark_backend/internal/feature/auth/domain/entity"
	"shadowdark_backend/internal/feature/auth/usecase"
)

// SessionRedis implements usecase.SessionRepository on Redis.
//
// Layout:
//
//	<prefix>:<id>          session JSON, expires with the session
//	<prefix>:user:<userID> ZSET of the user's unrevoked session IDs scored by creation time
//
// A revoked session keeps its key until natural expiry so refresh-token reuse
// can still be detected.
type SessionRedis struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a SessionRedis.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{client: client, prefix: prefix, now: time.Now}
}

func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

func (r *SessionRedis) userSessionsKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

func (r *SessionRedis) Create(ctx context.Context, s *entity.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.sessionKey(s.ID), data, ttl)
		p.ZAdd(ctx, r.userSessionsKey(s.UserID), redis.Z{
			Score:  float64(s.CreatedAt.UnixNano()),
			Member: s.ID,
		})
		return nil
	})
	return err
}

func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var s entity.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *SessionRedis) Revoke(ctx context.Context, id string) error {
	s, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if s.RevokedAt != nil {
		return nil
	}

	now := r.now()
	s.RevokedAt = &now
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.SetArgs(ctx, r.sessionKey(id), data, redis.SetArgs{KeepTTL: true})
		p.ZRem(ctx, r.userSessionsKey(s.UserID), id)
		return nil
	})
	return err
}

func (r *SessionRedis) RevokeAllByUserID(ctx context.Context, userID uint) error {
	ids, err := r.client.ZRange(ctx, r.userSessionsKey(userID), 0, -1).Result()
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := r.Revoke(ctx, id); err != nil && !errors.Is(err, usecase.ErrSessionNotFound) {
			return err
		}
	}
	return r.client.Del(ctx, r.userSessionsKey(userID)).Err()
}

// liveIDs returns the user's live session IDs oldest first, pruning index
// entries whose session key has expired.
func (r *SessionRedis) liveIDs(ctx context.Context, userID uint) ([]string, error) {
	key := r.userSessionsKey(userID)
	ids, err := r.client.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	live := make([]string, 0, len(ids))
	for _, id := range ids {
		s, err := r.FindByID(ctx, id)
		if errors.Is(err, usecase.ErrSessionNotFound) {
			r.client.ZRem(ctx, key, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if s.IsValid(r.now()) {
			live = append(live, id)
		}
	}
	return live, nil
}

func (r *SessionRedis) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	ids, err := r.liveIDs(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int64(len(ids)), nil
}

func (r *SessionRedis) DeleteOldestByUserID(ctx context.Context, userID uint) error {
	ids, err := r.liveIDs(ctx, userID)
	if err != nil || len(ids) == 0 {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, r.sessionKey(ids[0]))
		p.ZRem(ctx, r.userSessionsKey(userID), ids[0])
		return nil
	})
	return err
}

// DeleteExpired prunes user index entries whose session key Redis has
// already expired. It returns the number of entries removed.
func (r *SessionRedis) DeleteExpired(ctx context.Context) (int64, error) {
	var (
		removed int64
		cursor  uint64
	)
	pattern := r.prefix + ":user:*"
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return removed, err
		}
		for _, key := range keys {
			n, err := r.pruneIndex(ctx, key)
			if err != nil {
				return removed, err
			}
			removed += n
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}

func (r *SessionRedis) pruneIndex(ctx context.Context, key string) (int64, error) {
	ids, err := r.client.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return 0, err
	}
	var stale []interface{}
	for _, id := range ids {
		n, err := r.client.Exists(ctx, r.sessionKey(id)).Result()
		if err != nil {
			return 0, err
		}
		if n == 0 {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}
	return r.client.ZRem(ctx, key, stale...).Result()
}
