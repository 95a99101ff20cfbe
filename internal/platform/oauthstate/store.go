// Package oauthstate issues single-use OAuth state values.
package oauthstate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrUnknownState is returned when a state was never issued, has expired or was already used.
var ErrUnknownState = errors.New("unknown oauth state")

// redisStore keeps states in Redis so any API replica can finish the flow.
type redisStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed state store.
func NewRedisStore(rdb *redis.Client, prefix string, ttl time.Duration) *redisStore {
	return &redisStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *redisStore) key(state string) string {
	return fmt.Sprintf("%s:%s", s.prefix, state)
}

func (s *redisStore) Issue(ctx context.Context) (string, error) {
	state := uuid.NewString()
	if err := s.rdb.Set(ctx, s.key(state), 1, s.ttl).Err(); err != nil {
		return "", err
	}
	return state, nil
}

// Consume deletes the state atomically, so a replayed callback fails.
func (s *redisStore) Consume(ctx context.Context, state string) error {
	if state == "" {
		return ErrUnknownState
	}
	err := s.rdb.GetDel(ctx, s.key(state)).Err()
	if errors.Is(err, redis.Nil) {
		return ErrUnknownState
	}
	return err
}

// memoryStore is the single-process fallback used when Redis is not configured.
type memoryStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	issued map[string]time.Time
}

// NewMemoryStore creates an in-process state store.
func NewMemoryStore(ttl time.Duration) *memoryStore {
	return &memoryStore{ttl: ttl, now: time.Now, issued: make(map[string]time.Time)}
}

func (s *memoryStore) Issue(ctx context.Context) (string, error) {
	state := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, exp := range s.issued {
		if !now.Before(exp) {
			delete(s.issued, k)
		}
	}
	s.issued[state] = now.Add(s.ttl)
	return state, nil
}

func (s *memoryStore) Consume(ctx context.Context, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.issued[state]
	if !ok {
		return ErrUnknownState
	}
	delete(s.issued, state)
	if !s.now().Before(exp) {
		return ErrUnknownState
	}
	return nil
}
