// Package cache provides Redis read-through decorators for the catalog repositories.
package cache

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTTL is used when a decorator is built with a non-positive TTL.
const DefaultTTL = 10 * time.Minute

// snapshots caches JSON snapshots of query results under one namespace.
// A nil client turns every call into a pass-through.
type snapshots struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

func newSnapshots(rdb *redis.Client, ttl time.Duration, namespace string) snapshots {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return snapshots{rdb: rdb, ttl: ttl, namespace: namespace}
}

func (s snapshots) key(parts ...string) string {
	escaped := make([]string, 0, len(parts)+1)
	escaped = append(escaped, s.namespace)
	for _, p := range parts {
		escaped = append(escaped, safe(p))
	}
	return strings.Join(escaped, ":")
}

// load returns the cached value for key, or calls fetch and caches its result.
// Cache failures never fail the read.
func load[T any](ctx context.Context, s snapshots, key string, fetch func() (T, error)) (T, error) {
	if s.rdb == nil {
		return fetch()
	}

	if b, err := s.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// corrupted entry
		_ = s.rdb.Del(ctx, key).Err()
	}

	out, err := fetch()
	if err != nil {
		return out, err
	}
	if b, err := json.Marshal(out); err == nil {
		_ = s.rdb.Set(ctx, key, b, s.ttl).Err()
	}
	return out, nil
}

// invalidate drops every snapshot in the namespace. Best effort.
func (s snapshots) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	_ = s.deleteByPattern(ctx, s.namespace+":*")
}

// deleteByPattern deletes all keys matching pattern using SCAN.
func (s snapshots) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := s.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			return nil
		}
	}
}

// safe escapes a key part so it cannot contain the ":" separator or SCAN
// glob characters. Distinct parts always yield distinct keys.
func safe(s string) string {
	return url.QueryEscape(s)
}
