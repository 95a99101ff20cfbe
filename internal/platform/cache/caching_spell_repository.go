package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"shadowdark_backend/internal/feature/spells/domain/entity"
	"shadowdark_backend/internal/feature/spells/usecase"
	"shadowdark_backend/internal/shared/catalog"
)

// CachingSpellRepository decorates a SpellRepository with Redis caching.
type CachingSpellRepository struct {
	inner usecase.SpellRepository
	snap  snapshots
}

var _ usecase.SpellRepository = (*CachingSpellRepository)(nil)

// NewCachingSpellRepository decorates inner. If namespace is empty, it uses "spells".
func NewCachingSpellRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SpellRepository, namespace string) *CachingSpellRepository {
	if namespace == "" {
		namespace = "spells"
	}
	return &CachingSpellRepository{inner: inner, snap: newSnapshots(rdb, ttl, namespace)}
}

func (c *CachingSpellRepository) ListSortedByName(ctx context.Context) ([]entity.Spell, error) {
	return load(ctx, c.snap, c.snap.key("by_name"), func() ([]entity.Spell, error) {
		return c.inner.ListSortedByName(ctx)
	})
}

func (c *CachingSpellRepository) ListByTier(ctx context.Context, tier string) ([]entity.Spell, error) {
	return load(ctx, c.snap, c.snap.key("by_tier", tier), func() ([]entity.Spell, error) {
		return c.inner.ListByTier(ctx, tier)
	})
}

func (c *CachingSpellRepository) FindBySlug(ctx context.Context, slug string) (*entity.Spell, error) {
	return load(ctx, c.snap, c.snap.key("slug", slug), func() (*entity.Spell, error) {
		return c.inner.FindBySlug(ctx, slug)
	})
}

func (c *CachingSpellRepository) InsertIfAbsent(ctx context.Context, s *entity.Spell) (catalog.InsertStatus, error) {
	status, err := c.inner.InsertIfAbsent(ctx, s)
	if err == nil && status == catalog.StatusInserted {
		c.snap.invalidate(ctx)
	}
	return status, err
}
