package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"shadowdark_backend/internal/feature/monsters/domain/entity"
	"shadowdark_backend/internal/feature/monsters/usecase"
	"shadowdark_backend/internal/shared/catalog"
)

// CachingMonsterRepository decorates a MonsterRepository with Redis caching.
// Any successful insert drops every cached monster snapshot.
type CachingMonsterRepository struct {
	inner usecase.MonsterRepository
	snap  snapshots
}

var _ usecase.MonsterRepository = (*CachingMonsterRepository)(nil)

// NewCachingMonsterRepository decorates inner. If namespace is empty, it uses "monsters".
func NewCachingMonsterRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MonsterRepository, namespace string) *CachingMonsterRepository {
	if namespace == "" {
		namespace = "monsters"
	}
	return &CachingMonsterRepository{inner: inner, snap: newSnapshots(rdb, ttl, namespace)}
}

func (c *CachingMonsterRepository) ListSortedByName(ctx context.Context) ([]entity.Monster, error) {
	return load(ctx, c.snap, c.snap.key("by_name"), func() ([]entity.Monster, error) {
		return c.inner.ListSortedByName(ctx)
	})
}

func (c *CachingMonsterRepository) ListByLevel(ctx context.Context, level int) ([]entity.Monster, error) {
	return load(ctx, c.snap, c.snap.key("by_level", strconv.Itoa(level)), func() ([]entity.Monster, error) {
		return c.inner.ListByLevel(ctx, level)
	})
}

func (c *CachingMonsterRepository) FindBySlug(ctx context.Context, slug string) (*entity.Monster, error) {
	return load(ctx, c.snap, c.snap.key("slug", slug), func() (*entity.Monster, error) {
		return c.inner.FindBySlug(ctx, slug)
	})
}

func (c *CachingMonsterRepository) InsertIfAbsent(ctx context.Context, m *entity.Monster) (catalog.InsertStatus, error) {
	status, err := c.inner.InsertIfAbsent(ctx, m)
	if err == nil && status == catalog.StatusInserted {
		c.snap.invalidate(ctx)
	}
	return status, err
}
