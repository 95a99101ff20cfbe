package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	monsteradapters "shadowdark_backend/internal/feature/monsters/adapters"
	monstersusecase "shadowdark_backend/internal/feature/monsters/usecase"
	spelladapters "shadowdark_backend/internal/feature/spells/adapters"
	spellsusecase "shadowdark_backend/internal/feature/spells/usecase"
	"shadowdark_backend/internal/platform/cache"
)

// NewMonsterRepository returns the monster table, wrapped in the snapshot cache when Redis is available.
func NewMonsterRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) monstersusecase.MonsterRepository {
	repo := monsteradapters.NewMonsterRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingMonsterRepository(rdb, ttl, repo, "monsters")
}

// NewSpellRepository returns the spell table, wrapped in the snapshot cache when Redis is available.
func NewSpellRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) spellsusecase.SpellRepository {
	repo := spelladapters.NewSpellRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingSpellRepository(rdb, ttl, repo, "spells")
}
