package di

import (
	"go.uber.org/zap"

	monsterentity "shadowdark_backend/internal/feature/monsters/domain/entity"
	monstersusecase "shadowdark_backend/internal/feature/monsters/usecase"
	seedusecase "shadowdark_backend/internal/feature/seed/usecase"
	spellentity "shadowdark_backend/internal/feature/spells/domain/entity"
	spellsusecase "shadowdark_backend/internal/feature/spells/usecase"
	"shadowdark_backend/internal/platform/storage"
)

const (
	monsterProgressEvery = 50
	spellProgressEvery   = 25
)

// NewMonsterPipeline creates the seed pipeline for the monster table.
func NewMonsterPipeline(store seedusecase.Inserter[monsterentity.Monster], log *zap.Logger) *seedusecase.Pipeline[monsterentity.Monster] {
	return seedusecase.NewPipeline("monster", monsterProgressEvery, monstersusecase.DecodeRecord, store, log)
}

// NewSpellPipeline creates the seed pipeline for the spell table.
func NewSpellPipeline(store seedusecase.Inserter[spellentity.Spell], log *zap.Logger) *seedusecase.Pipeline[spellentity.Spell] {
	return seedusecase.NewPipeline("spell", spellProgressEvery, spellsusecase.DecodeRecord, store, log)
}

// NewObjectStore returns the object storage client, or nil when none is configured.
func NewObjectStore(cfg storage.Config) (storage.Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	return storage.NewClient(cfg)
}
