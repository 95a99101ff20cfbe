// Command seed loads the monster and spell reference tables from JSON or YAML collections.
package main

import (
	"context"
	"fmt"
	"os"

	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shadowdark_backend/internal/app/config"
	"shadowdark_backend/internal/app/di"
	monstersusecase "shadowdark_backend/internal/feature/monsters/usecase"
	seedadapters "shadowdark_backend/internal/feature/seed/adapters"
	spellsusecase "shadowdark_backend/internal/feature/spells/usecase"
	"shadowdark_backend/internal/platform/db"
	"shadowdark_backend/internal/platform/logger"
	infraredis "shadowdark_backend/internal/platform/redis"
)

func main() {
	if err := newRootCmd(openRuntime).Execute(); err != nil {
		l, logErr := logger.New(logger.Config{Level: "debug", Format: "console"})
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// openRuntime connects to the configured database, Redis and object storage.
func openRuntime(ctx context.Context, envDir string) (*runtime, error) {
	cfg, err := config.LoadConfig(envDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	objects, err := di.NewObjectStore(cfg.Storage)
	if err != nil {
		return nil, err
	}
	rt := &runtime{
		log:          logg,
		loader:       seedadapters.NewLoader(objects, cfg.Storage.Bucket),
		deployKey:    cfg.Seed.DeployKey,
		monstersPath: cfg.Seed.MonstersPath,
		spellsPath:   cfg.Seed.SpellsPath,
		closers:      []func(){func() { _ = logg.Sync() }},
	}

	// Tables are opened lazily so publish works without a database.
	rt.connect = func() error {
		gdb, err := db.Open(cfg.Database)
		if err != nil {
			return err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		rt.closers = append(rt.closers, func() { _ = sqlDB.Close() })

		// Seeding through the cache drops API snapshots of the tables it changes.
		var rdb *redisv9.Client
		if cfg.Redis.Enabled {
			if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis, logg); err != nil {
				logg.Warn("redis unavailable, cached snapshots will expire on their own")
			} else {
				rdb = tmp
				rt.closers = append(rt.closers, func() { _ = rdb.Close() })
			}
		}

		monsters := monstersusecase.NewMonsterUsecase(di.NewMonsterRepository(gdb, rdb, cfg.Cache.TTL))
		spells := spellsusecase.NewSpellUsecase(di.NewSpellRepository(gdb, rdb, cfg.Cache.TTL))
		rt.monsters = di.NewMonsterPipeline(monsters, logg)
		rt.spells = di.NewSpellPipeline(spells, logg)
		return nil
	}
	return rt, nil
}
