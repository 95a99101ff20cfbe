package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"shadowdark_backend/internal/app/config"
	"shadowdark_backend/internal/app/di"
	"shadowdark_backend/internal/app/router"
	authhandler "shadowdark_backend/internal/feature/auth/transport/handler"
	monsterhandler "shadowdark_backend/internal/feature/monsters/transport/handler"
	monstersusecase "shadowdark_backend/internal/feature/monsters/usecase"
	profileadapters "shadowdark_backend/internal/feature/profile/adapters"
	profilehandler "shadowdark_backend/internal/feature/profile/transport/handler"
	profileusecase "shadowdark_backend/internal/feature/profile/usecase"
	seedhandler "shadowdark_backend/internal/feature/seed/transport/handler"
	spellhandler "shadowdark_backend/internal/feature/spells/transport/handler"
	spellsusecase "shadowdark_backend/internal/feature/spells/usecase"
	"shadowdark_backend/internal/platform/db"
	"shadowdark_backend/internal/platform/http/handler"
	"shadowdark_backend/internal/platform/logger"
	infraredis "shadowdark_backend/internal/platform/redis"
	"shadowdark_backend/internal/shared/ratelimiter"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()
	zap.ReplaceGlobals(logg)

	if err := cfg.Validate(); err != nil {
		logg.Fatal("invalid configuration", zap.Error(err))
	}
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		logg.Fatal("database unavailable", zap.Error(err))
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logg.Fatal("database handle", zap.Error(err))
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis is optional: without it the cache is skipped and sessions live in Postgres.
	var rdb *redisv9.Client
	if cfg.Redis.Enabled {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis, logg); err != nil {
			logg.Warn("redis unavailable, running without cache")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					logg.Error("failed to close redis client", zap.Error(err))
				}
			}()
		}
	}

	// Usecase
	monsterUC := monstersusecase.NewMonsterUsecase(di.NewMonsterRepository(gdb, rdb, cfg.Cache.TTL))
	spellUC := spellsusecase.NewSpellUsecase(di.NewSpellRepository(gdb, rdb, cfg.Cache.TTL))
	profileUC := profileusecase.NewProfileUsecase(profileadapters.NewProfileRepository(gdb))
	authUC := di.NewAuthUsecase(cfg.Auth, gdb, rdb, profileUC, logg)

	// Handler
	var authLimiter *ratelimiter.RateLimiter
	if cfg.Server.AuthRateLimit > 0 {
		authLimiter = ratelimiter.NewRateLimiter(cfg.Server.AuthRateLimit, time.Minute)
	}
	deps := map[string]handler.Pinger{"database": sqlDB}
	if rdb != nil {
		deps["redis"] = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}
	r := router.NewRouter(router.Handlers{
		Auth:     authhandler.NewAuthHandler(authUC, logg),
		Monsters: monsterhandler.NewMonsterHandler(monsterUC, logg),
		Spells:   spellhandler.NewSpellHandler(spellUC, logg),
		Profile:  profilehandler.NewProfileHandler(profileUC, logg),
		Seed: seedhandler.NewSeedHandler(
			di.NewMonsterPipeline(monsterUC, logg),
			di.NewSpellPipeline(spellUC, logg),
			logg,
		),
		Readiness: handler.Readiness(deps, 2*time.Second, logg),
	}, router.Options{
		JWTSecret:      cfg.Auth.JWTSecret,
		DeployKey:      cfg.Seed.DeployKey,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AuthLimiter:    authLimiter,
	}, logg)

	// expired session cleanup
	scheduler, err := di.NewScheduler(cfg.Server.PurgeSchedule, di.NewPurgeJob(authUC, time.Minute, logg))
	if err != nil {
		logg.Fatal("invalid purge schedule", zap.String("schedule", cfg.Server.PurgeSchedule), zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("graceful shutdown failed", zap.Error(err))
	}
}
