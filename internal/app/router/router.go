// Package router assembles the gin engine and its route table.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authhandler "shadowdark_backend/internal/feature/auth/transport/handler"
	monsterhandler "shadowdark_backend/internal/feature/monsters/transport/handler"
	profilehandler "shadowdark_backend/internal/feature/profile/transport/handler"
	seedhandler "shadowdark_backend/internal/feature/seed/transport/handler"
	spellhandler "shadowdark_backend/internal/feature/spells/transport/handler"
	"shadowdark_backend/internal/platform/http/handler"
	jwtmw "shadowdark_backend/internal/platform/jwt"
	"shadowdark_backend/internal/platform/logger"
	"shadowdark_backend/internal/platform/middleware"
	"shadowdark_backend/internal/shared/ratelimiter"
)

// Handlers groups every feature handler the router mounts.
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Monsters  *monsterhandler.MonsterHandler
	Spells    *spellhandler.SpellHandler
	Profile   *profilehandler.ProfileHandler
	Seed      *seedhandler.SeedHandler
	Readiness gin.HandlerFunc
}

// Options holds the router level settings.
type Options struct {
	JWTSecret      string
	DeployKey      string
	AllowedOrigins []string
	// AuthLimiter throttles the /auth endpoints per client; nil disables it.
	AuthLimiter *ratelimiter.RateLimiter
}

// NewRouter mounts every route. CORS is skipped when no origin is allowed.
func NewRouter(h Handlers, opts Options, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), logger.RequestLogger(log))

	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// probes
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	if h.Readiness != nil {
		r.GET("/readyz", h.Readiness)
	}

	// reference tables, public
	r.GET("/monsters", h.Monsters.List)
	r.GET("/monsters/:slug", h.Monsters.Get)
	r.GET("/spells", h.Spells.List)
	r.GET("/spells/:slug", h.Spells.Get)

	// sign-in
	auth := r.Group("/auth")
	if opts.AuthLimiter != nil {
		auth.Use(middleware.RateLimit(opts.AuthLimiter))
	}
	{
		auth.GET("/discord/login", h.Auth.DiscordLogin)
		auth.GET("/discord/callback", h.Auth.DiscordCallback)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/logout", h.Auth.Logout)
	}

	// the current user; reads answer null for anonymous callers
	me := r.Group("/me")
	{
		me.GET("/id", jwtmw.OptionalAuth(opts.JWTSecret), h.Profile.CurrentUserID)
		me.GET("/profile", jwtmw.OptionalAuth(opts.JWTSecret), h.Profile.GetProfile)
		me.PUT("/profile", jwtmw.AuthRequired(opts.JWTSecret), h.Profile.UpsertProfile)
		me.PUT("/preferences", jwtmw.AuthRequired(opts.JWTSecret), h.Profile.UpdatePreferences)
	}

	// deploy tooling
	admin := r.Group("/admin", middleware.DeployKey(opts.DeployKey))
	{
		admin.POST("/seed/monsters", h.Seed.SeedMonsters)
		admin.POST("/seed/spells", h.Seed.SeedSpells)
	}

	return r
}
