package di

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shadowdark_backend/internal/app/config"
	authadapters "shadowdark_backend/internal/feature/auth/adapters"
	"shadowdark_backend/internal/feature/auth/adapters/discord"
	authhandler "shadowdark_backend/internal/feature/auth/transport/handler"
	authusecase "shadowdark_backend/internal/feature/auth/usecase"
	infrahttp "shadowdark_backend/internal/platform/http"
	jwtmw "shadowdark_backend/internal/platform/jwt"
)

// AuthService is the auth usecase as seen by the HTTP layer and the purge job.
type AuthService interface {
	authhandler.AuthUsecase
	SessionPurger
}

// NewIdentityProvider creates a fully configured Discord client with its own HTTP client.
func NewIdentityProvider(cfg config.AuthConfig) authusecase.IdentityProvider {
	httpClient := infrahttp.NewHTTPClient(cfg.HTTPTimeout)
	return discord.NewClient(cfg.Discord, httpClient)
}

// NewAuthUsecase wires sign-in, refresh and logout.
func NewAuthUsecase(cfg config.AuthConfig, db *gorm.DB, rdb *redis.Client, profiles authusecase.ProfileProvisioner, log *zap.Logger) AuthService {
	return authusecase.NewAuthUsecase(
		authadapters.NewUserRepository(db),
		NewSessionRepository(rdb, db),
		NewIdentityProvider(cfg),
		NewStateStore(rdb, cfg.StateTTL),
		jwtmw.NewGenerator(cfg.JWTSecret, cfg.AccessTTL),
		profiles,
		cfg.RefreshTTL,
		log,
	)
}
