// Package config loads application configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"shadowdark_backend/internal/feature/auth/adapters/discord"
	"shadowdark_backend/internal/platform/db"
	"shadowdark_backend/internal/platform/logger"
	"shadowdark_backend/internal/platform/redis"
	"shadowdark_backend/internal/platform/storage"
)

// ErrMissingJWTSecret is returned by Validate when the server would sign tokens with an empty key.
var ErrMissingJWTSecret = errors.New("AUTH_JWT_SECRET must be set")

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database db.Config      `mapstructure:"database"`
	Redis    redis.Config   `mapstructure:"redis"`
	Log      logger.Config  `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  storage.Config `mapstructure:"storage"`
	Seed     SeedConfig     `mapstructure:"seed"`
	Cache    CacheConfig    `mapstructure:"cache"`
}

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// Mode is the gin mode (debug, release, test).
	Mode string `mapstructure:"mode" default:"release"`
	// AllowedOrigins is a comma separated CORS allow list.
	AllowedOrigins []string `mapstructure:"allowed_origins" default:"http://localhost:5173"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" default:"10s"`
	// AuthRateLimit is the number of /auth calls allowed per client per minute; 0 disables it.
	AuthRateLimit int `mapstructure:"auth_rate_limit" default:"30"`
	// PurgeSchedule is the cron spec for removing expired sessions.
	PurgeSchedule string `mapstructure:"purge_schedule" default:"@hourly"`
}

// AuthConfig holds token lifetimes and the OAuth provider.
type AuthConfig struct {
	// JWTSecret signs access tokens.
	JWTSecret string `mapstructure:"jwt_secret" default:""`
	// AccessTTL is the access token lifetime.
	AccessTTL time.Duration `mapstructure:"access_ttl" default:"15m"`
	// RefreshTTL is the session lifetime.
	RefreshTTL time.Duration `mapstructure:"refresh_ttl" default:"720h"`
	// StateTTL bounds the OAuth round trip.
	StateTTL time.Duration `mapstructure:"state_ttl" default:"10m"`
	// HTTPTimeout bounds calls to the OAuth provider.
	HTTPTimeout time.Duration `mapstructure:"http_timeout" default:"10s"`
	// Discord holds the OAuth application credentials.
	Discord discord.Config `mapstructure:"discord"`
}

// SeedConfig holds the seed sources and the key that unlocks seeding.
type SeedConfig struct {
	DeployKey    string `mapstructure:"deploy_key" default:""`
	MonstersPath string `mapstructure:"monsters_path" default:"coreData/monsters.json"`
	SpellsPath   string `mapstructure:"spells_path" default:"coreData/spells.json"`
}

// CacheConfig holds the snapshot cache settings.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl" default:"10m"`
}

// LoadConfig loads configuration from environment variables and a .env file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." || path == "" {
		envPath = ".env"
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// SERVER_PORT -> server.port
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks settings the HTTP server cannot run without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

// bindValues walks the struct and registers every mapstructure key with its
// default tag so AutomaticEnv can see it.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
