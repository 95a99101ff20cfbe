package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "@hourly", cfg.Server.PurgeSchedule)
	assert.Equal(t, 30, cfg.Server.AuthRateLimit)

	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 60*time.Second, cfg.Database.ConnectTimeout)
	assert.False(t, cfg.Database.RunMigrations)

	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)

	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTTL)
	assert.Equal(t, 720*time.Hour, cfg.Auth.RefreshTTL)
	assert.Equal(t, 10*time.Minute, cfg.Auth.StateTTL)
	assert.Empty(t, cfg.Auth.Discord.ClientID)

	assert.Equal(t, "seed-data", cfg.Storage.Bucket)
	assert.Equal(t, 30, cfg.Storage.TimeoutSeconds)

	assert.Equal(t, "coreData/monsters.json", cfg.Seed.MonstersPath)
	assert.Equal(t, "coreData/spells.json", cfg.Seed.SpellsPath)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)

	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DATABASE_RUN_MIGRATIONS", "true")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("AUTH_JWT_SECRET", "from-env")
	t.Setenv("AUTH_ACCESS_TTL", "5m")
	t.Setenv("AUTH_DISCORD_CLIENT_ID", "1234")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Database.RunMigrations)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTTL)
	assert.Equal(t, "1234", cfg.Auth.Discord.ClientID)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SEED_DEPLOY_KEY=from-dotenv\nLOG_LEVEL=debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")
	t.Cleanup(func() { _ = os.Unsetenv("SEED_DEPLOY_KEY") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Seed.DeployKey)
	assert.Equal(t, "warn", cfg.Log.Level, "the real environment wins over .env")
}
