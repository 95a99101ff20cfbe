// Package db opens the Postgres connection shared by every feature adapter.
package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	authadapters "shadowdark_backend/internal/feature/auth/adapters"
	monsteradapters "shadowdark_backend/internal/feature/monsters/adapters"
	profileadapters "shadowdark_backend/internal/feature/profile/adapters"
	spelladapters "shadowdark_backend/internal/feature/spells/adapters"
)

// retryInterval is the pause between connection attempts.
const retryInterval = 3 * time.Second

// Config holds configuration for the database connection.
type Config struct {
	// Host is the database host. Ignored when InstanceName is set.
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port.
	Port string `mapstructure:"port" default:"5432"`
	// User is the database user.
	User string `mapstructure:"user" default:"postgres"`
	// Password is the database password.
	Password string `mapstructure:"password" default:""`
	// Name is the database name.
	Name string `mapstructure:"name" default:"shadowdark"`
	// SSLMode is passed through to libpq style sslmode.
	SSLMode string `mapstructure:"sslmode" default:"disable"`
	// InstanceName is a Cloud SQL connection name. When set the unix socket under /cloudsql is used.
	InstanceName string `mapstructure:"instance_name" default:""`
	// ConnectTimeout bounds the retry loop at startup.
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" default:"60s"`
	// RunMigrations runs AutoMigrate for every feature table after connecting.
	RunMigrations bool `mapstructure:"run_migrations" default:"false"`
}

// BuildDSN renders cfg as a key=value Postgres connection string.
func BuildDSN(cfg Config) string {
	host := cfg.Host
	if cfg.InstanceName != "" {
		host = "/cloudsql/" + cfg.InstanceName
	}

	parts := []string{
		"host=" + quote(host),
	}
	if cfg.InstanceName == "" && cfg.Port != "" {
		parts = append(parts, "port="+quote(cfg.Port))
	}
	parts = append(parts,
		"user="+quote(cfg.User),
		"password="+quote(cfg.Password),
		"dbname="+quote(cfg.Name),
	)
	sslmode := cfg.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	parts = append(parts, "sslmode="+quote(sslmode))
	return strings.Join(parts, " ")
}

// quote escapes a value for the key=value DSN form.
func quote(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// ConnectWithRetry calls opener until it succeeds or the next attempt would start after timeout.
func ConnectWithRetry(dsn string, timeout time.Duration, opener func(string) (*gorm.DB, error)) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for attempt := 1; ; attempt++ {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %d attempts: %w", attempt, err)
		}
		zap.L().Warn("db connect failed, retrying", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(retryInterval)
	}
}

// OpenPostgres opens a gorm handle over a pgx stdlib pool and pings it.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	pgxCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pgxCfg)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return gdb, nil
}

// Open connects with retry and optionally migrates.
func Open(cfg Config) (*gorm.DB, error) {
	gdb, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, OpenPostgres)
	if err != nil {
		return nil, err
	}
	if cfg.RunMigrations {
		if err := Migrate(gdb); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return gdb, nil
}

// Migrate creates or updates every table the features persist.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&monsteradapters.MonsterModel{},
		&spelladapters.SpellModel{},
		&authadapters.UserModel{},
		&authadapters.SessionModel{},
		&profileadapters.UserProfileModel{},
	)
}
