package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Backend selects the storage engine behind the movement and identity stores.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

var ErrMissingSecret = errors.New("AUTH_SECRET is required")

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Ebenezer"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Backend Backend `envconfig:"BACKEND" default:"sqlite"`

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"ebenezer"`
	}

	SQLite struct {
		Path string `envconfig:"SQLITE_PATH" default:"data/ebenezer.db"`
	}

	Auth struct {
		Secret   string        `envconfig:"AUTH_SECRET"`
		TokenTTL time.Duration `envconfig:"AUTH_TOKEN_TTL" default:"24h"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Export struct {
		Dir string `envconfig:"EXPORT_DIR" default:"./exports"`
	}
}

// DSN returns the data source name for the configured backend.
func (c *Config) DSN() string {
	if c.Backend == BackendSQLite {
		return c.SQLite.Path
	}

	return c.ConnectionString()
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// RequireSecret reports ErrMissingSecret when no token signing key is configured.
func (c *Config) RequireSecret() error {
	if c.Auth.Secret == "" {
		return ErrMissingSecret
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Backend {
	case BackendPostgres, BackendSQLite:
	default:
		return nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
	}

	return &cfg, nil
}
