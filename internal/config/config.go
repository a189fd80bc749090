package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application settings.
type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
}

// AppConfig holds HTTP server settings.
type AppConfig struct {
	Env       string
	Port      string
	BodyLimit int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver      string // sqlite or postgres
	DSN         string
	AutoMigrate bool
}

// RabbitMQConfig holds the event broker settings. An empty URL disables events.
type RabbitMQConfig struct {
	URL string
}

// Load reads configuration from the environment. Values in a .env file in the
// working directory are loaded first, without overriding variables that are
// already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromViper(viper.New())
}

// FromViper builds a Config from v after registering defaults and
// environment bindings on it.
func FromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("BODY_LIMIT", 4*1024*1024)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "katalog.db")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("RABBITMQ_URL", "")
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:       v.GetString("APP_ENV"),
			Port:      v.GetString("APP_PORT"),
			BodyLimit: v.GetInt("BODY_LIMIT"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			Driver:      strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:         v.GetString("DATABASE_DSN"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: v.GetString("RABBITMQ_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late at startup.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or postgres)", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	if c.App.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}
	if c.App.BodyLimit <= 0 {
		return fmt.Errorf("BODY_LIMIT must be positive, got %d", c.App.BodyLimit)
	}
	return nil
}

// IsProduction reports whether the app runs in the production environment.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
