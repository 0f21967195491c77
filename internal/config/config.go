// Package config holds environment-driven configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Host   string `env:"HOST" envDefault:"0.0.0.0"`
	Port   uint   `env:"PORT" envDefault:"3000"`
	DBPath string `env:"DB_PATH" envDefault:"data/db.json"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"8h"`

	// AdminUser and AdminPassword seed the single account on first run.
	AdminUser     string `env:"ADMIN_USER" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	Verbose bool `env:"VERBOSE" envDefault:"false"`
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("config: JWT_SECRET is required")
	}
	return cfg, nil
}
