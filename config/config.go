// Package config reads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port int `env:"PORT" envDefault:"3000"`

	// Without a connection string profile reads fall back to the static
	// league data and verification is unavailable.
	PostgresConnString string `env:"POSTGRES_CONN_STR"`

	SleeperURL      string `env:"SLEEPER_URL" envDefault:"https://api.sleeper.app"`
	SleeperLeagueID string `env:"SLEEPER_LEAGUE_ID"`

	StaticManagersFile string `env:"STATIC_MANAGERS_FILE" envDefault:"league.toml"`

	VerificationTTL time.Duration `env:"VERIFICATION_TTL" envDefault:"30m"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
}

// Load reads the optional .env files and then parses the environment.
// Variables already set in the environment win over .env values.
func Load(dotenvFiles ...string) (*Config, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{".env"}
	}
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.VerificationTTL <= 0 {
		return errors.New("VERIFICATION_TTL must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// DatabaseConfigured reports whether a Postgres connection string was set.
func (c *Config) DatabaseConfigured() bool {
	return c.PostgresConnString != ""
}
