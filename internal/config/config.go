// Package config loads server configuration from the environment. A local
// .env file is honored when present; explicit environment always wins.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config is the serve-time configuration.
type Config struct {
	Addr        string `env:"VIVEKA_ADDR" envDefault:":8080"`
	LogLevel    string `env:"VIVEKA_LOG_LEVEL" envDefault:"info"`
	MetricsAddr string `env:"VIVEKA_METRICS_ADDR"`

	// Store selects session persistence: memory, file or redis.
	Store    string `env:"VIVEKA_STORE" envDefault:"memory"`
	FilePath string `env:"VIVEKA_FILE_PATH" envDefault:".viveka/sessions"`

	RedisAddr     string        `env:"VIVEKA_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"VIVEKA_REDIS_PASSWORD"`
	RedisDB       int           `env:"VIVEKA_REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"VIVEKA_SESSION_TTL" envDefault:"0"`

	// ContentPack optionally overrides the built-in site catalog.
	ContentPack string `env:"VIVEKA_CONTENT_PACK"`

	// AcceptRate is the synthetic document-verification accept probability.
	AcceptRate float64 `env:"VIVEKA_ACCEPT_RATE" envDefault:"0.8"`
}

// Load parses the environment into a Config. A missing .env file is fine.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.Store {
	case "memory", "file", "redis":
	default:
		return nil, fmt.Errorf("unknown store %q (want memory, file or redis)", cfg.Store)
	}
	if cfg.AcceptRate < 0 || cfg.AcceptRate > 1 {
		return nil, fmt.Errorf("accept rate %v out of range [0,1]", cfg.AcceptRate)
	}
	return cfg, nil
}
