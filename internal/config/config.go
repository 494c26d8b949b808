package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/fulfillmenttools/commercetools-sunrise-data/internal/domain"
)

// Config holds all configuration for the inventory seeder job.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// Platform API
	PlatformBaseURL string        `env:"PLATFORM_BASE_URL" envDefault:"http://localhost:8080"`
	PlatformToken   string        `env:"PLATFORM_AUTH_TOKEN"`
	HTTPTimeout     time.Duration `env:"PLATFORM_HTTP_TIMEOUT" envDefault:"30s"`
	HTTPMaxRetries  int           `env:"PLATFORM_HTTP_MAX_RETRIES" envDefault:"3"`
	BreakerEnabled  bool          `env:"PLATFORM_CIRCUIT_BREAKER" envDefault:"true"`

	// Seeding behavior
	ChannelKeys          []string      `env:"SEED_CHANNEL_KEYS" envSeparator:","`
	PageSize             int           `env:"SEED_PAGE_SIZE" envDefault:"100"`
	ChannelLookupTimeout time.Duration `env:"SEED_CHANNEL_LOOKUP_TIMEOUT" envDefault:"5m"`
	SkipLimit            int           `env:"SEED_SKIP_LIMIT" envDefault:"1"`
	WriteRPS             float64       `env:"SEED_WRITE_RPS" envDefault:"0"`

	// Metrics listener; 0 disables it.
	MetricsPort int `env:"METRICS_PORT" envDefault:"0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("load seeder config: %w", err)
	}
	if len(cfg.ChannelKeys) == 0 {
		cfg.ChannelKeys = domain.PreferredChannelKeys
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.PlatformBaseURL == "" {
		return fmt.Errorf("PLATFORM_BASE_URL is required")
	}
	if c.PageSize < 1 || c.PageSize > 500 {
		return fmt.Errorf("SEED_PAGE_SIZE must be in [1, 500], got %d", c.PageSize)
	}
	if c.ChannelLookupTimeout <= 0 {
		return fmt.Errorf("SEED_CHANNEL_LOOKUP_TIMEOUT must be > 0, got %v", c.ChannelLookupTimeout)
	}
	if c.SkipLimit < 0 {
		return fmt.Errorf("SEED_SKIP_LIMIT must be >= 0, got %d", c.SkipLimit)
	}
	if c.WriteRPS < 0 {
		return fmt.Errorf("SEED_WRITE_RPS must be >= 0, got %f", c.WriteRPS)
	}
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.MetricsPort)
	}
	return nil
}
