package accord

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config tunes the engine.
type Config struct {
	// EphemeralViewTimeout applies to views in ephemeral replies that set no timeout.
	EphemeralViewTimeout time.Duration `env:"ACCORD_EPHEMERAL_VIEW_TIMEOUT" envDefault:"15m"`

	// DispatchTimeout bounds each hand-off to the bot.
	DispatchTimeout time.Duration `env:"ACCORD_DISPATCH_TIMEOUT" envDefault:"5s"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		EphemeralViewTimeout: 15 * time.Minute,
		DispatchTimeout:      5 * time.Second,
	}
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
