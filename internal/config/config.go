// Package config loads runtime settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/olivier-w/sonance/internal/fx"
	"github.com/olivier-w/sonance/internal/persona"
	"github.com/olivier-w/sonance/internal/visualizer"
)

// Config holds the settings read at startup.
type Config struct {
	Tier       visualizer.Tier `env:"SONANCE_TIER" envDefault:"high"`
	Persona    persona.Persona `env:"SONANCE_PERSONA" envDefault:"default"`
	Aggressive bool            `env:"SONANCE_AGGRESSIVE"`
	FPS        int             `env:"SONANCE_FPS" envDefault:"60"`
	SampleRate int             `env:"SONANCE_SAMPLE_RATE" envDefault:"44100"`
	LogFile    string          `env:"SONANCE_LOG"`
	Chime      string          `env:"SONANCE_CHIME"`

	chime    fx.Event
	hasChime bool
}

// Load parses Config from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.FPS <= 0 {
		return Config{}, fmt.Errorf("SONANCE_FPS must be positive, got %d", cfg.FPS)
	}
	if cfg.SampleRate <= 0 {
		return Config{}, fmt.Errorf("SONANCE_SAMPLE_RATE must be positive, got %d", cfg.SampleRate)
	}
	if cfg.Chime != "" {
		ev, err := fx.ParseEvent(cfg.Chime)
		if err != nil {
			return Config{}, fmt.Errorf("SONANCE_CHIME: %w", err)
		}
		cfg.chime, cfg.hasChime = ev, true
	}
	return cfg, nil
}

// StartAggressive reports whether the engine should start in aggressive
// mode, either forced or implied by the persona.
func (c Config) StartAggressive() bool {
	return c.Aggressive || c.Persona.Aggressive()
}

// StartupChime returns the event to play at startup, if one is configured.
func (c Config) StartupChime() (fx.Event, bool) {
	return c.chime, c.hasChime
}
