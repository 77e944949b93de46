// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-driven settings. Everything the user tunes
// in-app lives in the settings table instead.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `env:"STUDYQUEST_DB"`
	// NoSound silences the terminal bell signals.
	NoSound bool `env:"STUDYQUEST_NO_SOUND"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
