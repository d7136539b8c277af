package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the environment-derived settings.
type Env struct {
	DBDir   string `env:"CARDS_DB_DIR"`
	Backend string `env:"CARDS_BACKEND"`

	// Identity for --mine.
	User       string `env:"CARDS_USER"`
	SystemUser string `env:"USER"`
}

// ParseEnv loads settings from environment variables.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}
