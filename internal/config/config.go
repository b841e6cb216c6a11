// Package config reads process configuration from the environment.
//
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/VinEdw/mastermind-pvp/internal/game"
)

// Config is the server configuration.
type Config struct {
	Port         string        `env:"PORT" envDefault:"5175"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
	ClientOrigin string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	DailySalt    string        `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"24h"` // 0 keeps sessions forever
	Rules        Rules         `envPrefix:"MASTERMIND_"`
}

// Rules are the default game options.
type Rules struct {
	Colors     int  `env:"COLORS" envDefault:"6"`
	Slots      int  `env:"SLOTS" envDefault:"4"`
	Duplicates bool `env:"DUPLICATES" envDefault:"false"`
	Guesses    int  `env:"GUESSES" envDefault:"10"`
}

// Game converts to game.Rules. Parse validates the result.
func (r Rules) Game() game.Rules {
	return game.Rules{
		Colors:     r.Colors,
		Slots:      r.Slots,
		Duplicates: r.Duplicates,
		Guesses:    r.Guesses,
	}
}

// Load reads .env (if any) and the environment, then validates the default rules.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads the process environment only.
func Parse() (Config, error) { return parse(env.Options{}) }

// parse reads opts.Environment when set, else the process environment.
func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SessionTTL < 0 {
		return Config{}, fmt.Errorf("SESSION_TTL: must not be negative, got %s", cfg.SessionTTL)
	}
	if err := cfg.Rules.Game().Validate(); err != nil {
		return Config{}, fmt.Errorf("default rules: %w", err)
	}
	return cfg, nil
}
