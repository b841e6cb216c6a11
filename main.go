package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/VinEdw/mastermind-pvp/internal/config"
	"github.com/VinEdw/mastermind-pvp/internal/httpserver"
	"github.com/VinEdw/mastermind-pvp/internal/palette"
	"github.com/VinEdw/mastermind-pvp/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Debug().Int("colors", palette.Standard().Len()).Msg("color table loaded")

	mem := store.NewMemoryStore()
	if cfg.SessionTTL > 0 {
		go store.Expire(context.Background(), mem, cfg.SessionTTL, time.Minute)
	}
	srv := httpserver.New(mem, httpserver.Options{
		Defaults:     cfg.Rules.Game(),
		ClientOrigin: cfg.ClientOrigin,
		DailySalt:    cfg.DailySalt,
	})
	log.Info().Str("port", cfg.Port).Dur("sessionTTL", cfg.SessionTTL).Interface("rules", cfg.Rules.Game()).Msg("starting mastermind server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
