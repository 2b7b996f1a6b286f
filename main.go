package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/findhat/internal/config"
	"github.com/robalobadob/findhat/internal/console"
	"github.com/robalobadob/findhat/internal/daily"
	"github.com/robalobadob/findhat/internal/game"
	"github.com/robalobadob/findhat/internal/layout"
	"github.com/robalobadob/findhat/internal/store"
)

func main() {
	os.Exit(run())
}

// run wires configuration, logging, and the console driver, and returns the
// process exit code. Deferred cleanup runs before main exits.
func run() int {
	cfg, err := config.Load()
	config.SetupLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := console.Run(ctx, console.Config{
		In:      os.Stdin,
		Out:     os.Stdout,
		Rounds:  cfg.Rounds,
		NewGrid: boardSource(cfg, time.Now()),
		Store:   store.NewMemoryStore(),
	})
	if err != nil {
		log.Error().Err(err).Interface("summary", sum).Msg("game exited")
		return 1
	}
	log.Debug().Interface("summary", sum).Msg("done")
	return 0
}

// boardSource picks where each round's board comes from:
// a layout file, the embedded layout, or the seeded generator.
func boardSource(cfg config.Config, now time.Time) func(round int) (*game.Grid, error) {
	switch {
	case cfg.BoardFile != "":
		log.Info().Str("file", cfg.BoardFile).Msg("using board file")
		return func(int) (*game.Grid, error) { return layout.Load(cfg.BoardFile) }
	case cfg.BuiltinBoard:
		log.Info().Msg("using built-in board")
		return func(int) (*game.Grid, error) { return layout.Default(), nil }
	}

	seed := cfg.Seed
	if cfg.Daily {
		seed = daily.Seed(now, cfg.DailySalt)
		log.Info().Str("date", daily.DateKey(now)).Msg("daily board")
	} else if seed == 0 {
		seed = now.UnixNano()
	}
	log.Info().Int64("seed", seed).Int("width", cfg.Width).Int("height", cfg.Height).
		Float64("holes", cfg.HoleFraction).Msg("generating boards")

	r := game.NewRand(seed)
	return func(int) (*game.Grid, error) {
		return game.Generate(r, cfg.Width, cfg.Height, cfg.HoleFraction)
	}
}
