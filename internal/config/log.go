package config

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger points the global logger at a console writer on f.
// Color is used only when f is a terminal. Unknown levels fall back to info.
func SetupLogger(level string, f *os.File) {
	color := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        f,
		NoColor:    !color,
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
