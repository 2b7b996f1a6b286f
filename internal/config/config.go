// internal/config/config.go
//
// Environment-driven configuration.
// Values come from the process environment, optionally seeded from a .env
// file. Unset variables fall back to the defaults below; malformed values are
// reported as errors naming the variable.

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the game's configuration values.
type Config struct {
	Width        int     // HAT_WIDTH: board columns
	Height       int     // HAT_HEIGHT: board rows
	HoleFraction float64 // HAT_HOLES: share of cells that become holes
	Seed         int64   // HAT_SEED: generator seed, 0 derives one from the clock
	Daily        bool    // HAT_DAILY: derive the seed from today's date
	DailySalt    string  // HAT_DAILY_SALT: salt mixed into the daily seed
	BoardFile    string  // HAT_BOARD_FILE: play a supplied layout instead of generating
	BuiltinBoard bool    // HAT_BUILTIN_BOARD: play the embedded layout
	Rounds       int     // HAT_ROUNDS: rounds to play before exiting
	LogLevel     string  // LOG_LEVEL: zerolog level name
}

// Defaults mirror the classic 30x10 board with 20% holes.
var Defaults = Config{
	Width:        30,
	Height:       10,
	HoleFraction: 0.2,
	DailySalt:    "find-your-hat",
	Rounds:       1,
	LogLevel:     "info",
}

// Load reads .env (if present) and the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary variable lookup.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	c := Defaults
	var err error
	if c.Width, err = getInt(lookup, "HAT_WIDTH", c.Width); err != nil {
		return c, err
	}
	if c.Height, err = getInt(lookup, "HAT_HEIGHT", c.Height); err != nil {
		return c, err
	}
	if c.HoleFraction, err = getFloat(lookup, "HAT_HOLES", c.HoleFraction); err != nil {
		return c, err
	}
	if c.Seed, err = getInt64(lookup, "HAT_SEED", c.Seed); err != nil {
		return c, err
	}
	if c.Daily, err = getBool(lookup, "HAT_DAILY", c.Daily); err != nil {
		return c, err
	}
	if c.BuiltinBoard, err = getBool(lookup, "HAT_BUILTIN_BOARD", c.BuiltinBoard); err != nil {
		return c, err
	}
	if c.Rounds, err = getInt(lookup, "HAT_ROUNDS", c.Rounds); err != nil {
		return c, err
	}
	if c.Rounds < 1 {
		return c, fmt.Errorf("HAT_ROUNDS must be at least 1, got %d", c.Rounds)
	}
	c.DailySalt = getEnv(lookup, "HAT_DAILY_SALT", c.DailySalt)
	c.BoardFile = getEnv(lookup, "HAT_BOARD_FILE", c.BoardFile)
	c.LogLevel = getEnv(lookup, "LOG_LEVEL", c.LogLevel)
	return c, nil
}

// getEnv returns the variable's value, or def when unset or empty.
func getEnv(lookup func(string) (string, bool), key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup func(string) (string, bool), key string, def int) (int, error) {
	s := getEnv(lookup, key, "")
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func getInt64(lookup func(string) (string, bool), key string, def int64) (int64, error) {
	s := getEnv(lookup, key, "")
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

func getFloat(lookup func(string) (string, bool), key string, def float64) (float64, error) {
	s := getEnv(lookup, key, "")
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return v, nil
}

func getBool(lookup func(string) (string, bool), key string, def bool) (bool, error) {
	s := getEnv(lookup, key, "")
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def, fmt.Errorf("%s must be true or false: %w", key, err)
	}
	return v, nil
}
