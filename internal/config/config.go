// Package config resolves runtime settings from defaults, an optional .env
// file, and OWLLEARN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the client.
type Config struct {
	// DBPath is the SQLite database file. Empty means the store's default
	// location.
	DBPath string

	LogLevel  string
	LogFormat string

	// DailyGoal is the daily goal in lessons; each lesson is worth 10 XP.
	DailyGoal int

	// ContentSeed seeds question shuffling. Zero picks a random seed.
	ContentSeed uint64
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:  "warn",
		LogFormat: "text",
		DailyGoal: 10,
	}
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// FromEnv returns Default overlaid with OWLLEARN_* variables.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv("OWLLEARN_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("OWLLEARN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("OWLLEARN_LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v := os.Getenv("OWLLEARN_DAILY_GOAL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("OWLLEARN_DAILY_GOAL: %w", err)
		}
		cfg.DailyGoal = n
	}
	if v := os.Getenv("OWLLEARN_CONTENT_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("OWLLEARN_CONTENT_SEED: %w", err)
		}
		cfg.ContentSeed = n
	}

	return cfg, nil
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log level %q: want debug, info, warn or error", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q: want text or json", c.LogFormat)
	}
	if c.DailyGoal < 1 {
		return fmt.Errorf("daily goal must be >= 1, got %d", c.DailyGoal)
	}
	return nil
}
