// Package config provides configuration helpers for go-atlas commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults.
const (
	DefaultName     = "Atlas-7"
	DefaultLogLevel = "info"
)

// ErrInvalidSeed is returned when ATLAS_SEED is not an unsigned integer.
var ErrInvalidSeed = errors.New("invalid seed")

// Config holds the operator service settings.
type Config struct {
	Name     string // robot name shown in reports
	Seed     uint64 // sensor random seed
	Port     string // HTTP port; empty disables the server
	Script   string // YAML command script path
	Journal  string // SQLite journal path; empty disables journaling
	LogLevel string
	LogJSON  bool
}

// Getenv looks up an environment variable.
type Getenv func(key string) string

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return FromEnv(os.Getenv)
}

// FromEnv reads configuration through getenv.
// ATLAS_SEED defaults to the current time when unset.
func FromEnv(getenv Getenv) (Config, error) {
	cfg := Config{
		Name:     envOr(getenv, "ATLAS_NAME", DefaultName),
		Port:     getenv("ATLAS_PORT"),
		Script:   getenv("ATLAS_SCRIPT"),
		Journal:  getenv("ATLAS_JOURNAL"),
		LogLevel: envOr(getenv, "ATLAS_LOG_LEVEL", DefaultLogLevel),
		LogJSON:  getenv("GO_ENV") == "production",
		Seed:     uint64(time.Now().UnixNano()),
	}

	if s := getenv("ATLAS_SEED"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%w %q: %v", ErrInvalidSeed, s, err)
		}
		cfg.Seed = seed
	}

	return cfg, nil
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envOr(getenv Getenv, key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}
