package config

import (
	"errors"
	"testing"
)

func env(m map[string]string) Getenv {
	return func(key string) string { return m[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Name != DefaultName {
		t.Errorf("Name = %q, want %q", cfg.Name, DefaultName)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.Port != "" || cfg.Script != "" || cfg.Journal != "" {
		t.Errorf("optional settings should be empty: %+v", cfg)
	}
	if cfg.LogJSON {
		t.Error("LogJSON should be false outside production")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"ATLAS_NAME":      "Atlas-9",
		"ATLAS_SEED":      "1234",
		"ATLAS_PORT":      "8080",
		"ATLAS_SCRIPT":    "demo.yaml",
		"ATLAS_JOURNAL":   "atlas.db",
		"ATLAS_LOG_LEVEL": "debug",
		"GO_ENV":          "production",
	}))
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}

	if cfg.Name != "Atlas-9" || cfg.Seed != 1234 || cfg.Port != "8080" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Script != "demo.yaml" || cfg.Journal != "atlas.db" || cfg.LogLevel != "debug" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if !cfg.LogJSON {
		t.Error("LogJSON should be true in production")
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
}

func TestFromEnv_InvalidSeed(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"ATLAS_SEED": "-1"}))
	if !errors.Is(err, ErrInvalidSeed) {
		t.Errorf("err = %v, want ErrInvalidSeed", err)
	}
}
