package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("OWLLEARN_DB", "/tmp/owl.db")
	t.Setenv("OWLLEARN_LOG_LEVEL", "DEBUG")
	t.Setenv("OWLLEARN_LOG_FORMAT", "json")
	t.Setenv("OWLLEARN_DAILY_GOAL", "3")
	t.Setenv("OWLLEARN_CONTENT_SEED", "42")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	want := Config{DBPath: "/tmp/owl.db", LogLevel: "debug", LogFormat: "json", DailyGoal: 3, ContentSeed: 42}
	if cfg != want {
		t.Errorf("FromEnv() = %+v, want %+v", cfg, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}
}

func TestFromEnvBadNumber(t *testing.T) {
	t.Setenv("OWLLEARN_DAILY_GOAL", "ten")
	if _, err := FromEnv(); err == nil {
		t.Error("expected error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"level", func(c *Config) { c.LogLevel = "loud" }},
		{"format", func(c *Config) { c.LogFormat = "xml" }},
		{"goal", func(c *Config) { c.DailyGoal = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("missing file: %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("OWLLEARN_DAILY_GOAL=7\nOWLLEARN_LOG_LEVEL=info\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OWLLEARN_LOG_LEVEL", "error")
	t.Setenv("OWLLEARN_DAILY_GOAL", "")
	os.Unsetenv("OWLLEARN_DAILY_GOAL")

	if err := LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	cfg, err := FromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DailyGoal != 7 {
		t.Errorf("daily goal = %d, want 7", cfg.DailyGoal)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("log level = %q, existing variable was overridden", cfg.LogLevel)
	}
}
