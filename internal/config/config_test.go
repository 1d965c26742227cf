package config_test

import (
	"log/slog"
	"testing"

	"github.com/Anto-dev-perso/Recipedia-sub000/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.DatabasePath == "" {
		t.Error("expected default database path")
	}
	if cfg.DefaultPersons != 4 {
		t.Errorf("expected default persons 4, got %d", cfg.DefaultPersons)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("RECIPEDIA_DATABASE_PATH", "/tmp/other.db")
	t.Setenv("RECIPEDIA_DEFAULT_PERSONS", "6")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.DatabasePath != "/tmp/other.db" {
		t.Errorf("expected env override, got %q", cfg.DatabasePath)
	}
	if cfg.DefaultPersons != 6 {
		t.Errorf("expected env override 6, got %d", cfg.DefaultPersons)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := config.Config{LogLevel: tt.level}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
