package config

import (
	"errors"
	"testing"

	"github.com/eshaam/trackergg-scraper/internal/constants"
	scrapererrors "github.com/eshaam/trackergg-scraper/pkg/errors"
)

func TestLoadRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	_, err := Load()
	if err == nil {
		t.Fatal("expected validation failure without GEMINI_API_KEY")
	}

	var vErr *scrapererrors.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected a validation error, got %T: %v", err, err)
	}
	if vErr.Field != "GEMINI_API_KEY" {
		t.Errorf("field = %q", vErr.Field)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scraper.PlayersFile != "players.json" {
		t.Errorf("players file default = %q", cfg.Scraper.PlayersFile)
	}
	if cfg.Scraper.Concurrency != constants.Workers.Default {
		t.Errorf("concurrency default = %d", cfg.Scraper.Concurrency)
	}
	if cfg.Redis.Enabled() {
		t.Error("redis must be disabled by default")
	}
	if cfg.Postgres.Enabled() || cfg.Sheets.Enabled() {
		t.Error("optional sinks must be disabled by default")
	}
}

func TestConcurrencyClamped(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	t.Setenv("SCRAPER_CONCURRENCY", "50")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scraper.Concurrency != constants.Workers.Max {
		t.Errorf("concurrency not clamped down: %d", cfg.Scraper.Concurrency)
	}

	t.Setenv("SCRAPER_CONCURRENCY", "0")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Scraper.Concurrency != constants.Workers.Min {
		t.Errorf("concurrency not clamped up: %d", cfg.Scraper.Concurrency)
	}
}
