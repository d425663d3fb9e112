package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Tracker.StartYear != 1836 || cfg.Tracker.EndYear != 1936 {
		t.Errorf("year range = %d..%d, want 1836..1936", cfg.Tracker.StartYear, cfg.Tracker.EndYear)
	}
	if cfg.Tracker.LogPath != "decay_data.csv" {
		t.Errorf("LogPath = %q", cfg.Tracker.LogPath)
	}
	if cfg.Tracker.Tolerance != 0 {
		t.Errorf("Tolerance = %v, want 0", cfg.Tracker.Tolerance)
	}
	if cfg.Tracker.Samples != 100 {
		t.Errorf("Samples = %d, want 100", cfg.Tracker.Samples)
	}
	if got := cfg.ListenAddr(); got != "127.0.0.1:47333" {
		t.Errorf("ListenAddr = %q", got)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `tracker:
  start_year: 1900
  end_year: 2000
  tolerance: 0.25
server:
  port: 9000
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Tracker.StartYear != 1900 || cfg.Tracker.EndYear != 2000 {
		t.Errorf("year range = %d..%d, want 1900..2000", cfg.Tracker.StartYear, cfg.Tracker.EndYear)
	}
	if cfg.Tracker.Tolerance != 0.25 {
		t.Errorf("Tolerance = %v, want 0.25", cfg.Tracker.Tolerance)
	}
	// Untouched fields keep their defaults
	if cfg.Tracker.LogPath != "decay_data.csv" {
		t.Errorf("LogPath = %q, want default", cfg.Tracker.LogPath)
	}
	if cfg.Server.Bind != "127.0.0.1" {
		t.Errorf("Bind = %q, want default", cfg.Server.Bind)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Server.Port)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("tracker: [not a map"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "config.yaml")

	cfg := Default()
	cfg.Tracker.StartYear = 1843
	cfg.Tracker.EndYear = 1950
	cfg.Fiscal.GrowthRate = 0.02

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip: got %+v, want %+v", got, cfg)
	}
}
