package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadLayered_CLIOverridesEverything(t *testing.T) {
	embedded := []byte("collection:\n  interval: 2s\nui:\n  headless: false")
	t.Setenv("DECK_INTERVAL", "3s")
	cli := CLIOverrides{Interval: 250 * time.Millisecond, Headless: true}

	cfg, err := LoadLayered(cli, embedded, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Collection.Interval.Duration != 250*time.Millisecond {
		t.Errorf("Interval = %v, want CLI override", cfg.Collection.Interval.Duration)
	}
	if !cfg.UI.Headless {
		t.Error("Headless = false, want CLI override")
	}
}

func TestLoadLayered_EnvOverridesEmbed(t *testing.T) {
	embedded := []byte("collection:\n  interval: 2s\n  top_processes: 7\nshell:\n  path: /bin/bash")
	t.Setenv("DECK_INTERVAL", "3s")
	t.Setenv("DECK_SHELL", "/bin/zsh")
	t.Setenv("DECK_HEADLESS", "true")

	cfg, err := LoadLayered(CLIOverrides{}, embedded, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Collection.Interval.Duration != 3*time.Second {
		t.Errorf("Interval = %v, want env override", cfg.Collection.Interval.Duration)
	}
	if cfg.Shell.Path != "/bin/zsh" {
		t.Errorf("Shell = %q, want env override", cfg.Shell.Path)
	}
	if !cfg.UI.Headless {
		t.Error("Headless = false, want env override")
	}
	if cfg.Collection.TopProcesses != 7 {
		t.Errorf("TopProcesses = %d, want embedded value", cfg.Collection.TopProcesses)
	}
}

func TestLoadLayered_FileOverridesEmbed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("collection:\n  history_size: 20\nlogging:\n  level: debug"), 0600); err != nil {
		t.Fatal(err)
	}
	embedded := []byte("collection:\n  history_size: 60\n  rate_unit: 1000")

	cfg, err := LoadLayered(CLIOverrides{}, embedded, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Collection.HistorySize != 20 {
		t.Errorf("HistorySize = %d, want file value", cfg.Collection.HistorySize)
	}
	if cfg.Collection.RateUnit != 1000 {
		t.Errorf("RateUnit = %v, want embedded value", cfg.Collection.RateUnit)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want file value", cfg.Logging.Level)
	}
}

func TestLoadLayered_MissingFileFallsBack(t *testing.T) {
	cfg, err := LoadLayered(CLIOverrides{}, nil, filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Collection.HistorySize != 100 {
		t.Errorf("HistorySize = %d, want default", cfg.Collection.HistorySize)
	}
}

func TestLoadLayered_DefaultsWhenEmpty(t *testing.T) {
	cfg, err := LoadLayered(CLIOverrides{}, nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Collection.Interval.Duration != 500*time.Millisecond {
		t.Errorf("Interval = %v, want 500ms default", cfg.Collection.Interval.Duration)
	}
	if cfg.Collection.TopProcesses != 50 || cfg.Collection.RateUnit != 1024 {
		t.Errorf("unexpected defaults: %+v", cfg.Collection)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadLayered_BadEnv(t *testing.T) {
	t.Setenv("DECK_INTERVAL", "soon")
	if _, err := LoadLayered(CLIOverrides{}, nil, ""); err == nil {
		t.Error("expected error for unparseable DECK_INTERVAL")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"interval", func(c *Config) { c.Collection.Interval = Duration{0} }, "interval"},
		{"history", func(c *Config) { c.Collection.HistorySize = -1 }, "history"},
		{"top", func(c *Config) { c.Collection.TopProcesses = 0 }, "top processes"},
		{"rate unit", func(c *Config) { c.Collection.RateUnit = 0 }, "rate unit"},
		{"buffer", func(c *Config) { c.Shell.EventBuffer = 0 }, "event buffer"},
		{"shell", func(c *Config) { c.Shell.Path = "  " }, "shell path"},
		{"level", func(c *Config) { c.Logging.Level = "loud" }, "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestWriteConfig_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Collection.Interval = Duration{2 * time.Second}

	if err := WriteConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadLayered(CLIOverrides{}, nil, path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Collection.Interval.Duration != 2*time.Second {
		t.Errorf("round-tripped Interval = %v", loaded.Collection.Interval.Duration)
	}
}
