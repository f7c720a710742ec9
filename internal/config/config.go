// Package config handles configuration loading from YAML files and environment variables.
// Configuration precedence: CLI flags > environment variables > config file > embedded > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a wrapper around time.Duration that supports YAML unmarshaling
// from human-readable strings like "500ms", "1s", "1m".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		parsed, err := time.ParseDuration(value.Value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value.Value, err)
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("unsupported duration format: %v", value.Kind)
	}
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Config holds all deck configuration.
type Config struct {
	Collection CollectionConfig `yaml:"collection"`
	Shell      ShellConfig      `yaml:"shell"`
	UI         UIConfig         `yaml:"ui"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// CollectionConfig holds sampling settings.
type CollectionConfig struct {
	Interval     Duration `yaml:"interval"`
	HistorySize  int      `yaml:"history_size"`
	TopProcesses int      `yaml:"top_processes"`
	DiskPath     string   `yaml:"disk_path"`
	// RateUnit divides byte-per-second rates; 1024 yields KB/s.
	RateUnit float64 `yaml:"rate_unit"`
}

// ShellConfig holds command execution settings.
type ShellConfig struct {
	Path string `yaml:"path"`
	// PTY runs commands on a pseudo-terminal instead of a pipe.
	PTY         bool `yaml:"pty"`
	EventBuffer int  `yaml:"event_buffer"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Headless bool `yaml:"headless"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Collection: CollectionConfig{
			Interval:     Duration{500 * time.Millisecond},
			HistorySize:  100,
			TopProcesses: 50,
			DiskPath:     defaultDiskPath(),
			RateUnit:     1024,
		},
		Shell: ShellConfig{
			Path:        defaultShell(),
			PTY:         false,
			EventBuffer: 256,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// CLIOverrides holds values from command-line flags.
// Zero values are treated as "not set" and skipped.
type CLIOverrides struct {
	Interval time.Duration
	Headless bool
}

// Locate searches standard config file paths and returns the first one found.
// Returns empty string if no config file exists.
func Locate() string {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadLayered loads configuration with the full precedence chain:
// CLI flags > env vars > external YAML file > embedded bytes > defaults.
//
// An optional configPath argument controls external-file discovery:
//   - omitted        → auto-discover via Locate()
//   - explicit value  → use that path ("" means no external file)
func LoadLayered(cli CLIOverrides, embedded []byte, configPath ...string) (*Config, error) {
	cfg := DefaultConfig()

	if len(embedded) > 0 {
		if err := yaml.Unmarshal(embedded, cfg); err != nil {
			return nil, fmt.Errorf("parsing embedded config: %w", err)
		}
	}

	var filePath string
	if len(configPath) > 0 {
		filePath = configPath[0]
	} else {
		filePath = Locate()
	}
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if cli.Interval > 0 {
		cfg.Collection.Interval = Duration{cli.Interval}
	}
	if cli.Headless {
		cfg.UI.Headless = true
	}

	return cfg, nil
}

// WriteConfig serializes the config to a YAML file at the given path.
// Creates parent directories if needed.
func WriteConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0640)
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DECK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DECK_INTERVAL: %w", err)
		}
		cfg.Collection.Interval = Duration{d}
	}
	if level := os.Getenv("DECK_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if shell := os.Getenv("DECK_SHELL"); shell != "" {
		cfg.Shell.Path = shell
	}
	if v := os.Getenv("DECK_HEADLESS"); v != "" {
		headless, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("DECK_HEADLESS: %w", err)
		}
		cfg.UI.Headless = headless
	}
	return nil
}

// Validate checks that the configuration can drive a sampler and a shell.
func (c *Config) Validate() error {
	if c.Collection.Interval.Duration <= 0 {
		return fmt.Errorf("collection interval must be positive (got: %s)", c.Collection.Interval.Duration)
	}
	if c.Collection.HistorySize <= 0 {
		return fmt.Errorf("history size must be positive (got: %d)", c.Collection.HistorySize)
	}
	if c.Collection.TopProcesses <= 0 {
		return fmt.Errorf("top processes must be positive (got: %d)", c.Collection.TopProcesses)
	}
	if c.Collection.RateUnit <= 0 {
		return fmt.Errorf("rate unit must be positive (got: %v)", c.Collection.RateUnit)
	}
	if c.Shell.EventBuffer <= 0 {
		return fmt.Errorf("shell event buffer must be positive (got: %d)", c.Shell.EventBuffer)
	}
	if strings.TrimSpace(c.Shell.Path) == "" {
		return fmt.Errorf("shell path is required")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
