package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all taper configuration.
type Config struct {
	Tracker  TrackerConfig  `yaml:"tracker"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Fiscal   FiscalConfig   `yaml:"fiscal"`
}

type TrackerConfig struct {
	StartYear int     `yaml:"start_year"`
	EndYear   int     `yaml:"end_year"`
	LogPath   string  `yaml:"log_path"`
	Tolerance float64 `yaml:"tolerance"` // absolute slack for "on track", 0 means exact
	Samples   int     `yaml:"samples"`   // points on the expected curve
}

type ServerConfig struct {
	Bind string `yaml:"bind"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type FiscalConfig struct {
	GrowthRate float64 `yaml:"growth_rate"` // default GDP growth when the flag is not set
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Tracker: TrackerConfig{
			StartYear: 1836,
			EndYear:   1936,
			LogPath:   "decay_data.csv",
			Tolerance: 0,
			Samples:   100,
		},
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 47333,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		Fiscal: FiscalConfig{
			GrowthRate: 0,
		},
	}
}

// DefaultPath returns the standard config file location,
// ~/.taper/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".taper", "config.yaml"), nil
}

// Load reads the config file at path over the defaults. A missing
// file is not an error: the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories as
// needed.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
