package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for unusable settings.
var ErrInvalid = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings the collision core cannot work without.
func (c *Config) Validate() error {
	if c.Collision.CellSize <= 0 {
		return fmt.Errorf("%w: collision.cell_size must be positive, got %v", ErrInvalid, c.Collision.CellSize)
	}
	if c.Collision.GridCols <= 0 || c.Collision.GridRows <= 0 {
		return fmt.Errorf("%w: collision grid must be at least 1x1, got %dx%d",
			ErrInvalid, c.Collision.GridCols, c.Collision.GridRows)
	}
	if c.Collision.ColliderRadius < 0 {
		return fmt.Errorf("%w: collision.collider_radius must not be negative", ErrInvalid)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./tilecollide.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "tilecollide")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "tilecollide")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "tilecollide")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "tilecollide")
	}
}

// loadFromFile merges a YAML file over the existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
