// Package config loads the axcore YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/axcore/internal/ax"
	"github.com/mj1618/axcore/internal/output"
)

// Config holds the defaults the CLI falls back to when a flag is not set.
type Config struct {
	Format  string        `yaml:"format"`
	Timeout time.Duration `yaml:"timeout"`
	KeyRate string        `yaml:"key_rate"`
	Prompt  bool          `yaml:"prompt"`
	Depth   int           `yaml:"depth"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{KeyRate: "default"}
}

// Path returns the config file location: $AXCORE_CONFIG, else
// $XDG_CONFIG_HOME/axcore/config.yaml, else ~/.config/axcore/config.yaml.
func Path(getenv func(string) string) string {
	if p := getenv("AXCORE_CONFIG"); p != "" {
		return p
	}
	if dir := getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "axcore", "config.yaml")
	}
	home := getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, ".config", "axcore", "config.yaml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every key that has a constrained value.
func (c Config) Validate() error {
	if c.Format != "" {
		if _, err := output.ParseFormat(c.Format); err != nil {
			return err
		}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	if _, err := ax.ParseKeyRate(c.KeyRate); err != nil {
		return err
	}
	if c.Depth < 0 {
		return fmt.Errorf("depth must not be negative: %d", c.Depth)
	}
	return nil
}
