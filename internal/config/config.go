package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "bottomsheet"

type Config struct {
	Title        string `koanf:"title"`
	CloseEnabled *bool  `koanf:"close_enabled"` // show the close button (default: true)
	Drag         *bool  `koanf:"drag"`          // enable the drag handle (default: true)
	LogFile      string `koanf:"log_file"`      // empty disables logging
	Debug        bool   `koanf:"debug"`
}

// Load reads the config files in order of priority (last wins). An explicit
// path must exist; the default locations are optional.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	if explicit != "" {
		if err := k.Load(file.Provider(explicit), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", explicit, err)
		}
	}

	cfg := &Config{
		Title: "Bottom sheet",
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.LogFile = expandPath(cfg.LogFile)
	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/bottomsheet/config.toml
	if path, err := xdg.SearchConfigFile(filepath.Join(appName, "config.toml")); err == nil {
		paths = append(paths, path)
	}

	// 2. ./bottomsheet.toml (pwd, highest priority)
	paths = append(paths, appName+".toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// ErrNotExist is returned by Validate for a log file in a missing directory.
var ErrNotExist = errors.New("config: log directory does not exist")

// Validate checks values that can be verified before the UI starts.
func (c *Config) Validate() error {
	if c.LogFile == "" {
		return nil
	}
	dir := filepath.Dir(c.LogFile)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrNotExist)
	}
	return nil
}

// CloseButton returns whether the close button is shown, true by default.
func (c *Config) CloseButton() bool {
	return c.CloseEnabled == nil || *c.CloseEnabled
}

// DragEnabled returns whether the drag handle is enabled, true by default.
func (c *Config) DragEnabled() bool {
	return c.Drag == nil || *c.Drag
}
