// Package config loads settings from ~/.config/coursecraft/config.yaml,
// overridable through COURSECRAFT_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreLocal  = "local"
	StoreRemote = "remote"
)

// Config holds the runtime settings shared by the TUI, CLI and MCP
// binaries.
type Config struct {
	// Store selects the backend: "local" (SQLite) or "remote" (HTTP API).
	Store string `mapstructure:"store"`

	// DBPath is the SQLite database location for the local store.
	DBPath string `mapstructure:"db_path"`

	// APIURL and APIToken configure the remote store.
	APIURL   string `mapstructure:"api_url"`
	APIToken string `mapstructure:"api_token"`

	// DragThreshold is the pointer travel (in cells) that turns a press
	// into a drag. 0 keeps the built-in default.
	DragThreshold float64 `mapstructure:"drag_threshold"`
}

// Load reads the config file if present and applies environment
// overrides. A missing file is not an error; defaults apply.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("store", StoreLocal)
	v.SetDefault("db_path", filepath.Join(defaultDataDir(), "courses.db"))
	v.SetDefault("api_url", "http://localhost:8080")
	v.SetDefault("api_token", "")
	v.SetDefault("drag_threshold", 0.0)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultConfigDir())

	v.SetEnvPrefix("COURSECRAFT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Store != StoreLocal && cfg.Store != StoreRemote {
		return nil, fmt.Errorf("store must be %q or %q, got %q", StoreLocal, StoreRemote, cfg.Store)
	}
	return &cfg, nil
}

func defaultConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "coursecraft")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "coursecraft")
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "coursecraft")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "coursecraft")
}
