// Package config loads application settings from an optional YAML file.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is everything the application reads at startup.
type Config struct {
	// ServerURL is the base URL of the task service.
	ServerURL string `mapstructure:"server_url"`
	// LogFile receives structured logs. The terminal itself is owned by the
	// UI, so logging never goes to stdout.
	LogFile string `mapstructure:"log_file"`
	// Development switches the logger to the human-readable encoder.
	Development bool `mapstructure:"development"`
}

// Default returns the built-in settings used when no config file exists.
func Default() *Config {
	return &Config{
		ServerURL: "http://localhost:8000",
		LogFile:   filepath.Join(dataDir(), "taskdeck.log"),
	}
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file is not an error; defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns the default config file location, XDG aware.
func DefaultPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml"
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "taskdeck", "config.yaml")
}

// dataDir returns the platform data directory for taskdeck.
func dataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "taskdeck")
}
