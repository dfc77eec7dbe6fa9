package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// AppName names the config and data directories.
const AppName = "onair"

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.onairrc, $XDG_CONFIG_HOME/onair/config.toml, ~/.config/onair/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Path returns the default config file location.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".onairrc"
	}
	return filepath.Join(home, ".onairrc")
}

// DataDir returns the directory holding device-local state.
func DataDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// MessagesPath returns the configured message store path, or the default
// location inside DataDir for the selected backend.
func (c *Config) MessagesPath() (string, error) {
	if c.Messages.Path != "" {
		return c.Messages.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	name := "messages.json"
	if c.Messages.Backend == "sqlite" {
		name = "messages.db"
	}
	return filepath.Join(dir, name), nil
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".onairrc"),
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, AppName, "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
// A .env file in the working directory is loaded first; variables already
// set in the environment win.
func applyEnvOverrides(cfg *Config) {
	_ = godotenv.Load()

	// Station
	if v := os.Getenv("ONAIR_STATION_NAME"); v != "" {
		cfg.Station.Name = v
	}
	if v := os.Getenv("ONAIR_STREAM_URL"); v != "" {
		cfg.Station.StreamURL = v
	}

	// Metadata
	if v := os.Getenv("ONAIR_METADATA_URL"); v != "" {
		cfg.Metadata.URL = v
	}
	if v := os.Getenv("ONAIR_METADATA_FALLBACK_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Metadata.FallbackInterval = i
		}
	}

	// Player
	if v := os.Getenv("ONAIR_VOLUME"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Player.Volume = i
		}
	}

	// Messages
	if v := os.Getenv("ONAIR_MESSAGES_BACKEND"); v != "" {
		cfg.Messages.Backend = v
	}
	if v := os.Getenv("ONAIR_MESSAGES_PATH"); v != "" {
		cfg.Messages.Path = v
	}

	// Moderator
	if v := os.Getenv("ONAIR_MODERATOR_PASSPHRASE"); v != "" {
		cfg.Moderator.Passphrase = v
	}

	// TUI
	if v := os.Getenv("ONAIR_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}

	// Log
	if v := os.Getenv("ONAIR_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ONAIR_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
