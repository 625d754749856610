// Package config holds the runtime settings of the careportal CLI and the
// defaults → JSON file → flags overlay that produces them.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the careportal CLI.
//
// StateDir contains everything the client persists locally: the sqlite
// state database and the device secret that seals stored credentials.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	StateDir       string
	OpenAIAPIKey   string
	OpenAIModel    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://healthcare-backend-a66n.onrender.com/api"
	c.RequestTimeout = 15 * time.Second

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	c.StateDir = filepath.Join(home, ".careportal")
}

// DBPath is the sqlite database holding all durable client state.
func (c *Config) DBPath() string {
	return filepath.Join(c.StateDir, "state.db")
}

// DeviceKeyPath is the per-device secret file.
func (c *Config) DeviceKeyPath() string {
	return filepath.Join(c.StateDir, "device.key")
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was given), flags, and finally the
// environment for secrets. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	return cfg
}

// parseEnv reads secrets that should not live in files or argv.
func parseEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAIModel = v
	}
}
