// Package config loads and saves the pgpeek TOML configuration.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig `toml:"server"`
	Client   ClientConfig `toml:"client"`
	Profiles []Profile    `toml:"profiles"`
	Theme    Theme        `toml:"theme_colors"`

	path string
}

// ServerConfig configures `pgpeek serve`.
type ServerConfig struct {
	Listen       string `toml:"listen"`
	LogLevel     string `toml:"log_level"`
	DefaultLimit int    `toml:"default_limit"`
}

// ClientConfig configures `pgpeek tui`.
type ClientConfig struct {
	APIURL       string `toml:"api_url"`
	RowLimits    []int  `toml:"row_limits"`
	DefaultLimit int    `toml:"default_limit"`
	DebounceMs   int    `toml:"debounce_ms"`
}

// Theme defines the color palette.
type Theme struct {
	TextPrimary   string `toml:"text_primary"`
	TextSecondary string `toml:"text_secondary"`
	TextFaint     string `toml:"text_faint"`
	Accent        string `toml:"accent"`
	Success       string `toml:"success"`
	Error         string `toml:"error"`
	Highlight     string `toml:"highlight"`
	Warning       string `toml:"warning"`
	BgPrimary     string `toml:"bg_primary"`
	BgSecondary   string `toml:"bg_secondary"`
}

// DefaultConfig returns a config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:       ":3001",
			LogLevel:     "info",
			DefaultLimit: 50,
		},
		Client: ClientConfig{
			APIURL:       "http://localhost:3001",
			RowLimits:    []int{10, 25, 50, 100, 500},
			DefaultLimit: 50,
			DebounceMs:   100,
		},
		Profiles: []Profile{},
		Theme: Theme{
			// Nord
			TextPrimary:   "#D8DEE9",
			TextSecondary: "#81A1C1",
			TextFaint:     "#4C566A",
			Accent:        "#88C0D0",
			Success:       "#A3BE8C",
			Error:         "#BF616A",
			Highlight:     "#8FBCBB",
			Warning:       "#D08770",
			BgPrimary:     "#2E3440",
			BgSecondary:   "#3B4252",
		},
	}
}

// DefaultPath returns the XDG-compliant config file path.
func DefaultPath() (string, error) {
	return xdg.ConfigFile("pgpeek/config.toml")
}

// Load reads the config at path, or the default path when path is empty.
// A missing file is created with default values.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		cfg.path = path
		if err := cfg.Save(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	cfg.path = path
	cfg.fillDefaults()

	return &cfg, nil
}

// fillDefaults populates fields left out of an older or partial file.
func (c *Config) fillDefaults() {
	d := DefaultConfig()

	if c.Server.Listen == "" {
		c.Server.Listen = d.Server.Listen
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = d.Server.LogLevel
	}
	if c.Server.DefaultLimit <= 0 {
		c.Server.DefaultLimit = d.Server.DefaultLimit
	}
	if c.Client.APIURL == "" {
		c.Client.APIURL = d.Client.APIURL
	}
	if len(c.Client.RowLimits) == 0 {
		c.Client.RowLimits = d.Client.RowLimits
	}
	if c.Client.DefaultLimit <= 0 {
		c.Client.DefaultLimit = d.Client.DefaultLimit
	}
	if c.Client.DebounceMs <= 0 {
		c.Client.DebounceMs = d.Client.DebounceMs
	}
	if c.Theme.TextPrimary == "" {
		c.Theme = d.Theme
	}
	if c.Profiles == nil {
		c.Profiles = []Profile{}
	}
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the config back to the file it was loaded from.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return err
		}
		c.path = path
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	// Owner read/write only.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
