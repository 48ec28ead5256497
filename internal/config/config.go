package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"sololevel/internal/storage"
)

type Config struct {
	Database DatabaseConfig `yaml:"database" json:"database"`
	Player   string         `yaml:"player" json:"player"`
	Day      DayConfig      `yaml:"day" json:"day"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	Sweep    SweepConfig    `yaml:"sweep" json:"sweep"`
	Store    StoreConfig    `yaml:"store" json:"store"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" json:"path"`
}

// DayConfig is the single global definition of when a day starts.
type DayConfig struct {
	BoundaryHour int    `yaml:"boundary_hour" json:"boundary_hour"`
	Timezone     string `yaml:"timezone" json:"timezone"`
}

type ServerConfig struct {
	Addr           string `yaml:"addr" json:"addr"`
	// AllowedOrigins is a comma separated CORS allow list.
	AllowedOrigins string `yaml:"allowed_origins" json:"allowed_origins"`
}

type SweepConfig struct {
	Enabled *bool `yaml:"enabled" json:"enabled"`
}

type StoreConfig struct {
	SaveRetries int `yaml:"save_retries" json:"save_retries"`
}

const (
	DefaultPlayer      = "main"
	DefaultTimezone    = "UTC"
	DefaultAddr        = ":5050"
	DefaultOrigins     = "*"
	DefaultSaveRetries = 3
)

// Default returns a config with every field at its default.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

func (s SweepConfig) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

func (c *Config) ApplyDefaults() {
	if c.Database.Path == "" {
		if p, err := storage.DefaultDBPath(); err == nil {
			c.Database.Path = p
		} else {
			c.Database.Path = ".sololevel.db"
		}
	}
	c.Database.Path = expandHome(c.Database.Path)
	if strings.TrimSpace(c.Player) == "" {
		c.Player = DefaultPlayer
	}
	if c.Day.Timezone == "" {
		c.Day.Timezone = DefaultTimezone
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.AllowedOrigins == "" {
		c.Server.AllowedOrigins = DefaultOrigins
	}
	if c.Sweep.Enabled == nil {
		on := true
		c.Sweep.Enabled = &on
	}
	if c.Store.SaveRetries == 0 {
		c.Store.SaveRetries = DefaultSaveRetries
	}
}

func (c *Config) Validate() error {
	if c.Day.BoundaryHour < 0 || c.Day.BoundaryHour > 23 {
		return fmt.Errorf("day.boundary_hour must be between 0 and 23, got %d", c.Day.BoundaryHour)
	}
	if _, err := time.LoadLocation(c.Day.Timezone); err != nil {
		return fmt.Errorf("day.timezone %q: %w", c.Day.Timezone, err)
	}
	if c.Store.SaveRetries < 1 {
		return fmt.Errorf("store.save_retries must be at least 1, got %d", c.Store.SaveRetries)
	}
	return nil
}

// Location returns the configured day timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Day.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Load reads a YAML config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	c.ApplyDefaults()
	return &c, nil
}

// DefaultPath is where the config file lives when neither a flag nor SL_CONFIG names one.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "sololevel.yaml"
	}
	return filepath.Join(dir, "sololevel", "config.yaml")
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
