// Package config holds the YAML-based server configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "15m" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// TokenConfig maps a static bearer token to a user identity. These are
// loaded at startup and resolved through the session cache at request time.
type TokenConfig struct {
	Token string `yaml:"token"`
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// DatabasePath is the filesystem path of the SQLite database.
	DatabasePath string `yaml:"database_path"`

	// Locations is the set of bookable venue identifiers.
	Locations []string `yaml:"locations"`

	// LaneCount is the number of parallel event bars a month cell can show.
	LaneCount int `yaml:"lane_count"`

	// SessionTTL is how long an authenticated session lookup stays cached.
	SessionTTL Duration `yaml:"session_ttl"`

	// ReminderCron is the cron schedule for the booking reminder sweep.
	ReminderCron string `yaml:"reminder_cron"`

	// ReminderLead is how far ahead the reminder sweep looks for
	// approved bookings about to start.
	ReminderLead Duration `yaml:"reminder_lead"`

	// Tokens are the recognized bearer tokens and their identities.
	Tokens []TokenConfig `yaml:"tokens"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Listen:       ":8080",
		DatabasePath: "./data/bookings.db",
		Locations:    []string{"aula-lantai-1", "aula-lantai-2"},
		LaneCount:    3,
		SessionTTL:   Duration(15 * time.Minute),
		ReminderCron: "*/10 * * * *",
		ReminderLead: Duration(time.Hour),
	}
}

// Normalize fills in missing or zero values with defaults so a partial
// config file still behaves correctly.
func (c *Config) Normalize() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "./data/bookings.db"
	}
	if len(c.Locations) == 0 {
		c.Locations = []string{"aula-lantai-1", "aula-lantai-2"}
	}
	if c.LaneCount <= 0 {
		c.LaneCount = 3
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = Duration(15 * time.Minute)
	}
	if c.ReminderCron == "" {
		c.ReminderCron = "*/10 * * * *"
	}
	if c.ReminderLead <= 0 {
		c.ReminderLead = Duration(time.Hour)
	}
}

// Validate rejects configurations that would misbehave at runtime.
func (c *Config) Validate() error {
	for _, t := range c.Tokens {
		if t.Token == "" || t.ID == "" {
			return fmt.Errorf("token entry for %q missing token or id", t.Name)
		}
	}
	return nil
}

// KnownLocation reports whether a venue identifier is configured.
func (c *Config) KnownLocation(location string) bool {
	for _, l := range c.Locations {
		if l == location {
			return true
		}
	}
	return false
}

// Load reads configuration from the given YAML path. A missing file is
// not an error: the defaults are returned so the server can start with
// no config at all.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
