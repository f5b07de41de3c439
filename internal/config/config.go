package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "12h" parse directly.
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

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Reminders configures the background reminder evaluator.
type Reminders struct {
	// Interval between evaluation passes.
	Interval Duration `yaml:"interval"`
	// Cooldown suppresses re-delivery of a reminder kind fired recently.
	Cooldown Duration `yaml:"cooldown"`
	// InactiveAfterDays is the inactivity threshold in whole days.
	InactiveAfterDays int `yaml:"inactive_after_days"`
	// UnwornAfterDays is the rarely-worn threshold in whole days.
	UnwornAfterDays int `yaml:"unworn_after_days"`
}

// Config holds the service configuration.
type Config struct {
	Addr       string    `yaml:"addr"`
	DBPath     string    `yaml:"db_path"`
	LogPath    string    `yaml:"log_path"`
	WebhookURL string    `yaml:"webhook_url"`
	Reminders  Reminders `yaml:"reminders"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:   ":8080",
		DBPath: "garderoba.sqlite3",
		Reminders: Reminders{
			Interval:          Duration(12 * time.Hour),
			Cooldown:          Duration(24 * time.Hour),
			InactiveAfterDays: 14,
			UnwornAfterDays:   60,
		},
	}
}

// Load reads a YAML configuration file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Reminders.Interval <= 0 {
		return fmt.Errorf("reminders.interval must be positive")
	}
	if c.Reminders.Cooldown < 0 {
		return fmt.Errorf("reminders.cooldown must not be negative")
	}
	if c.Reminders.InactiveAfterDays <= 0 || c.Reminders.UnwornAfterDays <= 0 {
		return fmt.Errorf("reminder thresholds must be positive")
	}
	return nil
}
