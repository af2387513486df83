// Package config is responsible for setting the program config from
// the config file and command-line arguments
package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ayoisaiah/slumber/internal/models"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Storage       StorageConfig      `mapstructure:"storage"`
		Display       DisplayConfig      `mapstructure:"display"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		CLI           CLIConfig          `mapstructure:"-"`
		Notifications NotificationConfig `mapstructure:"notifications"`
	}

	// StorageConfig selects the database backend.
	StorageConfig struct {
		Driver string `mapstructure:"driver" validate:"oneof=bolt sqlite"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
	}

	// NotificationConfig holds notification settings.
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// SettingsConfig holds general behaviour settings.
	SettingsConfig struct {
		// Cmd is executed after a sleep session is stopped
		Cmd           string `mapstructure:"cmd"`
		PromptQuality bool   `mapstructure:"prompt_quality"`
	}

	// CLIConfig holds values that only come from command-line arguments.
	CLIConfig struct {
		StartTime  time.Time
		EndTime    time.Time
		Quality    models.Quality
		ID         int64
		HasQuality bool
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config with default values and applies options.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{
			Driver: DriverBolt,
		},
		CLI: CLIConfig{
			Quality: models.QualityUnrated,
		},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errConfigValidation, err)
	}

	return cfg, nil
}
