package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/robfig/cron/v3"
)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Database   DatabaseConfig    `yaml:"database"`
	Seed       SeedConfig        `yaml:"seed"`
	Classifier ClassifierConfig  `yaml:"classifier"`
	CORS       CORSConfig        `yaml:"cors"`
	RateLimit  RateLimitConfig   `yaml:"rate_limit"`
	Media      MediaConfig       `yaml:"media"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Classifier.Validate(); err != nil {
		return err
	}
	if err := c.RateLimit.Validate(); err != nil {
		return err
	}
	return c.Media.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// DatabaseConfig selects the content store.
// A DSN starting with postgres:// uses PostgreSQL; anything else is a SQLite file path.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// Validate validates the database configuration.
func (c *DatabaseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DSN, validation.Required),
	)
}

// SeedConfig controls startup seeding.
//
// Reset deletes all content before seeding. It is destructive and off by default.
// DatasetPath replaces the builtin dataset when set.
type SeedConfig struct {
	Reset       bool   `yaml:"reset"`
	DatasetPath string `yaml:"dataset_path"`
}

// ClassifierConfig controls periodic event reclassification.
type ClassifierConfig struct {
	// Schedule is a cron expression; empty disables the periodic pass.
	Schedule string `yaml:"schedule"`
	// Timezone names the location that defines "today".
	Timezone string `yaml:"timezone"`
}

// Validate validates the classifier configuration.
func (c *ClassifierConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Schedule, validation.By(func(any) error {
			if c.Schedule == "" {
				return nil
			}
			_, err := cron.ParseStandard(c.Schedule)
			return err
		})),
		validation.Field(&c.Timezone, validation.By(func(any) error {
			_, err := c.Location()
			return err
		})),
	)
}

// Location returns the configured time zone, UTC when unset.
func (c *ClassifierConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// CORSConfig lists the browser origins allowed to call the API. Empty allows any.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RateLimitConfig holds per-IP rate limiting for /api.
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
	Disabled bool          `yaml:"disabled"`
}

// Validate validates the rate limit configuration.
func (c *RateLimitConfig) Validate() error {
	if c.Disabled {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Requests, validation.Required, validation.Min(1)),
		validation.Field(&c.Window, validation.Required, validation.Min(time.Second)),
	)
}

// MediaConfig holds the directory for uploaded event photos.
type MediaConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the media configuration.
func (c *MediaConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8000,
			},
		},
		Database: DatabaseConfig{
			DSN: "./maqam.db",
		},
		Classifier: ClassifierConfig{
			Schedule: "@hourly",
		},
		RateLimit: RateLimitConfig{
			Requests: 120,
			Window:   time.Minute,
		},
		Media: MediaConfig{
			Path: "./media/photos",
		},
	}
}
