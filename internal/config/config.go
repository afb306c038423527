package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"tasks-cli/internal/timeutil"
)

// Config holds all configuration options for the tasks client
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Display     DisplayConfig
	Application ApplicationConfig
}

// ServerConfig holds task service connection configuration
type ServerConfig struct {
	URL string `env:"TASKS_SERVER_URL"`
	// UTCOffsetMinutes is the fixed offset deadline date/time entry is
	// interpreted under.
	UTCOffsetMinutes int `env:"TASKS_UTC_OFFSET_MINUTES"`
}

// DatabaseConfig holds local settings-store configuration
type DatabaseConfig struct {
	Dir      string `env:"TASKS_DB_DIR"`
	Filename string `env:"TASKS_DB_FILENAME"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat string `env:"TASKS_TIME_DISPLAY_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	WatchInterval time.Duration `env:"TASKS_WATCH_INTERVAL"`
	Verbose       bool          `env:"TASKS_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".tasks")

	return &Config{
		Server: ServerConfig{
			URL:              "http://localhost:8080",
			UTCOffsetMinutes: 60,
		},
		Database: DatabaseConfig{
			Dir:      defaultDBDir,
			Filename: "tasks.db",
		},
		Display: DisplayConfig{
			TimeFormat: timeutil.DisplayFormat,
		},
		Application: ApplicationConfig{
			WatchInterval: 30 * time.Second,
			Verbose:       false,
		},
	}
}

// Load builds the configuration using the cascading strategy:
// defaults, then environment variables, then command line flags (applied by
// the caller through ConfigOverrides).
func Load() (*Config, error) {
	cfg := NewConfig()
	if err := env.Parse(cfg); err != nil {
		return nil, &ConfigError{Field: "environment", Message: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	ServerURL     *string
	DBDir         *string
	DBFilename    *string
	WatchInterval *time.Duration
	Verbose       *bool
}

// Apply applies command line overrides and re-validates the configuration
func (c *Config) Apply(overrides *ConfigOverrides) error {
	if overrides == nil {
		return c.Validate()
	}
	if overrides.ServerURL != nil {
		c.Server.URL = *overrides.ServerURL
	}
	if overrides.DBDir != nil {
		c.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		c.Database.Filename = *overrides.DBFilename
	}
	if overrides.WatchInterval != nil {
		c.Application.WatchInterval = *overrides.WatchInterval
	}
	if overrides.Verbose != nil {
		c.Application.Verbose = *overrides.Verbose
	}
	return c.Validate()
}

// GetDatabasePath returns the full path to the settings database, creating
// the containing directory if needed.
func (c *Config) GetDatabasePath() (string, error) {
	if err := os.MkdirAll(c.Database.Dir, 0755); err != nil {
		return "", &ConfigError{Field: "database.dir", Message: err.Error()}
	}
	return filepath.Join(c.Database.Dir, c.Database.Filename), nil
}

// Offset returns the fixed UTC offset as a location.
func (c *Config) Offset() *time.Location {
	return timeutil.FixedOffsetMinutes(c.Server.UTCOffsetMinutes)
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return &ConfigError{Field: "server.url", Message: "server URL cannot be empty"}
	}
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}
	if c.Application.WatchInterval <= 0 {
		return &ConfigError{Field: "application.watch_interval", Message: "watch interval must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
