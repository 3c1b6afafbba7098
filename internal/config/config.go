// Package config provides configuration loading and validation for the CLI
// and server. Values come from a JSON file, environment variables, or CLI
// flags; flags win, then the file, then the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/moobydog0324-a11y/GSENR-NEW/internal/miso"
)

var validate = validator.New()

// Config represents the collector configuration. All fields are optional in
// the file and environment; MisoEndpoint and MisoAPIKey must be present
// somewhere before a collection can run.
type Config struct {
	// Workflow engine
	MisoEndpoint string `json:"miso_endpoint,omitempty" validate:"omitempty,url"`
	MisoAPIKey   string `json:"miso_api_key,omitempty"`

	// Collection behavior
	Mode           string `json:"mode,omitempty" validate:"omitempty,oneof=blocking streaming"`
	User           string `json:"user,omitempty" validate:"omitempty,max=128"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" validate:"omitempty,min=1,max=3600"`
	MaxRetries     int    `json:"max_retries,omitempty" validate:"omitempty,min=0,max=10"`
	BackoffSeconds int    `json:"backoff_seconds,omitempty" validate:"omitempty,min=1,max=60"`
	WindowHours    int    `json:"window_hours,omitempty" validate:"omitempty,min=1,max=168"`

	// Server
	Port int `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`

	// Output
	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Unset variables leave
// the zero value so the result merges cleanly with file and flag sources.
func FromEnv() Config {
	return Config{
		MisoEndpoint:   os.Getenv("MISO_ENDPOINT"),
		MisoAPIKey:     os.Getenv("MISO_API_KEY"),
		Mode:           os.Getenv("MISO_MODE"),
		User:           os.Getenv("MISO_USER"),
		TimeoutSeconds: envInt("MISO_TIMEOUT_SECONDS"),
		MaxRetries:     envInt("MISO_MAX_RETRIES"),
		BackoffSeconds: envInt("MISO_BACKOFF_SECONDS"),
		WindowHours:    envInt("NEWS_WINDOW_HOURS"),
		Port:           envInt("PORT"),
	}
}

func envInt(key string) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return 0
}

// Validate checks that the configuration has valid values. Required fields
// are not checked here; the transport layer rejects a missing endpoint or
// key when a collection actually starts.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. Used to layer flag values over file values over the environment.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.MisoEndpoint == "" {
		result.MisoEndpoint = defaults.MisoEndpoint
	}
	if result.MisoAPIKey == "" {
		result.MisoAPIKey = defaults.MisoAPIKey
	}
	if result.Mode == "" {
		result.Mode = defaults.Mode
	}
	if result.User == "" {
		result.User = defaults.User
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.MaxRetries == 0 {
		result.MaxRetries = defaults.MaxRetries
	}
	if result.BackoffSeconds == 0 {
		result.BackoffSeconds = defaults.BackoffSeconds
	}
	if result.WindowHours == 0 {
		result.WindowHours = defaults.WindowHours
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// TransportConfig converts the loaded values into the workflow client
// configuration. Zero values defer to the client's own defaults.
func (c *Config) TransportConfig() miso.Config {
	return miso.Config{
		Endpoint:    c.MisoEndpoint,
		APIKey:      c.MisoAPIKey,
		Timeout:     time.Duration(c.TimeoutSeconds) * time.Second,
		MaxRetries:  c.MaxRetries,
		BackoffBase: time.Duration(c.BackoffSeconds) * time.Second,
	}
}

// Window returns the recency window, or zero when unset.
func (c *Config) Window() time.Duration {
	return time.Duration(c.WindowHours) * time.Hour
}
