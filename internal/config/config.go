// Package config manages the global Opsdesk configuration stored at
// ~/.opsdesk/config.yaml, with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/opsdeskhq/opsdesk/internal/errors"
)

const (
	// ConfigDirName is the directory under $HOME holding all Opsdesk state
	ConfigDirName = ".opsdesk"
	// ConfigFileName is the global configuration file name
	ConfigFileName = "config.yaml"

	// EnvAPIURL overrides the configured backend origin
	EnvAPIURL = "OPSDESK_API_URL"

	// DefaultAPIURL is used when nothing else is configured
	DefaultAPIURL = "http://localhost:8000"
	// DefaultTimeout bounds every API request
	DefaultTimeout = 10 * time.Second
)

// Config represents the global Opsdesk configuration
type Config struct {
	// APIURL is the backend origin, e.g. https://api.opsdesk.example.com
	APIURL string `yaml:"api_url,omitempty"`

	// TimeoutSeconds bounds every API request (default 10)
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// Output is the default output format (text, json, yaml, csv)
	Output string `yaml:"output,omitempty"`

	// Logging holds logger settings
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Default returns a Config with all defaults applied
func Default() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		TimeoutSeconds: int(DefaultTimeout / time.Second),
		Output:         "text",
	}
}

// Dir returns the Opsdesk config directory, creating nothing.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// Path returns the path to the global configuration file
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// Load reads the configuration file, applies defaults, and applies
// environment overrides. A missing file is not an error.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, err
	}

	cfg, err = loadFrom(path)
	if err != nil {
		return cfg, err
	}

	if url := os.Getenv(EnvAPIURL); url != "" {
		cfg.APIURL = url
	}

	return cfg, nil
}

func loadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.NewConfigUnmarshalError(path, err)
	}

	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = int(DefaultTimeout / time.Second)
	}
	if cfg.Output == "" {
		cfg.Output = "text"
	}

	return cfg, nil
}

// Save writes the configuration file, creating the config directory if needed
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigMarshal, "failed to marshal config", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write config file", err)
	}

	return nil
}

// Timeout returns the request timeout as a duration
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}
