package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds storefront client configuration.
type Config struct {
	// Endpoint is the API root, e.g. http://localhost:8082/api/v1.
	Endpoint string `yaml:"endpoint" validate:"required,url"`
	// Timeout bounds every API request.
	Timeout string `yaml:"timeout" validate:"required"`

	Search  SearchConfig  `yaml:"search"`
	Session SessionConfig `yaml:"session"`
	Logging LoggingConfig `yaml:"logging"`
}

type SearchConfig struct {
	Debounce string `yaml:"debounce" validate:"required"`
}

type SessionConfig struct {
	// File is where the login session is kept. Empty keeps it in memory.
	File string `yaml:"file"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
	// File receives logs while the interactive browser owns the terminal.
	File string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Endpoint: "http://localhost:8082/api/v1",
		Timeout:  "10s",
		Search: SearchConfig{
			Debounce: "500ms",
		},
		Session: SessionConfig{
			File: defaultSessionFile(),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
			File:   filepath.Join(os.TempDir(), "storefront.log"),
		},
	}
}

func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "storefront.yaml"
	}
	return filepath.Join(dir, "storefront", "config.yaml")
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "storefront", "session.yaml")
}

// Load reads path over the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.Endpoint = getenv("STOREFRONT_ENDPOINT", c.Endpoint)
	c.Timeout = getenv("STOREFRONT_TIMEOUT", c.Timeout)
	c.Search.Debounce = getenv("STOREFRONT_DEBOUNCE", c.Search.Debounce)
	c.Session.File = getenv("STOREFRONT_SESSION_FILE", c.Session.File)
	c.Logging.Level = getenv("STOREFRONT_LOG_LEVEL", c.Logging.Level)
	c.Logging.File = getenv("STOREFRONT_LOG_FILE", c.Logging.File)
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.RequestTimeout(); err != nil {
		return fmt.Errorf("invalid config: timeout: %w", err)
	}
	if _, err := c.DebounceDelay(); err != nil {
		return fmt.Errorf("invalid config: search.debounce: %w", err)
	}
	return nil
}

func (c *Config) RequestTimeout() (time.Duration, error) {
	return parsePositive(c.Timeout)
}

func (c *Config) DebounceDelay() (time.Duration, error) {
	return parsePositive(c.Search.Debounce)
}

func parsePositive(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
