// Package config loads the YAML configuration for srpdemo.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/srp6a/srp/internal/logging"
)

// Config is srpdemo's top-level configuration.
type Config struct {
	Identity IdentitySettings `yaml:"identity"`
	Group    int              `yaml:"group"`
	Logging  LoggingSettings  `yaml:"logging"`
}

// IdentitySettings names the demo user whose registration and handshake
// srpdemo simulates.
type IdentitySettings struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// LoggingSettings controls the demo's log output.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration srpdemo uses when no config file is
// given.
func Default() *Config {
	return &Config{
		Identity: IdentitySettings{
			Username: "alice",
			Password: "password123",
		},
		Group: 2048,
		Logging: LoggingSettings{
			Level:  "info",
			Format: "human",
		},
	}
}

func (c *Config) validate() error {
	if c.Identity.Username == "" {
		return fmt.Errorf("identity.username is required")
	}
	if c.Identity.Password == "" {
		return fmt.Errorf("identity.password is required")
	}
	switch c.Group {
	case 1024, 1536, 2048, 3072, 4096:
	default:
		return fmt.Errorf("group must be one of 1024, 1536, 2048, 3072, 4096, got %d", c.Group)
	}
	switch logging.Level(c.Logging.Level) {
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		return fmt.Errorf("logging.level %q is not a recognized level", c.Logging.Level)
	}
	switch logging.Format(c.Logging.Format) {
	case logging.FormatJSON, logging.FormatHuman:
	default:
		return fmt.Errorf("logging.format %q is not a recognized format", c.Logging.Format)
	}
	return nil
}
