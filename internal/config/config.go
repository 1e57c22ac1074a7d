// Package config loads the service configuration from YAML, a .env file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when none is given
const DefaultPath = "configs/config.yaml"

// Config represents the application configuration
type Config struct {
	LogLevel    string `yaml:"log_level"`
	Development bool   `yaml:"development"`
	SeedFile    string `yaml:"seed_file"`

	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Database struct {
		Driver  string `yaml:"driver"`
		DSN     string `yaml:"dsn"`
		LogMode bool   `yaml:"log_mode"`
	} `yaml:"database"`

	MetricsConfig struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	cfg := &Config{LogLevel: "info"}
	cfg.Server.Port = 8080
	cfg.Database.Driver = "sqlite3"
	cfg.Database.DSN = "buffet.db"
	cfg.MetricsConfig.Enabled = true
	cfg.MetricsConfig.Port = 9090
	cfg.MetricsConfig.Path = "/metrics"
	return cfg
}

// Load reads the configuration at path over the defaults, then applies
// environment overrides. A .env file in the working directory is loaded first
// when present. A missing file at DefaultPath is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist) && path == DefaultPath:
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("BUFFET_DB_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("BUFFET_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("BUFFET_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("BUFFET_SEED_FILE"); v != "" {
		c.SeedFile = v
	}
	if v := os.Getenv("BUFFET_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BUFFET_PORT must be a number: %w", err)
		}
		c.Server.Port = port
	}
	return nil
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Database.Driver == "" {
		return errors.New("database driver must be set")
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn must be set")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d is out of range", c.Server.Port)
	}
	if c.MetricsConfig.Enabled {
		if c.MetricsConfig.Port <= 0 || c.MetricsConfig.Port > 65535 {
			return fmt.Errorf("metrics port %d is out of range", c.MetricsConfig.Port)
		}
		if c.MetricsConfig.Port == c.Server.Port {
			return errors.New("metrics port must differ from server port")
		}
		if c.MetricsConfig.Path == "" {
			return errors.New("metrics path must be set")
		}
	}
	return nil
}
