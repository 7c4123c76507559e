// Package config loads and validates service configuration from YAML
// files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// envPrefix is prepended to every environment override.
const envPrefix = "YV_"

// Config represents the complete configuration for the service.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Generator GeneratorConfig `yaml:"generator"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	EnableCORS   bool          `yaml:"enable_cors"`
}

// GeneratorConfig holds default generation parameters, applied when a
// request omits the corresponding query parameter.
type GeneratorConfig struct {
	DefaultYear         int `yaml:"default_year"`
	DefaultWeeks        int `yaml:"default_weeks"`
	DefaultLotsPerWeek  int `yaml:"default_lots_per_week"`
	DefaultWafersPerLot int `yaml:"default_wafers_per_lot"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			EnableCORS:   true,
		},
		Generator: GeneratorConfig{
			DefaultYear:         2025,
			DefaultWeeks:        52,
			DefaultLotsPerWeek:  10,
			DefaultWafersPerLot: 25,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stdout",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and environment overrides, then validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides config fields from YV_-prefixed environment
// variables. Unparseable values are ignored in favor of the file value.
func (c *Config) applyEnv() {
	if v := os.Getenv(envPrefix + "SERVER_ADDRESS"); v != "" {
		c.Server.Address = v
	}
	if v := os.Getenv(envPrefix + "SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv(envPrefix + "SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Server.WriteTimeout = d
		}
	}
	if v := os.Getenv(envPrefix + "SERVER_ENABLE_CORS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Server.EnableCORS = b
		}
	}
	if v := os.Getenv(envPrefix + "GENERATOR_DEFAULT_YEAR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Generator.DefaultYear = n
		}
	}
	if v := os.Getenv(envPrefix + "GENERATOR_DEFAULT_WEEKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Generator.DefaultWeeks = n
		}
	}
	if v := os.Getenv(envPrefix + "GENERATOR_DEFAULT_LOTS_PER_WEEK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Generator.DefaultLotsPerWeek = n
		}
	}
	if v := os.Getenv(envPrefix + "GENERATOR_DEFAULT_WAFERS_PER_LOT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Generator.DefaultWafersPerLot = n
		}
	}
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(envPrefix + "LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(envPrefix + "LOG_OUTPUT"); v != "" {
		c.Logging.Output = v
	}
	if v := os.Getenv(envPrefix + "LOG_FILE_PATH"); v != "" {
		c.Logging.FilePath = v
	}
}
