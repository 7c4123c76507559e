package config

import (
	"fmt"
	"net"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// HasErrors returns true if there are any validation errors.
func (e ValidationErrors) HasErrors() bool {
	return len(e) > 0
}

// Validator validates configuration values.
type Validator struct {
	errors ValidationErrors
}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{
		errors: make(ValidationErrors, 0),
	}
}

func (v *Validator) addError(field, message string) {
	v.errors = append(v.errors, ValidationError{Field: field, Message: message})
}

// Validate validates the entire configuration and returns any errors.
func (v *Validator) Validate(cfg *Config) error {
	v.errors = make(ValidationErrors, 0)

	v.validateServerConfig(&cfg.Server)
	v.validateGeneratorConfig(&cfg.Generator)
	v.validateLoggingConfig(&cfg.Logging)

	if v.errors.HasErrors() {
		return v.errors
	}
	return nil
}

func (v *Validator) validateServerConfig(cfg *ServerConfig) {
	if cfg.Address == "" {
		v.addError("server.address", "address is required")
	} else if !isValidAddress(cfg.Address) {
		v.addError("server.address", "invalid address format, expected host:port or :port")
	}

	if cfg.ReadTimeout < 0 {
		v.addError("server.read_timeout", "read timeout must be non-negative")
	}
	if cfg.WriteTimeout < 0 {
		v.addError("server.write_timeout", "write timeout must be non-negative")
	}
}

func (v *Validator) validateGeneratorConfig(cfg *GeneratorConfig) {
	if cfg.DefaultYear < 1 {
		v.addError("generator.default_year", "default year must be at least 1")
	}
	if cfg.DefaultWeeks < 1 {
		v.addError("generator.default_weeks", "default weeks must be at least 1")
	}
	if cfg.DefaultLotsPerWeek < 1 {
		v.addError("generator.default_lots_per_week", "default lots per week must be at least 1")
	}
	if cfg.DefaultWafersPerLot < 1 {
		v.addError("generator.default_wafers_per_lot", "default wafers per lot must be at least 1")
	}
}

func (v *Validator) validateLoggingConfig(cfg *LoggingConfig) {
	switch cfg.Level {
	case "", "debug", "info", "warn", "error":
	default:
		v.addError("logging.level", "level must be one of: debug, info, warn, error")
	}

	switch cfg.Format {
	case "", "json", "console":
	default:
		v.addError("logging.format", "format must be one of: json, console")
	}

	switch cfg.Output {
	case "", "stdout", "file", "both":
	default:
		v.addError("logging.output", "output must be one of: stdout, file, both")
	}
	if (cfg.Output == "file" || cfg.Output == "both") && cfg.FilePath == "" {
		v.addError("logging.file_path", "file path is required when logging to a file")
	}
}

// isValidAddress checks that an address is host:port or :port.
func isValidAddress(address string) bool {
	_, port, err := net.SplitHostPort(address)
	if err != nil {
		return false
	}
	return port != ""
}
