package config

import (
	"fmt"
	"strings"
	"time"

	"termlink/pkg/logging"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// ValidateOneOf checks if a value is in a list of allowed values
func ValidateOneOf(field, value string, allowed []string) error {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// Validate checks the whole configuration. backends lists the storage
// backends the binary supports. The tool path is only required to serve, so
// it is checked separately by ValidateTool.
func (c Config) Validate(backends []string) error {
	var errs ValidationErrors

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs.Add("server.port", "must be between 1 and 65535", c.Server.Port)
	}
	durations := []struct {
		field string
		value time.Duration
	}{
		{"server.readTimeout", c.Server.ReadTimeout},
		{"server.writeTimeout", c.Server.WriteTimeout},
		{"server.shutdownTimeout", c.Server.ShutdownTimeout},
		{"tool.timeout", c.Tool.Timeout},
	}
	for _, d := range durations {
		if d.value < 0 {
			errs.Add(d.field, "cannot be negative", d.value)
		}
	}
	if err := ValidateOneOf("storage.backend", c.Storage.Backend, backends); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if c.Recent.Boost < 1 {
		errs.Add("recent.boost", "must be at least 1", c.Recent.Boost)
	}
	if c.Recent.Decay < 0 {
		errs.Add("recent.decay", "cannot be negative", c.Recent.Decay)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs.Add("logging.level", err.Error(), c.Logging.Level)
	}
	if err := ValidateOneOf("logging.format", c.Logging.Format, []string{"text", "json"}); err != nil {
		errs = append(errs, err.(ValidationError))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// ValidateTool checks the settings needed to run the wrapped program.
func (c Config) ValidateTool() error {
	if strings.TrimSpace(c.Tool.Path) == "" {
		return ValidationError{
			Field:   "tool.path",
			Message: "is required (set it in config.yaml or pass --tool)",
		}
	}
	for _, kv := range c.Tool.Env {
		if !strings.Contains(kv, "=") {
			return ValidationError{Field: "tool.env", Value: kv, Message: "entries must be KEY=VALUE"}
		}
	}
	return nil
}
