package renderer

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every configuration or scene rejected at construction
var ErrInvalidConfig = errors.New("invalid renderer configuration")

// ConfigError names the offending field
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func configErrorf(field, format string, args ...interface{}) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
