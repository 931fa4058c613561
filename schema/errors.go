package schema

import (
	"errors"
	"fmt"
)

// ConfigurationError is returned when a definition violates a descriptor
// invariant, such as declaring zero or several primary keys.
type ConfigurationError struct {
	Table   string
	Column  string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Column != "" {
		return fmt.Sprintf("schema: table %q: column %q: %s", e.Table, e.Column, msg)
	}
	return fmt.Sprintf("schema: table %q: %s", e.Table, msg)
}

// Unwrap returns the underlying field declaration error, if any.
func (e *ConfigurationError) Unwrap() error { return e.Err }

// IsConfigurationError returns a boolean indicating whether the error is a
// descriptor configuration error.
func IsConfigurationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigurationError
	return errors.As(err, &e)
}
