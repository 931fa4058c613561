package value

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedNull is returned when NULL is decoded into a non-nullable target.
	ErrUnexpectedNull = errors.New("value: unexpected null")

	// ErrTypeMismatch is returned when a cell kind has no conversion to the target type.
	ErrTypeMismatch = errors.New("value: type mismatch")

	// ErrMissingColumn is returned when a row does not carry the requested column.
	ErrMissingColumn = errors.New("value: missing column")
)

// DecodeError describes a cell that could not be converted to its declared type.
type DecodeError struct {
	Column string // Column name, empty when decoded outside a Row
	Target string // Target Go type
	Kind   Kind   // Kind of the offending cell
	Err    error  // ErrUnexpectedNull, ErrTypeMismatch or a parse error
}

// Error returns the error string.
func (e *DecodeError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("value: decode column %q (%s) into %s: %v", e.Column, e.Kind, e.Target, e.Err)
	}
	return fmt.Sprintf("value: decode %s into %s: %v", e.Kind, e.Target, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError returns true if the error is a DecodeError.
func IsDecodeError(err error) bool {
	if err == nil {
		return false
	}
	var e *DecodeError
	return errors.As(err, &e)
}

func mismatch(c Cell, target string) error {
	return &DecodeError{Target: target, Kind: c.kind, Err: ErrTypeMismatch}
}

func unexpectedNull(target string) error {
	return &DecodeError{Target: target, Kind: KindNull, Err: ErrUnexpectedNull}
}

func parseFailed(c Cell, target string, err error) error {
	return &DecodeError{Target: target, Kind: c.kind, Err: fmt.Errorf("%w: %w", ErrTypeMismatch, err)}
}
