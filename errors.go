package relm

import (
	"errors"
	"fmt"

	"github.com/syssam/relm/dialect/sql"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("relm: record not found")

	// ErrUnconstrained is returned by Query.Update and Query.Delete when the
	// query has no constraints. Use UpdateAll or DeleteAll to affect every row.
	ErrUnconstrained = errors.New("relm: unconstrained mutation, use UpdateAll or DeleteAll")

	// ErrRequired is wrapped by a ValidationError when a required column
	// holds its zero value on insert.
	ErrRequired = errors.New("value required")
)

// NotFoundError represents an error when a record is not found.
type NotFoundError struct {
	table string
	key   any // Optional: the primary key that was searched for
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.key != nil {
		return fmt.Sprintf("relm: %s not found (key=%v)", e.table, e.key)
	}
	return fmt.Sprintf("relm: %s not found", e.table)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Table returns the table that was queried.
func (e *NotFoundError) Table() string {
	return e.table
}

// Key returns the primary key that was searched for, if available.
func (e *NotFoundError) Key() any {
	return e.key
}

// NewNotFoundError returns a new NotFoundError for the given table.
func NewNotFoundError(table string) *NotFoundError {
	return &NotFoundError{table: table}
}

// NewNotFoundErrorWithKey returns a new NotFoundError with the key that was searched for.
func NewNotFoundErrorWithKey(table string, key any) *NotFoundError {
	return &NotFoundError{table: table, key: key}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// ConstraintError represents a write rejected by a database constraint.
// The store error is kept unchanged and reachable through Unwrap.
type ConstraintError struct {
	Kind sql.ConstraintKind
	msg  string
	wrap error
}

// Error returns the error string.
func (e ConstraintError) Error() string {
	return fmt.Sprintf("relm: %s constraint failed: %s", e.Kind, e.msg)
}

// Unwrap returns the underlying error.
func (e ConstraintError) Unwrap() error {
	return e.wrap
}

// NewConstraintError returns a new ConstraintError with the given message.
func NewConstraintError(msg string, wrap error) error {
	return ConstraintError{Kind: sql.Constraint(wrap), msg: msg, wrap: wrap}
}

// IsConstraintError returns true if the error is a ConstraintError.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var e ConstraintError
	return errors.As(err, &e)
}

// ValidationError represents a column value rejected before any statement
// is sent.
type ValidationError struct {
	Name string // Column name
	Err  error  // Underlying validation error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("relm: validator failed for column %q: %s", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError returns a new ValidationError for the given column.
func NewValidationError(name string, err error) *ValidationError {
	return &ValidationError{Name: name, Err: err}
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e)
}

// PartialPersistError is returned when an INSERT succeeded but the
// store-assigned primary key could not be read back. The row exists.
type PartialPersistError struct {
	Table string
	Err   error
}

// Error returns the error string.
func (e *PartialPersistError) Error() string {
	return fmt.Sprintf("relm: %s row inserted but its key could not be read back: %v", e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *PartialPersistError) Unwrap() error {
	return e.Err
}

// IsPartialPersist returns true if the error is a PartialPersistError.
func IsPartialPersist(err error) bool {
	if err == nil {
		return false
	}
	var e *PartialPersistError
	return errors.As(err, &e)
}

// QueryError wraps a query error with additional context.
type QueryError struct {
	Table string // Table being queried
	Op    string // Operation (e.g., "select", "count", "exist")
	Err   error  // Underlying error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("relm: querying %s (%s): %v", e.Table, e.Op, e.Err)
	}
	return fmt.Sprintf("relm: querying %s: %v", e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError returns a new QueryError.
func NewQueryError(table, op string, err error) *QueryError {
	return &QueryError{Table: table, Op: op, Err: err}
}

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}

// MutationError wraps a mutation error with additional context.
type MutationError struct {
	Table string // Table being mutated
	Op    string // Operation (e.g., "insert", "update", "delete")
	Err   error  // Underlying error
}

// Error returns the error string.
func (e *MutationError) Error() string {
	return fmt.Sprintf("relm: %s %s: %v", e.Op, e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *MutationError) Unwrap() error {
	return e.Err
}

// NewMutationError returns a new MutationError.
func NewMutationError(table, op string, err error) *MutationError {
	return &MutationError{Table: table, Op: op, Err: err}
}

// IsMutationError returns true if the error is a MutationError.
func IsMutationError(err error) bool {
	if err == nil {
		return false
	}
	var e *MutationError
	return errors.As(err, &e)
}

// mutationError classifies a store error raised by a write.
func mutationError(table, op string, err error) error {
	if sql.IsConstraintError(err) {
		return NewConstraintError(fmt.Sprintf("%s %s", op, table), err)
	}
	return NewMutationError(table, op, err)
}
