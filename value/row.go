package value

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Row is a decoded result row keyed by column name.
type Row map[string]Cell

// Get returns the cell for a column and whether the column was present.
func (r Row) Get(column string) (Cell, bool) {
	c, ok := r[column]
	return c, ok
}

// Column decodes a single column of the row with dec. Decode failures are
// returned as *DecodeError carrying the column name.
//
//	prefs, err := value.Column(row, "prefs", value.DecodeJSON[Prefs])
func Column[T any](r Row, column string, dec Decoder[T]) (T, error) {
	c, ok := r[column]
	if !ok {
		var zero T
		return zero, &DecodeError{Column: column, Target: "column", Err: ErrMissingColumn}
	}
	v, err := dec(c)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Column = column
			return v, de
		}
		return v, &DecodeError{Column: column, Kind: c.kind, Target: "column", Err: err}
	}
	return v, nil
}

// Int64 decodes the named column as int64.
func (r Row) Int64(column string) (int64, error) { return Column(r, column, Int64) }

// Uint64 decodes the named column as uint64.
func (r Row) Uint64(column string) (uint64, error) { return Column(r, column, Uint64) }

// Float64 decodes the named column as float64.
func (r Row) Float64(column string) (float64, error) { return Column(r, column, Float64) }

// String decodes the named column as string.
func (r Row) String(column string) (string, error) { return Column(r, column, String) }

// Bool decodes the named column as bool.
func (r Row) Bool(column string) (bool, error) { return Column(r, column, Bool) }

// Time decodes the named column as a UTC time.
func (r Row) Time(column string) (time.Time, error) { return Column(r, column, Time) }

// UUID decodes the named column as a UUID.
func (r Row) UUID(column string) (uuid.UUID, error) { return Column(r, column, UUID) }

// Bytes decodes the named column as raw bytes.
func (r Row) Bytes(column string) ([]byte, error) { return Column(r, column, Bytes) }

// NullInt64 decodes a nullable int64 column.
func (r Row) NullInt64(column string) (*int64, error) {
	return Column(r, column, Nullable(Int64))
}

// NullUint64 decodes a nullable uint64 column.
func (r Row) NullUint64(column string) (*uint64, error) {
	return Column(r, column, Nullable(Uint64))
}

// NullFloat64 decodes a nullable float64 column.
func (r Row) NullFloat64(column string) (*float64, error) {
	return Column(r, column, Nullable(Float64))
}

// NullString decodes a nullable string column.
func (r Row) NullString(column string) (*string, error) {
	return Column(r, column, Nullable(String))
}

// NullBool decodes a nullable bool column.
func (r Row) NullBool(column string) (*bool, error) {
	return Column(r, column, Nullable(Bool))
}

// NullTime decodes a nullable timestamp column.
func (r Row) NullTime(column string) (*time.Time, error) {
	return Column(r, column, Nullable(Time))
}

// NullUUID decodes a nullable UUID column.
func (r Row) NullUUID(column string) (*uuid.UUID, error) {
	return Column(r, column, Nullable(UUID))
}
