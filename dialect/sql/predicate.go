package sql

import (
	"time"

	"github.com/google/uuid"
)

// StringField provides typed predicate methods for a string column.
//
// Usage:
//
//	var Email = sql.StringField("email")
//	users.Query().WhereP(Email.HasSuffix("@example.com"))
type StringField string

// Name returns the column name.
func (f StringField) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f StringField) EQ(v string) *Predicate { return EQ(string(f), v) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f StringField) NEQ(v string) *Predicate { return NEQ(string(f), v) }

// In returns a predicate that checks if the field value is in the given list.
func (f StringField) In(vs ...string) *Predicate { return In(string(f), anys(vs)...) }

// NotIn returns a predicate that checks if the field value is not in the given list.
func (f StringField) NotIn(vs ...string) *Predicate { return NotIn(string(f), anys(vs)...) }

// GT returns a predicate that checks if the field is greater than the given value.
func (f StringField) GT(v string) *Predicate { return GT(string(f), v) }

// LT returns a predicate that checks if the field is less than the given value.
func (f StringField) LT(v string) *Predicate { return LT(string(f), v) }

// Like returns a predicate matching the raw LIKE pattern.
func (f StringField) Like(pattern string) *Predicate { return Like(string(f), pattern) }

// Contains returns a predicate that checks if the field contains the given substring.
func (f StringField) Contains(v string) *Predicate { return Contains(string(f), v) }

// HasPrefix returns a predicate that checks if the field has the given prefix.
func (f StringField) HasPrefix(v string) *Predicate { return HasPrefix(string(f), v) }

// HasSuffix returns a predicate that checks if the field has the given suffix.
func (f StringField) HasSuffix(v string) *Predicate { return HasSuffix(string(f), v) }

// IsNull returns a predicate that checks if the field is NULL.
func (f StringField) IsNull() *Predicate { return IsNull(string(f)) }

// NotNull returns a predicate that checks if the field is not NULL.
func (f StringField) NotNull() *Predicate { return NotNull(string(f)) }

// Number is the constraint of numeric column types.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// NumberField provides typed predicate methods for a numeric column.
//
//	var Age = sql.NumberField[int64]("age")
//	users.Query().WhereP(Age.GTE(18))
type NumberField[T Number] string

// Name returns the column name.
func (f NumberField[T]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f NumberField[T]) EQ(v T) *Predicate { return EQ(string(f), v) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f NumberField[T]) NEQ(v T) *Predicate { return NEQ(string(f), v) }

// In returns a predicate that checks if the field value is in the given list.
func (f NumberField[T]) In(vs ...T) *Predicate { return In(string(f), anys(vs)...) }

// NotIn returns a predicate that checks if the field value is not in the given list.
func (f NumberField[T]) NotIn(vs ...T) *Predicate { return NotIn(string(f), anys(vs)...) }

// GT returns a predicate that checks if the field is greater than the given value.
func (f NumberField[T]) GT(v T) *Predicate { return GT(string(f), v) }

// GTE returns a predicate that checks if the field is greater than or equal to the given value.
func (f NumberField[T]) GTE(v T) *Predicate { return GTE(string(f), v) }

// LT returns a predicate that checks if the field is less than the given value.
func (f NumberField[T]) LT(v T) *Predicate { return LT(string(f), v) }

// LTE returns a predicate that checks if the field is less than or equal to the given value.
func (f NumberField[T]) LTE(v T) *Predicate { return LTE(string(f), v) }

// Between returns a predicate matching lo <= field <= hi.
func (f NumberField[T]) Between(lo, hi T) *Predicate {
	return And(GTE(string(f), lo), LTE(string(f), hi))
}

// IsNull returns a predicate that checks if the field is NULL.
func (f NumberField[T]) IsNull() *Predicate { return IsNull(string(f)) }

// NotNull returns a predicate that checks if the field is not NULL.
func (f NumberField[T]) NotNull() *Predicate { return NotNull(string(f)) }

// BoolField provides typed predicate methods for a boolean column.
type BoolField string

// Name returns the column name.
func (f BoolField) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f BoolField) EQ(v bool) *Predicate { return EQ(string(f), v) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f BoolField) NEQ(v bool) *Predicate { return NEQ(string(f), v) }

// IsNull returns a predicate that checks if the field is NULL.
func (f BoolField) IsNull() *Predicate { return IsNull(string(f)) }

// NotNull returns a predicate that checks if the field is not NULL.
func (f BoolField) NotNull() *Predicate { return NotNull(string(f)) }

// TimeField provides typed predicate methods for a timestamp column.
type TimeField string

// Name returns the column name.
func (f TimeField) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f TimeField) EQ(v time.Time) *Predicate { return EQ(string(f), v) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f TimeField) NEQ(v time.Time) *Predicate { return NEQ(string(f), v) }

// Before returns a predicate matching timestamps strictly before v.
func (f TimeField) Before(v time.Time) *Predicate { return LT(string(f), v) }

// After returns a predicate matching timestamps strictly after v.
func (f TimeField) After(v time.Time) *Predicate { return GT(string(f), v) }

// GTE returns a predicate that checks if the field is greater than or equal to the given value.
func (f TimeField) GTE(v time.Time) *Predicate { return GTE(string(f), v) }

// LTE returns a predicate that checks if the field is less than or equal to the given value.
func (f TimeField) LTE(v time.Time) *Predicate { return LTE(string(f), v) }

// IsNull returns a predicate that checks if the field is NULL.
func (f TimeField) IsNull() *Predicate { return IsNull(string(f)) }

// NotNull returns a predicate that checks if the field is not NULL.
func (f TimeField) NotNull() *Predicate { return NotNull(string(f)) }

// UUIDField provides typed predicate methods for a UUID column.
type UUIDField string

// Name returns the column name.
func (f UUIDField) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f UUIDField) EQ(v uuid.UUID) *Predicate { return EQ(string(f), v) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f UUIDField) NEQ(v uuid.UUID) *Predicate { return NEQ(string(f), v) }

// In returns a predicate that checks if the field value is in the given list.
func (f UUIDField) In(vs ...uuid.UUID) *Predicate { return In(string(f), anys(vs)...) }

// NotIn returns a predicate that checks if the field value is not in the given list.
func (f UUIDField) NotIn(vs ...uuid.UUID) *Predicate { return NotIn(string(f), anys(vs)...) }

// IsNull returns a predicate that checks if the field is NULL.
func (f UUIDField) IsNull() *Predicate { return IsNull(string(f)) }

// NotNull returns a predicate that checks if the field is not NULL.
func (f UUIDField) NotNull() *Predicate { return NotNull(string(f)) }

func anys[T any](vs []T) []any {
	out := make([]any, len(vs))
	for i := range vs {
		out[i] = vs[i]
	}
	return out
}
