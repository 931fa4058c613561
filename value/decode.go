package value

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Decoder converts a cell into a typed value.
type Decoder[T any] func(Cell) (T, error)

// Int64 decodes integer cells, and text cells holding a base-10 integer.
func Int64(c Cell) (int64, error) {
	switch c.kind {
	case KindNull:
		return 0, unexpectedNull("int64")
	case KindInt:
		return c.i, nil
	case KindUint:
		if c.u > math.MaxInt64 {
			return 0, parseFailed(c, "int64", strconv.ErrRange)
		}
		return int64(c.u), nil
	case KindText, KindBytes:
		v, err := strconv.ParseInt(strings.TrimSpace(c.text()), 10, 64)
		if err != nil {
			return 0, parseFailed(c, "int64", err)
		}
		return v, nil
	default:
		return 0, mismatch(c, "int64")
	}
}

// Uint64 decodes non-negative integer cells without truncation.
func Uint64(c Cell) (uint64, error) {
	switch c.kind {
	case KindNull:
		return 0, unexpectedNull("uint64")
	case KindInt:
		if c.i < 0 {
			return 0, parseFailed(c, "uint64", strconv.ErrRange)
		}
		return uint64(c.i), nil
	case KindUint:
		return c.u, nil
	case KindText, KindBytes:
		v, err := strconv.ParseUint(strings.TrimSpace(c.text()), 10, 64)
		if err != nil {
			return 0, parseFailed(c, "uint64", err)
		}
		return v, nil
	default:
		return 0, mismatch(c, "uint64")
	}
}

// Float64 decodes float and integer cells.
func Float64(c Cell) (float64, error) {
	switch c.kind {
	case KindNull:
		return 0, unexpectedNull("float64")
	case KindFloat:
		return c.f, nil
	case KindInt:
		return float64(c.i), nil
	case KindUint:
		return float64(c.u), nil
	case KindText, KindBytes:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.text()), 64)
		if err != nil {
			return 0, parseFailed(c, "float64", err)
		}
		return v, nil
	default:
		return 0, mismatch(c, "float64")
	}
}

// String decodes text and byte cells.
func String(c Cell) (string, error) {
	switch c.kind {
	case KindNull:
		return "", unexpectedNull("string")
	case KindText, KindBytes:
		return c.text(), nil
	default:
		return "", mismatch(c, "string")
	}
}

// Bool decodes boolean cells, the integers 0 and 1, and boolean text.
func Bool(c Cell) (bool, error) {
	switch c.kind {
	case KindNull:
		return false, unexpectedNull("bool")
	case KindBool:
		return c.b, nil
	case KindInt:
		switch c.i {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
		return false, mismatch(c, "bool")
	case KindText, KindBytes:
		v, err := strconv.ParseBool(strings.TrimSpace(c.text()))
		if err != nil {
			return false, parseFailed(c, "bool", err)
		}
		return v, nil
	default:
		return false, mismatch(c, "bool")
	}
}

// timeLayouts are the textual timestamp formats produced by the supported
// engines, most specific first.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Time decodes timestamp cells and textual timestamps. The result is always UTC.
func Time(c Cell) (time.Time, error) {
	switch c.kind {
	case KindNull:
		return time.Time{}, unexpectedNull("time.Time")
	case KindTime:
		return c.t, nil
	case KindText, KindBytes:
		s := strings.TrimSpace(c.text())
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, parseFailed(c, "time.Time", errors.New("unrecognized timestamp format"))
	default:
		return time.Time{}, mismatch(c, "time.Time")
	}
}

// UUID decodes the canonical textual form, or 16 raw bytes.
func UUID(c Cell) (uuid.UUID, error) {
	switch c.kind {
	case KindNull:
		return uuid.Nil, unexpectedNull("uuid.UUID")
	case KindText:
		u, err := uuid.Parse(c.s)
		if err != nil {
			return uuid.Nil, parseFailed(c, "uuid.UUID", err)
		}
		return u, nil
	case KindBytes:
		if len(c.raw) == 16 {
			return uuid.FromBytes(c.raw)
		}
		u, err := uuid.ParseBytes(c.raw)
		if err != nil {
			return uuid.Nil, parseFailed(c, "uuid.UUID", err)
		}
		return u, nil
	default:
		return uuid.Nil, mismatch(c, "uuid.UUID")
	}
}

// Bytes decodes byte and text cells. The returned slice is owned by the caller.
func Bytes(c Cell) ([]byte, error) {
	switch c.kind {
	case KindNull:
		return nil, unexpectedNull("[]byte")
	case KindBytes:
		return append([]byte{}, c.raw...), nil
	case KindText:
		return []byte(c.s), nil
	default:
		return nil, mismatch(c, "[]byte")
	}
}

// Nullable lifts a decoder into its absent-capable variant: NULL decodes
// to nil, any other cell to a pointer to the decoded value.
func Nullable[T any](dec Decoder[T]) Decoder[*T] {
	return func(c Cell) (*T, error) {
		if c.IsNull() {
			return nil, nil
		}
		v, err := dec(c)
		if err != nil {
			return nil, err
		}
		return &v, nil
	}
}

func (c Cell) text() string {
	if c.kind == KindBytes {
		return string(c.raw)
	}
	return c.s
}
