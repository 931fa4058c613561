// Package value converts between raw database cells and typed record fields.
//
// A raw value returned by a database/sql driver is first lifted into a Cell,
// an explicit tagged variant. Typed decoders (Int64, String, Time, UUID, ...)
// then convert a Cell into a Go value through a fixed conversion table:
//
//	c, err := value.FromDriver(raw)
//	id, err := value.Uint64(c)
//
// Encode performs the opposite direction and produces a driver parameter:
//
//	arg, err := value.Encode(uuid.New()) // canonical 36-character text
//
// For every supported type decode(FromDriver(Encode(v))) returns v.
package value

import (
	"fmt"
	"math"
	"time"
)

// Kind is the variant tag of a Cell.
type Kind uint8

// Cell kinds.
const (
	KindNull Kind = iota
	KindInt
	KindUint
	KindFloat
	KindText
	KindBool
	KindTime
	KindBytes
)

var kindNames = [...]string{
	KindNull:  "null",
	KindInt:   "integer",
	KindUint:  "unsigned integer",
	KindFloat: "float",
	KindText:  "text",
	KindBool:  "boolean",
	KindTime:  "timestamp",
	KindBytes: "bytes",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Cell is a single raw database value.
type Cell struct {
	kind Kind
	i    int64
	u    uint64
	f    float64
	s    string
	b    bool
	t    time.Time
	raw  []byte
}

// NullCell returns the NULL cell.
func NullCell() Cell { return Cell{} }

// IntCell returns an integer cell.
func IntCell(v int64) Cell { return Cell{kind: KindInt, i: v} }

// UintCell returns an unsigned integer cell.
func UintCell(v uint64) Cell { return Cell{kind: KindUint, u: v} }

// FloatCell returns a floating point cell.
func FloatCell(v float64) Cell { return Cell{kind: KindFloat, f: v} }

// TextCell returns a text cell.
func TextCell(v string) Cell { return Cell{kind: KindText, s: v} }

// BoolCell returns a boolean cell.
func BoolCell(v bool) Cell { return Cell{kind: KindBool, b: v} }

// TimeCell returns a timestamp cell normalized to UTC.
func TimeCell(v time.Time) Cell { return Cell{kind: KindTime, t: v.Round(0).UTC()} }

// BytesCell returns a byte cell. The slice is copied.
func BytesCell(v []byte) Cell {
	if v == nil {
		v = []byte{}
	}
	return Cell{kind: KindBytes, raw: append([]byte(nil), v...)}
}

// Kind returns the variant tag.
func (c Cell) Kind() Kind { return c.kind }

// IsNull reports whether the cell holds SQL NULL.
func (c Cell) IsNull() bool { return c.kind == KindNull }

// String implements fmt.Stringer for debugging.
func (c Cell) String() string {
	switch c.kind {
	case KindNull:
		return "NULL"
	case KindInt:
		return fmt.Sprintf("%d", c.i)
	case KindUint:
		return fmt.Sprintf("%d", c.u)
	case KindFloat:
		return fmt.Sprintf("%g", c.f)
	case KindText:
		return fmt.Sprintf("%q", c.s)
	case KindBool:
		return fmt.Sprintf("%t", c.b)
	case KindTime:
		return c.t.Format(time.RFC3339Nano)
	case KindBytes:
		return fmt.Sprintf("%x", c.raw)
	default:
		return c.kind.String()
	}
}

// FromDriver lifts a value produced by a database/sql driver into a Cell.
// Only the driver.Value types (and the integer widths some drivers return
// directly) are accepted.
func FromDriver(v any) (Cell, error) {
	switch v := v.(type) {
	case nil:
		return NullCell(), nil
	case int64:
		return IntCell(v), nil
	case int:
		return IntCell(int64(v)), nil
	case int32:
		return IntCell(int64(v)), nil
	case int16:
		return IntCell(int64(v)), nil
	case int8:
		return IntCell(int64(v)), nil
	case uint64:
		if v <= math.MaxInt64 {
			return IntCell(int64(v)), nil
		}
		return UintCell(v), nil
	case uint32:
		return IntCell(int64(v)), nil
	case uint16:
		return IntCell(int64(v)), nil
	case uint8:
		return IntCell(int64(v)), nil
	case float64:
		return FloatCell(v), nil
	case float32:
		return FloatCell(float64(v)), nil
	case bool:
		return BoolCell(v), nil
	case string:
		return TextCell(v), nil
	case []byte:
		return BytesCell(v), nil
	case time.Time:
		return TimeCell(v), nil
	default:
		return Cell{}, fmt.Errorf("value: unsupported driver value %T", v)
	}
}
