package value

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// JSON holds a structured value stored as a JSON document.
//
//	type Settings struct{ Theme string }
//	Prefs value.JSON[Settings]
type JSON[T any] struct {
	V T
}

// Value implements driver.Valuer. The document is sent as text so that
// JSON, JSONB and TEXT columns all accept it.
func (j JSON[T]) Value() (driver.Value, error) {
	b, err := json.Marshal(j.V)
	if err != nil {
		return nil, fmt.Errorf("value: marshal json: %w", err)
	}
	return string(b), nil
}

// DecodeJSON decodes a text or byte cell holding a JSON document.
func DecodeJSON[T any](c Cell) (JSON[T], error) {
	var j JSON[T]
	switch c.kind {
	case KindNull:
		return j, unexpectedNull(fmt.Sprintf("value.JSON[%T]", j.V))
	case KindText, KindBytes:
		if err := json.Unmarshal([]byte(c.text()), &j.V); err != nil {
			return j, parseFailed(c, fmt.Sprintf("value.JSON[%T]", j.V), err)
		}
		return j, nil
	default:
		return j, mismatch(c, fmt.Sprintf("value.JSON[%T]", j.V))
	}
}

// MsgPack holds a structured value stored as a MessagePack blob.
type MsgPack[T any] struct {
	V T
}

// Value implements driver.Valuer.
func (m MsgPack[T]) Value() (driver.Value, error) {
	b, err := msgpack.Marshal(m.V)
	if err != nil {
		return nil, fmt.Errorf("value: marshal msgpack: %w", err)
	}
	return b, nil
}

// DecodeMsgPack decodes a byte cell holding a MessagePack blob.
func DecodeMsgPack[T any](c Cell) (MsgPack[T], error) {
	var m MsgPack[T]
	switch c.kind {
	case KindNull:
		return m, unexpectedNull(fmt.Sprintf("value.MsgPack[%T]", m.V))
	case KindBytes, KindText:
		if err := msgpack.Unmarshal([]byte(c.text()), &m.V); err != nil {
			return m, parseFailed(c, fmt.Sprintf("value.MsgPack[%T]", m.V), err)
		}
		return m, nil
	default:
		return m, mismatch(c, fmt.Sprintf("value.MsgPack[%T]", m.V))
	}
}
