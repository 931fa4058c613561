package value

import (
	"database/sql/driver"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Encode converts a typed field value into a driver parameter.
//
// UUIDs are sent in their canonical textual form, timestamps in UTC, and
// unsigned integers that do not fit a signed 64-bit integer as decimal text
// so no engine truncates them. Nil pointers encode to NULL.
func Encode(v any) (driver.Value, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case uuid.UUID:
		return v.String(), nil
	case *uuid.UUID:
		if v == nil {
			return nil, nil
		}
		return v.String(), nil
	case time.Time:
		return v.Round(0).UTC(), nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		return v.Round(0).UTC(), nil
	case uint64:
		return encodeUint(v), nil
	case *uint64:
		if v == nil {
			return nil, nil
		}
		return encodeUint(*v), nil
	case uint:
		return encodeUint(uint64(v)), nil
	case int:
		return int64(v), nil
	case []byte:
		if v == nil {
			return nil, nil
		}
		return append([]byte{}, v...), nil
	case driver.Valuer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return nil, nil
		}
		return v.Value()
	}
	dv, err := driver.DefaultParameterConverter.ConvertValue(v)
	if err != nil {
		return nil, fmt.Errorf("value: encode %T: %w", v, err)
	}
	if t, ok := dv.(time.Time); ok {
		return t.Round(0).UTC(), nil
	}
	return dv, nil
}

func encodeUint(v uint64) driver.Value {
	if v > math.MaxInt64 {
		return strconv.FormatUint(v, 10)
	}
	return int64(v)
}
