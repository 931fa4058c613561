package field

// Type is a field type.
type Type uint8

// Field types.
const (
	TypeInvalid Type = iota
	TypeBool
	TypeTime
	TypeJSON
	TypeMsgPack
	TypeUUID
	TypeBytes
	TypeString
	TypeInt64
	TypeUint64
	TypeFloat64
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeBool:    "bool",
	TypeTime:    "time.Time",
	TypeJSON:    "json",
	TypeMsgPack: "msgpack",
	TypeUUID:    "uuid.UUID",
	TypeBytes:   "[]byte",
	TypeString:  "string",
	TypeInt64:   "int64",
	TypeUint64:  "uint64",
	TypeFloat64: "float64",
}

// String returns the string representation of a type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type is known.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t == TypeInt64 || t == TypeUint64 || t == TypeFloat64
}

// TypeInfo holds the information of a field type.
type TypeInfo struct {
	Type Type
}

// String returns the type name.
func (i *TypeInfo) String() string {
	if i == nil {
		return typeNames[TypeInvalid]
	}
	return i.Type.String()
}
