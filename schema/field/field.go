package field

import (
	"errors"
	"fmt"
)

// Field is the interface implemented by field builders.
type Field interface {
	Descriptor() *Descriptor
}

// Descriptor holds the declaration of a single field.
type Descriptor struct {
	Name        string    // column name
	Info        *TypeInfo // field type info
	Primary     bool      // primary key
	NoIncrement bool      // opt out of auto-increment for uint64 keys
	UUIDVersion int       // declared UUID version, 0 when unset
	Optional    bool      // zero value accepted on create
	Nillable    bool      // nullable column
	Immutable   bool      // excluded from updates
	Default     any       // literal default or func() T
	CreateTime  bool      // creation timestamp column
	UpdateTime  bool      // update timestamp column
	Err         error     // declaration error
}

// Builder is the fluent builder shared by all field types.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name string, t Type) *Builder {
	b := &Builder{desc: &Descriptor{Name: name, Info: &TypeInfo{Type: t}}}
	if name == "" {
		b.desc.Err = errors.New("field: missing field name")
	}
	return b
}

// Int64 returns a new int64 field.
func Int64(name string) *Builder { return newBuilder(name, TypeInt64) }

// Uint64 returns a new uint64 field. A uint64 primary key auto-increments
// unless NoIncrement is set.
func Uint64(name string) *Builder { return newBuilder(name, TypeUint64) }

// Float64 returns a new float64 field.
func Float64(name string) *Builder { return newBuilder(name, TypeFloat64) }

// String returns a new string field.
func String(name string) *Builder { return newBuilder(name, TypeString) }

// Text returns a new string field meant for unbounded text.
func Text(name string) *Builder { return newBuilder(name, TypeString) }

// Bool returns a new bool field.
func Bool(name string) *Builder { return newBuilder(name, TypeBool) }

// Time returns a new time.Time field.
func Time(name string) *Builder { return newBuilder(name, TypeTime) }

// UUID returns a new uuid.UUID field.
func UUID(name string) *Builder { return newBuilder(name, TypeUUID) }

// Bytes returns a new []byte field.
func Bytes(name string) *Builder { return newBuilder(name, TypeBytes) }

// JSON returns a new field holding a JSON document.
func JSON(name string) *Builder { return newBuilder(name, TypeJSON) }

// MsgPack returns a new field holding a MessagePack blob.
func MsgPack(name string) *Builder { return newBuilder(name, TypeMsgPack) }

// Primary marks the field as the primary key.
func (b *Builder) Primary() *Builder {
	b.desc.Primary = true
	return b
}

// NoIncrement disables auto-increment for a uint64 primary key.
func (b *Builder) NoIncrement() *Builder {
	b.desc.NoIncrement = true
	return b
}

// Version sets the version of generated UUIDs. Versions 4 and 7 are supported.
func (b *Builder) Version(v int) *Builder {
	switch {
	case b.desc.Info.Type != TypeUUID:
		b.err(fmt.Errorf("field %q: UUID version set on %s field", b.desc.Name, b.desc.Info))
	case v != 4 && v != 7:
		b.err(fmt.Errorf("field %q: unsupported UUID version %d", b.desc.Name, v))
	default:
		b.desc.UUIDVersion = v
	}
	return b
}

// Optional accepts the zero value on create.
func (b *Builder) Optional() *Builder {
	b.desc.Optional = true
	return b
}

// Nillable marks the column as nullable. The record holds a pointer.
func (b *Builder) Nillable() *Builder {
	b.desc.Nillable = true
	return b
}

// Immutable excludes the field from updates.
func (b *Builder) Immutable() *Builder {
	b.desc.Immutable = true
	return b
}

// Default sets the value applied on insert when the field holds its zero
// value. A function with no arguments and one result is called per insert.
func (b *Builder) Default(v any) *Builder {
	b.desc.Default = v
	return b
}

// DefaultFunc sets a function called on insert when the field holds its
// zero value.
func (b *Builder) DefaultFunc(fn func() any) *Builder {
	b.desc.Default = fn
	return b
}

// CreateTime marks the field as the creation timestamp.
func (b *Builder) CreateTime() *Builder {
	if b.desc.Info.Type != TypeTime {
		b.err(fmt.Errorf("field %q: creation timestamp must be a time field", b.desc.Name))
	}
	b.desc.CreateTime = true
	b.desc.Immutable = true
	return b
}

// UpdateTime marks the field as the update timestamp.
func (b *Builder) UpdateTime() *Builder {
	if b.desc.Info.Type != TypeTime {
		b.err(fmt.Errorf("field %q: update timestamp must be a time field", b.desc.Name))
	}
	b.desc.UpdateTime = true
	return b
}

// Descriptor implements the Field interface.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

func (b *Builder) err(err error) {
	b.desc.Err = errors.Join(b.desc.Err, err)
}
