// Package mixin provides reusable field sets for record definitions.
//
// Common mixins:
//
//	func (User) Mixin() []schema.Mixin {
//	    return []schema.Mixin{
//	        mixin.ID{},   // id BIGINT UNSIGNED auto-increment primary key
//	        mixin.Time{}, // created_at, updated_at
//	    }
//	}
//
// Custom mixins embed Schema and override Fields:
//
//	type Audit struct{ mixin.Schema }
//
//	func (Audit) Fields() []field.Field {
//	    return []field.Field{
//	        field.String("created_by").Immutable(),
//	        field.String("updated_by").Optional(),
//	    }
//	}
package mixin

import (
	"github.com/syssam/relm/schema"
	"github.com/syssam/relm/schema/field"
)

// Schema is the default implementation of schema.Mixin.
type Schema struct{}

// Fields returns the fields of the mixin.
func (Schema) Fields() []field.Field { return nil }

var _ schema.Mixin = (*Schema)(nil)

// ID adds an auto-increment uint64 primary key named id.
type ID struct{ Schema }

// Fields of the ID mixin.
func (ID) Fields() []field.Field {
	return []field.Field{
		field.Uint64("id").Primary(),
	}
}

// UUID adds a UUID primary key named id, generated on insert.
// The zero value generates version 4 keys.
type UUID struct {
	Schema
	// Version of the generated keys, 4 or 7.
	Version int
}

// Fields of the UUID mixin.
func (m UUID) Fields() []field.Field {
	f := field.UUID("id").Primary()
	if m.Version != 0 {
		f.Version(m.Version)
	}
	return []field.Field{f}
}

// CreateTime adds the created_at creation timestamp.
type CreateTime struct{ Schema }

// Fields of the create time mixin.
func (CreateTime) Fields() []field.Field {
	return []field.Field{
		field.Time(schema.CreatedAt).CreateTime(),
	}
}

// UpdateTime adds the updated_at update timestamp.
type UpdateTime struct{ Schema }

// Fields of the update time mixin.
func (UpdateTime) Fields() []field.Field {
	return []field.Field{
		field.Time(schema.UpdatedAt).UpdateTime(),
	}
}

// Time composes CreateTime and UpdateTime.
type Time struct{ Schema }

// Fields of the time mixin.
func (Time) Fields() []field.Field {
	return append(CreateTime{}.Fields(), UpdateTime{}.Fields()...)
}

var (
	_ schema.Mixin = (*ID)(nil)
	_ schema.Mixin = (*UUID)(nil)
	_ schema.Mixin = (*Time)(nil)
)
