// Package field provides fluent builders for declaring record fields.
//
// Field names are column names (snake_case). A record type is described by
// its list of fields; the schema package turns that list into an immutable
// descriptor at registration time.
//
// # Field Types
//
//	field.Int64("count")
//	field.Uint64("id")        // auto-increment when primary
//	field.Float64("price")
//	field.String("name")
//	field.Bool("active")
//	field.Time("published_at")
//	field.UUID("id")          // generated locally when primary
//	field.Bytes("avatar")
//	field.JSON("settings")    // value.JSON[T] in the record
//	field.MsgPack("payload")  // value.MsgPack[T] in the record
//
// # Primary Keys
//
// Exactly one field must be marked Primary:
//
//	field.Uint64("id").Primary()                // store-assigned, read back on insert
//	field.Uint64("id").Primary().NoIncrement()  // caller-assigned
//	field.UUID("id").Primary()                  // UUID v4 generated before insert
//	field.UUID("id").Primary().Version(7)       // UUID v7
//	field.String("code").Primary()              // caller-assigned
//
// # Field Options
//
//	field.String("email").
//	    Optional().            // Zero value accepted on create
//	    Nillable().            // Nullable in DB, pointer in Go
//	    Immutable().           // Never written by an update
//	    Default("unknown")     // Applied on insert when the field is zero
//
// Function defaults are called on every insert:
//
//	field.String("token").DefaultFunc(func() any { return newToken() })
//
// # Timestamps
//
// CreateTime and UpdateTime mark the lifecycle columns maintained by the
// model runtime. Both must be declared for either to take effect:
//
//	field.Time("created_at").CreateTime()
//	field.Time("updated_at").UpdateTime()
package field
