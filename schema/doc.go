// Package schema builds the immutable descriptor of a record type.
//
// A record type is declared once, by embedding Schema in a definition struct
// and listing its fields and mixins:
//
//	type User struct{ schema.Schema }
//
//	func (User) Mixin() []schema.Mixin {
//	    return []schema.Mixin{
//	        mixin.ID{},   // uint64 auto-increment primary key
//	        mixin.Time{}, // created_at and updated_at timestamps
//	    }
//	}
//
//	func (User) Fields() []field.Field {
//	    return []field.Field{
//	        field.String("email"),
//	        field.String("name").Optional(),
//	    }
//	}
//
//	var Users = schema.MustLoad(User{})
//
// The table name defaults to the pluralized snake_case of the definition type
// name (User -> users, UserProfile -> user_profiles) and can be overridden
// through Config:
//
//	func (User) Config() schema.Config {
//	    return schema.Config{Table: "accounts"}
//	}
//
// Load validates the declaration: exactly one primary key, unique column
// names, and a consistent primary-key strategy. Violations are reported as a
// *ConfigurationError at registration time. The returned *Descriptor is
// never mutated and may be shared across goroutines.
package schema
