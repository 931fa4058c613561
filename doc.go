// Package relm is a small object-relational runtime for Postgres, MySQL and
// SQLite.
//
// A record type is a struct embedding Entity together with a schema
// definition describing its table and columns. A Model binds both to a
// driver and provides the persistence operations:
//
//	type UserSchema struct{ schema.Schema }
//
//	func (UserSchema) Mixin() []schema.Mixin {
//	    return []schema.Mixin{mixin.ID{}, mixin.Time{}}
//	}
//
//	func (UserSchema) Fields() []field.Field {
//	    return []field.Field{
//	        field.String("email"),
//	        field.String("role").Default("member"),
//	    }
//	}
//
//	drv, err := sql.Open(dialect.Postgres, "pgx", dsn)
//	if err != nil {
//	    return err
//	}
//	users := relm.NewModel[User](drv, schema.MustLoad(UserSchema{}))
//
//	u := &User{Email: "a8m@example.com"}
//	if err := users.Save(ctx, u); err != nil {
//	    return err
//	}
//	admins, err := users.Query().
//	    Where("role", "=", "admin").
//	    OrderBy("created_at", sql.Desc).
//	    Take(10).
//	    Get(ctx)
//
// Save inserts new records and updates persisted ones. On insert it fills
// generated keys, defaults and timestamps back into the record. Mutations
// through a Query require at least one constraint; UpdateAll and DeleteAll
// are the explicit forms affecting every row.
//
// Store errors keep their original value in the error chain. Writes
// rejected by a constraint are reported as ConstraintError, missing rows
// as *NotFoundError.
package relm
