// Package sql renders parameterized statements for PostgreSQL, MySQL and
// SQLite and executes them over database/sql.
//
// # Builders
//
//   - Builder: low-level SQL text builder with identifier quoting and placeholders
//   - Selector: SELECT with WHERE, ORDER BY, LIMIT and OFFSET
//   - InsertBuilder: INSERT with RETURNING on PostgreSQL
//   - UpdateBuilder: UPDATE with SET and WHERE clauses
//   - DeleteBuilder: DELETE with WHERE predicates
//   - TruncateBuilder: whole-table removal with identity reset
//
// # Dialect Support
//
//	sql.Dialect(dialect.Postgres).
//	    Select("id", "name").
//	    From("users").
//	    Where(sql.EQ("status", "active")).
//	    OrderBy("id", sql.Desc).
//	    Limit(10)
//	// SELECT "id", "name" FROM "users" WHERE "status" = $1 ORDER BY "id" DESC LIMIT 10
//
// MySQL quotes identifiers with backticks and uses "?" placeholders; SQLite
// uses double quotes and "?". Values are never interpolated into the text.
// Identifiers are validated and invalid input is reported by Err instead of
// being rendered.
//
// # Predicates
//
//	sql.EQ("name", "john")            // "name" = ?
//	sql.NEQ("status", "deleted")      // "status" <> ?
//	sql.GT("age", 18)                 // "age" > ?
//	sql.Contains("name", "jo")        // "name" LIKE ?   ('%jo%')
//	sql.IsNull("deleted_at")          // "deleted_at" IS NULL
//	sql.In("status", "a", "b")        // "status" IN (?, ?)
//	sql.Or(sql.EQ("a", 1), sql.EQ("b", 2))
//	sql.Compare("age", ">=", 18)      // operator given as text
//
// # Execution
//
// Driver implements dialect.Driver over *sql.DB. LogDriver wraps any
// dialect.Driver with slog logging and statement statistics. ScanRows
// reads a result set into value.Row maps for decoding.
package sql
