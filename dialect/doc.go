// Package dialect defines the executor contract the runtime talks to.
//
// The runtime never opens connections or retries statements. It renders a
// statement and its positional arguments and hands them to an ExecQuerier:
//
//	type ExecQuerier interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	}
//
// A Driver adds transaction, close and dialect discovery on top of it. The
// dialect name selects placeholder style, identifier quoting and the
// truncate form:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// The database/sql implementation lives in dialect/sql:
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// A Tx is an ExecQuerier too, so a transaction is passed through the runtime
// unchanged:
//
//	tx, err := drv.Tx(ctx)
//	users := Users.Tx(tx)
package dialect
