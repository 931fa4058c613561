package sql

import (
	"context"

	"github.com/syssam/relm/dialect"
	"github.com/syssam/relm/value"
)

// Statement is a statement builder that collects its build errors.
type Statement interface {
	Querier
	Err() error
}

// QueryRows runs stmt on exec and returns the decoded rows.
func QueryRows(ctx context.Context, exec dialect.ExecQuerier, stmt Statement) ([]value.Row, error) {
	if err := stmt.Err(); err != nil {
		return nil, err
	}
	query, args := stmt.Query()
	rows := &Rows{}
	if err := exec.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	return ScanRows(rows)
}

// QueryInt64 runs stmt on exec and returns its single int64 result, as
// returned by COUNT(*) queries.
func QueryInt64(ctx context.Context, exec dialect.ExecQuerier, stmt Statement) (int64, error) {
	if err := stmt.Err(); err != nil {
		return 0, err
	}
	query, args := stmt.Query()
	rows := &Rows{}
	if err := exec.Query(ctx, query, args, rows); err != nil {
		return 0, err
	}
	return ScanInt64(rows)
}

// ExecAffected runs stmt on exec and returns the number of affected rows.
func ExecAffected(ctx context.Context, exec dialect.ExecQuerier, stmt Statement) (int64, error) {
	if err := stmt.Err(); err != nil {
		return 0, err
	}
	query, args := stmt.Query()
	var res Result
	if err := exec.Exec(ctx, query, args, &res); err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// TruncateTable removes every row of table and restarts its identity
// sequence. On SQLite the autoincrement counter is cleared when the
// database keeps one.
func TruncateTable(ctx context.Context, exec dialect.ExecQuerier, dialectName, table string) error {
	tr := Dialect(dialectName).Truncate(table)
	if _, err := ExecAffected(ctx, exec, tr); err != nil {
		return err
	}
	probe, args, ok := tr.ProbeSequence()
	if !ok {
		return nil
	}
	rows := &Rows{}
	if err := exec.Query(ctx, probe, args, rows); err != nil {
		return err
	}
	n, err := ScanInt64(rows)
	if err != nil {
		return err
	}
	if n == 0 {
		// No AUTOINCREMENT table was ever created, there is no counter to reset.
		return nil
	}
	reset, args, _ := tr.ResetSequence()
	return exec.Exec(ctx, reset, args, nil)
}
