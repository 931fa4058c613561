package sql

import (
	"errors"
	"fmt"

	"github.com/syssam/relm/value"
)

// ScanRows reads every row of rows into column-keyed cells and closes
// rows. Raw driver values are converted through value.FromDriver, so a
// driver type the value bridge does not know fails the whole scan.
func ScanRows(rows ColumnScanner) (_ []value.Row, err error) {
	defer func() {
		err = errors.Join(err, rows.Close())
	}()
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: scan columns: %w", err)
	}
	var (
		out  []value.Row
		raw  = make([]any, len(columns))
		dest = make([]any, len(columns))
	)
	for i := range raw {
		dest[i] = &raw[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("dialect/sql: scan row: %w", err)
		}
		row := make(value.Row, len(columns))
		for i, c := range columns {
			cell, err := value.FromDriver(raw[i])
			if err != nil {
				return nil, fmt.Errorf("dialect/sql: scan column %q: %w", c, err)
			}
			row[c] = cell
			raw[i] = nil
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dialect/sql: scan rows: %w", err)
	}
	return out, nil
}

// ScanInt64 reads the first column of the first row as an int64 and closes
// rows. The result must have exactly one column, as COUNT(*) queries do.
func ScanInt64(rows ColumnScanner) (int64, error) {
	rs, err := ScanRows(rows)
	if err != nil {
		return 0, err
	}
	if len(rs) == 0 || len(rs[0]) != 1 {
		return 0, errors.New("dialect/sql: scan int64: expect one row with one column")
	}
	for column := range rs[0] {
		return value.Column(rs[0], column, value.Int64)
	}
	panic("unreachable")
}
