package sql

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relm/dialect"
	"github.com/syssam/relm/value"
)

func TestOpenDB(t *testing.T) {
	tests := []struct {
		name    string
		dialect string
		want    string
	}{
		{"Postgres", dialect.Postgres, dialect.Postgres},
		{"MySQL", dialect.MySQL, dialect.MySQL},
		{"SQLite", dialect.SQLite, dialect.SQLite},
		{"SQLite3", "sqlite3", dialect.SQLite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, _, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			drv := OpenDB(tt.dialect, db)
			assert.NotNil(t, drv)
			assert.Equal(t, tt.want, drv.Dialect())
			assert.Same(t, db, drv.DB())
		})
	}
}

// TestDriverQuery tests query operations.
func TestDriverQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db)

	t.Run("query_with_args", func(t *testing.T) {
		mock.ExpectQuery(`SELECT name FROM users WHERE id = \$1`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Alice"))

		rows := &Rows{}
		err := drv.Query(context.Background(), "SELECT name FROM users WHERE id = $1", []any{1}, rows)
		require.NoError(t, err)
		require.NoError(t, rows.Close())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query_error", func(t *testing.T) {
		expectedErr := errors.New("database error")
		mock.ExpectQuery("SELECT").WillReturnError(expectedErr)

		rows := &Rows{}
		err := drv.Query(context.Background(), "SELECT", []any{}, rows)
		require.ErrorIs(t, err, expectedErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid_target", func(t *testing.T) {
		err := drv.Query(context.Background(), "SELECT 1", []any{}, nil)
		require.Error(t, err)
		err = drv.Query(context.Background(), "SELECT 1", "args", &Rows{})
		require.Error(t, err)
	})
}

// TestDriverExec tests execute operations.
func TestDriverExec(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.MySQL, db)

	t.Run("exec_with_result", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO `users`").
			WithArgs("Alice").
			WillReturnResult(sqlmock.NewResult(7, 1))

		var res sql.Result
		err := drv.Exec(context.Background(), "INSERT INTO `users` (`name`) VALUES (?)", []any{"Alice"}, &res)
		require.NoError(t, err)
		id, err := res.LastInsertId()
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec_without_result", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM `users`").WillReturnResult(sqlmock.NewResult(0, 3))
		err := drv.Exec(context.Background(), "DELETE FROM `users`", []any{}, nil)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exec_error", func(t *testing.T) {
		expectedErr := errors.New("constraint violation")
		mock.ExpectExec("DELETE").WillReturnError(expectedErr)

		err := drv.Exec(context.Background(), "DELETE FROM users", []any{}, nil)
		require.ErrorIs(t, err, expectedErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid_target", func(t *testing.T) {
		var n int
		require.Error(t, drv.Exec(context.Background(), "DELETE FROM users", []any{}, &n))
	})
}

// TestDriverTransaction tests transaction operations.
func TestDriverTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db)

	t.Run("successful_commit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		tx, err := drv.Tx(context.Background())
		require.NoError(t, err)
		require.NoError(t, tx.Exec(context.Background(), "INSERT INTO users DEFAULT VALUES", []any{}, nil))
		require.NoError(t, tx.Commit())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("error"))
		mock.ExpectRollback()

		tx, err := drv.Tx(context.Background())
		require.NoError(t, err)
		require.Error(t, tx.Exec(context.Background(), "INSERT INTO users DEFAULT VALUES", []any{}, nil))
		require.NoError(t, tx.Rollback())
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// TestContextCancellation tests that context cancellation is respected.
func TestContextCancellation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock.ExpectQuery("SELECT").WillReturnError(context.Canceled)
	err = drv.Query(ctx, "SELECT 1", []any{}, &Rows{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := OpenDB(dialect.Postgres, db)
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	t.Run("rows", func(t *testing.T) {
		mock.ExpectQuery("SELECT").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
				AddRow(int64(1), "Alice", nil, ts).
				AddRow(int64(2), []byte("Bob"), "bob@example.com", ts))

		rows := &Rows{}
		require.NoError(t, drv.Query(context.Background(), "SELECT", []any{}, rows))
		rs, err := ScanRows(rows)
		require.NoError(t, err)
		require.Len(t, rs, 2)

		id, err := rs[0].Int64("id")
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
		email, err := rs[0].NullString("email")
		require.NoError(t, err)
		assert.Nil(t, email)
		name, err := rs[1].String("name")
		require.NoError(t, err)
		assert.Equal(t, "Bob", name)
		created, err := rs[1].Time("created_at")
		require.NoError(t, err)
		assert.True(t, ts.Equal(created))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))
		rows := &Rows{}
		require.NoError(t, drv.Query(context.Background(), "SELECT", []any{}, rows))
		rs, err := ScanRows(rows)
		require.NoError(t, err)
		assert.Empty(t, rs)
	})

	t.Run("row_error", func(t *testing.T) {
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(1).
			RowError(0, errors.New("broken")))
		rows := &Rows{}
		require.NoError(t, drv.Query(context.Background(), "SELECT", []any{}, rows))
		_, err := ScanRows(rows)
		require.Error(t, err)
	})

	t.Run("count", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))
		rows := &Rows{}
		require.NoError(t, drv.Query(context.Background(), "SELECT COUNT(*)", []any{}, rows))
		n, err := ScanInt64(rows)
		require.NoError(t, err)
		assert.Equal(t, int64(42), n)
	})
}

func TestScanRowsDecodeError(t *testing.T) {
	rows := sqlmock.NewRows([]string{"name"}).AddRow(nil)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	r := &Rows{}
	require.NoError(t, OpenDB(dialect.SQLite, db).Query(context.Background(), "SELECT", []any{}, r))
	rs, err := ScanRows(r)
	require.NoError(t, err)
	_, err = rs[0].String("name")
	assert.ErrorIs(t, err, value.ErrUnexpectedNull)
}

// TestIsValidIdentifier tests SQL identifier validation.
func TestIsValidIdentifier(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"valid_simple", "foo", true},
		{"valid_with_underscore", "foo_bar", true},
		{"valid_with_number", "foo123", true},
		{"valid_with_dot", "schema.table", true},
		{"valid_starting_underscore", "_private", true},
		{"invalid_empty", "", false},
		{"invalid_starting_number", "123foo", false},
		{"invalid_with_space", "foo bar", false},
		{"invalid_with_quote", "foo'bar", false},
		{"invalid_with_semicolon", "foo;DROP TABLE", false},
		{"invalid_with_dash", "foo-bar", false},
		{"invalid_trailing_dot", "foo.", false},
		{"invalid_double_dot", "a..b", false},
		{"invalid_too_long", string(make([]byte, 129)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isValidIdentifier(tt.input))
		})
	}
}
