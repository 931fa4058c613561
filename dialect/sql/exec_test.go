package sql

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relm/dialect"
)

func TestQueryHelpers(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := OpenDB(dialect.Postgres, db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id", "name" FROM "users" WHERE "id" = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(int64(1), "a8m"))
	rows, err := QueryRows(ctx, drv, Dialect(dialect.Postgres).Select("id", "name").From("users").Where(EQ("id", 1)))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	name, err := rows[0].String("name")
	require.NoError(t, err)
	assert.Equal(t, "a8m", name)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(12)))
	n, err := QueryInt64(ctx, drv, Dialect(dialect.Postgres).Select().Count().From("users"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users" WHERE "id" > $1`)).
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	n, err = ExecAffected(ctx, drv, Dialect(dialect.Postgres).Delete("users").Where(GT("id", 10)))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// Build errors are returned before anything is sent.
	_, err = QueryRows(ctx, drv, Dialect(dialect.Postgres).Select("id").From("users; --"))
	require.Error(t, err)
	_, err = ExecAffected(ctx, drv, Dialect(dialect.Postgres).Update("users"))
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTruncateTable(t *testing.T) {
	ctx := context.Background()

	t.Run("MySQL", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectExec(regexp.QuoteMeta("TRUNCATE TABLE `pets`")).WillReturnResult(sqlmock.NewResult(0, 0))
		require.NoError(t, TruncateTable(ctx, OpenDB(dialect.MySQL, db), dialect.MySQL, "pets"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SQLite", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "pets"`)).WillReturnResult(sqlmock.NewResult(0, 4))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM sqlite_master`)).
			WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(int64(1)))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sqlite_sequence WHERE name = ?`)).
			WithArgs("pets").
			WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, TruncateTable(ctx, OpenDB(dialect.SQLite, db), dialect.SQLite, "pets"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InvalidTable", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		require.Error(t, TruncateTable(ctx, OpenDB(dialect.Postgres, db), dialect.Postgres, "pets; DROP TABLE users"))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
