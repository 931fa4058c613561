package sql

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relm/dialect"
)

func TestLogDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	drv := NewLogDriver(OpenDB(dialect.Postgres, db), WithLogger(logger), WithSlowThreshold(time.Hour))
	assert.Equal(t, dialect.Postgres, drv.Dialect())

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), `SELECT "id" FROM "users"`, []any{}, rows))
	require.NoError(t, rows.Close())

	mock.ExpectExec("DELETE").WillReturnError(errors.New("boom"))
	require.Error(t, drv.Exec(context.Background(), `DELETE FROM "users"`, []any{}, nil))

	stats := drv.QueryStats().Stats()
	assert.Equal(t, int64(1), stats.TotalQueries)
	assert.Equal(t, int64(1), stats.TotalExecs)
	assert.Equal(t, int64(1), stats.Errors)
	assert.Zero(t, stats.SlowQueries)
	assert.Contains(t, stats.String(), "queries=1 execs=1")

	out := buf.String()
	assert.Contains(t, out, `SELECT \"id\" FROM \"users\"`)
	assert.Contains(t, out, `error="dialect/sql: exec: boom"`)
	require.NoError(t, mock.ExpectationsWereMet())

	drv.QueryStats().Reset()
	assert.Zero(t, drv.QueryStats().Stats().TotalQueries)
}

func TestLogDriverSlow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	drv := NewLogDriver(OpenDB(dialect.SQLite, db), WithLogger(logger), WithSlowThreshold(-1))

	mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, drv.Exec(context.Background(), `UPDATE "users" SET "name" = ?`, []any{"x"}, nil))
	assert.Equal(t, int64(1), drv.QueryStats().Stats().SlowQueries)
	assert.Contains(t, buf.String(), "slow exec")
}

func TestLogTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := NewLogDriver(OpenDB(dialect.MySQL, db), WithLogger(slog.New(slog.DiscardHandler)))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	require.NoError(t, tx.Exec(context.Background(), "INSERT INTO `users` VALUES ()", []any{}, nil))
	require.NoError(t, tx.Commit())
	assert.Equal(t, int64(1), drv.QueryStats().Stats().TotalExecs)
	require.NoError(t, mock.ExpectationsWereMet())
}
