package main

import (
	"bytes"
	stdsql "database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/relm/dialect"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name      string
		opts      renderOptions
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "all",
			opts:      renderOptions{dialect: dialect.Postgres, limit: -1, offset: -1},
			wantQuery: `SELECT * FROM "users"`,
		},
		{
			name: "constraints",
			opts: renderOptions{
				dialect: dialect.Postgres,
				columns: []string{"id", "name"},
				where:   []string{"age,>=,18", "role,IN,admin|owner"},
				or:      []string{"name,=,a8m"},
				order:   []string{"created_at:desc", "id"},
				limit:   10,
				offset:  -1,
			},
			wantQuery: `SELECT "id", "name" FROM "users" WHERE ("age" >= $1 AND "role" IN ($2, $3)) OR "name" = $4 ORDER BY "created_at" DESC, "id" ASC LIMIT 10`,
			wantArgs:  []any{int64(18), "admin", "owner", "a8m"},
		},
		{
			name:      "null",
			opts:      renderOptions{dialect: dialect.MySQL, where: []string{"deleted_at,=,null"}, limit: -1, offset: 20},
			wantQuery: "SELECT * FROM `users` WHERE `deleted_at` IS NULL LIMIT 18446744073709551615 OFFSET 20",
		},
		{
			name:      "count",
			opts:      renderOptions{dialect: dialect.SQLite, count: true, where: []string{"active,=,true"}, limit: -1, offset: -1},
			wantQuery: `SELECT COUNT(*) FROM "users" WHERE "active" = ?`,
			wantArgs:  []any{true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := render("users", tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRenderErrors(t *testing.T) {
	for _, opts := range []renderOptions{
		{dialect: dialect.Postgres, where: []string{"age"}, limit: -1, offset: -1},
		{dialect: dialect.Postgres, where: []string{"age,~,1"}, limit: -1, offset: -1},
		{dialect: dialect.Postgres, order: []string{"age:up"}, limit: -1, offset: -1},
	} {
		_, _, err := render("users", opts)
		assert.Error(t, err, opts)
	}
}

func TestParseValue(t *testing.T) {
	assert.Nil(t, parseValue("null"))
	assert.Equal(t, true, parseValue("true"))
	assert.Equal(t, int64(42), parseValue("42"))
	assert.Equal(t, 1.5, parseValue("1.5"))
	assert.Equal(t, "a8m", parseValue("a8m"))
}

// run executes the root command and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.db")
	db, err := stdsql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE pets (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL)`)
	require.NoError(t, err)
	for _, name := range []string{"pedro", "xabi", "coco"} {
		_, err = db.Exec(`INSERT INTO pets (name) VALUES (?)`, name)
		require.NoError(t, err)
	}
	_, err = db.Exec(`CREATE TABLE owners (id INTEGER PRIMARY KEY)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	env := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(env, nil, 0o600))
	t.Setenv("RELM_DRIVER", "sqlite")
	t.Setenv("RELM_DSN", "file:"+path)
	t.Setenv("RELM_LOG_LEVEL", "error")
	flags := []string{"--env-file", env}

	out, err := run(t, append([]string{"ping"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "is reachable")

	out, err = run(t, append([]string{"count", "pets", "owners"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "pets    3\nowners  0\n", out)

	_, err = run(t, append([]string{"count", "missing"}, flags...)...)
	require.Error(t, err)

	_, err = run(t, append([]string{"truncate", "pets"}, flags...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	out, err = run(t, append([]string{"truncate", "pets", "--yes"}, flags...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "truncated pets")

	out, err = run(t, append([]string{"count", "pets"}, flags...)...)
	require.NoError(t, err)
	assert.Equal(t, "pets  0\n", out)
}
