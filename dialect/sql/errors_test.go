package sql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestConstraint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ConstraintKind
	}{
		{"nil", nil, NoConstraint},
		{"plain", errors.New("connection refused"), NoConstraint},
		{"pgx_unique", &pgconn.PgError{Code: "23505"}, UniqueConstraint},
		{"pgx_fk", fmt.Errorf("dialect/sql: exec: %w", &pgconn.PgError{Code: "23503"}), ForeignKeyConstraint},
		{"pgx_other", &pgconn.PgError{Code: "42P01"}, NoConstraint},
		{"pq_check", &pq.Error{Code: "23514"}, CheckConstraint},
		{"pq_not_null", &pq.Error{Code: "23502"}, NotNullConstraint},
		{"mysql_duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, UniqueConstraint},
		{"mysql_fk_child", &mysql.MySQLError{Number: 1452}, ForeignKeyConstraint},
		{"mysql_fk_parent", &mysql.MySQLError{Number: 1451}, ForeignKeyConstraint},
		{"sqlite_unique", errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"), UniqueConstraint},
		{"sqlite_fk", errors.New("FOREIGN KEY constraint failed"), ForeignKeyConstraint},
		{"sqlite_not_null", errors.New("NOT NULL constraint failed: users.name"), NotNullConstraint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Constraint(tt.err))
			assert.Equal(t, tt.want != NoConstraint, IsConstraintError(tt.err))
		})
	}
	assert.True(t, IsUniqueConstraintError(&pq.Error{Code: "23505"}))
	assert.True(t, IsForeignKeyConstraintError(&mysql.MySQLError{Number: 1451}))
	assert.True(t, IsCheckConstraintError(errors.New("CHECK constraint failed: age")))
	assert.Equal(t, "foreign key", ForeignKeyConstraint.String())
}
