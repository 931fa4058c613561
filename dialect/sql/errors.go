package sql

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ConstraintKind classifies a constraint violation reported by the store.
type ConstraintKind int

// Constraint kinds.
const (
	NoConstraint ConstraintKind = iota
	UniqueConstraint
	ForeignKeyConstraint
	CheckConstraint
	NotNullConstraint
)

// String returns the name of the constraint kind.
func (k ConstraintKind) String() string {
	switch k {
	case UniqueConstraint:
		return "unique"
	case ForeignKeyConstraint:
		return "foreign key"
	case CheckConstraint:
		return "check"
	case NotNullConstraint:
		return "not null"
	}
	return "none"
}

// PostgreSQL SQLSTATE codes for constraint violations (Class 23).
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// MySQL error numbers for constraint violations.
const (
	mysqlNotNull                = 1048
	mysqlDuplicateEntry         = 1062
	mysqlForeignKeyParent       = 1451 // Cannot delete or update a parent row
	mysqlForeignKeyChild        = 1452 // Cannot add or update a child row
	mysqlCheckConstraintViolate = 3819
)

var sqlstates = map[string]ConstraintKind{
	pgNotNullViolation:    NotNullConstraint,
	pgForeignKeyViolation: ForeignKeyConstraint,
	pgUniqueViolation:     UniqueConstraint,
	pgCheckViolation:      CheckConstraint,
}

var mysqlNumbers = map[uint16]ConstraintKind{
	mysqlNotNull:                NotNullConstraint,
	mysqlDuplicateEntry:         UniqueConstraint,
	mysqlForeignKeyParent:       ForeignKeyConstraint,
	mysqlForeignKeyChild:        ForeignKeyConstraint,
	mysqlCheckConstraintViolate: CheckConstraint,
}

// Fallback messages, for SQLite and drivers without typed errors.
var messages = []struct {
	kind ConstraintKind
	subs []string
}{
	{UniqueConstraint, []string{"Error 1062", "violates unique constraint", "UNIQUE constraint failed"}},
	{ForeignKeyConstraint, []string{"Error 1451", "Error 1452", "violates foreign key constraint", "FOREIGN KEY constraint failed"}},
	{CheckConstraint, []string{"Error 3819", "violates check constraint", "CHECK constraint failed"}},
	{NotNullConstraint, []string{"Error 1048", "violates not-null constraint", "NOT NULL constraint failed"}},
}

// Constraint classifies err as a constraint violation. It reports
// NoConstraint for any other error.
func Constraint(err error) ConstraintKind {
	if err == nil {
		return NoConstraint
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if k, ok := sqlstates[pgErr.Code]; ok {
			return k
		}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if k, ok := sqlstates[string(pqErr.Code)]; ok {
			return k
		}
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if k, ok := mysqlNumbers[myErr.Number]; ok {
			return k
		}
	}
	msg := err.Error()
	for _, m := range messages {
		for _, sub := range m.subs {
			if strings.Contains(msg, sub) {
				return m.kind
			}
		}
	}
	return NoConstraint
}

// IsConstraintError returns true if the error resulted from a database constraint violation.
func IsConstraintError(err error) bool {
	return Constraint(err) != NoConstraint
}

// IsUniqueConstraintError reports if the error resulted from a DB uniqueness constraint violation.
// e.g. duplicate value in unique index.
func IsUniqueConstraintError(err error) bool {
	return Constraint(err) == UniqueConstraint
}

// IsForeignKeyConstraintError reports if the error resulted from a database foreign-key constraint violation.
// e.g. parent row does not exist.
func IsForeignKeyConstraintError(err error) bool {
	return Constraint(err) == ForeignKeyConstraint
}

// IsCheckConstraintError reports if the error resulted from a database check constraint violation.
func IsCheckConstraintError(err error) bool {
	return Constraint(err) == CheckConstraint
}
