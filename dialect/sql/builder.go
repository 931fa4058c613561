package sql

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/syssam/relm/dialect"
	"github.com/syssam/relm/value"
)

// validIdentifierRe validates SQL identifiers (alphanumeric, underscores, dots for schema.name)
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// isValidIdentifier checks if the string is a valid SQL identifier.
func isValidIdentifier(s string) bool {
	return s != "" && len(s) <= 128 && validIdentifierRe.MatchString(s) &&
		!strings.HasSuffix(s, ".") && !strings.Contains(s, "..")
}

// Querier wraps the basic Query method implemented by the statement builders.
type Querier interface {
	// Query returns the query representation of the element
	// and its arguments (if any).
	Query() (string, []any)
}

// Builder is the base query builder. It writes identifiers quoted for its
// dialect, values as positional placeholders, and collects errors instead
// of failing eagerly.
type Builder struct {
	sb      strings.Builder
	dialect string
	args    []any
	errs    []error
}

// Dialect returns the dialect of the builder.
func (b *Builder) Dialect() string { return b.dialect }

// SetDialect sets the builder dialect.
func (b *Builder) SetDialect(dialect string) { b.dialect = dialect }

// WriteString appends raw SQL text.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// WriteByte appends a single byte of raw SQL text.
func (b *Builder) WriteByte(c byte) *Builder {
	b.sb.WriteByte(c)
	return b
}

// Pad appends a space.
func (b *Builder) Pad() *Builder { return b.WriteByte(' ') }

// Ident appends a quoted identifier. Invalid identifiers are recorded as
// errors and never written.
func (b *Builder) Ident(s string) *Builder {
	if !isValidIdentifier(s) {
		b.AddError(fmt.Errorf("sql: invalid identifier %q", s))
		return b
	}
	for i, part := range strings.Split(s, ".") {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(b.quote(part))
	}
	return b
}

// IdentComma appends a comma-separated list of identifiers.
func (b *Builder) IdentComma(s ...string) *Builder {
	for i := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Ident(s[i])
	}
	return b
}

func (b *Builder) quote(ident string) string {
	if b.dialect == dialect.MySQL {
		return "`" + ident + "`"
	}
	return strconv.Quote(ident)
}

// Arg appends a placeholder for v and records it as an argument.
// The value is encoded to its driver representation first.
func (b *Builder) Arg(v any) *Builder {
	dv, err := value.Encode(v)
	if err != nil {
		b.AddError(fmt.Errorf("sql: encode argument: %w", err))
		return b
	}
	b.args = append(b.args, dv)
	if b.dialect == dialect.Postgres {
		b.WriteString("$" + strconv.Itoa(len(b.args)))
	} else {
		b.WriteByte('?')
	}
	return b
}

// Args appends a comma-separated list of placeholders.
func (b *Builder) Args(vs ...any) *Builder {
	for i := range vs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Arg(vs[i])
	}
	return b
}

// Join renders the predicate into the builder.
func (b *Builder) Join(p *Predicate) *Builder {
	if p != nil {
		p.render(b)
	}
	return b
}

// AddError records a build error.
func (b *Builder) AddError(err error) *Builder {
	if err != nil {
		b.errs = append(b.errs, err)
	}
	return b
}

// Err returns the errors collected while building, if any.
func (b *Builder) Err() error {
	return errors.Join(b.errs...)
}

// String returns the accumulated SQL text.
func (b *Builder) String() string { return b.sb.String() }

// Query implements the Querier interface.
func (b *Builder) Query() (string, []any) {
	return b.sb.String(), b.args
}

// DialectBuilder prefixes all statement builders with a dialect.
type DialectBuilder struct {
	dialect string
}

// Dialect creates a new DialectBuilder with the given dialect name.
//
//	sql.Dialect(dialect.Postgres).Select("id").From("users")
func Dialect(name string) *DialectBuilder {
	return &DialectBuilder{dialect: name}
}

// Select returns a selector for the given columns.
func (d *DialectBuilder) Select(columns ...string) *Selector {
	return &Selector{dialect: d.dialect, columns: columns}
}

// Insert returns an insert builder for the table.
func (d *DialectBuilder) Insert(table string) *InsertBuilder {
	return &InsertBuilder{dialect: d.dialect, table: table}
}

// Update returns an update builder for the table.
func (d *DialectBuilder) Update(table string) *UpdateBuilder {
	return &UpdateBuilder{dialect: d.dialect, table: table}
}

// Delete returns a delete builder for the table.
func (d *DialectBuilder) Delete(table string) *DeleteBuilder {
	return &DeleteBuilder{dialect: d.dialect, table: table}
}

// Truncate returns a truncate builder for the table.
func (d *DialectBuilder) Truncate(table string) *TruncateBuilder {
	return &TruncateBuilder{dialect: d.dialect, table: table}
}

// Direction is the direction of a sort key.
type Direction string

// Sort directions.
const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// ParseDirection parses a sort direction, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToUpper(strings.TrimSpace(s))); d {
	case Asc, Desc:
		return d, nil
	}
	return "", fmt.Errorf("sql: invalid sort direction %q", s)
}

type order struct {
	column string
	dir    Direction
}

// Selector is a builder for the SELECT statement.
type Selector struct {
	dialect string
	columns []string
	count   bool
	table   string
	where   *Predicate
	order   []order
	limit   *int
	offset  *int
	errs    []error
}

// From sets the source table.
func (s *Selector) From(table string) *Selector {
	s.table = table
	return s
}

// Count turns the selector into a COUNT(*) query.
func (s *Selector) Count() *Selector {
	s.count = true
	return s
}

// Where appends a predicate, joined with AND to the existing ones.
func (s *Selector) Where(p *Predicate) *Selector {
	s.where = andWhere(s.where, p)
	return s
}

// OrderBy appends a sort key.
func (s *Selector) OrderBy(column string, dir Direction) *Selector {
	if dir != Asc && dir != Desc {
		s.errs = append(s.errs, fmt.Errorf("sql: invalid sort direction %q", dir))
	}
	s.order = append(s.order, order{column: column, dir: dir})
	return s
}

// Limit sets the maximum number of rows.
func (s *Selector) Limit(n int) *Selector {
	if n < 0 {
		s.errs = append(s.errs, fmt.Errorf("sql: negative limit %d", n))
	}
	s.limit = &n
	return s
}

// Offset sets the number of rows to skip.
func (s *Selector) Offset(n int) *Selector {
	if n < 0 {
		s.errs = append(s.errs, fmt.Errorf("sql: negative offset %d", n))
	}
	s.offset = &n
	return s
}

// Query renders the statement. Rendering order is fixed:
// WHERE, ORDER BY, LIMIT, OFFSET.
func (s *Selector) Query() (string, []any) {
	return s.build().Query()
}

// Err returns the errors collected while building the statement.
func (s *Selector) Err() error {
	return s.build().Err()
}

func (s *Selector) build() *Builder {
	b := &Builder{dialect: s.dialect, errs: append([]error(nil), s.errs...)}
	b.WriteString("SELECT ")
	switch {
	case s.count:
		b.WriteString("COUNT(*)")
	case len(s.columns) == 0:
		b.WriteByte('*')
	default:
		b.IdentComma(s.columns...)
	}
	b.WriteString(" FROM ").Ident(s.table)
	if s.where != nil {
		b.WriteString(" WHERE ").Join(s.where)
	}
	if len(s.order) > 0 {
		b.WriteString(" ORDER BY ")
		for i, o := range s.order {
			if i > 0 {
				b.WriteString(", ")
			}
			b.Ident(o.column).Pad().WriteString(string(o.dir))
		}
	}
	switch {
	case s.limit != nil:
		b.WriteString(" LIMIT ").WriteString(strconv.Itoa(*s.limit))
	case s.offset != nil && s.dialect == dialect.MySQL:
		b.WriteString(" LIMIT 18446744073709551615")
	case s.offset != nil && s.dialect == dialect.SQLite:
		b.WriteString(" LIMIT -1")
	}
	if s.offset != nil {
		b.WriteString(" OFFSET ").WriteString(strconv.Itoa(*s.offset))
	}
	return b
}

// InsertBuilder is a builder for the INSERT statement.
type InsertBuilder struct {
	dialect   string
	table     string
	columns   []string
	values    []any
	returning []string
}

// Columns sets the inserted columns.
func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.columns = append(i.columns, columns...)
	return i
}

// Values sets the inserted values, positionally matching Columns.
func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.values = append(i.values, values...)
	return i
}

// Set appends a column and its value.
func (i *InsertBuilder) Set(column string, v any) *InsertBuilder {
	i.columns = append(i.columns, column)
	i.values = append(i.values, v)
	return i
}

// Returning adds a RETURNING clause. It is rendered on Postgres only.
func (i *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	i.returning = columns
	return i
}

// Query renders the statement.
func (i *InsertBuilder) Query() (string, []any) {
	return i.build().Query()
}

// Err returns the errors collected while building the statement.
func (i *InsertBuilder) Err() error {
	return i.build().Err()
}

func (i *InsertBuilder) build() *Builder {
	b := &Builder{dialect: i.dialect}
	if len(i.columns) != len(i.values) {
		b.AddError(fmt.Errorf("sql: insert has %d columns and %d values", len(i.columns), len(i.values)))
	}
	b.WriteString("INSERT INTO ").Ident(i.table)
	if len(i.columns) == 0 {
		switch i.dialect {
		case dialect.MySQL:
			b.WriteString(" VALUES ()")
		default:
			b.WriteString(" DEFAULT VALUES")
		}
	} else {
		b.WriteString(" (").IdentComma(i.columns...).WriteString(") VALUES (").Args(i.values...).WriteByte(')')
	}
	if len(i.returning) > 0 && i.dialect == dialect.Postgres {
		b.WriteString(" RETURNING ").IdentComma(i.returning...)
	}
	return b
}

// UpdateBuilder is a builder for the UPDATE statement.
type UpdateBuilder struct {
	dialect string
	table   string
	columns []string
	values  []any
	where   *Predicate
}

// Set appends a column assignment.
func (u *UpdateBuilder) Set(column string, v any) *UpdateBuilder {
	u.columns = append(u.columns, column)
	u.values = append(u.values, v)
	return u
}

// Where appends a predicate, joined with AND to the existing ones.
func (u *UpdateBuilder) Where(p *Predicate) *UpdateBuilder {
	u.where = andWhere(u.where, p)
	return u
}

// Empty reports whether the builder has no assignments.
func (u *UpdateBuilder) Empty() bool { return len(u.columns) == 0 }

// Query renders the statement.
func (u *UpdateBuilder) Query() (string, []any) {
	return u.build().Query()
}

// Err returns the errors collected while building the statement.
func (u *UpdateBuilder) Err() error {
	return u.build().Err()
}

func (u *UpdateBuilder) build() *Builder {
	b := &Builder{dialect: u.dialect}
	if u.Empty() {
		b.AddError(errors.New("sql: update without assignments"))
	}
	b.WriteString("UPDATE ").Ident(u.table).WriteString(" SET ")
	for i, c := range u.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.Ident(c).WriteString(" = ").Arg(u.values[i])
	}
	if u.where != nil {
		b.WriteString(" WHERE ").Join(u.where)
	}
	return b
}

// DeleteBuilder is a builder for the DELETE statement.
type DeleteBuilder struct {
	dialect string
	table   string
	where   *Predicate
}

// Where appends a predicate, joined with AND to the existing ones.
func (d *DeleteBuilder) Where(p *Predicate) *DeleteBuilder {
	d.where = andWhere(d.where, p)
	return d
}

// Query renders the statement.
func (d *DeleteBuilder) Query() (string, []any) {
	return d.build().Query()
}

// Err returns the errors collected while building the statement.
func (d *DeleteBuilder) Err() error {
	return d.build().Err()
}

func (d *DeleteBuilder) build() *Builder {
	b := &Builder{dialect: d.dialect}
	b.WriteString("DELETE FROM ").Ident(d.table)
	if d.where != nil {
		b.WriteString(" WHERE ").Join(d.where)
	}
	return b
}

// TruncateBuilder removes every row of a table and restarts its identity
// sequence.
//
//	postgres: TRUNCATE TABLE "t" RESTART IDENTITY
//	mysql:    TRUNCATE TABLE `t`
//	sqlite:   DELETE FROM "t", followed by ResetSequence
type TruncateBuilder struct {
	dialect string
	table   string
}

// Query renders the truncate statement.
func (t *TruncateBuilder) Query() (string, []any) {
	return t.build().Query()
}

// Err returns the errors collected while building the statement.
func (t *TruncateBuilder) Err() error {
	return t.build().Err()
}

func (t *TruncateBuilder) build() *Builder {
	b := &Builder{dialect: t.dialect}
	switch t.dialect {
	case dialect.SQLite:
		b.WriteString("DELETE FROM ").Ident(t.table)
	case dialect.Postgres:
		b.WriteString("TRUNCATE TABLE ").Ident(t.table).WriteString(" RESTART IDENTITY")
	default:
		b.WriteString("TRUNCATE TABLE ").Ident(t.table)
	}
	return b
}

// ProbeSequence returns the query checking whether the SQLite
// sqlite_sequence table exists. It reports false on other dialects.
func (t *TruncateBuilder) ProbeSequence() (string, []any, bool) {
	if t.dialect != dialect.SQLite {
		return "", nil, false
	}
	return "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'sqlite_sequence'", []any{}, true
}

// ResetSequence returns the statement clearing the SQLite autoincrement
// counter of the table. It reports false on other dialects.
func (t *TruncateBuilder) ResetSequence() (string, []any, bool) {
	if t.dialect != dialect.SQLite {
		return "", nil, false
	}
	b := &Builder{dialect: t.dialect}
	b.WriteString("DELETE FROM sqlite_sequence WHERE name = ").Arg(t.table)
	q, args := b.Query()
	return q, args, true
}

func andWhere(cur, p *Predicate) *Predicate {
	switch {
	case p == nil:
		return cur
	case cur == nil:
		return p
	}
	return And(cur, p)
}

// Predicate is a boolean SQL expression. Predicates render against the
// builder of the statement they are joined into, so placeholders are
// numbered in statement order.
type Predicate struct {
	op     string // AND, OR, NOT, or empty for a leaf
	preds  []*Predicate
	render func(*Builder)
}

func leaf(fn func(*Builder)) *Predicate {
	p := &Predicate{}
	p.render = fn
	return p
}

func compose(op string, preds []*Predicate) *Predicate {
	p := &Predicate{op: op}
	for _, c := range preds {
		if c == nil {
			continue
		}
		// Flatten nested predicates of the same operator.
		if c.op == op && op != "NOT" {
			p.preds = append(p.preds, c.preds...)
		} else {
			p.preds = append(p.preds, c)
		}
	}
	p.render = func(b *Builder) {
		switch len(p.preds) {
		case 0:
			if op == "OR" {
				b.WriteString("1 = 0")
			} else {
				b.WriteString("1 = 1")
			}
			return
		case 1:
			p.preds[0].render(b)
			return
		}
		for i, c := range p.preds {
			if i > 0 {
				b.Pad().WriteString(op).Pad()
			}
			if c.op != "" && c.op != "NOT" && len(c.preds) > 1 {
				b.WriteByte('(')
				c.render(b)
				b.WriteByte(')')
			} else {
				c.render(b)
			}
		}
	}
	return p
}

// And joins the predicates with AND.
func And(preds ...*Predicate) *Predicate { return compose("AND", preds) }

// Or joins the predicates with OR.
func Or(preds ...*Predicate) *Predicate { return compose("OR", preds) }

// OrGroups ANDs the predicates of each group and ORs the groups together.
// Empty groups are skipped, and nil is returned if all groups are empty.
func OrGroups(groups ...[]*Predicate) *Predicate {
	ors := make([]*Predicate, 0, len(groups))
	for _, g := range groups {
		if len(g) > 0 {
			ors = append(ors, And(g...))
		}
	}
	if len(ors) == 0 {
		return nil
	}
	return Or(ors...)
}

// Not negates the predicate.
func Not(pred *Predicate) *Predicate {
	return &Predicate{op: "NOT", preds: []*Predicate{pred}, render: func(b *Builder) {
		b.WriteString("NOT (")
		pred.render(b)
		b.WriteByte(')')
	}}
}

func binary(column, op string, v any) *Predicate {
	return leaf(func(b *Builder) {
		b.Ident(column).Pad().WriteString(op).Pad().Arg(v)
	})
}

// EQ returns a "=" predicate.
func EQ(column string, v any) *Predicate { return binary(column, "=", v) }

// NEQ returns a "<>" predicate.
func NEQ(column string, v any) *Predicate { return binary(column, "<>", v) }

// LT returns a "<" predicate.
func LT(column string, v any) *Predicate { return binary(column, "<", v) }

// LTE returns a "<=" predicate.
func LTE(column string, v any) *Predicate { return binary(column, "<=", v) }

// GT returns a ">" predicate.
func GT(column string, v any) *Predicate { return binary(column, ">", v) }

// GTE returns a ">=" predicate.
func GTE(column string, v any) *Predicate { return binary(column, ">=", v) }

// Like returns a LIKE predicate. The pattern is passed as is.
func Like(column, pattern string) *Predicate { return binary(column, "LIKE", pattern) }

// NotLike returns a NOT LIKE predicate.
func NotLike(column, pattern string) *Predicate { return binary(column, "NOT LIKE", pattern) }

// IsNull returns an IS NULL predicate.
func IsNull(column string) *Predicate {
	return leaf(func(b *Builder) { b.Ident(column).WriteString(" IS NULL") })
}

// NotNull returns an IS NOT NULL predicate.
func NotNull(column string) *Predicate {
	return leaf(func(b *Builder) { b.Ident(column).WriteString(" IS NOT NULL") })
}

// In returns an IN predicate. An empty list matches no rows.
func In(column string, vs ...any) *Predicate {
	return leaf(func(b *Builder) {
		if len(vs) == 0 {
			b.WriteString("1 = 0")
			return
		}
		b.Ident(column).WriteString(" IN (").Args(vs...).WriteByte(')')
	})
}

// NotIn returns a NOT IN predicate. An empty list matches every row.
func NotIn(column string, vs ...any) *Predicate {
	return leaf(func(b *Builder) {
		if len(vs) == 0 {
			b.WriteString("1 = 1")
			return
		}
		b.Ident(column).WriteString(" NOT IN (").Args(vs...).WriteByte(')')
	})
}

// Contains returns a predicate matching values containing the substring.
func Contains(column, substr string) *Predicate {
	return like(column, "%"+escapeLike(substr)+"%")
}

// HasPrefix returns a predicate matching values with the prefix.
func HasPrefix(column, prefix string) *Predicate {
	return like(column, escapeLike(prefix)+"%")
}

// HasSuffix returns a predicate matching values with the suffix.
func HasSuffix(column, suffix string) *Predicate {
	return like(column, "%"+escapeLike(suffix))
}

func like(column, pattern string) *Predicate {
	return leaf(func(b *Builder) {
		b.Ident(column).WriteString(" LIKE ").Arg(pattern)
		if b.dialect == dialect.SQLite {
			b.WriteString(` ESCAPE '\'`)
		}
	})
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }

// Operators accepted by Compare.
var operators = map[string]bool{
	"=": true, "!=": true, "<>": true, "<": true, "<=": true, ">": true, ">=": true,
	"LIKE": true, "NOT LIKE": true, "IN": true, "NOT IN": true, "IS NULL": true, "IS NOT NULL": true,
}

// Compare returns the predicate "column op v" for an operator given as
// text. Operators are matched case-insensitively against a fixed list;
// anything else is rendered as a build error. A nil value with "=" or
// "!=" becomes IS NULL or IS NOT NULL. IN and NOT IN expand slices.
func Compare(column, op string, v any) *Predicate {
	op = strings.ToUpper(strings.Join(strings.Fields(op), " "))
	if !operators[op] {
		return leaf(func(b *Builder) { b.AddError(fmt.Errorf("sql: unsupported operator %q", op)) })
	}
	switch op {
	case "IS NULL":
		return IsNull(column)
	case "IS NOT NULL":
		return NotNull(column)
	case "IN":
		return In(column, Expand(v)...)
	case "NOT IN":
		return NotIn(column, Expand(v)...)
	case "=":
		if isNil(v) {
			return IsNull(column)
		}
	case "!=", "<>":
		if isNil(v) {
			return NotNull(column)
		}
		op = "<>"
	}
	return binary(column, op, v)
}

// Expand flattens a slice into its elements. Byte slices and other values
// are returned as a single element.
func Expand(v any) []any {
	if v == nil {
		return nil
	}
	if _, ok := v.([]byte); ok {
		return []any{v}
	}
	if vs, ok := v.([]any); ok {
		return vs
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return []any{v}
	}
	vs := make([]any, rv.Len())
	for i := range vs {
		vs[i] = rv.Index(i).Interface()
	}
	return vs
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
