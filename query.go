package relm

import (
	"context"
	"fmt"
	"slices"

	"github.com/syssam/relm/dialect/sql"
	"github.com/syssam/relm/value"
)

// Assignment is a column update of Query.Update.
type Assignment struct {
	Column string
	Value  any
}

// Set returns the assignment of v to column.
func Set(column string, v any) Assignment {
	return Assignment{Column: column, Value: v}
}

type order struct {
	column string
	dir    sql.Direction
}

// Query accumulates constraints, sort keys and pagination for one table.
// The fluent methods mutate the query and return it. Terminal methods
// render and execute the current state; calling one twice runs two round
// trips and nothing is cached. A Query is not safe for concurrent use and
// owns no resource, so an unused one can simply be dropped.
type Query[T any, P interface {
	*T
	Record
}] struct {
	model *Model[T, P]
	// groups holds the constraints: predicates within a group are joined
	// with AND, groups with OR.
	groups [][]*sql.Predicate
	order  []order
	limit  *int
	offset *int
}

// Where appends the constraint "column op v", joined with AND to the
// previous ones. Supported operators are =, !=, <>, <, <=, >, >=, LIKE,
// NOT LIKE, IN, NOT IN, IS NULL and IS NOT NULL.
//
//	users.Query().Where("age", ">=", 18).Where("status", "IN", []string{"active", "trial"})
func (q *Query[T, P]) Where(column, op string, v any) *Query[T, P] {
	return q.WhereP(sql.Compare(column, op, v))
}

// OrWhere starts a new constraint group joined with OR to the previous
// ones. Later Where calls extend the new group.
//
//	// WHERE a = 1 AND b = 2 OR c = 3
//	q.Where("a", "=", 1).Where("b", "=", 2).OrWhere("c", "=", 3)
func (q *Query[T, P]) OrWhere(column, op string, v any) *Query[T, P] {
	q.groups = append(q.groups, []*sql.Predicate{sql.Compare(column, op, v)})
	return q
}

// WhereP appends predicates built with the dialect/sql helpers, joined
// with AND to the previous ones.
func (q *Query[T, P]) WhereP(preds ...*sql.Predicate) *Query[T, P] {
	if len(preds) == 0 {
		return q
	}
	if len(q.groups) == 0 {
		q.groups = append(q.groups, nil)
	}
	last := len(q.groups) - 1
	q.groups[last] = append(q.groups[last], preds...)
	return q
}

// OrderBy appends a sort key.
func (q *Query[T, P]) OrderBy(column string, dir sql.Direction) *Query[T, P] {
	q.order = append(q.order, order{column: column, dir: dir})
	return q
}

// Take limits the number of returned records.
func (q *Query[T, P]) Take(n int) *Query[T, P] {
	q.limit = &n
	return q
}

// Skip skips the first n records.
func (q *Query[T, P]) Skip(n int) *Query[T, P] {
	q.offset = &n
	return q
}

// Clone returns a copy of the query. Changes to the copy do not affect q.
func (q *Query[T, P]) Clone() *Query[T, P] {
	c := &Query[T, P]{
		model:  q.model,
		groups: make([][]*sql.Predicate, len(q.groups)),
		order:  slices.Clone(q.order),
		limit:  q.limit,
		offset: q.offset,
	}
	for i, g := range q.groups {
		c.groups[i] = slices.Clone(g)
	}
	return c
}

// Constrained reports whether the query has at least one constraint.
func (q *Query[T, P]) Constrained() bool {
	for _, g := range q.groups {
		if len(g) > 0 {
			return true
		}
	}
	return false
}

func (q *Query[T, P]) predicate() *sql.Predicate {
	return sql.OrGroups(q.groups...)
}

func (q *Query[T, P]) selector() *sql.Selector {
	desc := q.model.desc
	sel := sql.Dialect(q.model.dialect).
		Select(desc.ColumnNames()...).
		From(desc.Table()).
		Where(q.predicate())
	for _, o := range q.order {
		sel.OrderBy(o.column, o.dir)
	}
	if q.limit != nil {
		sel.Limit(*q.limit)
	}
	if q.offset != nil {
		sel.Offset(*q.offset)
	}
	return sel
}

// SQL renders the SELECT statement Get would run, without running it.
func (q *Query[T, P]) SQL() (string, []any, error) {
	sel := q.selector()
	if err := sel.Err(); err != nil {
		return "", nil, err
	}
	query, args := sel.Query()
	return query, args, nil
}

// Get returns every matching record. No match is an empty slice, not an error.
func (q *Query[T, P]) Get(ctx context.Context) ([]P, error) {
	rows, err := q.query(ctx, "select", q.selector())
	if err != nil {
		return nil, err
	}
	recs, err := q.model.decode(rows)
	if err != nil {
		return nil, NewQueryError(q.model.desc.Table(), "select", err)
	}
	return recs, nil
}

// First returns the first matching record, or a *NotFoundError. The query
// itself is not modified.
func (q *Query[T, P]) First(ctx context.Context) (P, error) {
	recs, err := q.Clone().Take(1).Get(ctx)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, NewNotFoundError(q.model.desc.Table())
	}
	return recs[0], nil
}

// Count returns the number of matching rows. Sort keys and pagination are
// ignored.
func (q *Query[T, P]) Count(ctx context.Context) (int64, error) {
	table := q.model.desc.Table()
	sel := sql.Dialect(q.model.dialect).Select().Count().From(table).Where(q.predicate())
	n, err := sql.QueryInt64(ctx, q.model.exec, sel)
	if err != nil {
		return 0, NewQueryError(table, "count", err)
	}
	return n, nil
}

// Exists reports whether at least one row matches.
func (q *Query[T, P]) Exists(ctx context.Context) (bool, error) {
	desc := q.model.desc
	sel := sql.Dialect(q.model.dialect).
		Select(desc.PrimaryKey().Name).
		From(desc.Table()).
		Where(q.predicate()).
		Limit(1)
	rows, err := q.query(ctx, "exist", sel)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (q *Query[T, P]) query(ctx context.Context, op string, sel *sql.Selector) ([]value.Row, error) {
	rows, err := sql.QueryRows(ctx, q.model.exec, sel)
	if err != nil {
		return nil, NewQueryError(q.model.desc.Table(), op, err)
	}
	return rows, nil
}

// Update applies the assignments to every matching row and returns the
// number of affected rows. A query without constraints fails with
// ErrUnconstrained and sends nothing; use UpdateAll to update every row.
// The update timestamp column is set to the current time unless assigned.
func (q *Query[T, P]) Update(ctx context.Context, sets ...Assignment) (int64, error) {
	if !q.Constrained() {
		return 0, ErrUnconstrained
	}
	return q.update(ctx, sets)
}

// UpdateAll is like Update but accepts a query without constraints, in
// which case every row of the table is updated.
func (q *Query[T, P]) UpdateAll(ctx context.Context, sets ...Assignment) (int64, error) {
	return q.update(ctx, sets)
}

func (q *Query[T, P]) update(ctx context.Context, sets []Assignment) (int64, error) {
	m := q.model
	upd := sql.Dialect(m.dialect).Update(m.desc.Table())
	stamped := false
	ts, ok := m.desc.Timestamps()
	for _, s := range sets {
		c, found := m.desc.Column(s.Column)
		if !found {
			return 0, NewMutationError(m.desc.Table(), "update", fmt.Errorf("unknown column %q", s.Column))
		}
		if c.Primary {
			return 0, NewMutationError(m.desc.Table(), "update", fmt.Errorf("primary key %q cannot be updated", s.Column))
		}
		stamped = stamped || (ok && c.Name == ts.UpdatedAt)
		upd.Set(c.Name, s.Value)
	}
	if ok && !stamped {
		upd.Set(ts.UpdatedAt, m.opts.now().Round(0).UTC())
	}
	upd.Where(q.predicate())
	return m.execAffected(ctx, "update", upd)
}

// Delete deletes every matching row and returns the number of affected
// rows. A query without constraints fails with ErrUnconstrained and sends
// nothing; use DeleteAll to delete every row.
func (q *Query[T, P]) Delete(ctx context.Context) (int64, error) {
	if !q.Constrained() {
		return 0, ErrUnconstrained
	}
	return q.DeleteAll(ctx)
}

// DeleteAll is like Delete but accepts a query without constraints, in
// which case every row of the table is deleted.
func (q *Query[T, P]) DeleteAll(ctx context.Context) (int64, error) {
	m := q.model
	del := sql.Dialect(m.dialect).Delete(m.desc.Table()).Where(q.predicate())
	return m.execAffected(ctx, "delete", del)
}

// Truncate removes every row of the table and restarts its identity
// sequence, so the next insert gets the first key again. Constraints
// are ignored.
func (q *Query[T, P]) Truncate(ctx context.Context) error {
	table := q.model.desc.Table()
	if err := sql.TruncateTable(ctx, q.model.exec, q.model.dialect, table); err != nil {
		return mutationError(table, "truncate", err)
	}
	return nil
}
