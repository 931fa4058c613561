package relm

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/syssam/relm/dialect"
	"github.com/syssam/relm/dialect/sql"
	"github.com/syssam/relm/schema"
	"github.com/syssam/relm/value"
)

// Option configures a Model.
type Option func(*options)

type options struct {
	now    func() time.Time
	logger *slog.Logger
}

// WithClock sets the clock used for timestamp columns. Default is time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithLogger sets the logger receiving record lifecycle events at debug
// level. Default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Model binds a record type to its descriptor and an executor.
// A Model is safe for concurrent use.
//
//	var Users = relm.NewModel[User](drv, schema.MustLoad(UserSchema{}))
//
//	u := &User{Email: "a@example.com"}
//	if err := Users.Save(ctx, u); err != nil {
//	    return err
//	}
type Model[T any, P interface {
	*T
	Record
}] struct {
	exec    dialect.ExecQuerier
	dialect string
	desc    *schema.Descriptor
	opts    options
}

// NewModel returns a model running its statements on drv.
func NewModel[T any, P interface {
	*T
	Record
}](drv dialect.Driver, desc *schema.Descriptor, opts ...Option) *Model[T, P] {
	m := &Model[T, P]{
		exec:    drv,
		dialect: drv.Dialect(),
		desc:    desc,
		opts: options{
			now:    time.Now,
			logger: slog.New(slog.DiscardHandler),
		},
	}
	for _, opt := range opts {
		opt(&m.opts)
	}
	return m
}

// Tx returns a copy of the model running its statements on tx. The
// transaction is owned by the caller, who commits or rolls it back.
func (m *Model[T, P]) Tx(tx dialect.ExecQuerier) *Model[T, P] {
	c := *m
	c.exec = tx
	return &c
}

// Descriptor returns the descriptor of the record type.
func (m *Model[T, P]) Descriptor() *schema.Descriptor { return m.desc }

// Dialect returns the dialect statements are rendered for.
func (m *Model[T, P]) Dialect() string { return m.dialect }

// Query returns a new query on the model's table.
func (m *Model[T, P]) Query() *Query[T, P] {
	return &Query[T, P]{model: m}
}

// Find returns the record with the given primary key. A missing row is
// reported as a *NotFoundError.
func (m *Model[T, P]) Find(ctx context.Context, key any) (P, error) {
	rec, err := m.Query().Where(m.desc.PrimaryKey().Name, "=", key).First(ctx)
	if IsNotFound(err) {
		return nil, NewNotFoundErrorWithKey(m.desc.Table(), key)
	}
	return rec, err
}

// All returns every record of the table.
func (m *Model[T, P]) All(ctx context.Context) ([]P, error) {
	return m.Query().Get(ctx)
}

// Create inserts rec as a new record, regardless of its current state,
// and returns it with its generated key and timestamps populated.
func (m *Model[T, P]) Create(ctx context.Context, rec P) (P, error) {
	rec.entity().state = StateNew
	if err := m.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Save inserts a new record or updates a persisted one, writing generated
// keys, defaults and timestamps back onto rec.
func (m *Model[T, P]) Save(ctx context.Context, rec P) error {
	var (
		now  = m.opts.now().Round(0).UTC()
		undo fieldUndo
		err  error
	)
	if rec.entity().IsNew() {
		err = m.insert(ctx, rec, now, &undo)
	} else {
		err = m.update(ctx, rec, now, &undo)
	}
	if err != nil {
		undo.restore(rec)
	}
	return err
}

// fieldUndo records the fields a save overwrote, so a failed write leaves
// the record with the values the caller gave it.
type fieldUndo []fieldValue

type fieldValue struct {
	name string
	prev any
}

func (u *fieldUndo) set(rec Record, name string, v any) error {
	prev, err := rec.Field(name)
	if err != nil {
		return err
	}
	if err := rec.SetField(name, v); err != nil {
		return err
	}
	*u = append(*u, fieldValue{name: name, prev: prev})
	return nil
}

func (u fieldUndo) restore(rec Record) {
	for i := len(u) - 1; i >= 0; i-- {
		_ = rec.SetField(u[i].name, u[i].prev)
	}
}

func (m *Model[T, P]) insert(ctx context.Context, rec P, now time.Time, undo *fieldUndo) error {
	var (
		pk    = m.desc.PrimaryKey()
		table = m.desc.Table()
		ins   = sql.Dialect(m.dialect).Insert(table)
	)
	for _, c := range m.desc.Columns() {
		if m.desc.Generated(c.Name) {
			switch {
			case c.Incrementing:
				continue
			case c.Primary:
				if err := m.generateKey(rec, c, undo); err != nil {
					return err
				}
			default:
				if err := undo.set(rec, c.Name, now); err != nil {
					return err
				}
			}
		}
		v, err := rec.Field(c.Name)
		if err != nil {
			return err
		}
		if isZero(v) {
			switch {
			case c.HasDefault():
				v = c.DefaultValue()
				if err := undo.set(rec, c.Name, v); err != nil {
					return err
				}
			case !c.Optional && !c.Nillable:
				return NewValidationError(c.Name, ErrRequired)
			}
		}
		ins.Set(c.Name, v)
	}
	if !pk.Incrementing {
		if err := m.execInsert(ctx, ins); err != nil {
			return err
		}
		return m.persisted(ctx, rec, "record inserted")
	}
	key, err := m.insertReturning(ctx, ins.Returning(pk.Name))
	if err != nil {
		return err
	}
	if err := rec.SetField(pk.Name, key); err != nil {
		return &PartialPersistError{Table: table, Err: err}
	}
	return m.persisted(ctx, rec, "record inserted")
}

// generateKey assigns a UUID key of the declared version, unless the
// caller already set one.
func (m *Model[T, P]) generateKey(rec P, c schema.Column, undo *fieldUndo) error {
	cur, err := rec.Field(c.Name)
	if err != nil {
		return err
	}
	if id, ok := cur.(uuid.UUID); ok && id != uuid.Nil {
		return nil
	}
	gen := uuid.NewRandom
	if c.UUIDVersion == 7 {
		gen = uuid.NewV7
	}
	id, err := gen()
	if err != nil {
		return fmt.Errorf("relm: generate %s key: %w", m.desc.Table(), err)
	}
	return undo.set(rec, c.Name, id)
}

func (m *Model[T, P]) execInsert(ctx context.Context, ins *sql.InsertBuilder) error {
	if err := ins.Err(); err != nil {
		return NewMutationError(m.desc.Table(), "insert", err)
	}
	query, args := ins.Query()
	if err := m.exec.Exec(ctx, query, args, nil); err != nil {
		return mutationError(m.desc.Table(), "insert", err)
	}
	return nil
}

// insertReturning runs the insert and reads back the store-assigned key:
// through RETURNING on Postgres, through LastInsertId elsewhere. Failures
// after the row was written are reported as *PartialPersistError.
func (m *Model[T, P]) insertReturning(ctx context.Context, ins *sql.InsertBuilder) (uint64, error) {
	table := m.desc.Table()
	if err := ins.Err(); err != nil {
		return 0, NewMutationError(table, "insert", err)
	}
	query, args := ins.Query()
	if m.dialect == dialect.Postgres {
		rows := &sql.Rows{}
		if err := m.exec.Query(ctx, query, args, rows); err != nil {
			return 0, mutationError(table, "insert", err)
		}
		rs, err := sql.ScanRows(rows)
		switch {
		case sql.IsConstraintError(err):
			return 0, mutationError(table, "insert", err)
		case err != nil:
			return 0, &PartialPersistError{Table: table, Err: err}
		}
		if len(rs) != 1 {
			return 0, &PartialPersistError{Table: table, Err: fmt.Errorf("returned %d rows", len(rs))}
		}
		key, err := value.Column(rs[0], m.desc.PrimaryKey().Name, value.Uint64)
		if err != nil {
			return 0, &PartialPersistError{Table: table, Err: err}
		}
		return key, nil
	}
	var res sql.Result
	if err := m.exec.Exec(ctx, query, args, &res); err != nil {
		return 0, mutationError(table, "insert", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &PartialPersistError{Table: table, Err: err}
	}
	if id <= 0 {
		return 0, &PartialPersistError{Table: table, Err: fmt.Errorf("invalid last insert id %d", id)}
	}
	return uint64(id), nil
}

func (m *Model[T, P]) update(ctx context.Context, rec P, now time.Time, undo *fieldUndo) error {
	pk := m.desc.PrimaryKey()
	key, err := rec.Field(pk.Name)
	if err != nil {
		return err
	}
	ts, ok := m.desc.Timestamps()
	if ok {
		if err := undo.set(rec, ts.UpdatedAt, now); err != nil {
			return err
		}
	}
	upd := sql.Dialect(m.dialect).Update(m.desc.Table())
	for _, c := range m.desc.Columns() {
		if c.Primary || c.Immutable || (ok && c.Name == ts.CreatedAt) {
			continue
		}
		v, err := rec.Field(c.Name)
		if err != nil {
			return err
		}
		upd.Set(c.Name, v)
	}
	if upd.Empty() {
		return m.persisted(ctx, rec, "record updated")
	}
	upd.Where(sql.EQ(pk.Name, key))
	if _, err := m.execAffected(ctx, "update", upd); err != nil {
		return err
	}
	return m.persisted(ctx, rec, "record updated")
}

// Delete deletes the row of rec and returns the number of affected rows.
// Zero means the row was already gone. The instance keeps its field values.
func (m *Model[T, P]) Delete(ctx context.Context, rec P) (int64, error) {
	pk := m.desc.PrimaryKey()
	key, err := rec.Field(pk.Name)
	if err != nil {
		return 0, err
	}
	n, err := m.Query().Where(pk.Name, "=", key).Delete(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		rec.entity().state = StateDeleted
		m.opts.logger.LogAttrs(ctx, slog.LevelDebug, "record deleted",
			slog.String("table", m.desc.Table()),
			slog.Any("key", key),
		)
	}
	return n, nil
}

// Fresh reloads rec from the store and returns a new, independent record.
// rec itself is not modified.
func (m *Model[T, P]) Fresh(ctx context.Context, rec P) (P, error) {
	key, err := rec.Field(m.desc.PrimaryKey().Name)
	if err != nil {
		return nil, err
	}
	return m.Find(ctx, key)
}

func (m *Model[T, P]) persisted(ctx context.Context, rec P, msg string) error {
	rec.entity().state = StatePersisted
	if m.opts.logger.Enabled(ctx, slog.LevelDebug) {
		key, _ := rec.Field(m.desc.PrimaryKey().Name)
		m.opts.logger.LogAttrs(ctx, slog.LevelDebug, msg,
			slog.String("table", m.desc.Table()),
			slog.Any("key", key),
		)
	}
	return nil
}

// execAffected runs a mutation and returns the affected row count.
func (m *Model[T, P]) execAffected(ctx context.Context, op string, stmt sql.Statement) (int64, error) {
	n, err := sql.ExecAffected(ctx, m.exec, stmt)
	if err != nil {
		return 0, mutationError(m.desc.Table(), op, err)
	}
	return n, nil
}

// decode hydrates one record per row, marking each as persisted.
func (m *Model[T, P]) decode(rows []value.Row) ([]P, error) {
	recs := make([]P, 0, len(rows))
	for _, row := range rows {
		rec := P(new(T))
		if err := rec.ScanRow(row); err != nil {
			return nil, err
		}
		rec.entity().state = StatePersisted
		recs = append(recs, rec)
	}
	return recs, nil
}

func isZero(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}
