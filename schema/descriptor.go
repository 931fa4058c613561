package schema

import (
	"reflect"

	"github.com/syssam/relm/schema/field"
)

// Default names of the timestamp columns, recognized on time fields that
// are not explicitly flagged.
const (
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)

// Column describes a single column of a record type.
type Column struct {
	Name         string
	Type         field.Type
	Primary      bool
	Incrementing bool // store-assigned key
	UUIDVersion  int  // version of generated keys, UUID primary keys only
	Nillable     bool
	Optional     bool
	Immutable    bool
	Default      any // literal value or func() T
}

// HasDefault reports whether the column declares a default value.
func (c Column) HasDefault() bool { return c.Default != nil }

// DefaultValue returns the default of the column, calling it when the
// default is a function.
func (c Column) DefaultValue() any {
	switch d := c.Default.(type) {
	case nil:
		return nil
	case func() any:
		return d()
	}
	if rv := reflect.ValueOf(c.Default); rv.Kind() == reflect.Func && rv.Type().NumIn() == 0 && rv.Type().NumOut() == 1 {
		return rv.Call(nil)[0].Interface()
	}
	return c.Default
}

// Timestamps holds the names of the lifecycle timestamp columns.
type Timestamps struct {
	CreatedAt string
	UpdatedAt string
}

// Descriptor is the immutable description of a record type: its table,
// its ordered columns, its primary key and its timestamp columns.
type Descriptor struct {
	table   string
	columns []Column
	index   map[string]int
	pk      int
	ts      *Timestamps
}

// New builds a descriptor from a table name and its fields.
func New(table string, fields ...field.Field) (*Descriptor, error) {
	if table == "" {
		return nil, &ConfigurationError{Message: "missing table name"}
	}
	d := &Descriptor{
		table: table,
		index: make(map[string]int, len(fields)),
		pk:    -1,
	}
	var created, updated []string
	for _, f := range fields {
		fd := f.Descriptor()
		if fd.Err != nil {
			return nil, &ConfigurationError{Table: table, Column: fd.Name, Err: fd.Err}
		}
		if !fd.Info.Type.Valid() {
			return nil, &ConfigurationError{Table: table, Column: fd.Name, Message: "invalid field type"}
		}
		if _, ok := d.index[fd.Name]; ok {
			return nil, &ConfigurationError{Table: table, Column: fd.Name, Message: "duplicate column"}
		}
		c := Column{
			Name:      fd.Name,
			Type:      fd.Info.Type,
			Primary:   fd.Primary,
			Nillable:  fd.Nillable,
			Optional:  fd.Optional,
			Immutable: fd.Immutable,
			Default:   fd.Default,
		}
		if c.Primary {
			if d.pk >= 0 {
				return nil, &ConfigurationError{
					Table:   table,
					Column:  fd.Name,
					Message: "composite primary keys are not supported: " + d.columns[d.pk].Name + " is already the primary key",
				}
			}
			if c.Nillable {
				return nil, &ConfigurationError{Table: table, Column: fd.Name, Message: "primary key cannot be nillable"}
			}
			switch c.Type {
			case field.TypeUint64:
				c.Incrementing = !fd.NoIncrement
			case field.TypeUUID:
				c.UUIDVersion = fd.UUIDVersion
				if c.UUIDVersion == 0 {
					c.UUIDVersion = 4
				}
			}
			c.Immutable = true
			d.pk = len(d.columns)
		}
		switch {
		case fd.CreateTime:
			created = append(created, fd.Name)
		case fd.UpdateTime:
			updated = append(updated, fd.Name)
		}
		d.index[c.Name] = len(d.columns)
		d.columns = append(d.columns, c)
	}
	if d.pk < 0 {
		return nil, &ConfigurationError{Table: table, Message: "missing primary key"}
	}
	if len(created) > 1 || len(updated) > 1 {
		return nil, &ConfigurationError{Table: table, Message: "multiple timestamp columns of the same kind"}
	}
	createdAt, updatedAt := d.timestamp(created, CreatedAt), d.timestamp(updated, UpdatedAt)
	if createdAt != "" && updatedAt != "" {
		d.ts = &Timestamps{CreatedAt: createdAt, UpdatedAt: updatedAt}
	}
	return d, nil
}

// MustNew is like New but panics on error.
func MustNew(table string, fields ...field.Field) *Descriptor {
	d, err := New(table, fields...)
	if err != nil {
		panic(err)
	}
	return d
}

// timestamp returns the flagged column, or the conventionally named time
// column when none is flagged.
func (d *Descriptor) timestamp(flagged []string, name string) string {
	if len(flagged) == 1 {
		return flagged[0]
	}
	if i, ok := d.index[name]; ok && d.columns[i].Type == field.TypeTime {
		return name
	}
	return ""
}

// Table returns the table name.
func (d *Descriptor) Table() string { return d.table }

// Columns returns the columns in declaration order.
func (d *Descriptor) Columns() []Column {
	return append([]Column(nil), d.columns...)
}

// ColumnNames returns the column names in declaration order.
func (d *Descriptor) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column.
func (d *Descriptor) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// PrimaryKey returns the primary-key column.
func (d *Descriptor) PrimaryKey() Column { return d.columns[d.pk] }

// Timestamps returns the timestamp columns, if the record type declares both.
func (d *Descriptor) Timestamps() (Timestamps, bool) {
	if d.ts == nil {
		return Timestamps{}, false
	}
	return *d.ts, true
}

// Generated reports whether the runtime, not the caller, supplies the
// column value on insert.
func (d *Descriptor) Generated(column string) bool {
	c, ok := d.Column(column)
	switch {
	case !ok:
		return false
	case c.Primary && (c.Incrementing || c.UUIDVersion != 0):
		return true
	case d.ts != nil:
		return column == d.ts.CreatedAt || column == d.ts.UpdatedAt
	}
	return false
}
