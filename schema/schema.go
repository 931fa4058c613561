package schema

import (
	"reflect"

	"github.com/go-openapi/inflect"

	"github.com/syssam/relm/schema/field"
)

// Mixin is a reusable set of fields.
type Mixin interface {
	Fields() []field.Field
}

// Config holds the per-type configuration of a definition.
type Config struct {
	// Table overrides the default table name.
	Table string
}

// Definition is the interface implemented by record definitions.
// Embed Schema to get the default implementations.
type Definition interface {
	Fields() []field.Field
	Mixin() []Mixin
	Config() Config
}

// Schema is the default implementation of Definition.
//
//	type Pet struct{ schema.Schema }
type Schema struct{}

// Fields returns the fields of the definition.
func (Schema) Fields() []field.Field { return nil }

// Mixin returns the mixins of the definition.
func (Schema) Mixin() []Mixin { return nil }

// Config returns the configuration of the definition.
func (Schema) Config() Config { return Config{} }

var _ Definition = (*Schema)(nil)

// Load builds the descriptor of a definition. Mixin fields come first, in
// mixin order, followed by the definition's own fields.
func Load(def Definition) (*Descriptor, error) {
	table := def.Config().Table
	if table == "" {
		table = TableName(typeName(def))
	}
	var fields []field.Field
	for _, m := range def.Mixin() {
		fields = append(fields, m.Fields()...)
	}
	fields = append(fields, def.Fields()...)
	return New(table, fields...)
}

// MustLoad is like Load but panics on error. It is meant for package-level
// registration of record types.
func MustLoad(def Definition) *Descriptor {
	d, err := Load(def)
	if err != nil {
		panic(err)
	}
	return d
}

// TableName returns the default table name of a type name:
// the pluralized snake_case form.
func TableName(typeName string) string {
	return inflect.Pluralize(inflect.Underscore(typeName))
}

func typeName(def Definition) string {
	t := reflect.TypeOf(def)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
