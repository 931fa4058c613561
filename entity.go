package relm

import "github.com/syssam/relm/value"

// State is the lifecycle state of a record instance.
type State uint8

// Record states.
const (
	// StateNew is the state of a record that was never persisted.
	StateNew State = iota
	// StatePersisted is the state of a record inserted or loaded from the store.
	StatePersisted
	// StateDeleted is the state of a record whose row was deleted. The
	// instance keeps its stale field values; saving it again is undefined.
	StateDeleted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StatePersisted:
		return "persisted"
	case StateDeleted:
		return "deleted"
	}
	return "invalid"
}

// Entity carries the lifecycle state of a record. Embed it in every record
// struct:
//
//	type User struct {
//	    relm.Entity
//	    ID    uint64
//	    Email string
//	}
//
// The zero value is a new, never persisted record.
type Entity struct {
	state State
}

// State returns the lifecycle state.
func (e *Entity) State() State { return e.state }

// IsNew reports whether the record was never persisted. Save inserts new
// records and updates the others.
func (e *Entity) IsNew() bool { return e.state == StateNew }

func (e *Entity) entity() *Entity { return e }

// Record is implemented by pointers to record structs. Field and SetField
// map column names to struct fields; ScanRow hydrates the struct from a
// result row, typically through the value.Row accessors.
type Record interface {
	entity() *Entity
	// Field returns the value of the named column.
	Field(column string) (any, error)
	// SetField assigns a generated or defaulted value to the named column.
	SetField(column string, v any) error
	// ScanRow decodes a result row into the record.
	ScanRow(row value.Row) error
}
