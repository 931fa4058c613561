package relm_test

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/syssam/relm"
	"github.com/syssam/relm/schema"
	"github.com/syssam/relm/schema/field"
	"github.com/syssam/relm/schema/mixin"
	"github.com/syssam/relm/value"
)

// UserSchema is an auto-increment keyed definition with timestamps.
type UserSchema struct{ schema.Schema }

func (UserSchema) Mixin() []schema.Mixin {
	return []schema.Mixin{mixin.ID{}, mixin.Time{}}
}

func (UserSchema) Config() schema.Config {
	return schema.Config{Table: "users"}
}

func (UserSchema) Fields() []field.Field {
	return []field.Field{
		field.String("name"),
		field.Int64("age").Optional(),
		field.String("nickname").Nillable(),
		field.String("role").Default("member"),
	}
}

type User struct {
	relm.Entity
	ID        uint64
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Age       int64
	Nickname  *string
	Role      string
}

func (u *User) Field(column string) (any, error) {
	switch column {
	case "id":
		return u.ID, nil
	case "created_at":
		return u.CreatedAt, nil
	case "updated_at":
		return u.UpdatedAt, nil
	case "name":
		return u.Name, nil
	case "age":
		return u.Age, nil
	case "nickname":
		return u.Nickname, nil
	case "role":
		return u.Role, nil
	}
	return nil, fmt.Errorf("unknown user column %q", column)
}

func (u *User) SetField(column string, v any) error {
	var ok bool
	switch column {
	case "id":
		u.ID, ok = v.(uint64)
	case "created_at":
		u.CreatedAt, ok = v.(time.Time)
	case "updated_at":
		u.UpdatedAt, ok = v.(time.Time)
	case "role":
		u.Role, ok = v.(string)
	default:
		return fmt.Errorf("unexpected generated user column %q", column)
	}
	if !ok {
		return fmt.Errorf("unexpected type %T for user column %q", v, column)
	}
	return nil
}

func (u *User) ScanRow(row value.Row) (err error) {
	if u.ID, err = row.Uint64("id"); err != nil {
		return err
	}
	if u.CreatedAt, err = row.Time("created_at"); err != nil {
		return err
	}
	if u.UpdatedAt, err = row.Time("updated_at"); err != nil {
		return err
	}
	if u.Name, err = row.String("name"); err != nil {
		return err
	}
	if u.Age, err = row.Int64("age"); err != nil {
		return err
	}
	if u.Nickname, err = row.NullString("nickname"); err != nil {
		return err
	}
	u.Role, err = row.String("role")
	return err
}

// TokenSchema is a UUID keyed definition without timestamps.
type TokenSchema struct{ schema.Schema }

func (TokenSchema) Mixin() []schema.Mixin {
	return []schema.Mixin{mixin.UUID{Version: 7}}
}

func (TokenSchema) Config() schema.Config {
	return schema.Config{Table: "tokens"}
}

func (TokenSchema) Fields() []field.Field {
	return []field.Field{
		field.String("secret").Immutable(),
		field.Time("expires_at"),
	}
}

type Token struct {
	relm.Entity
	ID        uuid.UUID
	Secret    string
	ExpiresAt time.Time
}

func (t *Token) Field(column string) (any, error) {
	switch column {
	case "id":
		return t.ID, nil
	case "secret":
		return t.Secret, nil
	case "expires_at":
		return t.ExpiresAt, nil
	}
	return nil, fmt.Errorf("unknown token column %q", column)
}

func (t *Token) SetField(column string, v any) error {
	if column != "id" {
		return fmt.Errorf("unexpected generated token column %q", column)
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return fmt.Errorf("unexpected type %T for token column %q", v, column)
	}
	t.ID = id
	return nil
}

func (t *Token) ScanRow(row value.Row) (err error) {
	if t.ID, err = row.UUID("id"); err != nil {
		return err
	}
	if t.Secret, err = row.String("secret"); err != nil {
		return err
	}
	t.ExpiresAt, err = row.Time("expires_at")
	return err
}

var (
	userDesc  = schema.MustLoad(UserSchema{})
	tokenDesc = schema.MustLoad(TokenSchema{})
)

// clock is a deterministic time source advancing one second per reading.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(time.Second)
	return now
}

// peek returns the time of the next reading without advancing.
func (c *clock) peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func ptr[T any](v T) *T { return &v }
