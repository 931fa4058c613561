package relm_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relm"
	"github.com/syssam/relm/dialect/sql"
)

func TestNotFoundError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := relm.NewNotFoundError("users")
		assert.Equal(t, "relm: users not found", err.Error())
	})

	t.Run("ErrorWithKey", func(t *testing.T) {
		err := relm.NewNotFoundErrorWithKey("users", uint64(42))
		assert.Equal(t, "relm: users not found (key=42)", err.Error())
		assert.Equal(t, "users", err.Table())
		assert.Equal(t, uint64(42), err.Key())
	})

	t.Run("Is", func(t *testing.T) {
		err := relm.NewNotFoundError("posts")
		assert.True(t, errors.Is(err, relm.ErrNotFound))
	})

	t.Run("IsNotFound", func(t *testing.T) {
		err := relm.NewNotFoundError("comments")
		assert.True(t, relm.IsNotFound(err))

		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, relm.IsNotFound(wrapped))

		assert.False(t, relm.IsNotFound(nil))
		assert.False(t, relm.IsNotFound(errors.New("other")))
	})
}

func TestConstraintError(t *testing.T) {
	cause := &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"}
	err := relm.NewConstraintError("insert users", cause)

	assert.True(t, relm.IsConstraintError(err))
	assert.True(t, relm.IsConstraintError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, relm.IsConstraintError(nil))
	assert.False(t, relm.IsConstraintError(errors.New("other")))

	var ce relm.ConstraintError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, sql.UniqueConstraint, ce.Kind)
	assert.Contains(t, err.Error(), "unique constraint failed")
	assert.Contains(t, err.Error(), "insert users")

	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr), "store error must stay reachable")
	assert.Same(t, cause, pqErr)
}

func TestValidationError(t *testing.T) {
	err := relm.NewValidationError("email", relm.ErrRequired)
	assert.Equal(t, `relm: validator failed for column "email": value required`, err.Error())
	assert.True(t, relm.IsValidationError(err))
	assert.True(t, errors.Is(err, relm.ErrRequired))
	assert.False(t, relm.IsValidationError(errors.New("other")))
	assert.False(t, relm.IsValidationError(nil))
}

func TestPartialPersistError(t *testing.T) {
	cause := errors.New("LastInsertId is not supported")
	err := error(&relm.PartialPersistError{Table: "users", Err: cause})
	assert.True(t, relm.IsPartialPersist(err))
	assert.True(t, relm.IsPartialPersist(fmt.Errorf("save: %w", err)))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "users row inserted")
	assert.False(t, relm.IsPartialPersist(nil))
}

func TestQueryError(t *testing.T) {
	cause := errors.New("connection refused")

	t.Run("WithOp", func(t *testing.T) {
		err := relm.NewQueryError("users", "select", cause)
		assert.Equal(t, "relm: querying users (select): connection refused", err.Error())
		assert.ErrorIs(t, err, cause)
		assert.True(t, relm.IsQueryError(err))
	})

	t.Run("WithoutOp", func(t *testing.T) {
		err := relm.NewQueryError("users", "", cause)
		assert.Equal(t, "relm: querying users: connection refused", err.Error())
	})

	assert.False(t, relm.IsQueryError(cause))
	assert.False(t, relm.IsQueryError(nil))
}

func TestMutationError(t *testing.T) {
	cause := errors.New("deadlock detected")
	err := relm.NewMutationError("users", "update", cause)
	assert.Equal(t, "relm: update users: deadlock detected", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, relm.IsMutationError(err))
	assert.False(t, relm.IsMutationError(cause))
	assert.False(t, relm.IsMutationError(nil))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "new", relm.StateNew.String())
	assert.Equal(t, "persisted", relm.StatePersisted.String())
	assert.Equal(t, "deleted", relm.StateDeleted.String())
	assert.Equal(t, "invalid", relm.State(9).String())
}
