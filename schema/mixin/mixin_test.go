package mixin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relm/schema"
	"github.com/syssam/relm/schema/field"
	"github.com/syssam/relm/schema/mixin"
)

func TestSchemaBaseMixin(t *testing.T) {
	assert.Nil(t, mixin.Schema{}.Fields())
}

func TestID(t *testing.T) {
	fields := mixin.ID{}.Fields()
	require.Len(t, fields, 1)
	d := fields[0].Descriptor()
	assert.Equal(t, "id", d.Name)
	assert.Equal(t, field.TypeUint64, d.Info.Type)
	assert.True(t, d.Primary)
	assert.False(t, d.NoIncrement)
}

func TestUUID(t *testing.T) {
	t.Run("default_version", func(t *testing.T) {
		d := mixin.UUID{}.Fields()[0].Descriptor()
		assert.Equal(t, field.TypeUUID, d.Info.Type)
		assert.Zero(t, d.UUIDVersion)
		desc, err := schema.New("tokens", mixin.UUID{}.Fields()...)
		require.NoError(t, err)
		assert.Equal(t, 4, desc.PrimaryKey().UUIDVersion)
	})
	t.Run("v7", func(t *testing.T) {
		d := mixin.UUID{Version: 7}.Fields()[0].Descriptor()
		assert.Equal(t, 7, d.UUIDVersion)
		assert.NoError(t, d.Err)
	})
	t.Run("unsupported_version", func(t *testing.T) {
		d := mixin.UUID{Version: 1}.Fields()[0].Descriptor()
		assert.Error(t, d.Err)
	})
}

func TestTime(t *testing.T) {
	fields := mixin.Time{}.Fields()
	require.Len(t, fields, 2)

	created := fields[0].Descriptor()
	assert.Equal(t, "created_at", created.Name)
	assert.True(t, created.CreateTime)
	assert.True(t, created.Immutable)

	updated := fields[1].Descriptor()
	assert.Equal(t, "updated_at", updated.Name)
	assert.True(t, updated.UpdateTime)
	assert.False(t, updated.Immutable)
}

func TestTimeAlone(t *testing.T) {
	d, err := schema.New("events", append(mixin.ID{}.Fields(), mixin.CreateTime{}.Fields()...)...)
	require.NoError(t, err)
	_, ok := d.Timestamps()
	assert.False(t, ok, "timestamps require both columns")
}
