package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facetframe/facet/pkg/types"
)

// newTestBackend attaches a backend in a temp dir and detaches it on
// cleanup.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackendAttach(t *testing.T) {
	tmpDir := t.TempDir()
	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	if _, err := os.Stat(filepath.Join(tmpDir, "facet.db")); os.IsNotExist(err) {
		t.Error("facet.db not created")
	}
	assert.Equal(t, types.ErrAlreadyAttached, b.Attach(config))
}

func TestBackendAttachRejectsBadConfig(t *testing.T) {
	b := NewBackend()
	assert.Equal(t, types.ErrBackendEmpty, b.Attach(types.Config{}))
	assert.Equal(t, types.ErrBackendUnknown, b.Attach(types.Config{Backend: "redis"}))
}

func TestBackendDetach(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))

	require.NoError(t, b.Detach())
	require.NoError(t, b.Detach(), "Detach must be idempotent")

	_, err := b.Collection(types.CollectionObjects)
	assert.Equal(t, types.ErrStoreDetached, err)
}

func TestBackendCollectionNames(t *testing.T) {
	b := newTestBackend(t)
	for _, name := range types.StandardCollectionNames {
		_, err := b.Collection(name)
		assert.NoError(t, err, name)
	}
	_, err := b.Collection("widgets")
	assert.Equal(t, types.ErrCollectionNotFound, err)
}

func TestPropertyDefRoundTrip(t *testing.T) {
	b := newTestBackend(t)
	coll, err := b.Collection(types.CollectionPropertyDefs)
	require.NoError(t, err)

	def := &types.PropertyDefinition{Name: "FirstName", DataType: types.DataTypeText}
	id, err := coll.Set("", def)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	entity, err := coll.Get(id)
	require.NoError(t, err)
	got := entity.(*types.PropertyDefinition)
	assert.Equal(t, "FirstName", got.Name)
	assert.Equal(t, types.DataTypeText, got.DataType)
	assert.Empty(t, got.RequiredFor)

	// Update preserves the ID and the required-for index.
	got.RequiredFor = []string{"t1"}
	_, err = coll.Set(id, got)
	require.NoError(t, err)
	entity, err = coll.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, entity.(*types.PropertyDefinition).RequiredFor)
}

func TestObjectTypeRoundTripPreservesOrder(t *testing.T) {
	b := newTestBackend(t)
	coll, err := b.Collection(types.CollectionObjectTypes)
	require.NoError(t, err)

	objectType := &types.ObjectType{
		User:         "u1",
		Name:         "Person",
		NameProperty: "p1",
		Properties:   []string{"p1", "p2", "p3"},
	}
	id, err := coll.Set("", objectType)
	require.NoError(t, err)

	entity, err := coll.Get(id)
	require.NoError(t, err)
	got := entity.(*types.ObjectType)
	assert.Equal(t, []string{"p1", "p2", "p3"}, got.Properties)
	assert.Equal(t, "u1", got.User)

	// Rewriting the list replaces it wholesale.
	got.Properties = []string{"p3", "p1"}
	_, err = coll.Set(id, got)
	require.NoError(t, err)
	entity, err = coll.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p1"}, entity.(*types.ObjectType).Properties)
}

func TestObjectRoundTripHydratesValues(t *testing.T) {
	b := newTestBackend(t)
	coll, err := b.Collection(types.CollectionObjects)
	require.NoError(t, err)

	when := time.Date(2018, 10, 16, 0, 0, 0, 0, time.UTC)
	object := &types.Object{
		User:         "u1",
		Type:         "t1",
		NameProperty: "p1",
		Properties: []types.PropertyValue{
			{PropertyDef: "p1", Name: "FirstName", DataType: types.DataTypeText, Value: types.TextValue("Ada")},
			{PropertyDef: "p2", Name: "Age", DataType: types.DataTypeNumber, Value: types.NumberValue(36)},
			{PropertyDef: "p3", Name: "Born", DataType: types.DataTypeDate, Value: types.DateValue(when)},
			{PropertyDef: "p4", Name: "Active", DataType: types.DataTypeBoolean, Value: types.BooleanValue(true)},
			{PropertyDef: "p5", Name: "Notes", DataType: types.DataTypeText, Value: types.EmptyValue()},
		},
	}
	id, err := coll.Set("", object)
	require.NoError(t, err)

	entity, err := coll.Get(id)
	require.NoError(t, err)
	got := entity.(*types.Object)
	require.Len(t, got.Properties, 5)
	assert.True(t, got.Properties[0].Value.Equal(types.TextValue("Ada")))
	assert.True(t, got.Properties[1].Value.Equal(types.NumberValue(36)))
	assert.True(t, got.Properties[2].Value.Equal(types.DateValue(when)))
	assert.True(t, got.Properties[3].Value.Equal(types.BooleanValue(true)))
	assert.True(t, got.Properties[4].Value.IsEmpty())
	assert.Equal(t, "FirstName", got.Properties[0].Name)
}

func TestObjectFetchFilters(t *testing.T) {
	b := newTestBackend(t)
	coll, err := b.Collection(types.CollectionObjects)
	require.NoError(t, err)

	for _, o := range []*types.Object{
		{User: "u1", Type: "t1", NameProperty: "p1"},
		{User: "u1", Type: "t2", NameProperty: "p1"},
		{User: "u2", Type: "t1", NameProperty: "p1"},
	} {
		_, err := coll.Set("", o)
		require.NoError(t, err)
	}

	all, err := coll.Fetch(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := coll.Fetch(map[string]any{"user": "u1"})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	typed, err := coll.Fetch(map[string]any{"user": "u1", "type": "t1"})
	require.NoError(t, err)
	assert.Len(t, typed, 1)

	membership, err := coll.Fetch(map[string]any{"type": []string{"t1", "t2"}})
	require.NoError(t, err)
	assert.Len(t, membership, 3)

	none, err := coll.Fetch(map[string]any{"type": []string{}})
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = coll.Fetch(map[string]any{"type": 7})
	assert.Equal(t, types.ErrInvalidFilter, err)

	_, err = coll.Fetch(map[string]any{"shoe_size": "12"})
	assert.Equal(t, types.ErrInvalidFilter, err)
}

func TestDeleteRemovesChildren(t *testing.T) {
	b := newTestBackend(t)
	coll, err := b.Collection(types.CollectionObjects)
	require.NoError(t, err)

	object := &types.Object{
		User: "u1", Type: "t1", NameProperty: "p1",
		Properties: []types.PropertyValue{
			{PropertyDef: "p1", Name: "FirstName", DataType: types.DataTypeText, Value: types.TextValue("Ada")},
		},
	}
	id, err := coll.Set("", object)
	require.NoError(t, err)

	require.NoError(t, coll.Delete(id))
	_, err = coll.Get(id)
	assert.Equal(t, types.ErrNotFound, err)
	assert.Equal(t, types.ErrNotFound, coll.Delete(id))

	var count int
	require.NoError(t, b.db.QueryRow("SELECT COUNT(*) FROM object_properties WHERE object_id = ?", id).Scan(&count))
	assert.Zero(t, count, "child rows must be removed with the parent")
}

func TestOptionSetRoundTrip(t *testing.T) {
	b := newTestBackend(t)
	coll, err := b.Collection(types.CollectionOptionSets)
	require.NoError(t, err)

	set := &types.OptionSet{Name: "Languages", Options: []types.Option{{Name: "Go"}, {Name: "TypeScript"}}}
	id, err := coll.Set("", set)
	require.NoError(t, err)

	entity, err := coll.Get(id)
	require.NoError(t, err)
	got := entity.(*types.OptionSet)
	assert.Equal(t, "Languages", got.Name)
	require.Len(t, got.Options, 2)
	assert.Equal(t, "Go", got.Options[0].Name)
}

func TestSetRejectsWrongEntityType(t *testing.T) {
	b := newTestBackend(t)
	coll, err := b.Collection(types.CollectionObjects)
	require.NoError(t, err)

	_, err = coll.Set("", &types.OptionSet{Name: "nope"})
	assert.Equal(t, types.ErrInvalidData, err)
}
