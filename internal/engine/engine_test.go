package engine

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facetframe/facet/internal/sqlite"
	"github.com/facetframe/facet/pkg/types"
)

// newTestEngine builds an engine over a fresh SQLite backend in a temp
// dir.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	backend := sqlite.NewBackend()
	err := backend.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { backend.Detach() })
	return New(backend, zerolog.Nop())
}

func TestPropertyDefCreateValidatesName(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.PropertyDefs.Create("", types.DataTypeText)
	assert.True(t, types.IsValidation(err), "empty name must be a validation error")

	long := make([]byte, 31)
	for i := range long {
		long[i] = 'x'
	}
	_, err = eng.PropertyDefs.Create(string(long), types.DataTypeText)
	assert.True(t, types.IsValidation(err), "31-char name must be a validation error")

	_, err = eng.PropertyDefs.Create("FirstName", "blob")
	assert.True(t, types.IsValidation(err), "unknown data type must be a validation error")

	def, err := eng.PropertyDefs.Create("FirstName", types.DataTypeText)
	require.NoError(t, err)
	assert.NotEmpty(t, def.ID)
}

func TestResolveAllReportsMissing(t *testing.T) {
	eng := newTestEngine(t)
	def, err := eng.PropertyDefs.Create("FirstName", types.DataTypeText)
	require.NoError(t, err)

	resolved, err := eng.PropertyDefs.ResolveAll([]string{def.ID})
	require.NoError(t, err)
	require.Len(t, resolved, 1)

	_, err = eng.PropertyDefs.ResolveAll([]string{def.ID, "missing-id"})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Contains(t, err.Error(), "missing-id")
}

func TestAddRequiredForIdempotent(t *testing.T) {
	eng := newTestEngine(t)
	def, err := eng.PropertyDefs.Create("FirstName", types.DataTypeText)
	require.NoError(t, err)

	require.NoError(t, eng.PropertyDefs.AddRequiredFor([]string{def.ID}, "t1"))
	require.NoError(t, eng.PropertyDefs.AddRequiredFor([]string{def.ID}, "t1"))

	got, err := eng.PropertyDefs.Get(def.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, got.RequiredFor)

	require.NoError(t, eng.PropertyDefs.RemoveRequiredFor([]string{def.ID}, "t1"))
	require.NoError(t, eng.PropertyDefs.RemoveRequiredFor([]string{def.ID}, "t1"))
	got, err = eng.PropertyDefs.Get(def.ID)
	require.NoError(t, err)
	assert.Empty(t, got.RequiredFor)
}

// personFixture creates the FirstName definition and the Person type
// with FirstName required as name property.
func personFixture(t *testing.T, eng *Engine, user string) (firstName *types.PropertyDefinition, person *types.ObjectType) {
	t.Helper()
	firstName, err := eng.PropertyDefs.Create("FirstName", types.DataTypeText)
	require.NoError(t, err)
	person, err = eng.ObjectTypes.Create(user, "Person", firstName.ID,
		[]types.PropertyRef{{ID: firstName.ID, Required: true}})
	require.NoError(t, err)
	return firstName, person
}

func TestObjectTypeCreateIndexesRequired(t *testing.T) {
	eng := newTestEngine(t)
	firstName, person := personFixture(t, eng, "u1")

	got, err := eng.PropertyDefs.Get(firstName.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{person.ID}, got.RequiredFor)
	assert.Equal(t, firstName.ID, person.NameProperty)
}

func TestObjectTypeCreateValidations(t *testing.T) {
	eng := newTestEngine(t)
	def, err := eng.PropertyDefs.Create("FirstName", types.DataTypeText)
	require.NoError(t, err)

	_, err = eng.ObjectTypes.Create("u1", "Person", "other",
		[]types.PropertyRef{{ID: def.ID}})
	assert.True(t, types.IsValidation(err), "name property outside the list must fail")

	_, err = eng.ObjectTypes.Create("u1", "Person", def.ID,
		[]types.PropertyRef{{ID: def.ID}, {ID: def.ID}})
	assert.True(t, types.IsValidation(err), "duplicate ids must fail")
}

func TestObjectTypeGetScopedByUser(t *testing.T) {
	eng := newTestEngine(t)
	_, person := personFixture(t, eng, "u1")

	_, err := eng.ObjectTypes.Get("u2", person.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	view, err := eng.ObjectTypes.GetPopulated("u1", person.ID)
	require.NoError(t, err)
	require.Len(t, view.Properties, 1)
	assert.Equal(t, "FirstName", view.Properties[0].Name)
}

func TestObjectCreateStoresValues(t *testing.T) {
	eng := newTestEngine(t)
	firstName, person := personFixture(t, eng, "u1")

	object, err := eng.Objects.Create("u1", person.ID,
		[]types.PropertyInput{{PropertyDef: firstName.ID, Value: "Ada"}})
	require.NoError(t, err)

	got, err := eng.Objects.Get("u1", object.ID)
	require.NoError(t, err)
	require.Len(t, got.Properties, 1)
	assert.Equal(t, "FirstName", got.Properties[0].Name)
	assert.True(t, got.Properties[0].Value.Equal(types.TextValue("Ada")))
	assert.Equal(t, person.NameProperty, got.NameProperty)
}

func TestObjectCreateRequiresRequiredProperty(t *testing.T) {
	eng := newTestEngine(t)
	firstName, person := personFixture(t, eng, "u1")

	_, err := eng.Objects.Create("u1", person.ID, nil)
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
	assert.EqualError(t, err, "FirstName is a required property for objects of type Person")

	_, err = eng.Objects.Create("u1", person.ID,
		[]types.PropertyInput{{PropertyDef: firstName.ID, Value: ""}})
	require.Error(t, err)
	assert.EqualError(t, err, "FirstName is a required property for objects of type Person")
}

func TestObjectCreateRejectsInvalidValue(t *testing.T) {
	eng := newTestEngine(t)
	firstName, person := personFixture(t, eng, "u1")
	age, err := eng.PropertyDefs.Create("Age", types.DataTypeNumber)
	require.NoError(t, err)
	_, err = eng.ObjectTypes.Edit("u1", person.ID, "", firstName.ID,
		[]types.PropertyRef{{ID: firstName.ID, Required: true}, {ID: age.ID}})
	require.NoError(t, err)

	_, err = eng.Objects.Create("u1", person.ID, []types.PropertyInput{
		{PropertyDef: firstName.ID, Value: "Ada"},
		{PropertyDef: age.ID, Value: "thirty"},
	})
	require.Error(t, err)
	assert.True(t, types.IsValidation(err))
	assert.EqualError(t, err, "invalid value thirty for property Age")

	// Nothing was persisted.
	objects, err := eng.Objects.List("u1")
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestObjectCreateInvalidType(t *testing.T) {
	eng := newTestEngine(t)
	personFixture(t, eng, "u1")

	_, err := eng.Objects.Create("u1", "no-such-type", nil)
	assert.True(t, types.IsValidation(err), "bad type id is a validation failure, not a NotFound")

	// A type owned by another caller is equally invalid.
	_, person := personFixture(t, eng, "u2")
	_, err = eng.Objects.Create("u1", person.ID, nil)
	assert.True(t, types.IsValidation(err))
}

func TestObjectTypeEditMigratesObjects(t *testing.T) {
	eng := newTestEngine(t)
	firstName, person := personFixture(t, eng, "u1")

	for _, name := range []string{"Ada", "Grace"} {
		_, err := eng.Objects.Create("u1", person.ID,
			[]types.PropertyInput{{PropertyDef: firstName.ID, Value: name}})
		require.NoError(t, err)
	}

	lastName, err := eng.PropertyDefs.Create("LastName", types.DataTypeText)
	require.NoError(t, err)
	age, err := eng.PropertyDefs.Create("Age", types.DataTypeNumber)
	require.NoError(t, err)

	// Drop FirstName, keep nothing old, add LastName (name property) and Age.
	updated, err := eng.ObjectTypes.Edit("u1", person.ID, "", lastName.ID, []types.PropertyRef{
		{ID: lastName.ID, Required: true},
		{ID: age.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	objects, err := eng.Objects.ListByType("u1", person.ID)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	for _, o := range objects {
		assert.Nil(t, o.FindValue(firstName.ID), "removed property value must be gone")
		lastPV := o.FindValue(lastName.ID)
		require.NotNil(t, lastPV, "added property must be present")
		assert.True(t, lastPV.Value.IsEmpty())
		agePV := o.FindValue(age.ID)
		require.NotNil(t, agePV)
		assert.True(t, agePV.Value.IsEmpty())
		assert.Equal(t, types.DataTypeNumber, agePV.DataType)
	}

	// Index follows the schema: FirstName released, LastName required.
	gotFirst, err := eng.PropertyDefs.Get(firstName.ID)
	require.NoError(t, err)
	assert.Empty(t, gotFirst.RequiredFor)
	gotLast, err := eng.PropertyDefs.Get(lastName.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{person.ID}, gotLast.RequiredFor)
	gotAge, err := eng.PropertyDefs.Get(age.ID)
	require.NoError(t, err)
	assert.Empty(t, gotAge.RequiredFor)
}

func TestObjectTypeEditRerunIsNoOp(t *testing.T) {
	eng := newTestEngine(t)
	firstName, person := personFixture(t, eng, "u1")
	_, err := eng.Objects.Create("u1", person.ID,
		[]types.PropertyInput{{PropertyDef: firstName.ID, Value: "Ada"}})
	require.NoError(t, err)

	age, err := eng.PropertyDefs.Create("Age", types.DataTypeNumber)
	require.NoError(t, err)
	refs := []types.PropertyRef{{ID: firstName.ID, Required: true}, {ID: age.ID}}

	updated, err := eng.ObjectTypes.Edit("u1", person.ID, "", firstName.ID, refs)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	// Same edit again: objects already carry Age exactly once.
	updated, err = eng.ObjectTypes.Edit("u1", person.ID, "", firstName.ID, refs)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	objects, err := eng.Objects.ListByType("u1", person.ID)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	count := 0
	for _, pv := range objects[0].Properties {
		if pv.PropertyDef == age.ID {
			count++
		}
	}
	assert.Equal(t, 1, count, "re-running the cascade must not duplicate values")
}

func TestObjectTypeEditPreconditionFailureMutatesNothing(t *testing.T) {
	eng := newTestEngine(t)
	firstName, person := personFixture(t, eng, "u1")

	_, err := eng.ObjectTypes.Edit("u1", person.ID, "Renamed", "other-prop",
		[]types.PropertyRef{{ID: firstName.ID}})
	assert.True(t, types.IsValidation(err))

	got, err := eng.ObjectTypes.Get("u1", person.ID)
	require.NoError(t, err)
	assert.Equal(t, "Person", got.Name)
	assert.Equal(t, firstName.ID, got.NameProperty)
	assert.Equal(t, []string{firstName.ID}, got.Properties)
}

func TestObjectTypeEditRejectsUnknownDefinition(t *testing.T) {
	eng := newTestEngine(t)
	firstName, person := personFixture(t, eng, "u1")

	_, err := eng.ObjectTypes.Edit("u1", person.ID, "", firstName.ID, []types.PropertyRef{
		{ID: firstName.ID, Required: true},
		{ID: "no-such-def", Required: true},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// The schema never picked up the dangling id and stays populatable.
	got, err := eng.ObjectTypes.Get("u1", person.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{firstName.ID}, got.Properties)
	view, err := eng.ObjectTypes.GetPopulated("u1", person.ID)
	require.NoError(t, err)
	require.Len(t, view.Properties, 1)

	// The required-for index was not touched either.
	def, err := eng.PropertyDefs.Get(firstName.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{person.ID}, def.RequiredFor)
}

func TestObjectEditReplacesValues(t *testing.T) {
	eng := newTestEngine(t)
	firstName, person := personFixture(t, eng, "u1")
	object, err := eng.Objects.Create("u1", person.ID,
		[]types.PropertyInput{{PropertyDef: firstName.ID, Value: "Ada"}})
	require.NoError(t, err)

	edited, err := eng.Objects.Edit("u1", object.ID,
		[]types.PropertyInput{{PropertyDef: firstName.ID, Value: "Grace"}})
	require.NoError(t, err)
	assert.True(t, edited.FindValue(firstName.ID).Value.Equal(types.TextValue("Grace")))

	got, err := eng.Objects.Get("u1", object.ID)
	require.NoError(t, err)
	assert.True(t, got.FindValue(firstName.ID).Value.Equal(types.TextValue("Grace")))
}

func TestObjectEditDropsStalePropertyIDs(t *testing.T) {
	eng := newTestEngine(t)
	firstName, person := personFixture(t, eng, "u1")
	object, err := eng.Objects.Create("u1", person.ID,
		[]types.PropertyInput{{PropertyDef: firstName.ID, Value: "Ada"}})
	require.NoError(t, err)

	// A value for a definition outside the schema is silently ignored.
	edited, err := eng.Objects.Edit("u1", object.ID, []types.PropertyInput{
		{PropertyDef: firstName.ID, Value: "Grace"},
		{PropertyDef: "stale-def", Value: "ignored"},
	})
	require.NoError(t, err)
	assert.Len(t, edited.Properties, 1)
	assert.Nil(t, edited.FindValue("stale-def"))
}

func TestObjectEditEnforcesRequired(t *testing.T) {
	eng := newTestEngine(t)
	firstName, person := personFixture(t, eng, "u1")
	object, err := eng.Objects.Create("u1", person.ID,
		[]types.PropertyInput{{PropertyDef: firstName.ID, Value: "Ada"}})
	require.NoError(t, err)

	_, err = eng.Objects.Edit("u1", object.ID,
		[]types.PropertyInput{{PropertyDef: firstName.ID, Value: ""}})
	require.Error(t, err)
	assert.EqualError(t, err, "FirstName is a required property for objects of type Person")

	// Failed edit left the stored value untouched.
	got, err := eng.Objects.Get("u1", object.ID)
	require.NoError(t, err)
	assert.True(t, got.FindValue(firstName.ID).Value.Equal(types.TextValue("Ada")))
}

func TestObjectScoping(t *testing.T) {
	eng := newTestEngine(t)
	firstName, person := personFixture(t, eng, "u1")
	object, err := eng.Objects.Create("u1", person.ID,
		[]types.PropertyInput{{PropertyDef: firstName.ID, Value: "Ada"}})
	require.NoError(t, err)

	_, err = eng.Objects.Get("u2", object.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.ErrorIs(t, eng.Objects.Delete("u2", object.ID), types.ErrNotFound)

	require.NoError(t, eng.Objects.Delete("u1", object.ID))
	_, err = eng.Objects.Get("u1", object.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestObjectTypeDeleteRefusedWhileInUse(t *testing.T) {
	eng := newTestEngine(t)
	firstName, person := personFixture(t, eng, "u1")
	object, err := eng.Objects.Create("u1", person.ID,
		[]types.PropertyInput{{PropertyDef: firstName.ID, Value: "Ada"}})
	require.NoError(t, err)

	err = eng.ObjectTypes.Delete("u1", person.ID)
	assert.True(t, types.IsValidation(err), "delete must be refused while objects exist")

	require.NoError(t, eng.Objects.Delete("u1", object.ID))
	require.NoError(t, eng.ObjectTypes.Delete("u1", person.ID))

	// The required-for index no longer names the deleted type.
	got, err := eng.PropertyDefs.Get(firstName.ID)
	require.NoError(t, err)
	assert.Empty(t, got.RequiredFor)
}

func TestPropertyDefDeleteRefusedWhileListed(t *testing.T) {
	eng := newTestEngine(t)
	firstName, person := personFixture(t, eng, "u1")

	err := eng.PropertyDefs.Delete(firstName.ID)
	assert.True(t, types.IsValidation(err))

	require.NoError(t, eng.ObjectTypes.Delete("u1", person.ID))
	require.NoError(t, eng.PropertyDefs.Delete(firstName.ID))
}

func TestOptionSetLifecycle(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.OptionSets.Create("", nil)
	assert.True(t, types.IsValidation(err))

	set, err := eng.OptionSets.Create("Languages", []string{"Go", "TypeScript"})
	require.NoError(t, err)

	got, err := eng.OptionSets.Get(set.ID)
	require.NoError(t, err)
	require.Len(t, got.Options, 2)

	edited, err := eng.OptionSets.Edit(set.ID, "Langs", []string{"Go"})
	require.NoError(t, err)
	assert.Equal(t, "Langs", edited.Name)
	require.Len(t, edited.Options, 1)

	require.NoError(t, eng.OptionSets.Delete(set.ID))
	_, err = eng.OptionSets.Get(set.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
