package engine

import (
	"errors"
	"fmt"

	"github.com/facetframe/facet/pkg/codec"
	"github.com/facetframe/facet/pkg/types"
)

// Objects is the store of typed instances. Creation and editing always
// resolve the object type's schema first to decide which definitions are
// legal and which are required; all validation completes before anything
// is persisted.
type Objects struct {
	store types.Store
	defs  *PropertyDefs
}

func (s *Objects) coll() (types.Collection, error) {
	return s.store.Collection(types.CollectionObjects)
}

// Create assembles and persists a new object of the given type. The
// type is resolved under the caller's scope; a bad type ID is a
// ValidationError, not a NotFound, because it reflects a bad request.
// One property value is assembled per schema definition, in schema
// order, with omitted values defaulting to empty.
func (s *Objects) Create(user, typeID string, inputs []types.PropertyInput) (*types.Object, error) {
	objectType, err := s.resolveType(user, typeID)
	if err != nil {
		return nil, err
	}
	defs, err := s.defs.ResolveAll(objectType.Properties)
	if err != nil {
		return nil, err
	}
	values, err := assembleValues(objectType, defs, inputs)
	if err != nil {
		return nil, err
	}

	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	object := &types.Object{
		User:         user,
		Type:         objectType.ID,
		NameProperty: objectType.NameProperty,
		Properties:   values,
	}
	if _, err := coll.Set("", object); err != nil {
		return nil, fmt.Errorf("creating object: %w", err)
	}
	return object, nil
}

func (s *Objects) resolveType(user, typeID string) (*types.ObjectType, error) {
	typeColl, err := s.store.Collection(types.CollectionObjectTypes)
	if err != nil {
		return nil, err
	}
	entity, err := typeColl.Get(typeID)
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidID) {
		return nil, types.Validationf("invalid object type specified at object creation")
	}
	if err != nil {
		return nil, err
	}
	objectType := entity.(*types.ObjectType)
	if objectType.User != user {
		return nil, types.Validationf("invalid object type specified at object creation")
	}
	return objectType, nil
}

// assembleValues is the single validation pass shared by create and
// edit: it yields either a ValidationError or the complete, fully
// parsed property value list. Required definitions must carry a
// non-empty value; non-empty values must validate against the
// definition's data type.
func assembleValues(objectType *types.ObjectType, defs []*types.PropertyDefinition, inputs []types.PropertyInput) ([]types.PropertyValue, error) {
	supplied := make(map[string]any, len(inputs))
	for _, in := range inputs {
		supplied[in.PropertyDef] = in.Value
	}

	for _, def := range defs {
		if !def.IsRequiredFor(objectType.ID) {
			continue
		}
		raw, ok := supplied[def.ID]
		if !ok || raw == nil || raw == "" {
			return nil, types.Validationf("%s is a required property for objects of type %s", def.Name, objectType.Name)
		}
	}

	values := make([]types.PropertyValue, 0, len(defs))
	for _, def := range defs {
		raw := supplied[def.ID]
		if !codec.Validate(raw, def.DataType) {
			return nil, types.Validationf("invalid value %v for property %s", raw, def.Name)
		}
		value, err := codec.Parse(raw, def.DataType)
		if err != nil {
			return nil, fmt.Errorf("parsing value for %s: %w", def.Name, err)
		}
		values = append(values, types.PropertyValue{
			PropertyDef: def.ID,
			Name:        def.Name,
			DataType:    def.DataType,
			Value:       value,
		})
	}
	return values, nil
}

// Get retrieves an object scoped by its owner.
// Returns ErrNotFound when absent or owned by someone else.
func (s *Objects) Get(user, id string) (*types.Object, error) {
	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	entity, err := coll.Get(id)
	if err != nil {
		return nil, err
	}
	object := entity.(*types.Object)
	if object.User != user {
		return nil, types.ErrNotFound
	}
	return object, nil
}

// List returns every object owned by the caller.
func (s *Objects) List(user string) ([]*types.Object, error) {
	return s.fetch(map[string]any{"user": user})
}

// ListByType returns every object of one type owned by the caller.
func (s *Objects) ListByType(user, typeID string) ([]*types.Object, error) {
	return s.fetch(map[string]any{"user": user, "type": typeID})
}

func (s *Objects) fetch(filter map[string]any) ([]*types.Object, error) {
	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	entities, err := coll.Fetch(filter)
	if err != nil {
		return nil, err
	}
	objects := make([]*types.Object, len(entities))
	for i, e := range entities {
		objects[i] = e.(*types.Object)
	}
	return objects, nil
}

// Edit replaces property values on an existing object. Supplied values
// whose definition is no longer part of the object's type schema are
// silently dropped. The definitions currently attached to the object
// are re-validated as at creation; on success only matching values are
// replaced, in one write.
func (s *Objects) Edit(user, id string, inputs []types.PropertyInput) (*types.Object, error) {
	object, err := s.Get(user, id)
	if err != nil {
		return nil, err
	}
	typeColl, err := s.store.Collection(types.CollectionObjectTypes)
	if err != nil {
		return nil, err
	}
	entity, err := typeColl.Get(object.Type)
	if err != nil {
		return nil, fmt.Errorf("resolving object type %s: %w", object.Type, err)
	}
	objectType := entity.(*types.ObjectType)

	filtered := inputs[:0:0]
	for _, in := range inputs {
		if objectType.HasProperty(in.PropertyDef) {
			filtered = append(filtered, in)
		}
	}

	attachedIDs := make([]string, len(object.Properties))
	for i, pv := range object.Properties {
		attachedIDs[i] = pv.PropertyDef
	}
	attachedDefs, err := s.defs.ResolveAll(attachedIDs)
	if err != nil {
		return nil, err
	}

	values, err := assembleValues(objectType, attachedDefs, filtered)
	if err != nil {
		return nil, err
	}

	for _, v := range values {
		if pv := object.FindValue(v.PropertyDef); pv != nil {
			pv.Name = v.Name
			pv.DataType = v.DataType
			pv.Value = v.Value
		}
	}

	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	if _, err := coll.Set(object.ID, object); err != nil {
		return nil, fmt.Errorf("editing object: %w", err)
	}
	return object, nil
}

// Delete removes an object scoped by its owner.
// Returns ErrNotFound when absent or owned by someone else.
func (s *Objects) Delete(user, id string) error {
	if _, err := s.Get(user, id); err != nil {
		return err
	}
	coll, err := s.coll()
	if err != nil {
		return err
	}
	return coll.Delete(id)
}
