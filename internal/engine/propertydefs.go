package engine

import (
	"fmt"

	"github.com/facetframe/facet/pkg/types"
)

// PropertyDefs is the store of reusable typed attribute definitions.
type PropertyDefs struct {
	store types.Store
}

func (s *PropertyDefs) coll() (types.Collection, error) {
	return s.store.Collection(types.CollectionPropertyDefs)
}

// Create persists a new property definition. Returns a ValidationError
// when the name length is outside (0, 30] or the data type is unknown.
func (s *PropertyDefs) Create(name, dataType string) (*types.PropertyDefinition, error) {
	if err := types.ValidateName(name); err != nil {
		return nil, err
	}
	if !types.ValidDataType(dataType) {
		return nil, types.Validationf("unknown data type %s", dataType)
	}
	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	def := &types.PropertyDefinition{Name: name, DataType: dataType, RequiredFor: []string{}}
	if _, err := coll.Set("", def); err != nil {
		return nil, fmt.Errorf("creating property definition: %w", err)
	}
	return def, nil
}

// Get retrieves one definition by ID. Returns ErrNotFound if absent.
func (s *PropertyDefs) Get(id string) (*types.PropertyDefinition, error) {
	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	entity, err := coll.Get(id)
	if err != nil {
		return nil, err
	}
	return entity.(*types.PropertyDefinition), nil
}

// List returns every definition.
func (s *PropertyDefs) List() ([]*types.PropertyDefinition, error) {
	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	entities, err := coll.Fetch(nil)
	if err != nil {
		return nil, err
	}
	defs := make([]*types.PropertyDefinition, len(entities))
	for i, e := range entities {
		defs[i] = e.(*types.PropertyDefinition)
	}
	return defs, nil
}

// Edit updates a definition's name and data type. The RequiredFor set is
// owned by the schema-evolution algorithm and is left untouched.
func (s *PropertyDefs) Edit(id, name, dataType string) (*types.PropertyDefinition, error) {
	if err := types.ValidateName(name); err != nil {
		return nil, err
	}
	if !types.ValidDataType(dataType) {
		return nil, types.Validationf("unknown data type %s", dataType)
	}
	def, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	def.Name = name
	def.DataType = dataType
	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	if _, err := coll.Set(def.ID, def); err != nil {
		return nil, fmt.Errorf("editing property definition: %w", err)
	}
	return def, nil
}

// ResolveAll returns the definitions for the given IDs in the same
// order. A missing ID is an error naming it, never a shorter list:
// downstream validation assumes by-id completeness.
func (s *PropertyDefs) ResolveAll(ids []string) ([]*types.PropertyDefinition, error) {
	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	defs := make([]*types.PropertyDefinition, len(ids))
	for i, id := range ids {
		entity, err := coll.Get(id)
		if err != nil {
			return nil, fmt.Errorf("property definition %s: %w", id, err)
		}
		defs[i] = entity.(*types.PropertyDefinition)
	}
	return defs, nil
}

// AddRequiredFor adds objectTypeID to the required-for set of every
// definition named in ids. Idempotent: adding twice has no further
// effect.
func (s *PropertyDefs) AddRequiredFor(ids []string, objectTypeID string) error {
	return s.updateRequiredFor(ids, objectTypeID, true)
}

// RemoveRequiredFor removes objectTypeID from the required-for set of
// every definition named in ids. Idempotent: removing where absent has
// no effect.
func (s *PropertyDefs) RemoveRequiredFor(ids []string, objectTypeID string) error {
	return s.updateRequiredFor(ids, objectTypeID, false)
}

func (s *PropertyDefs) updateRequiredFor(ids []string, objectTypeID string, add bool) error {
	coll, err := s.coll()
	if err != nil {
		return err
	}
	for _, id := range ids {
		entity, err := coll.Get(id)
		if err != nil {
			return fmt.Errorf("property definition %s: %w", id, err)
		}
		def := entity.(*types.PropertyDefinition)
		if add {
			def.AddRequiredFor(objectTypeID)
		} else {
			def.RemoveRequiredFor(objectTypeID)
		}
		if _, err := coll.Set(def.ID, def); err != nil {
			return fmt.Errorf("updating required-for on %s: %w", id, err)
		}
	}
	return nil
}

// Delete removes a definition. Deletion is refused with a
// ValidationError while any object type still lists the definition in
// its schema.
func (s *PropertyDefs) Delete(id string) error {
	typeColl, err := s.store.Collection(types.CollectionObjectTypes)
	if err != nil {
		return err
	}
	entities, err := typeColl.Fetch(nil)
	if err != nil {
		return err
	}
	for _, e := range entities {
		t := e.(*types.ObjectType)
		if t.HasProperty(id) {
			return types.Validationf("property definition is still listed by object type %s", t.Name)
		}
	}
	coll, err := s.coll()
	if err != nil {
		return err
	}
	return coll.Delete(id)
}
