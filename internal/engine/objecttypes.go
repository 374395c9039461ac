package engine

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/facetframe/facet/pkg/types"
)

// ObjectTypes is the store of user-defined schemas. It owns the
// schema-evolution algorithm: editing a type's property set migrates
// every existing object of the type and keeps the required-for index on
// property definitions consistent.
type ObjectTypes struct {
	store types.Store
	defs  *PropertyDefs
	log   zerolog.Logger
}

// ObjectTypeView is an object type with its property definitions
// populated for presentation.
type ObjectTypeView struct {
	ID           string                      `json:"id"`
	User         string                      `json:"user"`
	Name         string                      `json:"name"`
	NameProperty string                      `json:"nameProperty"`
	Properties   []*types.PropertyDefinition `json:"properties"`
}

func (s *ObjectTypes) coll() (types.Collection, error) {
	return s.store.Collection(types.CollectionObjectTypes)
}

// Create validates and persists a new object type, then records this
// type in the required-for set of every property marked required; the
// name property is always implicitly required.
func (s *ObjectTypes) Create(user, name, nameProperty string, props []types.PropertyRef) (*types.ObjectType, error) {
	if err := types.ValidatePropertyRefs(nameProperty, props); err != nil {
		return nil, err
	}

	propertyIDs := make([]string, len(props))
	for i, p := range props {
		propertyIDs[i] = p.ID
	}
	// Referenced definitions must exist before anything is persisted.
	if _, err := s.defs.ResolveAll(propertyIDs); err != nil {
		return nil, err
	}

	requiredIDs := make([]string, 0, len(props)+1)
	for _, p := range props {
		if p.Required && p.ID != nameProperty {
			requiredIDs = append(requiredIDs, p.ID)
		}
	}
	requiredIDs = append(requiredIDs, nameProperty)

	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	objectType := &types.ObjectType{
		User:         user,
		Name:         name,
		NameProperty: nameProperty,
		Properties:   propertyIDs,
	}
	if _, err := coll.Set("", objectType); err != nil {
		return nil, fmt.Errorf("creating object type: %w", err)
	}
	if err := s.defs.AddRequiredFor(requiredIDs, objectType.ID); err != nil {
		return nil, fmt.Errorf("indexing required properties: %w", err)
	}
	return objectType, nil
}

// Get retrieves an object type scoped by its owner.
// Returns ErrNotFound when absent or owned by someone else.
func (s *ObjectTypes) Get(user, id string) (*types.ObjectType, error) {
	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	entity, err := coll.Get(id)
	if err != nil {
		return nil, err
	}
	objectType := entity.(*types.ObjectType)
	if objectType.User != user {
		return nil, types.ErrNotFound
	}
	return objectType, nil
}

// GetPopulated retrieves an object type with its property definitions
// resolved for presentation.
func (s *ObjectTypes) GetPopulated(user, id string) (*ObjectTypeView, error) {
	objectType, err := s.Get(user, id)
	if err != nil {
		return nil, err
	}
	return s.populate(objectType)
}

// List returns every object type owned by the caller, populated.
func (s *ObjectTypes) List(user string) ([]*ObjectTypeView, error) {
	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	entities, err := coll.Fetch(map[string]any{"user": user})
	if err != nil {
		return nil, err
	}
	views := make([]*ObjectTypeView, len(entities))
	for i, e := range entities {
		view, err := s.populate(e.(*types.ObjectType))
		if err != nil {
			return nil, err
		}
		views[i] = view
	}
	return views, nil
}

func (s *ObjectTypes) populate(objectType *types.ObjectType) (*ObjectTypeView, error) {
	defs, err := s.defs.ResolveAll(objectType.Properties)
	if err != nil {
		return nil, err
	}
	return &ObjectTypeView{
		ID:           objectType.ID,
		User:         objectType.User,
		Name:         objectType.Name,
		NameProperty: objectType.NameProperty,
		Properties:   defs,
	}, nil
}

// Edit applies a new property set to an object type and migrates state
// that depends on the previous set. Preconditions are checked before any
// mutation. The required-for index is updated around the type record:
// first the pulls (every no-longer-required or removed definition), then
// the record itself, then the adds. Finally every existing object of the
// type is migrated: property values for removed definitions are dropped
// and empty values for added definitions are appended. The steps are not
// atomic; the returned count reports exactly how many objects were
// migrated.
func (s *ObjectTypes) Edit(user, id, name, nameProperty string, props []types.PropertyRef) (objectsUpdated int, err error) {
	if err := types.ValidatePropertyRefs(nameProperty, props); err != nil {
		return 0, err
	}

	objectType, err := s.Get(user, id)
	if err != nil {
		return 0, err
	}

	newProperties := make([]string, len(props))
	inNew := make(map[string]bool, len(props))
	for i, p := range props {
		newProperties[i] = p.ID
		inNew[p.ID] = true
	}
	// Referenced definitions must exist before anything is mutated, as
	// at creation: a dangling id persisted into the schema would make
	// every later populate fail.
	if _, err := s.defs.ResolveAll(newProperties); err != nil {
		return 0, err
	}
	inOld := make(map[string]bool, len(objectType.Properties))
	for _, p := range objectType.Properties {
		inOld[p] = true
	}

	var removed, added []string
	for _, p := range objectType.Properties {
		if !inNew[p] {
			removed = append(removed, p)
		}
	}
	for _, p := range newProperties {
		if !inOld[p] {
			added = append(added, p)
		}
	}

	required := make([]string, 0, len(props)+1)
	notRequired := make([]string, 0, len(props)+len(removed))
	for _, p := range props {
		if p.Required && p.ID != nameProperty {
			required = append(required, p.ID)
		}
		if !p.Required {
			notRequired = append(notRequired, p.ID)
		}
	}
	required = append(required, nameProperty)
	// A removed property leaves the schema entirely, so it must be
	// dropped from the index regardless of its flag in the new list.
	inNotRequired := make(map[string]bool, len(notRequired))
	for _, p := range notRequired {
		inNotRequired[p] = true
	}
	for _, p := range removed {
		if !inNotRequired[p] {
			notRequired = append(notRequired, p)
		}
	}

	if err := s.defs.RemoveRequiredFor(notRequired, id); err != nil {
		return 0, fmt.Errorf("pulling required-for index: %w", err)
	}

	if name != "" {
		objectType.Name = name
	}
	objectType.NameProperty = nameProperty
	objectType.Properties = newProperties
	coll, err := s.coll()
	if err != nil {
		return 0, err
	}
	if _, err := coll.Set(objectType.ID, objectType); err != nil {
		return 0, fmt.Errorf("persisting object type: %w", err)
	}

	if err := s.defs.AddRequiredFor(required, id); err != nil {
		return 0, fmt.Errorf("adding required-for index: %w", err)
	}

	return s.migrateObjects(objectType, removed, added)
}

// migrateObjects cascades a schema edit to every existing object of the
// type. Per-object failures are logged and skipped; re-running against
// an already-migrated object is a no-op. Returns the success count.
func (s *ObjectTypes) migrateObjects(objectType *types.ObjectType, removed, added []string) (int, error) {
	addedDefs, err := s.defs.ResolveAll(added)
	if err != nil {
		return 0, fmt.Errorf("resolving added properties: %w", err)
	}
	objColl, err := s.store.Collection(types.CollectionObjects)
	if err != nil {
		return 0, err
	}
	entities, err := objColl.Fetch(map[string]any{"type": objectType.ID})
	if err != nil {
		return 0, fmt.Errorf("fetching objects for migration: %w", err)
	}

	inRemoved := make(map[string]bool, len(removed))
	for _, p := range removed {
		inRemoved[p] = true
	}

	migrated := 0
	for _, entity := range entities {
		object := entity.(*types.Object)

		kept := object.Properties[:0]
		for _, pv := range object.Properties {
			if !inRemoved[pv.PropertyDef] {
				kept = append(kept, pv)
			}
		}
		object.Properties = kept

		for _, def := range addedDefs {
			if object.FindValue(def.ID) != nil {
				continue
			}
			object.Properties = append(object.Properties, types.PropertyValue{
				PropertyDef: def.ID,
				Name:        def.Name,
				DataType:    def.DataType,
				Value:       types.EmptyValue(),
			})
		}

		if _, err := objColl.Set(object.ID, object); err != nil {
			s.log.Error().Err(err).
				Str("object", object.ID).
				Str("objectType", objectType.ID).
				Msg("object migration failed")
			continue
		}
		migrated++
	}
	return migrated, nil
}

// Delete removes an object type. Deletion is refused with a
// ValidationError while objects of the type exist; on success the type
// is pulled from every definition's required-for set so no orphaned
// index entries remain.
func (s *ObjectTypes) Delete(user, id string) error {
	objectType, err := s.Get(user, id)
	if err != nil {
		return err
	}

	objColl, err := s.store.Collection(types.CollectionObjects)
	if err != nil {
		return err
	}
	remaining, err := objColl.Fetch(map[string]any{"type": id})
	if err != nil {
		return err
	}
	if len(remaining) > 0 {
		return types.Validationf("object type %s is still in use by %d objects", objectType.Name, len(remaining))
	}

	if err := s.defs.RemoveRequiredFor(objectType.Properties, id); err != nil {
		return fmt.Errorf("clearing required-for index: %w", err)
	}
	coll, err := s.coll()
	if err != nil {
		return err
	}
	return coll.Delete(id)
}
