package engine

import (
	"fmt"

	"github.com/facetframe/facet/pkg/types"
)

// OptionSets is the store of reusable named option lists.
type OptionSets struct {
	store types.Store
}

func (s *OptionSets) coll() (types.Collection, error) {
	return s.store.Collection(types.CollectionOptionSets)
}

// Create persists a new option set. The name follows the same (0, 30]
// length rule as property definition names.
func (s *OptionSets) Create(name string, options []string) (*types.OptionSet, error) {
	if err := types.ValidateName(name); err != nil {
		return nil, err
	}
	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	set := &types.OptionSet{Name: name, Options: makeOptions(options)}
	if _, err := coll.Set("", set); err != nil {
		return nil, fmt.Errorf("creating option set: %w", err)
	}
	return set, nil
}

// Get retrieves one option set by ID. Returns ErrNotFound if absent.
func (s *OptionSets) Get(id string) (*types.OptionSet, error) {
	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	entity, err := coll.Get(id)
	if err != nil {
		return nil, err
	}
	return entity.(*types.OptionSet), nil
}

// List returns every option set.
func (s *OptionSets) List() ([]*types.OptionSet, error) {
	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	entities, err := coll.Fetch(nil)
	if err != nil {
		return nil, err
	}
	sets := make([]*types.OptionSet, len(entities))
	for i, e := range entities {
		sets[i] = e.(*types.OptionSet)
	}
	return sets, nil
}

// Edit replaces an option set's name and options.
func (s *OptionSets) Edit(id, name string, options []string) (*types.OptionSet, error) {
	if err := types.ValidateName(name); err != nil {
		return nil, err
	}
	set, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	set.Name = name
	set.Options = makeOptions(options)
	coll, err := s.coll()
	if err != nil {
		return nil, err
	}
	if _, err := coll.Set(set.ID, set); err != nil {
		return nil, fmt.Errorf("editing option set: %w", err)
	}
	return set, nil
}

// Delete removes an option set. Returns ErrNotFound if absent.
func (s *OptionSets) Delete(id string) error {
	coll, err := s.coll()
	if err != nil {
		return err
	}
	return coll.Delete(id)
}

func makeOptions(names []string) []types.Option {
	options := make([]types.Option, len(names))
	for i, n := range names {
		options[i] = types.Option{Name: n}
	}
	return options
}
