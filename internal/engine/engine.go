// Package engine implements the Facet stores: property definitions,
// object types with their schema-evolution algorithm, objects with
// value assembly and edit reconciliation, option sets, and the
// search-condition compiler. All operations take the caller identity
// explicitly where scoping applies; nothing is read from ambient state.
package engine

import (
	"github.com/rs/zerolog"

	"github.com/facetframe/facet/pkg/types"
)

// Engine bundles the per-entity stores over one document store.
type Engine struct {
	PropertyDefs *PropertyDefs
	ObjectTypes  *ObjectTypes
	Objects      *Objects
	OptionSets   *OptionSets
}

// New builds an Engine over the given attached store.
func New(store types.Store, log zerolog.Logger) *Engine {
	defs := &PropertyDefs{store: store}
	objectTypes := &ObjectTypes{store: store, defs: defs, log: log}
	objects := &Objects{store: store, defs: defs}
	optionSets := &OptionSets{store: store}
	return &Engine{
		PropertyDefs: defs,
		ObjectTypes:  objectTypes,
		Objects:      objects,
		OptionSets:   optionSets,
	}
}
