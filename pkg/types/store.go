package types

import "errors"

// Standard collection names for Store.Collection.
const (
	CollectionPropertyDefs = "property_defs"
	CollectionObjectTypes  = "object_types"
	CollectionObjects      = "objects"
	CollectionOptionSets   = "option_sets"
)

// StandardCollectionNames lists all standard collection names for
// enumeration.
var StandardCollectionNames = []string{
	CollectionPropertyDefs,
	CollectionObjectTypes,
	CollectionObjects,
	CollectionOptionSets,
}

// Store defines backend-agnostic access to the document store. Callers
// attach to a backend, access collections by name, and detach when done.
type Store interface {
	// Collection returns the Collection for the given name.
	// Returns ErrCollectionNotFound if the name is not standard.
	Collection(name string) (Collection, error)

	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns
	// ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, collection operations return
	// ErrStoreDetached.
	Detach() error
}

// Collection provides uniform operations for a single entity type. Get
// and Fetch return any; callers type-assert to the concrete entity
// struct. Objects come back with their property values hydrated.
type Collection interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Get(id string) (any, error)

	// Set creates or updates an entity. When id is empty a new UUID v7
	// is generated. Returns the actual ID used.
	Set(id string, data any) (string, error)

	// Delete removes the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(id string) error

	// Fetch returns all entities matching the filter. Filter values may
	// be string or bool (equality) or []string (membership). An empty
	// filter returns every entity in the collection.
	Fetch(filter map[string]any) ([]any, error)
}

// Store lifecycle errors.
var (
	ErrStoreDetached      = errors.New("store is detached")
	ErrAlreadyAttached    = errors.New("store is already attached")
	ErrCollectionNotFound = errors.New("collection not found")
)

// Collection operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidFilter = errors.New("invalid filter value type")
)

// Entity and codec errors.
var (
	ErrInvalidDataType = errors.New("invalid data type")
	ErrInvalidValue    = errors.New("value does not match data type")
)
