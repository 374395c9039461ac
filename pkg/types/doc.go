// Package types defines the Store and Collection interfaces, the entity
// types of the Facet modeling engine (property definitions, object types,
// objects, option sets), the tagged canonical value variant, and the
// standard error taxonomy shared by all layers.
package types
