// Package sqlite implements the SQLite document-store backend for the
// Facet modeling engine.
package sqlite

// Schema DDL for all collections. Child tables carry an explicit
// position column so hydration preserves schema order.
const (
	createPropertyDefs = `CREATE TABLE IF NOT EXISTS property_defs (
    property_def_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    data_type TEXT NOT NULL,
    required_for TEXT NOT NULL
);`

	createObjectTypes = `CREATE TABLE IF NOT EXISTS object_types (
    object_type_id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    name_property TEXT NOT NULL
);`

	createObjectTypeProperties = `CREATE TABLE IF NOT EXISTS object_type_properties (
    object_type_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    property_def_id TEXT NOT NULL,
    PRIMARY KEY (object_type_id, position),
    FOREIGN KEY (object_type_id) REFERENCES object_types(object_type_id)
);`

	createObjects = `CREATE TABLE IF NOT EXISTS objects (
    object_id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    object_type_id TEXT NOT NULL,
    name_property TEXT NOT NULL
);`

	createObjectProperties = `CREATE TABLE IF NOT EXISTS object_properties (
    object_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    property_def_id TEXT NOT NULL,
    name TEXT NOT NULL,
    data_type TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (object_id, position),
    FOREIGN KEY (object_id) REFERENCES objects(object_id)
);`

	createOptionSets = `CREATE TABLE IF NOT EXISTS option_sets (
    option_set_id TEXT PRIMARY KEY,
    name TEXT NOT NULL
);`

	createOptionSetOptions = `CREATE TABLE IF NOT EXISTS option_set_options (
    option_set_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (option_set_id, position),
    FOREIGN KEY (option_set_id) REFERENCES option_sets(option_set_id)
);`
)

// allSchemas lists every DDL statement executed on Attach.
var allSchemas = []string{
	createPropertyDefs,
	createObjectTypes,
	createObjectTypeProperties,
	createObjects,
	createObjectProperties,
	createOptionSets,
	createOptionSetOptions,
}
