package sqlite

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/facetframe/facet/pkg/types"
)

// collection implements types.Collection for a single entity type. Each
// collection knows its name and the backend it belongs to; operations
// dispatch on the name.
type collection struct {
	name    string
	backend *Backend
}

var _ types.Collection = (*collection)(nil)

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Get retrieves an entity by ID with child records hydrated.
// Returns ErrInvalidID if id is empty, ErrNotFound if absent.
func (c *collection) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	c.backend.mu.RLock()
	defer c.backend.mu.RUnlock()
	if !c.backend.attached {
		return nil, types.ErrStoreDetached
	}

	switch c.name {
	case types.CollectionPropertyDefs:
		return c.getPropertyDef(id)
	case types.CollectionObjectTypes:
		return c.getObjectType(id)
	case types.CollectionObjects:
		return c.getObject(id)
	case types.CollectionOptionSets:
		return c.getOptionSet(id)
	default:
		return nil, types.ErrCollectionNotFound
	}
}

// Set creates or updates an entity. If id is empty, generates a UUID v7.
// Returns the entity ID used.
func (c *collection) Set(id string, data any) (string, error) {
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()
	if !c.backend.attached {
		return "", types.ErrStoreDetached
	}

	switch c.name {
	case types.CollectionPropertyDefs:
		return c.setPropertyDef(id, data)
	case types.CollectionObjectTypes:
		return c.setObjectType(id, data)
	case types.CollectionObjects:
		return c.setObject(id, data)
	case types.CollectionOptionSets:
		return c.setOptionSet(id, data)
	default:
		return "", types.ErrCollectionNotFound
	}
}

// Delete removes an entity and its child records.
// Returns ErrInvalidID if id is empty, ErrNotFound if absent.
func (c *collection) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	c.backend.mu.Lock()
	defer c.backend.mu.Unlock()
	if !c.backend.attached {
		return types.ErrStoreDetached
	}

	switch c.name {
	case types.CollectionPropertyDefs:
		return c.deleteRow("property_defs", "property_def_id", id, nil)
	case types.CollectionObjectTypes:
		return c.deleteRow("object_types", "object_type_id", id, []string{"object_type_properties"})
	case types.CollectionObjects:
		return c.deleteRow("objects", "object_id", id, []string{"object_properties"})
	case types.CollectionOptionSets:
		return c.deleteRow("option_sets", "option_set_id", id, []string{"option_set_options"})
	default:
		return types.ErrCollectionNotFound
	}
}

// Fetch returns entities matching the filter. Empty filter matches all.
func (c *collection) Fetch(filter map[string]any) ([]any, error) {
	c.backend.mu.RLock()
	defer c.backend.mu.RUnlock()
	if !c.backend.attached {
		return nil, types.ErrStoreDetached
	}

	switch c.name {
	case types.CollectionPropertyDefs:
		return c.fetchPropertyDefs(filter)
	case types.CollectionObjectTypes:
		return c.fetchObjectTypes(filter)
	case types.CollectionObjects:
		return c.fetchObjects(filter)
	case types.CollectionOptionSets:
		return c.fetchOptionSets(filter)
	default:
		return nil, types.ErrCollectionNotFound
	}
}

// deleteRow removes one parent row and any child rows keyed by the same
// column. Returns ErrNotFound when the parent row does not exist.
func (c *collection) deleteRow(table, idColumn, id string, childTables []string) error {
	tx, err := c.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, idColumn), id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	for _, child := range childTables {
		if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", child, idColumn), id); err != nil {
			return fmt.Errorf("deleting from %s: %w", child, err)
		}
	}
	return tx.Commit()
}

// buildWhere turns a filter map into a WHERE clause and argument list.
// columns maps permitted filter keys to column names; a key outside the
// map or a value that is not string, bool, or []string is
// ErrInvalidFilter. An empty []string produces a vacuous FALSE clause.
func buildWhere(filter map[string]any, columns map[string]string) (string, []any, error) {
	if len(filter) == 0 {
		return "", nil, nil
	}
	var clauses []string
	var args []any
	for key, raw := range filter {
		column, ok := columns[key]
		if !ok {
			return "", nil, types.ErrInvalidFilter
		}
		switch v := raw.(type) {
		case string:
			clauses = append(clauses, column+" = ?")
			args = append(args, v)
		case bool:
			clauses = append(clauses, column+" = ?")
			args = append(args, v)
		case []string:
			if len(v) == 0 {
				clauses = append(clauses, "1 = 0")
				continue
			}
			placeholders := strings.Repeat("?, ", len(v)-1) + "?"
			clauses = append(clauses, column+" IN ("+placeholders+")")
			for _, item := range v {
				args = append(args, item)
			}
		default:
			return "", nil, types.ErrInvalidFilter
		}
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}
