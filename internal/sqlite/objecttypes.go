// Object type collection: parent rows in object_types with the ordered
// property list in object_type_properties, hydrated on read.

package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/facetframe/facet/pkg/types"
)

// objectTypeFilterColumns maps permitted filter keys to columns.
var objectTypeFilterColumns = map[string]string{
	"id":   "object_type_id",
	"user": "user_id",
	"name": "name",
}

func (c *collection) getObjectType(id string) (any, error) {
	row := c.backend.db.QueryRow(
		"SELECT object_type_id, user_id, name, name_property FROM object_types WHERE object_type_id = ?", id)
	var t types.ObjectType
	err := row.Scan(&t.ID, &t.User, &t.Name, &t.NameProperty)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting object type %s: %w", id, err)
	}
	if err := c.loadTypeProperties(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *collection) loadTypeProperties(t *types.ObjectType) error {
	rows, err := c.backend.db.Query(
		"SELECT property_def_id FROM object_type_properties WHERE object_type_id = ? ORDER BY position", t.ID)
	if err != nil {
		return fmt.Errorf("loading object type properties: %w", err)
	}
	defer rows.Close()
	t.Properties = nil
	for rows.Next() {
		var propID string
		if err := rows.Scan(&propID); err != nil {
			return fmt.Errorf("scanning object type property: %w", err)
		}
		t.Properties = append(t.Properties, propID)
	}
	return rows.Err()
}

func (c *collection) setObjectType(id string, data any) (string, error) {
	t, ok := data.(*types.ObjectType)
	if !ok {
		return "", types.ErrInvalidData
	}
	if id == "" && t.ID == "" {
		t.ID = newUUID()
	} else if id != "" {
		t.ID = id
	}

	tx, err := c.backend.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO object_types (object_type_id, user_id, name, name_property)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(object_type_id) DO UPDATE SET
			user_id = excluded.user_id,
			name = excluded.name,
			name_property = excluded.name_property`,
		t.ID, t.User, t.Name, t.NameProperty)
	if err != nil {
		return "", fmt.Errorf("upserting object type: %w", err)
	}

	// Rewrite the ordered property list wholesale.
	if _, err := tx.Exec("DELETE FROM object_type_properties WHERE object_type_id = ?", t.ID); err != nil {
		return "", fmt.Errorf("clearing object type properties: %w", err)
	}
	for i, propID := range t.Properties {
		_, err := tx.Exec(
			"INSERT INTO object_type_properties (object_type_id, position, property_def_id) VALUES (?, ?, ?)",
			t.ID, i, propID)
		if err != nil {
			return "", fmt.Errorf("inserting object type property: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing object type: %w", err)
	}
	return t.ID, nil
}

func (c *collection) fetchObjectTypes(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, objectTypeFilterColumns)
	if err != nil {
		return nil, err
	}
	rows, err := c.backend.db.Query(
		"SELECT object_type_id, user_id, name, name_property FROM object_types"+where, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching object types: %w", err)
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		var t types.ObjectType
		if err := rows.Scan(&t.ID, &t.User, &t.Name, &t.NameProperty); err != nil {
			return nil, fmt.Errorf("scanning object type: %w", err)
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, entity := range out {
		if err := c.loadTypeProperties(entity.(*types.ObjectType)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
