// Object collection: parent rows in objects with the ordered property
// values in object_properties. Values are stored as JSON scalars next to
// their denormalized name and data type, and rehydrated into the
// canonical variant through the codec.

package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/facetframe/facet/pkg/codec"
	"github.com/facetframe/facet/pkg/types"
)

// objectFilterColumns maps permitted filter keys to columns.
var objectFilterColumns = map[string]string{
	"id":   "object_id",
	"user": "user_id",
	"type": "object_type_id",
}

func (c *collection) getObject(id string) (any, error) {
	row := c.backend.db.QueryRow(
		"SELECT object_id, user_id, object_type_id, name_property FROM objects WHERE object_id = ?", id)
	var o types.Object
	err := row.Scan(&o.ID, &o.User, &o.Type, &o.NameProperty)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting object %s: %w", id, err)
	}
	if err := c.loadObjectProperties(&o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *collection) loadObjectProperties(o *types.Object) error {
	rows, err := c.backend.db.Query(
		"SELECT property_def_id, name, data_type, value FROM object_properties WHERE object_id = ? ORDER BY position", o.ID)
	if err != nil {
		return fmt.Errorf("loading object properties: %w", err)
	}
	defer rows.Close()
	o.Properties = nil
	for rows.Next() {
		var pv types.PropertyValue
		var valueJSON string
		if err := rows.Scan(&pv.PropertyDef, &pv.Name, &pv.DataType, &valueJSON); err != nil {
			return fmt.Errorf("scanning object property: %w", err)
		}
		var raw any
		if err := json.Unmarshal([]byte(valueJSON), &raw); err != nil {
			return fmt.Errorf("parsing object property value: %w", err)
		}
		pv.Value, err = codec.Parse(raw, pv.DataType)
		if err != nil {
			return fmt.Errorf("decoding object property value: %w", err)
		}
		o.Properties = append(o.Properties, pv)
	}
	return rows.Err()
}

func (c *collection) setObject(id string, data any) (string, error) {
	o, ok := data.(*types.Object)
	if !ok {
		return "", types.ErrInvalidData
	}
	if id == "" && o.ID == "" {
		o.ID = newUUID()
	} else if id != "" {
		o.ID = id
	}

	tx, err := c.backend.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO objects (object_id, user_id, object_type_id, name_property)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(object_id) DO UPDATE SET
			user_id = excluded.user_id,
			object_type_id = excluded.object_type_id,
			name_property = excluded.name_property`,
		o.ID, o.User, o.Type, o.NameProperty)
	if err != nil {
		return "", fmt.Errorf("upserting object: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM object_properties WHERE object_id = ?", o.ID); err != nil {
		return "", fmt.Errorf("clearing object properties: %w", err)
	}
	for i, pv := range o.Properties {
		encoded, err := json.Marshal(pv.Value.Scalar())
		if err != nil {
			return "", fmt.Errorf("encoding object property value: %w", err)
		}
		_, err = tx.Exec(
			"INSERT INTO object_properties (object_id, position, property_def_id, name, data_type, value) VALUES (?, ?, ?, ?, ?, ?)",
			o.ID, i, pv.PropertyDef, pv.Name, pv.DataType, string(encoded))
		if err != nil {
			return "", fmt.Errorf("inserting object property: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing object: %w", err)
	}
	return o.ID, nil
}

func (c *collection) fetchObjects(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, objectFilterColumns)
	if err != nil {
		return nil, err
	}
	rows, err := c.backend.db.Query(
		"SELECT object_id, user_id, object_type_id, name_property FROM objects"+where, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching objects: %w", err)
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		var o types.Object
		if err := rows.Scan(&o.ID, &o.User, &o.Type, &o.NameProperty); err != nil {
			return nil, fmt.Errorf("scanning object: %w", err)
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, entity := range out {
		if err := c.loadObjectProperties(entity.(*types.Object)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
