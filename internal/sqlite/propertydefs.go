// Property definition collection: rows in property_defs with the
// required-for index stored as a JSON array of object type IDs.

package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/facetframe/facet/pkg/types"
)

// propertyDefFilterColumns maps permitted filter keys to columns.
var propertyDefFilterColumns = map[string]string{
	"id":        "property_def_id",
	"name":      "name",
	"data_type": "data_type",
}

func (c *collection) getPropertyDef(id string) (any, error) {
	row := c.backend.db.QueryRow(
		"SELECT property_def_id, name, data_type, required_for FROM property_defs WHERE property_def_id = ?", id)
	def, err := scanPropertyDef(row.Scan)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting property definition %s: %w", id, err)
	}
	return def, nil
}

func scanPropertyDef(scan func(...any) error) (*types.PropertyDefinition, error) {
	var def types.PropertyDefinition
	var requiredFor string
	if err := scan(&def.ID, &def.Name, &def.DataType, &requiredFor); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(requiredFor), &def.RequiredFor); err != nil {
		return nil, fmt.Errorf("parsing required_for: %w", err)
	}
	return &def, nil
}

func (c *collection) setPropertyDef(id string, data any) (string, error) {
	def, ok := data.(*types.PropertyDefinition)
	if !ok {
		return "", types.ErrInvalidData
	}
	if id == "" && def.ID == "" {
		def.ID = newUUID()
	} else if id != "" {
		def.ID = id
	}

	requiredFor := def.RequiredFor
	if requiredFor == nil {
		requiredFor = []string{}
	}
	encoded, err := json.Marshal(requiredFor)
	if err != nil {
		return "", fmt.Errorf("encoding required_for: %w", err)
	}

	_, err = c.backend.db.Exec(`
		INSERT INTO property_defs (property_def_id, name, data_type, required_for)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(property_def_id) DO UPDATE SET
			name = excluded.name,
			data_type = excluded.data_type,
			required_for = excluded.required_for`,
		def.ID, def.Name, def.DataType, string(encoded))
	if err != nil {
		return "", fmt.Errorf("upserting property definition: %w", err)
	}
	return def.ID, nil
}

func (c *collection) fetchPropertyDefs(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, propertyDefFilterColumns)
	if err != nil {
		return nil, err
	}
	rows, err := c.backend.db.Query(
		"SELECT property_def_id, name, data_type, required_for FROM property_defs"+where, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching property definitions: %w", err)
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		def, err := scanPropertyDef(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning property definition: %w", err)
		}
		out = append(out, def)
	}
	return out, rows.Err()
}
