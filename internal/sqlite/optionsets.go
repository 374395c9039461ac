// Option set collection: parent rows in option_sets with ordered
// options in option_set_options.

package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/facetframe/facet/pkg/types"
)

// optionSetFilterColumns maps permitted filter keys to columns.
var optionSetFilterColumns = map[string]string{
	"id":   "option_set_id",
	"name": "name",
}

func (c *collection) getOptionSet(id string) (any, error) {
	row := c.backend.db.QueryRow(
		"SELECT option_set_id, name FROM option_sets WHERE option_set_id = ?", id)
	var s types.OptionSet
	err := row.Scan(&s.ID, &s.Name)
	if err == sql.ErrNoRows {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting option set %s: %w", id, err)
	}
	if err := c.loadOptions(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *collection) loadOptions(s *types.OptionSet) error {
	rows, err := c.backend.db.Query(
		"SELECT name FROM option_set_options WHERE option_set_id = ? ORDER BY position", s.ID)
	if err != nil {
		return fmt.Errorf("loading options: %w", err)
	}
	defer rows.Close()
	s.Options = nil
	for rows.Next() {
		var opt types.Option
		if err := rows.Scan(&opt.Name); err != nil {
			return fmt.Errorf("scanning option: %w", err)
		}
		s.Options = append(s.Options, opt)
	}
	return rows.Err()
}

func (c *collection) setOptionSet(id string, data any) (string, error) {
	s, ok := data.(*types.OptionSet)
	if !ok {
		return "", types.ErrInvalidData
	}
	if id == "" && s.ID == "" {
		s.ID = newUUID()
	} else if id != "" {
		s.ID = id
	}

	tx, err := c.backend.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO option_sets (option_set_id, name)
		VALUES (?, ?)
		ON CONFLICT(option_set_id) DO UPDATE SET name = excluded.name`,
		s.ID, s.Name)
	if err != nil {
		return "", fmt.Errorf("upserting option set: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM option_set_options WHERE option_set_id = ?", s.ID); err != nil {
		return "", fmt.Errorf("clearing options: %w", err)
	}
	for i, opt := range s.Options {
		_, err := tx.Exec(
			"INSERT INTO option_set_options (option_set_id, position, name) VALUES (?, ?, ?)",
			s.ID, i, opt.Name)
		if err != nil {
			return "", fmt.Errorf("inserting option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing option set: %w", err)
	}
	return s.ID, nil
}

func (c *collection) fetchOptionSets(filter map[string]any) ([]any, error) {
	where, args, err := buildWhere(filter, optionSetFilterColumns)
	if err != nil {
		return nil, err
	}
	rows, err := c.backend.db.Query("SELECT option_set_id, name FROM option_sets"+where, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching option sets: %w", err)
	}
	defer rows.Close()

	var out []any
	for rows.Next() {
		var s types.OptionSet
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scanning option set: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, entity := range out {
		if err := c.loadOptions(entity.(*types.OptionSet)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
