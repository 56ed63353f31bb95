// This file implements the app settings table accessor. Settings are keyed
// by name rather than a generated ID.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

var _ types.Table = (*settingsTable)(nil)

type settingsTable struct {
	backend *Backend
}

// Get retrieves a setting by key.
func (st *settingsTable) Get(key string) (any, error) {
	if key == "" {
		return nil, types.ErrInvalidID
	}

	row := st.backend.db.QueryRow(
		"SELECT key, value, created_at, updated_at FROM app_settings WHERE key = ?", key,
	)
	setting, err := hydrateSetting(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("setting %s: %w", key, types.ErrNotFound)
		}
		return nil, fmt.Errorf("getting setting %s: %w", key, err)
	}
	return setting, nil
}

// Set upserts a setting. Settings have no generated IDs: the key comes from
// the record itself when the id argument is empty.
func (st *settingsTable) Set(key string, data any) (string, error) {
	setting, ok := data.(*types.Setting)
	if !ok {
		return "", types.ErrInvalidData
	}
	if key == "" {
		key = setting.Key
	}
	if key == "" {
		return "", types.ErrInvalidID
	}
	setting.Key = key

	_, err := st.backend.db.Exec(
		`INSERT INTO app_settings (key, value, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
		   value = excluded.value,
		   updated_at = excluded.updated_at`,
		key, setting.Value, fmtTimePtr(setting.CreatedAt), fmtTimePtr(setting.UpdatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting setting: %w", err)
	}
	return key, nil
}

// Delete removes a setting row.
func (st *settingsTable) Delete(key string) error {
	if key == "" {
		return types.ErrInvalidID
	}
	res, err := st.backend.db.Exec("DELETE FROM app_settings WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("deleting setting %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting setting %s: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("setting %s: %w", key, types.ErrNotFound)
	}
	return nil
}

var settingFilterKeys = map[string]string{
	"key": "key",
}

// Fetch queries settings matching the filter.
func (st *settingsTable) Fetch(filter map[string]any) ([]any, error) {
	where, args := filterClause(filter, settingFilterKeys)

	rows, err := st.backend.db.Query("SELECT key, value, created_at, updated_at FROM app_settings"+where, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching settings: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		setting, err := hydrateSetting(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating setting: %w", err)
		}
		results = append(results, setting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating settings: %w", err)
	}
	return results, nil
}

func hydrateSetting(scan func(...any) error) (*types.Setting, error) {
	var s types.Setting
	var createdAt, updatedAt sql.NullString
	if err := scan(&s.Key, &s.Value, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if s.CreatedAt, err = parseTimePtr(createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTimePtr(updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
