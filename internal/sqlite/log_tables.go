// This file implements the daily-log category and entry table accessors.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

var (
	_ types.Table = (*logCategoriesTable)(nil)
	_ types.Table = (*logEntriesTable)(nil)
)

type logCategoriesTable struct {
	backend *Backend
}

const logCategoryColumns = "id, name, is_fixed, is_deleted, created_at, updated_at"

// Get retrieves a daily-log category by ID.
func (ct *logCategoriesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := ct.backend.db.QueryRow(
		"SELECT "+logCategoryColumns+" FROM daily_log_categories WHERE id = ?", id,
	)
	cat, err := hydrateLogCategory(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("log category with id %s: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("getting log category %s: %w", id, err)
	}
	return cat, nil
}

// Set upserts a daily-log category.
func (ct *logCategoriesTable) Set(id string, data any) (string, error) {
	cat, ok := data.(*types.DailyLogCategory)
	if !ok {
		return "", types.ErrInvalidData
	}
	if cat.Name == "" {
		return "", types.ErrInvalidName
	}

	if id == "" {
		id = generateID()
	}
	cat.ID = id

	_, err := ct.backend.db.Exec(
		`INSERT INTO daily_log_categories (id, name, is_fixed, is_deleted, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   is_fixed = excluded.is_fixed,
		   is_deleted = excluded.is_deleted,
		   created_at = excluded.created_at,
		   updated_at = excluded.updated_at`,
		id, cat.Name, cat.IsFixed, cat.IsDeleted, fmtTime(cat.CreatedAt), fmtTimePtr(cat.UpdatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting log category: %w", err)
	}
	return id, nil
}

// Delete physically removes a daily-log category row. The fixed-category
// guard lives in the service layer.
func (ct *logCategoriesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	res, err := ct.backend.db.Exec("DELETE FROM daily_log_categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting log category %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting log category %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("log category with id %s: %w", id, types.ErrNotFound)
	}
	return nil
}

var logCategoryFilterKeys = map[string]string{
	"isDeleted": "is_deleted",
	"isFixed":   "is_fixed",
	"name":      "name",
}

// Fetch queries daily-log categories matching the filter.
func (ct *logCategoriesTable) Fetch(filter map[string]any) ([]any, error) {
	where, args := filterClause(filter, logCategoryFilterKeys)

	rows, err := ct.backend.db.Query("SELECT "+logCategoryColumns+" FROM daily_log_categories"+where, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching log categories: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		cat, err := hydrateLogCategory(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating log category: %w", err)
		}
		results = append(results, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating log categories: %w", err)
	}
	return results, nil
}

func hydrateLogCategory(scan func(...any) error) (*types.DailyLogCategory, error) {
	var c types.DailyLogCategory
	var createdAt string
	var updatedAt sql.NullString
	if err := scan(&c.ID, &c.Name, &c.IsFixed, &c.IsDeleted, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTimePtr(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

type logEntriesTable struct {
	backend *Backend
}

const logEntryColumns = "id, log_date, category_id, note, is_deleted, created_at, updated_at"

// Get retrieves a daily-log entry by ID, soft-deleted rows included.
func (et *logEntriesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := et.backend.db.QueryRow(
		"SELECT "+logEntryColumns+" FROM daily_log_entries WHERE id = ?", id,
	)
	entry, err := hydrateLogEntry(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("daily log entry with id %s: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("getting daily log entry %s: %w", id, err)
	}
	return entry, nil
}

// Set upserts a daily-log entry.
func (et *logEntriesTable) Set(id string, data any) (string, error) {
	entry, ok := data.(*types.DailyLogEntry)
	if !ok {
		return "", types.ErrInvalidData
	}

	if id == "" {
		id = generateID()
	}
	entry.ID = id

	_, err := et.backend.db.Exec(
		`INSERT INTO daily_log_entries (id, log_date, category_id, note, is_deleted, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   log_date = excluded.log_date,
		   category_id = excluded.category_id,
		   note = excluded.note,
		   is_deleted = excluded.is_deleted,
		   created_at = excluded.created_at,
		   updated_at = excluded.updated_at`,
		id, entry.LogDate, entry.CategoryID, entry.Note, entry.IsDeleted,
		fmtTime(entry.CreatedAt), fmtTimePtr(entry.UpdatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting daily log entry: %w", err)
	}
	return id, nil
}

// Delete physically removes a daily-log entry row.
func (et *logEntriesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	res, err := et.backend.db.Exec("DELETE FROM daily_log_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting daily log entry %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting daily log entry %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("daily log entry with id %s: %w", id, types.ErrNotFound)
	}
	return nil
}

var logEntryFilterKeys = map[string]string{
	"isDeleted":  "is_deleted",
	"logDate":    "log_date",
	"categoryId": "category_id",
}

// Fetch queries daily-log entries matching the filter, ordered by log date
// descending.
func (et *logEntriesTable) Fetch(filter map[string]any) ([]any, error) {
	where, args := filterClause(filter, logEntryFilterKeys)

	rows, err := et.backend.db.Query(
		"SELECT "+logEntryColumns+" FROM daily_log_entries"+where+" ORDER BY log_date DESC", args...,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching daily log entries: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		entry, err := hydrateLogEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating daily log entry: %w", err)
		}
		results = append(results, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily log entries: %w", err)
	}
	return results, nil
}

func hydrateLogEntry(scan func(...any) error) (*types.DailyLogEntry, error) {
	var e types.DailyLogEntry
	var createdAt string
	var updatedAt sql.NullString
	if err := scan(&e.ID, &e.LogDate, &e.CategoryID, &e.Note, &e.IsDeleted, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTimePtr(updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
