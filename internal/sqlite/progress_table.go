// This file implements the progress entries table accessor.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

var _ types.Table = (*progressTable)(nil)

type progressTable struct {
	backend *Backend
}

const progressColumns = "id, goal_id, value, date, note, created_at, updated_at, is_deleted, deleted_at"

// Get retrieves a progress entry by ID, soft-deleted rows included.
func (pt *progressTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := pt.backend.db.QueryRow(
		"SELECT "+progressColumns+" FROM progress_entries WHERE id = ?", id,
	)
	entry, err := hydrateProgress(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("progress entry with id %s: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("getting progress entry %s: %w", id, err)
	}
	return entry, nil
}

// Set upserts a progress entry.
func (pt *progressTable) Set(id string, data any) (string, error) {
	entry, ok := data.(*types.ProgressEntry)
	if !ok {
		return "", types.ErrInvalidData
	}

	if id == "" {
		id = generateID()
	}
	entry.ID = id

	_, err := pt.backend.db.Exec(
		`INSERT INTO progress_entries (id, goal_id, value, date, note, created_at, updated_at, is_deleted, deleted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   goal_id = excluded.goal_id,
		   value = excluded.value,
		   date = excluded.date,
		   note = excluded.note,
		   created_at = excluded.created_at,
		   updated_at = excluded.updated_at,
		   is_deleted = excluded.is_deleted,
		   deleted_at = excluded.deleted_at`,
		id, entry.GoalID, entry.Value, entry.Date, entry.Note,
		fmtTime(entry.CreatedAt), fmtTime(entry.UpdatedAt), entry.IsDeleted, fmtTimePtr(entry.DeletedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting progress entry: %w", err)
	}
	return id, nil
}

// Delete physically removes a progress entry row.
func (pt *progressTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	res, err := pt.backend.db.Exec("DELETE FROM progress_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting progress entry %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting progress entry %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("progress entry with id %s: %w", id, types.ErrNotFound)
	}
	return nil
}

var progressFilterKeys = map[string]string{
	"isDeleted": "is_deleted",
	"goalId":    "goal_id",
	"date":      "date",
}

// Fetch queries progress entries matching the filter, ordered by date
// descending.
func (pt *progressTable) Fetch(filter map[string]any) ([]any, error) {
	where, args := filterClause(filter, progressFilterKeys)

	rows, err := pt.backend.db.Query(
		"SELECT "+progressColumns+" FROM progress_entries"+where+" ORDER BY date DESC", args...,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching progress entries: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		entry, err := hydrateProgress(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating progress entry: %w", err)
		}
		results = append(results, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress entries: %w", err)
	}
	return results, nil
}

// hydrateProgress scans one progress row through the given scan function,
// which lets sql.Row and sql.Rows share the conversion.
func hydrateProgress(scan func(...any) error) (*types.ProgressEntry, error) {
	var e types.ProgressEntry
	var createdAt, updatedAt string
	var deletedAt sql.NullString
	if err := scan(&e.ID, &e.GoalID, &e.Value, &e.Date, &e.Note,
		&createdAt, &updatedAt, &e.IsDeleted, &deletedAt); err != nil {
		return nil, err
	}
	var err error
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if e.DeletedAt, err = parseTimePtr(deletedAt); err != nil {
		return nil, err
	}
	return &e, nil
}
