// This file implements the note tags table accessor.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

var _ types.Table = (*tagsTable)(nil)

type tagsTable struct {
	backend *Backend
}

const tagColumns = "id, name, is_deleted, created_at, updated_at"

// Get retrieves a tag by ID.
func (tt *tagsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := tt.backend.db.QueryRow(
		"SELECT "+tagColumns+" FROM note_tags WHERE id = ?", id,
	)
	tag, err := hydrateTag(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("tag with id %s: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("getting tag %s: %w", id, err)
	}
	return tag, nil
}

// Set upserts a tag.
func (tt *tagsTable) Set(id string, data any) (string, error) {
	tag, ok := data.(*types.Tag)
	if !ok {
		return "", types.ErrInvalidData
	}
	if tag.Name == "" {
		return "", types.ErrInvalidName
	}

	if id == "" {
		id = generateID()
	}
	tag.ID = id

	_, err := tt.backend.db.Exec(
		`INSERT INTO note_tags (id, name, is_deleted, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   is_deleted = excluded.is_deleted,
		   created_at = excluded.created_at,
		   updated_at = excluded.updated_at`,
		id, tag.Name, tag.IsDeleted, fmtTime(tag.CreatedAt), fmtTimePtr(tag.UpdatedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting tag: %w", err)
	}
	return id, nil
}

// Delete physically removes a tag and its junction rows in one transaction.
func (tt *tagsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	tx, err := tt.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM notes_tags_junction WHERE tag_id = ?", id); err != nil {
		return fmt.Errorf("deleting tag links: %w", err)
	}
	res, err := tx.Exec("DELETE FROM note_tags WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting tag %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting tag %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("tag with id %s: %w", id, types.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing tag deletion: %w", err)
	}
	return nil
}

var tagFilterKeys = map[string]string{
	"isDeleted": "is_deleted",
	"name":      "name",
}

// Fetch queries tags matching the filter.
func (tt *tagsTable) Fetch(filter map[string]any) ([]any, error) {
	where, args := filterClause(filter, tagFilterKeys)

	rows, err := tt.backend.db.Query("SELECT "+tagColumns+" FROM note_tags"+where, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching tags: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		tag, err := hydrateTag(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating tag: %w", err)
		}
		results = append(results, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return results, nil
}

func hydrateTag(scan func(...any) error) (*types.Tag, error) {
	var t types.Tag
	var createdAt string
	var updatedAt sql.NullString
	if err := scan(&t.ID, &t.Name, &t.IsDeleted, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTimePtr(updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
