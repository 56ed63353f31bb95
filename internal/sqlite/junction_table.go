// This file implements the note-tag junction table accessor. Junction rows
// are keyed by the (noteId, tagId) pair, encoded as "noteId/tagId" for the
// id-based Table operations.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

var _ types.Table = (*junctionTable)(nil)

type junctionTable struct {
	backend *Backend
}

// splitJunctionID splits a "noteId/tagId" composite id.
func splitJunctionID(id string) (noteID, tagID string, err error) {
	parts := strings.SplitN(id, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", types.ErrInvalidID
	}
	return parts[0], parts[1], nil
}

// Get retrieves a junction row by composite id.
func (jt *junctionTable) Get(id string) (any, error) {
	noteID, tagID, err := splitJunctionID(id)
	if err != nil {
		return nil, err
	}

	row := jt.backend.db.QueryRow(
		"SELECT note_id, tag_id FROM notes_tags_junction WHERE note_id = ? AND tag_id = ?",
		noteID, tagID,
	)
	var j types.NoteTagJunction
	if err := row.Scan(&j.NoteID, &j.TagID); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("note-tag link %s: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("getting note-tag link %s: %w", id, err)
	}
	return &j, nil
}

// Set inserts a junction row. The pair is the key, so the id argument is
// ignored in favor of the record's own fields; inserting an existing pair is
// a no-op.
func (jt *junctionTable) Set(_ string, data any) (string, error) {
	j, ok := data.(*types.NoteTagJunction)
	if !ok {
		return "", types.ErrInvalidData
	}
	if j.NoteID == "" || j.TagID == "" {
		return "", types.ErrInvalidID
	}

	_, err := jt.backend.db.Exec(
		"INSERT OR IGNORE INTO notes_tags_junction (note_id, tag_id) VALUES (?, ?)",
		j.NoteID, j.TagID,
	)
	if err != nil {
		return "", fmt.Errorf("persisting note-tag link: %w", err)
	}
	return j.NoteID + "/" + j.TagID, nil
}

// Delete removes a junction row by composite id.
func (jt *junctionTable) Delete(id string) error {
	noteID, tagID, err := splitJunctionID(id)
	if err != nil {
		return err
	}

	res, err := jt.backend.db.Exec(
		"DELETE FROM notes_tags_junction WHERE note_id = ? AND tag_id = ?", noteID, tagID,
	)
	if err != nil {
		return fmt.Errorf("deleting note-tag link %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting note-tag link %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("note-tag link %s: %w", id, types.ErrNotFound)
	}
	return nil
}

var junctionFilterKeys = map[string]string{
	"noteId": "note_id",
	"tagId":  "tag_id",
}

// Fetch queries junction rows matching the filter.
func (jt *junctionTable) Fetch(filter map[string]any) ([]any, error) {
	where, args := filterClause(filter, junctionFilterKeys)

	rows, err := jt.backend.db.Query("SELECT note_id, tag_id FROM notes_tags_junction"+where, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching note-tag links: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		var j types.NoteTagJunction
		if err := rows.Scan(&j.NoteID, &j.TagID); err != nil {
			return nil, fmt.Errorf("hydrating note-tag link: %w", err)
		}
		link := j
		results = append(results, &link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating note-tag links: %w", err)
	}
	return results, nil
}
