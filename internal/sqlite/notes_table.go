// This file implements the notes table accessor, including tag hydration
// from the junction table.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

var _ types.Table = (*notesTable)(nil)

type notesTable struct {
	backend *Backend
}

const noteColumns = "id, title, rich_content, is_archived, is_deleted, created_at, updated_at"

// Get retrieves a note by ID with its tag list hydrated, soft-deleted rows
// included.
func (nt *notesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := nt.backend.db.QueryRow(
		"SELECT "+noteColumns+" FROM notes WHERE id = ?", id,
	)
	note, err := hydrateNote(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("note with id %s: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("getting note %s: %w", id, err)
	}
	if note.Tags, err = nt.noteTags(id); err != nil {
		return nil, fmt.Errorf("hydrating tags for note %s: %w", id, err)
	}
	return note, nil
}

// Set upserts a note row. Junction rows are untouched; use
// Backend.PutNoteWithTags to write a note and its tag links atomically.
func (nt *notesTable) Set(id string, data any) (string, error) {
	note, ok := data.(*types.Note)
	if !ok {
		return "", types.ErrInvalidData
	}

	if id == "" {
		id = generateID()
	}
	note.ID = id

	tx, err := nt.backend.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertNoteTx(tx, id, note); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing note: %w", err)
	}
	return id, nil
}

// upsertNoteTx writes one note row inside an open transaction.
func upsertNoteTx(tx *sql.Tx, id string, note *types.Note) error {
	content, err := json.Marshal(note.RichContent)
	if err != nil {
		return fmt.Errorf("encoding rich content: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO notes (id, title, rich_content, is_archived, is_deleted, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   rich_content = excluded.rich_content,
		   is_archived = excluded.is_archived,
		   is_deleted = excluded.is_deleted,
		   created_at = excluded.created_at,
		   updated_at = excluded.updated_at`,
		id, note.Title, string(content), note.IsArchived, note.IsDeleted,
		fmtTime(note.CreatedAt), fmtTime(note.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("persisting note: %w", err)
	}
	return nil
}

// Delete physically removes a note and its junction rows in one transaction.
func (nt *notesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	tx, err := nt.backend.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM notes_tags_junction WHERE note_id = ?", id); err != nil {
		return fmt.Errorf("deleting note tag links: %w", err)
	}
	res, err := tx.Exec("DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("note with id %s: %w", id, types.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing note deletion: %w", err)
	}
	return nil
}

var noteFilterKeys = map[string]string{
	"isDeleted":  "is_deleted",
	"isArchived": "is_archived",
}

// Fetch queries notes matching the filter, ordered by updated_at descending,
// with tag lists hydrated.
func (nt *notesTable) Fetch(filter map[string]any) ([]any, error) {
	where, args := filterClause(filter, noteFilterKeys)

	rows, err := nt.backend.db.Query(
		"SELECT "+noteColumns+" FROM notes"+where+" ORDER BY updated_at DESC", args...,
	)
	if err != nil {
		return nil, fmt.Errorf("fetching notes: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		note, err := hydrateNote(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating note: %w", err)
		}
		results = append(results, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}

	for _, r := range results {
		note := r.(*types.Note)
		if note.Tags, err = nt.noteTags(note.ID); err != nil {
			return nil, fmt.Errorf("hydrating tags for note %s: %w", note.ID, err)
		}
	}
	return results, nil
}

// noteTags loads the non-deleted tags linked to a note.
func (nt *notesTable) noteTags(noteID string) ([]types.Tag, error) {
	rows, err := nt.backend.db.Query(
		`SELECT t.id, t.name, t.is_deleted, t.created_at, t.updated_at
		 FROM note_tags t
		 INNER JOIN notes_tags_junction j ON j.tag_id = t.id
		 WHERE j.note_id = ? AND t.is_deleted = 0`,
		noteID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying note tags: %w", err)
	}
	defer rows.Close()

	tags := []types.Tag{}
	for rows.Next() {
		tag, err := hydrateTag(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating tag: %w", err)
		}
		tags = append(tags, *tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating note tags: %w", err)
	}
	return tags, nil
}

func hydrateNote(scan func(...any) error) (*types.Note, error) {
	var n types.Note
	var content, createdAt, updatedAt string
	if err := scan(&n.ID, &n.Title, &content, &n.IsArchived, &n.IsDeleted, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(content), &n.RichContent); err != nil {
		return nil, fmt.Errorf("decoding rich content: %w", err)
	}
	var err error
	if n.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if n.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	n.Tags = []types.Tag{}
	return &n, nil
}
