// This file implements the goals table accessor for the SQLite backend.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

// Compile-time interface check: goalsTable must implement Table.
var _ types.Table = (*goalsTable)(nil)

// goalsTable implements the Table interface for goals. Each operation
// hydrates/dehydrates between SQLite rows and *types.Goal structs.
type goalsTable struct {
	backend *Backend
}

const goalColumns = "id, title, description, category_id, target_date, status, created_at, updated_at, is_deleted, deleted_at"

// Get retrieves a goal by ID, soft-deleted rows included.
func (gt *goalsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := gt.backend.db.QueryRow(
		"SELECT "+goalColumns+" FROM goals WHERE id = ?", id,
	)
	goal, err := hydrateGoal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("goal with id %s: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("getting goal %s: %w", id, err)
	}
	return goal, nil
}

// Set upserts a goal. When id is empty a UUID v7 is generated; a provided id
// is preserved, which is the archive-import upsert path.
func (gt *goalsTable) Set(id string, data any) (string, error) {
	goal, ok := data.(*types.Goal)
	if !ok {
		return "", types.ErrInvalidData
	}
	if goal.Title == "" {
		return "", types.ErrInvalidName
	}

	if id == "" {
		id = generateID()
	}
	goal.ID = id

	_, err := gt.backend.db.Exec(
		`INSERT INTO goals (id, title, description, category_id, target_date, status, created_at, updated_at, is_deleted, deleted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   title = excluded.title,
		   description = excluded.description,
		   category_id = excluded.category_id,
		   target_date = excluded.target_date,
		   status = excluded.status,
		   created_at = excluded.created_at,
		   updated_at = excluded.updated_at,
		   is_deleted = excluded.is_deleted,
		   deleted_at = excluded.deleted_at`,
		id, goal.Title, goal.Description, goal.CategoryID, goal.TargetDate, goal.Status,
		fmtTime(goal.CreatedAt), fmtTime(goal.UpdatedAt), goal.IsDeleted, fmtTimePtr(goal.DeletedAt),
	)
	if err != nil {
		return "", fmt.Errorf("persisting goal: %w", err)
	}
	return id, nil
}

// Delete physically removes a goal row. Progress entries referencing the goal
// are deliberately left in place; there is no cascade across entity families.
func (gt *goalsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	res, err := gt.backend.db.Exec("DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting goal %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting goal %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("goal with id %s: %w", id, types.ErrNotFound)
	}
	return nil
}

// goalFilterKeys maps filter keys to goal columns.
var goalFilterKeys = map[string]string{
	"isDeleted":  "is_deleted",
	"categoryId": "category_id",
	"status":     "status",
}

// Fetch queries goals matching the filter. Goals keep insertion order; no
// ORDER BY is applied.
func (gt *goalsTable) Fetch(filter map[string]any) ([]any, error) {
	where, args := filterClause(filter, goalFilterKeys)

	rows, err := gt.backend.db.Query("SELECT "+goalColumns+" FROM goals"+where, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching goals: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		goal, err := hydrateGoalFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating goal: %w", err)
		}
		results = append(results, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}
	return results, nil
}

func hydrateGoal(row *sql.Row) (*types.Goal, error) {
	var g types.Goal
	var createdAt, updatedAt string
	var deletedAt sql.NullString
	if err := row.Scan(&g.ID, &g.Title, &g.Description, &g.CategoryID, &g.TargetDate, &g.Status,
		&createdAt, &updatedAt, &g.IsDeleted, &deletedAt); err != nil {
		return nil, err
	}
	return finishGoal(&g, createdAt, updatedAt, deletedAt)
}

func hydrateGoalFromRows(rows *sql.Rows) (*types.Goal, error) {
	var g types.Goal
	var createdAt, updatedAt string
	var deletedAt sql.NullString
	if err := rows.Scan(&g.ID, &g.Title, &g.Description, &g.CategoryID, &g.TargetDate, &g.Status,
		&createdAt, &updatedAt, &g.IsDeleted, &deletedAt); err != nil {
		return nil, err
	}
	return finishGoal(&g, createdAt, updatedAt, deletedAt)
}

func finishGoal(g *types.Goal, createdAt, updatedAt string, deletedAt sql.NullString) (*types.Goal, error) {
	var err error
	if g.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if g.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if g.DeletedAt, err = parseTimePtr(deletedAt); err != nil {
		return nil, err
	}
	return g, nil
}
