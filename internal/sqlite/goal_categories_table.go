// This file implements the goal categories table accessor.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

var _ types.Table = (*goalCategoriesTable)(nil)

type goalCategoriesTable struct {
	backend *Backend
}

const goalCategoryColumns = "id, name, color, created_at, is_system"

// Get retrieves a goal category by ID.
func (ct *goalCategoriesTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := ct.backend.db.QueryRow(
		"SELECT "+goalCategoryColumns+" FROM goal_categories WHERE id = ?", id,
	)
	var c types.GoalCategory
	var createdAt string
	if err := row.Scan(&c.ID, &c.Name, &c.Color, &createdAt, &c.IsSystem); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("category with id %s: %w", id, types.ErrNotFound)
		}
		return nil, fmt.Errorf("getting category %s: %w", id, err)
	}
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Set upserts a goal category.
func (ct *goalCategoriesTable) Set(id string, data any) (string, error) {
	cat, ok := data.(*types.GoalCategory)
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
		`INSERT INTO goal_categories (id, name, color, created_at, is_system)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   color = excluded.color,
		   created_at = excluded.created_at,
		   is_system = excluded.is_system`,
		id, cat.Name, cat.Color, fmtTime(cat.CreatedAt), cat.IsSystem,
	)
	if err != nil {
		return "", fmt.Errorf("persisting category: %w", err)
	}
	return id, nil
}

// Delete physically removes a category row. The system-category guard lives
// in the service layer, which checks IsSystem before calling Delete.
func (ct *goalCategoriesTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	res, err := ct.backend.db.Exec("DELETE FROM goal_categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting category %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("category with id %s: %w", id, types.ErrNotFound)
	}
	return nil
}

var goalCategoryFilterKeys = map[string]string{
	"name":     "name",
	"isSystem": "is_system",
}

// Fetch queries goal categories matching the filter.
func (ct *goalCategoriesTable) Fetch(filter map[string]any) ([]any, error) {
	where, args := filterClause(filter, goalCategoryFilterKeys)

	rows, err := ct.backend.db.Query("SELECT "+goalCategoryColumns+" FROM goal_categories"+where, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		var c types.GoalCategory
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &createdAt, &c.IsSystem); err != nil {
			return nil, fmt.Errorf("hydrating category: %w", err)
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		cat := c
		results = append(results, &cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return results, nil
}
