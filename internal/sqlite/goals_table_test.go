// Unit tests for the goals and goal categories table accessors.
package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

func TestGoalsTable_SetAndGet(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.GoalsTable)
	require.NoError(t, err)

	now := time.Now()
	goal := &types.Goal{
		Title:       "Run a marathon",
		Description: "Train three times a week",
		CategoryID:  "cat-fitness",
		TargetDate:  "2026-12-31",
		Status:      types.GoalStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := table.Set("", goal)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, id, goal.ID)

	entity, err := table.Get(id)
	require.NoError(t, err)
	got := entity.(*types.Goal)

	assert.Equal(t, "Run a marathon", got.Title)
	assert.Equal(t, "cat-fitness", got.CategoryID)
	assert.Equal(t, types.GoalStatusActive, got.Status)
	assert.False(t, got.IsDeleted)
	assert.Nil(t, got.DeletedAt)
	assert.WithinDuration(t, now, got.CreatedAt, time.Second)
}

func TestGoalsTable_Set_PreservesProvidedID(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.GoalsTable)
	require.NoError(t, err)

	id, err := table.Set("fixed-id", &types.Goal{Title: "Imported", CategoryID: "cat-general"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	// Same id upserts instead of duplicating.
	_, err = table.Set("fixed-id", &types.Goal{Title: "Imported v2", CategoryID: "cat-general"})
	require.NoError(t, err)

	entity, err := table.Get("fixed-id")
	require.NoError(t, err)
	assert.Equal(t, "Imported v2", entity.(*types.Goal).Title)

	all, err := table.Fetch(nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGoalsTable_Set_RejectsEmptyTitle(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.GoalsTable)
	require.NoError(t, err)

	_, err = table.Set("", &types.Goal{CategoryID: "cat-general"})
	assert.ErrorIs(t, err, types.ErrInvalidName)
}

func TestGoalsTable_Get_NotFound(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.GoalsTable)
	require.NoError(t, err)

	_, err = table.Get("nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Contains(t, err.Error(), "goal with id nope")
}

func TestGoalsTable_Delete(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.GoalsTable)
	require.NoError(t, err)

	id, err := table.Set("", &types.Goal{Title: "Short lived", CategoryID: "cat-general"})
	require.NoError(t, err)

	require.NoError(t, table.Delete(id))

	_, err = table.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// Deleting again reports not found.
	assert.ErrorIs(t, table.Delete(id), types.ErrNotFound)
}

func TestGoalsTable_Fetch_Filters(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.GoalsTable)
	require.NoError(t, err)

	mk := func(title, category, status string, deleted bool) {
		t.Helper()
		goal := &types.Goal{Title: title, CategoryID: category, Status: status, IsDeleted: deleted}
		_, err := table.Set("", goal)
		require.NoError(t, err)
	}
	mk("a", "cat-fitness", types.GoalStatusActive, false)
	mk("b", "cat-fitness", types.GoalStatusCompleted, false)
	mk("c", "cat-learning", types.GoalStatusActive, true)

	tests := []struct {
		name       string
		filter     map[string]any
		wantTitles []string
	}{
		{"all", nil, []string{"a", "b", "c"}},
		{"live only", map[string]any{"isDeleted": false}, []string{"a", "b"}},
		{"by category", map[string]any{"categoryId": "cat-fitness"}, []string{"a", "b"}},
		{"by status", map[string]any{"status": types.GoalStatusActive}, []string{"a", "c"}},
		{"combined", map[string]any{"categoryId": "cat-fitness", "status": types.GoalStatusActive}, []string{"a"}},
		{"unknown keys ignored", map[string]any{"bogus": 1}, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := table.Fetch(tt.filter)
			require.NoError(t, err)
			titles := make([]string, 0, len(rows))
			for _, r := range rows {
				titles = append(titles, r.(*types.Goal).Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestGoalCategoriesTable_CRUD(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.GoalCategoriesTable)
	require.NoError(t, err)

	id, err := table.Set("", &types.GoalCategory{Name: "Reading", Color: "#795548"})
	require.NoError(t, err)

	entity, err := table.Get(id)
	require.NoError(t, err)
	got := entity.(*types.GoalCategory)
	assert.Equal(t, "Reading", got.Name)
	assert.False(t, got.IsSystem)

	require.NoError(t, table.Delete(id))
	_, err = table.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
