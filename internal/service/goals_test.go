// Unit tests for the goal service: CRUD, soft delete, restore, and the
// system category guard.
package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/primeos/internal/sqlite"
	"github.com/mesh-intelligence/primeos/pkg/types"
)

// setupStore creates an attached SQLite backend over a temp directory with
// the default rows seeded.
func setupStore(t *testing.T) *sqlite.Backend {
	t.Helper()
	b := sqlite.NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestGoalService_AddGoal(t *testing.T) {
	s := NewGoalService(setupStore(t), nil)

	goal, err := s.AddGoal(types.Goal{
		Title:      "Run a marathon",
		CategoryID: "cat-fitness",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, goal.ID)
	assert.Equal(t, types.GoalStatusActive, goal.Status, "empty status defaults to active")
	assert.False(t, goal.CreatedAt.IsZero())
	assert.Equal(t, goal.CreatedAt, goal.UpdatedAt)
	assert.False(t, goal.IsDeleted)

	goals, ok := s.Goals().Latest()
	require.True(t, ok, "mutation must publish a snapshot")
	require.Len(t, goals, 1)
	assert.Equal(t, goal.ID, goals[0].ID)
}

func TestGoalService_UpdateGoal(t *testing.T) {
	s := NewGoalService(setupStore(t), nil)

	goal, err := s.AddGoal(types.Goal{Title: "Original", CategoryID: "cat-general"})
	require.NoError(t, err)

	title := "Renamed"
	status := types.GoalStatusCompleted
	updated, err := s.UpdateGoal(goal.ID, types.GoalUpdate{Title: &title, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, types.GoalStatusCompleted, updated.Status)
	assert.Equal(t, "cat-general", updated.CategoryID, "untouched fields survive")
	assert.True(t, updated.UpdatedAt.After(goal.UpdatedAt) || updated.UpdatedAt.Equal(goal.UpdatedAt))

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.UpdateGoal("missing", types.GoalUpdate{Title: &title})
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestGoalService_SoftDeleteAndRestore(t *testing.T) {
	store := setupStore(t)
	s := NewGoalService(store, nil)

	goal, err := s.AddGoal(types.Goal{Title: "Reversible", CategoryID: "cat-general"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteGoal(goal.ID, true))

	goals, _ := s.Goals().Latest()
	assert.Empty(t, goals, "soft-deleted goal leaves the live snapshot")

	// The row itself survives with the delete markers set.
	tbl, err := store.GetTable(types.GoalsTable)
	require.NoError(t, err)
	entity, err := tbl.Get(goal.ID)
	require.NoError(t, err)
	stored := entity.(*types.Goal)
	assert.True(t, stored.IsDeleted)
	require.NotNil(t, stored.DeletedAt)

	require.NoError(t, s.RestoreGoal(goal.ID))

	goals, _ = s.Goals().Latest()
	require.Len(t, goals, 1)
	assert.False(t, goals[0].IsDeleted)
	assert.Nil(t, goals[0].DeletedAt)
}

func TestGoalService_HardDelete(t *testing.T) {
	store := setupStore(t)
	s := NewGoalService(store, nil)

	goal, err := s.AddGoal(types.Goal{Title: "Gone for good", CategoryID: "cat-general"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteGoal(goal.ID, false))

	tbl, err := store.GetTable(types.GoalsTable)
	require.NoError(t, err)
	_, err = tbl.Get(goal.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// Restore after hard delete fails.
	assert.ErrorIs(t, s.RestoreGoal(goal.ID), types.ErrNotFound)
}

func TestGoalService_Categories(t *testing.T) {
	s := NewGoalService(setupStore(t), nil)

	s.LoadCategories()
	cats, ok := s.Categories().Latest()
	require.True(t, ok)
	assert.Len(t, cats, 4, "seeded system categories")

	cat, err := s.AddCategory("Reading", "#795548")
	require.NoError(t, err)
	assert.False(t, cat.IsSystem)

	cats, _ = s.Categories().Latest()
	assert.Len(t, cats, 5)

	name := "Books"
	updated, err := s.UpdateCategory(cat.ID, types.CategoryUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Books", updated.Name)

	require.NoError(t, s.DeleteCategory(cat.ID))
	cats, _ = s.Categories().Latest()
	assert.Len(t, cats, 4)
}

func TestGoalService_DeleteCategory_SystemGuard(t *testing.T) {
	s := NewGoalService(setupStore(t), nil)

	err := s.DeleteCategory("cat-fitness")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSystemCategory)
	assert.Equal(t, "Cannot delete system categories", err.Error())

	// The category is still there.
	s.LoadCategories()
	cats, _ := s.Categories().Latest()
	assert.Len(t, cats, 4)
}
