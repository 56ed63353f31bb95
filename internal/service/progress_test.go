package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

func TestProgressService_AddEntry(t *testing.T) {
	s := NewProgressService(setupStore(t), nil)

	entry, err := s.AddEntry(types.ProgressEntry{
		GoalID: "goal-1",
		Value:  5,
		Date:   "2026-08-01",
		Note:   "morning run",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.False(t, entry.IsDeleted)

	entries, ok := s.Entries().Latest()
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, 5.0, entries[0].Value)
}

func TestProgressService_EntriesForGoal(t *testing.T) {
	s := NewProgressService(setupStore(t), nil)

	mk := func(goalID, date string, value float64) *types.ProgressEntry {
		t.Helper()
		e, err := s.AddEntry(types.ProgressEntry{GoalID: goalID, Value: value, Date: date})
		require.NoError(t, err)
		return e
	}
	mk("goal-a", "2026-08-01", 1)
	mk("goal-a", "2026-08-03", 3)
	other := mk("goal-b", "2026-08-02", 2)
	deleted := mk("goal-a", "2026-08-04", 4)
	require.NoError(t, s.DeleteEntry(deleted.ID, true))

	entries := s.EntriesForGoal("goal-a")
	require.Len(t, entries, 2)
	assert.Equal(t, "2026-08-03", entries[0].Date, "newest date first")
	assert.Equal(t, "2026-08-01", entries[1].Date)
	for _, e := range entries {
		assert.NotEqual(t, other.ID, e.ID)
	}

	assert.Empty(t, s.EntriesForGoal("goal-none"))
}

func TestProgressService_UpdateEntry(t *testing.T) {
	s := NewProgressService(setupStore(t), nil)

	entry, err := s.AddEntry(types.ProgressEntry{GoalID: "goal-1", Value: 1, Date: "2026-08-01"})
	require.NoError(t, err)

	value := 7.5
	note := "evening session"
	updated, err := s.UpdateEntry(entry.ID, types.ProgressUpdate{Value: &value, Note: &note})
	require.NoError(t, err)

	assert.Equal(t, 7.5, updated.Value)
	assert.Equal(t, "evening session", updated.Note)
	assert.Equal(t, "2026-08-01", updated.Date, "untouched fields survive")

	_, err = s.UpdateEntry("missing", types.ProgressUpdate{Value: &value})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestProgressService_DeleteAndRestore(t *testing.T) {
	store := setupStore(t)
	s := NewProgressService(store, nil)

	entry, err := s.AddEntry(types.ProgressEntry{GoalID: "goal-1", Value: 1, Date: "2026-08-01"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteEntry(entry.ID, true))
	entries, _ := s.Entries().Latest()
	assert.Empty(t, entries)

	require.NoError(t, s.RestoreEntry(entry.ID))
	entries, _ = s.Entries().Latest()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].IsDeleted)

	require.NoError(t, s.DeleteEntry(entry.ID, false))
	tbl, err := store.GetTable(types.ProgressTable)
	require.NoError(t, err)
	_, err = tbl.Get(entry.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
