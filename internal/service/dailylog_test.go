package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

func TestDailyLogService_Categories(t *testing.T) {
	s := NewDailyLogService(setupStore(t), nil)

	s.LoadCategories()
	cats, ok := s.Categories().Latest()
	require.True(t, ok)
	assert.Len(t, cats, 3, "seeded fixed categories")

	cat, err := s.AddCategory("Mood")
	require.NoError(t, err)
	assert.False(t, cat.IsFixed)
	assert.NotEmpty(t, cat.ID)

	cats, _ = s.Categories().Latest()
	assert.Len(t, cats, 4)

	require.NoError(t, s.DeleteCategory(cat.ID))
	cats, _ = s.Categories().Latest()
	assert.Len(t, cats, 3)
}

func TestDailyLogService_DeleteCategory_FixedGuard(t *testing.T) {
	s := NewDailyLogService(setupStore(t), nil)

	err := s.DeleteCategory("cat-location")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSystemCategory)

	s.LoadCategories()
	cats, _ := s.Categories().Latest()
	assert.Len(t, cats, 3)
}

func TestDailyLogService_AddEntry(t *testing.T) {
	s := NewDailyLogService(setupStore(t), nil)

	entry, err := s.AddEntry(types.DailyLogEntry{
		LogDate:    "2026-08-15",
		CategoryID: "cat-location",
		Note:       "office",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.Nil(t, entry.UpdatedAt, "UpdatedAt stays unset until the first update")

	entries, ok := s.Entries().Latest()
	require.True(t, ok)
	assert.Len(t, entries, 1)
}

func TestDailyLogService_LoadEntries_DateScope(t *testing.T) {
	s := NewDailyLogService(setupStore(t), nil)

	mk := func(date, note string) {
		t.Helper()
		_, err := s.AddEntry(types.DailyLogEntry{LogDate: date, CategoryID: "cat-location", Note: note})
		require.NoError(t, err)
	}
	mk("2026-08-14", "home")
	mk("2026-08-15", "office")
	mk("2026-08-15", "gym")

	s.LoadEntries("2026-08-15")
	entries, _ := s.Entries().Latest()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "2026-08-15", e.LogDate)
	}

	s.LoadEntries("")
	entries, _ = s.Entries().Latest()
	assert.Len(t, entries, 3)

	byDate := s.EntriesByDate("2026-08-14")
	require.Len(t, byDate, 1)
	assert.Equal(t, "home", byDate[0].Note)
	assert.Empty(t, s.EntriesByDate("2026-01-01"))
}

func TestDailyLogService_UpdateEntry(t *testing.T) {
	s := NewDailyLogService(setupStore(t), nil)

	entry, err := s.AddEntry(types.DailyLogEntry{LogDate: "2026-08-15", CategoryID: "cat-location", Note: "office"})
	require.NoError(t, err)

	note := "remote"
	updated, err := s.UpdateEntry(entry.ID, types.LogEntryUpdate{Note: &note})
	require.NoError(t, err)

	assert.Equal(t, "remote", updated.Note)
	assert.Equal(t, "cat-location", updated.CategoryID)
	require.NotNil(t, updated.UpdatedAt)

	_, err = s.UpdateEntry("missing", types.LogEntryUpdate{Note: &note})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestDailyLogService_SoftDeleteAndRestore(t *testing.T) {
	store := setupStore(t)
	s := NewDailyLogService(store, nil)

	entry, err := s.AddEntry(types.DailyLogEntry{LogDate: "2026-08-15", CategoryID: "cat-location", Note: "office"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteEntry(entry.ID, true))

	entries, _ := s.Entries().Latest()
	assert.Empty(t, entries, "soft-deleted entry leaves the live snapshot")
	assert.Empty(t, s.EntriesByDate("2026-08-15"))

	// The row itself survives with the delete marker set.
	tbl, err := store.GetTable(types.LogEntriesTable)
	require.NoError(t, err)
	got, err := tbl.Get(entry.ID)
	require.NoError(t, err)
	stored := got.(*types.DailyLogEntry)
	assert.True(t, stored.IsDeleted)
	require.NotNil(t, stored.UpdatedAt)

	require.NoError(t, s.RestoreEntry(entry.ID))

	entries, _ = s.Entries().Latest()
	require.Len(t, entries, 1)
	assert.False(t, entries[0].IsDeleted)
	assert.Len(t, s.EntriesByDate("2026-08-15"), 1)
}

func TestDailyLogService_HardDeleteEntry(t *testing.T) {
	store := setupStore(t)
	s := NewDailyLogService(store, nil)

	entry, err := s.AddEntry(types.DailyLogEntry{LogDate: "2026-08-15", CategoryID: "cat-location"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteEntry(entry.ID, false))

	tbl, err := store.GetTable(types.LogEntriesTable)
	require.NoError(t, err)
	_, err = tbl.Get(entry.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// Restore after hard delete fails.
	assert.ErrorIs(t, s.RestoreEntry(entry.ID), types.ErrNotFound)
}

func TestDailyLogService_LoadSkipsDeletedRows(t *testing.T) {
	store := setupStore(t)
	s := NewDailyLogService(store, nil)

	// Rows can arrive with isDeleted already set, e.g. via archive import.
	tbl, err := store.GetTable(types.LogEntriesTable)
	require.NoError(t, err)
	_, err = tbl.Set("imported-1", &types.DailyLogEntry{
		ID:         "imported-1",
		LogDate:    "2026-08-15",
		CategoryID: "cat-location",
		Note:       "trashed entry",
		IsDeleted:  true,
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)

	s.LoadEntries("")
	entries, ok := s.Entries().Latest()
	require.True(t, ok)
	assert.Empty(t, entries)

	s.LoadEntries("2026-08-15")
	entries, _ = s.Entries().Latest()
	assert.Empty(t, entries)

	assert.Empty(t, s.EntriesByDate("2026-08-15"))
}
