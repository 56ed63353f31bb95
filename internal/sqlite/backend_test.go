// Tests for SQLite backend lifecycle.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

// setupBackend creates an attached Backend over a temp data directory with
// the default rows seeded.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	// Database file created inside the data directory.
	_, err := os.Stat(filepath.Join(tmpDir, DatabaseFileName))
	assert.NoError(t, err)

	// Double attach fails.
	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)
}

func TestBackend_Attach_InvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		wantErr error
	}{
		{
			name:    "empty backend",
			config:  types.Config{DataDir: t.TempDir()},
			wantErr: types.ErrBackendEmpty,
		},
		{
			name:    "unknown backend",
			config:  types.Config{Backend: "postgres", DataDir: t.TempDir()},
			wantErr: types.ErrBackendUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend()
			assert.ErrorIs(t, b.Attach(tt.config), tt.wantErr)
		})
	}
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))

	require.NoError(t, b.Detach())

	// Idempotent.
	assert.NoError(t, b.Detach())

	// Operations fail after detach.
	_, err := b.GetTable(types.GoalsTable)
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

func TestBackend_GetTable(t *testing.T) {
	b := setupBackend(t)

	for _, name := range types.StandardTableNames {
		table, err := b.GetTable(name)
		require.NoError(t, err, "table %s", name)
		assert.NotNil(t, table)
	}

	_, err := b.GetTable("bogus")
	assert.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestBackend_Reattach_KeepsData(t *testing.T) {
	tmpDir := t.TempDir()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	b := NewBackend()
	require.NoError(t, b.Attach(config))

	table, err := b.GetTable(types.GoalsTable)
	require.NoError(t, err)
	id, err := table.Set("", &types.Goal{Title: "Durable goal", CategoryID: "cat-general", Status: types.GoalStatusActive})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	// A fresh backend over the same directory sees the same data.
	b2 := NewBackend()
	require.NoError(t, b2.Attach(config))
	defer b2.Detach()

	table, err = b2.GetTable(types.GoalsTable)
	require.NoError(t, err)
	entity, err := table.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Durable goal", entity.(*types.Goal).Title)
}

func TestPutNoteWithTags(t *testing.T) {
	b := setupBackend(t)

	tagsTbl, err := b.GetTable(types.TagsTable)
	require.NoError(t, err)
	tagID, err := tagsTbl.Set("", &types.Tag{Name: "work"})
	require.NoError(t, err)

	notesTbl, err := b.GetTable(types.NotesTable)
	require.NoError(t, err)

	t.Run("creates note with links in one write", func(t *testing.T) {
		note := &types.Note{Title: "Linked"}
		id, err := b.PutNoteWithTags("", note, []string{tagID})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		entity, err := notesTbl.Get(id)
		require.NoError(t, err)
		got := entity.(*types.Note)
		require.Len(t, got.Tags, 1)
		assert.Equal(t, "work", got.Tags[0].Name)
	})

	t.Run("nil tag IDs leave links untouched", func(t *testing.T) {
		note := &types.Note{Title: "Keep links"}
		id, err := b.PutNoteWithTags("", note, []string{tagID})
		require.NoError(t, err)

		note.Title = "Renamed"
		_, err = b.PutNoteWithTags(id, note, nil)
		require.NoError(t, err)

		entity, err := notesTbl.Get(id)
		require.NoError(t, err)
		got := entity.(*types.Note)
		assert.Equal(t, "Renamed", got.Title)
		assert.Len(t, got.Tags, 1)
	})

	t.Run("empty slice clears links", func(t *testing.T) {
		note := &types.Note{Title: "Clear links"}
		id, err := b.PutNoteWithTags("", note, []string{tagID})
		require.NoError(t, err)

		_, err = b.PutNoteWithTags(id, note, []string{})
		require.NoError(t, err)

		entity, err := notesTbl.Get(id)
		require.NoError(t, err)
		assert.Empty(t, entity.(*types.Note).Tags)
	})
}

func TestGenerateID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := generateID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
