// Unit tests for the notes, tags, and junction table accessors.
package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

func TestNotesTable_SetAndGet(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.NotesTable)
	require.NoError(t, err)

	note := &types.Note{
		Title: "Meeting notes",
		RichContent: types.RichContent{
			Ops: []types.RichOp{
				{Insert: "Discussed "},
				{Insert: "roadmap", Attributes: map[string]any{"bold": true}},
			},
		},
	}
	id, err := table.Set("", note)
	require.NoError(t, err)

	entity, err := table.Get(id)
	require.NoError(t, err)
	got := entity.(*types.Note)

	assert.Equal(t, "Meeting notes", got.Title)
	assert.Equal(t, "Discussed roadmap", got.RichContent.PlainText())
	require.Len(t, got.RichContent.Ops, 2)
	assert.Equal(t, map[string]any{"bold": true}, got.RichContent.Ops[1].Attributes)
	assert.Empty(t, got.Tags)
}

func TestNotesTable_Fetch_OrderAndFilter(t *testing.T) {
	b := setupBackend(t)
	table, err := b.GetTable(types.NotesTable)
	require.NoError(t, err)

	base := time.Now()
	mk := func(title string, updated time.Time, archived, deleted bool) {
		t.Helper()
		note := &types.Note{Title: title, IsArchived: archived, IsDeleted: deleted, CreatedAt: base, UpdatedAt: updated}
		_, err := table.Set("", note)
		require.NoError(t, err)
	}
	mk("oldest", base.Add(-2*time.Hour), false, false)
	mk("newest", base, false, false)
	mk("middle", base.Add(-time.Hour), true, false)
	mk("gone", base.Add(time.Hour), false, true)

	t.Run("most recently updated first", func(t *testing.T) {
		rows, err := table.Fetch(map[string]any{"isDeleted": false})
		require.NoError(t, err)
		titles := make([]string, 0, len(rows))
		for _, r := range rows {
			titles = append(titles, r.(*types.Note).Title)
		}
		assert.Equal(t, []string{"newest", "middle", "oldest"}, titles)
	})

	t.Run("archived filter", func(t *testing.T) {
		rows, err := table.Fetch(map[string]any{"isDeleted": false, "isArchived": true})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "middle", rows[0].(*types.Note).Title)
	})
}

func TestNotesTable_Delete_CascadesJunction(t *testing.T) {
	b := setupBackend(t)
	notes, err := b.GetTable(types.NotesTable)
	require.NoError(t, err)
	tags, err := b.GetTable(types.TagsTable)
	require.NoError(t, err)
	junction, err := b.GetTable(types.NotesTagsJunctionTable)
	require.NoError(t, err)

	tagID, err := tags.Set("", &types.Tag{Name: "work"})
	require.NoError(t, err)
	noteID, err := b.PutNoteWithTags("", &types.Note{Title: "Linked"}, []string{tagID})
	require.NoError(t, err)

	require.NoError(t, notes.Delete(noteID))

	links, err := junction.Fetch(map[string]any{"noteId": noteID})
	require.NoError(t, err)
	assert.Empty(t, links)

	// The tag itself survives.
	_, err = tags.Get(tagID)
	assert.NoError(t, err)
}

func TestTagsTable_Delete_CascadesJunction(t *testing.T) {
	b := setupBackend(t)
	notes, err := b.GetTable(types.NotesTable)
	require.NoError(t, err)
	tags, err := b.GetTable(types.TagsTable)
	require.NoError(t, err)

	tagID, err := tags.Set("", &types.Tag{Name: "transient"})
	require.NoError(t, err)
	noteID, err := b.PutNoteWithTags("", &types.Note{Title: "Holder"}, []string{tagID})
	require.NoError(t, err)

	require.NoError(t, tags.Delete(tagID))

	entity, err := notes.Get(noteID)
	require.NoError(t, err)
	assert.Empty(t, entity.(*types.Note).Tags, "note must drop the deleted tag")
}

func TestTagsTable_FetchByName(t *testing.T) {
	b := setupBackend(t)
	tags, err := b.GetTable(types.TagsTable)
	require.NoError(t, err)

	_, err = tags.Set("", &types.Tag{Name: "alpha"})
	require.NoError(t, err)
	_, err = tags.Set("", &types.Tag{Name: "beta"})
	require.NoError(t, err)

	rows, err := tags.Fetch(map[string]any{"name": "alpha"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alpha", rows[0].(*types.Tag).Name)
}

func TestJunctionTable_CompositeIDs(t *testing.T) {
	b := setupBackend(t)
	junction, err := b.GetTable(types.NotesTagsJunctionTable)
	require.NoError(t, err)

	id, err := junction.Set("", &types.NoteTagJunction{NoteID: "n1", TagID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, "n1/t1", id)

	// Re-inserting the same pair is a no-op.
	_, err = junction.Set("", &types.NoteTagJunction{NoteID: "n1", TagID: "t1"})
	require.NoError(t, err)
	rows, err := junction.Fetch(nil)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	entity, err := junction.Get("n1/t1")
	require.NoError(t, err)
	link := entity.(*types.NoteTagJunction)
	assert.Equal(t, "n1", link.NoteID)
	assert.Equal(t, "t1", link.TagID)

	require.NoError(t, junction.Delete("n1/t1"))
	_, err = junction.Get("n1/t1")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = junction.Get("malformed")
	assert.ErrorIs(t, err, types.ErrInvalidID)
}
