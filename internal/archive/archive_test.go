package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/primeos/internal/csvport"
	"github.com/mesh-intelligence/primeos/internal/service"
	"github.com/mesh-intelligence/primeos/internal/sqlite"
	"github.com/mesh-intelligence/primeos/pkg/types"
)

type fixture struct {
	store    *sqlite.Backend
	archiver *Archiver
	goals    *service.GoalService
	progress *service.ProgressService
	notes    *service.NoteService
}

func setupArchiver(t *testing.T) fixture {
	t.Helper()
	b := sqlite.NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })

	goals := service.NewGoalService(b, nil)
	progress := service.NewProgressService(b, nil)
	notes := service.NewNoteService(b, nil)
	porter := csvport.New(goals, progress, notes, nil)
	return fixture{
		store:    b,
		archiver: New(b, porter, nil),
		goals:    goals,
		progress: progress,
		notes:    notes,
	}
}

func entryNames(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	entries := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content := new(bytes.Buffer)
		_, err = content.ReadFrom(rc)
		rc.Close()
		require.NoError(t, err)
		entries[f.Name] = content.Bytes()
	}
	return entries
}

func TestExport_Layout(t *testing.T) {
	f := setupArchiver(t)

	goal, err := f.goals.AddGoal(types.Goal{Title: "Archived goal", CategoryID: "cat-general"})
	require.NoError(t, err)
	deleted, err := f.goals.AddGoal(types.Goal{Title: "Soft gone", CategoryID: "cat-general"})
	require.NoError(t, err)
	require.NoError(t, f.goals.DeleteGoal(deleted.ID, true))

	data, err := f.archiver.Export()
	require.NoError(t, err)

	entries := entryNames(t, data)
	for _, name := range []string{
		"goals.json", "progressEntries.json", "goalCategories.json",
		"dailyLogCategories.json", "dailyLogEntries.json", "noteTags.json",
		"notes.json", "appSettings.json", "metadata.json",
		"goals.csv", "progressEntries.csv", "notes.csv",
	} {
		assert.Contains(t, entries, name)
	}
	assert.Len(t, entries, 12)

	t.Run("soft-deleted rows are archived", func(t *testing.T) {
		var goals []types.Goal
		require.NoError(t, json.Unmarshal(entries["goals.json"], &goals))
		assert.Len(t, goals, 2)
	})

	t.Run("metadata counts", func(t *testing.T) {
		var meta struct {
			ExportDate string         `json:"exportDate"`
			Version    string         `json:"version"`
			DataCount  map[string]int `json:"dataCount"`
		}
		require.NoError(t, json.Unmarshal(entries["metadata.json"], &meta))
		assert.Equal(t, Version, meta.Version)
		assert.NotEmpty(t, meta.ExportDate)
		assert.Equal(t, 2, meta.DataCount["goals"])
		assert.Equal(t, 4, meta.DataCount["goalCategories"])
		assert.Equal(t, 3, meta.DataCount["dailyLogCategories"])
		_, counted := meta.DataCount["appSettings"]
		assert.False(t, counted, "settings are archived but not counted")
	})

	t.Run("csv entry skips soft-deleted", func(t *testing.T) {
		csv := string(entries["goals.csv"])
		assert.Contains(t, csv, goal.ID)
		assert.NotContains(t, csv, deleted.ID)
	})
}

func TestImportZip_RoundTripIdempotent(t *testing.T) {
	src := setupArchiver(t)

	goal, err := src.goals.AddGoal(types.Goal{Title: "Portable", CategoryID: "cat-general"})
	require.NoError(t, err)
	_, err = src.progress.AddEntry(types.ProgressEntry{GoalID: goal.ID, Value: 1, Date: "2026-08-01"})
	require.NoError(t, err)
	_, err = src.notes.AddNote(service.NoteInput{Title: "Moved note"})
	require.NoError(t, err)

	data, err := src.archiver.Export()
	require.NoError(t, err)

	dst := setupArchiver(t)
	counts, err := dst.archiver.ImportZip(data)
	require.NoError(t, err)

	assert.Equal(t, 1, counts.Goals)
	assert.Equal(t, 1, counts.ProgressEntries)
	assert.Equal(t, 1, counts.Notes)
	assert.Equal(t, 4, counts.GoalCategories)
	assert.Equal(t, 3, counts.DailyLogCategories)
	assert.Equal(t, 1, counts.AppSettings)

	dst.goals.LoadGoals()
	goals, _ := dst.goals.Goals().Latest()
	require.Len(t, goals, 1)
	assert.Equal(t, goal.ID, goals[0].ID, "archive import keeps stored IDs")

	t.Run("re-import does not duplicate", func(t *testing.T) {
		_, err := dst.archiver.ImportZip(data)
		require.NoError(t, err)
		dst.goals.LoadGoals()
		goals, _ := dst.goals.Goals().Latest()
		assert.Len(t, goals, 1)
	})
}

func TestImportZip_Corrupt(t *testing.T) {
	f := setupArchiver(t)

	_, err := f.archiver.ImportZip([]byte("not a zip"))
	assert.ErrorIs(t, err, types.ErrImportFormat)
}

func TestImportJSON_KeyedDocument(t *testing.T) {
	f := setupArchiver(t)

	doc := []byte(`{
		"goals": [{"id": "g-1", "title": "From JSON", "categoryId": "cat-general", "status": "active"}],
		"noteTags": [{"id": "t-1", "name": "imported"}]
	}`)
	counts, err := f.archiver.ImportJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Goals)
	assert.Equal(t, 1, counts.NoteTags)

	f.goals.LoadGoals()
	goals, _ := f.goals.Goals().Latest()
	require.Len(t, goals, 1)
	assert.Equal(t, "g-1", goals[0].ID)
}

func TestImportJSON_BareArrays(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		check func(t *testing.T, c *ImportCounts)
	}{
		{
			name: "goals",
			doc:  `[{"id": "g-1", "title": "Bare", "categoryId": "cat-general"}]`,
			check: func(t *testing.T, c *ImportCounts) {
				assert.Equal(t, 1, c.Goals)
			},
		},
		{
			name: "progress entries",
			doc:  `[{"id": "p-1", "goalId": "g-1", "value": 2, "date": "2026-08-01"}]`,
			check: func(t *testing.T, c *ImportCounts) {
				assert.Equal(t, 1, c.ProgressEntries)
			},
		},
		{
			name: "goal categories",
			doc:  `[{"id": "c-1", "name": "Custom", "isSystem": false}]`,
			check: func(t *testing.T, c *ImportCounts) {
				assert.Equal(t, 1, c.GoalCategories)
			},
		},
		{
			name: "tags",
			doc:  `[{"id": "t-1", "name": "loose"}]`,
			check: func(t *testing.T, c *ImportCounts) {
				assert.Equal(t, 1, c.NoteTags)
			},
		},
		{
			name: "unrecognized imports nothing",
			doc:  `[{"mystery": true}]`,
			check: func(t *testing.T, c *ImportCounts) {
				assert.Equal(t, &ImportCounts{}, c)
			},
		},
		{
			name: "empty array",
			doc:  `[]`,
			check: func(t *testing.T, c *ImportCounts) {
				assert.Equal(t, &ImportCounts{}, c)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupArchiver(t)
			counts, err := f.archiver.ImportJSON([]byte(tt.doc))
			require.NoError(t, err)
			tt.check(t, counts)
		})
	}
}

func TestImportFile_Dispatch(t *testing.T) {
	f := setupArchiver(t)
	dir := t.TempDir()

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(dir, "data.csv")
		require.NoError(t, os.WriteFile(path, []byte("ID,Title"), 0o644))
		_, err := f.archiver.ImportFile(path)
		assert.ErrorIs(t, err, types.ErrImportFormat)
	})

	t.Run("json file", func(t *testing.T) {
		path := filepath.Join(dir, "data.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"goals": []}`), 0o644))
		counts, err := f.archiver.ImportFile(path)
		require.NoError(t, err)
		assert.Equal(t, 0, counts.Goals)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := f.archiver.ImportFile(filepath.Join(dir, "absent.zip"))
		assert.Error(t, err)
	})
}

func TestWriteFile(t *testing.T) {
	f := setupArchiver(t)
	path := filepath.Join(t.TempDir(), "backup.zip")

	require.NoError(t, f.archiver.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	entries := entryNames(t, data)
	assert.Contains(t, entries, "metadata.json")

	// No temp file left behind.
	matches, err := filepath.Glob(path + ".tmp-*")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
