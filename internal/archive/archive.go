// Package archive round-trips the full data set through a zip file: one
// pretty-printed JSON file per table, CSV renditions of goals, progress, and
// notes, plus a metadata file. Unlike CSV import, archive import upserts by
// stored ID, so re-importing the same archive is idempotent.
//
// The note-tag junction table is not part of the archive; tag links do not
// survive a round trip into an empty database.
package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/primeos/internal/csvport"
	"github.com/mesh-intelligence/primeos/pkg/types"
)

// Version tags the archive layout in metadata.json.
const Version = "1.0"

// Archive entry names.
const (
	goalsFile       = "goals.json"
	progressFile    = "progressEntries.json"
	goalCatsFile    = "goalCategories.json"
	logCatsFile     = "dailyLogCategories.json"
	logEntriesFile  = "dailyLogEntries.json"
	tagsFile        = "noteTags.json"
	notesFile       = "notes.json"
	settingsFile    = "appSettings.json"
	metadataFile    = "metadata.json"
	goalsCSVFile    = "goals.csv"
	progressCSVFile = "progressEntries.csv"
	notesCSVFile    = "notes.csv"
)

// ImportCounts reports how many records each table received.
type ImportCounts struct {
	Goals              int `json:"goals"`
	ProgressEntries    int `json:"progressEntries"`
	GoalCategories     int `json:"goalCategories"`
	DailyLogCategories int `json:"dailyLogCategories"`
	DailyLogEntries    int `json:"dailyLogEntries"`
	NoteTags           int `json:"noteTags"`
	Notes              int `json:"notes"`
	AppSettings        int `json:"appSettings"`
}

type metadata struct {
	ExportDate string    `json:"exportDate"`
	Version    string    `json:"version"`
	DataCount  dataCount `json:"dataCount"`
}

// dataCount covers the seven content tables; settings are archived but not
// counted in metadata.
type dataCount struct {
	Goals              int `json:"goals"`
	ProgressEntries    int `json:"progressEntries"`
	GoalCategories     int `json:"goalCategories"`
	DailyLogCategories int `json:"dailyLogCategories"`
	DailyLogEntries    int `json:"dailyLogEntries"`
	NoteTags           int `json:"noteTags"`
	Notes              int `json:"notes"`
}

// Archiver exports and imports full-database archives.
type Archiver struct {
	store types.Store
	csv   *csvport.Porter
	log   *zap.Logger
}

// New creates an archiver over an attached store. The porter renders the CSV
// entries of exported archives. A nil logger disables logging.
func New(store types.Store, csv *csvport.Porter, logger *zap.Logger) *Archiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Archiver{store: store, csv: csv, log: logger}
}

// Export renders the whole database, soft-deleted rows included, as a zip
// archive.
func (a *Archiver) Export() ([]byte, error) {
	tables := []struct {
		table string
		entry string
	}{
		{types.GoalsTable, goalsFile},
		{types.ProgressTable, progressFile},
		{types.GoalCategoriesTable, goalCatsFile},
		{types.LogCategoriesTable, logCatsFile},
		{types.LogEntriesTable, logEntriesFile},
		{types.TagsTable, tagsFile},
		{types.NotesTable, notesFile},
		{types.SettingsTable, settingsFile},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	counts := map[string]int{}
	for _, t := range tables {
		tbl, err := a.store.GetTable(t.table)
		if err != nil {
			return nil, err
		}
		rows, err := tbl.Fetch(nil)
		if err != nil {
			return nil, fmt.Errorf("exporting %s: %w", t.table, err)
		}
		counts[t.table] = len(rows)

		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", t.entry, err)
		}
		if err := addEntry(zw, t.entry, data); err != nil {
			return nil, err
		}
	}

	for entry, content := range map[string]string{
		goalsCSVFile:    a.csv.ExportGoals(),
		progressCSVFile: a.csv.ExportProgress(),
		notesCSVFile:    a.csv.ExportNotes(),
	} {
		if err := addEntry(zw, entry, []byte(content)); err != nil {
			return nil, err
		}
	}

	meta := metadata{
		ExportDate: time.Now().UTC().Format(time.RFC3339Nano),
		Version:    Version,
		DataCount: dataCount{
			Goals:              counts[types.GoalsTable],
			ProgressEntries:    counts[types.ProgressTable],
			GoalCategories:     counts[types.GoalCategoriesTable],
			DailyLogCategories: counts[types.LogCategoriesTable],
			DailyLogEntries:    counts[types.LogEntriesTable],
			NoteTags:           counts[types.TagsTable],
			Notes:              counts[types.NotesTable],
		},
	}
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}
	if err := addEntry(zw, metadataFile, metaJSON); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalizing archive: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile exports the archive to path, writing a temp file in the target
// directory and renaming it into place so a crash cannot leave a truncated
// archive behind.
func (a *Archiver) WriteFile(path string) error {
	data, err := a.Export()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp archive: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing archive: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing archive: %w", err)
	}
	return nil
}

// ImportFile imports an archive or a bare JSON document, dispatching on the
// file extension. Anything other than .zip or .json fails with
// ErrImportFormat.
func (a *Archiver) ImportFile(path string) (*ImportCounts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return a.ImportZip(data)
	case ".json":
		return a.ImportJSON(data)
	default:
		return nil, fmt.Errorf("only .zip and .json files are supported: %w", types.ErrImportFormat)
	}
}

// ImportZip upserts every known JSON entry of the archive by stored ID.
// Categories and tags land before the records that reference them; CSV and
// metadata entries are ignored.
func (a *Archiver) ImportZip(data []byte) (*ImportCounts, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", types.ErrImportFormat)
	}

	entries := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening archive entry %s: %w", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading archive entry %s: %w", f.Name, err)
		}
		entries[f.Name] = content
	}

	counts := &ImportCounts{}
	steps := []struct {
		entry string
		put   func(json.RawMessage) (int, error)
		dst   *int
	}{
		{goalCatsFile, a.putGoalCategories, &counts.GoalCategories},
		{logCatsFile, a.putLogCategories, &counts.DailyLogCategories},
		{tagsFile, a.putTags, &counts.NoteTags},
		{goalsFile, a.putGoals, &counts.Goals},
		{progressFile, a.putProgress, &counts.ProgressEntries},
		{logEntriesFile, a.putLogEntries, &counts.DailyLogEntries},
		{notesFile, a.putNotes, &counts.Notes},
		{settingsFile, a.putSettings, &counts.AppSettings},
	}
	for _, step := range steps {
		content, ok := entries[step.entry]
		if !ok {
			continue
		}
		n, err := step.put(content)
		if err != nil {
			return nil, fmt.Errorf("importing %s: %w", step.entry, err)
		}
		*step.dst = n
	}
	return counts, nil
}

// ImportJSON imports a bare JSON document: either an object keyed by table
// name, or a single array whose table is guessed from the fields of its
// first element. Unrecognized arrays import nothing.
func (a *Archiver) ImportJSON(data []byte) (*ImportCounts, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return a.importBareArray(trimmed)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("parsing import document: %w", types.ErrImportFormat)
	}

	counts := &ImportCounts{}
	steps := []struct {
		key string
		put func(json.RawMessage) (int, error)
		dst *int
	}{
		{"goalCategories", a.putGoalCategories, &counts.GoalCategories},
		{"dailyLogCategories", a.putLogCategories, &counts.DailyLogCategories},
		{"noteTags", a.putTags, &counts.NoteTags},
		{"goals", a.putGoals, &counts.Goals},
		{"progressEntries", a.putProgress, &counts.ProgressEntries},
		{"dailyLogEntries", a.putLogEntries, &counts.DailyLogEntries},
		{"notes", a.putNotes, &counts.Notes},
		{"appSettings", a.putSettings, &counts.AppSettings},
	}
	for _, step := range steps {
		raw, ok := doc[step.key]
		if !ok {
			continue
		}
		n, err := step.put(raw)
		if err != nil {
			return nil, fmt.Errorf("importing %s: %w", step.key, err)
		}
		*step.dst = n
	}
	return counts, nil
}

// importBareArray guesses which table a bare array belongs to by probing the
// first element.
func (a *Archiver) importBareArray(data []byte) (*ImportCounts, error) {
	var probe []map[string]any
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parsing import document: %w", types.ErrImportFormat)
	}

	counts := &ImportCounts{}
	if len(probe) == 0 {
		return counts, nil
	}

	first := probe[0]
	has := func(field string) bool { _, ok := first[field]; return ok }

	var err error
	switch {
	case has("title") && has("categoryId"):
		counts.Goals, err = a.putGoals(data)
	case has("goalId") && has("value"):
		counts.ProgressEntries, err = a.putProgress(data)
	case has("name") && !has("description") && has("isSystem"):
		counts.GoalCategories, err = a.putGoalCategories(data)
	case has("name") && !has("description"):
		counts.NoteTags, err = a.putTags(data)
	default:
		a.log.Warn("unrecognized bare array, nothing imported")
	}
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (a *Archiver) putGoals(raw json.RawMessage) (int, error) {
	return putAll(a.store, types.GoalsTable, raw, func(g *types.Goal) string { return g.ID })
}

func (a *Archiver) putProgress(raw json.RawMessage) (int, error) {
	return putAll(a.store, types.ProgressTable, raw, func(e *types.ProgressEntry) string { return e.ID })
}

func (a *Archiver) putGoalCategories(raw json.RawMessage) (int, error) {
	return putAll(a.store, types.GoalCategoriesTable, raw, func(c *types.GoalCategory) string { return c.ID })
}

func (a *Archiver) putLogCategories(raw json.RawMessage) (int, error) {
	return putAll(a.store, types.LogCategoriesTable, raw, func(c *types.DailyLogCategory) string { return c.ID })
}

func (a *Archiver) putLogEntries(raw json.RawMessage) (int, error) {
	return putAll(a.store, types.LogEntriesTable, raw, func(e *types.DailyLogEntry) string { return e.ID })
}

func (a *Archiver) putTags(raw json.RawMessage) (int, error) {
	return putAll(a.store, types.TagsTable, raw, func(t *types.Tag) string { return t.ID })
}

func (a *Archiver) putNotes(raw json.RawMessage) (int, error) {
	return putAll(a.store, types.NotesTable, raw, func(n *types.Note) string { return n.ID })
}

func (a *Archiver) putSettings(raw json.RawMessage) (int, error) {
	return putAll(a.store, types.SettingsTable, raw, func(s *types.Setting) string { return s.Key })
}

// putAll decodes a JSON array and upserts each record under its own key.
func putAll[T any](store types.Store, table string, raw json.RawMessage, key func(*T) string) (int, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, fmt.Errorf("decoding %s records: %w", table, types.ErrImportFormat)
	}

	tbl, err := store.GetTable(table)
	if err != nil {
		return 0, err
	}
	for i := range items {
		if _, err := tbl.Set(key(&items[i]), &items[i]); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

func addEntry(zw *zip.Writer, name string, content []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating archive entry %s: %w", name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("writing archive entry %s: %w", name, err)
	}
	return nil
}
