package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

// DatabaseFileName is the SQLite file created inside the data directory.
const DatabaseFileName = "primeos.db"

// Compile-time interface check: Backend must implement Store.
var _ types.Store = (*Backend)(nil)

// Backend implements the Store interface on a single SQLite database file.
// The file is the durable store; Attach never discards existing data.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{
		tables: make(map[string]types.Table),
	}
}

// GetTable returns a Table accessor for the specified table name.
// Returns ErrTableNotFound if the table name is not recognized.
// Returns ErrStoreDetached if the backend is not attached.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, applies the idempotent schema,
// seeds default rows on first run, and creates table accessors.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, DatabaseFileName))
	if err != nil {
		return err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return fmt.Errorf("enabling foreign keys: %w", err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("applying indexes: %w", err)
		}
	}

	if err := seedDefaults(db); err != nil {
		db.Close()
		return fmt.Errorf("seeding defaults: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true

	b.tables[types.SettingsTable] = &settingsTable{backend: b}
	b.tables[types.GoalCategoriesTable] = &goalCategoriesTable{backend: b}
	b.tables[types.GoalsTable] = &goalsTable{backend: b}
	b.tables[types.ProgressTable] = &progressTable{backend: b}
	b.tables[types.LogCategoriesTable] = &logCategoriesTable{backend: b}
	b.tables[types.LogEntriesTable] = &logEntriesTable{backend: b}
	b.tables[types.TagsTable] = &tagsTable{backend: b}
	b.tables[types.NotesTable] = &notesTable{backend: b}
	b.tables[types.NotesTagsJunctionTable] = &junctionTable{backend: b}

	return nil
}

// Detach releases all resources held by the backend. After Detach, all
// operations return ErrStoreDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.tables = make(map[string]types.Table)

	return nil
}

// PutNoteWithTags upserts a note row and replaces its junction rows with the
// given tag IDs in a single transaction, so the note and its tag links are
// visible together or not at all. A nil tagIDs slice leaves existing junction
// rows untouched; an empty non-nil slice clears them.
// When id is empty a new UUID v7 is generated.
func (b *Backend) PutNoteWithTags(id string, note *types.Note, tagIDs []string) (string, error) {
	if note == nil {
		return "", types.ErrInvalidData
	}
	if id == "" {
		id = generateID()
		note.ID = id
	}

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertNoteTx(tx, id, note); err != nil {
		return "", err
	}

	if tagIDs != nil {
		if _, err := tx.Exec("DELETE FROM notes_tags_junction WHERE note_id = ?", id); err != nil {
			return "", fmt.Errorf("clearing note tag links: %w", err)
		}
		for _, tagID := range tagIDs {
			_, err := tx.Exec(
				"INSERT OR IGNORE INTO notes_tags_junction (note_id, tag_id) VALUES (?, ?)",
				id, tagID,
			)
			if err != nil {
				return "", fmt.Errorf("linking tag %s: %w", tagID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing note: %w", err)
	}
	return id, nil
}

// generateID generates a new UUID v7 for entity IDs. UUID v7 is time-ordered
// with a random suffix, which keeps listing order stable for rows created in
// sequence.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
