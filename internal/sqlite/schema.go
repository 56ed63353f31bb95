// Package sqlite implements the SQLite storage backend for PrimeOS.
package sqlite

// Schema DDL for all tables. The database file persists across runs, so
// every statement is idempotent.
const (
	createSettings = `CREATE TABLE IF NOT EXISTS app_settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    created_at TEXT,
    updated_at TEXT
);`

	createGoalCategories = `CREATE TABLE IF NOT EXISTS goal_categories (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    color TEXT NOT NULL,
    created_at TEXT NOT NULL,
    is_system INTEGER NOT NULL DEFAULT 0
);`

	createGoals = `CREATE TABLE IF NOT EXISTS goals (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    category_id TEXT NOT NULL,
    target_date TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    is_deleted INTEGER NOT NULL DEFAULT 0,
    deleted_at TEXT
);`

	createProgressEntries = `CREATE TABLE IF NOT EXISTS progress_entries (
    id TEXT PRIMARY KEY,
    goal_id TEXT NOT NULL,
    value REAL NOT NULL,
    date TEXT NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    is_deleted INTEGER NOT NULL DEFAULT 0,
    deleted_at TEXT
);`

	createLogCategories = `CREATE TABLE IF NOT EXISTS daily_log_categories (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    is_fixed INTEGER NOT NULL DEFAULT 0,
    is_deleted INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT
);`

	createLogEntries = `CREATE TABLE IF NOT EXISTS daily_log_entries (
    id TEXT PRIMARY KEY,
    log_date TEXT NOT NULL,
    category_id TEXT NOT NULL,
    note TEXT NOT NULL DEFAULT '',
    is_deleted INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT
);`

	createTags = `CREATE TABLE IF NOT EXISTS note_tags (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    is_deleted INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT
);`

	createNotes = `CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    rich_content TEXT NOT NULL DEFAULT '{"ops":[]}',
    is_archived INTEGER NOT NULL DEFAULT 0,
    is_deleted INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createNotesTagsJunction = `CREATE TABLE IF NOT EXISTS notes_tags_junction (
    note_id TEXT NOT NULL,
    tag_id TEXT NOT NULL,
    PRIMARY KEY (note_id, tag_id)
);`
)

// Index DDL for common queries.
const (
	idxGoalCategoriesName = `CREATE INDEX IF NOT EXISTS idx_goal_categories_name ON goal_categories(name);`
	idxGoalsCategory      = `CREATE INDEX IF NOT EXISTS idx_goals_category ON goals(category_id);`
	idxGoalsStatus        = `CREATE INDEX IF NOT EXISTS idx_goals_status ON goals(status);`
	idxGoalsDeleted       = `CREATE INDEX IF NOT EXISTS idx_goals_deleted ON goals(is_deleted);`
	idxGoalsTargetDate    = `CREATE INDEX IF NOT EXISTS idx_goals_target_date ON goals(target_date);`
	idxProgressGoal       = `CREATE INDEX IF NOT EXISTS idx_progress_goal ON progress_entries(goal_id);`
	idxProgressDate       = `CREATE INDEX IF NOT EXISTS idx_progress_date ON progress_entries(date);`
	idxProgressDeleted    = `CREATE INDEX IF NOT EXISTS idx_progress_deleted ON progress_entries(is_deleted);`
	idxLogCategoriesName  = `CREATE INDEX IF NOT EXISTS idx_log_categories_name ON daily_log_categories(name);`
	idxLogEntriesDate     = `CREATE INDEX IF NOT EXISTS idx_log_entries_date ON daily_log_entries(log_date);`
	idxLogEntriesCategory = `CREATE INDEX IF NOT EXISTS idx_log_entries_category ON daily_log_entries(category_id);`
	idxTagsName           = `CREATE INDEX IF NOT EXISTS idx_tags_name ON note_tags(name);`
	idxNotesArchived      = `CREATE INDEX IF NOT EXISTS idx_notes_archived ON notes(is_archived);`
	idxNotesDeleted       = `CREATE INDEX IF NOT EXISTS idx_notes_deleted ON notes(is_deleted);`
	idxJunctionNote       = `CREATE INDEX IF NOT EXISTS idx_junction_note ON notes_tags_junction(note_id);`
	idxJunctionTag        = `CREATE INDEX IF NOT EXISTS idx_junction_tag ON notes_tags_junction(tag_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createSettings,
	createGoalCategories,
	createGoals,
	createProgressEntries,
	createLogCategories,
	createLogEntries,
	createTags,
	createNotes,
	createNotesTagsJunction,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxGoalCategoriesName,
	idxGoalsCategory,
	idxGoalsStatus,
	idxGoalsDeleted,
	idxGoalsTargetDate,
	idxProgressGoal,
	idxProgressDate,
	idxProgressDeleted,
	idxLogCategoriesName,
	idxLogEntriesDate,
	idxLogEntriesCategory,
	idxTagsName,
	idxNotesArchived,
	idxNotesDeleted,
	idxJunctionNote,
	idxJunctionTag,
}
