package types

// Standard table names for Store.GetTable.
const (
	SettingsTable          = "appSettings"
	GoalCategoriesTable    = "goalCategories"
	GoalsTable             = "goals"
	ProgressTable          = "progressEntries"
	LogCategoriesTable     = "dailyLogCategories"
	LogEntriesTable        = "dailyLogEntries"
	TagsTable              = "noteTags"
	NotesTable             = "notes"
	NotesTagsJunctionTable = "notesTagsJunction"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	SettingsTable,
	GoalCategoriesTable,
	GoalsTable,
	ProgressTable,
	LogCategoriesTable,
	LogEntriesTable,
	TagsTable,
	NotesTable,
	NotesTagsJunctionTable,
}
