package types

import "errors"

// Table provides uniform CRUD operations for a single entity type.
// Get and Fetch return any; callers type-assert to the concrete entity struct.
type Table interface {
	// Get retrieves the entity with the given ID.
	// Returns ErrNotFound if no entity exists with that ID, regardless of
	// its soft-delete state.
	Get(id string) (any, error)

	// Set creates or updates an entity. When id is empty a new UUID v7 is
	// generated; when id is provided the row is upserted under that ID.
	// Returns the actual ID used (generated or provided).
	Set(id string, data any) (string, error)

	// Delete physically removes the entity with the given ID, cascading to
	// dependent junction rows where the entity owns any.
	// Returns ErrNotFound if no entity exists with that ID.
	Delete(id string) error

	// Fetch returns all entities matching the filter. An empty filter
	// returns every row in the table, soft-deleted rows included.
	Fetch(filter map[string]any) ([]any, error)
}

// Table operation errors.
var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
	ErrInvalidName = errors.New("invalid name")
)

// Domain errors surfaced by the entity services.
var (
	// ErrSystemCategory is returned when deleting a seeded system or fixed
	// category. The text is the user-visible message.
	ErrSystemCategory = errors.New("Cannot delete system categories")

	// ErrImportFormat is returned for unsupported files, malformed
	// JSON/CSV, and missing required CSV columns.
	ErrImportFormat = errors.New("unsupported import format")
)
