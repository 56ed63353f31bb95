package types

import "errors"

// Store defines the interface for the persistent document store.
// Callers attach to a data directory, access tables by name, and detach
// when done.
type Store interface {
	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a standard table.
	GetTable(name string) (Table, error)

	// Attach opens the store described by config. Creates the DataDir if it
	// does not exist and seeds default rows on first run. Returns
	// ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases store resources. Idempotent: multiple calls succeed.
	// After Detach, operations on tables return ErrStoreDetached.
	Detach() error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrTableNotFound   = errors.New("table not found")
)
