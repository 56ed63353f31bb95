// Shared helpers for primeos CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/primeos/internal/archive"
	"github.com/mesh-intelligence/primeos/internal/csvport"
	"github.com/mesh-intelligence/primeos/internal/service"
	"github.com/mesh-intelligence/primeos/internal/sqlite"
	"github.com/mesh-intelligence/primeos/pkg/types"
)

// app bundles the attached backend with the services built over it.
// Every command opens one app, works through its services, and closes it.
type app struct {
	backend  *sqlite.Backend
	logger   *zap.Logger
	goals    *service.GoalService
	progress *service.ProgressService
	logs     *service.DailyLogService
	notes    *service.NoteService
	settings *service.SettingsService
	search   *service.SearchService
	porter   *csvport.Porter
	archiver *archive.Archiver
}

// openApp resolves the data directory, attaches the SQLite backend, and
// wires the services. The caller must defer app.close().
func openApp() (*app, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	backend := sqlite.NewBackend()
	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	logger := newLogger()
	a := &app{
		backend:  backend,
		logger:   logger,
		goals:    service.NewGoalService(backend, logger),
		progress: service.NewProgressService(backend, logger),
		logs:     service.NewDailyLogService(backend, logger),
		notes:    service.NewNoteService(backend, logger),
		settings: service.NewSettingsService(backend, logger),
		search:   service.NewSearchService(backend, logger),
	}
	a.porter = csvport.New(a.goals, a.progress, a.notes, logger)
	a.archiver = archive.New(backend, a.porter, logger)
	return a, nil
}

// close detaches the backend. Detach errors are not actionable at exit.
func (a *app) close() {
	_ = a.backend.Detach()
	_ = a.logger.Sync()
}

// newLogger returns a development logger when --verbose is set, otherwise a
// no-op logger.
func newLogger() *zap.Logger {
	if !flagVerbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// errUsage marks command-line mistakes (bad flag values) so main exits with
// the user error code.
var errUsage = errors.New("invalid usage")

// fail wraps err with the failing command's name. Handlers return it from
// RunE so deferred cleanup still runs; main maps the error kind to an exit
// code.
func fail(context string, err error) error {
	return fmt.Errorf("%s: %w", context, err)
}

// isUserError reports whether err is caused by user input rather than the
// system: not-found and guard errors, malformed imports, and usage mistakes.
func isUserError(err error) bool {
	return errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrSystemCategory) ||
		errors.Is(err, types.ErrImportFormat) ||
		errors.Is(err, types.ErrInvalidID) ||
		errors.Is(err, types.ErrInvalidName) ||
		errors.Is(err, errUsage)
}

// changedString returns val when the named flag was set on the command, nil
// otherwise. Update commands use it to build partial updates where only the
// flags the user passed are touched.
func changedString(cmd *cobra.Command, name string, val *string) *string {
	if cmd.Flags().Changed(name) {
		return val
	}
	return nil
}

func changedBool(cmd *cobra.Command, name string, val *bool) *bool {
	if cmd.Flags().Changed(name) {
		return val
	}
	return nil
}

func changedFloat(cmd *cobra.Command, name string, val *float64) *float64 {
	if cmd.Flags().Changed(name) {
		return val
	}
	return nil
}
