package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/primeos/internal/feed"
	"github.com/mesh-intelligence/primeos/pkg/types"
)

// ProgressService owns the progress entries table.
type ProgressService struct {
	store   types.Store
	log     *zap.Logger
	entries *feed.Feed[[]types.ProgressEntry]
}

// NewProgressService creates a progress service over an attached store.
// A nil logger disables logging.
func NewProgressService(store types.Store, logger *zap.Logger) *ProgressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{
		store:   store,
		log:     logger,
		entries: feed.New[[]types.ProgressEntry](),
	}
}

// Entries returns the feed of non-deleted progress snapshots, newest first.
func (s *ProgressService) Entries() *feed.Feed[[]types.ProgressEntry] { return s.entries }

// LoadEntries queries the non-deleted progress entries and publishes the
// snapshot. Never returns an error; on failure it logs and keeps the prior
// snapshot.
func (s *ProgressService) LoadEntries() {
	tbl, err := s.store.GetTable(types.ProgressTable)
	if err != nil {
		s.log.Error("loading progress entries", zap.Error(err))
		return
	}
	rows, err := tbl.Fetch(map[string]any{"isDeleted": false})
	if err != nil {
		s.log.Error("loading progress entries", zap.Error(err))
		return
	}
	entries := make([]types.ProgressEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, *(r.(*types.ProgressEntry)))
	}
	s.entries.Publish(entries)
}

// EntriesForGoal returns the non-deleted entries for one goal, newest first.
// Returns an empty slice on query failure.
func (s *ProgressService) EntriesForGoal(goalID string) []types.ProgressEntry {
	tbl, err := s.store.GetTable(types.ProgressTable)
	if err != nil {
		s.log.Error("loading progress for goal", zap.String("goal", goalID), zap.Error(err))
		return []types.ProgressEntry{}
	}
	rows, err := tbl.Fetch(map[string]any{"goalId": goalID, "isDeleted": false})
	if err != nil {
		s.log.Error("loading progress for goal", zap.String("goal", goalID), zap.Error(err))
		return []types.ProgressEntry{}
	}
	entries := make([]types.ProgressEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, *(r.(*types.ProgressEntry)))
	}
	return entries
}

// AddEntry creates a progress entry. ID, timestamps, and delete state of the
// input are overwritten. The goal reference is not validated.
func (s *ProgressService) AddEntry(input types.ProgressEntry) (*types.ProgressEntry, error) {
	tbl, err := s.store.GetTable(types.ProgressTable)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := input
	entry.ID = ""
	entry.CreatedAt = now
	entry.UpdatedAt = now
	entry.IsDeleted = false
	entry.DeletedAt = nil

	if _, err := tbl.Set("", &entry); err != nil {
		return nil, err
	}
	s.LoadEntries()
	return &entry, nil
}

// UpdateEntry merges the partial update over the stored entry and refreshes
// UpdatedAt.
func (s *ProgressService) UpdateEntry(id string, upd types.ProgressUpdate) (*types.ProgressEntry, error) {
	tbl, err := s.store.GetTable(types.ProgressTable)
	if err != nil {
		return nil, err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return nil, err
	}
	entry := got.(*types.ProgressEntry)

	if upd.Value != nil {
		entry.Value = *upd.Value
	}
	if upd.Date != nil {
		entry.Date = *upd.Date
	}
	if upd.Note != nil {
		entry.Note = *upd.Note
	}
	entry.UpdatedAt = time.Now()

	if _, err := tbl.Set(id, entry); err != nil {
		return nil, err
	}
	s.LoadEntries()
	return entry, nil
}

// DeleteEntry soft-deletes by default; soft=false physically removes the row.
func (s *ProgressService) DeleteEntry(id string, soft bool) error {
	tbl, err := s.store.GetTable(types.ProgressTable)
	if err != nil {
		return err
	}

	if soft {
		got, err := tbl.Get(id)
		if err != nil {
			return err
		}
		entry := got.(*types.ProgressEntry)
		now := time.Now()
		entry.IsDeleted = true
		entry.DeletedAt = &now
		entry.UpdatedAt = now
		if _, err := tbl.Set(id, entry); err != nil {
			return err
		}
	} else {
		if err := tbl.Delete(id); err != nil {
			return err
		}
	}
	s.LoadEntries()
	return nil
}

// RestoreEntry clears the soft-delete state.
func (s *ProgressService) RestoreEntry(id string) error {
	tbl, err := s.store.GetTable(types.ProgressTable)
	if err != nil {
		return err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return err
	}
	entry := got.(*types.ProgressEntry)
	entry.IsDeleted = false
	entry.DeletedAt = nil
	entry.UpdatedAt = time.Now()
	if _, err := tbl.Set(id, entry); err != nil {
		return err
	}
	s.LoadEntries()
	return nil
}
