package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/primeos/internal/feed"
	"github.com/mesh-intelligence/primeos/pkg/types"
)

// DailyLogService owns the daily log categories and entries tables.
type DailyLogService struct {
	store      types.Store
	log        *zap.Logger
	categories *feed.Feed[[]types.DailyLogCategory]
	entries    *feed.Feed[[]types.DailyLogEntry]
}

// NewDailyLogService creates a daily log service over an attached store.
// A nil logger disables logging.
func NewDailyLogService(store types.Store, logger *zap.Logger) *DailyLogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DailyLogService{
		store:      store,
		log:        logger,
		categories: feed.New[[]types.DailyLogCategory](),
		entries:    feed.New[[]types.DailyLogEntry](),
	}
}

// Categories returns the feed of non-deleted log category snapshots.
func (s *DailyLogService) Categories() *feed.Feed[[]types.DailyLogCategory] { return s.categories }

// Entries returns the feed of log entry snapshots, newest date first.
func (s *DailyLogService) Entries() *feed.Feed[[]types.DailyLogEntry] { return s.entries }

// LoadCategories queries the non-deleted log categories and publishes the
// snapshot. Never returns an error.
func (s *DailyLogService) LoadCategories() {
	tbl, err := s.store.GetTable(types.LogCategoriesTable)
	if err != nil {
		s.log.Error("loading log categories", zap.Error(err))
		return
	}
	rows, err := tbl.Fetch(map[string]any{"isDeleted": false})
	if err != nil {
		s.log.Error("loading log categories", zap.Error(err))
		return
	}
	cats := make([]types.DailyLogCategory, 0, len(rows))
	for _, r := range rows {
		cats = append(cats, *(r.(*types.DailyLogCategory)))
	}
	s.categories.Publish(cats)
}

// LoadEntries queries non-deleted log entries and publishes the snapshot. An
// empty date loads all entries; otherwise only entries for that date. Never
// returns an error.
func (s *DailyLogService) LoadEntries(date string) {
	tbl, err := s.store.GetTable(types.LogEntriesTable)
	if err != nil {
		s.log.Error("loading log entries", zap.Error(err))
		return
	}
	filter := map[string]any{"isDeleted": false}
	if date != "" {
		filter["logDate"] = date
	}
	rows, err := tbl.Fetch(filter)
	if err != nil {
		s.log.Error("loading log entries", zap.Error(err))
		return
	}
	entries := make([]types.DailyLogEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, *(r.(*types.DailyLogEntry)))
	}
	s.entries.Publish(entries)
}

// EntriesByDate returns the non-deleted entries for one log date without
// touching the feed. Returns an empty slice on query failure.
func (s *DailyLogService) EntriesByDate(date string) []types.DailyLogEntry {
	tbl, err := s.store.GetTable(types.LogEntriesTable)
	if err != nil {
		s.log.Error("loading log entries by date", zap.String("date", date), zap.Error(err))
		return []types.DailyLogEntry{}
	}
	rows, err := tbl.Fetch(map[string]any{"logDate": date, "isDeleted": false})
	if err != nil {
		s.log.Error("loading log entries by date", zap.String("date", date), zap.Error(err))
		return []types.DailyLogEntry{}
	}
	entries := make([]types.DailyLogEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, *(r.(*types.DailyLogEntry)))
	}
	return entries
}

// AddCategory creates a custom (non-fixed) log category.
func (s *DailyLogService) AddCategory(name string) (*types.DailyLogCategory, error) {
	tbl, err := s.store.GetTable(types.LogCategoriesTable)
	if err != nil {
		return nil, err
	}
	cat := types.DailyLogCategory{
		Name:      name,
		CreatedAt: time.Now(),
		IsFixed:   false,
	}
	if _, err := tbl.Set("", &cat); err != nil {
		return nil, err
	}
	s.LoadCategories()
	return &cat, nil
}

// DeleteCategory hard-deletes a custom log category. Fixed categories fail
// with ErrSystemCategory.
func (s *DailyLogService) DeleteCategory(id string) error {
	tbl, err := s.store.GetTable(types.LogCategoriesTable)
	if err != nil {
		return err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return err
	}
	if got.(*types.DailyLogCategory).IsFixed {
		return types.ErrSystemCategory
	}
	if err := tbl.Delete(id); err != nil {
		return err
	}
	s.LoadCategories()
	return nil
}

// AddEntry creates a log entry. ID, CreatedAt, and delete state of the input
// are overwritten; UpdatedAt stays unset until the first update.
func (s *DailyLogService) AddEntry(input types.DailyLogEntry) (*types.DailyLogEntry, error) {
	tbl, err := s.store.GetTable(types.LogEntriesTable)
	if err != nil {
		return nil, err
	}

	entry := input
	entry.ID = ""
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = nil
	entry.IsDeleted = false

	if _, err := tbl.Set("", &entry); err != nil {
		return nil, err
	}
	s.LoadEntries("")
	return &entry, nil
}

// UpdateEntry merges the partial update over the stored entry and stamps
// UpdatedAt.
func (s *DailyLogService) UpdateEntry(id string, upd types.LogEntryUpdate) (*types.DailyLogEntry, error) {
	tbl, err := s.store.GetTable(types.LogEntriesTable)
	if err != nil {
		return nil, err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return nil, err
	}
	entry := got.(*types.DailyLogEntry)

	if upd.CategoryID != nil {
		entry.CategoryID = *upd.CategoryID
	}
	if upd.Note != nil {
		entry.Note = *upd.Note
	}
	if upd.LogDate != nil {
		entry.LogDate = *upd.LogDate
	}
	now := time.Now()
	entry.UpdatedAt = &now

	if _, err := tbl.Set(id, entry); err != nil {
		return nil, err
	}
	s.LoadEntries("")
	return entry, nil
}

// DeleteEntry soft-deletes by default; soft=false physically removes the row.
func (s *DailyLogService) DeleteEntry(id string, soft bool) error {
	tbl, err := s.store.GetTable(types.LogEntriesTable)
	if err != nil {
		return err
	}

	if soft {
		got, err := tbl.Get(id)
		if err != nil {
			return err
		}
		entry := got.(*types.DailyLogEntry)
		now := time.Now()
		entry.IsDeleted = true
		entry.UpdatedAt = &now
		if _, err := tbl.Set(id, entry); err != nil {
			return err
		}
	} else {
		if err := tbl.Delete(id); err != nil {
			return err
		}
	}
	s.LoadEntries("")
	return nil
}

// RestoreEntry clears the soft-delete state.
func (s *DailyLogService) RestoreEntry(id string) error {
	tbl, err := s.store.GetTable(types.LogEntriesTable)
	if err != nil {
		return err
	}
	got, err := tbl.Get(id)
	if err != nil {
		return err
	}
	entry := got.(*types.DailyLogEntry)
	now := time.Now()
	entry.IsDeleted = false
	entry.UpdatedAt = &now
	if _, err := tbl.Set(id, entry); err != nil {
		return err
	}
	s.LoadEntries("")
	return nil
}
