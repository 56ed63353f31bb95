package service

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/primeos/pkg/types"
)

// noteSnippetLen caps the plain-text snippet taken from a note body.
const noteSnippetLen = 200

// SearchService aggregates case-insensitive substring search over goals,
// progress entries, daily log entries, and notes.
type SearchService struct {
	store types.Store
	log   *zap.Logger
}

// NewSearchService creates a search service over an attached store.
// A nil logger disables logging.
func NewSearchService(store types.Store, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{store: store, log: logger}
}

// Search returns matches across all entity families, title matches first and
// newest first within each group. Queries shorter than two characters return
// an empty slice, as do storage failures.
func (s *SearchService) Search(query string) []types.SearchResult {
	if utf8.RuneCountInString(query) < 2 {
		return []types.SearchResult{}
	}
	lower := strings.ToLower(query)

	results := []types.SearchResult{}
	results = append(results, s.searchGoals(lower)...)
	results = append(results, s.searchProgress(lower)...)
	results = append(results, s.searchLogs(lower)...)
	results = append(results, s.searchNotes(lower)...)

	sort.SliceStable(results, func(i, j int) bool {
		iTitle := strings.Contains(strings.ToLower(results[i].Title), lower)
		jTitle := strings.Contains(strings.ToLower(results[j].Title), lower)
		if iTitle != jTitle {
			return iTitle
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results
}

func (s *SearchService) searchGoals(lower string) []types.SearchResult {
	rows := s.fetchLive(types.GoalsTable)

	var results []types.SearchResult
	for _, r := range rows {
		goal := r.(*types.Goal)
		if !strings.Contains(strings.ToLower(goal.Title), lower) &&
			!strings.Contains(strings.ToLower(goal.Description), lower) {
			continue
		}
		results = append(results, types.SearchResult{
			Type:      types.SearchResultGoal,
			ID:        goal.ID,
			Title:     goal.Title,
			Snippet:   goal.Description,
			Path:      "/goals/" + goal.ID,
			CreatedAt: goal.CreatedAt,
		})
	}
	return results
}

func (s *SearchService) searchProgress(lower string) []types.SearchResult {
	rows := s.fetchLive(types.ProgressTable)

	var results []types.SearchResult
	for _, r := range rows {
		entry := r.(*types.ProgressEntry)
		if !strings.Contains(strings.ToLower(entry.Note), lower) {
			continue
		}
		results = append(results, types.SearchResult{
			Type:      types.SearchResultProgress,
			ID:        entry.ID,
			Title:     fmt.Sprintf("Progress for Goal %s", entry.GoalID),
			Snippet:   entry.Note,
			Path:      "/progress/" + entry.ID,
			CreatedAt: entry.CreatedAt,
		})
	}
	return results
}

func (s *SearchService) searchLogs(lower string) []types.SearchResult {
	rows := s.fetchLive(types.LogEntriesTable)

	var results []types.SearchResult
	for _, r := range rows {
		entry := r.(*types.DailyLogEntry)
		if !strings.Contains(strings.ToLower(entry.Note), lower) {
			continue
		}
		results = append(results, types.SearchResult{
			Type:      types.SearchResultLog,
			ID:        entry.ID,
			Title:     fmt.Sprintf("Daily Log %s", entry.LogDate),
			Snippet:   entry.Note,
			Path:      "/daily-log?date=" + entry.LogDate,
			CreatedAt: entry.CreatedAt,
		})
	}
	return results
}

func (s *SearchService) searchNotes(lower string) []types.SearchResult {
	rows := s.fetchLive(types.NotesTable)

	var results []types.SearchResult
	for _, r := range rows {
		note := r.(*types.Note)
		if !strings.Contains(strings.ToLower(note.Title), lower) {
			continue
		}
		results = append(results, types.SearchResult{
			Type:      types.SearchResultNote,
			ID:        note.ID,
			Title:     note.Title,
			Snippet:   note.RichContent.PlainTextSnippet(noteSnippetLen),
			Path:      "/notes/" + note.ID,
			CreatedAt: note.CreatedAt,
		})
	}
	return results
}

// fetchLive returns the non-deleted rows of a table, or nil after logging a
// failure.
func (s *SearchService) fetchLive(table string) []any {
	tbl, err := s.store.GetTable(table)
	if err != nil {
		s.log.Error("searching", zap.String("table", table), zap.Error(err))
		return nil
	}
	rows, err := tbl.Fetch(map[string]any{"isDeleted": false})
	if err != nil {
		s.log.Error("searching", zap.String("table", table), zap.Error(err))
		return nil
	}
	return rows
}
