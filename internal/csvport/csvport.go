// Package csvport converts goals, progress entries, and notes to and from
// CSV. Exports read the current service snapshots; imports create fresh
// records through the services, so imported rows get new IDs and re-importing
// the same file duplicates data.
package csvport

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/primeos/internal/service"
	"github.com/mesh-intelligence/primeos/pkg/types"
)

// Header layouts. Empty collections export the short header form.
var (
	goalHeaders          = []string{"ID", "Title", "Description", "Category ID", "Status", "Target Date", "Created At", "Updated At"}
	goalHeadersEmpty     = []string{"ID", "Title", "Category ID", "Status", "Target Date"}
	progressHeaders      = []string{"ID", "Goal ID", "Value", "Date", "Note", "Created At", "Updated At"}
	progressHeadersEmpty = []string{"ID", "Goal ID", "Value", "Date"}
	noteHeaders          = []string{"ID", "Title", "Content", "Tags", "Is Archived", "Created At", "Updated At"}
	noteHeadersEmpty     = []string{"ID", "Title", "Content", "Tags", "Is Archived"}
)

// Porter exports and imports CSV through the entity services.
type Porter struct {
	goals    *service.GoalService
	progress *service.ProgressService
	notes    *service.NoteService
	log      *zap.Logger
}

// New creates a porter over the given services. A nil logger disables
// logging.
func New(goals *service.GoalService, progress *service.ProgressService, notes *service.NoteService, logger *zap.Logger) *Porter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Porter{goals: goals, progress: progress, notes: notes, log: logger}
}

// ExportGoals renders the non-deleted goals as CSV.
func (p *Porter) ExportGoals() string {
	p.goals.LoadGoals()
	goals, _ := p.goals.Goals().Latest()
	if len(goals) == 0 {
		return headerRow(goalHeadersEmpty)
	}

	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, []string{
			g.ID, g.Title, g.Description, g.CategoryID, g.Status, g.TargetDate,
			fmtStamp(g.CreatedAt), fmtStamp(g.UpdatedAt),
		})
	}
	return formatCSV(goalHeaders, rows)
}

// ExportProgress renders the non-deleted progress entries as CSV.
func (p *Porter) ExportProgress() string {
	p.progress.LoadEntries()
	entries, _ := p.progress.Entries().Latest()
	if len(entries) == 0 {
		return headerRow(progressHeadersEmpty)
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID, e.GoalID, fmtValue(e.Value), e.Date, e.Note,
			fmtStamp(e.CreatedAt), fmtStamp(e.UpdatedAt),
		})
	}
	return formatCSV(progressHeaders, rows)
}

// ExportNotes renders the non-deleted notes as CSV. The body is flattened to
// plain text and the tag column joins tag names with ", ".
func (p *Porter) ExportNotes() string {
	p.notes.LoadNotes()
	notes, _ := p.notes.Notes().Latest()
	if len(notes) == 0 {
		return headerRow(noteHeadersEmpty)
	}

	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		names := make([]string, 0, len(n.Tags))
		for _, t := range n.Tags {
			names = append(names, t.Name)
		}
		rows = append(rows, []string{
			n.ID, n.Title, n.RichContent.PlainText(), strings.Join(names, ", "),
			strconv.FormatBool(n.IsArchived),
			fmtStamp(n.CreatedAt), fmtStamp(n.UpdatedAt),
		})
	}
	return formatCSV(noteHeaders, rows)
}

// ImportGoals creates a goal per data row and returns how many were
// imported. Columns are located by header name; Title and Category ID are
// required. Rows shorter than the header are skipped, and rows the service
// rejects are logged and skipped.
func (p *Porter) ImportGoals(content string) (int, error) {
	headers, lines, err := splitCSV(content)
	if err != nil {
		return 0, err
	}

	title := index(headers, "Title")
	categoryID := index(headers, "Category ID")
	status := index(headers, "Status")
	targetDate := index(headers, "Target Date")
	description := index(headers, "Description")
	if title < 0 || categoryID < 0 {
		return 0, fmt.Errorf("missing required columns Title, Category ID: %w", types.ErrImportFormat)
	}

	imported := 0
	for i, line := range lines {
		values := parseLine(line)
		if len(values) < len(headers) {
			continue
		}

		goal := types.Goal{
			Title:       values[title],
			CategoryID:  values[categoryID],
			Status:      pick(values, status),
			TargetDate:  pick(values, targetDate),
			Description: pick(values, description),
		}
		// Only a missing column defaults to now; an empty cell stays empty.
		if targetDate < 0 {
			goal.TargetDate = time.Now().UTC().Format(time.RFC3339Nano)
		}
		if _, err := p.goals.AddGoal(goal); err != nil {
			p.log.Warn("skipping goal row", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		imported++
	}
	return imported, nil
}

// ImportProgress creates a progress entry per data row and returns how many
// were imported. Goal ID, Value, and Date are required columns; unparseable
// values become 0.
func (p *Porter) ImportProgress(content string) (int, error) {
	headers, lines, err := splitCSV(content)
	if err != nil {
		return 0, err
	}

	goalID := index(headers, "Goal ID")
	value := index(headers, "Value")
	date := index(headers, "Date")
	note := index(headers, "Note")
	if goalID < 0 || value < 0 || date < 0 {
		return 0, fmt.Errorf("missing required columns Goal ID, Value, Date: %w", types.ErrImportFormat)
	}

	imported := 0
	for i, line := range lines {
		values := parseLine(line)
		if len(values) < len(headers) {
			continue
		}

		v, err := strconv.ParseFloat(values[value], 64)
		if err != nil {
			v = 0
		}
		// An empty date cell defaults to now; the goal importer only
		// defaults the target date when the whole column is missing.
		entry := types.ProgressEntry{
			GoalID: values[goalID],
			Value:  v,
			Date:   values[date],
			Note:   pick(values, note),
		}
		if entry.Date == "" {
			entry.Date = time.Now().UTC().Format(time.RFC3339Nano)
		}
		if _, err := p.progress.AddEntry(entry); err != nil {
			p.log.Warn("skipping progress row", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		imported++
	}
	return imported, nil
}

// ImportNotes creates a note per data row and returns how many were
// imported. Title is the only required column; the Content cell becomes a
// single plain-text insert, and tags are not imported.
func (p *Porter) ImportNotes(content string) (int, error) {
	headers, lines, err := splitCSV(content)
	if err != nil {
		return 0, err
	}

	title := index(headers, "Title")
	body := index(headers, "Content")
	if title < 0 {
		return 0, fmt.Errorf("missing required column Title: %w", types.ErrImportFormat)
	}

	imported := 0
	for i, line := range lines {
		values := parseLine(line)
		if len(values) < len(headers) {
			continue
		}

		input := service.NoteInput{
			Title: values[title],
			RichContent: types.RichContent{
				Ops: []types.RichOp{{Insert: pick(values, body)}},
			},
			Tags: []string{},
		}
		if _, err := p.notes.AddNote(input); err != nil {
			p.log.Warn("skipping note row", zap.Int("row", i+1), zap.Error(err))
			continue
		}
		imported++
	}
	return imported, nil
}

// splitCSV splits content into a parsed header and raw data lines. A file
// without at least one data row is an import format error.
func splitCSV(content string) ([]string, []string, error) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) < 2 {
		return nil, nil, fmt.Errorf("empty file: %w", types.ErrImportFormat)
	}
	return parseLine(lines[0]), lines[1:], nil
}

// parseLine splits one CSV line on unquoted commas. Doubled quotes inside a
// quoted cell unescape to one quote, and every cell is whitespace-trimmed.
func parseLine(line string) []string {
	var result []string
	var current strings.Builder
	insideQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if insideQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				insideQuotes = !insideQuotes
			}
		case c == ',' && !insideQuotes:
			result = append(result, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	result = append(result, strings.TrimSpace(current.String()))
	return result
}

func formatCSV(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(headerRow(headers))
	for _, row := range rows {
		b.WriteByte('\n')
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeCell(cell))
		}
	}
	return b.String()
}

func headerRow(headers []string) string {
	cells := make([]string, 0, len(headers))
	for _, h := range headers {
		cells = append(cells, escapeCell(h))
	}
	return strings.Join(cells, ",")
}

// escapeCell quotes a cell containing a comma, quote, or newline, doubling
// embedded quotes.
func escapeCell(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

func fmtStamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func fmtValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// index locates a header by exact name, -1 when absent.
func index(headers []string, name string) int {
	for i, h := range headers {
		if h == name {
			return i
		}
	}
	return -1
}

// pick returns the cell at idx, or empty when the column is absent.
func pick(values []string, idx int) string {
	if idx < 0 || idx >= len(values) {
		return ""
	}
	return values[idx]
}
