// Row conversion helpers shared by the table accessors.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// fmtTime formats a timestamp for storage.
func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// fmtTimePtr formats an optional timestamp for storage; nil maps to SQL NULL.
func fmtTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}

// parseTime parses a stored timestamp. Accepts both RFC3339 and
// fractional-second forms, since imported records carry either.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// parseTimePtr parses a nullable stored timestamp.
func parseTimePtr(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// filterClause builds a WHERE clause from recognized filter keys. The keys
// map holds filter-key to column-name bindings; unrecognized filter keys are
// ignored so callers can share filters across tables.
func filterClause(filter map[string]any, keys map[string]string) (string, []any) {
	if len(filter) == 0 {
		return "", nil
	}
	var conditions []string
	var args []any
	for key, col := range keys {
		v, ok := filter[key]
		if !ok {
			continue
		}
		conditions = append(conditions, col+" = ?")
		args = append(args, v)
	}
	if len(conditions) == 0 {
		return "", nil
	}
	// Deterministic clause order for stable queries.
	sortStrings(conditions, args)
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// sortStrings sorts conditions and their args together by condition text.
func sortStrings(conditions []string, args []any) {
	for i := 1; i < len(conditions); i++ {
		for j := i; j > 0 && conditions[j] < conditions[j-1]; j-- {
			conditions[j], conditions[j-1] = conditions[j-1], conditions[j]
			args[j], args[j-1] = args[j-1], args[j]
		}
	}
}
