package types

import "time"

// DailyLogCategory groups daily log entries. Seeded categories carry
// IsFixed=true and reject deletion.
type DailyLogCategory struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	IsFixed   bool       `json:"isFixed"`
	IsDeleted bool       `json:"isDeleted"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// DailyLogEntry is a journal entry for one category on one day.
// UpdatedAt is only set once the entry has been modified.
type DailyLogEntry struct {
	ID         string     `json:"id"`
	LogDate    string     `json:"logDate"` // ISO date string
	CategoryID string     `json:"categoryId"`
	Note       string     `json:"note,omitempty"`
	IsDeleted  bool       `json:"isDeleted"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// LogEntryUpdate carries a partial daily-log-entry mutation. Nil fields are
// left untouched.
type LogEntryUpdate struct {
	LogDate    *string
	CategoryID *string
	Note       *string
}
