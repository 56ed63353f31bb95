package types

import "time"

// ProgressEntry records a measured value against a goal on a given date.
type ProgressEntry struct {
	ID        string     `json:"id"`
	GoalID    string     `json:"goalId"`
	Value     float64    `json:"value"`
	Date      string     `json:"date"` // ISO date string
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// ProgressUpdate carries a partial progress-entry mutation. Nil fields are
// left untouched.
type ProgressUpdate struct {
	GoalID *string
	Value  *float64
	Date   *string
	Note   *string
}
