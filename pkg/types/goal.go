package types

import "time"

// Goal statuses.
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusOnHold    = "on-hold"
)

// validGoalStatuses is the set of recognized goal status values.
var validGoalStatuses = map[string]bool{
	GoalStatusActive:    true,
	GoalStatusCompleted: true,
	GoalStatusOnHold:    true,
}

// ValidGoalStatus reports whether status is a recognized goal status.
func ValidGoalStatus(status string) bool {
	return validGoalStatuses[status]
}

// Goal represents a tracked goal belonging to one category.
type Goal struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CategoryID  string     `json:"categoryId"`
	TargetDate  string     `json:"targetDate"` // ISO date string
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	IsDeleted   bool       `json:"isDeleted"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// GoalCategory groups goals. Seeded categories carry IsSystem=true and
// reject deletion.
type GoalCategory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"` // hex color
	CreatedAt time.Time `json:"createdAt"`
	IsSystem  bool      `json:"isSystem"`
}

// GoalUpdate carries a partial goal mutation. Nil fields are left untouched.
type GoalUpdate struct {
	Title       *string
	Description *string
	CategoryID  *string
	TargetDate  *string
	Status      *string
}

// CategoryUpdate carries a partial category mutation. Nil fields are left
// untouched.
type CategoryUpdate struct {
	Name  *string
	Color *string
}
