package types

import "time"

// Search result types.
const (
	SearchResultGoal     = "goal"
	SearchResultProgress = "progress"
	SearchResultLog      = "log"
	SearchResultNote     = "note"
)

// SearchResult is one hit from the cross-entity search aggregator.
type SearchResult struct {
	Type      string    `json:"type"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Snippet   string    `json:"snippet"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
