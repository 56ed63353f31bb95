package types

import "time"

// Setting is one application setting row, keyed by name.
type Setting struct {
	Key       string     `json:"key"`
	Value     string     `json:"value"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Seeded setting keys.
const (
	SettingThemeMode = "theme_mode"
)
