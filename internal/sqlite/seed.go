// First-run seeding of default settings and categories.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"
)

// seededGoalCategory describes a goal category seeded on first run.
type seededGoalCategory struct {
	id    string
	name  string
	color string
}

// seededGoalCategories are the system goal categories. They cannot be
// deleted through the category service.
var seededGoalCategories = []seededGoalCategory{
	{"cat-learning", "Learning", "#2196F3"},
	{"cat-fitness", "Fitness", "#FF9800"},
	{"cat-nutrition", "Nutrition", "#4CAF50"},
	{"cat-general", "General", "#9C27B0"},
}

// seededLogCategory describes a daily-log category seeded on first run.
type seededLogCategory struct {
	id   string
	name string
}

// seededLogCategories are the fixed daily-log categories.
var seededLogCategories = []seededLogCategory{
	{"cat-location", "Location"},
	{"cat-mobile-usage", "Mobile Usage"},
	{"cat-app-usage", "App Usage"},
}

// seededSettings are the default application settings.
var seededSettings = map[string]string{
	"theme_mode": "system",
}

// seedDefaults inserts the default settings and categories when their tables
// are empty. Seeding is idempotent: each table is checked independently, so a
// user who deleted a custom row does not get defaults re-applied while other
// tables still seed on a genuinely fresh database.
func seedDefaults(db *sql.DB) error {
	nowStr := fmtTime(time.Now())

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRow("SELECT COUNT(*) FROM app_settings").Scan(&count); err != nil {
		return fmt.Errorf("counting settings: %w", err)
	}
	if count == 0 {
		for key, value := range seededSettings {
			_, err := tx.Exec(
				"INSERT INTO app_settings (key, value, created_at, updated_at) VALUES (?, ?, ?, ?)",
				key, value, nowStr, nowStr,
			)
			if err != nil {
				return fmt.Errorf("seeding setting %s: %w", key, err)
			}
		}
	}

	if err := tx.QueryRow("SELECT COUNT(*) FROM goal_categories").Scan(&count); err != nil {
		return fmt.Errorf("counting goal categories: %w", err)
	}
	if count == 0 {
		for _, cat := range seededGoalCategories {
			_, err := tx.Exec(
				"INSERT INTO goal_categories (id, name, color, created_at, is_system) VALUES (?, ?, ?, ?, 1)",
				cat.id, cat.name, cat.color, nowStr,
			)
			if err != nil {
				return fmt.Errorf("seeding goal category %s: %w", cat.name, err)
			}
		}
	}

	if err := tx.QueryRow("SELECT COUNT(*) FROM daily_log_categories").Scan(&count); err != nil {
		return fmt.Errorf("counting log categories: %w", err)
	}
	if count == 0 {
		for _, cat := range seededLogCategories {
			_, err := tx.Exec(
				"INSERT INTO daily_log_categories (id, name, is_fixed, is_deleted, created_at) VALUES (?, ?, 1, 0, ?)",
				cat.id, cat.name, nowStr,
			)
			if err != nil {
				return fmt.Errorf("seeding log category %s: %w", cat.name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}
