package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS topics (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		color       TEXT NOT NULL DEFAULT 'blue'
		            CHECK(color IN ('red','orange','yellow','green','blue','purple','pink','gray')),
		archived_at TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS study_sessions (
		id         TEXT PRIMARY KEY,
		topic_id   TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
		start_ms   INTEGER NOT NULL,
		end_ms     INTEGER,
		status     TEXT NOT NULL DEFAULT 'stopped'
		           CHECK(status IN ('active','stopped')),
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_topic ON study_sessions(topic_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_start ON study_sessions(start_ms)`,
	// Fast lookup of the single running session.
	`CREATE INDEX IF NOT EXISTS idx_sessions_active ON study_sessions(status) WHERE status = 'active'`,

	`CREATE TABLE IF NOT EXISTS view_prefs (
		id             TEXT PRIMARY KEY DEFAULT 'default',
		display_mode   TEXT NOT NULL DEFAULT 'week'
		               CHECK(display_mode IN ('day','week','month')),
		week_starts_on INTEGER NOT NULL DEFAULT 0
		               CHECK(week_starts_on BETWEEN 0 AND 6),
		cell_height_px REAL NOT NULL DEFAULT 30,
		zoom_level     INTEGER NOT NULL DEFAULT 2
		               CHECK(zoom_level BETWEEN 1 AND 11)
	)`,

	// Seed the single local user's preference row
	`INSERT OR IGNORE INTO view_prefs (id) VALUES ('default')`,
}
