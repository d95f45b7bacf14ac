package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the SQLite schema. Every statement is idempotent so it is
// safe to run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS days (
		date                 TEXT PRIMARY KEY,
		doc                  TEXT NOT NULL,
		total_logged_minutes INTEGER NOT NULL DEFAULT 0 CHECK(total_logged_minutes >= 0),
		goal_reached         INTEGER NOT NULL DEFAULT 1,
		version              INTEGER NOT NULL DEFAULT 1 CHECK(version > 0),
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS catalog_tasks (
		id                   TEXT PRIMARY KEY,
		name                 TEXT NOT NULL,
		color                TEXT NOT NULL DEFAULT '#000000',
		default_goal_minutes INTEGER NOT NULL CHECK(default_goal_minutes > 0),
		created_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_catalog_tasks_created ON catalog_tasks(created_at)`,

	`CREATE TABLE IF NOT EXISTS settings (
		setting_key   TEXT PRIMARY KEY,
		setting_value TEXT NOT NULL
	)`,
}
