package storage

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// migrations contains all database migrations in order
var migrations = []Migration{
	{
		Version:     1,
		Description: "Enforce a single required channel",
		SQL: `
CREATE UNIQUE INDEX IF NOT EXISTS idx_channels_required
    ON channels(is_required) WHERE is_required = 1;
`,
	},
}

// RunMigrations executes all pending migrations
func RunMigrations(queue *DBQueue) error {
	return queue.Execute(func(db *sql.DB) error {
		_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    description TEXT NOT NULL,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`)
		if err != nil {
			return fmt.Errorf("failed to create migrations table: %w", err)
		}

		var currentVersion int
		err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
		if err != nil {
			return fmt.Errorf("failed to get current migration version: %w", err)
		}

		for _, migration := range migrations {
			if migration.Version <= currentVersion {
				continue
			}

			tx, err := db.Begin()
			if err != nil {
				return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
			}

			if _, err := tx.Exec(migration.SQL); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("failed to execute migration %d (%s): %w", migration.Version, migration.Description, err)
			}

			_, err = tx.Exec(
				"INSERT INTO schema_migrations (version, description) VALUES (?, ?)",
				migration.Version,
				migration.Description,
			)
			if err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
			}

			if err := tx.Commit(); err != nil {
				return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
			}
		}

		return nil
	})
}
