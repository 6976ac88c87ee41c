package storage

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// newTestQueue opens an in-memory database with the full schema applied
func newTestQueue(t *testing.T) *DBQueue {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	queue := NewDBQueue(db)
	t.Cleanup(queue.Close)

	if err := InitSchema(queue); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}
	if err := RunMigrations(queue); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return queue
}
