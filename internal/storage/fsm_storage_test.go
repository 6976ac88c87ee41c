package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ad/telegram-contest-bot/internal/logger"
)

func newTestFSMStorage(t *testing.T) (*FSMStorage, *DBQueue) {
	t.Helper()
	queue := newTestQueue(t)
	return NewFSMStorage(queue, logger.New(logger.ERROR)), queue
}

func TestSessionRoundTrip(t *testing.T) {
	store, _ := newTestFSMStorage(t)
	ctx := context.Background()

	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("stored session comes back with state and context intact", prop.ForAll(
		func(userID int64, state string, value string) bool {
			data := map[string]interface{}{"value": value}

			if err := store.Set(ctx, userID, state, data); err != nil {
				t.Logf("Failed to set session: %v", err)
				return false
			}

			gotState, gotData, err := store.Get(ctx, userID)
			if err != nil {
				t.Logf("Failed to get session: %v", err)
				return false
			}

			return gotState == state && gotData["value"] == value
		},
		gen.Int64Range(1, 1<<40),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestSetReplacesExistingSession(t *testing.T) {
	store, _ := newTestFSMStorage(t)
	ctx := context.Background()

	if err := store.Set(ctx, 1, "first_state", map[string]interface{}{"step": "one"}); err != nil {
		t.Fatalf("Failed to set session: %v", err)
	}
	if err := store.Set(ctx, 1, "second_state", map[string]interface{}{"step": "two"}); err != nil {
		t.Fatalf("Failed to replace session: %v", err)
	}

	state, data, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if state != "second_state" || data["step"] != "two" {
		t.Errorf("Old session leaked through: state=%s data=%v", state, data)
	}
}

func TestGetMissingSession(t *testing.T) {
	store, _ := newTestFSMStorage(t)

	_, _, err := store.Get(context.Background(), 404)
	if err != ErrSessionNotFound {
		t.Fatalf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	store, _ := newTestFSMStorage(t)
	ctx := context.Background()

	if err := store.Set(ctx, 5, "some_state", map[string]interface{}{}); err != nil {
		t.Fatalf("Failed to set session: %v", err)
	}
	if err := store.Delete(ctx, 5); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}

	_, _, err := store.Get(ctx, 5)
	if err != ErrSessionNotFound {
		t.Fatalf("Expected ErrSessionNotFound after delete, got %v", err)
	}

	// Deleting a missing session is not an error
	if err := store.Delete(ctx, 5); err != nil {
		t.Fatalf("Second delete failed: %v", err)
	}
}

func TestStaleSessionsExpire(t *testing.T) {
	store, queue := newTestFSMStorage(t)
	ctx := context.Background()

	if err := store.Set(ctx, 9, "stuck_state", map[string]interface{}{}); err != nil {
		t.Fatalf("Failed to set session: %v", err)
	}

	// Age the session past the 30 minute TTL
	err := queue.Execute(func(db *sql.DB) error {
		_, err := db.Exec(`
			UPDATE fsm_sessions
			SET updated_at = datetime('now', '-31 minutes')
			WHERE user_id = 9
		`)
		return err
	})
	if err != nil {
		t.Fatalf("Failed to age session: %v", err)
	}

	if _, _, err := store.Get(ctx, 9); err != ErrSessionNotFound {
		t.Fatalf("Expected stale session to be invisible, got %v", err)
	}

	if err := store.CleanupStale(ctx); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	var remaining int
	err = queue.Execute(func(db *sql.DB) error {
		return db.QueryRow("SELECT COUNT(*) FROM fsm_sessions").Scan(&remaining)
	})
	if err != nil {
		t.Fatalf("Failed to count sessions: %v", err)
	}
	if remaining != 0 {
		t.Errorf("Expected stale session removed, %d rows remain", remaining)
	}
}
