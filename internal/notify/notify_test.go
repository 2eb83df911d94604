package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"splitledger/internal/models"
	"splitledger/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.SQLiteStore {
	t.Helper()
	tempDir, err := os.MkdirTemp("", "splitledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// Fan-out issues parallel inserts over the connection pool; every
// notification must land even when writers contend for the SQLite lock.
func TestFanOutDeliversAllConcurrently(t *testing.T) {
	store := newTestStore(t)
	notifier := NewStoreNotifier(store)

	var notifications []*models.Notification
	for i := 0; i < 16; i++ {
		notifications = append(notifications, &models.Notification{
			UserID:  models.UserID(fmt.Sprintf("user-%02d", i)),
			Type:    models.ActivityExpenseAdded,
			Title:   "Expense added",
			Message: "Dinner",
		})
	}

	FanOut(context.Background(), notifier, notifications)

	for _, n := range notifications {
		got, err := store.ListNotificationsByUser(context.Background(), n.UserID)
		if err != nil {
			t.Fatalf("ListNotificationsByUser(%s) failed: %v", n.UserID, err)
		}
		if len(got) != 1 {
			t.Errorf("expected 1 notification for %s, got %d", n.UserID, len(got))
		}
	}
}
