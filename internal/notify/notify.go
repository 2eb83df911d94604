// Package notify delivers in-app notifications to users.
package notify

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"splitledger/internal/models"
)

// Notifier delivers a single notification to its recipient.
// Implementations must be safe for concurrent use; FanOut sends in parallel.
type Notifier interface {
	Send(ctx context.Context, notification *models.Notification) error
}

// NotificationStore is the storage surface the store-backed notifier needs.
type NotificationStore interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
}

// StoreNotifier persists notifications for in-app delivery.
type StoreNotifier struct {
	store NotificationStore
}

// NewStoreNotifier creates a notifier that writes to the given store.
func NewStoreNotifier(store NotificationStore) *StoreNotifier {
	return &StoreNotifier{store: store}
}

// Send persists the notification.
func (n *StoreNotifier) Send(ctx context.Context, notification *models.Notification) error {
	return n.store.CreateNotification(ctx, notification)
}

// FanOut delivers one notification per recipient concurrently. Delivery
// failures are logged and never fail the write that triggered them.
func FanOut(ctx context.Context, notifier Notifier, notifications []*models.Notification) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, n := range notifications {
		g.Go(func() error {
			if err := notifier.Send(ctx, n); err != nil {
				slog.Warn("notification delivery failed",
					"user_id", n.UserID,
					"type", n.Type,
					"error", err,
				)
			}
			return nil
		})
	}
	_ = g.Wait() // errors already logged per notification
}
