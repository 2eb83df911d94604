package service

import (
	"context"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// NotificationService exposes a user's notification inbox.
type NotificationService struct {
	store storage.Store
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(store storage.Store) *NotificationService {
	return &NotificationService{store: store}
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID models.UserID) ([]*models.Notification, error) {
	return s.store.ListNotificationsByUser(ctx, userID)
}

// MarkRead marks a single notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID string) error {
	return s.store.MarkNotificationRead(ctx, notificationID)
}
