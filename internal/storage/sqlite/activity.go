package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// CreateActivity appends an entry to a group's activity feed.
func (s *SQLiteStore) CreateActivity(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.CreatedAt == 0 {
		activity.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO activities (id, group_id, actor, type, summary, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		activity.ID, activity.GroupID, string(activity.Actor), activity.Type, activity.Summary, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// ListActivitiesByGroup retrieves a group's activity feed, newest first.
func (s *SQLiteStore) ListActivitiesByGroup(ctx context.Context, groupID string) ([]*models.Activity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, actor, type, summary, created_at
		 FROM activities WHERE group_id = ? ORDER BY created_at DESC, id`, groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []*models.Activity
	for rows.Next() {
		activity := &models.Activity{}
		var actor string
		if err := rows.Scan(&activity.ID, &activity.GroupID, &actor,
			&activity.Type, &activity.Summary, &activity.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activity.Actor = models.UserID(actor)
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return activities, nil
}

// CreateNotification persists an in-app notification.
func (s *SQLiteStore) CreateNotification(ctx context.Context, notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt == 0 {
		notification.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, type, title, message, read, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		notification.ID, string(notification.UserID), notification.Type,
		notification.Title, notification.Message, boolToInt(notification.Read), notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// ListNotificationsByUser retrieves a user's notifications, newest first.
func (s *SQLiteStore) ListNotificationsByUser(ctx context.Context, userID models.UserID) ([]*models.Notification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, type, title, message, read, created_at
		 FROM notifications WHERE user_id = ? ORDER BY created_at DESC, id`,
		string(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		var uid string
		var read int
		if err := rows.Scan(&n.ID, &uid, &n.Type, &n.Title, &n.Message, &read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.UserID = models.UserID(uid)
		n.Read = read != 0
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationRead flags a notification as seen.
func (s *SQLiteStore) MarkNotificationRead(ctx context.Context, notificationID string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE notifications SET read = 1 WHERE id = ?", notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, storage.ErrNotFound)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
