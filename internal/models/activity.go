package models

// Activity types recorded in the group feed.
const (
	ActivityExpenseAdded   = "expense_added"
	ActivityExpenseUpdated = "expense_updated"
	ActivityExpenseDeleted = "expense_deleted"
	ActivitySettlementMade = "settlement_made"
)

// Activity is one entry in a group's activity feed.
type Activity struct {
	// ID is the unique identifier for the activity (UUID format).
	ID string `json:"id"`

	// GroupID is the group the activity happened in.
	GroupID string `json:"group_id"`

	// Actor is the user who performed the action.
	Actor UserID `json:"actor"`

	// Type is one of the Activity* constants.
	Type string `json:"type"`

	// Summary is a short human-readable description of the action.
	Summary string `json:"summary"`

	// CreatedAt is the Unix timestamp when the activity was recorded.
	CreatedAt int64 `json:"created_at"`
}

// Notification is an in-app message delivered to a single user.
type Notification struct {
	// ID is the unique identifier for the notification (UUID format).
	ID string `json:"id"`

	// UserID is the recipient.
	UserID UserID `json:"user_id"`

	// Type mirrors the activity type that produced the notification.
	Type string `json:"type"`

	// Title is the short headline shown to the user.
	Title string `json:"title"`

	// Message is the notification body.
	Message string `json:"message"`

	// Read reports whether the user has seen the notification.
	Read bool `json:"read"`

	// CreatedAt is the Unix timestamp when the notification was created.
	CreatedAt int64 `json:"created_at"`
}
