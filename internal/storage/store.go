// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"splitledger/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for splitledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Aggregation reads (ListObligations*, ListSettlements*) return whatever set
// of records is durable at read time; the ledger's commutative aggregation
// makes that safe without coordination across concurrent writers.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Groups
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroupsByMember(ctx context.Context, userID models.UserID) ([]*models.Group, error)
	AddGroupMembers(ctx context.Context, groupID string, members []models.UserID) error

	// Expenses. CreateExpense and UpdateExpense persist the expense together
	// with its merged obligations in one transaction; UpdateExpense replaces
	// the stored obligations wholesale.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// Obligations, read back for aggregation.
	ListObligationsByGroup(ctx context.Context, groupID string) ([]models.Obligation, error)
	ListObligationsByUser(ctx context.Context, userID models.UserID) ([]models.Obligation, error)

	// Settlements
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)
	ListSettlementsByUser(ctx context.Context, userID models.UserID) ([]*models.Settlement, error)

	// Activity feed and notifications
	CreateActivity(ctx context.Context, activity *models.Activity) error
	ListActivitiesByGroup(ctx context.Context, groupID string) ([]*models.Activity, error)
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotificationsByUser(ctx context.Context, userID models.UserID) ([]*models.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error

	// Close releases any resources held by the store.
	Close() error
}
