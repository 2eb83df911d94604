package service

import (
	"context"
	"fmt"
	"log/slog"

	"splitledger/internal/ledger"
	"splitledger/internal/models"
	"splitledger/internal/notify"
	"splitledger/internal/storage"
)

// ExpenseService records and manages shared expenses. Every write runs the
// ledger engine first: a malformed split never reaches storage.
type ExpenseService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend and notifier.
func NewExpenseService(store storage.Store, notifier notify.Notifier) *ExpenseService {
	return &ExpenseService{store: store, notifier: notifier}
}

// strategyFor maps an expense's stored strategy tag and input onto the
// engine's strategy variant.
func strategyFor(expense *models.Expense) (ledger.Strategy, error) {
	switch expense.Strategy {
	case models.StrategyEqual:
		return ledger.Equal{Participants: expense.Participants}, nil
	case models.StrategyUnequal:
		return ledger.Unequal{Shares: expense.Shares}, nil
	case models.StrategyShares:
		return ledger.Weighted{Shares: expense.Shares}, nil
	case models.StrategyItemized:
		return ledger.Itemized{Items: expense.Items}, nil
	case models.StrategyCustom:
		return ledger.Custom{Obligations: expense.Obligations}, nil
	default:
		return nil, fmt.Errorf("%w: unknown split strategy %q", ledger.ErrInvalidInput, expense.Strategy)
	}
}

// validatePayer checks that the payer is one of the participants, when a
// participant list is supplied.
func validatePayer(payer models.UserID, participants []models.UserID) error {
	if len(participants) == 0 {
		return nil
	}
	for _, p := range participants {
		if p == payer {
			return nil
		}
	}
	return fmt.Errorf("%w: payer %s must be one of the participants", ledger.ErrInvalidInput, payer)
}

// computeObligations runs the split and merge stages for the expense,
// leaving the merged result on expense.Obligations.
func computeObligations(expense *models.Expense) error {
	if err := validatePayer(expense.PaidBy, expense.Participants); err != nil {
		return err
	}
	strategy, err := strategyFor(expense)
	if err != nil {
		return err
	}
	raw, err := ledger.Split(expense.Amount, expense.PaidBy, strategy)
	if err != nil {
		return err
	}
	expense.Obligations = ledger.Merge(raw)
	return nil
}

// Create validates the expense, computes its obligations and persists both
// atomically, then records the activity and notifies participants.
func (s *ExpenseService) Create(ctx context.Context, expense *models.Expense) error {
	if err := computeObligations(expense); err != nil {
		slog.Warn("expense rejected", "group_id", expense.GroupID, "error", err)
		return err
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "group_id", expense.GroupID, "error", err)
		return err
	}
	slog.Info("Expense created",
		"expense_id", expense.ID,
		"group_id", expense.GroupID,
		"amount", expense.Amount,
		"strategy", expense.Strategy,
	)

	s.recordActivity(ctx, expense, models.ActivityExpenseAdded, fmt.Sprintf("Added expense %q", expense.Title))
	s.notifyParticipants(ctx, expense, models.ActivityExpenseAdded, "New expense added")
	return nil
}

// Update recomputes the obligations from the edited inputs and rewrites the
// expense wholesale.
func (s *ExpenseService) Update(ctx context.Context, expense *models.Expense) error {
	if _, err := s.store.GetExpense(ctx, expense.ID); err != nil {
		return err
	}
	if err := computeObligations(expense); err != nil {
		slog.Warn("expense update rejected", "expense_id", expense.ID, "error", err)
		return err
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expense.ID, "error", err)
		return err
	}
	slog.Info("Expense updated", "expense_id", expense.ID, "group_id", expense.GroupID)

	s.recordActivity(ctx, expense, models.ActivityExpenseUpdated, fmt.Sprintf("Updated expense %q", expense.Title))
	s.notifyParticipants(ctx, expense, models.ActivityExpenseUpdated, "Expense updated")
	return nil
}

// Get retrieves one expense with its stored obligations.
func (s *ExpenseService) Get(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// ListByGroup retrieves all expenses in a group.
func (s *ExpenseService) ListByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.store.ListExpensesByGroup(ctx, groupID)
}

// Delete removes an expense; its obligations disappear with it.
func (s *ExpenseService) Delete(ctx context.Context, expenseID string, actor models.UserID) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expenseID, "error", err)
		return err
	}
	slog.Info("Expense deleted", "expense_id", expenseID, "group_id", expense.GroupID)

	s.recordActivity(ctx, &models.Expense{GroupID: expense.GroupID, Title: expense.Title, CreatedBy: actor},
		models.ActivityExpenseDeleted, fmt.Sprintf("Deleted expense %q", expense.Title))
	return nil
}

func (s *ExpenseService) recordActivity(ctx context.Context, expense *models.Expense, activityType, summary string) {
	activity := &models.Activity{
		GroupID: expense.GroupID,
		Actor:   expense.CreatedBy,
		Type:    activityType,
		Summary: summary,
	}
	if err := s.store.CreateActivity(ctx, activity); err != nil {
		slog.Warn("failed to record activity", "group_id", expense.GroupID, "type", activityType, "error", err)
	}
}

func (s *ExpenseService) notifyParticipants(ctx context.Context, expense *models.Expense, notifType, title string) {
	var notifications []*models.Notification
	for _, uid := range expense.Participants {
		if uid == expense.CreatedBy {
			continue
		}
		notifications = append(notifications, &models.Notification{
			UserID:  uid,
			Type:    notifType,
			Title:   title,
			Message: expense.Title,
		})
	}
	notify.FanOut(ctx, s.notifier, notifications)
}
