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

// SettlementService records repayments between group members.
type SettlementService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(store storage.Store, notifier notify.Notifier) *SettlementService {
	return &SettlementService{store: store, notifier: notifier}
}

// Create validates and persists a settlement. The amount is rounded to
// cents before storage so it composes exactly with obligation amounts.
func (s *SettlementService) Create(ctx context.Context, settlement *models.Settlement) error {
	if settlement.From == "" || settlement.To == "" || settlement.From == settlement.To {
		return fmt.Errorf("%w: settlement requires two distinct users", ledger.ErrInvalidInput)
	}
	if !settlement.Amount.IsPositive() {
		return fmt.Errorf("%w: settlement amount must be positive, got %s", ledger.ErrInvalidInput, settlement.Amount)
	}
	settlement.Amount = settlement.Amount.Round(2)
	if settlement.Amount.IsZero() {
		return fmt.Errorf("%w: settlement amount rounds to zero", ledger.ErrInvalidInput)
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("CreateSettlement failed", "group_id", settlement.GroupID, "error", err)
		return err
	}
	slog.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"group_id", settlement.GroupID,
		"from", settlement.From,
		"to", settlement.To,
		"amount", settlement.Amount,
	)

	activity := &models.Activity{
		GroupID: settlement.GroupID,
		Actor:   settlement.CreatedBy,
		Type:    models.ActivitySettlementMade,
		Summary: fmt.Sprintf("%s paid %s %s", settlement.From, settlement.To, settlement.Amount),
	}
	if err := s.store.CreateActivity(ctx, activity); err != nil {
		slog.Warn("failed to record activity", "group_id", settlement.GroupID, "error", err)
	}

	notify.FanOut(ctx, s.notifier, []*models.Notification{{
		UserID:  settlement.To,
		Type:    models.ActivitySettlementMade,
		Title:   "Payment received",
		Message: fmt.Sprintf("%s settled %s", settlement.From, settlement.Amount),
	}})
	return nil
}

// ListByGroup returns a group's settlements, newest first.
func (s *SettlementService) ListByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	return s.store.ListSettlementsByGroup(ctx, groupID)
}
