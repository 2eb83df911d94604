package service

import (
	"context"
	"log/slog"

	"splitledger/internal/ledger"
	"splitledger/internal/models"
	"splitledger/internal/storage"
)

// BalanceService computes net balances and settlement plans on demand.
// Nothing is cached: every read replays the durable obligations and
// settlements through the ledger, so balances are always consistent with
// whatever has been committed.
type BalanceService struct {
	store storage.Store
}

// NewBalanceService creates a new BalanceService backed by the given store.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store}
}

// GroupBalances returns the net balance of every unsettled pair in a group.
// A settlement is a payment, the inverse of a debt: it enters the ledger as
// the reversed entry so paying a debt cancels it pair by pair.
func (s *BalanceService) GroupBalances(ctx context.Context, groupID string) ([]ledger.NetBalance, error) {
	obligations, err := s.store.ListObligationsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return s.aggregate(obligations, settlements, "group_id", groupID)
}

// UserBalances returns the net balance of every pair the user appears in,
// across all of their groups.
func (s *BalanceService) UserBalances(ctx context.Context, userID models.UserID) ([]ledger.NetBalance, error) {
	obligations, err := s.store.ListObligationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	settlements, err := s.store.ListSettlementsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.aggregate(obligations, settlements, "user_id", string(userID))
}

// SimplifyGroup reduces a group's net balances to a minimal transfer plan.
func (s *BalanceService) SimplifyGroup(ctx context.Context, groupID string) ([]ledger.Transfer, error) {
	balances, err := s.GroupBalances(ctx, groupID)
	if err != nil {
		return nil, err
	}
	transfers, err := ledger.Simplify(balances)
	if err != nil {
		// Aggregate output always nets to zero, so an imbalance here means
		// corrupted stored data.
		slog.Error("debt simplification failed", "group_id", groupID, "error", err)
		return nil, err
	}
	return transfers, nil
}

func (s *BalanceService) aggregate(obligations []models.Obligation, settlements []*models.Settlement, scopeKey, scopeID string) ([]ledger.NetBalance, error) {
	entries := make([]ledger.Entry, 0, len(obligations)+len(settlements))
	for _, o := range obligations {
		entries = append(entries, ledger.Entry{From: o.From, To: o.To, Amount: o.Amount})
	}
	for _, st := range settlements {
		// st.From paid st.To, which is the inverse of st.From owing st.To.
		entries = append(entries, ledger.Entry{From: st.To, To: st.From, Amount: st.Amount})
	}

	balances, err := ledger.Aggregate(entries)
	if err != nil {
		// Everything here was validated before it was stored.
		slog.Error("ledger aggregation failed", scopeKey, scopeID, "error", err)
		return nil, err
	}
	return balances, nil
}
