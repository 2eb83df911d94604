package models

import "github.com/shopspring/decimal"

// Settlement represents a manual payment between group members to clear debt.
// From paid To, which offsets whatever From owed To in the same scope.
// Settlements are immutable once created.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// GroupID is the group this settlement belongs to.
	GroupID string `json:"group_id"`

	// From is the user who paid (debtor settling up).
	From UserID `json:"from"`

	// To is the user who received payment (creditor being paid).
	To UserID `json:"to"`

	// Amount is the payment amount.
	Amount decimal.Decimal `json:"amount"`

	// Note is an optional description for the settlement.
	Note string `json:"note,omitempty"`

	// CreatedBy is the user who recorded this settlement.
	CreatedBy UserID `json:"created_by"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `json:"created_at"`
}
