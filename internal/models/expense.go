package models

import "github.com/shopspring/decimal"

// SplitStrategy identifies how an expense amount was divided among its
// participants. Each expense carries exactly one strategy plus the
// strategy-specific input (participants, shares, weights, or items).
type SplitStrategy string

const (
	// StrategyEqual divides the total evenly across all participants.
	StrategyEqual SplitStrategy = "equal"

	// StrategyUnequal uses caller-supplied exact amounts per participant.
	StrategyUnequal SplitStrategy = "unequal"

	// StrategyShares weights each participant's portion by a supplied ratio.
	StrategyShares SplitStrategy = "shares"

	// StrategyItemized splits each line item equally among the users
	// involved in that item.
	StrategyItemized SplitStrategy = "itemized"

	// StrategyCustom takes caller-supplied obligations directly.
	StrategyCustom SplitStrategy = "custom"
)

// Valid reports whether s is one of the known strategies.
func (s SplitStrategy) Valid() bool {
	switch s {
	case StrategyEqual, StrategyUnequal, StrategyShares, StrategyItemized, StrategyCustom:
		return true
	}
	return false
}

// Obligation is a directed per-expense debt: From owes To the given amount.
// Invariants: Amount > 0 and From != To. Obligations are computed by the
// ledger engine when the expense is created, persisted alongside it, and
// rewritten in full whenever the expense is edited.
type Obligation struct {
	From   UserID          `json:"from"`
	To     UserID          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Share is one participant's portion of an expense. Which field is meaningful
// depends on the strategy: StrategyUnequal reads Amount, StrategyShares reads
// Weight. StrategyCustom does not use shares at all.
type Share struct {
	User   UserID          `json:"user"`
	Amount decimal.Decimal `json:"amount,omitempty"`
	Weight decimal.Decimal `json:"weight,omitempty"`
}

// LineItem is a single line on an itemized expense. The item's amount is
// split equally among the Involved users, each owing PaidBy their portion.
type LineItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id,omitempty"`

	// Label is the human-readable description (e.g., "Pizza", "Cab fare").
	Label string `json:"label"`

	// Amount is the price of this item.
	Amount decimal.Decimal `json:"amount"`

	// PaidBy is the user who paid for this item. Itemized expenses allow a
	// different payer per line.
	PaidBy UserID `json:"paid_by"`

	// Involved is the list of users splitting this item.
	Involved []UserID `json:"involved"`
}

// Expense represents a recorded shared expense.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// GroupID is the group this expense belongs to.
	GroupID string `json:"group_id"`

	// Title is the human-readable name for the expense.
	Title string `json:"title"`

	// Amount is the total expense amount.
	Amount decimal.Decimal `json:"amount"`

	// PaidBy is the user who paid the total.
	PaidBy UserID `json:"paid_by"`

	// Participants is the list of users splitting this expense.
	Participants []UserID `json:"participants"`

	// Strategy selects how the amount was divided.
	Strategy SplitStrategy `json:"strategy"`

	// Shares carries the strategy input for unequal and share-weighted
	// splits. Empty for other strategies.
	Shares []Share `json:"shares,omitempty"`

	// Items carries the strategy input for itemized splits.
	Items []LineItem `json:"items,omitempty"`

	// Obligations is the merged engine output for this expense, one entry per
	// distinct (from, to) pair. Immutable once persisted; replaced wholesale
	// when the expense is edited.
	Obligations []Obligation `json:"obligations"`

	// Note is an optional free-form description.
	Note string `json:"note,omitempty"`

	// Category is an optional expense category (e.g., "food", "travel").
	Category string `json:"category,omitempty"`

	// CreatedBy is the user who recorded the expense.
	CreatedBy UserID `json:"created_by"`

	// CreatedAt is the Unix timestamp when the expense was created.
	CreatedAt int64 `json:"created_at"`
}
