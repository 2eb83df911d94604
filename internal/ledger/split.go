package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

// epsilon is the settlement threshold: net magnitudes below one cent are
// treated as zero throughout the engine.
var epsilon = decimal.New(1, -2)

// Strategy is the closed set of ways to divide one expense into obligations.
// The interface is sealed: all implementations live in this package, one per
// split variant.
type Strategy interface {
	obligations(total decimal.Decimal, payer models.UserID) ([]models.Obligation, error)
}

// Split converts one expense into raw per-participant obligations using the
// given strategy. The returned obligations may contain repeated (from, to)
// pairs; Merge collapses them before persistence. Amounts are rounded to two
// decimal places as each obligation is finalized.
func Split(total decimal.Decimal, payer models.UserID, strategy Strategy) ([]models.Obligation, error) {
	if strategy == nil {
		return nil, fmt.Errorf("%w: no split strategy supplied", ErrInvalidInput)
	}
	if payer == "" {
		return nil, fmt.Errorf("%w: payer is required", ErrInvalidInput)
	}
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: total amount must be positive, got %s", ErrInvalidInput, total)
	}
	return strategy.obligations(total, payer)
}

// Equal divides the total evenly across all participants, payer included.
// One obligation is emitted per non-payer participant.
type Equal struct {
	Participants []models.UserID
}

func (s Equal) obligations(total decimal.Decimal, payer models.UserID) ([]models.Obligation, error) {
	if len(s.Participants) < 1 {
		return nil, fmt.Errorf("%w: equal split requires at least one participant", ErrInvalidInput)
	}
	perHead := total.Div(decimal.NewFromInt(int64(len(s.Participants)))).Round(2)
	out := make([]models.Obligation, 0, len(s.Participants))
	for _, uid := range s.Participants {
		if uid == "" {
			return nil, fmt.Errorf("%w: empty participant id", ErrInvalidInput)
		}
		if uid == payer {
			continue
		}
		out = append(out, models.Obligation{From: uid, To: payer, Amount: perHead})
	}
	return out, nil
}

// Unequal uses caller-supplied exact amounts per participant. The share sum
// must reconcile with the expense total within one cent.
type Unequal struct {
	Shares []models.Share
}

func (s Unequal) obligations(total decimal.Decimal, payer models.UserID) ([]models.Obligation, error) {
	if len(s.Shares) == 0 {
		return nil, fmt.Errorf("%w: unequal split requires shares", ErrInvalidInput)
	}
	sum := decimal.Zero
	for _, sh := range s.Shares {
		if sh.User == "" {
			return nil, fmt.Errorf("%w: empty user id in share", ErrInvalidInput)
		}
		if sh.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: negative share amount %s for user %s", ErrInvalidInput, sh.Amount, sh.User)
		}
		sum = sum.Add(sh.Amount)
	}
	if sum.Sub(total).Abs().GreaterThan(epsilon) {
		return nil, &ShareMismatchError{Expected: total, Got: sum}
	}
	out := make([]models.Obligation, 0, len(s.Shares))
	for _, sh := range s.Shares {
		if sh.User == payer || !sh.Amount.IsPositive() {
			continue
		}
		out = append(out, models.Obligation{From: sh.User, To: payer, Amount: sh.Amount.Round(2)})
	}
	return out, nil
}

// Weighted divides the total proportionally to each participant's weight:
// amount = total * weight / sum(weights).
type Weighted struct {
	Shares []models.Share
}

func (s Weighted) obligations(total decimal.Decimal, payer models.UserID) ([]models.Obligation, error) {
	if len(s.Shares) == 0 {
		return nil, fmt.Errorf("%w: share-weighted split requires shares", ErrInvalidInput)
	}
	sumWeights := decimal.Zero
	for _, sh := range s.Shares {
		if sh.User == "" {
			return nil, fmt.Errorf("%w: empty user id in share", ErrInvalidInput)
		}
		if sh.Weight.IsNegative() {
			return nil, fmt.Errorf("%w: negative weight %s for user %s", ErrInvalidInput, sh.Weight, sh.User)
		}
		sumWeights = sumWeights.Add(sh.Weight)
	}
	if sumWeights.IsZero() {
		return nil, fmt.Errorf("%w: all weights are zero", ErrInvalidInput)
	}
	out := make([]models.Obligation, 0, len(s.Shares))
	for _, sh := range s.Shares {
		if sh.User == payer {
			continue
		}
		amount := total.Mul(sh.Weight).Div(sumWeights).Round(2)
		if !amount.IsPositive() {
			continue
		}
		out = append(out, models.Obligation{From: sh.User, To: payer, Amount: amount})
	}
	return out, nil
}

// Itemized splits each line item equally among the users involved in it,
// each owing the item's payer. Items may name different payers, so the
// resulting obligations do not necessarily point at the expense payer.
// Repeated (from, to) pairs across items are left for Merge to collapse.
type Itemized struct {
	Items []models.LineItem
}

func (s Itemized) obligations(total decimal.Decimal, payer models.UserID) ([]models.Obligation, error) {
	if len(s.Items) == 0 {
		return nil, fmt.Errorf("%w: itemized split requires items", ErrInvalidInput)
	}
	var out []models.Obligation
	for _, item := range s.Items {
		if item.PaidBy == "" {
			return nil, fmt.Errorf("%w: item %q has no payer", ErrInvalidInput, item.Label)
		}
		if !item.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: item %q amount must be positive, got %s", ErrInvalidInput, item.Label, item.Amount)
		}
		if len(item.Involved) == 0 {
			return nil, fmt.Errorf("%w: item %q has no involved users", ErrInvalidInput, item.Label)
		}
		perHead := item.Amount.Div(decimal.NewFromInt(int64(len(item.Involved)))).Round(2)
		for _, uid := range item.Involved {
			if uid == "" {
				return nil, fmt.Errorf("%w: empty user id in item %q", ErrInvalidInput, item.Label)
			}
			if uid == item.PaidBy {
				continue
			}
			out = append(out, models.Obligation{From: uid, To: item.PaidBy, Amount: perHead})
		}
	}
	return out, nil
}

// Custom takes caller-supplied obligations directly and only re-validates
// the obligation invariants: positive amount, from != to.
type Custom struct {
	Obligations []models.Obligation
}

func (s Custom) obligations(total decimal.Decimal, payer models.UserID) ([]models.Obligation, error) {
	out := make([]models.Obligation, 0, len(s.Obligations))
	for _, o := range s.Obligations {
		if o.From == "" || o.To == "" {
			return nil, fmt.Errorf("%w: obligation is missing a user id", ErrInvalidInput)
		}
		if o.From == o.To {
			return nil, fmt.Errorf("%w: self-referential obligation for user %s", ErrInvalidInput, o.From)
		}
		amount := o.Amount.Round(2)
		if !amount.IsPositive() {
			return nil, fmt.Errorf("%w: obligation amount must be positive, got %s", ErrInvalidInput, o.Amount)
		}
		out = append(out, models.Obligation{From: o.From, To: o.To, Amount: amount})
	}
	return out, nil
}
