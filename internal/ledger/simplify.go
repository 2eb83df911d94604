package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

// Transfer is one suggested payment in a simplified settlement plan.
// Applying every transfer in the plan zeroes all input balances.
type Transfer struct {
	From   models.UserID   `json:"from"`
	To     models.UserID   `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Simplify reduces a set of net balances to a short list of point-to-point
// transfers using greedy largest-debtor/largest-creditor matching. The
// transfer count is heuristically small, not guaranteed minimal.
//
// Both partitions sort descending by magnitude with user id as the tie
// break, so repeated runs over the same balances emit identical plans. Users
// whose net falls within one cent of zero are dropped up front.
//
// Total debt must equal total credit by construction; a residual on either
// side after matching returns ErrLedgerImbalance, which signals a bug in the
// aggregation upstream rather than a correctable input problem.
func Simplify(balances []NetBalance) ([]Transfer, error) {
	net := make(map[models.UserID]decimal.Decimal, len(balances)*2)
	for _, b := range balances {
		if b.From == "" || b.To == "" {
			return nil, fmt.Errorf("%w: balance is missing a user id", ErrInvalidInput)
		}
		if b.From == b.To {
			return nil, fmt.Errorf("%w: self-referential balance for user %s", ErrInvalidInput, b.From)
		}
		if !b.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: balance amount must be positive, got %s", ErrInvalidInput, b.Amount)
		}
		net[b.From] = net[b.From].Sub(b.Amount)
		net[b.To] = net[b.To].Add(b.Amount)
	}

	type stake struct {
		user      models.UserID
		remaining decimal.Decimal // stored as positive magnitude
	}
	var debtors, creditors []stake
	for uid, v := range net {
		switch {
		case v.Abs().LessThan(epsilon):
			// settled, drop
		case v.Sign() < 0:
			debtors = append(debtors, stake{user: uid, remaining: v.Neg()})
		default:
			creditors = append(creditors, stake{user: uid, remaining: v})
		}
	}
	byMagnitudeDesc := func(list []stake) func(i, j int) bool {
		return func(i, j int) bool {
			if c := list[i].remaining.Cmp(list[j].remaining); c != 0 {
				return c > 0
			}
			return list[i].user.Less(list[j].user)
		}
	}
	sort.Slice(debtors, byMagnitudeDesc(debtors))
	sort.Slice(creditors, byMagnitudeDesc(creditors))

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		d, c := &debtors[i], &creditors[j]
		amount := decimal.Min(d.remaining, c.remaining)
		transfers = append(transfers, Transfer{From: d.user, To: c.user, Amount: amount})
		d.remaining = d.remaining.Sub(amount)
		c.remaining = c.remaining.Sub(amount)
		if d.remaining.LessThan(epsilon) {
			i++
		}
		if c.remaining.LessThan(epsilon) {
			j++
		}
	}
	if i < len(debtors) {
		return nil, fmt.Errorf("%w: debtor %s left with %s unmatched",
			ErrLedgerImbalance, debtors[i].user, debtors[i].remaining)
	}
	if j < len(creditors) {
		return nil, fmt.Errorf("%w: creditor %s left with %s unmatched",
			ErrLedgerImbalance, creditors[j].user, creditors[j].remaining)
	}
	return transfers, nil
}
