package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"splitledger/internal/models"
)

// Entry is one directed amount fed to the aggregator: From owes To. Persisted
// obligations map onto entries directly; a settlement maps onto the reversed
// entry, since a payment from the debtor is the inverse of a debt.
type Entry struct {
	From   models.UserID
	To     models.UserID
	Amount decimal.Decimal
}

// NetBalance is the netted, scope-wide debt between one pair of users after
// combining all obligations and settlements in scope. It is re-expressed
// with the debtor first: From owes To Amount, always positive and rounded to
// two decimal places.
type NetBalance struct {
	From   models.UserID   `json:"from"`
	To     models.UserID   `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// Aggregate combines all entries in one scope into net balances per user
// pair. Each directed amount is folded into an accumulator keyed by the
// unordered pair (low, high) in UserID order, adding when the debtor is the
// lower id and subtracting otherwise. Accumulation is commutative, so any
// permutation of the same entry multiset yields the same balances.
//
// Pairs whose net magnitude falls below one cent are settled and omitted;
// surviving amounts are rounded to two decimal places. Output is sorted by
// canonical pair so repeated runs are byte-for-byte identical.
//
// Entries are assumed validated upstream; a malformed entry here means bad
// data reached storage and is rejected rather than silently corrected.
func Aggregate(entries []Entry) ([]NetBalance, error) {
	type pair struct {
		low, high models.UserID
	}
	acc := make(map[pair]decimal.Decimal, len(entries))
	for _, e := range entries {
		if e.From == "" || e.To == "" {
			return nil, fmt.Errorf("%w: entry is missing a user id", ErrInvalidInput)
		}
		if e.From == e.To {
			return nil, fmt.Errorf("%w: self-referential entry for user %s", ErrInvalidInput, e.From)
		}
		if !e.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: entry amount must be positive, got %s", ErrInvalidInput, e.Amount)
		}
		// Sign convention: positive accumulator = low owes high.
		k := pair{e.From, e.To}
		amount := e.Amount
		if e.To.Less(e.From) {
			k = pair{e.To, e.From}
			amount = amount.Neg()
		}
		acc[k] = acc[k].Add(amount)
	}

	pairs := make([]pair, 0, len(acc))
	for k := range acc {
		pairs = append(pairs, k)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].low != pairs[j].low {
			return pairs[i].low.Less(pairs[j].low)
		}
		return pairs[i].high.Less(pairs[j].high)
	})

	out := make([]NetBalance, 0, len(pairs))
	for _, k := range pairs {
		// Drop sub-cent residue before rounding: a 0.005 accumulator is
		// settled, not a one cent debt.
		if acc[k].Abs().LessThan(epsilon) {
			continue
		}
		v := acc[k].Round(2)
		if v.Sign() > 0 {
			out = append(out, NetBalance{From: k.low, To: k.high, Amount: v})
		} else {
			out = append(out, NetBalance{From: k.high, To: k.low, Amount: v.Neg()})
		}
	}
	return out, nil
}
