package ledger

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidInput marks structurally malformed input: missing
	// participants, non-positive amounts, self-referential obligations.
	// Recoverable by the caller correcting the request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLedgerImbalance marks an internal invariant violation: total debt
	// did not equal total credit during simplification. This indicates a bug
	// upstream of the simplifier, not a user input problem.
	ErrLedgerImbalance = errors.New("ledger imbalance: total debt does not equal total credit")
)

// ShareMismatchError is returned when supplied shares do not reconcile with
// the expense total within one cent. It carries the computed discrepancy so
// it can be surfaced to the end user.
type ShareMismatchError struct {
	// Expected is the expense total.
	Expected decimal.Decimal
	// Got is the sum of the supplied shares.
	Got decimal.Decimal
}

func (e *ShareMismatchError) Error() string {
	return fmt.Sprintf("shares sum to %s but expense total is %s (off by %s)",
		e.Got, e.Expected, e.Got.Sub(e.Expected).Abs())
}
