// Package ledger implements the balance ledger and debt simplification
// engine: splitting a recorded expense into per-participant obligations,
// merging duplicate pairs, aggregating obligations and settlements into net
// balances per user pair, and collapsing those balances into a short list of
// suggested transfers.
//
// Every function in this package is pure: no shared state, no side effects,
// no blocking. Callers recompute results on demand from whatever record set
// is visible at read time; aggregation is commutative, so the result does not
// depend on the order records are fed in.
//
// All amounts are decimal.Decimal rounded to two decimal places when an
// obligation is finalized. Net magnitudes below one cent are treated as
// settled and dropped.
package ledger
