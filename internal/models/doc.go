// Package models defines the core domain models for splitledger.
//
// # Models
//
//   - Expense: a recorded group expense plus the splitting strategy used
//   - Obligation: a directed per-expense debt (from owes to), computed by the
//     ledger engine and persisted with its owning expense
//   - Settlement: a manually recorded payment between two users
//   - Group, User: membership and identity records
//   - Notification, Activity: in-app delivery and group feed records
//
// # Design Principles
//
//  1. **Canonical identifiers**: every reference between users goes through the
//     UserID value type, which carries the ordering contract the ledger's
//     pair canonicalization relies on.
//  2. **Exact money**: all monetary fields are decimal.Decimal, rounded to two
//     decimal places at the point an obligation is finalized. Floats never
//     touch stored amounts.
//  3. **Avoid circular references**: models reference each other by ID strings
//     instead of pointers.
//
// Derived values (net balances, transfer plans) are not models; they live in
// the ledger package and are recomputed on demand.
package models
