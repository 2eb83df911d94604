package models

// UserID is the canonical identifier for a user.
//
// Equality is plain string equality on the canonical textual form, and
// ordering is lexicographic over that form. The ledger aggregator depends on
// this order being total and stable to canonicalize unordered user pairs.
type UserID string

// String returns the canonical textual form of the identifier.
func (u UserID) String() string { return string(u) }

// Less reports whether u orders before other.
func (u UserID) Less(other UserID) bool { return u < other }
