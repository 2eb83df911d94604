package models

// Group represents a set of users who share expenses.
// Groups own expenses and settlements, which gives the ledger its
// group-scoped aggregation boundary.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string `json:"name"`

	// Members is the list of user IDs in this group.
	Members []UserID `json:"members"`

	// CreatedBy is the user who created the group.
	CreatedBy UserID `json:"created_by"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// HasMember reports whether the given user belongs to the group.
func (g *Group) HasMember(id UserID) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}
	return false
}
