package server

import (
	"net/http"

	"splitledger/internal/middleware"
	"splitledger/internal/models"
	"splitledger/internal/service"
)

// Handlers exposes the REST API handlers.
type Handlers struct {
	auth          *service.AuthService
	groups        *service.GroupService
	expenses      *service.ExpenseService
	settlements   *service.SettlementService
	balances      *service.BalanceService
	notifications *service.NotificationService
}

// NewHandlers constructs a Handlers instance.
func NewHandlers(
	auth *service.AuthService,
	groups *service.GroupService,
	expenses *service.ExpenseService,
	settlements *service.SettlementService,
	balances *service.BalanceService,
	notifications *service.NotificationService,
) *Handlers {
	return &Handlers{
		auth:          auth,
		groups:        groups,
		expenses:      expenses,
		settlements:   settlements,
		balances:      balances,
		notifications: notifications,
	}
}

// requireMember loads the group and verifies the requester belongs to it.
// Writes the response itself on failure and returns nil.
func (h *Handlers) requireMember(w http.ResponseWriter, r *http.Request, groupID string) *models.Group {
	group, err := h.groups.Get(r.Context(), groupID)
	if err != nil {
		respondError(w, err)
		return nil
	}
	if !group.HasMember(middleware.GetUserID(r.Context())) {
		writeError(w, http.StatusForbidden, "not a member of this group")
		return nil
	}
	return group
}
