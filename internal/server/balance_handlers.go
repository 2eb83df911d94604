package server

import (
	"net/http"

	"splitledger/internal/ledger"
	"splitledger/internal/middleware"
)

func (h *Handlers) groupBalances(w http.ResponseWriter, r *http.Request) {
	group := h.requireMember(w, r, r.PathValue("groupID"))
	if group == nil {
		return
	}

	balances, err := h.balances.GroupBalances(r.Context(), group.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if balances == nil {
		balances = []ledger.NetBalance{}
	}
	respondJSON(w, http.StatusOK, balances)
}

func (h *Handlers) simplifyGroup(w http.ResponseWriter, r *http.Request) {
	group := h.requireMember(w, r, r.PathValue("groupID"))
	if group == nil {
		return
	}

	transfers, err := h.balances.SimplifyGroup(r.Context(), group.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if transfers == nil {
		transfers = []ledger.Transfer{}
	}
	respondJSON(w, http.StatusOK, transfers)
}

func (h *Handlers) myBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.balances.UserBalances(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	if balances == nil {
		balances = []ledger.NetBalance{}
	}
	respondJSON(w, http.StatusOK, balances)
}
