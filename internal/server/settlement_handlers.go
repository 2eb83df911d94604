package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"splitledger/internal/middleware"
	"splitledger/internal/models"
)

type settlementRequest struct {
	From   models.UserID   `json:"from"`
	To     models.UserID   `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}

func (h *Handlers) createSettlement(w http.ResponseWriter, r *http.Request) {
	group := h.requireMember(w, r, r.PathValue("groupID"))
	if group == nil {
		return
	}

	var req settlementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := middleware.GetUserID(r.Context())
	from := req.From
	if from == "" {
		from = actor
	}

	settlement := &models.Settlement{
		GroupID:   group.ID,
		From:      from,
		To:        req.To,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedBy: actor,
	}
	if err := h.settlements.Create(r.Context(), settlement); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, settlement)
}

func (h *Handlers) listGroupSettlements(w http.ResponseWriter, r *http.Request) {
	group := h.requireMember(w, r, r.PathValue("groupID"))
	if group == nil {
		return
	}

	settlements, err := h.settlements.ListByGroup(r.Context(), group.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if settlements == nil {
		settlements = []*models.Settlement{}
	}
	respondJSON(w, http.StatusOK, settlements)
}
