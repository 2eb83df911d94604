package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"splitledger/internal/middleware"
	"splitledger/internal/models"
)

type expenseRequest struct {
	Title        string               `json:"title"`
	Amount       decimal.Decimal      `json:"amount"`
	PaidBy       models.UserID        `json:"paid_by"`
	Participants []models.UserID      `json:"participants"`
	Strategy     models.SplitStrategy `json:"strategy"`
	Shares       []models.Share       `json:"shares"`
	Items        []models.LineItem    `json:"items"`
	Obligations  []models.Obligation  `json:"obligations"`
	Note         string               `json:"note"`
	Category     string               `json:"category"`
}

func (req *expenseRequest) toExpense(groupID string, actor models.UserID) *models.Expense {
	paidBy := req.PaidBy
	if paidBy == "" {
		paidBy = actor
	}
	return &models.Expense{
		GroupID:      groupID,
		Title:        req.Title,
		Amount:       req.Amount,
		PaidBy:       paidBy,
		Participants: req.Participants,
		Strategy:     req.Strategy,
		Shares:       req.Shares,
		Items:        req.Items,
		Obligations:  req.Obligations,
		Note:         req.Note,
		Category:     req.Category,
		CreatedBy:    actor,
	}
}

func (h *Handlers) createExpense(w http.ResponseWriter, r *http.Request) {
	group := h.requireMember(w, r, r.PathValue("groupID"))
	if group == nil {
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if !req.Strategy.Valid() {
		writeError(w, http.StatusBadRequest, "unknown split strategy")
		return
	}

	expense := req.toExpense(group.ID, middleware.GetUserID(r.Context()))
	if err := h.expenses.Create(r.Context(), expense); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

func (h *Handlers) listGroupExpenses(w http.ResponseWriter, r *http.Request) {
	group := h.requireMember(w, r, r.PathValue("groupID"))
	if group == nil {
		return
	}

	expenses, err := h.expenses.ListByGroup(r.Context(), group.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}
	respondJSON(w, http.StatusOK, expenses)
}

func (h *Handlers) getExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.expenses.Get(r.Context(), r.PathValue("expenseID"))
	if err != nil {
		respondError(w, err)
		return
	}
	if h.requireMember(w, r, expense.GroupID) == nil {
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (h *Handlers) updateExpense(w http.ResponseWriter, r *http.Request) {
	existing, err := h.expenses.Get(r.Context(), r.PathValue("expenseID"))
	if err != nil {
		respondError(w, err)
		return
	}
	if h.requireMember(w, r, existing.GroupID) == nil {
		return
	}

	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Strategy.Valid() {
		writeError(w, http.StatusBadRequest, "unknown split strategy")
		return
	}

	expense := req.toExpense(existing.GroupID, middleware.GetUserID(r.Context()))
	expense.ID = existing.ID
	expense.CreatedBy = existing.CreatedBy
	expense.CreatedAt = existing.CreatedAt
	if err := h.expenses.Update(r.Context(), expense); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, expense)
}

func (h *Handlers) deleteExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := h.expenses.Get(r.Context(), r.PathValue("expenseID"))
	if err != nil {
		respondError(w, err)
		return
	}
	if h.requireMember(w, r, expense.GroupID) == nil {
		return
	}

	if err := h.expenses.Delete(r.Context(), expense.ID, middleware.GetUserID(r.Context())); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
