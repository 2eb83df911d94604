package server

import (
	"net/http"

	"splitledger/internal/middleware"
	"splitledger/internal/models"
)

type createGroupRequest struct {
	Name    string          `json:"name"`
	Members []models.UserID `json:"members"`
}

type addMembersRequest struct {
	Members []models.UserID `json:"members"`
}

func (h *Handlers) createGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	group := &models.Group{
		Name:      req.Name,
		Members:   req.Members,
		CreatedBy: middleware.GetUserID(r.Context()),
	}
	if err := h.groups.Create(r.Context(), group); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, group)
}

func (h *Handlers) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.ListForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	if groups == nil {
		groups = []*models.Group{}
	}
	respondJSON(w, http.StatusOK, groups)
}

func (h *Handlers) getGroup(w http.ResponseWriter, r *http.Request) {
	group := h.requireMember(w, r, r.PathValue("groupID"))
	if group == nil {
		return
	}
	respondJSON(w, http.StatusOK, group)
}

func (h *Handlers) addGroupMembers(w http.ResponseWriter, r *http.Request) {
	group := h.requireMember(w, r, r.PathValue("groupID"))
	if group == nil {
		return
	}

	var req addMembersRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.groups.AddMembers(r.Context(), group.ID, req.Members); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.groups.Get(r.Context(), group.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *Handlers) listGroupActivity(w http.ResponseWriter, r *http.Request) {
	group := h.requireMember(w, r, r.PathValue("groupID"))
	if group == nil {
		return
	}

	activities, err := h.groups.Activities(r.Context(), group.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	if activities == nil {
		activities = []*models.Activity{}
	}
	respondJSON(w, http.StatusOK, activities)
}
