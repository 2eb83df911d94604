package server

import (
	"net/http"

	"splitledger/internal/middleware"
	"splitledger/internal/models"
)

func (h *Handlers) listNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifications.ListForUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}
	respondJSON(w, http.StatusOK, notifications)
}

func (h *Handlers) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.MarkRead(r.Context(), r.PathValue("notificationID")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
