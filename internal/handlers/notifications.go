// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"commonroom/internal/models"
	"commonroom/internal/service"
)

// Notifications groups the notification endpoints.
type Notifications struct {
	svc *service.Service
}

// NewNotifications creates the notification handler group.
func NewNotifications(svc *service.Service) *Notifications {
	return &Notifications{svc: svc}
}

// List handles GET /users/{userID}/notifications?limit=N.
func (h *Notifications) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userID")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.svc.ListNotifications(r.Context(), userID, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	if list == nil {
		list = []*models.Notification{}
	}
	respondJSON(w, http.StatusOK, list)
}

// UnreadCount handles GET /users/{userID}/notifications/unread.
func (h *Notifications) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userID")
	if !ok {
		return
	}
	count, err := h.svc.UnreadNotificationCount(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"unread": count})
}

// MarkRead handles POST /notifications/{notificationID}/read.
func (h *Notifications) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "notificationID")
	if !ok {
		return
	}
	n, err := h.svc.MarkNotificationRead(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, n)
}

// MarkAllRead handles POST /users/{userID}/notifications/read.
func (h *Notifications) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := uuidParam(w, r, "userID")
	if !ok {
		return
	}
	if err := h.svc.MarkAllNotificationsRead(r.Context(), userID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// Archive handles DELETE /notifications/{notificationID}.
func (h *Notifications) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "notificationID")
	if !ok {
		return
	}
	if err := h.svc.ArchiveNotification(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
