package http

import (
	"net/http"

	"toolshare-backend/internal/service"
)

type NotificationHandler struct {
	notificationSvc service.NotificationService
}

func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

type registerDeviceRequest struct {
	Token string `json:"token"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	page, pageSize := pagination(r)

	notes, total, unread, err := h.notificationSvc.GetNotifications(r.Context(), user.ID, page, pageSize)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notes,
		"total":         total,
		"unread":        unread,
		"page":          page,
	})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.notificationSvc.MarkAsRead(r.Context(), user.ID, id); err != nil {
		respondError(w, http.StatusNotFound, "notification not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "marked as read"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	updated, err := h.notificationSvc.MarkAllRead(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update notifications")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

func (h *NotificationHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}
	onlyRead := r.URL.Query().Get("only_read") == "true"

	deleted, err := h.notificationSvc.DeleteAll(r.Context(), user.ID, onlyRead)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete notifications")
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

func (h *NotificationHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	user, ok := mustUser(w, r)
	if !ok {
		return
	}

	var req registerDeviceRequest
	if err := decodeJSON(r, &req); err != nil || req.Token == "" {
		respondError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := h.notificationSvc.RegisterDevice(r.Context(), user.ID, req.Token); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to register device")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"message": "device registered"})
}
