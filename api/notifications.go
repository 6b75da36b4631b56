package api

import (
	"encoding/json"
	"net/http"

	"github.com/tecnitrama/backend/internal/service"
	"github.com/tecnitrama/backend/pkg/models"
)

type NotificationsHandler struct {
	notifications *service.NotificationService
}

func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

type createNotificationRequest struct {
	UserID    int64   `json:"user_id"`
	UserIDs   []int64 `json:"user_ids"`
	ProjectID *int64  `json:"project_id"`
	Content   string  `json:"content"`
}

// Create accepts either a single user_id or a user_ids fan-out list.
func (h *NotificationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	var id int64
	var err error
	if len(req.UserIDs) > 0 {
		id, err = h.notifications.CreateForUsers(r.Context(), req.UserIDs, req.ProjectID, req.Content)
	} else {
		id, err = h.notifications.Create(r.Context(), req.UserID, req.ProjectID, req.Content)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]int64{"id": id}, http.StatusCreated)
}

func (h *NotificationsHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	items, err := h.notifications.ListByUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []models.UserNotification{}
	}

	writeJSON(w, items, http.StatusOK)
}

func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID, ok := pathID(r, "notificationId")
	if !ok {
		http.Error(w, "invalid notification id", http.StatusBadRequest)
		return
	}
	userID, ok := pathID(r, "userId")
	if !ok {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.notifications.MarkRead(r.Context(), notificationID, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, map[string]bool{"read": true}, http.StatusOK)
}
