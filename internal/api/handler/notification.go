package handler

import (
	"log/slog"
	"net/http"

	"github.com/savageaim/backend/internal/api/middleware"
	"github.com/savageaim/backend/internal/api/response"
	"github.com/savageaim/backend/internal/notification"
)

type notificationResponse struct {
	ID   string `json:"id"`
	Link string `json:"link"`
	Text string `json:"text"`
	Type string `json:"type"`
	Read bool   `json:"read"`
}

// NotificationHandler handles the caller's notification feed.
type NotificationHandler struct {
	notifRepo notification.Repository
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifRepo notification.Repository) *NotificationHandler {
	return &NotificationHandler{notifRepo: notifRepo}
}

// List handles GET /notifications, newest first.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "API key is required", requestID)
		return
	}

	notifs, err := h.notifRepo.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("failed to list notifications", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list notifications", requestID)
		return
	}

	items := make([]notificationResponse, 0, len(notifs))
	for i := range notifs {
		n := &notifs[i]
		items = append(items, notificationResponse{
			ID:   n.ID.String(),
			Link: n.Link,
			Text: n.Text,
			Type: n.Type,
			Read: n.Read,
		})
	}

	response.Success(w, http.StatusOK, items, requestID)
}
