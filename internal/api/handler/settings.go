package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/savageaim/backend/internal/api/middleware"
	"github.com/savageaim/backend/internal/api/response"
	"github.com/savageaim/backend/internal/notification"
)

type settingsRequest struct {
	Theme         string          `json:"theme"`
	Notifications map[string]bool `json:"notifications"`
}

type settingsResponse struct {
	Theme         string          `json:"theme"`
	Notifications map[string]bool `json:"notifications"`
}

// SettingsHandler handles the caller's notification preferences.
type SettingsHandler struct {
	settingsRepo notification.SettingsRepository
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsRepo notification.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{settingsRepo: settingsRepo}
}

// Get handles GET /settings. A user without a settings row gets the
// defaults: every notification type enabled.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "API key is required", requestID)
		return
	}

	settings, err := h.settingsRepo.GetByUser(r.Context(), identity.UserID)
	if err != nil {
		if err == notification.ErrSettingsNotFound {
			response.Success(w, http.StatusOK, settingsResponse{
				Theme:         "system",
				Notifications: map[string]bool{},
			}, requestID)
			return
		}
		slog.Error("failed to get settings", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch settings", requestID)
		return
	}

	notifs := settings.Notifications
	if notifs == nil {
		notifs = map[string]bool{}
	}

	response.Success(w, http.StatusOK, settingsResponse{
		Theme:         settings.Theme,
		Notifications: notifs,
	}, requestID)
}

// Update handles PUT /settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "API key is required", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	settings := &notification.Settings{
		UserID:        identity.UserID,
		Theme:         req.Theme,
		Notifications: req.Notifications,
	}

	if err := h.settingsRepo.Upsert(r.Context(), settings); err != nil {
		slog.Error("failed to update settings", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update settings", requestID)
		return
	}

	response.Success(w, http.StatusOK, settingsResponse{
		Theme:         settings.Theme,
		Notifications: settings.Notifications,
	}, requestID)
}
