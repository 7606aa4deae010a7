package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/savageaim/backend/internal/api/middleware"
	"github.com/savageaim/backend/internal/api/response"
	"github.com/savageaim/backend/internal/api/validation"
	"github.com/savageaim/backend/internal/auth"
)

type createUserRequest struct {
	Name string `json:"name"`
}

type userWithKeyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ApiKey    string `json:"api_key"`
	CreatedAt string `json:"created_at"`
}

// UserHandler handles user creation. Only the superuser can mint new users;
// the raw API key is returned exactly once.
type UserHandler struct {
	authService *auth.Service
	userRepo    auth.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *auth.Service, userRepo auth.UserRepository) *UserHandler {
	return &UserHandler{
		authService: authService,
		userRepo:    userRepo,
	}
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "API key is required", requestID)
		return
	}
	if !identity.IsSuperuser {
		response.Err(w, http.StatusForbidden, "FORBIDDEN", "Superuser access required", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "name", Message: "This field is required."}}, requestID)
		return
	}

	rawKey, prefix, hash, err := h.authService.GenerateKey()
	if err != nil {
		slog.Error("failed to generate API key", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user", requestID)
		return
	}

	u := &auth.User{
		Name:         req.Name,
		ApiKeyPrefix: prefix,
		ApiKeyHash:   hash,
	}

	if err := h.userRepo.Create(r.Context(), u); err != nil {
		slog.Error("failed to create user", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create user", requestID)
		return
	}

	response.Success(w, http.StatusCreated, userWithKeyResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		ApiKey:    rawKey,
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}, requestID)
}
