package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/savageaim/backend/internal/api/middleware"
	"github.com/savageaim/backend/internal/api/response"
	"github.com/savageaim/backend/internal/api/validation"
	"github.com/savageaim/backend/internal/bis"
	"github.com/savageaim/backend/internal/character"
	"github.com/savageaim/backend/internal/team"
)

// verifiedDuplicateMessage is the field-level error for a verified lodestone
// ID collision on create.
const verifiedDuplicateMessage = "A verified character with this Lodestone ID already exists."

type createCharacterRequest struct {
	AvatarURL   string `json:"avatar_url"`
	LodestoneID string `json:"lodestone_id"`
	Name        string `json:"name"`
	World       string `json:"world"`
}

type characterResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	LodestoneID string `json:"lodestone_id"`
	Name        string `json:"name"`
	World       string `json:"world"`
	AvatarURL   string `json:"avatar_url"`
	Verified    bool   `json:"verified"`
}

type bisListResponse struct {
	ID  string `json:"id"`
	Job string `json:"job"`
}

type characterDetailResponse struct {
	characterResponse
	BISLists []bisListResponse `json:"bis_lists"`
}

func toCharacterResponse(c *character.Character) characterResponse {
	return characterResponse{
		ID:          c.ID.String(),
		UserID:      c.UserID.String(),
		LodestoneID: c.LodestoneID,
		Name:        c.Name,
		World:       c.World,
		AvatarURL:   c.AvatarURL,
		Verified:    c.Verified,
	}
}

// VerifyDispatcher hands a verification task to the background worker.
type VerifyDispatcher interface {
	Dispatch(ctx context.Context, characterID uuid.UUID) error
}

// CharacterHandler handles character endpoints.
type CharacterHandler struct {
	charRepo   character.Repository
	teamRepo   team.Repository
	bisRepo    bis.Repository
	dispatcher VerifyDispatcher
}

// NewCharacterHandler creates a new CharacterHandler.
func NewCharacterHandler(charRepo character.Repository, teamRepo team.Repository, bisRepo bis.Repository, dispatcher VerifyDispatcher) *CharacterHandler {
	return &CharacterHandler{
		charRepo:   charRepo,
		teamRepo:   teamRepo,
		bisRepo:    bisRepo,
		dispatcher: dispatcher,
	}
}

// List handles GET /characters. Returns the caller's characters in creation order.
func (h *CharacterHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "API key is required", requestID)
		return
	}

	chars, err := h.charRepo.ListByUser(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("failed to list characters", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list characters", requestID)
		return
	}

	items := make([]characterResponse, 0, len(chars))
	for i := range chars {
		items = append(items, toCharacterResponse(&chars[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}

// Create handles POST /characters. New characters always start unverified.
func (h *CharacterHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "API key is required", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createCharacterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateCharacterRequest(validation.CreateCharacterRequest{
		AvatarURL:   req.AvatarURL,
		LodestoneID: req.LodestoneID,
		Name:        req.Name,
		World:       req.World,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	c := &character.Character{
		UserID:      identity.UserID,
		LodestoneID: strings.TrimSpace(req.LodestoneID),
		Name:        strings.TrimSpace(req.Name),
		World:       strings.TrimSpace(req.World),
		AvatarURL:   strings.TrimSpace(req.AvatarURL),
	}

	if err := h.charRepo.Create(r.Context(), c); err != nil {
		if errors.Is(err, character.ErrVerifiedDuplicate) {
			response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
				[]validation.FieldError{{Field: "lodestone_id", Message: verifiedDuplicateMessage}}, requestID)
			return
		}
		slog.Error("failed to create character", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create character", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toCharacterResponse(c), requestID)
}

// Get handles GET /characters/{id}. Returns the full detail with nested BIS lists.
func (h *CharacterHandler) Get(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	char, ok := h.ownedCharacter(w, r, requestID)
	if !ok {
		return
	}

	lists, err := h.bisRepo.ListByCharacter(r.Context(), char.ID)
	if err != nil {
		slog.Error("failed to list bis lists", "error", err, "characterId", char.ID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch character", requestID)
		return
	}

	detail := characterDetailResponse{
		characterResponse: toCharacterResponse(char),
		BISLists:          make([]bisListResponse, 0, len(lists)),
	}
	for i := range lists {
		detail.BISLists = append(detail.BISLists, bisListResponse{
			ID:  lists[i].ID.String(),
			Job: lists[i].JobCode,
		})
	}

	response.Success(w, http.StatusOK, detail, requestID)
}

// Verify handles POST /characters/{id}/verify. On success the request is
// accepted and a task is enqueued; the flip itself happens in the worker.
// Missing, foreign-owned and already-verified characters are all the same
// 404 so the response leaks nothing.
func (h *CharacterHandler) Verify(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	char, ok := h.ownedCharacter(w, r, requestID)
	if !ok {
		return
	}

	if char.Verified {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Character not found", requestID)
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), char.ID); err != nil {
		slog.Error("failed to dispatch verification task", "error", err, "characterId", char.ID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start verification", requestID)
		return
	}

	response.Accepted(w, requestID)
}

// DeleteImpact handles GET /characters/{id}/delete. Returns the impact
// report: one entry per team with member count and lead flag. Read-only.
// Requires the character to be verified, else 404.
func (h *CharacterHandler) DeleteImpact(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	char, ok := h.deletableCharacter(w, r, requestID)
	if !ok {
		return
	}

	entries, err := h.teamRepo.ImpactForCharacter(r.Context(), char.ID)
	if err != nil {
		slog.Error("failed to build impact report", "error", err, "characterId", char.ID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build impact report", requestID)
		return
	}

	response.Success(w, http.StatusOK, entries, requestID)
}

// Delete handles DELETE /characters/{id}/delete, the destructive counterpart
// of the impact report. Team membership rows cascade.
func (h *CharacterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	char, ok := h.deletableCharacter(w, r, requestID)
	if !ok {
		return
	}

	if err := h.charRepo.Delete(r.Context(), char.ID); err != nil {
		if errors.Is(err, character.ErrCharacterNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Character not found", requestID)
			return
		}
		slog.Error("failed to delete character", "error", err, "characterId", char.ID)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete character", requestID)
		return
	}

	response.NoContent(w)
}

// ownedCharacter resolves {id} to a character owned by the caller, writing
// the error response itself when that fails. Ownership failures are 404,
// same as missing IDs.
func (h *CharacterHandler) ownedCharacter(w http.ResponseWriter, r *http.Request, requestID string) (*character.Character, bool) {
	identity := middleware.GetIdentity(r.Context())
	if identity == nil {
		response.Err(w, http.StatusUnauthorized, "UNAUTHORIZED", "API key is required", requestID)
		return nil, false
	}

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Character not found", requestID)
		return nil, false
	}

	char, err := h.charRepo.GetForUser(r.Context(), id, identity.UserID)
	if err != nil {
		if errors.Is(err, character.ErrCharacterNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Character not found", requestID)
			return nil, false
		}
		slog.Error("failed to get character", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch character", requestID)
		return nil, false
	}

	return char, true
}

// deletableCharacter adds the delete-eligibility rule on top of ownership:
// only verified characters can be deleted, and an unverified one 404s.
func (h *CharacterHandler) deletableCharacter(w http.ResponseWriter, r *http.Request, requestID string) (*character.Character, bool) {
	char, ok := h.ownedCharacter(w, r, requestID)
	if !ok {
		return nil, false
	}

	if !char.Verified {
		response.Err(w, http.StatusNotFound, "NOT_FOUND", "Character not found", requestID)
		return nil, false
	}

	return char, true
}
