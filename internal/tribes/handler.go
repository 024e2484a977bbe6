package tribes

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/httputil"
	"github.com/mcdev12/waypoint/internal/models"
)

// TribesRepository defines what the handler needs from the repository
type TribesRepository interface {
	ListTribes(ctx context.Context) ([]models.Tribe, error)
	CreateTribe(ctx context.Context, req TribeRequest) (*models.Tribe, error)
	UpdateTribe(ctx context.Context, id uuid.UUID, req TribeRequest) (*models.Tribe, error)
	DeleteTribe(ctx context.Context, id uuid.UUID) error
}

// Handler exposes the tribe REST routes
type Handler struct {
	repo TribesRepository
}

// NewHandler creates a new tribes handler
func NewHandler(repo TribesRepository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes registers tribe routes behind the auth middleware
func (h *Handler) RegisterRoutes(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("GET /api/tribes", requireAuth(http.HandlerFunc(h.listTribes)))
	mux.Handle("POST /api/tribes", requireAuth(http.HandlerFunc(h.createTribe)))
	mux.Handle("PUT /api/tribes/{id}", requireAuth(http.HandlerFunc(h.updateTribe)))
	mux.Handle("DELETE /api/tribes/{id}", requireAuth(http.HandlerFunc(h.deleteTribe)))
}

func (h *Handler) listTribes(w http.ResponseWriter, r *http.Request) {
	tribes, err := h.repo.ListTribes(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list tribes")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch tribes")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, tribes)
}

func (h *Handler) createTribe(w http.ResponseWriter, r *http.Request) {
	var req TribeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	tribe, err := h.repo.CreateTribe(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("failed to create tribe")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to create tribe")
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, tribe)
}

func (h *Handler) updateTribe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid tribe id")
		return
	}

	var req TribeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	tribe, err := h.repo.UpdateTribe(r.Context(), id, req)
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Tribe not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to update tribe")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to update tribe")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, tribe)
}

func (h *Handler) deleteTribe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid tribe id")
		return
	}

	err = h.repo.DeleteTribe(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Tribe not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to delete tribe")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete tribe")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
