package players

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/httputil"
	"github.com/mcdev12/waypoint/internal/models"
)

// PlayersRepository defines what the handler needs from the repository
type PlayersRepository interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	CreatePlayer(ctx context.Context, req CreatePlayerRequest) (*models.Player, error)
	UpdatePlayer(ctx context.Context, id uuid.UUID, req UpdatePlayerRequest) (*models.Player, error)
	DeletePlayer(ctx context.Context, id uuid.UUID) error
	DeletePlayersByTribe(ctx context.Context, tribeID uuid.UUID) (int64, error)
}

// Handler exposes the player REST routes
type Handler struct {
	repo PlayersRepository
}

// NewHandler creates a new players handler
func NewHandler(repo PlayersRepository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes registers player routes behind the auth middleware
func (h *Handler) RegisterRoutes(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("GET /api/players", requireAuth(http.HandlerFunc(h.listPlayers)))
	mux.Handle("POST /api/players", requireAuth(http.HandlerFunc(h.createPlayer)))
	mux.Handle("PUT /api/players/{id}", requireAuth(http.HandlerFunc(h.updatePlayer)))
	mux.Handle("DELETE /api/players/{id}", requireAuth(http.HandlerFunc(h.deletePlayer)))
	mux.Handle("DELETE /api/players/tribe/{tribeId}", requireAuth(http.HandlerFunc(h.deletePlayersByTribe)))
}

func (h *Handler) listPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := h.repo.ListPlayers(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list players")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch players")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, players)
}

func (h *Handler) createPlayer(w http.ResponseWriter, r *http.Request) {
	var req CreatePlayerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	player, err := h.repo.CreatePlayer(r.Context(), req)
	if err != nil {
		log.Error().Err(err).Msg("failed to create player")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to create player")
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, player)
}

func (h *Handler) updatePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid player id")
		return
	}

	var req UpdatePlayerRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	player, err := h.repo.UpdatePlayer(r.Context(), id, req)
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Player not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to update player")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to update player")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, player)
}

func (h *Handler) deletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid player id")
		return
	}

	err = h.repo.DeletePlayer(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Player not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to delete player")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete player")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deletePlayersByTribe(w http.ResponseWriter, r *http.Request) {
	tribeID, err := uuid.Parse(r.PathValue("tribeId"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid tribe id")
		return
	}

	n, err := h.repo.DeletePlayersByTribe(r.Context(), tribeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete players by tribe")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete players")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
