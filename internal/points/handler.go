package points

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/auth"
	"github.com/mcdev12/waypoint/internal/httputil"
	"github.com/mcdev12/waypoint/internal/maps"
)

// Handler exposes the point REST routes
type Handler struct {
	app *App
}

// NewHandler creates a new points handler
func NewHandler(app *App) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes registers point routes behind the auth middleware
func (h *Handler) RegisterRoutes(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("GET /api/points/map/{mapId}", requireAuth(http.HandlerFunc(h.listPoints)))
	mux.Handle("POST /api/points/map/{mapId}", requireAuth(http.HandlerFunc(h.createPoint)))
	mux.Handle("PUT /api/points/{id}", requireAuth(http.HandlerFunc(h.updatePoint)))
	mux.Handle("DELETE /api/points/{id}", requireAuth(http.HandlerFunc(h.deletePoint)))
}

func (h *Handler) listPoints(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())

	mapID, err := uuid.Parse(r.PathValue("mapId"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid map id")
		return
	}

	points, err := h.app.ListPoints(r.Context(), mapID, ownerID)
	if errors.Is(err, maps.ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Map not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to list points")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch points")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, points)
}

func (h *Handler) createPoint(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())

	mapID, err := uuid.Parse(r.PathValue("mapId"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid map id")
		return
	}

	var req CreatePointRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	point, err := h.app.CreatePoint(r.Context(), mapID, ownerID, req)
	if errors.Is(err, maps.ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Map not found")
		return
	}
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, point)
}

func (h *Handler) updatePoint(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid point id")
		return
	}

	var patch PointPatch
	if err := httputil.DecodeJSON(r, &patch); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	point, err := h.app.UpdatePoint(r.Context(), id, ownerID, patch)
	if err != nil {
		h.respondMutationError(w, err, "Failed to update point")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, point)
}

func (h *Handler) deletePoint(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid point id")
		return
	}

	if err := h.app.DeletePoint(r.Context(), id, ownerID); err != nil {
		h.respondMutationError(w, err, "Failed to delete point")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondMutationError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "Point not found")
	case errors.Is(err, ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, "Unauthorized")
	default:
		log.Error().Err(err).Msg(fallback)
		httputil.RespondError(w, http.StatusInternalServerError, fallback)
	}
}
