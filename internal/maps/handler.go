package maps

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/auth"
	"github.com/mcdev12/waypoint/internal/httputil"
)

// Handler exposes the map REST routes
type Handler struct {
	app *App
}

// NewHandler creates a new maps handler
func NewHandler(app *App) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes registers map routes behind the auth middleware
func (h *Handler) RegisterRoutes(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.Handle("GET /api/maps", requireAuth(http.HandlerFunc(h.listMaps)))
	mux.Handle("POST /api/maps", requireAuth(http.HandlerFunc(h.createMap)))
	mux.Handle("PUT /api/maps/{id}", requireAuth(http.HandlerFunc(h.updateMap)))
	mux.Handle("DELETE /api/maps/{id}", requireAuth(http.HandlerFunc(h.deleteMap)))
}

func (h *Handler) listMaps(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())

	maps, err := h.app.ListMaps(r.Context(), ownerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to list maps")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch maps")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, maps)
}

func (h *Handler) createMap(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())

	var req CreateMapRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.app.CreateMap(r.Context(), ownerID, req)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, m)
}

func (h *Handler) updateMap(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid map id")
		return
	}

	var req UpdateMapRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.app.UpdateMap(r.Context(), id, ownerID, req)
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Map not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to update map")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to update map")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, m)
}

func (h *Handler) deleteMap(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := auth.UserIDFromContext(r.Context())

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid map id")
		return
	}

	err = h.app.DeleteMap(r.Context(), id, ownerID)
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Map not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to delete map")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete map")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
