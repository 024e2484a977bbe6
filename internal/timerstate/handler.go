package timerstate

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/httputil"
	"github.com/mcdev12/waypoint/internal/models"
)

// Handler exposes the timer state REST routes
type Handler struct {
	app *App
}

// NewHandler creates a new timer state handler
func NewHandler(app *App) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes registers the timer state routes. The board is a shared
// single-tenant document and its routes are unauthenticated, matching the
// product's kiosk-style usage.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/timer-state", h.getState)
	mux.HandleFunc("POST /api/timer-state", h.replaceState)
}

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.app.GetState(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch timer state")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch timer state")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) replaceState(w http.ResponseWriter, r *http.Request) {
	var snapshot models.TimerSnapshot
	if err := httputil.DecodeJSON(r, &snapshot); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	stored, err := h.app.ReplaceState(r.Context(), snapshot)
	if err != nil {
		log.Error().Err(err).Msg("failed to save timer state")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to save timer state")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, stored)
}
