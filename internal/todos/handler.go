package todos

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/auth"
	"github.com/mcdev12/waypoint/internal/httputil"
)

// Handler exposes the todo REST routes
type Handler struct {
	app *App
}

// NewHandler creates a new todos handler
func NewHandler(app *App) *Handler {
	return &Handler{app: app}
}

// RegisterRoutes registers todo routes behind the auth middleware. Clearing
// the whole list is admin-only.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, requireAuth, requireAdmin func(http.Handler) http.Handler) {
	mux.Handle("GET /api/todos", requireAuth(http.HandlerFunc(h.listTodos)))
	mux.Handle("POST /api/todos", requireAuth(http.HandlerFunc(h.createTodo)))
	mux.Handle("GET /api/todos/{id}", requireAuth(http.HandlerFunc(h.getTodo)))
	mux.Handle("PUT /api/todos/{id}", requireAuth(http.HandlerFunc(h.updateTodo)))
	mux.Handle("DELETE /api/todos/{id}", requireAuth(http.HandlerFunc(h.deleteTodo)))
	mux.Handle("DELETE /api/todos", requireAuth(requireAdmin(http.HandlerFunc(h.deleteAllTodos))))
}

func (h *Handler) listTodos(w http.ResponseWriter, r *http.Request) {
	todos, err := h.app.ListTodos(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list todos")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch todos")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, todos)
}

func (h *Handler) getTodo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid todo id")
		return
	}

	todo, err := h.app.GetTodo(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Todo not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to get todo")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch todo")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, todo)
}

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	authorID, _ := auth.UserIDFromContext(r.Context())

	var req CreateTodoRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	todo, err := h.app.CreateTodo(r.Context(), authorID, req)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, todo)
}

func (h *Handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid todo id")
		return
	}

	var req UpdateTodoRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	todo, err := h.app.UpdateTodo(r.Context(), id, req)
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Todo not found")
		return
	}
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	httputil.RespondJSON(w, http.StatusOK, todo)
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid todo id")
		return
	}

	err = h.app.DeleteTodo(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Todo not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to delete todo")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete todo")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteAllTodos(w http.ResponseWriter, r *http.Request) {
	n, err := h.app.DeleteAllTodos(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to delete todos")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete todos")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
