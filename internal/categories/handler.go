package categories

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/httputil"
	"github.com/mcdev12/waypoint/internal/models"
)

// CategoriesRepository defines what the handler needs from the repository
type CategoriesRepository interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	DeleteAllCategories(ctx context.Context) (int64, error)
}

// Handler exposes the category REST routes. Categories are thin enough that
// the handler talks to the repository directly.
type Handler struct {
	repo CategoriesRepository
}

// NewHandler creates a new categories handler
func NewHandler(repo CategoriesRepository) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes registers category routes behind the auth middleware.
// Dropping every category at once is admin-only.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, requireAuth, requireAdmin func(http.Handler) http.Handler) {
	mux.Handle("GET /api/categories", requireAuth(http.HandlerFunc(h.listCategories)))
	mux.Handle("POST /api/categories", requireAuth(http.HandlerFunc(h.createCategory)))
	mux.Handle("GET /api/categories/{id}", requireAuth(http.HandlerFunc(h.getCategory)))
	mux.Handle("PUT /api/categories/{id}", requireAuth(http.HandlerFunc(h.updateCategory)))
	mux.Handle("DELETE /api/categories/{id}", requireAuth(http.HandlerFunc(h.deleteCategory)))
	mux.Handle("DELETE /api/categories", requireAuth(requireAdmin(http.HandlerFunc(h.deleteAllCategories))))
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.ListCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list categories")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, categories)
}

func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	category, err := h.repo.GetCategory(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to get category")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch category")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, category)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		httputil.RespondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	category, err := h.repo.CreateCategory(r.Context(), req)
	if errors.Is(err, ErrNameTaken) {
		httputil.RespondError(w, http.StatusConflict, "Category name already exists")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to create category")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, category)
}

func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	var req UpdateCategoryRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	category, err := h.repo.UpdateCategory(r.Context(), id, req)
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to update category")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, category)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid category id")
		return
	}

	err = h.repo.DeleteCategory(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "Category not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to delete category")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteAllCategories(w http.ResponseWriter, r *http.Request) {
	n, err := h.repo.DeleteAllCategories(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to delete categories")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to delete categories")
		return
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}
