package users

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/auth"
	"github.com/mcdev12/waypoint/internal/httputil"
	"github.com/mcdev12/waypoint/internal/models"
)

// TokenService defines what the handler needs from the auth service
type TokenService interface {
	MintAccessToken(user *models.User) (string, error)
	MintRefreshToken(user *models.User) (string, error)
	VerifyToken(tokenString, wantType string) (uuid.UUID, []string, error)
}

// Handler exposes the auth and profile REST routes
type Handler struct {
	app        *App
	tokens     TokenService
	refreshTTL time.Duration
}

// NewHandler creates a new users handler
func NewHandler(app *App, tokens TokenService, refreshTTL time.Duration) *Handler {
	return &Handler{app: app, tokens: tokens, refreshTTL: refreshTTL}
}

// RegisterRoutes registers auth and profile routes. Profile routes require
// auth; the auth routes themselves do not.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	mux.HandleFunc("POST /api/auth/register", h.register)
	mux.HandleFunc("POST /api/auth/login", h.login)
	mux.HandleFunc("POST /api/auth/refresh", h.refresh)
	mux.HandleFunc("POST /api/auth/logout", h.logout)
	mux.Handle("GET /api/profile/me", requireAuth(http.HandlerFunc(h.getProfile)))
	mux.Handle("PUT /api/profile/me", requireAuth(http.HandlerFunc(h.updateProfile)))
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.app.Register(r.Context(), req)
	if errors.Is(err, ErrEmailTaken) {
		httputil.RespondError(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("register failed")
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondWithTokens(w, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.app.Authenticate(r.Context(), req)
	if errors.Is(err, ErrInvalidCredentials) {
		httputil.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("login failed")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.respondWithTokens(w, user, http.StatusOK)
}

// refresh exchanges a valid refresh cookie for a fresh access token
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "Missing refresh token")
		return
	}

	userID, _, err := h.tokens.VerifyToken(cookie.Value, auth.TokenTypeRefresh)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	user, err := h.app.GetUser(r.Context(), userID)
	if err != nil {
		httputil.RespondError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	token, err := h.tokens.MintAccessToken(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to mint access token")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to refresh session")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.RefreshCookieName,
		Value:    "",
		Path:     "/api/auth",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.app.GetUser(r.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch profile")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httputil.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.app.UpdateProfile(r.Context(), userID, req)
	if errors.Is(err, ErrNotFound) {
		httputil.RespondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

func (h *Handler) respondWithTokens(w http.ResponseWriter, user *models.User, status int) {
	token, err := h.tokens.MintAccessToken(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to mint access token")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	refresh, err := h.tokens.MintRefreshToken(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to mint refresh token")
		httputil.RespondError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.RefreshCookieName,
		Value:    refresh,
		Path:     "/api/auth",
		MaxAge:   int(h.refreshTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	httputil.RespondJSON(w, status, authResponse{Token: token, User: user})
}
