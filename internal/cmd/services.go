package main

import (
	"database/sql"
	"net/http"

	"github.com/mcdev12/waypoint/internal/auth"
	"github.com/mcdev12/waypoint/internal/categories"
	"github.com/mcdev12/waypoint/internal/maps"
	"github.com/mcdev12/waypoint/internal/models"
	"github.com/mcdev12/waypoint/internal/players"
	"github.com/mcdev12/waypoint/internal/points"
	"github.com/mcdev12/waypoint/internal/timerstate"
	"github.com/mcdev12/waypoint/internal/todos"
	"github.com/mcdev12/waypoint/internal/tribes"
	"github.com/mcdev12/waypoint/internal/users"
)

// Services holds every HTTP handler plus the shared auth middleware
type Services struct {
	Auth       *auth.Service
	Users      *users.Handler
	Maps       *maps.Handler
	Points     *points.Handler
	Todos      *todos.Handler
	Categories *categories.Handler
	Players    *players.Handler
	Tribes     *tribes.Handler
	TimerState *timerstate.Handler
}

func setupServices(database *sql.DB, config *Config, publisher timerstate.SnapshotPublisher) *Services {
	// Database layer → Repository layer → App layer → Handler layer
	authConfig := auth.DefaultConfig(config.JWTSecret)
	if ttl := config.AccessTTLDuration(); ttl > 0 {
		authConfig.AccessTTL = ttl
	}
	if ttl := config.RefreshTTLDuration(); ttl > 0 {
		authConfig.RefreshTTL = ttl
	}
	authService := auth.NewService(authConfig)

	// Users
	userRepo := users.NewRepository(database)
	userApp := users.NewApp(userRepo, authService)
	userHandler := users.NewHandler(userApp, authService, authConfig.RefreshTTL)

	// Maps
	mapRepo := maps.NewRepository(database)
	mapApp := maps.NewApp(mapRepo)
	mapHandler := maps.NewHandler(mapApp)

	// Points
	pointRepo := points.NewRepository(database)
	pointApp := points.NewApp(pointRepo, mapApp)
	pointHandler := points.NewHandler(pointApp)

	// Todos
	todoRepo := todos.NewRepository(database)
	todoApp := todos.NewApp(todoRepo)
	todoHandler := todos.NewHandler(todoApp)

	// Categories
	categoryRepo := categories.NewRepository(database)
	categoryHandler := categories.NewHandler(categoryRepo)

	// Players and tribes
	playerRepo := players.NewRepository(database)
	playerHandler := players.NewHandler(playerRepo)
	tribeRepo := tribes.NewRepository(database)
	tribeHandler := tribes.NewHandler(tribeRepo)

	// Timer board
	timerRepo := timerstate.NewRepository(database)
	timerApp := timerstate.NewApp(timerRepo, publisher)
	timerHandler := timerstate.NewHandler(timerApp)

	return &Services{
		Auth:       authService,
		Users:      userHandler,
		Maps:       mapHandler,
		Points:     pointHandler,
		Todos:      todoHandler,
		Categories: categoryHandler,
		Players:    playerHandler,
		Tribes:     tribeHandler,
		TimerState: timerHandler,
	}
}

func registerServices(mux *http.ServeMux, services *Services) {
	requireAuth := services.Auth.RequireAuth
	requireAdmin := auth.RequireRole(models.RoleAdmin)

	services.Users.RegisterRoutes(mux, requireAuth)
	services.Maps.RegisterRoutes(mux, requireAuth)
	services.Points.RegisterRoutes(mux, requireAuth)
	services.Todos.RegisterRoutes(mux, requireAuth, requireAdmin)
	services.Categories.RegisterRoutes(mux, requireAuth, requireAdmin)
	services.Players.RegisterRoutes(mux, requireAuth)
	services.Tribes.RegisterRoutes(mux, requireAuth)
	services.TimerState.RegisterRoutes(mux)
}
