package maps

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/models"
)

// MapsRepository defines what the app layer needs from the repository
type MapsRepository interface {
	ListMapsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.MapInstance, error)
	GetMapForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.MapInstance, error)
	CreateMap(ctx context.Context, ownerID uuid.UUID, req CreateMapRequest) (*models.MapInstance, error)
	UpdateMap(ctx context.Context, id, ownerID uuid.UUID, req UpdateMapRequest) (*models.MapInstance, error)
	DeleteMap(ctx context.Context, id, ownerID uuid.UUID) error
}

// App handles map business logic
type App struct {
	repo MapsRepository
}

// NewApp creates a new maps App
func NewApp(repo MapsRepository) *App {
	return &App{repo: repo}
}

// ListMaps returns the caller's maps
func (a *App) ListMaps(ctx context.Context, ownerID uuid.UUID) ([]models.MapInstance, error) {
	return a.repo.ListMapsByOwner(ctx, ownerID)
}

// GetMap returns one of the caller's maps
func (a *App) GetMap(ctx context.Context, id, ownerID uuid.UUID) (*models.MapInstance, error) {
	return a.repo.GetMapForOwner(ctx, id, ownerID)
}

// CreateMap places a new map instance for the caller
func (a *App) CreateMap(ctx context.Context, ownerID uuid.UUID, req CreateMapRequest) (*models.MapInstance, error) {
	if req.BaseMapName == "" || req.Title == "" || req.Img == "" {
		return nil, fmt.Errorf("validation failed: baseMapName, title and img are required")
	}

	m, err := a.repo.CreateMap(ctx, ownerID, req)
	if err != nil {
		return nil, err
	}

	log.Info().Str("map_id", m.ID.String()).Str("base_map", m.BaseMapName).Msg("map created")
	return m, nil
}

// UpdateMap applies a partial update to one of the caller's maps
func (a *App) UpdateMap(ctx context.Context, id, ownerID uuid.UUID, req UpdateMapRequest) (*models.MapInstance, error) {
	return a.repo.UpdateMap(ctx, id, ownerID, req)
}

// DeleteMap removes one of the caller's maps along with its points
func (a *App) DeleteMap(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := a.repo.DeleteMap(ctx, id, ownerID); err != nil {
		return err
	}
	log.Info().Str("map_id", id.String()).Msg("map deleted")
	return nil
}
