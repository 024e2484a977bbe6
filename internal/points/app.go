package points

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/maps"
	"github.com/mcdev12/waypoint/internal/models"
)

// PointsRepository defines what the app layer needs from the repository
type PointsRepository interface {
	ListPointsByMap(ctx context.Context, mapID uuid.UUID) ([]models.Point, error)
	GetPoint(ctx context.Context, id uuid.UUID) (*models.Point, error)
	CreatePoint(ctx context.Context, point models.Point) (*models.Point, error)
	UpdatePoint(ctx context.Context, id uuid.UUID, patch PointPatch) (*models.Point, error)
	DeletePoint(ctx context.Context, id uuid.UUID) error
}

// MapsApp defines what the points app needs from the maps app for
// ownership verification
type MapsApp interface {
	GetMap(ctx context.Context, id, ownerID uuid.UUID) (*models.MapInstance, error)
}

// App handles point business logic. Every mutation verifies the parent map's
// ownership first; the server is the source of truth for defaults.
type App struct {
	repo    PointsRepository
	mapsApp MapsApp
}

// NewApp creates a new points App
func NewApp(repo PointsRepository, mapsApp MapsApp) *App {
	return &App{repo: repo, mapsApp: mapsApp}
}

// ListPoints returns all points on one of the caller's maps
func (a *App) ListPoints(ctx context.Context, mapID, ownerID uuid.UUID) ([]models.Point, error) {
	if _, err := a.mapsApp.GetMap(ctx, mapID, ownerID); err != nil {
		return nil, err
	}
	return a.repo.ListPointsByMap(ctx, mapID)
}

// CreatePoint places a point on one of the caller's maps, applying the
// server-side defaults for color, size and icon
func (a *App) CreatePoint(ctx context.Context, mapID, ownerID uuid.UUID, req CreatePointRequest) (*models.Point, error) {
	if req.X == nil || req.Y == nil || req.PX == nil || req.PY == nil || req.Category == "" {
		return nil, fmt.Errorf("validation failed: x, y, pX, pY and category are required")
	}

	if _, err := a.mapsApp.GetMap(ctx, mapID, ownerID); err != nil {
		return nil, err
	}

	point := models.Point{
		MapID:       mapID,
		Category:    req.Category,
		Icon:        req.Icon,
		X:           *req.X,
		Y:           *req.Y,
		PX:          *req.PX,
		PY:          *req.PY,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Size:        req.Size,
		CreatedBy:   ownerID,
	}
	if point.Color == "" {
		point.Color = models.DefaultPointColor
	}
	if point.Size == 0 {
		point.Size = models.DefaultPointSize
	}
	if point.Icon == "" {
		point.Icon = req.Category
	}

	created, err := a.repo.CreatePoint(ctx, point)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("point_id", created.ID.String()).
		Str("map_id", mapID.String()).
		Str("category", created.Category).
		Msg("point created")
	return created, nil
}

// UpdatePoint applies an allow-listed patch to a point after verifying the
// caller owns its parent map
func (a *App) UpdatePoint(ctx context.Context, id, ownerID uuid.UUID, patch PointPatch) (*models.Point, error) {
	if err := a.authorize(ctx, id, ownerID); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return a.repo.GetPoint(ctx, id)
	}
	return a.repo.UpdatePoint(ctx, id, patch)
}

// DeletePoint removes a point after verifying the caller owns its parent map
func (a *App) DeletePoint(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := a.authorize(ctx, id, ownerID); err != nil {
		return err
	}
	if err := a.repo.DeletePoint(ctx, id); err != nil {
		return err
	}
	log.Info().Str("point_id", id.String()).Msg("point deleted")
	return nil
}

// authorize loads the point and checks the caller owns its parent map.
// A missing point is ErrNotFound; a foreign map is ErrForbidden.
func (a *App) authorize(ctx context.Context, pointID, ownerID uuid.UUID) error {
	point, err := a.repo.GetPoint(ctx, pointID)
	if err != nil {
		return err
	}
	if _, err := a.mapsApp.GetMap(ctx, point.MapID, ownerID); err != nil {
		if errors.Is(err, maps.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	return nil
}
