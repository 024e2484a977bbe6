package points

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/mcdev12/waypoint/internal/maps"
	"github.com/mcdev12/waypoint/internal/models"
)

type fakePointsRepo struct {
	points  map[uuid.UUID]models.Point
	created *models.Point
	updated *PointPatch
	deleted []uuid.UUID
}

func newFakePointsRepo() *fakePointsRepo {
	return &fakePointsRepo{points: make(map[uuid.UUID]models.Point)}
}

func (r *fakePointsRepo) ListPointsByMap(ctx context.Context, mapID uuid.UUID) ([]models.Point, error) {
	var out []models.Point
	for _, p := range r.points {
		if p.MapID == mapID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePointsRepo) GetPoint(ctx context.Context, id uuid.UUID) (*models.Point, error) {
	p, ok := r.points[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *fakePointsRepo) CreatePoint(ctx context.Context, point models.Point) (*models.Point, error) {
	point.ID = uuid.New()
	r.points[point.ID] = point
	r.created = &point
	return &point, nil
}

func (r *fakePointsRepo) UpdatePoint(ctx context.Context, id uuid.UUID, patch PointPatch) (*models.Point, error) {
	p, ok := r.points[id]
	if !ok {
		return nil, ErrNotFound
	}
	r.updated = &patch
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.X != nil {
		p.X = *patch.X
	}
	r.points[id] = p
	return &p, nil
}

func (r *fakePointsRepo) DeletePoint(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.points[id]; !ok {
		return ErrNotFound
	}
	delete(r.points, id)
	r.deleted = append(r.deleted, id)
	return nil
}

// fakeMapsApp owns a fixed set of (mapID, ownerID) pairs
type fakeMapsApp struct {
	owners map[uuid.UUID]uuid.UUID
}

func (f *fakeMapsApp) GetMap(ctx context.Context, id, ownerID uuid.UUID) (*models.MapInstance, error) {
	owner, ok := f.owners[id]
	if !ok || owner != ownerID {
		return nil, maps.ErrNotFound
	}
	return &models.MapInstance{ID: id, OwnerID: owner}, nil
}

func ptr[T any](v T) *T { return &v }

func TestCreatePointAppliesDefaults(t *testing.T) {
	repo := newFakePointsRepo()
	owner := uuid.New()
	mapID := uuid.New()
	app := NewApp(repo, &fakeMapsApp{owners: map[uuid.UUID]uuid.UUID{mapID: owner}})

	created, err := app.CreatePoint(context.Background(), mapID, owner, CreatePointRequest{
		Category: "Resource",
		X:        ptr(100.0), Y: ptr(200.0), PX: ptr(0.5), PY: ptr(0.6),
	})
	if err != nil {
		t.Fatalf("CreatePoint: %v", err)
	}
	if created.Color != models.DefaultPointColor {
		t.Errorf("Color = %q, want %q", created.Color, models.DefaultPointColor)
	}
	if created.Size != models.DefaultPointSize {
		t.Errorf("Size = %d, want %d", created.Size, models.DefaultPointSize)
	}
	if created.Icon != "Resource" {
		t.Errorf("Icon = %q, want category fallback", created.Icon)
	}
	if created.CreatedBy != owner {
		t.Errorf("CreatedBy = %s, want %s", created.CreatedBy, owner)
	}
}

func TestCreatePointRequiredFields(t *testing.T) {
	repo := newFakePointsRepo()
	owner := uuid.New()
	mapID := uuid.New()
	app := NewApp(repo, &fakeMapsApp{owners: map[uuid.UUID]uuid.UUID{mapID: owner}})

	tests := []struct {
		name string
		req  CreatePointRequest
	}{
		{"missing x", CreatePointRequest{Category: "Resource", Y: ptr(1.0), PX: ptr(0.1), PY: ptr(0.1)}},
		{"missing category", CreatePointRequest{X: ptr(1.0), Y: ptr(1.0), PX: ptr(0.1), PY: ptr(0.1)}},
		{"missing pX", CreatePointRequest{Category: "Resource", X: ptr(1.0), Y: ptr(1.0), PY: ptr(0.1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := app.CreatePoint(context.Background(), mapID, owner, tt.req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
	if repo.created != nil {
		t.Error("repository called despite validation failure")
	}
}

func TestCreatePointOnForeignMap(t *testing.T) {
	repo := newFakePointsRepo()
	mapID := uuid.New()
	app := NewApp(repo, &fakeMapsApp{owners: map[uuid.UUID]uuid.UUID{mapID: uuid.New()}})

	_, err := app.CreatePoint(context.Background(), mapID, uuid.New(), CreatePointRequest{
		Category: "Resource", X: ptr(1.0), Y: ptr(1.0), PX: ptr(0.1), PY: ptr(0.1),
	})
	if !errors.Is(err, maps.ErrNotFound) {
		t.Errorf("err = %v, want maps.ErrNotFound", err)
	}
}

func TestUpdatePointOnForeignMapIsForbidden(t *testing.T) {
	repo := newFakePointsRepo()
	owner := uuid.New()
	mapID := uuid.New()
	app := NewApp(repo, &fakeMapsApp{owners: map[uuid.UUID]uuid.UUID{mapID: owner}})

	created, err := app.CreatePoint(context.Background(), mapID, owner, CreatePointRequest{
		Category: "Resource", X: ptr(1.0), Y: ptr(1.0), PX: ptr(0.1), PY: ptr(0.1),
	})
	if err != nil {
		t.Fatalf("CreatePoint: %v", err)
	}

	_, err = app.UpdatePoint(context.Background(), created.ID, uuid.New(), PointPatch{Name: ptr("stolen")})
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("update err = %v, want ErrForbidden", err)
	}
	if err := app.DeletePoint(context.Background(), created.ID, uuid.New()); !errors.Is(err, ErrForbidden) {
		t.Errorf("delete err = %v, want ErrForbidden", err)
	}
}

func TestUpdateMissingPoint(t *testing.T) {
	repo := newFakePointsRepo()
	app := NewApp(repo, &fakeMapsApp{owners: map[uuid.UUID]uuid.UUID{}})

	_, err := app.UpdatePoint(context.Background(), uuid.New(), uuid.New(), PointPatch{Name: ptr("ghost")})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestEmptyPatchSkipsRepositoryUpdate(t *testing.T) {
	repo := newFakePointsRepo()
	owner := uuid.New()
	mapID := uuid.New()
	app := NewApp(repo, &fakeMapsApp{owners: map[uuid.UUID]uuid.UUID{mapID: owner}})

	created, err := app.CreatePoint(context.Background(), mapID, owner, CreatePointRequest{
		Category: "Resource", X: ptr(1.0), Y: ptr(1.0), PX: ptr(0.1), PY: ptr(0.1),
	})
	if err != nil {
		t.Fatalf("CreatePoint: %v", err)
	}

	got, err := app.UpdatePoint(context.Background(), created.ID, owner, PointPatch{})
	if err != nil {
		t.Fatalf("UpdatePoint: %v", err)
	}
	if repo.updated != nil {
		t.Error("empty patch reached the repository")
	}
	if got.ID != created.ID {
		t.Errorf("returned point id = %s, want %s", got.ID, created.ID)
	}
}
