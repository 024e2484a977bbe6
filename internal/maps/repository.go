package maps

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/waypoint/internal/models"
	"github.com/mcdev12/waypoint/internal/sqlutil"
)

// Repository implements map data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new maps repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const mapColumns = `id, base_map_name, title, img, owner_id, tribe_id, created_at, updated_at`

// ListMapsByOwner returns all maps owned by a user, newest first
func (r *Repository) ListMapsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.MapInstance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+mapColumns+` FROM maps
		WHERE owner_id = $1
		ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list maps: %w", err)
	}
	defer rows.Close()

	maps := []models.MapInstance{}
	for rows.Next() {
		m, err := scanMap(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan map: %w", err)
		}
		maps = append(maps, *m)
	}
	return maps, rows.Err()
}

// GetMapForOwner returns the map only if it belongs to the given owner
func (r *Repository) GetMapForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.MapInstance, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+mapColumns+` FROM maps WHERE id = $1 AND owner_id = $2`, id, ownerID)
	m, err := scanMap(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get map: %w", err)
	}
	return m, nil
}

// CreateMap inserts a new map instance
func (r *Repository) CreateMap(ctx context.Context, ownerID uuid.UUID, req CreateMapRequest) (*models.MapInstance, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO maps (id, base_map_name, title, img, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+mapColumns,
		uuid.New(), req.BaseMapName, req.Title, req.Img, ownerID)

	m, err := scanMap(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create map: %w", err)
	}
	return m, nil
}

// UpdateMap applies a partial update scoped to the owner
func (r *Repository) UpdateMap(ctx context.Context, id, ownerID uuid.UUID, req UpdateMapRequest) (*models.MapInstance, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE maps SET
			title = COALESCE($3, title),
			img = COALESCE($4, img),
			tribe_id = COALESCE($5, tribe_id),
			updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING `+mapColumns,
		id, ownerID,
		sqlutil.ToSqlString(req.Title),
		sqlutil.ToSqlString(req.Img),
		sqlutil.ToNullUUID(req.TribeID))

	m, err := scanMap(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update map: %w", err)
	}
	return m, nil
}

// DeleteMap removes a map scoped to the owner. Points are removed by the
// ON DELETE CASCADE constraint on points.map_id.
func (r *Repository) DeleteMap(ctx context.Context, id, ownerID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM maps WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete map: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMap(row rowScanner) (*models.MapInstance, error) {
	var (
		m     models.MapInstance
		tribe uuid.NullUUID
	)
	err := row.Scan(&m.ID, &m.BaseMapName, &m.Title, &m.Img, &m.OwnerID, &tribe, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.TribeID = sqlutil.FromNullUUID(tribe)
	return &m, nil
}
