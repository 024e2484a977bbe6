package points

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/waypoint/internal/models"
	"github.com/mcdev12/waypoint/internal/sqlutil"
)

// Repository implements point data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new points repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const pointColumns = `id, map_id, category, icon, x, y, p_x, p_y, name, description, color, size, created_by, created_at, updated_at`

// ListPointsByMap returns all points on a map, newest first
func (r *Repository) ListPointsByMap(ctx context.Context, mapID uuid.UUID) ([]models.Point, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+pointColumns+` FROM points
		WHERE map_id = $1
		ORDER BY created_at DESC`, mapID)
	if err != nil {
		return nil, fmt.Errorf("failed to list points: %w", err)
	}
	defer rows.Close()

	points := []models.Point{}
	for rows.Next() {
		p, err := scanPoint(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}
		points = append(points, *p)
	}
	return points, rows.Err()
}

// GetPoint returns a point by id
func (r *Repository) GetPoint(ctx context.Context, id uuid.UUID) (*models.Point, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+pointColumns+` FROM points WHERE id = $1`, id)
	p, err := scanPoint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get point: %w", err)
	}
	return p, nil
}

// CreatePoint inserts a new point
func (r *Repository) CreatePoint(ctx context.Context, point models.Point) (*models.Point, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO points (id, map_id, category, icon, x, y, p_x, p_y, name, description, color, size, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+pointColumns,
		uuid.New(), point.MapID, point.Category, point.Icon,
		point.X, point.Y, point.PX, point.PY,
		point.Name, point.Description, point.Color, point.Size, point.CreatedBy)

	p, err := scanPoint(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create point: %w", err)
	}
	return p, nil
}

// UpdatePoint applies a patch and returns the new row
func (r *Repository) UpdatePoint(ctx context.Context, id uuid.UUID, patch PointPatch) (*models.Point, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE points SET
			category = COALESCE($2, category),
			icon = COALESCE($3, icon),
			x = COALESCE($4, x),
			y = COALESCE($5, y),
			p_x = COALESCE($6, p_x),
			p_y = COALESCE($7, p_y),
			name = COALESCE($8, name),
			description = COALESCE($9, description),
			color = COALESCE($10, color),
			size = COALESCE($11, size),
			updated_at = now()
		WHERE id = $1
		RETURNING `+pointColumns,
		id,
		sqlutil.ToSqlString(patch.Category),
		sqlutil.ToSqlString(patch.Icon),
		nullableFloat(patch.X),
		nullableFloat(patch.Y),
		nullableFloat(patch.PX),
		nullableFloat(patch.PY),
		sqlutil.ToSqlString(patch.Name),
		sqlutil.ToSqlString(patch.Description),
		sqlutil.ToSqlString(patch.Color),
		nullableInt(patch.Size))

	p, err := scanPoint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update point: %w", err)
	}
	return p, nil
}

// DeletePoint removes a point by id
func (r *Repository) DeletePoint(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM points WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete point: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableFloat(val *float64) sql.NullFloat64 {
	if val == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *val, Valid: true}
}

func nullableInt(val *int) sql.NullInt64 {
	if val == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*val), Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPoint(row rowScanner) (*models.Point, error) {
	var p models.Point
	err := row.Scan(&p.ID, &p.MapID, &p.Category, &p.Icon,
		&p.X, &p.Y, &p.PX, &p.PY,
		&p.Name, &p.Description, &p.Color, &p.Size,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
