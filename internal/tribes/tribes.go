// Package tribes implements CRUD for tribes, the named player groups.
package tribes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/waypoint/internal/models"
)

// ErrNotFound is returned when a tribe does not exist
var ErrNotFound = errors.New("tribe not found")

// TribeRequest carries the single mutable tribe field
type TribeRequest struct {
	Name string `json:"name"`
}

// Repository implements tribe data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new tribes repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const tribeColumns = `id, name, created_at, updated_at`

// ListTribes returns all tribes ordered by name
func (r *Repository) ListTribes(ctx context.Context) ([]models.Tribe, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+tribeColumns+` FROM tribes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tribes: %w", err)
	}
	defer rows.Close()

	tribes := []models.Tribe{}
	for rows.Next() {
		var t models.Tribe
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan tribe: %w", err)
		}
		tribes = append(tribes, t)
	}
	return tribes, rows.Err()
}

// CreateTribe inserts a new tribe
func (r *Repository) CreateTribe(ctx context.Context, req TribeRequest) (*models.Tribe, error) {
	var t models.Tribe
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO tribes (id, name) VALUES ($1, $2)
		RETURNING `+tribeColumns,
		uuid.New(), req.Name).
		Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create tribe: %w", err)
	}
	return &t, nil
}

// UpdateTribe renames a tribe and returns the new row
func (r *Repository) UpdateTribe(ctx context.Context, id uuid.UUID, req TribeRequest) (*models.Tribe, error) {
	var t models.Tribe
	err := r.db.QueryRowContext(ctx, `
		UPDATE tribes SET name = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+tribeColumns,
		id, req.Name).
		Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update tribe: %w", err)
	}
	return &t, nil
}

// DeleteTribe removes a tribe by id
func (r *Repository) DeleteTribe(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tribes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tribe: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
