// Package categories implements CRUD for the reusable todo category tags.
package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/waypoint/internal/models"
	"github.com/mcdev12/waypoint/internal/sqlutil"
)

// Sentinel errors the handler maps to HTTP status codes
var (
	ErrNotFound  = errors.New("category not found")
	ErrNameTaken = errors.New("category name already exists")
)

// CreateCategoryRequest represents the data needed to create a category
type CreateCategoryRequest struct {
	Name  string  `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

// UpdateCategoryRequest represents the fields that can be updated
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

// Repository implements category data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new categories repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const categoryColumns = `id, name, icon, color, created_at, updated_at`

// ListCategories returns all categories ordered by name
func (r *Repository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

// GetCategory returns a category by id
func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// CreateCategory inserts a new category. Names are unique.
func (r *Repository) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name, icon, color)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING
		RETURNING `+categoryColumns,
		uuid.New(), req.Name, sqlutil.ToSqlString(req.Icon), sqlutil.ToSqlString(req.Color))

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return c, nil
}

// UpdateCategory applies a partial update and returns the new row
func (r *Repository) UpdateCategory(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*models.Category, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE categories SET
			name = COALESCE($2, name),
			icon = COALESCE($3, icon),
			color = COALESCE($4, color),
			updated_at = now()
		WHERE id = $1
		RETURNING `+categoryColumns,
		id,
		sqlutil.ToSqlString(req.Name),
		sqlutil.ToSqlString(req.Icon),
		sqlutil.ToSqlString(req.Color))

	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return c, nil
}

// DeleteCategory removes a category and strips its id from every todo's
// category list in the same transaction, so todos never reference a
// category that no longer exists
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return sqlutil.RunTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return ErrNotFound
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE todos SET categories = categories - $1 WHERE categories ? $1`,
			id.String()); err != nil {
			return fmt.Errorf("failed to detach category from todos: %w", err)
		}
		return nil
	})
}

// DeleteAllCategories removes every category and empties every todo's
// category list
func (r *Repository) DeleteAllCategories(ctx context.Context) (int64, error) {
	var n int64
	err := sqlutil.RunTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM categories`)
		if err != nil {
			return fmt.Errorf("failed to delete categories: %w", err)
		}
		n, _ = res.RowsAffected()
		if _, err := tx.ExecContext(ctx, `UPDATE todos SET categories = '[]'::jsonb`); err != nil {
			return fmt.Errorf("failed to clear todo categories: %w", err)
		}
		return nil
	})
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (*models.Category, error) {
	var (
		c           models.Category
		icon, color sql.NullString
	)
	err := row.Scan(&c.ID, &c.Name, &icon, &color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Icon = sqlutil.FromSqlStringPtr(icon)
	c.Color = sqlutil.FromSqlStringPtr(color)
	return &c, nil
}
