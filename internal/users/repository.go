package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/waypoint/internal/models"
	"github.com/mcdev12/waypoint/internal/sqlutil"
)

// Repository implements user data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new users repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const userColumns = `id, name, email, password_hash, profile_picture, roles, level, created_at, updated_at`

// CreateUser inserts a new user
func (r *Repository) CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error) {
	roles, err := json.Marshal(params.Roles)
	if err != nil {
		return nil, fmt.Errorf("failed to encode roles: %w", err)
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, roles)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		uuid.New(), params.Name, params.Email, params.PasswordHash, roles)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (r *Repository) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial profile update and returns the new row
func (r *Repository) UpdateUser(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE users SET
			name = COALESCE($2, name),
			profile_picture = COALESCE($3, profile_picture),
			level = COALESCE($4, level),
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id,
		sqlutil.ToSqlString(req.Name),
		sqlutil.ToSqlString(req.ProfilePicture),
		nullableInt(req.Level))

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser deletes a user by ID
func (r *Repository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableInt(val *int) sql.NullInt64 {
	if val == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*val), Valid: true}
}

func scanUser(row *sql.Row) (*models.User, error) {
	var (
		u       models.User
		picture sql.NullString
		roles   []byte
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &picture, &roles, &u.Level, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.ProfilePicture = sqlutil.FromSqlStringPtr(picture)
	if err := json.Unmarshal(roles, &u.Roles); err != nil {
		return nil, fmt.Errorf("failed to decode roles: %w", err)
	}
	return &u, nil
}
