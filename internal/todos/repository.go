package todos

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

// Repository implements todo data access operations
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new todos repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const todoColumns = `id, title, description, completed, priority, comments, categories, author_id, created_at, updated_at`

// ListTodos returns all todos, newest first
func (r *Repository) ListTodos(ctx context.Context) ([]models.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, *t)
	}
	return todos, rows.Err()
}

// GetTodo returns a todo by id
func (r *Repository) GetTodo(ctx context.Context, id uuid.UUID) (*models.Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)
	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	return t, nil
}

// CreateTodo inserts a new todo
func (r *Repository) CreateTodo(ctx context.Context, authorID uuid.UUID, req CreateTodoRequest) (*models.Todo, error) {
	categories, err := encodeCategories(req.Categories)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO todos (id, title, description, completed, priority, comments, categories, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+todoColumns,
		uuid.New(), req.Title, req.Description, req.Completed, req.Priority, req.Comments, categories, authorID)

	t, err := scanTodo(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return t, nil
}

// UpdateTodo applies a partial update and returns the new row
func (r *Repository) UpdateTodo(ctx context.Context, id uuid.UUID, req UpdateTodoRequest) (*models.Todo, error) {
	var categories []byte
	if req.Categories != nil {
		var err error
		categories, err = encodeCategories(*req.Categories)
		if err != nil {
			return nil, err
		}
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE todos SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			priority = COALESCE($4, priority),
			comments = COALESCE($5, comments),
			completed = COALESCE($6, completed),
			categories = COALESCE($7, categories),
			updated_at = now()
		WHERE id = $1
		RETURNING `+todoColumns,
		id,
		sqlutil.ToSqlString(req.Title),
		sqlutil.ToSqlString(req.Description),
		sqlutil.ToSqlString(req.Priority),
		sqlutil.ToSqlString(req.Comments),
		nullableBool(req.Completed),
		categories)

	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return t, nil
}

// DeleteTodo removes a todo by id
func (r *Repository) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllTodos removes every todo
func (r *Repository) DeleteAllTodos(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete todos: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func encodeCategories(ids []uuid.UUID) ([]byte, error) {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to encode categories: %w", err)
	}
	return data, nil
}

func nullableBool(val *bool) sql.NullBool {
	if val == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *val, Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	var (
		t          models.Todo
		categories []byte
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.Priority,
		&t.Comments, &categories, &t.AuthorID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(categories, &t.Categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return &t, nil
}
