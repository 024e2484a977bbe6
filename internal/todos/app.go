package todos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/models"
)

// TodosRepository defines what the app layer needs from the repository
type TodosRepository interface {
	ListTodos(ctx context.Context) ([]models.Todo, error)
	GetTodo(ctx context.Context, id uuid.UUID) (*models.Todo, error)
	CreateTodo(ctx context.Context, authorID uuid.UUID, req CreateTodoRequest) (*models.Todo, error)
	UpdateTodo(ctx context.Context, id uuid.UUID, req UpdateTodoRequest) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id uuid.UUID) error
	DeleteAllTodos(ctx context.Context) (int64, error)
}

// App handles todo business logic
type App struct {
	repo TodosRepository
}

// NewApp creates a new todos App
func NewApp(repo TodosRepository) *App {
	return &App{repo: repo}
}

// ListTodos returns every todo on the shared list
func (a *App) ListTodos(ctx context.Context) ([]models.Todo, error) {
	return a.repo.ListTodos(ctx)
}

// GetTodo returns a todo by id
func (a *App) GetTodo(ctx context.Context, id uuid.UUID) (*models.Todo, error) {
	return a.repo.GetTodo(ctx, id)
}

// CreateTodo adds a todo authored by the caller
func (a *App) CreateTodo(ctx context.Context, authorID uuid.UUID, req CreateTodoRequest) (*models.Todo, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("validation failed: title is required")
	}
	return a.repo.CreateTodo(ctx, authorID, req)
}

// UpdateTodo applies a partial update
func (a *App) UpdateTodo(ctx context.Context, id uuid.UUID, req UpdateTodoRequest) (*models.Todo, error) {
	if req.Title != nil && *req.Title == "" {
		return nil, fmt.Errorf("validation failed: title cannot be empty")
	}
	return a.repo.UpdateTodo(ctx, id, req)
}

// DeleteTodo removes a todo
func (a *App) DeleteTodo(ctx context.Context, id uuid.UUID) error {
	return a.repo.DeleteTodo(ctx, id)
}

// DeleteAllTodos clears the list
func (a *App) DeleteAllTodos(ctx context.Context) (int64, error) {
	n, err := a.repo.DeleteAllTodos(ctx)
	if err != nil {
		return 0, err
	}
	log.Info().Int64("deleted", n).Msg("cleared todo list")
	return n, nil
}
