package todos

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a todo does not exist
var ErrNotFound = errors.New("todo not found")

// CreateTodoRequest represents the data needed to create a todo
type CreateTodoRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Priority    string      `json:"priority"`
	Comments    string      `json:"comments"`
	Completed   bool        `json:"completed"`
	Categories  []uuid.UUID `json:"categories"`
}

// UpdateTodoRequest represents the fields that can be updated on a todo
type UpdateTodoRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Priority    *string      `json:"priority"`
	Comments    *string      `json:"comments"`
	Completed   *bool        `json:"completed"`
	Categories  *[]uuid.UUID `json:"categories"`
}
