package models

import (
	"time"

	"github.com/google/uuid"
)

// Todo represents a task on the todo list
type Todo struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Completed   bool        `json:"completed"`
	Priority    string      `json:"priority"`
	Comments    string      `json:"comments"`
	Categories  []uuid.UUID `json:"categories"`
	AuthorID    uuid.UUID   `json:"authorId"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Category is a reusable tag for todos
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      *string   `json:"icon"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
