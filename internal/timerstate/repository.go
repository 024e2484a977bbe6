package timerstate

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcdev12/waypoint/internal/models"
)

// DefaultStateKey identifies the single shared timer board document
const DefaultStateKey = "default"

// Repository persists the timer board as one row of JSONB arrays. The server
// never inspects widget timer sub-objects; it stores whatever the client sent.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new timer state repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetState loads the shared snapshot. A missing row yields an empty snapshot.
func (r *Repository) GetState(ctx context.Context) (*models.TimerSnapshot, error) {
	var categories, widgets []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT categories, widgets FROM timer_state WHERE state_key = $1`,
		DefaultStateKey).Scan(&categories, &widgets)
	if errors.Is(err, sql.ErrNoRows) {
		snapshot := &models.TimerSnapshot{}
		snapshot.Normalize()
		return snapshot, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get timer state: %w", err)
	}

	return decodeSnapshot(categories, widgets)
}

// UpsertState replaces the shared snapshot and returns the stored value
func (r *Repository) UpsertState(ctx context.Context, snapshot models.TimerSnapshot) (*models.TimerSnapshot, error) {
	snapshot.Normalize()

	categories, err := json.Marshal(snapshot.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to encode categories: %w", err)
	}
	widgets, err := json.Marshal(snapshot.Widgets)
	if err != nil {
		return nil, fmt.Errorf("failed to encode widgets: %w", err)
	}

	var storedCategories, storedWidgets []byte
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO timer_state (state_key, categories, widgets)
		VALUES ($1, $2, $3)
		ON CONFLICT (state_key) DO UPDATE
		SET categories = EXCLUDED.categories,
			widgets = EXCLUDED.widgets,
			updated_at = now()
		RETURNING categories, widgets`,
		DefaultStateKey, categories, widgets).
		Scan(&storedCategories, &storedWidgets)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert timer state: %w", err)
	}

	return decodeSnapshot(storedCategories, storedWidgets)
}

func decodeSnapshot(categories, widgets []byte) (*models.TimerSnapshot, error) {
	var snapshot models.TimerSnapshot
	if err := json.Unmarshal(categories, &snapshot.Categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	if err := json.Unmarshal(widgets, &snapshot.Widgets); err != nil {
		return nil, fmt.Errorf("failed to decode widgets: %w", err)
	}
	snapshot.Normalize()
	return &snapshot, nil
}
