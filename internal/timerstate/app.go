package timerstate

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/models"
)

// TimerStateRepository defines what the app layer needs from the repository
type TimerStateRepository interface {
	GetState(ctx context.Context) (*models.TimerSnapshot, error)
	UpsertState(ctx context.Context, snapshot models.TimerSnapshot) (*models.TimerSnapshot, error)
}

// SnapshotPublisher fans a persisted snapshot out to connected sessions
type SnapshotPublisher interface {
	PublishSnapshot(snapshot *models.TimerSnapshot) error
}

// App handles timer board reads and writes. The whole board is one shared
// document; a successful write broadcasts the full snapshot to every other
// session, which replaces its local state verbatim (last-writer-wins).
type App struct {
	repo      TimerStateRepository
	publisher SnapshotPublisher
}

// NewApp creates a new timer state App. publisher may be nil when no
// realtime fan-out is configured.
func NewApp(repo TimerStateRepository, publisher SnapshotPublisher) *App {
	return &App{repo: repo, publisher: publisher}
}

// GetState returns the shared snapshot
func (a *App) GetState(ctx context.Context) (*models.TimerSnapshot, error) {
	return a.repo.GetState(ctx)
}

// ReplaceState persists the snapshot and broadcasts it. Broadcast failures
// are logged but do not fail the write; the document is already durable.
func (a *App) ReplaceState(ctx context.Context, snapshot models.TimerSnapshot) (*models.TimerSnapshot, error) {
	stored, err := a.repo.UpsertState(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	if a.publisher != nil {
		if err := a.publisher.PublishSnapshot(stored); err != nil {
			log.Error().Err(err).Msg("failed to broadcast timer state")
		}
	}

	return stored, nil
}
