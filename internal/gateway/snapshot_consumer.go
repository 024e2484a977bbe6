package gateway

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/models"
	"github.com/mcdev12/waypoint/internal/timerstate"
)

// SnapshotConsumer subscribes to timer board snapshots on NATS and fans
// them out to websocket clients. Snapshots are last-writer-wins full
// replacements, so plain core NATS delivery is enough; a missed message
// is superseded by the next one and the REST endpoint serves catch-up.
type SnapshotConsumer struct {
	connectionManager *ConnectionManager
	nc                *nats.Conn
	sub               *nats.Subscription
}

// NewSnapshotConsumer connects to NATS and returns an unstarted consumer
func NewSnapshotConsumer(cm *ConnectionManager, cfg timerstate.NatsConfig) (*SnapshotConsumer, error) {
	nc, err := nats.Connect(cfg.URL, timerstate.NatsOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	return &SnapshotConsumer{
		connectionManager: cm,
		nc:                nc,
	}, nil
}

// Start subscribes to the snapshot subject and blocks until ctx is done
func (sc *SnapshotConsumer) Start(ctx context.Context) error {
	sub, err := sc.nc.Subscribe(timerstate.SnapshotSubject, sc.handleMessage)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", timerstate.SnapshotSubject, err)
	}
	sc.sub = sub

	log.Info().Str("subject", timerstate.SnapshotSubject).Msg("snapshot consumer started")

	<-ctx.Done()
	log.Info().Msg("snapshot consumer shutting down")
	return sc.sub.Unsubscribe()
}

func (sc *SnapshotConsumer) handleMessage(msg *nats.Msg) {
	var snapshot models.TimerSnapshot
	if err := json.Unmarshal(msg.Data, &snapshot); err != nil {
		log.Error().Err(err).Str("subject", msg.Subject).Msg("failed to unmarshal snapshot")
		return
	}

	sc.connectionManager.Broadcast(NewTimerStateEvent(&snapshot))

	log.Debug().
		Int("categories", len(snapshot.Categories)).
		Int("widgets", len(snapshot.Widgets)).
		Msg("snapshot broadcasted to websocket clients")
}

// Stop closes the NATS connection
func (sc *SnapshotConsumer) Stop() {
	if sc.nc != nil {
		sc.nc.Close()
	}
}
