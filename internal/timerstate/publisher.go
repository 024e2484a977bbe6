package timerstate

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/waypoint/internal/models"
)

// SnapshotSubject is the NATS subject carrying timer board snapshots
const SnapshotSubject = "timer.state"

// NatsConfig holds settings for the snapshot publisher connection
type NatsConfig struct {
	URL           string
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultNatsConfig returns the default NATS connection settings
func DefaultNatsConfig() NatsConfig {
	return NatsConfig{
		URL:           nats.DefaultURL,
		MaxReconnects: -1, // Infinite
		ReconnectWait: 2 * time.Second,
	}
}

// NatsPublisher publishes timer board snapshots to NATS, from where every
// gateway instance fans them out to its websocket clients
type NatsPublisher struct {
	nc *nats.Conn
}

// NatsOptions returns the shared connection options with logging handlers
func NatsOptions(cfg NatsConfig) []nats.Option {
	return []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
	}
}

// NewNatsPublisher connects to NATS and returns a snapshot publisher
func NewNatsPublisher(cfg NatsConfig) (*NatsPublisher, error) {
	nc, err := nats.Connect(cfg.URL, NatsOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NatsPublisher{nc: nc}, nil
}

// PublishSnapshot sends the full board snapshot to the snapshot subject
func (p *NatsPublisher) PublishSnapshot(snapshot *models.TimerSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := p.nc.Publish(SnapshotSubject, data); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}

// Close drains the NATS connection
func (p *NatsPublisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
