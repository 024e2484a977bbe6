package gateway

import (
	"time"

	"github.com/mcdev12/waypoint/internal/models"
)

// EventType identifies the kind of message pushed to websocket clients
type EventType string

const (
	// EventTypeTimerState carries a full timer board snapshot. Clients
	// replace their local board with the payload verbatim.
	EventTypeTimerState EventType = "timer:state"
)

// Event is the wire format pushed to websocket clients
type Event struct {
	Type      EventType             `json:"type"`
	Timestamp time.Time             `json:"timestamp"`
	Data      *models.TimerSnapshot `json:"data"`
}

// NewTimerStateEvent wraps a snapshot in the websocket envelope
func NewTimerStateEvent(snapshot *models.TimerSnapshot) *Event {
	return &Event{
		Type:      EventTypeTimerState,
		Timestamp: time.Now(),
		Data:      snapshot,
	}
}
