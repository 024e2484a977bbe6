package models

import "encoding/json"

// Widget type discriminators
const (
	WidgetTypeCountdown = "countdown"
	WidgetTypeStopwatch = "stopwatch"
)

// TimerCategory is a column on the shared timer board
type TimerCategory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Order     int    `json:"order"`
	CreatedAt int64  `json:"createdAt"`
}

// TimerWidget is a countdown or stopwatch card on the timer board. Timer holds
// the type-specific sub-object; the server treats it as opaque and stores it
// verbatim so clients of different versions can round-trip each other's state.
type TimerWidget struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Name       string          `json:"name"`
	CategoryID string          `json:"categoryId"`
	Order      int             `json:"order"`
	Image      *string         `json:"image"`
	Timer      json.RawMessage `json:"timer"`
	CreatedAt  int64           `json:"createdAt"`
}

// TimerSnapshot is the whole timer board. It is persisted as a single shared
// document and broadcast to every connected session on mutation.
type TimerSnapshot struct {
	Categories []TimerCategory `json:"categories"`
	Widgets    []TimerWidget   `json:"widgets"`
}

// Normalize replaces nil slices with empty ones so the JSON form is always
// {"categories":[],"widgets":[]} rather than nulls.
func (s *TimerSnapshot) Normalize() {
	if s.Categories == nil {
		s.Categories = []TimerCategory{}
	}
	if s.Widgets == nil {
		s.Widgets = []TimerWidget{}
	}
}
