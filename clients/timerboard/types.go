// Package timerboard is the client for the shared kanban timer board. The
// board is one document shared by every session; writers persist the full
// snapshot over REST and every subscriber replaces its local state with the
// broadcast copy verbatim (last-writer-wins, no merge).
package timerboard

import "encoding/json"

// Widget type discriminators
const (
	WidgetTypeCountdown = "countdown"
	WidgetTypeStopwatch = "stopwatch"
)

// Category is a column on the timer board
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Order     int    `json:"order"`
	CreatedAt int64  `json:"createdAt"`
}

// Widget is a countdown or stopwatch card. Timer stays raw so applying a
// broadcast snapshot preserves the sender's bytes exactly; use
// CountdownTimer/StopwatchTimer to read it.
type Widget struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Name       string          `json:"name"`
	CategoryID string          `json:"categoryId"`
	Order      int             `json:"order"`
	Image      *string         `json:"image"`
	Timer      json.RawMessage `json:"timer"`
	CreatedAt  int64           `json:"createdAt"`
}

// Snapshot is the whole board
type Snapshot struct {
	Categories []Category `json:"categories"`
	Widgets    []Widget   `json:"widgets"`
}

// CountdownTimer is the timer sub-object of a countdown widget.
// Durations and timestamps are Unix milliseconds.
type CountdownTimer struct {
	Duration int64 `json:"duration"`
	Active   bool  `json:"active"`
	EndTime  int64 `json:"endTime"`
}

// StopwatchTimer is the timer sub-object of a stopwatch widget
type StopwatchTimer struct {
	Running     bool  `json:"running"`
	StartedAt   int64 `json:"startedAt"`
	Accumulated int64 `json:"accumulated"`
}

// CountdownTimer decodes the widget's timer as a countdown
func (w Widget) CountdownTimer() (CountdownTimer, error) {
	var t CountdownTimer
	err := json.Unmarshal(w.Timer, &t)
	return t, err
}

// StopwatchTimer decodes the widget's timer as a stopwatch
func (w Widget) StopwatchTimer() (StopwatchTimer, error) {
	var t StopwatchTimer
	err := json.Unmarshal(w.Timer, &t)
	return t, err
}
