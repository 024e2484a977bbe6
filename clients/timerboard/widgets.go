package timerboard

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// WidgetClock computes display values for timer widgets against an injected
// clock so the math is testable without sleeping
type WidgetClock struct {
	clock clockwork.Clock
}

// NewWidgetClock creates a widget clock. Pass clockwork.NewRealClock() in
// production.
func NewWidgetClock(clock clockwork.Clock) *WidgetClock {
	return &WidgetClock{clock: clock}
}

// Remaining returns the time left on a countdown. An inactive countdown
// reports its configured duration; an expired one reports zero.
func (wc *WidgetClock) Remaining(t CountdownTimer) time.Duration {
	if !t.Active {
		return time.Duration(t.Duration) * time.Millisecond
	}
	remaining := t.EndTime - wc.clock.Now().UnixMilli()
	if remaining < 0 {
		remaining = 0
	}
	return time.Duration(remaining) * time.Millisecond
}

// Expired reports whether an active countdown has reached zero
func (wc *WidgetClock) Expired(t CountdownTimer) bool {
	return t.Active && wc.clock.Now().UnixMilli() >= t.EndTime
}

// Elapsed returns the total time a stopwatch has run. A stopped stopwatch
// reports its accumulated duration only.
func (wc *WidgetClock) Elapsed(t StopwatchTimer) time.Duration {
	elapsed := t.Accumulated
	if t.Running {
		elapsed += wc.clock.Now().UnixMilli() - t.StartedAt
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return time.Duration(elapsed) * time.Millisecond
}

// StartCountdown activates a countdown, stamping its end time from the
// configured duration
func (wc *WidgetClock) StartCountdown(t CountdownTimer) CountdownTimer {
	t.Active = true
	t.EndTime = wc.clock.Now().UnixMilli() + t.Duration
	return t
}

// StopCountdown deactivates a countdown, preserving its configured duration
func (wc *WidgetClock) StopCountdown(t CountdownTimer) CountdownTimer {
	t.Active = false
	t.EndTime = 0
	return t
}

// StartStopwatch starts or resumes a stopwatch
func (wc *WidgetClock) StartStopwatch(t StopwatchTimer) StopwatchTimer {
	if t.Running {
		return t
	}
	t.Running = true
	t.StartedAt = wc.clock.Now().UnixMilli()
	return t
}

// StopStopwatch pauses a stopwatch, folding the running segment into the
// accumulated duration
func (wc *WidgetClock) StopStopwatch(t StopwatchTimer) StopwatchTimer {
	if !t.Running {
		return t
	}
	t.Accumulated += wc.clock.Now().UnixMilli() - t.StartedAt
	t.Running = false
	t.StartedAt = 0
	return t
}
