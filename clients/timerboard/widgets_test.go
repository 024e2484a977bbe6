package timerboard

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestCountdownRemaining(t *testing.T) {
	clock := clockwork.NewFakeClock()
	wc := NewWidgetClock(clock)

	timer := CountdownTimer{Duration: (5 * time.Minute).Milliseconds()}
	if got := wc.Remaining(timer); got != 5*time.Minute {
		t.Errorf("inactive Remaining = %v, want 5m", got)
	}

	timer = wc.StartCountdown(timer)
	if !timer.Active {
		t.Fatal("StartCountdown did not activate")
	}

	clock.Advance(2 * time.Minute)
	if got := wc.Remaining(timer); got != 3*time.Minute {
		t.Errorf("Remaining after 2m = %v, want 3m", got)
	}
	if wc.Expired(timer) {
		t.Error("timer expired early")
	}

	clock.Advance(4 * time.Minute)
	if got := wc.Remaining(timer); got != 0 {
		t.Errorf("Remaining past end = %v, want 0", got)
	}
	if !wc.Expired(timer) {
		t.Error("timer should be expired")
	}

	timer = wc.StopCountdown(timer)
	if got := wc.Remaining(timer); got != 5*time.Minute {
		t.Errorf("Remaining after stop = %v, want reset to 5m", got)
	}
}

func TestStopwatchElapsed(t *testing.T) {
	clock := clockwork.NewFakeClock()
	wc := NewWidgetClock(clock)

	var timer StopwatchTimer
	if got := wc.Elapsed(timer); got != 0 {
		t.Errorf("fresh Elapsed = %v, want 0", got)
	}

	timer = wc.StartStopwatch(timer)
	clock.Advance(90 * time.Second)
	if got := wc.Elapsed(timer); got != 90*time.Second {
		t.Errorf("running Elapsed = %v, want 90s", got)
	}

	timer = wc.StopStopwatch(timer)
	clock.Advance(time.Hour)
	if got := wc.Elapsed(timer); got != 90*time.Second {
		t.Errorf("stopped Elapsed = %v, want frozen 90s", got)
	}

	// Resume accumulates on top of the previous segment
	timer = wc.StartStopwatch(timer)
	clock.Advance(30 * time.Second)
	if got := wc.Elapsed(timer); got != 2*time.Minute {
		t.Errorf("resumed Elapsed = %v, want 2m", got)
	}
}

func TestStartStopwatchIdempotentWhileRunning(t *testing.T) {
	clock := clockwork.NewFakeClock()
	wc := NewWidgetClock(clock)

	timer := wc.StartStopwatch(StopwatchTimer{})
	clock.Advance(time.Minute)
	again := wc.StartStopwatch(timer)
	if again != timer {
		t.Errorf("restart while running changed state: %+v vs %+v", again, timer)
	}
}
