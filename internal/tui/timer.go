package tui

import "time"

// timerState tracks the current state of the countdown.
type timerState int

const (
	timerStopped timerState = iota
	timerRunning
	timerPaused
)

// timerModel is a pausable countdown, kept separate from display.
type timerModel struct {
	now func() time.Time

	state    timerState
	total    time.Duration
	deadline time.Time
	left     time.Duration // remaining time, frozen while paused
}

func newTimerModel(now func() time.Time) timerModel {
	if now == nil {
		now = time.Now
	}
	return timerModel{now: now, state: timerStopped}
}

func (t *timerModel) start(d time.Duration) {
	t.state = timerRunning
	t.total = d
	t.left = d
	t.deadline = t.now().Add(d)
}

func (t *timerModel) stop() {
	t.state = timerStopped
	t.left = 0
	t.total = 0
}

func (t *timerModel) pause() {
	if t.state != timerRunning {
		return
	}
	t.left = t.deadline.Sub(t.now())
	t.state = timerPaused
}

func (t *timerModel) resume() {
	if t.state != timerPaused {
		return
	}
	t.deadline = t.now().Add(t.left)
	t.state = timerRunning
}

func (t *timerModel) toggle() {
	switch t.state {
	case timerRunning:
		t.pause()
	case timerPaused:
		t.resume()
	}
}

// tick refreshes the remaining time and reports whether the countdown has
// just reached zero. An expired timer stops itself.
func (t *timerModel) tick() bool {
	if t.state != timerRunning {
		return false
	}
	t.left = t.deadline.Sub(t.now())
	if t.left <= 0 {
		t.state = timerStopped
		t.left = 0
		return true
	}
	return false
}

func (t timerModel) running() bool {
	return t.state != timerStopped
}

func (t timerModel) paused() bool {
	return t.state == timerPaused
}

func (t timerModel) remaining() time.Duration {
	switch t.state {
	case timerRunning:
		if d := t.deadline.Sub(t.now()); d > 0 {
			return d
		}
		return 0
	case timerPaused:
		return t.left
	}
	return 0
}

// progress is the elapsed fraction of the current countdown.
func (t timerModel) progress() float64 {
	if t.total <= 0 || !t.running() {
		return 0
	}
	return 1 - float64(t.remaining())/float64(t.total)
}
