package app

import "time"

// Timer accumulates real time and releases it in fixed update steps.
type Timer struct {
	// Step is the length of one update.
	Step time.Duration
	// MaxUpdates caps the steps one frame may run.
	MaxUpdates int

	accumulator time.Duration
}

// NewTimer returns a timer stepping framerate times a second.
func NewTimer(framerate, maxUpdates int) *Timer {
	return &Timer{
		Step:       time.Second / time.Duration(max(framerate, 1)),
		MaxUpdates: max(maxUpdates, 1),
	}
}

// Advance adds elapsed real time.
func (t *Timer) Advance(elapsed time.Duration) {
	if elapsed > 0 {
		t.accumulator += elapsed
	}
}

// Accumulated is the time not yet consumed by steps.
func (t *Timer) Accumulated() time.Duration { return t.accumulator }

// Ready reports whether at least one step is accumulated.
func (t *Timer) Ready() bool { return t.accumulator >= t.Step }

// Remaining is the time until the next step, or zero when Ready.
func (t *Timer) Remaining() time.Duration { return max(t.Step-t.accumulator, 0) }

// Frame runs the accumulated steps on clock and returns how many called
// update. Time beyond MaxUpdates steps is dropped. While clock is paused
// steps are swallowed; the step that ends the pause runs with only the
// overshoot as its delta.
func (t *Timer) Frame(clock *Time, update func()) int {
	if !t.Ready() {
		return 0
	}
	if limit := time.Duration(t.MaxUpdates) * t.Step; t.accumulator > limit {
		t.accumulator = limit
	}

	updates := 0
	for t.accumulator >= t.Step {
		t.accumulator -= t.Step
		delta := t.Step

		if clock.PauseTimer > 0 {
			clock.PauseTimer -= t.Step
			if clock.PauseTimer > -pauseEpsilon {
				continue
			}
			delta = -clock.PauseTimer
			clock.PauseTimer = 0
		}

		clock.advance(t.Step, delta)
		updates++
		if update != nil {
			update()
		}
	}
	return updates
}

// Reset drops the accumulated time.
func (t *Timer) Reset() { t.accumulator = 0 }
