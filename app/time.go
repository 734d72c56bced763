package app

import (
	"math"
	"time"
)

// pauseEpsilon is how far a pause may overshoot a step before the
// remainder runs as a partial step.
const pauseEpsilon = 100 * time.Microsecond

// Time is the game clock. It only moves during update steps.
type Time struct {
	// Ticks is the running game time; Seconds is the same in seconds,
	// reduced by partial steps after a pause.
	Ticks   time.Duration
	Seconds float64
	// Delta is the length of the current update step in seconds.
	Delta float32

	PreviousTicks   time.Duration
	PreviousSeconds float64

	// PauseTimer is the remaining pause.
	PauseTimer time.Duration
}

func (t *Time) advance(step, delta time.Duration) {
	t.PreviousTicks = t.Ticks
	t.Ticks += step
	t.PreviousSeconds = t.Seconds
	t.Seconds += delta.Seconds()
	t.Delta = float32(delta.Seconds())
}

// PauseFor pauses updates for d unless a longer pause is running.
func (t *Time) PauseFor(d time.Duration) {
	if d >= t.PauseTimer {
		t.PauseTimer = d
	}
}

// OnInterval reports whether the current step crossed a multiple of
// interval, shifted by offset.
func (t *Time) OnInterval(interval, offset time.Duration) bool {
	return OnInterval(t.Seconds, float64(t.Delta), interval.Seconds(), offset.Seconds())
}

// OnTime reports whether the current step crossed at.
func (t *Time) OnTime(at time.Duration) bool {
	s := at.Seconds()
	return t.Seconds >= s && t.Seconds-float64(t.Delta) < s
}

// BetweenInterval reports whether the clock is in the second half of a
// period of twice interval, shifted by offset. It toggles every interval.
func (t *Time) BetweenInterval(interval, offset time.Duration) bool {
	return BetweenInterval(t.Seconds, interval.Seconds(), offset.Seconds())
}

// OnInterval reports whether the step of length delta ending at now
// crossed a multiple of interval, shifted by offset. All values are in
// seconds.
func OnInterval(now, delta, interval, offset float64) bool {
	if interval <= 0 {
		return false
	}
	return math.Floor((now-offset-delta)/interval) < math.Floor((now-offset)/interval)
}

// BetweenInterval reports whether now lies in the second half of a period
// of twice interval, shifted by offset. All values are in seconds.
func BetweenInterval(now, interval, offset float64) bool {
	if interval <= 0 {
		return false
	}
	m := math.Mod(now-offset, interval*2)
	if m < 0 {
		m += interval * 2
	}
	return m >= interval
}
