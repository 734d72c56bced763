package app

import (
	"time"

	"github.com/gogpu/blit/input"
)

// Platform is the window, clock and event source an App runs on.
type Platform interface {
	// Init opens the window described by cfg.
	Init(cfg Config) error
	Shutdown()
	// Ready shows the window once startup has finished.
	Ready()

	// Ticks is the monotonic time since Init.
	Ticks() time.Duration
	Sleep(d time.Duration)

	// Update feeds the events received since the last call into state.
	Update(state *input.State)
	// Present shows the rendered frame.
	Present()

	// Size is the window size; DrawSize is the backbuffer size in pixels.
	Size() (width, height int)
	DrawSize() (width, height int)
	// ShouldExit reports a close request.
	ShouldExit() bool
}
