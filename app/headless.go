package app

import (
	"time"

	"github.com/gogpu/blit/input"
)

// Headless is a Platform without a window. Its clock is simulated unless
// WithRealTime is set: Sleep advances it by the requested time and every
// Present by the configured frame time.
type Headless struct {
	width, height int
	scale         int
	realTime      bool
	frameTime     time.Duration
	maxFrames     int
	script        func(frame int, s *input.State)
	onPresent     func(frame int)

	start  time.Time
	now    time.Duration
	frames int
	exit   bool
}

// HeadlessOption configures a Headless platform.
type HeadlessOption func(*Headless)

// WithRealTime uses the wall clock and really sleeps.
func WithRealTime() HeadlessOption {
	return func(h *Headless) { h.realTime = true }
}

// WithFrameTime advances the simulated clock by d on every Present.
func WithFrameTime(d time.Duration) HeadlessOption {
	return func(h *Headless) { h.frameTime = d }
}

// WithMaxFrames requests exit after n presented frames.
func WithMaxFrames(n int) HeadlessOption {
	return func(h *Headless) { h.maxFrames = n }
}

// WithDrawScale multiplies the window size into the draw size.
func WithDrawScale(scale int) HeadlessOption {
	return func(h *Headless) { h.scale = max(scale, 1) }
}

// WithScript calls fn from every Update with the number of frames
// presented so far, so tests can inject input.
func WithScript(fn func(frame int, s *input.State)) HeadlessOption {
	return func(h *Headless) { h.script = fn }
}

// WithPresentHook calls fn after every presented frame.
func WithPresentHook(fn func(frame int)) HeadlessOption {
	return func(h *Headless) { h.onPresent = fn }
}

// NewHeadless returns a headless platform.
func NewHeadless(opts ...HeadlessOption) *Headless {
	h := &Headless{scale: 1}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Init implements Platform.
func (h *Headless) Init(cfg Config) error {
	h.width, h.height = cfg.Width, cfg.Height
	h.start = time.Now()
	h.now, h.frames, h.exit = 0, 0, false
	return nil
}

// Shutdown implements Platform.
func (h *Headless) Shutdown() {}

// Ready implements Platform.
func (h *Headless) Ready() {}

// Ticks implements Platform.
func (h *Headless) Ticks() time.Duration {
	if h.realTime {
		return time.Since(h.start)
	}
	return h.now
}

// Sleep implements Platform.
func (h *Headless) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	if h.realTime {
		time.Sleep(d)
		return
	}
	h.now += d
}

// Advance moves the simulated clock forward.
func (h *Headless) Advance(d time.Duration) { h.now += d }

// Update implements Platform.
func (h *Headless) Update(s *input.State) {
	if h.script != nil {
		h.script(h.frames, s)
	}
}

// Present implements Platform.
func (h *Headless) Present() {
	h.frames++
	if !h.realTime {
		h.now += h.frameTime
	}
	if h.onPresent != nil {
		h.onPresent(h.frames)
	}
	if h.maxFrames > 0 && h.frames >= h.maxFrames {
		h.exit = true
	}
}

// Frames is the number of presented frames.
func (h *Headless) Frames() int { return h.frames }

// RequestExit makes ShouldExit report true.
func (h *Headless) RequestExit() { h.exit = true }

// Size implements Platform.
func (h *Headless) Size() (int, int) { return h.width, h.height }

// DrawSize implements Platform.
func (h *Headless) DrawSize() (int, int) { return h.width * h.scale, h.height * h.scale }

// SetSize resizes the simulated window.
func (h *Headless) SetSize(width, height int) { h.width, h.height = width, height }

// ShouldExit implements Platform.
func (h *Headless) ShouldExit() bool { return h.exit }
