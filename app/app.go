package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/backend"
	"github.com/gogpu/blit/input"
)

// ErrRunning is returned when Run is called on an app that is running.
var ErrRunning = errors.New("app: already running")

// App is the state shared with the callbacks of one run.
type App struct {
	Config   Config
	Graphics *blit.Graphics
	Input    *input.State
	Bindings *input.Registry
	Time     Time
	Timer    *Timer

	platform Platform
	backend  blit.Backend
	last     time.Duration
	running  bool
	exiting  bool
}

// New prepares an app. A nil backend is resolved from cfg.Renderer, or
// the default registered backend when that is empty.
func New(cfg Config, p Platform, b blit.Backend) *App {
	return &App{Config: cfg, platform: p, backend: b}
}

// Run validates cfg and runs an app until it exits. An invalid config is
// a programming error and panics.
func Run(cfg Config, p Platform, b blit.Backend) error {
	return New(cfg, p, b).Run()
}

// Run runs the loop until Exit is called or the platform asks to close.
func (a *App) Run() error {
	if a.running {
		return ErrRunning
	}
	if err := a.Config.Validate(); err != nil {
		panic(fmt.Errorf("%w: %w", blit.ErrFatal, err))
	}
	if a.platform == nil {
		panic(fmt.Errorf("%w: app: nil platform", blit.ErrFatal))
	}

	if a.Config.OnLog != nil {
		prev := blit.Logger()
		blit.SetLogger(slog.New(newCallbackHandler(a.Config.OnLog)))
		defer blit.SetLogger(prev)
	}

	if err := a.platform.Init(a.Config); err != nil {
		return fmt.Errorf("app: platform init: %w", err)
	}
	b, err := a.resolveBackend()
	if err != nil {
		a.platform.Shutdown()
		return err
	}
	w, h := a.platform.DrawSize()
	if err := b.Init(w, h); err != nil {
		a.platform.Shutdown()
		return fmt.Errorf("app: backend %s init: %w", a.Config.Renderer, err)
	}
	a.backend = b
	a.Graphics = blit.NewGraphics(b)
	a.Input = input.NewState()
	a.Bindings = input.NewRegistry()
	a.Time = Time{}
	a.Timer = NewTimer(a.Config.TargetFramerate, a.Config.MaxUpdates)
	a.running, a.exiting = true, false
	blit.Logger().Info("app: started", "name", a.Config.Name, "renderer", a.Graphics.Renderer(),
		"width", w, "height", h)

	a.pollInput()
	if a.Config.OnStartup != nil {
		a.Config.OnStartup(a)
	}
	a.last = a.platform.Ticks()
	a.platform.Ready()

	for !a.exiting {
		a.iterate()
	}

	if a.Config.OnShutdown != nil {
		a.Config.OnShutdown(a)
	}
	b.Shutdown()
	a.platform.Shutdown()
	a.running, a.exiting = false, false
	blit.Logger().Info("app: stopped", "name", a.Config.Name, "ticks", a.Time.Ticks)
	return nil
}

func (a *App) resolveBackend() (blit.Backend, error) {
	if a.backend != nil {
		return a.backend, nil
	}
	if a.Config.Renderer != "" {
		if b := backend.Get(a.Config.Renderer); b != nil {
			return b, nil
		}
		return nil, fmt.Errorf("%w: %s", backend.ErrBackendNotAvailable, a.Config.Renderer)
	}
	if b := backend.Default(); b != nil {
		return b, nil
	}
	return nil, backend.ErrBackendNotAvailable
}

// iterate runs one frame: the pending update steps, then one render.
func (a *App) iterate() {
	a.accumulate()
	for !a.Timer.Ready() {
		a.platform.Sleep(a.Timer.Remaining())
		a.accumulate()
	}

	a.Timer.Frame(&a.Time, func() {
		a.pollInput()
		a.Bindings.Update(a.Input, a.Time.Ticks)
		if a.Config.OnUpdate != nil {
			a.Config.OnUpdate(a)
		}
	})

	w, h := a.platform.DrawSize()
	a.Graphics.BeforeRender(w, h)
	if a.Config.OnRender != nil {
		a.Config.OnRender(a)
	}
	a.Graphics.AfterRender()
	a.platform.Present()

	if a.platform.ShouldExit() {
		if a.Config.OnExitRequest != nil {
			a.Config.OnExitRequest(a)
		} else {
			a.Exit()
		}
	}
}

func (a *App) accumulate() {
	now := a.platform.Ticks()
	a.Timer.Advance(now - a.last)
	a.last = now
}

func (a *App) pollInput() {
	a.Input.BeginFrame()
	w, h := a.platform.Size()
	dw, dh := a.platform.DrawSize()
	a.Input.WindowSize = blit.Pt(w, h)
	a.Input.DrawSize = blit.Pt(dw, dh)
	a.platform.Update(a.Input)
}

// Exit stops the loop after the current frame.
func (a *App) Exit() {
	if a.running {
		a.exiting = true
	}
}

// IsRunning reports whether the loop is running.
func (a *App) IsRunning() bool { return a.running }

// Backbuffer is the backend's backbuffer target.
func (a *App) Backbuffer() blit.Target { return a.Graphics.Backbuffer() }

// Size is the window size.
func (a *App) Size() (int, int) { return a.platform.Size() }

// DrawSize is the backbuffer size in pixels.
func (a *App) DrawSize() (int, int) { return a.platform.DrawSize() }

// Platform is the platform the app runs on.
func (a *App) Platform() Platform { return a.platform }
