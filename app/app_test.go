package app

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/backend"
	"github.com/gogpu/blit/backend/software"
	"github.com/gogpu/blit/input"
)

const step = time.Second / 60

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Name = "test"
	cfg.Width, cfg.Height = 32, 16
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Width != 1280 || cfg.Height != 720 || cfg.TargetFramerate != 60 || cfg.MaxUpdates != 5 {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(*Config) {}, true},
		{"no name", func(c *Config) { c.Name = "" }, false},
		{"zero width", func(c *Config) { c.Width = 0 }, false},
		{"negative height", func(c *Config) { c.Height = -1 }, false},
		{"zero framerate", func(c *Config) { c.TargetFramerate = 0 }, false},
		{"zero max updates", func(c *Config) { c.MaxUpdates = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	yml := write("game.yaml", "name: yaml game\nwidth: 320\nheight: 180\nrenderer: software\n")
	cfg, err := LoadConfig(yml)
	if err != nil {
		t.Fatalf("LoadConfig(yaml) error = %v", err)
	}
	if cfg.Name != "yaml game" || cfg.Width != 320 || cfg.Height != 180 || cfg.Renderer != "software" {
		t.Errorf("yaml config = %+v", cfg)
	}
	if cfg.TargetFramerate != DefaultTargetFramerate || cfg.MaxUpdates != DefaultMaxUpdates {
		t.Errorf("yaml config lost defaults: %+v", cfg)
	}

	tml := write("game.toml", "name = \"toml game\"\ntarget_framerate = 30\nmax_updates = 2\n")
	cfg, err = LoadConfig(tml)
	if err != nil {
		t.Fatalf("LoadConfig(toml) error = %v", err)
	}
	if cfg.Name != "toml game" || cfg.TargetFramerate != 30 || cfg.MaxUpdates != 2 || cfg.Width != DefaultWidth {
		t.Errorf("toml config = %+v", cfg)
	}

	if _, err := LoadConfig(write("game.ini", "name=x")); err == nil {
		t.Error("LoadConfig(.ini) error = nil")
	}
	if _, err := LoadConfig(write("bad.yml", "width: [")); err == nil {
		t.Error("LoadConfig(bad yaml) error = nil")
	}
	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadConfig(missing) error = nil")
	}
}

func TestTimerStep(t *testing.T) {
	tm := NewTimer(60, 5)
	if tm.Step != 16666666*time.Nanosecond {
		t.Errorf("Step = %v", tm.Step)
	}
	tm.Advance(step / 2)
	if tm.Ready() || tm.Remaining() != step-step/2 {
		t.Errorf("Ready() = %v, Remaining() = %v", tm.Ready(), tm.Remaining())
	}
	var clock Time
	if n := tm.Frame(&clock, nil); n != 0 {
		t.Errorf("Frame() before a step = %d", n)
	}
	tm.Advance(-time.Second)
	if tm.Accumulated() != step/2 {
		t.Error("negative elapsed time accumulated")
	}
}

func TestTimerCap(t *testing.T) {
	tm := NewTimer(60, 5)
	var clock Time
	tm.Advance(10 * step)
	calls := 0
	if n := tm.Frame(&clock, func() { calls++ }); n != 5 || calls != 5 {
		t.Errorf("Frame() = %d updates (%d calls), want 5", n, calls)
	}
	if tm.Accumulated() != 0 {
		t.Errorf("excess time kept: %v", tm.Accumulated())
	}
	if clock.Ticks != 5*step || clock.PreviousTicks != 4*step {
		t.Errorf("Ticks = %v, PreviousTicks = %v", clock.Ticks, clock.PreviousTicks)
	}
	if clock.Delta != float32(step.Seconds()) {
		t.Errorf("Delta = %v", clock.Delta)
	}
}

func TestTimerPause(t *testing.T) {
	t.Run("100ms", func(t *testing.T) {
		tm := NewTimer(60, 5)
		var clock Time
		clock.PauseFor(100 * time.Millisecond)

		tm.Advance(5 * step)
		if n := tm.Frame(&clock, nil); n != 0 {
			t.Fatalf("paused Frame() = %d updates", n)
		}
		tm.Advance(step)
		if n := tm.Frame(&clock, nil); n != 0 {
			t.Fatalf("sixth paused step ran an update")
		}
		tm.Advance(step)
		if n := tm.Frame(&clock, nil); n != 1 {
			t.Fatalf("Frame() after pause = %d updates, want 1", n)
		}
		partial := 16666662 * time.Nanosecond
		if clock.Seconds != partial.Seconds() || clock.Delta != float32(partial.Seconds()) {
			t.Errorf("partial step = %v s (delta %v), want %v", clock.Seconds, clock.Delta, partial.Seconds())
		}
		if clock.Ticks != step || clock.PauseTimer != 0 {
			t.Errorf("Ticks = %v, PauseTimer = %v", clock.Ticks, clock.PauseTimer)
		}
	})

	t.Run("16ms", func(t *testing.T) {
		tm := NewTimer(60, 5)
		var clock Time
		clock.PauseFor(16 * time.Millisecond)
		tm.Advance(step)
		if n := tm.Frame(&clock, nil); n != 1 {
			t.Fatalf("Frame() = %d updates, want 1", n)
		}
		partial := 666666 * time.Nanosecond
		if clock.Seconds != partial.Seconds() {
			t.Errorf("Seconds = %v, want %v", clock.Seconds, partial.Seconds())
		}
	})

	t.Run("within epsilon", func(t *testing.T) {
		tm := NewTimer(60, 5)
		var clock Time
		clock.PauseFor(step - 50*time.Microsecond)
		tm.Advance(2 * step)
		if n := tm.Frame(&clock, nil); n != 1 {
			t.Fatalf("Frame() = %d updates, want 1", n)
		}
		if clock.Delta != float32(step.Seconds()) {
			t.Errorf("Delta = %v, want a full step", clock.Delta)
		}
	})

	t.Run("shorter pause ignored", func(t *testing.T) {
		var clock Time
		clock.PauseFor(time.Second)
		clock.PauseFor(time.Millisecond)
		if clock.PauseTimer != time.Second {
			t.Errorf("PauseTimer = %v", clock.PauseTimer)
		}
	})
}

func TestTimeHelpers(t *testing.T) {
	clock := Time{Seconds: 1.01, Delta: 0.02}
	if !clock.OnInterval(500*time.Millisecond, 0) {
		t.Error("OnInterval missed the 1s boundary")
	}
	if clock.OnInterval(300*time.Millisecond, 0) {
		t.Error("OnInterval fired between boundaries")
	}
	if !clock.OnTime(time.Second) || clock.OnTime(2*time.Second) {
		t.Error("OnTime mismatch")
	}
	if clock.BetweenInterval(time.Second, 0) != true {
		t.Error("BetweenInterval(1s) at 1.01s = false")
	}
	if clock.BetweenInterval(time.Second, 500*time.Millisecond) {
		t.Error("BetweenInterval(1s, 0.5s) at 1.01s = true")
	}
	if OnInterval(1, 0.1, 0, 0) || BetweenInterval(1, 0, 0) {
		t.Error("zero interval must never fire")
	}
}

type counts struct {
	startup, update, render, shutdown int
}

func countingConfig(c *counts) Config {
	cfg := testConfig()
	cfg.OnStartup = func(*App) { c.startup++ }
	cfg.OnUpdate = func(*App) { c.update++ }
	cfg.OnRender = func(a *App) {
		c.render++
		a.Graphics.Clear(blit.Black)
	}
	cfg.OnShutdown = func(*App) { c.shutdown++ }
	return cfg
}

func TestRunHeadless(t *testing.T) {
	var c counts
	p := NewHeadless(WithMaxFrames(3), WithFrameTime(step))
	a := New(countingConfig(&c), p, software.New())
	if err := a.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if c != (counts{startup: 1, update: 3, render: 3, shutdown: 1}) {
		t.Errorf("callbacks = %+v", c)
	}
	if a.IsRunning() {
		t.Error("IsRunning() after Run")
	}
	if a.Time.Ticks != 3*step {
		t.Errorf("Ticks = %v, want %v", a.Time.Ticks, 3*step)
	}
}

func TestRunCatchUpCap(t *testing.T) {
	var c counts
	p := NewHeadless(WithMaxFrames(2), WithFrameTime(10*step))
	if err := Run(countingConfig(&c), p, software.New()); err != nil {
		t.Fatal(err)
	}
	// One step in the first frame, then ten steps' worth capped to five.
	if c.update != 6 || c.render != 2 {
		t.Errorf("updates = %d, renders = %d, want 6 and 2", c.update, c.render)
	}
}

func TestExitRequest(t *testing.T) {
	var c counts
	requests := 0
	cfg := countingConfig(&c)
	cfg.OnExitRequest = func(a *App) {
		requests++
		if requests == 3 {
			a.Exit()
		}
	}
	p := NewHeadless(WithMaxFrames(2), WithFrameTime(step))
	if err := Run(cfg, p, software.New()); err != nil {
		t.Fatal(err)
	}
	if requests != 3 || c.render != 4 {
		t.Errorf("requests = %d, renders = %d, want 3 and 4", requests, c.render)
	}
}

func TestRunInput(t *testing.T) {
	var jump input.ButtonHandle
	presses := 0
	cfg := testConfig()
	cfg.OnStartup = func(a *App) {
		jump = a.Bindings.RegisterButton(input.NewButton(input.KeySpace))
	}
	cfg.OnUpdate = func(a *App) {
		if b, ok := a.Bindings.Button(jump); ok && b.Pressed() {
			presses++
		}
	}
	backbufferWidth := 0
	cfg.OnRender = func(a *App) { backbufferWidth = a.Backbuffer().Width() }
	p := NewHeadless(WithMaxFrames(4), WithFrameTime(step), WithDrawScale(2),
		WithScript(func(frame int, s *input.State) {
			if frame == 1 {
				s.OnKeyDown(input.KeySpace, 0)
				s.OnMouseMove(blit.V2(4, 4), blit.V2(4, 4))
			}
		}))
	a := New(cfg, p, software.New())
	if err := a.Run(); err != nil {
		t.Fatal(err)
	}
	if presses != 1 {
		t.Errorf("presses = %d, want 1", presses)
	}
	if a.Input.Mouse.DrawPosition != blit.V2(8, 8) {
		t.Errorf("DrawPosition = %v, want (8, 8)", a.Input.Mouse.DrawPosition)
	}
	if w, h := a.DrawSize(); w != 64 || h != 32 {
		t.Errorf("DrawSize() = %dx%d", w, h)
	}
	if backbufferWidth != 64 {
		t.Errorf("backbuffer width = %d, want 64", backbufferWidth)
	}
}

func TestRunTwice(t *testing.T) {
	var nested error
	cfg := testConfig()
	cfg.OnStartup = func(a *App) { nested = a.Run() }
	if err := Run(cfg, NewHeadless(WithMaxFrames(1)), software.New()); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(nested, ErrRunning) {
		t.Errorf("nested Run() = %v, want ErrRunning", nested)
	}
}

func TestRunInvalidConfigPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, blit.ErrFatal) || !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("panic = %v, want ErrFatal wrapping ErrInvalidConfig", r)
		}
	}()
	_ = Run(Config{}, NewHeadless(), software.New())
}

func TestRunUnknownRenderer(t *testing.T) {
	cfg := testConfig()
	cfg.Renderer = "missing"
	err := Run(cfg, NewHeadless(WithMaxFrames(1)), nil)
	if !errors.Is(err, backend.ErrBackendNotAvailable) {
		t.Errorf("Run() = %v, want ErrBackendNotAvailable", err)
	}
}

func TestOnLog(t *testing.T) {
	orig := blit.Logger()
	var lines []string
	cfg := testConfig()
	cfg.OnLog = func(level slog.Level, msg string) {
		if level == slog.LevelInfo {
			lines = append(lines, msg)
		}
	}
	if err := Run(cfg, NewHeadless(WithMaxFrames(1)), software.New()); err != nil {
		t.Fatal(err)
	}
	if blit.Logger() != orig {
		t.Error("logger not restored after Run")
	}
	if len(lines) == 0 || !strings.HasPrefix(lines[0], "app: started") || !strings.Contains(lines[0], "name=test") {
		t.Errorf("log lines = %q", lines)
	}
}

func TestCallbackHandler(t *testing.T) {
	var got string
	l := slog.New(newCallbackHandler(func(_ slog.Level, msg string) { got = msg }))
	l.With("a", 1).WithGroup("g").Info("hello", "b", "x")
	if got != "hello a=1 g.b=x" {
		t.Errorf("message = %q", got)
	}
}
