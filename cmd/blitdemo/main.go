// Command blitdemo renders a few frames of sprite-batch drawing headless
// and saves the last frame as an image.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/app"
	"github.com/gogpu/blit/backend"
	"github.com/gogpu/blit/backend/software"
	_ "github.com/gogpu/blit/backend/wgpu"
	"github.com/gogpu/blit/font"
	"github.com/gogpu/blit/input"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "blitdemo:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "config file (.yaml, .yml or .toml)")
		renderer   = flag.String("backend", backend.NameSoftware, "backend: "+strings.Join(backend.Available(), ", "))
		width      = flag.Int("width", 320, "backbuffer width")
		height     = flag.Int("height", 180, "backbuffer height")
		frames     = flag.Int("frames", 60, "frames to render")
		output     = flag.String("out", "blitdemo.png", "output image")
		scale      = flag.Int("scale", 1, "nearest-neighbor upscale of the saved image")
		fontSize   = flag.Float64("font", 16, "font size in pixels")
		verbosity  = flag.String("v", "warn", "log level: debug, info, warn, error")
	)
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*verbosity)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	blit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg := app.DefaultConfig()
	cfg.Name = "blitdemo"
	cfg.Width, cfg.Height = *width, *height
	cfg.Renderer = *renderer
	if *configPath != "" {
		loaded, err := app.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		if cfg.Name == "" {
			cfg.Name = "blitdemo"
		}
	}

	d := &demo{fontSize: float32(*fontSize)}
	cfg.OnStartup = d.startup
	cfg.OnUpdate = d.update
	cfg.OnRender = d.render
	cfg.OnShutdown = func(*app.App) { d.batch.Dispose() }

	var bar *progressbar.ProgressBar
	if term.IsTerminal(int(os.Stderr.Fd())) {
		bar = progressbar.Default(int64(*frames), "rendering")
	}
	platform := app.NewHeadless(
		app.WithMaxFrames(*frames),
		app.WithFrameTime(time.Second/time.Duration(max(cfg.TargetFramerate, 1))),
		app.WithScript(d.script),
		app.WithPresentHook(func(frame int) {
			if bar != nil {
				_ = bar.Add(1)
			}
			if frame == *frames {
				d.capture()
			}
		}),
	)

	if err := app.Run(cfg, platform, nil); err != nil {
		return err
	}
	if bar != nil {
		_ = bar.Finish()
	}
	if d.err != nil {
		return d.err
	}
	if d.frame == nil {
		return errors.New("backend has no readable backbuffer; nothing saved")
	}

	img := image.Image(d.frame)
	if *scale > 1 {
		b := d.frame.Bounds()
		img = imaging.Resize(d.frame, b.Dx()**scale, b.Dy()**scale, imaging.NearestNeighbor)
	}
	if err := imaging.Save(img, *output); err != nil {
		return fmt.Errorf("save %s: %w", *output, err)
	}
	blit.Logger().Info("blitdemo: saved", "path", *output, "frames", platform.Frames())
	return nil
}

type demo struct {
	fontSize float32
	app      *app.App
	batch    *blit.Batch
	font     *blit.SpriteFont
	spin     input.ButtonHandle
	angle    float32
	speed    float32
	frame    *image.RGBA
	err      error
}

func (d *demo) startup(a *app.App) {
	d.app = a
	d.batch = blit.NewBatch(a.Graphics)
	d.speed = 1

	sf, atlas, err := font.Default(d.fontSize)
	if err != nil {
		d.err = fmt.Errorf("font: %w", err)
		a.Exit()
		return
	}
	font.Upload(a.Graphics, sf, atlas)
	d.font = sf

	d.spin = a.Bindings.RegisterButton(input.NewButton(input.KeySpace, input.MouseLeft, input.ButtonA))
}

// script presses space halfway through the run so the binding path is
// exercised without a window.
func (d *demo) script(frame int, s *input.State) {
	if frame == 30 {
		s.OnKeyDown(input.KeySpace, d.app.Time.Ticks)
	}
	if frame == 31 {
		s.OnKeyUp(input.KeySpace)
	}
}

func (d *demo) update(a *app.App) {
	if b, ok := a.Bindings.Button(d.spin); ok && b.Pressed() {
		d.speed = -d.speed
		b.ConsumePress()
	}
	d.angle += d.speed * a.Time.Delta
}

func (d *demo) render(a *app.App) {
	w, h := a.DrawSize()
	center := blit.V2(float32(w)/2, float32(h)/2)
	b := d.batch

	a.Graphics.Clear(blit.Hex("#1d2b53"))
	b.Clear()

	b.RectRounded(blit.R(8, 8, float32(w)-16, float32(h)-16), 12, 6, blit.Hex("#29366f"))
	b.PushMatrix(blit.Translate(center.X, center.Y).Multiply(blit.Rotate(d.angle)), false)
	b.Rect(blit.R(-24, -24, 48, 48), blit.Hex("#ff004d"))
	b.PopMatrix()
	b.Circle(center, 10, 24, blit.Hex("#ffec27"))
	b.CircleLine(center, 40, 2, 32, blit.White)

	b.PushBlend(blit.BlendAdditive)
	b.Circle(center.Add(blit.V2(30, 0)), 18, 24, blit.RGBA(0, 80, 160, 255))
	b.PopBlend()

	if d.font != nil {
		label := fmt.Sprintf("blit %s  t=%.2fs", a.Graphics.Renderer(), a.Time.Seconds)
		b.StrAligned(d.font, label, blit.V2(center.X, float32(h)-16), blit.AlignBottom, d.font.Size, blit.White)
		b.Str(d.font, "Ångström AV To", blit.V2(16, 16), blit.Hex("#c2c3c7"))
	}
	b.Render(a.Backbuffer())
}

// capture copies the backbuffer when the backend keeps it in memory.
func (d *demo) capture() {
	if t, ok := d.app.Backbuffer().(*software.Target); ok {
		d.frame = t.Image()
	}
}
