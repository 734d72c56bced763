package input

import (
	"time"

	"github.com/gogpu/blit"
)

// Key repeat timing used by Keyboard.Repeating.
const (
	RepeatDelay    = 350 * time.Millisecond
	RepeatInterval = 25 * time.Millisecond
)

// Keyboard is the keyboard state of one frame.
type Keyboard struct {
	Pressed   [KeyCount]bool
	Down      [KeyCount]bool
	Released  [KeyCount]bool
	Timestamp [KeyCount]time.Duration
	// Text is the text typed during the frame.
	Text string
}

// Ctrl reports whether either control key is down.
func (k *Keyboard) Ctrl() bool { return k.Down[KeyLeftControl] || k.Down[KeyRightControl] }

// Shift reports whether either shift key is down.
func (k *Keyboard) Shift() bool { return k.Down[KeyLeftShift] || k.Down[KeyRightShift] }

// Alt reports whether either alt key is down.
func (k *Keyboard) Alt() bool { return k.Down[KeyLeftAlt] || k.Down[KeyRightAlt] }

// Repeating reports whether key was pressed this frame, or has been held
// past RepeatDelay and crossed a RepeatInterval boundary during the frame
// ending at now.
func (k *Keyboard) Repeating(key Key, now, delta time.Duration) bool {
	if !key.valid() {
		return false
	}
	if k.Pressed[key] {
		return true
	}
	if !k.Down[key] {
		return false
	}
	held := now - k.Timestamp[key]
	if held <= RepeatDelay {
		return false
	}
	return held/RepeatInterval != (held-delta)/RepeatInterval
}

// Mouse is the mouse state of one frame.
type Mouse struct {
	Pressed   [MouseButtonCount]bool
	Down      [MouseButtonCount]bool
	Released  [MouseButtonCount]bool
	Timestamp [MouseButtonCount]time.Duration

	// Position is in window coordinates, DrawPosition in backbuffer
	// pixels and ScreenPosition in desktop coordinates.
	Position       blit.Vec2
	DrawPosition   blit.Vec2
	ScreenPosition blit.Vec2
	Wheel          blit.Point
}

// ControllerInfo describes a connected controller.
type ControllerInfo struct {
	Name    string
	Gamepad bool
	Buttons int
	Axes    int
	Vendor  uint16
	Product uint16
	Version uint16
}

// Controller is the state of one controller slot.
type Controller struct {
	Connected   bool
	Gamepad     bool
	Name        string
	ButtonCount int
	AxisCount   int
	Vendor      uint16
	Product     uint16
	Version     uint16

	Pressed         [ButtonCount]bool
	Down            [ButtonCount]bool
	Released        [ButtonCount]bool
	ButtonTimestamp [ButtonCount]time.Duration
	Axis            [AxisCount]float32
	AxisTimestamp   [AxisCount]time.Duration
}

func (c *Controller) hasButton(b Button) bool { return b >= 0 && int(b) < c.ButtonCount }
func (c *Controller) hasAxis(a Axis) bool     { return a >= 0 && int(a) < c.AxisCount }

// State is the complete input state of one frame.
type State struct {
	Keyboard    Keyboard
	Mouse       Mouse
	Controllers [MaxControllers]Controller

	// WindowSize and DrawSize convert mouse positions into backbuffer
	// pixels. They are set by the platform.
	WindowSize blit.Point
	DrawSize   blit.Point

	last [MaxControllers]Controller
}

// NewState returns an empty state.
func NewState() *State { return &State{} }

// BeginFrame starts a new frame: the current controllers become the
// previous frame's and the one-frame flags are cleared.
func (s *State) BeginFrame() {
	s.last = s.Controllers

	s.Keyboard.Pressed = [KeyCount]bool{}
	s.Keyboard.Released = [KeyCount]bool{}
	s.Keyboard.Text = ""
	s.Mouse.Pressed = [MouseButtonCount]bool{}
	s.Mouse.Released = [MouseButtonCount]bool{}
	s.Mouse.Wheel = blit.Point{}
	for i := range s.Controllers {
		c := &s.Controllers[i]
		c.Pressed = [ButtonCount]bool{}
		c.Released = [ButtonCount]bool{}
	}
}

// Previous returns the controller state of the previous frame.
func (s *State) Previous(index int) *Controller {
	if index < 0 || index >= MaxControllers {
		return nil
	}
	return &s.last[index]
}

// Controller returns the controller in slot index, or nil.
func (s *State) Controller(index int) *Controller {
	if index < 0 || index >= MaxControllers {
		return nil
	}
	return &s.Controllers[index]
}

// OnKeyDown records a key press at time at.
func (s *State) OnKeyDown(key Key, at time.Duration) {
	if !key.valid() {
		return
	}
	s.Keyboard.Down[key] = true
	s.Keyboard.Pressed[key] = true
	s.Keyboard.Timestamp[key] = at
}

// OnKeyUp records a key release.
func (s *State) OnKeyUp(key Key) {
	if !key.valid() {
		return
	}
	s.Keyboard.Down[key] = false
	s.Keyboard.Released[key] = true
}

// OnText appends typed text.
func (s *State) OnText(text string) { s.Keyboard.Text += text }

// OnMouseDown records a mouse button press at time at.
func (s *State) OnMouseDown(b MouseButton, at time.Duration) {
	if !b.valid() {
		return
	}
	s.Mouse.Down[b] = true
	s.Mouse.Pressed[b] = true
	s.Mouse.Timestamp[b] = at
}

// OnMouseUp records a mouse button release.
func (s *State) OnMouseUp(b MouseButton) {
	if !b.valid() {
		return
	}
	s.Mouse.Down[b] = false
	s.Mouse.Released[b] = true
}

// OnMouseMove records the pointer position in window and screen space.
func (s *State) OnMouseMove(pos, screen blit.Vec2) {
	s.Mouse.Position = pos
	s.Mouse.ScreenPosition = screen
	s.Mouse.DrawPosition = pos
	if s.WindowSize.X > 0 && s.WindowSize.Y > 0 && s.DrawSize.X > 0 && s.DrawSize.Y > 0 {
		s.Mouse.DrawPosition = blit.V2(
			pos.X/float32(s.WindowSize.X)*float32(s.DrawSize.X),
			pos.Y/float32(s.WindowSize.Y)*float32(s.DrawSize.Y),
		)
	}
}

// OnMouseWheel accumulates wheel movement.
func (s *State) OnMouseWheel(delta blit.Point) {
	s.Mouse.Wheel.X += delta.X
	s.Mouse.Wheel.Y += delta.Y
}

// OnControllerConnect resets slot index to a newly connected controller.
func (s *State) OnControllerConnect(index int, info ControllerInfo) {
	c := s.Controller(index)
	if c == nil {
		return
	}
	*c = Controller{
		Connected:   true,
		Gamepad:     info.Gamepad,
		Name:        info.Name,
		ButtonCount: min(max(info.Buttons, 0), ButtonCount),
		AxisCount:   min(max(info.Axes, 0), AxisCount),
		Vendor:      info.Vendor,
		Product:     info.Product,
		Version:     info.Version,
	}
}

// OnControllerDisconnect empties slot index.
func (s *State) OnControllerDisconnect(index int) {
	if c := s.Controller(index); c != nil {
		*c = Controller{}
	}
}

// OnControllerButtonDown records a controller button press at time at.
// Buttons beyond the controller's button count are ignored.
func (s *State) OnControllerButtonDown(index int, b Button, at time.Duration) {
	c := s.Controller(index)
	if c == nil || !c.hasButton(b) {
		return
	}
	c.Down[b] = true
	c.Pressed[b] = true
	c.ButtonTimestamp[b] = at
}

// OnControllerButtonUp records a controller button release.
func (s *State) OnControllerButtonUp(index int, b Button) {
	c := s.Controller(index)
	if c == nil || !c.hasButton(b) {
		return
	}
	c.Down[b] = false
	c.Released[b] = true
}

// OnControllerAxis records an axis value in [-1, 1] at time at.
func (s *State) OnControllerAxis(index int, a Axis, value float32, at time.Duration) {
	c := s.Controller(index)
	if c == nil || !c.hasAxis(a) {
		return
	}
	c.Axis[a] = value
	c.AxisTimestamp[a] = at
}
