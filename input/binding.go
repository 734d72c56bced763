package input

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/gogpu/blit"
)

// Bind is a physical input that can be added to a ButtonBinding: a Key, a
// MouseButton, a controller Button or a Trigger.
type Bind interface {
	addTo(b *ButtonBinding)
}

func (k Key) addTo(b *ButtonBinding)         { b.Keys = append(b.Keys, k) }
func (m MouseButton) addTo(b *ButtonBinding) { b.MouseButtons = append(b.MouseButtons, m) }
func (c Button) addTo(b *ButtonBinding)      { b.Buttons = append(b.Buttons, c) }
func (t Trigger) addTo(b *ButtonBinding)     { b.Triggers = append(b.Triggers, t) }

// Trigger treats a controller axis as a button that is down once the axis
// passes Threshold in the Positive or negative direction.
type Trigger struct {
	Axis      Axis
	Threshold float32
	Positive  bool
}

func (t Trigger) down(v float32) bool {
	if (v > 0 && t.Positive) || (v < 0 && !t.Positive) {
		return math32.Abs(v) >= t.Threshold
	}
	return false
}

// value maps the axis past the threshold onto (0, 1].
func (t Trigger) value(v float32) float32 {
	if !t.down(v) {
		return 0
	}
	if t.Threshold >= 1 {
		return 1
	}
	return min(max((math32.Abs(v)-t.Threshold)/(1-t.Threshold), 0), 1)
}

// ButtonBinding is a virtual button driven by keys, mouse buttons and the
// buttons and triggers of controller Device.
//
// A press stays visible for PressBuffer after it happened, so input that
// arrives a few frames early is not lost. ConsumePress ends the buffer.
type ButtonBinding struct {
	PressBuffer   time.Duration
	ReleaseBuffer time.Duration
	// Device is the controller slot read by Buttons and Triggers.
	Device int

	Keys         []Key
	MouseButtons []MouseButton
	Buttons      []Button
	Triggers     []Trigger

	now             time.Duration
	pressed         bool
	released        bool
	down            bool
	value           float32
	timestamp       time.Duration
	lastPress       time.Duration
	lastRelease     time.Duration
	hasPress        bool
	hasRelease      bool
	pressConsumed   bool
	releaseConsumed bool
}

// NewButton returns a binding for binds.
func NewButton(binds ...Bind) *ButtonBinding {
	return new(ButtonBinding).Add(binds...)
}

// Add appends physical inputs to the binding.
func (b *ButtonBinding) Add(binds ...Bind) *ButtonBinding {
	for _, bind := range binds {
		bind.addTo(b)
	}
	return b
}

// AddKeys appends keys.
func (b *ButtonBinding) AddKeys(keys ...Key) *ButtonBinding {
	b.Keys = append(b.Keys, keys...)
	return b
}

// AddMouse appends mouse buttons.
func (b *ButtonBinding) AddMouse(buttons ...MouseButton) *ButtonBinding {
	b.MouseButtons = append(b.MouseButtons, buttons...)
	return b
}

// AddButtons appends controller buttons.
func (b *ButtonBinding) AddButtons(buttons ...Button) *ButtonBinding {
	b.Buttons = append(b.Buttons, buttons...)
	return b
}

// AddLeftTrigger binds the left trigger past threshold.
func (b *ButtonBinding) AddLeftTrigger(threshold float32) *ButtonBinding {
	b.Triggers = append(b.Triggers, Trigger{Axis: AxisLeftTrigger, Threshold: threshold, Positive: true})
	return b
}

// AddRightTrigger binds the right trigger past threshold.
func (b *ButtonBinding) AddRightTrigger(threshold float32) *ButtonBinding {
	b.Triggers = append(b.Triggers, Trigger{Axis: AxisRightTrigger, Threshold: threshold, Positive: true})
	return b
}

// SetControllerIndex selects the controller slot.
func (b *ButtonBinding) SetControllerIndex(index int) *ButtonBinding {
	b.Device = index
	return b
}

// Clear removes every physical input.
func (b *ButtonBinding) Clear() {
	b.Keys = b.Keys[:0]
	b.MouseButtons = b.MouseButtons[:0]
	b.Buttons = b.Buttons[:0]
	b.Triggers = b.Triggers[:0]
}

// Update samples state for the frame at time now.
func (b *ButtonBinding) Update(s *State, now time.Duration) {
	b.now = now
	b.pressConsumed = false
	b.releaseConsumed = false

	b.pressed = b.samplePressed(s)
	if b.pressed {
		b.timestamp = now
		b.lastPress = now
		b.hasPress = true
	}
	b.released = b.sampleReleased(s)
	if b.released {
		b.lastRelease = now
		b.hasRelease = true
	}
	b.down = b.sampleDown(s)
	b.value = b.sampleValue(s)
}

// Pressed reports a press this frame or within PressBuffer.
func (b *ButtonBinding) Pressed() bool {
	if b.pressConsumed {
		return false
	}
	if b.hasPress && b.now-b.lastPress <= b.PressBuffer {
		return true
	}
	return b.pressed
}

// Released reports a release this frame or within ReleaseBuffer.
func (b *ButtonBinding) Released() bool {
	if b.releaseConsumed {
		return false
	}
	if b.hasRelease && b.now-b.lastRelease <= b.ReleaseBuffer {
		return true
	}
	return b.released
}

// Down reports whether any bound input is held.
func (b *ButtonBinding) Down() bool { return b.down }

// Value is 1 while a digital input is held, otherwise the strongest
// trigger mapped onto [0, 1].
func (b *ButtonBinding) Value() float32 { return b.value }

// Sign is the sign of Value.
func (b *ButtonBinding) Sign() int { return sign(b.value) }

// Timestamp is the time of the last press.
func (b *ButtonBinding) Timestamp() time.Duration { return b.timestamp }

// ConsumePress hides the current press until the next one.
func (b *ButtonBinding) ConsumePress() {
	b.pressConsumed = true
	b.hasPress = false
}

// ConsumeRelease hides the current release until the next one.
func (b *ButtonBinding) ConsumeRelease() {
	b.releaseConsumed = true
	b.hasRelease = false
}

// controllers returns the current and previous frame state of Device.
func (b *ButtonBinding) controllers(s *State) (cur, last *Controller) {
	return s.Controller(b.Device), s.Previous(b.Device)
}

func (b *ButtonBinding) samplePressed(s *State) bool {
	for _, k := range b.Keys {
		if k.valid() && s.Keyboard.Pressed[k] {
			return true
		}
	}
	for _, m := range b.MouseButtons {
		if m.valid() && s.Mouse.Pressed[m] {
			return true
		}
	}
	cur, last := b.controllers(s)
	if cur == nil {
		return false
	}
	for _, c := range b.Buttons {
		if validButton(c) && cur.Pressed[c] {
			return true
		}
	}
	for _, t := range b.Triggers {
		if validAxis(t.Axis) && t.down(cur.Axis[t.Axis]) && !t.down(last.Axis[t.Axis]) {
			return true
		}
	}
	return false
}

func (b *ButtonBinding) sampleReleased(s *State) bool {
	for _, k := range b.Keys {
		if k.valid() && s.Keyboard.Released[k] {
			return true
		}
	}
	for _, m := range b.MouseButtons {
		if m.valid() && s.Mouse.Released[m] {
			return true
		}
	}
	cur, last := b.controllers(s)
	if cur == nil {
		return false
	}
	for _, c := range b.Buttons {
		if validButton(c) && cur.Released[c] {
			return true
		}
	}
	for _, t := range b.Triggers {
		if validAxis(t.Axis) && !t.down(cur.Axis[t.Axis]) && t.down(last.Axis[t.Axis]) {
			return true
		}
	}
	return false
}

func (b *ButtonBinding) sampleDown(s *State) bool {
	if b.digitalDown(s) {
		return true
	}
	cur, _ := b.controllers(s)
	if cur == nil {
		return false
	}
	for _, t := range b.Triggers {
		if validAxis(t.Axis) && t.down(cur.Axis[t.Axis]) {
			return true
		}
	}
	return false
}

func (b *ButtonBinding) sampleValue(s *State) float32 {
	if b.digitalDown(s) {
		return 1
	}
	cur, _ := b.controllers(s)
	if cur == nil {
		return 0
	}
	var highest float32
	for _, t := range b.Triggers {
		if validAxis(t.Axis) {
			highest = max(highest, t.value(cur.Axis[t.Axis]))
		}
	}
	return highest
}

func (b *ButtonBinding) digitalDown(s *State) bool {
	for _, k := range b.Keys {
		if k.valid() && s.Keyboard.Down[k] {
			return true
		}
	}
	for _, m := range b.MouseButtons {
		if m.valid() && s.Mouse.Down[m] {
			return true
		}
	}
	if cur := s.Controller(b.Device); cur != nil {
		for _, c := range b.Buttons {
			if validButton(c) && cur.Down[c] {
				return true
			}
		}
	}
	return false
}

func validButton(b Button) bool { return b >= 0 && b < ButtonCount }
func validAxis(a Axis) bool     { return a >= 0 && a < AxisCount }

func sign(v float32) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Overlap decides the value of an AxisBinding when both directions are
// held.
type Overlap int

const (
	// OverlapNewer takes the direction pressed last.
	OverlapNewer Overlap = iota
	// OverlapOlder takes the direction pressed first.
	OverlapOlder
	// OverlapCancel yields zero.
	OverlapCancel
)

// AxisBinding is a virtual axis made of two opposing buttons.
type AxisBinding struct {
	Negative ButtonBinding
	Positive ButtonBinding
	Overlap  Overlap
}

// AddAxis binds both directions of a controller axis past threshold.
func (a *AxisBinding) AddAxis(axis Axis, threshold float32) *AxisBinding {
	a.Negative.Add(Trigger{Axis: axis, Threshold: threshold})
	a.Positive.Add(Trigger{Axis: axis, Threshold: threshold, Positive: true})
	return a
}

// AddKeys binds a negative and a positive key.
func (a *AxisBinding) AddKeys(negative, positive Key) *AxisBinding {
	a.Negative.AddKeys(negative)
	a.Positive.AddKeys(positive)
	return a
}

// AddButtons binds a negative and a positive controller button.
func (a *AxisBinding) AddButtons(negative, positive Button) *AxisBinding {
	a.Negative.AddButtons(negative)
	a.Positive.AddButtons(positive)
	return a
}

// SetControllerIndex selects the controller slot of both directions.
func (a *AxisBinding) SetControllerIndex(index int) *AxisBinding {
	a.Negative.SetControllerIndex(index)
	a.Positive.SetControllerIndex(index)
	return a
}

// Update samples both directions.
func (a *AxisBinding) Update(s *State, now time.Duration) {
	a.Negative.Update(s, now)
	a.Positive.Update(s, now)
}

// Value is in [-1, 1].
func (a *AxisBinding) Value() float32 {
	neg, pos := a.Negative.Value(), a.Positive.Value()
	switch {
	case neg <= 0 && pos <= 0:
		return 0
	case pos <= 0:
		return -neg
	case neg <= 0:
		return pos
	}

	switch a.Overlap {
	case OverlapCancel:
		return 0
	case OverlapOlder:
		if a.Negative.Timestamp() < a.Positive.Timestamp() {
			return -neg
		}
		return pos
	default:
		if a.Negative.Timestamp() > a.Positive.Timestamp() {
			return -neg
		}
		return pos
	}
}

// Sign is -1, 0 or 1.
func (a *AxisBinding) Sign() int { return sign(a.Value()) }

// Pressed reports a press of either direction.
func (a *AxisBinding) Pressed() bool { return a.Negative.Pressed() || a.Positive.Pressed() }

// Released reports a release of either direction.
func (a *AxisBinding) Released() bool { return a.Negative.Released() || a.Positive.Released() }

// ConsumePress consumes the press of both directions.
func (a *AxisBinding) ConsumePress() {
	a.Negative.ConsumePress()
	a.Positive.ConsumePress()
}

// ConsumeRelease consumes the release of both directions.
func (a *AxisBinding) ConsumeRelease() {
	a.Negative.ConsumeRelease()
	a.Positive.ConsumeRelease()
}

// StickBinding is a virtual stick made of two axes.
type StickBinding struct {
	X AxisBinding
	Y AxisBinding
	// RoundThreshold zeroes values shorter than it.
	RoundThreshold float32
}

// AddDPad binds the controller d-pad. Up is negative Y.
func (s *StickBinding) AddDPad() *StickBinding {
	s.X.AddButtons(ButtonLeft, ButtonRight)
	s.Y.AddButtons(ButtonUp, ButtonDown)
	return s
}

// AddLeftStick binds the left stick past threshold.
func (s *StickBinding) AddLeftStick(threshold float32) *StickBinding {
	s.X.AddAxis(AxisLeftX, threshold)
	s.Y.AddAxis(AxisLeftY, threshold)
	return s
}

// AddRightStick binds the right stick past threshold.
func (s *StickBinding) AddRightStick(threshold float32) *StickBinding {
	s.X.AddAxis(AxisRightX, threshold)
	s.Y.AddAxis(AxisRightY, threshold)
	return s
}

// AddArrows binds the arrow keys.
func (s *StickBinding) AddArrows() *StickBinding {
	s.X.AddKeys(KeyLeft, KeyRight)
	s.Y.AddKeys(KeyUp, KeyDown)
	return s
}

// SetControllerIndex selects the controller slot of both axes.
func (s *StickBinding) SetControllerIndex(index int) *StickBinding {
	s.X.SetControllerIndex(index)
	s.Y.SetControllerIndex(index)
	return s
}

// Update samples both axes.
func (s *StickBinding) Update(st *State, now time.Duration) {
	s.X.Update(st, now)
	s.Y.Update(st, now)
}

// Value is the stick position, zero inside RoundThreshold.
func (s *StickBinding) Value() blit.Vec2 {
	v := blit.V2(s.X.Value(), s.Y.Value())
	if s.RoundThreshold > 0 && v.Length() < s.RoundThreshold {
		return blit.Vec2{}
	}
	return v
}

// Normalized is Value scaled to unit length, or zero.
func (s *StickBinding) Normalized() blit.Vec2 { return s.Value().Normal() }

// Sign is the per-axis sign of Value.
func (s *StickBinding) Sign() blit.Point {
	v := s.Value()
	return blit.Pt(sign(v.X), sign(v.Y))
}

// Pressed reports a press on either axis.
func (s *StickBinding) Pressed() bool { return s.X.Pressed() || s.Y.Pressed() }

// Released reports a release on either axis.
func (s *StickBinding) Released() bool { return s.X.Released() || s.Y.Released() }

// ConsumePress consumes the press of both axes.
func (s *StickBinding) ConsumePress() {
	s.X.ConsumePress()
	s.Y.ConsumePress()
}

// ConsumeRelease consumes the release of both axes.
func (s *StickBinding) ConsumeRelease() {
	s.X.ConsumeRelease()
	s.Y.ConsumeRelease()
}
