package input

import "time"

// handle addresses a registry slot. The zero handle is never valid.
type handle struct {
	index uint32
	gen   uint32
}

// ButtonHandle identifies a registered ButtonBinding.
type ButtonHandle struct{ h handle }

// AxisHandle identifies a registered AxisBinding.
type AxisHandle struct{ h handle }

// StickHandle identifies a registered StickBinding.
type StickHandle struct{ h handle }

// Handle is any registry handle.
type Handle interface {
	unregister(r *Registry) bool
}

func (h ButtonHandle) unregister(r *Registry) bool { return r.buttons.remove(h.h) }
func (h AxisHandle) unregister(r *Registry) bool   { return r.axes.remove(h.h) }
func (h StickHandle) unregister(r *Registry) bool  { return r.sticks.remove(h.h) }

type slot[T any] struct {
	gen   uint32
	value *T
}

// slots is a generation-counted table. Removing an entry bumps the slot
// generation, so handles to it stop resolving even after the slot is
// reused.
type slots[T any] struct {
	entries []slot[T]
	free    []uint32
	live    int
}

func (s *slots[T]) add(v *T) handle {
	if n := len(s.free); n > 0 {
		i := s.free[n-1]
		s.free = s.free[:n-1]
		s.entries[i].value = v
		s.live++
		return handle{index: i, gen: s.entries[i].gen}
	}
	s.entries = append(s.entries, slot[T]{gen: 1, value: v})
	s.live++
	return handle{index: uint32(len(s.entries) - 1), gen: 1}
}

func (s *slots[T]) get(h handle) (*T, bool) {
	if int(h.index) >= len(s.entries) {
		return nil, false
	}
	e := s.entries[h.index]
	if e.gen != h.gen || e.value == nil {
		return nil, false
	}
	return e.value, true
}

func (s *slots[T]) remove(h handle) bool {
	if _, ok := s.get(h); !ok {
		return false
	}
	e := &s.entries[h.index]
	e.value = nil
	e.gen++
	s.free = append(s.free, h.index)
	s.live--
	return true
}

func (s *slots[T]) each(fn func(*T)) {
	for _, e := range s.entries {
		if e.value != nil {
			fn(e.value)
		}
	}
}

// Registry owns the bindings updated every frame.
type Registry struct {
	buttons slots[ButtonBinding]
	axes    slots[AxisBinding]
	sticks  slots[StickBinding]
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// RegisterButton adds b. A nil binding registers an empty one.
func (r *Registry) RegisterButton(b *ButtonBinding) ButtonHandle {
	if b == nil {
		b = new(ButtonBinding)
	}
	return ButtonHandle{r.buttons.add(b)}
}

// RegisterAxis adds a.
func (r *Registry) RegisterAxis(a *AxisBinding) AxisHandle {
	if a == nil {
		a = new(AxisBinding)
	}
	return AxisHandle{r.axes.add(a)}
}

// RegisterStick adds s.
func (r *Registry) RegisterStick(s *StickBinding) StickHandle {
	if s == nil {
		s = new(StickBinding)
	}
	return StickHandle{r.sticks.add(s)}
}

// Button resolves h.
func (r *Registry) Button(h ButtonHandle) (*ButtonBinding, bool) { return r.buttons.get(h.h) }

// Axis resolves h.
func (r *Registry) Axis(h AxisHandle) (*AxisBinding, bool) { return r.axes.get(h.h) }

// Stick resolves h.
func (r *Registry) Stick(h StickHandle) (*StickBinding, bool) { return r.sticks.get(h.h) }

// Unregister removes the binding behind h. It reports false for stale or
// unknown handles.
func (r *Registry) Unregister(h Handle) bool {
	if h == nil {
		return false
	}
	return h.unregister(r)
}

// Update samples every live binding.
func (r *Registry) Update(s *State, now time.Duration) {
	r.buttons.each(func(b *ButtonBinding) { b.Update(s, now) })
	r.axes.each(func(a *AxisBinding) { a.Update(s, now) })
	r.sticks.each(func(st *StickBinding) { st.Update(s, now) })
}

// Len is the number of live bindings.
func (r *Registry) Len() int { return r.buttons.live + r.axes.live + r.sticks.live }

// Clear removes every binding. Existing handles become stale.
func (r *Registry) Clear() {
	clearSlots(&r.buttons)
	clearSlots(&r.axes)
	clearSlots(&r.sticks)
}

func clearSlots[T any](s *slots[T]) {
	for i := range s.entries {
		if s.entries[i].value != nil {
			s.remove(handle{index: uint32(i), gen: s.entries[i].gen})
		}
	}
}
