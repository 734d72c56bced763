// Package input holds per-frame keyboard, mouse and controller state and
// the virtual bindings built on top of it.
//
// A platform feeds raw events into a State between frames; the app calls
// BeginFrame before polling so pressed and released flags only last one
// frame. Bindings map several physical inputs onto one virtual button,
// axis or stick and are kept in a Registry:
//
//	reg := input.NewRegistry()
//	jump := reg.RegisterButton(input.NewButton(input.KeySpace, input.ButtonA))
//	...
//	reg.Update(state, now)
//	if b, ok := reg.Button(jump); ok && b.Pressed() {
//		b.ConsumePress()
//	}
//
// Nothing in this package is safe for concurrent use.
package input
