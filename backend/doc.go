// Package backend selects a blit.Backend by name.
//
// Backends register a factory from an init function, so importing a backend
// package for side effects is enough to make it available:
//
//	import (
//		_ "github.com/gogpu/blit/backend/software"
//		_ "github.com/gogpu/blit/backend/wgpu"
//	)
//
// # Backend Selection
//
// Use Default to get the best available backend, or Get to request a
// specific one by name:
//
//	b := backend.Get("software")
//
//	// or initialize the best one in a single step
//	b, err := backend.InitDefault(1280, 720)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Shutdown()
//
//	g := blit.NewGraphics(b)
//
// # Available Backends
//
//   - "wgpu": GPU rendering through gogpu/wgpu hal (preferred)
//   - "software": CPU triangle rasterizer (always available)
package backend
