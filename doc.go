// Package blit provides a batched 2D renderer over a pluggable graphics
// backend.
//
// # Overview
//
// blit turns immediate-mode drawing calls into as few draw calls as
// possible. A [Batch] collects quads, triangles, shapes, sprites and text
// into a single mesh, splitting it into draw batches only when the texture,
// material, blend mode or scissor changes. Rendering a batch submits one
// [RenderPass] per draw batch to a [Backend].
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/blit"
//		"github.com/gogpu/blit/backend/software"
//	)
//
//	b := software.New()
//	if err := b.Init(320, 180); err != nil {
//		log.Fatal(err)
//	}
//	g := blit.NewGraphics(b)
//
//	batch := blit.NewBatch(g)
//	batch.Rect(blit.R(10, 10, 100, 50), blit.Hex("#ff4040"))
//	batch.Circle(blit.V2(160, 90), 32, 24, blit.White)
//
//	g.Clear(blit.Black)
//	batch.Render(g.Backbuffer())
//	batch.Clear()
//
// # Backends
//
// A [Backend] creates textures, targets, shaders and meshes and executes
// render passes. Two implementations ship with blit:
//   - backend/software: a CPU rasterizer, used by tests and headless tools
//   - backend/wgpu: a GPU backend on gogpu/wgpu with WGSL shaders
//
// Backends register themselves in package backend and are selected by name.
//
// # Coordinate System
//
// Uses standard 2D screen coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
//
// [Batch.Render] uses an orthographic projection covering the target in
// pixels. [Batch.RenderWith] takes any other projection.
//
// # Related Packages
//
//   - app: frame loop, fixed timestep and configuration
//   - input: keyboard, mouse and controller state with virtual bindings
//   - font: sprite font atlases rasterized from TrueType and OpenType data
package blit

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
