// Package software implements blit.Backend on the CPU.
//
// The backend rasterizes indexed triangles into RGBA targets. It executes
// the default sprite shader in Go: vertices are transformed by the
// material's first mat4x4 uniform, mapped through the viewport, clipped by
// the scissor and shaded with the mult, wash and fill terms before the
// pass blend mode combines them with the target. Custom WGSL shaders are
// reflected and accepted, but they are shaded as the sprite shader.
//
// Importing the package registers it as "software":
//
//	import _ "github.com/gogpu/blit/backend/software"
//
// Textures and targets expose their pixels through Image, which is how
// tests and headless tools read results back.
package software
