package wgsl

import (
	_ "embed"

	"github.com/gogpu/blit"
)

//go:embed shaders/sprite.wgsl
var spriteShaderSource string

// SpriteShader returns the default batch shader. Both entry points live
// in one module, so the same source serves both stages.
func SpriteShader() blit.ShaderData {
	return blit.ShaderData{Vertex: spriteShaderSource, Fragment: spriteShaderSource}
}
