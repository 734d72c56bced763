package software

import (
	"fmt"
	"strings"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/internal/wgsl"
)

// Shader is a reflected WGSL program.
type Shader struct {
	data     blit.ShaderData
	uniforms []blit.UniformInfo

	// matrix is the name of the first mat4x4 value uniform, if any.
	matrix string
}

func newShader(data blit.ShaderData) (*Shader, error) {
	if !strings.Contains(data.Vertex, "fn vs_main") {
		return nil, fmt.Errorf("%w: vertex stage has no vs_main", blit.ErrInvalidShader)
	}
	if !strings.Contains(data.Fragment, "fn fs_main") {
		return nil, fmt.Errorf("%w: fragment stage has no fs_main", blit.ErrInvalidShader)
	}
	mod, err := wgsl.Reflect(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", blit.ErrInvalidShader, err)
	}

	s := &Shader{data: data, uniforms: mod.Uniforms}
	for _, u := range mod.Uniforms {
		if u.Type == blit.UniformMat4x4 && u.ArrayLength == 1 {
			s.matrix = u.Name
			break
		}
	}
	return s, nil
}

// Uniforms returns the reflected uniforms.
func (s *Shader) Uniforms() []blit.UniformInfo { return s.uniforms }

// Data returns the source.
func (s *Shader) Data() blit.ShaderData { return s.data }
