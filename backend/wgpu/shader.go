package wgpu

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/internal/wgsl"
)

// Shader is a compiled WGSL program with its binding layout.
type Shader struct {
	id   uint64
	data blit.ShaderData
	mod  *wgsl.Module

	vertex   hal.ShaderModule
	fragment hal.ShaderModule

	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
}

func newShader(gpu *device, id uint64, data blit.ShaderData) (*Shader, error) {
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
	for _, b := range mod.Bindings {
		if b.Group != 0 {
			return nil, fmt.Errorf("%w: %s uses bind group %d, only group 0 is supported",
				blit.ErrInvalidShader, b.Name, b.Group)
		}
	}

	s := &Shader{id: id, data: data, mod: mod}
	if s.vertex, err = compileModule(gpu, fmt.Sprintf("blit_shader_%d_vs", id), data.Vertex); err != nil {
		return nil, err
	}
	if data.Fragment == data.Vertex {
		s.fragment = s.vertex
	} else if s.fragment, err = compileModule(gpu, fmt.Sprintf("blit_shader_%d_fs", id), data.Fragment); err != nil {
		s.destroy(gpu)
		return nil, err
	}

	s.bindLayout, err = gpu.dev.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   fmt.Sprintf("blit_shader_%d_bind_layout", id),
		Entries: layoutEntries(mod.Bindings),
	})
	if err != nil {
		s.destroy(gpu)
		return nil, fmt.Errorf("create bind group layout: %w", err)
	}
	s.pipeLayout, err = gpu.dev.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            fmt.Sprintf("blit_shader_%d_pipe_layout", id),
		BindGroupLayouts: []hal.BindGroupLayout{s.bindLayout},
	})
	if err != nil {
		s.destroy(gpu)
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}

	blit.Logger().Debug("wgpu: shader created", "id", id, "bindings", len(mod.Bindings))
	return s, nil
}

// compileModule compiles WGSL to SPIR-V and creates a shader module.
func compileModule(gpu *device, label, src string) (hal.ShaderModule, error) {
	spirv, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", blit.ErrInvalidShader, err)
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	module, err := gpu.dev.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label,
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module: %w", err)
	}
	return module, nil
}

// layoutEntries describes the reflected bindings for a bind group layout.
func layoutEntries(bindings []wgsl.Binding) []gputypes.BindGroupLayoutEntry {
	entries := make([]gputypes.BindGroupLayoutEntry, 0, len(bindings))
	for _, b := range bindings {
		e := gputypes.BindGroupLayoutEntry{Binding: uint32(b.Binding)}
		if b.Stages&blit.StageVertex != 0 {
			e.Visibility |= gputypes.ShaderStageVertex
		}
		if b.Stages&blit.StageFragment != 0 {
			e.Visibility |= gputypes.ShaderStageFragment
		}
		switch b.Kind {
		case wgsl.KindUniform:
			e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
		case wgsl.KindTexture:
			e.Texture = &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			}
		case wgsl.KindSampler:
			e.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
		}
		entries = append(entries, e)
	}
	return entries
}

// Uniforms returns the reflected uniforms.
func (s *Shader) Uniforms() []blit.UniformInfo { return s.mod.Uniforms }

// Data returns the source.
func (s *Shader) Data() blit.ShaderData { return s.data }

func (s *Shader) destroy(gpu *device) {
	if s.pipeLayout != nil {
		gpu.dev.DestroyPipelineLayout(s.pipeLayout)
	}
	if s.bindLayout != nil {
		gpu.dev.DestroyBindGroupLayout(s.bindLayout)
	}
	if s.fragment != nil && s.fragment != s.vertex {
		gpu.dev.DestroyShaderModule(s.fragment)
	}
	if s.vertex != nil {
		gpu.dev.DestroyShaderModule(s.vertex)
	}
}
