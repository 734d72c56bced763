package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/blit"
)

// pipelineKey is every piece of pass state baked into a render pipeline.
type pipelineKey struct {
	shader   uint64
	vertex   uint64
	instance uint64
	blend    blit.BlendMode
	depth    blit.Compare
	cull     blit.Cull
	colors   [blit.MaxTargetAttachments]blit.TextureFormat
	count    int
	hasDepth bool
}

func newPipelineKey(s *Shader, m *Mesh, t *Target, pass *blit.RenderPass) pipelineKey {
	colors, n, hasDepth := t.formats()
	key := pipelineKey{
		shader:   s.id,
		vertex:   m.vertexFormat.Hash(),
		blend:    pass.Blend,
		depth:    pass.Depth,
		cull:     pass.Cull,
		colors:   colors,
		count:    n,
		hasDepth: hasDepth,
	}
	if pass.InstanceCount > 0 {
		key.instance = m.instanceFormat.Hash()
	}
	if !hasDepth {
		key.depth = blit.CompareNone
	}
	return key
}

// pipeline returns the cached pipeline for the pass state, creating it on
// first use.
func (b *Backend) pipeline(s *Shader, m *Mesh, t *Target, pass *blit.RenderPass) (hal.RenderPipeline, error) {
	key := newPipelineKey(s, m, t, pass)
	return b.pipelines.GetOrCreate(key, func() (hal.RenderPipeline, error) {
		blit.Logger().Debug("wgpu: pipeline cache miss", "shader", s.id, "cached", b.pipelines.Len())
		return b.createPipeline(s, m, key, pass.InstanceCount > 0)
	})
}

func (b *Backend) createPipeline(s *Shader, m *Mesh, key pipelineKey, instanced bool) (hal.RenderPipeline, error) {
	buffers := []gputypes.VertexBufferLayout{{
		ArrayStride: uint64(m.vertexFormat.Stride),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  b.vertexLayout(m.vertexFormat),
	}}
	if instanced {
		buffers = append(buffers, gputypes.VertexBufferLayout{
			ArrayStride: uint64(m.instanceFormat.Stride),
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes:  b.vertexLayout(m.instanceFormat),
		})
	}

	blend := blendState(key.blend)
	targets := make([]gputypes.ColorTargetState, 0, key.count)
	for _, f := range key.colors[:key.count] {
		format, _ := textureFormat(f)
		targets = append(targets, gputypes.ColorTargetState{
			Format:    format,
			Blend:     &blend,
			WriteMask: writeMask(key.blend.Mask),
		})
	}

	desc := &hal.RenderPipelineDescriptor{
		Label:  fmt.Sprintf("blit_pipeline_%d", key.shader),
		Layout: s.pipeLayout,
		Vertex: hal.VertexState{
			Module:     s.vertex,
			EntryPoint: "vs_main",
			Buffers:    buffers,
		},
		Fragment: &hal.FragmentState{
			Module:     s.fragment,
			EntryPoint: "fs_main",
			Targets:    targets,
		},
		Primitive:   primitiveState(key.cull),
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	}
	if key.hasDepth {
		desc.DepthStencil = depthStencilState(key.depth)
	}

	p, err := b.gpu.dev.CreateRenderPipeline(desc)
	if err != nil {
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}
	return p, nil
}

// vertexLayout returns the cached attribute list of a vertex format.
func (b *Backend) vertexLayout(f blit.VertexFormat) []gputypes.VertexAttribute {
	attrs, _ := b.layouts.GetOrCreate(f.Hash(), func() ([]gputypes.VertexAttribute, error) {
		return vertexAttributes(f), nil
	})
	return attrs
}

// sampler returns the cached sampler for s.
func (b *Backend) sampler(s blit.TextureSampler) (hal.Sampler, error) {
	if s == (blit.TextureSampler{}) {
		s = blit.DefaultSampler
	}
	return b.samplers.GetOrCreate(s, func() (hal.Sampler, error) {
		return b.gpu.dev.CreateSampler(samplerDescriptor(s))
	})
}
