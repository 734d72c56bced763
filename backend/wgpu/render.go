package wgpu

import (
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/internal/wgsl"
)

// drawResources are the per-draw objects released after submission.
type drawResources struct {
	uniforms  []hal.Buffer
	bindGroup hal.BindGroup
}

func (r *drawResources) release(gpu *device) {
	if r.bindGroup != nil {
		gpu.dev.DestroyBindGroup(r.bindGroup)
	}
	for _, buf := range r.uniforms {
		gpu.dev.DestroyBuffer(buf)
	}
}

func (b *Backend) render(pass *blit.RenderPass) error {
	target, ok := pass.Target.(*Target)
	if !ok {
		return fmt.Errorf("render target %T is not a wgpu target", pass.Target)
	}
	mesh, ok := pass.Mesh.(*Mesh)
	if !ok {
		return fmt.Errorf("mesh %T is not a wgpu mesh", pass.Mesh)
	}
	shader, ok := pass.Material.Shader().(*Shader)
	if !ok {
		return fmt.Errorf("shader %T is not a wgpu shader", pass.Material.Shader())
	}
	if mesh.vertexCount == 0 || mesh.vertices.buf == nil || mesh.indices.buf == nil {
		return nil
	}

	viewport, scissor, visible := passRects(pass, target)
	if !visible {
		return nil
	}

	pipeline, err := b.pipeline(shader, mesh, target, pass)
	if err != nil {
		return err
	}

	res, err := b.bindResources(shader, pass.Material)
	defer res.release(b.gpu)
	if err != nil {
		return err
	}

	instances := 1
	if pass.InstanceCount > 0 {
		instances = pass.InstanceCount
	}
	constant := blit.FromUint32(pass.Blend.RGBA).Floats()

	return b.gpu.submit("blit_render", func(enc hal.CommandEncoder) error {
		rp := enc.BeginRenderPass(target.passDescriptor("blit_render_pass"))
		rp.SetPipeline(pipeline)
		rp.SetBindGroup(0, res.bindGroup, nil)
		rp.SetVertexBuffer(0, mesh.vertices.buf, 0)
		if pass.InstanceCount > 0 && mesh.instances.buf != nil {
			rp.SetVertexBuffer(1, mesh.instances.buf, 0)
		}
		rp.SetIndexBuffer(mesh.indices.buf, indexFormat(mesh.indexFormat), 0)
		rp.SetViewport(viewport.X, viewport.Y, viewport.W, viewport.H, 0, 1)
		rp.SetScissorRect(scissor[0], scissor[1], scissor[2], scissor[3])
		rp.SetBlendConstant(&gputypes.Color{
			R: float64(constant[0]), G: float64(constant[1]), B: float64(constant[2]), A: float64(constant[3]),
		})
		rp.DrawIndexed(uint32(pass.IndexCount), uint32(instances), uint32(pass.IndexStart), 0, 0)
		rp.End()
		return nil
	})
}

// passRects returns the viewport and the scissor rectangle as x, y, w, h
// in pixels. visible is false when either is empty.
func passRects(pass *blit.RenderPass, t *Target) (blit.Rect, [4]uint32, bool) {
	vp := pass.Viewport
	if !pass.HasViewport {
		vp = blit.Rect{W: float32(t.width), H: float32(t.height)}
	}
	if vp.W <= 0 || vp.H <= 0 {
		return vp, [4]uint32{}, false
	}

	clip := blit.Rect{W: float32(t.width), H: float32(t.height)}
	if pass.HasScissor {
		clip = pass.Scissor
	}
	x0 := clampPixel(float64(clip.X), t.width)
	y0 := clampPixel(float64(clip.Y), t.height)
	x1 := clampPixel(math.Ceil(float64(clip.X+clip.W)), t.width)
	y1 := clampPixel(math.Ceil(float64(clip.Y+clip.H)), t.height)
	if x1 <= x0 || y1 <= y0 {
		return vp, [4]uint32{}, false
	}
	return vp, [4]uint32{x0, y0, x1 - x0, y1 - y0}, true
}

func clampPixel(v float64, limit int) uint32 {
	v = math.Floor(v)
	if v < 0 {
		return 0
	}
	if v > float64(limit) {
		return uint32(limit)
	}
	return uint32(v)
}

// bindResources packs the material into uniform buffers and creates the
// bind group. Missing textures bind an opaque white texel.
func (b *Backend) bindResources(s *Shader, m *blit.Material) (*drawResources, error) {
	res := &drawResources{}
	data := m.Data()
	textures := m.Textures()
	samplers := m.Samplers()
	ti, si := 0, 0

	entries := make([]gputypes.BindGroupEntry, 0, len(s.mod.Bindings))
	for i := range s.mod.Bindings {
		binding := &s.mod.Bindings[i]
		entry := gputypes.BindGroupEntry{Binding: uint32(binding.Binding)}

		switch binding.Kind {
		case wgsl.KindUniform:
			bytes := make([]byte, binding.Size)
			data = wgsl.Pack(bytes, binding, data)
			buf, err := b.gpu.dev.CreateBuffer(&hal.BufferDescriptor{
				Label: "blit_uniform_" + binding.Name,
				Size:  uint64(binding.Size),
				Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
			})
			if err != nil {
				return res, fmt.Errorf("create uniform buffer %s: %w", binding.Name, err)
			}
			res.uniforms = append(res.uniforms, buf)
			b.gpu.queue.WriteBuffer(buf, 0, bytes)
			entry.Resource = gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: uint64(binding.Size),
			}

		case wgsl.KindTexture:
			tex := b.white
			if ti < len(textures) {
				if t, ok := textures[ti].(*Texture); ok && t != nil {
					tex = t
				}
			}
			ti++
			entry.Resource = gputypes.TextureViewBinding{
				TextureView: gputypes.TextureViewHandle(tex.view.NativeHandle()),
			}

		case wgsl.KindSampler:
			var ts blit.TextureSampler
			if si < len(samplers) {
				ts = samplers[si]
			}
			si++
			sampler, err := b.sampler(ts)
			if err != nil {
				return res, fmt.Errorf("create sampler: %w", err)
			}
			entry.Resource = gputypes.SamplerBinding{
				Sampler: gputypes.SamplerHandle(sampler.NativeHandle()),
			}
		}
		entries = append(entries, entry)
	}

	group, err := b.gpu.dev.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   fmt.Sprintf("blit_shader_%d_bind_group", s.id),
		Layout:  s.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return res, fmt.Errorf("create bind group: %w", err)
	}
	res.bindGroup = group
	return res, nil
}
