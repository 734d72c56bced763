package blit

import (
	"cmp"
	"slices"

	"github.com/chewxy/math32"

	"github.com/gogpu/blit/geom"
)

// ColorMode selects how textured primitives combine texture and color.
type ColorMode uint8

// Color modes.
const (
	// ColorModeNormal multiplies the texture by the color.
	ColorModeNormal ColorMode = iota
	// ColorModeWash keeps the texture's alpha but replaces its color,
	// drawing a solid silhouette.
	ColorModeWash
)

// DrawBatch is a contiguous run of indices sharing one render state.
// Offset and Elements are measured in indices.
type DrawBatch struct {
	Layer          int
	Offset         int
	Elements       int
	Material       *Material
	Blend          BlendMode
	Texture        Texture
	Sampler        TextureSampler
	FlipVertically bool
	Scissor        Rect
}

// sameState reports whether o can be appended to d without a state change.
func (d *DrawBatch) sameState(o *DrawBatch) bool {
	return d.Layer == o.Layer &&
		d.Material == o.Material &&
		d.Blend == o.Blend &&
		d.Texture == o.Texture &&
		d.Sampler == o.Sampler &&
		d.Scissor == o.Scissor
}

// Batch accumulates shapes, sprites and text into a single vertex and
// index buffer and draws them with as few render passes as the state
// changes allow.
//
// A Batch is not safe for concurrent use.
type Batch struct {
	// TextureUniform, SamplerUniform and MatrixUniform name the uniforms
	// the batch sets on each batch's material before drawing.
	TextureUniform string
	SamplerUniform string
	MatrixUniform  string

	// Integerize rounds every transformed vertex position to whole pixels.
	Integerize bool

	// DefaultSampler is the sampler a fresh or cleared batch starts with.
	DefaultSampler TextureSampler

	graphics        *Graphics
	mesh            Mesh
	defaultMaterial *Material

	matrix    *Stack[Mat3x2]
	scissor   *Stack[Rect]
	blend     *Stack[BlendMode]
	material  *Stack[*Material]
	layer     *Stack[int]
	colorMode *Stack[ColorMode]

	texMult uint8
	texWash uint8

	current  DrawBatch
	batches  []DrawBatch
	vertices *geom.Buffer[Vertex]
	indices  *geom.Buffer[uint32]

	// upload scratch, kept across frames
	vertexBytes []byte
	indexBytes  []byte
	sorted      []DrawBatch
}

// NewBatch creates an empty batch drawing through g.
func NewBatch(g *Graphics) *Batch {
	assert(g != nil, "batch requires graphics")
	b := &Batch{
		TextureUniform: "u_texture",
		SamplerUniform: "u_texture_sampler",
		MatrixUniform:  "u_matrix",
		DefaultSampler: DefaultSampler,
		graphics:       g,
		matrix:         NewStack("matrix", Identity()),
		scissor:        NewStack("scissor", NoScissor),
		blend:          NewStack("blend", BlendNormal),
		material:       NewStack[*Material]("material", nil),
		layer:          NewStack("layer", 0),
		colorMode:      NewStack("color mode", ColorModeNormal),
		vertices:       geom.NewBuffer[Vertex](0),
		indices:        geom.NewBuffer[uint32](0),
	}
	b.Clear()
	return b
}

// Graphics returns the graphics the batch draws through.
func (b *Batch) Graphics() *Graphics { return b.graphics }

// setState applies change to the current batch, first closing it when it
// already holds indices and the change makes its state differ.
func (b *Batch) setState(change func(d *DrawBatch)) {
	next := b.current
	change(&next)
	if b.current.Elements > 0 && !b.current.sameState(&next) {
		b.batches = append(b.batches, b.current)
		next.Offset = b.current.Offset + b.current.Elements
		next.Elements = 0
	}
	b.current = next
}

// PushMatrix makes m the transform for all drawing. Unless absolute is
// set, m is applied inside the current transform.
func (b *Batch) PushMatrix(m Mat3x2, absolute bool) {
	if !absolute {
		m = b.matrix.Peek().Multiply(m)
	}
	b.matrix.Push(m)
}

// PopMatrix restores the previous transform and returns the removed one.
func (b *Batch) PopMatrix() Mat3x2 { return b.matrix.Pop() }

// PeekMatrix returns the current transform.
func (b *Batch) PeekMatrix() Mat3x2 { return b.matrix.Peek() }

// PushScissor sets the scissor rectangle. It is in screen space: neither
// the matrix stack nor earlier scissors affect it.
func (b *Batch) PushScissor(r Rect) {
	b.scissor.Push(r)
	b.setState(func(d *DrawBatch) { d.Scissor = r })
}

// PopScissor restores the previous scissor and returns the removed one.
func (b *Batch) PopScissor() Rect {
	was := b.scissor.Pop()
	top := b.scissor.Peek()
	b.setState(func(d *DrawBatch) { d.Scissor = top })
	return was
}

// PeekScissor returns the current scissor.
func (b *Batch) PeekScissor() Rect { return b.scissor.Peek() }

// PushBlend sets the blend mode.
func (b *Batch) PushBlend(mode BlendMode) {
	b.blend.Push(mode)
	b.setState(func(d *DrawBatch) { d.Blend = mode })
}

// PopBlend restores the previous blend mode and returns the removed one.
func (b *Batch) PopBlend() BlendMode {
	was := b.blend.Pop()
	top := b.blend.Peek()
	b.setState(func(d *DrawBatch) { d.Blend = top })
	return was
}

// PeekBlend returns the current blend mode.
func (b *Batch) PeekBlend() BlendMode { return b.blend.Peek() }

// PushMaterial sets the material. The material is not copied: it is
// drawn with whatever values it holds at Render time.
func (b *Batch) PushMaterial(m *Material) {
	b.material.Push(m)
	b.setState(func(d *DrawBatch) { d.Material = m })
}

// PopMaterial restores the previous material and returns the removed one.
func (b *Batch) PopMaterial() *Material {
	was := b.material.Pop()
	top := b.material.Peek()
	b.setState(func(d *DrawBatch) { d.Material = top })
	return was
}

// PeekMaterial returns the current material, nil meaning the default.
func (b *Batch) PeekMaterial() *Material { return b.material.Peek() }

// PushLayer sets the draw layer. Lower layers are drawn first. Batches
// are sorted by layer at Render, so interleaving layers costs passes.
func (b *Batch) PushLayer(layer int) {
	b.layer.Push(layer)
	b.setState(func(d *DrawBatch) { d.Layer = layer })
}

// PopLayer restores the previous layer and returns the removed one.
func (b *Batch) PopLayer() int {
	was := b.layer.Pop()
	top := b.layer.Peek()
	b.setState(func(d *DrawBatch) { d.Layer = top })
	return was
}

// PeekLayer returns the current layer.
func (b *Batch) PeekLayer() int { return b.layer.Peek() }

// PushColorMode sets the color mode for textured drawing. Color mode is
// stored per vertex, so it never splits a batch.
func (b *Batch) PushColorMode(mode ColorMode) {
	b.colorMode.Push(mode)
	b.applyColorMode(mode)
}

// PopColorMode restores the previous color mode and returns the removed one.
func (b *Batch) PopColorMode() ColorMode {
	was := b.colorMode.Pop()
	b.applyColorMode(b.colorMode.Peek())
	return was
}

// PeekColorMode returns the current color mode.
func (b *Batch) PeekColorMode() ColorMode { return b.colorMode.Peek() }

func (b *Batch) applyColorMode(mode ColorMode) {
	if mode == ColorModeWash {
		b.texMult, b.texWash = 0, 255
	} else {
		b.texMult, b.texWash = 255, 0
	}
}

// SetTexture sets the texture for subsequent drawing. Tex and Str calls
// set it themselves.
func (b *Batch) SetTexture(tex Texture) {
	flip := tex != nil && tex.IsFramebuffer() && b.graphics.Features().OriginBottomLeft
	b.setState(func(d *DrawBatch) {
		d.Texture = tex
		d.FlipVertically = flip
	})
}

// SetSampler sets the sampler for subsequent drawing.
func (b *Batch) SetSampler(s TextureSampler) {
	b.setState(func(d *DrawBatch) { d.Sampler = s })
}

// Batches returns the batches accumulated so far, in submission order,
// including the open one when it holds indices.
func (b *Batch) Batches() []DrawBatch {
	out := slices.Clone(b.batches)
	if b.current.Elements > 0 {
		out = append(out, b.current)
	}
	return out
}

// Vertices returns the accumulated vertices. The slice aliases the batch.
func (b *Batch) Vertices() []Vertex { return b.vertices.Slice() }

// Indices returns the accumulated indices. The slice aliases the batch.
func (b *Batch) Indices() []uint32 { return b.indices.Slice() }

// Clear drops all geometry, batches and pushed state. The GPU mesh is kept
// for reuse.
func (b *Batch) Clear() {
	b.vertices.Clear()
	b.indices.Clear()
	b.batches = b.batches[:0]
	b.matrix.Clear()
	b.scissor.Clear()
	b.blend.Clear()
	b.material.Clear()
	b.layer.Clear()
	b.colorMode.Clear()
	b.applyColorMode(ColorModeNormal)
	b.current = DrawBatch{
		Blend:   BlendNormal,
		Sampler: b.DefaultSampler,
		Scissor: NoScissor,
	}
}

// Dispose clears the batch and releases its mesh and default material.
func (b *Batch) Dispose() {
	b.Clear()
	b.mesh = nil
	b.defaultMaterial = nil
	b.vertexBytes = nil
	b.indexBytes = nil
}

// Render draws the batch into target (the backbuffer if nil) with an
// orthographic projection covering the target in pixels.
func (b *Batch) Render(target Target) {
	if target == nil {
		target = b.graphics.Backbuffer()
	}
	w, h := float32(target.Width()), float32(target.Height())
	b.RenderWith(target, Mat4x4Ortho(0, w, h, 0, 0.01, 1000))
}

// RenderWith draws the batch into target with the given projection.
//
// All geometry is uploaded to one mesh, then every batch, sorted by layer,
// becomes one RenderPass. The batch is not cleared.
func (b *Batch) RenderWith(target Target, projection Mat4x4) {
	if target == nil {
		target = b.graphics.Backbuffer()
	}
	if b.indices.Len() == 0 || (len(b.batches) == 0 && b.current.Elements == 0) {
		return
	}

	if b.mesh == nil {
		b.mesh = b.graphics.CreateMesh()
		if b.mesh == nil {
			Logger().Error("batch: mesh creation failed")
			return
		}
	}
	if b.defaultMaterial == nil {
		b.defaultMaterial = NewMaterial(b.graphics.DefaultShader())
	}

	b.indexBytes = IndexBytes32(b.indexBytes, b.indices.Slice())
	b.vertexBytes = VertexBytes(b.vertexBytes, b.vertices.Slice())
	b.mesh.IndexData(IndexUInt32, b.indexBytes, b.indices.Len())
	b.mesh.VertexData(VertexFormatSprite, b.vertexBytes, b.vertices.Len())

	b.sorted = append(b.sorted[:0], b.batches...)
	if b.current.Elements > 0 {
		b.sorted = append(b.sorted, b.current)
	}
	slices.SortStableFunc(b.sorted, func(x, y DrawBatch) int { return cmp.Compare(x.Layer, y.Layer) })

	pass := NewRenderPass(target, b.mesh, nil)
	for i := range b.sorted {
		b.renderSingle(&pass, &b.sorted[i], projection)
	}
}

func (b *Batch) renderSingle(pass *RenderPass, d *DrawBatch, projection Mat4x4) {
	m := d.Material
	if m == nil {
		m = b.defaultMaterial
	}
	if _, _, ok := m.slot(b.TextureUniform, UniformTexture2D); ok {
		m.SetTexture(b.TextureUniform, d.Texture, 0)
	}
	if _, _, ok := m.slot(b.SamplerUniform, UniformSampler2D); ok {
		m.SetSampler(b.SamplerUniform, d.Sampler, 0)
	}
	if m.HasValue(b.MatrixUniform) {
		m.SetValue(b.MatrixUniform, projection[:])
	}

	pass.Material = m
	pass.Blend = d.Blend
	pass.HasScissor = d.Scissor.W >= 0 && d.Scissor.H >= 0
	pass.Scissor = d.Scissor
	pass.IndexStart = d.Offset
	pass.IndexCount = d.Elements
	b.graphics.Render(*pass)
}

// transform maps a local position through the current matrix, snapping
// to whole pixels when Integerize is set.
func (b *Batch) transform(p Vec2) Vec2 {
	p = b.matrix.Peek().TransformPoint(p)
	if b.Integerize {
		p.X = math32.Round(p.X)
		p.Y = math32.Round(p.Y)
	}
	return p
}

// flipTex flips a texture coordinate when the current texture is stored
// bottom-up.
func (b *Batch) flipTex(t Vec2) Vec2 {
	if b.current.FlipVertically {
		t.Y = 1 - t.Y
	}
	return t
}

// pushTri appends one triangle.
func (b *Batch) pushTri(p0, p1, p2, t0, t1, t2 Vec2, c0, c1, c2 Color, mult, wash, fill uint8) {
	base := uint32(b.vertices.Len())
	v := b.vertices.Expand(3)
	v[0] = Vertex{Pos: b.transform(p0), Tex: b.flipTex(t0), Col: c0, Mult: mult, Wash: wash, Fill: fill}
	v[1] = Vertex{Pos: b.transform(p1), Tex: b.flipTex(t1), Col: c1, Mult: mult, Wash: wash, Fill: fill}
	v[2] = Vertex{Pos: b.transform(p2), Tex: b.flipTex(t2), Col: c2, Mult: mult, Wash: wash, Fill: fill}

	i := b.indices.Expand(3)
	i[0], i[1], i[2] = base, base+1, base+2
	b.current.Elements += 3
}

// pushQuad appends two triangles covering p0..p3 in order.
func (b *Batch) pushQuad(p0, p1, p2, p3, t0, t1, t2, t3 Vec2, c0, c1, c2, c3 Color, mult, wash, fill uint8) {
	base := uint32(b.vertices.Len())
	v := b.vertices.Expand(4)
	v[0] = Vertex{Pos: b.transform(p0), Tex: b.flipTex(t0), Col: c0, Mult: mult, Wash: wash, Fill: fill}
	v[1] = Vertex{Pos: b.transform(p1), Tex: b.flipTex(t1), Col: c1, Mult: mult, Wash: wash, Fill: fill}
	v[2] = Vertex{Pos: b.transform(p2), Tex: b.flipTex(t2), Col: c2, Mult: mult, Wash: wash, Fill: fill}
	v[3] = Vertex{Pos: b.transform(p3), Tex: b.flipTex(t3), Col: c3, Mult: mult, Wash: wash, Fill: fill}

	i := b.indices.Expand(6)
	i[0], i[1], i[2] = base, base+1, base+2
	i[3], i[4], i[5] = base, base+2, base+3
	b.current.Elements += 6
}
