package software

import (
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/blit"
)

// Sprite vertex attribute locations.
const (
	locPosition = 0
	locTexCoord = 1
	locColor    = 2
	locMask     = 3
)

// vertex is a shaded vertex in window coordinates.
type vertex struct {
	x, y  float32
	depth float32
	uv    [2]float32
	color [4]float32
	mask  [3]float32
}

// rasterizer keeps per-draw scratch space between passes.
type rasterizer struct {
	verts []vertex
}

// clip is an integer pixel rectangle, max exclusive.
type clip struct {
	x0, y0, x1, y1 int
}

func (c clip) intersect(r blit.Rect) clip {
	return clip{
		x0: max(c.x0, int(math32.Ceil(r.X-0.5))),
		y0: max(c.y0, int(math32.Ceil(r.Y-0.5))),
		x1: min(c.x1, int(math32.Ceil(r.X+r.W-0.5))),
		y1: min(c.y1, int(math32.Ceil(r.Y+r.H-0.5))),
	}
}

func (c clip) empty() bool { return c.x0 >= c.x1 || c.y0 >= c.y1 }

// draw rasterizes the pass index range into target.
func (r *rasterizer) draw(target *Target, mesh *Mesh, pass *blit.RenderPass) {
	if target.color == nil {
		return
	}
	shader, ok := pass.Material.Shader().(*Shader)
	if !ok {
		blit.Logger().Error("software: material shader is not a software shader")
		return
	}

	bounds := clip{x1: target.width, y1: target.height}.intersect(pass.Viewport)
	if pass.HasScissor {
		bounds = bounds.intersect(pass.Scissor)
	}
	if bounds.empty() {
		return
	}

	matrix := blit.Mat4x4Identity()
	if shader.matrix != "" {
		if v := pass.Material.GetValue(shader.matrix); len(v) == 16 {
			copy(matrix[:], v)
		}
	}

	var tex *Texture
	if ts := pass.Material.Textures(); len(ts) > 0 && ts[0] != nil {
		tex, _ = ts[0].(*Texture)
	}
	sampler := blit.DefaultSampler
	if ss := pass.Material.Samplers(); len(ss) > 0 {
		sampler = ss[0]
	}

	r.transform(mesh, matrix, pass.Viewport)

	f := fragment{
		target:  target.color,
		depth:   target.depth,
		compare: pass.Depth,
		blend:   pass.Blend,
		tex:     tex,
		sampler: sampler,
	}
	end := pass.IndexStart + pass.IndexCount
	for i := pass.IndexStart; i+3 <= end; i += 3 {
		a, b, c := mesh.index(i), mesh.index(i+1), mesh.index(i+2)
		if a >= len(r.verts) || b >= len(r.verts) || c >= len(r.verts) {
			continue
		}
		r.triangle(&r.verts[a], &r.verts[b], &r.verts[c], pass.Cull, bounds, &f)
	}
}

// transform runs the vertex stage over every mesh vertex.
func (r *rasterizer) transform(mesh *Mesh, matrix blit.Mat4x4, viewport blit.Rect) {
	n := mesh.vertexCount
	if cap(r.verts) < n {
		r.verts = make([]vertex, n)
	}
	r.verts = r.verts[:n]

	format := mesh.vertexFormat
	offsets := [4]int{-1, -1, -1, -1}
	types := [4]blit.VertexAttribute{}
	for i, a := range format.Attributes {
		if a.Index >= 0 && a.Index < len(offsets) {
			offsets[a.Index] = format.Offset(i)
			types[a.Index] = a
		}
	}

	for i := range n {
		data := mesh.vertices[i*format.Stride:]
		attr := func(loc int, def [4]float32) [4]float32 {
			if offsets[loc] < 0 {
				return def
			}
			return decodeAttribute(data[offsets[loc]:], types[loc])
		}
		pos := attr(locPosition, [4]float32{0, 0, 0, 1})
		uv := attr(locTexCoord, [4]float32{})
		col := attr(locColor, [4]float32{1, 1, 1, 1})
		mask := attr(locMask, [4]float32{0, 0, 1, 0})

		p := matrix.TransformVec4(pos[0], pos[1], 0, 1)
		w := p[3]
		if w == 0 {
			w = 1
		}
		ndcX, ndcY := p[0]/w, p[1]/w

		r.verts[i] = vertex{
			x:     viewport.X + (ndcX+1)*0.5*viewport.W,
			y:     viewport.Y + (1-ndcY)*0.5*viewport.H,
			depth: 0, // the sprite shader pins depth to the near plane
			uv:    [2]float32{uv[0], uv[1]},
			color: col,
			mask:  [3]float32{mask[0], mask[1], mask[2]},
		}
	}
}

// triangle scan converts one triangle with a top-left style tie rule so
// shared edges are drawn exactly once.
func (r *rasterizer) triangle(v0, v1, v2 *vertex, cull blit.Cull, bounds clip, f *fragment) {
	area := edge(v0.x, v0.y, v1.x, v1.y, v2.x, v2.y)
	if area == 0 {
		return
	}
	// window y points down, so a positive area is clockwise in clip space
	front := area < 0
	if (cull == blit.CullBack && !front) || (cull == blit.CullFront && front) {
		return
	}
	if area < 0 {
		v1, v2 = v2, v1
		area = -area
	}

	minX := max(bounds.x0, int(math32.Floor(min(v0.x, v1.x, v2.x))))
	maxX := min(bounds.x1-1, int(math32.Ceil(max(v0.x, v1.x, v2.x))))
	minY := max(bounds.y0, int(math32.Floor(min(v0.y, v1.y, v2.y))))
	maxY := min(bounds.y1-1, int(math32.Ceil(max(v0.y, v1.y, v2.y))))

	own0 := owns(v1, v2)
	own1 := owns(v2, v0)
	own2 := owns(v0, v1)

	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(v1.x, v1.y, v2.x, v2.y, px, py)
			w1 := edge(v2.x, v2.y, v0.x, v0.y, px, py)
			w2 := edge(v0.x, v0.y, v1.x, v1.y, px, py)
			if !inside(w0, own0) || !inside(w1, own1) || !inside(w2, own2) {
				continue
			}
			l0, l1, l2 := w0/area, w1/area, w2/area
			f.shade(x, y, v0, v1, v2, l0, l1, l2)
		}
	}
}

func edge(ax, ay, bx, by, px, py float32) float32 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// owns reports whether pixels exactly on edge a->b belong to its triangle.
// The two triangles sharing an edge walk it in opposite directions, so
// exactly one of them owns it.
func owns(a, b *vertex) bool {
	dx, dy := b.x-a.x, b.y-a.y
	return dy < 0 || (dy == 0 && dx > 0)
}

func inside(w float32, owned bool) bool {
	return w > 0 || (w == 0 && owned)
}

// decodeAttribute reads one attribute into a vec4 with the zero-filled,
// w=1 expansion a vertex fetch performs.
func decodeAttribute(b []byte, a blit.VertexAttribute) [4]float32 {
	out := [4]float32{0, 0, 0, 1}
	switch a.Type {
	case blit.VertexFloat, blit.VertexFloat2, blit.VertexFloat3, blit.VertexFloat4:
		n := int(a.Type - blit.VertexFloat + 1)
		for i := range n {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
		}
	case blit.VertexUByte4:
		for i := range 4 {
			out[i] = float32(b[i])
			if a.Normalized {
				out[i] /= 255
			}
		}
	case blit.VertexByte4:
		for i := range 4 {
			out[i] = float32(int8(b[i]))
			if a.Normalized {
				out[i] = max(out[i]/127, -1)
			}
		}
	case blit.VertexShort2, blit.VertexShort4:
		n := 2
		if a.Type == blit.VertexShort4 {
			n = 4
		}
		for i := range n {
			out[i] = float32(int16(binary.LittleEndian.Uint16(b[i*2:])))
			if a.Normalized {
				out[i] = max(out[i]/32767, -1)
			}
		}
	case blit.VertexUShort2, blit.VertexUShort4:
		n := 2
		if a.Type == blit.VertexUShort4 {
			n = 4
		}
		for i := range n {
			out[i] = float32(binary.LittleEndian.Uint16(b[i*2:]))
			if a.Normalized {
				out[i] /= 65535
			}
		}
	}
	return out
}
