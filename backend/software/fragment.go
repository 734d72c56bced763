package software

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/blit"
)

// fragment holds the per-pass state of the fragment stage and blending.
type fragment struct {
	target  *Texture
	depth   *Texture
	compare blit.Compare
	blend   blit.BlendMode
	tex     *Texture
	sampler blit.TextureSampler
}

// shade computes and blends the fragment at x, y from the barycentric
// weights l0, l1, l2.
func (f *fragment) shade(x, y int, v0, v1, v2 *vertex, l0, l1, l2 float32) {
	depth := v0.depth*l0 + v1.depth*l1 + v2.depth*l2
	if f.depth != nil && f.compare != blit.CompareNone {
		i := y*f.depth.width + x
		if !depthPasses(f.compare, depth, f.depth.depth[i]) {
			return
		}
		f.depth.depth[i] = depth
	}

	u := v0.uv[0]*l0 + v1.uv[0]*l1 + v2.uv[0]*l2
	v := v0.uv[1]*l0 + v1.uv[1]*l1 + v2.uv[1]*l2

	var color [4]float32
	for c := range 4 {
		color[c] = v0.color[c]*l0 + v1.color[c]*l1 + v2.color[c]*l2
	}
	var mask [3]float32
	for c := range 3 {
		mask[c] = v0.mask[c]*l0 + v1.mask[c]*l1 + v2.mask[c]*l2
	}

	tex := [4]float32{1, 1, 1, 1}
	if f.tex != nil {
		tex = sample(f.tex, f.sampler, u, v)
	}

	// mult * tex * color + wash * tex.a * color + fill * color
	var src [4]float32
	for c := range 4 {
		src[c] = mask[0]*tex[c]*color[c] + mask[1]*tex[3]*color[c] + mask[2]*color[c]
	}

	dst := f.target.texel(x, y)
	f.target.store(x, y, blend(f.blend, src, dst), f.blend.Mask)
}

func depthPasses(c blit.Compare, fragment, stored float32) bool {
	switch c {
	case blit.CompareAlways:
		return true
	case blit.CompareNever:
		return false
	case blit.CompareLess:
		return fragment < stored
	case blit.CompareEqual:
		return fragment == stored
	case blit.CompareLessOrEqual:
		return fragment <= stored
	case blit.CompareGreater:
		return fragment > stored
	case blit.CompareNotEqual:
		return fragment != stored
	case blit.CompareGreaterOrEqual:
		return fragment >= stored
	}
	return true
}

// sample reads tex at normalized coordinates u, v.
func sample(tex *Texture, s blit.TextureSampler, u, v float32) [4]float32 {
	fx := u*float32(tex.width) - 0.5
	fy := v*float32(tex.height) - 0.5

	if s.Filter == blit.FilterNearest {
		x := wrap(int(math32.Floor(fx+0.5)), tex.width, s.WrapX)
		y := wrap(int(math32.Floor(fy+0.5)), tex.height, s.WrapY)
		return tex.texel(x, y)
	}

	x0f, y0f := math32.Floor(fx), math32.Floor(fy)
	tx, ty := fx-x0f, fy-y0f
	x0, y0 := int(x0f), int(y0f)
	xa, xb := wrap(x0, tex.width, s.WrapX), wrap(x0+1, tex.width, s.WrapX)
	ya, yb := wrap(y0, tex.height, s.WrapY), wrap(y0+1, tex.height, s.WrapY)

	c00, c10 := tex.texel(xa, ya), tex.texel(xb, ya)
	c01, c11 := tex.texel(xa, yb), tex.texel(xb, yb)
	var out [4]float32
	for c := range 4 {
		top := c00[c] + (c10[c]-c00[c])*tx
		bottom := c01[c] + (c11[c]-c01[c])*tx
		out[c] = top + (bottom-top)*ty
	}
	return out
}

// wrap maps texel coordinate i into [0, n).
func wrap(i, n int, mode blit.TextureWrap) int {
	if mode == blit.WrapRepeat {
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}
	return min(max(i, 0), n-1)
}

// blend evaluates the blend equation of mode for src over dst.
func blend(mode blit.BlendMode, src, dst [4]float32) [4]float32 {
	k := blit.FromUint32(mode.RGBA).Floats()

	var out [4]float32
	for c := range 3 {
		s := src[c] * factor(mode.ColorSrc, c, src, dst, k)
		d := dst[c] * factor(mode.ColorDst, c, src, dst, k)
		out[c] = clamp01(apply(mode.ColorOp, s, d, src[c], dst[c]))
	}
	s := src[3] * factor(mode.AlphaSrc, 3, src, dst, k)
	d := dst[3] * factor(mode.AlphaDst, 3, src, dst, k)
	out[3] = clamp01(apply(mode.AlphaOp, s, d, src[3], dst[3]))
	return out
}

// apply combines weighted terms. Min and max ignore the factors.
func apply(op blit.BlendOp, s, d, src, dst float32) float32 {
	switch op {
	case blit.BlendOpSubtract:
		return s - d
	case blit.BlendOpReverseSubtract:
		return d - s
	case blit.BlendOpMin:
		return min(src, dst)
	case blit.BlendOpMax:
		return max(src, dst)
	}
	return s + d
}

// factor returns the blend factor for channel c.
func factor(f blit.BlendFactor, c int, src, dst, k [4]float32) float32 {
	switch f {
	case blit.BlendZero:
		return 0
	case blit.BlendOne:
		return 1
	case blit.BlendSrcColor:
		return src[c]
	case blit.BlendOneMinusSrcColor:
		return 1 - src[c]
	case blit.BlendDstColor:
		return dst[c]
	case blit.BlendOneMinusDstColor:
		return 1 - dst[c]
	case blit.BlendSrcAlpha:
		return src[3]
	case blit.BlendOneMinusSrcAlpha:
		return 1 - src[3]
	case blit.BlendDstAlpha:
		return dst[3]
	case blit.BlendOneMinusDstAlpha:
		return 1 - dst[3]
	case blit.BlendConstantColor:
		return k[c]
	case blit.BlendOneMinusConstantColor:
		return 1 - k[c]
	case blit.BlendConstantAlpha:
		return k[3]
	case blit.BlendOneMinusConstantAlpha:
		return 1 - k[3]
	case blit.BlendSrcAlphaSaturate:
		if c == 3 {
			return 1
		}
		return min(src[3], 1-dst[3])
	}
	return 1
}

func clamp01(f float32) float32 {
	return min(max(f, 0), 1)
}
