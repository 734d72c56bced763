package blit

// TextureFilter selects texel filtering.
type TextureFilter uint8

// Texture filters. FilterNone lets the backend choose (linear).
const (
	FilterNone TextureFilter = iota
	FilterLinear
	FilterNearest
)

// TextureWrap selects addressing outside [0,1].
type TextureWrap uint8

// Texture wraps. WrapNone lets the backend choose (clamp).
const (
	WrapNone TextureWrap = iota
	WrapClamp
	WrapRepeat
)

// TextureSampler describes how a texture is sampled. It is comparable.
type TextureSampler struct {
	Filter TextureFilter
	WrapX  TextureWrap
	WrapY  TextureWrap
}

// DefaultSampler is linear filtering with clamped edges.
var DefaultSampler = TextureSampler{Filter: FilterLinear, WrapX: WrapClamp, WrapY: WrapClamp}

// NewSampler returns a sampler with the same wrap on both axes.
func NewSampler(filter TextureFilter, wrap TextureWrap) TextureSampler {
	return TextureSampler{Filter: filter, WrapX: wrap, WrapY: wrap}
}
