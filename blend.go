package blit

// BlendOp is the equation combining source and destination terms.
type BlendOp uint8

// Blend operations.
const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// BlendFactor scales a source or destination term.
type BlendFactor uint8

// Blend factors.
const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendConstantColor
	BlendOneMinusConstantColor
	BlendConstantAlpha
	BlendOneMinusConstantAlpha
	BlendSrcAlphaSaturate
)

// BlendMask selects the color channels written.
type BlendMask uint8

// Blend masks.
const (
	BlendMaskNone  BlendMask = 0
	BlendMaskRed   BlendMask = 1
	BlendMaskGreen BlendMask = 2
	BlendMaskBlue  BlendMask = 4
	BlendMaskAlpha BlendMask = 8
	BlendMaskRGB   BlendMask = BlendMaskRed | BlendMaskGreen | BlendMaskBlue
	BlendMaskRGBA  BlendMask = BlendMaskRGB | BlendMaskAlpha
)

// BlendMode describes how fragments are combined with the target.
// BlendMode is comparable and is used directly as a cache key by backends.
type BlendMode struct {
	ColorOp  BlendOp
	ColorSrc BlendFactor
	ColorDst BlendFactor
	AlphaOp  BlendOp
	AlphaSrc BlendFactor
	AlphaDst BlendFactor
	Mask     BlendMask
	// RGBA is the constant blend color as 0xRRGGBBAA.
	RGBA uint32
}

// Blend presets.
var (
	// BlendNormal is premultiplied alpha: src + dst*(1-srcA).
	BlendNormal = BlendMode{
		ColorOp: BlendOpAdd, ColorSrc: BlendOne, ColorDst: BlendOneMinusSrcAlpha,
		AlphaOp: BlendOpAdd, AlphaSrc: BlendOne, AlphaDst: BlendOneMinusSrcAlpha,
		Mask: BlendMaskRGBA, RGBA: 0xffffffff,
	}
	// BlendNonPremultiplied is straight alpha: src*srcA + dst*(1-srcA).
	BlendNonPremultiplied = BlendMode{
		ColorOp: BlendOpAdd, ColorSrc: BlendSrcAlpha, ColorDst: BlendOneMinusSrcAlpha,
		AlphaOp: BlendOpAdd, AlphaSrc: BlendSrcAlpha, AlphaDst: BlendOneMinusSrcAlpha,
		Mask: BlendMaskRGBA, RGBA: 0xffffffff,
	}
	// BlendSubtract computes dst - src.
	BlendSubtract = BlendMode{
		ColorOp: BlendOpReverseSubtract, ColorSrc: BlendOne, ColorDst: BlendOne,
		AlphaOp: BlendOpAdd, AlphaSrc: BlendOne, AlphaDst: BlendOne,
		Mask: BlendMaskRGBA, RGBA: 0xffffffff,
	}
	// BlendAdditive computes src + dst, weighting src by its alpha.
	BlendAdditive = BlendMode{
		ColorOp: BlendOpAdd, ColorSrc: BlendSrcAlpha, ColorDst: BlendOne,
		AlphaOp: BlendOpAdd, AlphaSrc: BlendSrcAlpha, AlphaDst: BlendOne,
		Mask: BlendMaskRGBA, RGBA: 0xffffffff,
	}
)
