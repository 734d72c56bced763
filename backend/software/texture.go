package software

import (
	"fmt"
	"image"

	"github.com/gogpu/blit"
)

// Texture is a CPU texture. Color formats store 8-bit channels; the
// depth-stencil format stores a float32 depth and an 8-bit stencil per
// texel.
type Texture struct {
	width, height int
	format        blit.TextureFormat
	framebuffer   bool

	pix     []byte
	depth   []float32
	stencil []uint8
}

func newTexture(width, height int, format blit.TextureFormat, framebuffer bool) *Texture {
	t := &Texture{width: width, height: height, format: format, framebuffer: framebuffer}
	n := width * height
	if format == blit.TextureFormatDepthStencil {
		t.depth = make([]float32, n)
		t.stencil = make([]uint8, n)
		for i := range t.depth {
			t.depth[i] = 1
		}
	} else {
		t.pix = make([]byte, n*format.BytesPerPixel())
	}
	return t
}

// Width returns the width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the height in texels.
func (t *Texture) Height() int { return t.height }

// Format returns the pixel format.
func (t *Texture) Format() blit.TextureFormat { return t.format }

// IsFramebuffer reports whether the texture is a target attachment.
func (t *Texture) IsFramebuffer() bool { return t.framebuffer }

// SetData replaces the texels. A slice of the wrong length is logged and
// ignored. Depth-stencil data is not uploadable.
func (t *Texture) SetData(data []byte) {
	if t.format == blit.TextureFormatDepthStencil {
		blit.Logger().Warn("software: depth-stencil texture data cannot be set")
		return
	}
	if len(data) != len(t.pix) {
		blit.Logger().Error("software: texture data size mismatch", "got", len(data), "want", len(t.pix))
		return
	}
	copy(t.pix, data)
}

// GetData is not supported; use Image to inspect pixels.
func (t *Texture) GetData(data []byte) error {
	return fmt.Errorf("software: texture read-back: %w", blit.ErrNotImplemented)
}

// Image returns a copy of the texture as RGBA. Single and dual channel
// formats expand the way a shader samples them: missing color channels
// are zero and alpha is opaque. Depth-stencil textures return depth as gray.
func (t *Texture) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	for i := range t.width * t.height {
		px := img.Pix[i*4 : i*4+4]
		switch t.format {
		case blit.TextureFormatRGBA:
			copy(px, t.pix[i*4:i*4+4])
		case blit.TextureFormatRG:
			px[0], px[1], px[2], px[3] = t.pix[i*2], t.pix[i*2+1], 0, 255
		case blit.TextureFormatR:
			px[0], px[1], px[2], px[3] = t.pix[i], 0, 0, 255
		case blit.TextureFormatDepthStencil:
			d := toByte(t.depth[i])
			px[0], px[1], px[2], px[3] = d, d, d, 255
		}
	}
	return img
}

// texel returns the normalized RGBA value at x, y, which must be in range.
func (t *Texture) texel(x, y int) [4]float32 {
	i := y*t.width + x
	switch t.format {
	case blit.TextureFormatRGBA:
		p := t.pix[i*4 : i*4+4]
		return [4]float32{unorm(p[0]), unorm(p[1]), unorm(p[2]), unorm(p[3])}
	case blit.TextureFormatRG:
		return [4]float32{unorm(t.pix[i*2]), unorm(t.pix[i*2+1]), 0, 1}
	case blit.TextureFormatR:
		return [4]float32{unorm(t.pix[i]), 0, 0, 1}
	case blit.TextureFormatDepthStencil:
		return [4]float32{t.depth[i], 0, 0, 1}
	}
	return [4]float32{}
}

// store writes the channels of c the texture holds, limited by mask.
func (t *Texture) store(x, y int, c [4]float32, mask blit.BlendMask) {
	i := y*t.width + x
	bpp := t.format.BytesPerPixel()
	if t.format == blit.TextureFormatDepthStencil {
		return
	}
	channels := [4]blit.BlendMask{blit.BlendMaskRed, blit.BlendMaskGreen, blit.BlendMaskBlue, blit.BlendMaskAlpha}
	for ch := range bpp {
		if mask&channels[ch] != 0 {
			t.pix[i*bpp+ch] = toByte(c[ch])
		}
	}
}

func (t *Texture) clear(color blit.Color, depth float32, stencil uint8, mask blit.ClearMask) {
	if t.format == blit.TextureFormatDepthStencil {
		if mask&blit.ClearDepth != 0 {
			for i := range t.depth {
				t.depth[i] = depth
			}
		}
		if mask&blit.ClearStencil != 0 {
			for i := range t.stencil {
				t.stencil[i] = stencil
			}
		}
		return
	}
	if mask&blit.ClearColor == 0 {
		return
	}
	rgba := [4]uint8{color.R, color.G, color.B, color.A}
	bpp := t.format.BytesPerPixel()
	for i := 0; i < len(t.pix); i += bpp {
		copy(t.pix[i:i+bpp], rgba[:bpp])
	}
}

func unorm(b uint8) float32 { return float32(b) / 255 }

func toByte(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}
