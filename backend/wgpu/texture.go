package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/blit"
)

// Texture is a GPU texture and its default view.
type Texture struct {
	gpu           *device
	width, height int
	format        blit.TextureFormat
	framebuffer   bool

	tex  hal.Texture
	view hal.TextureView
}

// textureFormat maps a blit format to its HAL format.
func textureFormat(f blit.TextureFormat) (gputypes.TextureFormat, bool) {
	switch f {
	case blit.TextureFormatR:
		return gputypes.TextureFormatR8Unorm, true
	case blit.TextureFormatRG:
		return gputypes.TextureFormatRG8Unorm, true
	case blit.TextureFormatRGBA:
		return gputypes.TextureFormatRGBA8Unorm, true
	case blit.TextureFormatDepthStencil:
		return gputypes.TextureFormatDepth24PlusStencil8, true
	default:
		return gputypes.TextureFormatUndefined, false
	}
}

func newTexture(gpu *device, width, height int, format blit.TextureFormat, framebuffer bool) (*Texture, error) {
	halFormat, ok := textureFormat(format)
	if !ok {
		return nil, fmt.Errorf("unsupported texture format %v", format)
	}

	usage := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst | gputypes.TextureUsageCopySrc
	if framebuffer {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	if format == blit.TextureFormatDepthStencil {
		usage = gputypes.TextureUsageRenderAttachment
	}

	label := fmt.Sprintf("blit_texture_%s_%dx%d", format, width, height)
	tex, err := gpu.dev.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        halFormat,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create texture: %w", err)
	}

	view, err := gpu.dev.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        halFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		gpu.dev.DestroyTexture(tex)
		return nil, fmt.Errorf("create texture view: %w", err)
	}

	return &Texture{
		gpu:         gpu,
		width:       width,
		height:      height,
		format:      format,
		framebuffer: framebuffer,
		tex:         tex,
		view:        view,
	}, nil
}

// Width returns the width in texels.
func (t *Texture) Width() int { return t.width }

// Height returns the height in texels.
func (t *Texture) Height() int { return t.height }

// Format returns the pixel format.
func (t *Texture) Format() blit.TextureFormat { return t.format }

// IsFramebuffer reports whether the texture is a target attachment.
func (t *Texture) IsFramebuffer() bool { return t.framebuffer }

// SetData uploads texels. A slice of the wrong length is logged and ignored.
func (t *Texture) SetData(data []byte) {
	if t.format == blit.TextureFormatDepthStencil {
		blit.Logger().Warn("wgpu: depth-stencil texture data cannot be set")
		return
	}
	bpp := t.format.BytesPerPixel()
	if want := t.width * t.height * bpp; len(data) != want {
		blit.Logger().Error("wgpu: texture data size mismatch", "got", len(data), "want", want)
		return
	}
	t.gpu.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(t.width * bpp),
			RowsPerImage: uint32(t.height),
		},
		&hal.Extent3D{Width: uint32(t.width), Height: uint32(t.height), DepthOrArrayLayers: 1},
	)
}

// GetData is not supported.
func (t *Texture) GetData(data []byte) error {
	return fmt.Errorf("wgpu: texture read-back: %w", blit.ErrNotImplemented)
}

func (t *Texture) destroy() {
	if t.view != nil {
		t.gpu.dev.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.gpu.dev.DestroyTexture(t.tex)
		t.tex = nil
	}
}
