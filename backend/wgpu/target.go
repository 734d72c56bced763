package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/blit"
)

var errNoAttachments = errors.New("wgpu: target has no attachments")

// Target is a set of attachments a pass draws into.
type Target struct {
	gpu           *device
	width, height int
	textures      []blit.Texture
	colors        []*Texture
	depth         *Texture
}

func newTarget(gpu *device, width, height int, attachments []blit.TextureFormat) (*Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("wgpu: invalid target size %dx%d", width, height)
	}
	if len(attachments) == 0 {
		return nil, errNoAttachments
	}
	t := &Target{gpu: gpu, width: width, height: height}
	for _, f := range attachments {
		tex, err := newTexture(gpu, width, height, f, true)
		if err != nil {
			t.destroy()
			return nil, err
		}
		t.textures = append(t.textures, tex)
		if f == blit.TextureFormatDepthStencil {
			t.depth = tex
		} else {
			t.colors = append(t.colors, tex)
		}
	}
	return t, nil
}

// newBackbuffer creates the default target. Its attachments are private.
func newBackbuffer(gpu *device, width, height int) (*Target, error) {
	color, err := newTexture(gpu, width, height, blit.TextureFormatRGBA, true)
	if err != nil {
		return nil, fmt.Errorf("wgpu: backbuffer color: %w", err)
	}
	depth, err := newTexture(gpu, width, height, blit.TextureFormatDepthStencil, true)
	if err != nil {
		color.destroy()
		return nil, fmt.Errorf("wgpu: backbuffer depth: %w", err)
	}
	return &Target{
		gpu:    gpu,
		width:  width,
		height: height,
		colors: []*Texture{color},
		depth:  depth,
	}, nil
}

// Width returns the target width.
func (t *Target) Width() int { return t.width }

// Height returns the target height.
func (t *Target) Height() int { return t.height }

// Textures returns the attachments in creation order. The backbuffer
// returns none.
func (t *Target) Textures() []blit.Texture { return t.textures }

// Clear clears the attachments selected by mask with an empty render pass.
func (t *Target) Clear(color blit.Color, depth float32, stencil uint8, mask blit.ClearMask) {
	if mask == blit.ClearNone {
		return
	}
	c := color.Floats()
	desc := t.passDescriptor("blit_clear_pass")
	for i := range desc.ColorAttachments {
		if mask&blit.ClearColor != 0 {
			desc.ColorAttachments[i].LoadOp = gputypes.LoadOpClear
			desc.ColorAttachments[i].ClearValue = gputypes.Color{
				R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: float64(c[3]),
			}
		}
	}
	if ds := desc.DepthStencilAttachment; ds != nil {
		if mask&blit.ClearDepth != 0 {
			ds.DepthLoadOp = gputypes.LoadOpClear
			ds.DepthClearValue = depth
		}
		if mask&blit.ClearStencil != 0 {
			ds.StencilLoadOp = gputypes.LoadOpClear
			ds.StencilClearValue = uint32(stencil)
		}
	}

	err := t.gpu.submit("blit_clear", func(enc hal.CommandEncoder) error {
		enc.BeginRenderPass(desc).End()
		return nil
	})
	if err != nil {
		blit.Logger().Error("wgpu: clear failed", "err", err)
	}
}

// passDescriptor describes a pass that loads and stores every attachment.
func (t *Target) passDescriptor(label string) *hal.RenderPassDescriptor {
	desc := &hal.RenderPassDescriptor{Label: label}
	for _, c := range t.colors {
		desc.ColorAttachments = append(desc.ColorAttachments, hal.RenderPassColorAttachment{
			View:    c.view,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		})
	}
	if t.depth != nil {
		desc.DepthStencilAttachment = &hal.RenderPassDepthStencilAttachment{
			View:           t.depth.view,
			DepthLoadOp:    gputypes.LoadOpLoad,
			DepthStoreOp:   gputypes.StoreOpStore,
			StencilLoadOp:  gputypes.LoadOpLoad,
			StencilStoreOp: gputypes.StoreOpStore,
		}
	}
	return desc
}

// formats returns the color attachment formats and whether a depth
// attachment is present.
func (t *Target) formats() (colors [blit.MaxTargetAttachments]blit.TextureFormat, n int, depth bool) {
	for i, c := range t.colors {
		if i < len(colors) {
			colors[i] = c.format
		}
	}
	return colors, min(len(t.colors), len(colors)), t.depth != nil
}

func (t *Target) destroy() {
	for _, c := range t.colors {
		c.destroy()
	}
	if t.depth != nil {
		t.depth.destroy()
	}
}
