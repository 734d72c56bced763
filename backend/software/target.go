package software

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/blit"
)

var errNoAttachments = errors.New("software: target has no attachments")

// Target is a set of attachments a pass draws into. The first color
// attachment receives fragments; the depth-stencil attachment, if any,
// takes part in depth testing.
type Target struct {
	width, height int
	textures      []blit.Texture
	owned         []*Texture
	color         *Texture
	depth         *Texture
}

func newTarget(width, height int, attachments []blit.TextureFormat) (*Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("software: invalid target size %dx%d", width, height)
	}
	if len(attachments) == 0 {
		return nil, errNoAttachments
	}
	t := &Target{width: width, height: height}
	for _, f := range attachments {
		if f.BytesPerPixel() == 0 {
			return nil, fmt.Errorf("software: invalid attachment format %v", f)
		}
		tex := newTexture(width, height, f, true)
		t.textures = append(t.textures, tex)
		t.owned = append(t.owned, tex)
		switch {
		case f == blit.TextureFormatDepthStencil:
			t.depth = tex
		case t.color == nil:
			t.color = tex
		}
	}
	return t, nil
}

// newBackbuffer creates the default target. Its attachments are private.
func newBackbuffer(width, height int) *Target {
	color := newTexture(width, height, blit.TextureFormatRGBA, true)
	depth := newTexture(width, height, blit.TextureFormatDepthStencil, true)
	return &Target{
		width:  width,
		height: height,
		owned:  []*Texture{color, depth},
		color:  color,
		depth:  depth,
	}
}

// Width returns the target width.
func (t *Target) Width() int { return t.width }

// Height returns the target height.
func (t *Target) Height() int { return t.height }

// Textures returns the attachments in creation order. The backbuffer
// returns none.
func (t *Target) Textures() []blit.Texture { return t.textures }

// Clear clears the attachments selected by mask.
func (t *Target) Clear(color blit.Color, depth float32, stencil uint8, mask blit.ClearMask) {
	for _, tex := range t.owned {
		tex.clear(color, depth, stencil, mask)
	}
}

// Image returns a copy of the first color attachment, or nil for a
// depth-only target.
func (t *Target) Image() *image.RGBA {
	if t.color == nil {
		return nil
	}
	return t.color.Image()
}
