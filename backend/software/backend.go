package software

import (
	"fmt"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/backend"
	"github.com/gogpu/blit/internal/wgsl"
)

func init() {
	backend.Register(backend.NameSoftware, func() blit.Backend { return New() })
}

// DefaultMaxTextureSize is the texture size limit unless overridden.
const DefaultMaxTextureSize = 8192

// Option configures a Backend.
type Option func(*options)

type options struct {
	maxTextureSize int
}

// WithMaxTextureSize sets the largest texture width or height.
func WithMaxTextureSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxTextureSize = n
		}
	}
}

// Backend is the CPU implementation of blit.Backend.
type Backend struct {
	opts        options
	backbuffer  *Target
	initialized bool
	raster      rasterizer
}

// New returns an uninitialized software backend.
func New(opts ...Option) *Backend {
	o := options{maxTextureSize: DefaultMaxTextureSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &Backend{opts: o}
}

// Init allocates a backbuffer with color and depth-stencil attachments.
func (b *Backend) Init(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("software: invalid backbuffer size %dx%d", width, height)
	}
	b.backbuffer = newBackbuffer(width, height)
	b.initialized = true
	blit.Logger().Debug("software: initialized", "width", width, "height", height)
	return nil
}

// Shutdown releases the backbuffer.
func (b *Backend) Shutdown() {
	b.backbuffer = nil
	b.initialized = false
}

// Renderer returns blit.RendererSoftware.
func (b *Backend) Renderer() blit.Renderer { return blit.RendererSoftware }

// Features reports no instancing and top-left texture origin.
func (b *Backend) Features() blit.Features {
	return blit.Features{
		Instancing:       false,
		MaxTextureSize:   b.opts.maxTextureSize,
		OriginBottomLeft: false,
	}
}

// BeforeRender resizes the backbuffer when the drawable size changed.
// Resizing discards the previous contents.
func (b *Backend) BeforeRender(drawWidth, drawHeight int) {
	if !b.initialized || drawWidth <= 0 || drawHeight <= 0 {
		return
	}
	if drawWidth != b.backbuffer.Width() || drawHeight != b.backbuffer.Height() {
		b.backbuffer = newBackbuffer(drawWidth, drawHeight)
		blit.Logger().Debug("software: backbuffer resized", "width", drawWidth, "height", drawHeight)
	}
}

// AfterRender ends the frame. The backbuffer is already in memory.
func (b *Backend) AfterRender() {}

// ClearBackbuffer clears the backbuffer attachments selected by mask.
func (b *Backend) ClearBackbuffer(color blit.Color, depth float32, stencil uint8, mask blit.ClearMask) {
	if b.backbuffer != nil {
		b.backbuffer.Clear(color, depth, stencil, mask)
	}
}

// Backbuffer returns the default target, or nil before Init.
func (b *Backend) Backbuffer() blit.Target {
	if b.backbuffer == nil {
		return nil
	}
	return b.backbuffer
}

// BackbufferTarget returns the backbuffer as its concrete type.
func (b *Backend) BackbufferTarget() *Target { return b.backbuffer }

// CreateTexture allocates a zeroed texture.
func (b *Backend) CreateTexture(width, height int, format blit.TextureFormat) blit.Texture {
	if width <= 0 || height <= 0 || width > b.opts.maxTextureSize || height > b.opts.maxTextureSize {
		blit.Logger().Error("software: invalid texture size", "width", width, "height", height)
		return nil
	}
	if format.BytesPerPixel() == 0 {
		blit.Logger().Error("software: invalid texture format", "format", format)
		return nil
	}
	return newTexture(width, height, format, false)
}

// CreateTarget allocates a target with the given attachments.
func (b *Backend) CreateTarget(width, height int, attachments ...blit.TextureFormat) blit.Target {
	t, err := newTarget(width, height, attachments)
	if err != nil {
		blit.Logger().Error("software: create target failed", "err", err)
		return nil
	}
	return t
}

// CreateShader reflects data. Invalid sources are logged and yield nil.
func (b *Backend) CreateShader(data blit.ShaderData) blit.Shader {
	s, err := newShader(data)
	if err != nil {
		blit.Logger().Error("software: create shader failed", "err", err)
		return nil
	}
	return s
}

// CreateMesh returns an empty mesh.
func (b *Backend) CreateMesh() blit.Mesh { return &Mesh{} }

// DefaultShaderData returns the WGSL sprite shader.
func (b *Backend) DefaultShaderData() blit.ShaderData { return wgsl.SpriteShader() }

// Render rasterizes a validated pass.
func (b *Backend) Render(pass blit.RenderPass) {
	target, ok := pass.Target.(*Target)
	if !ok {
		blit.Logger().Error("software: render target is not a software target", "type", fmt.Sprintf("%T", pass.Target))
		return
	}
	mesh, ok := pass.Mesh.(*Mesh)
	if !ok {
		blit.Logger().Error("software: mesh is not a software mesh", "type", fmt.Sprintf("%T", pass.Mesh))
		return
	}
	b.raster.draw(target, mesh, &pass)
}
