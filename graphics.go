package blit

import (
	"image"
	"image/draw"
)

// Renderer identifies the GPU API behind a Backend.
type Renderer uint8

// Renderers.
const (
	RendererNone Renderer = iota
	RendererOpenGL
	RendererD3D11
	RendererMetal
	RendererVulkan
	RendererWebGPU
	RendererSoftware
)

// String returns the renderer name.
func (r Renderer) String() string {
	switch r {
	case RendererOpenGL:
		return "OpenGL"
	case RendererD3D11:
		return "D3D11"
	case RendererMetal:
		return "Metal"
	case RendererVulkan:
		return "Vulkan"
	case RendererWebGPU:
		return "WebGPU"
	case RendererSoftware:
		return "Software"
	default:
		return "None"
	}
}

// Features describes backend capabilities.
type Features struct {
	// Instancing reports whether InstanceCount > 0 is honored.
	Instancing bool
	// MaxTextureSize is the largest texture width or height.
	MaxTextureSize int
	// OriginBottomLeft reports whether texture row 0 is the bottom row.
	OriginBottomLeft bool
}

// Backend is the contract every GPU implementation satisfies.
//
// Factory methods never panic: on failure they log the reason and return
// nil. Backends may cache derived state (input layouts, blend states,
// pipelines) but such caches must not change observable results.
type Backend interface {
	// Init prepares the device and a backbuffer of the given size.
	Init(width, height int) error
	Shutdown()
	Renderer() Renderer
	Features() Features

	// BeforeRender starts a frame. The backbuffer is resized when the
	// drawable size changed.
	BeforeRender(drawWidth, drawHeight int)
	// AfterRender finishes a frame.
	AfterRender()

	ClearBackbuffer(color Color, depth float32, stencil uint8, mask ClearMask)
	Backbuffer() Target

	CreateTexture(width, height int, format TextureFormat) Texture
	CreateTarget(width, height int, attachments ...TextureFormat) Target
	CreateShader(data ShaderData) Shader
	CreateMesh() Mesh

	// DefaultShaderData returns the sprite shader used by Batch.
	DefaultShaderData() ShaderData

	// Render draws a pass that has already been validated.
	Render(pass RenderPass)
}

// Graphics is the application-facing front of a Backend. It checks
// factory preconditions and validates every RenderPass before the backend
// sees it.
type Graphics struct {
	backend       Backend
	features      Features
	defaultShader Shader
}

// NewGraphics wraps an initialized backend.
func NewGraphics(b Backend) *Graphics {
	assert(b != nil, "graphics requires a backend")
	return &Graphics{backend: b, features: b.Features()}
}

// Backend returns the wrapped backend.
func (g *Graphics) Backend() Backend { return g.backend }

// Renderer returns the backend's renderer.
func (g *Graphics) Renderer() Renderer { return g.backend.Renderer() }

// Features returns the backend's capabilities.
func (g *Graphics) Features() Features { return g.features }

// Backbuffer returns the default render target.
func (g *Graphics) Backbuffer() Target { return g.backend.Backbuffer() }

// BeforeRender forwards frame start to the backend.
func (g *Graphics) BeforeRender(drawWidth, drawHeight int) {
	g.backend.BeforeRender(drawWidth, drawHeight)
}

// AfterRender forwards frame end to the backend.
func (g *Graphics) AfterRender() { g.backend.AfterRender() }

// Clear clears the backbuffer color, depth and stencil.
func (g *Graphics) Clear(color Color) {
	g.backend.ClearBackbuffer(color, 1, 0, ClearAll)
}

// CreateTexture creates a texture. Non-positive sizes or sizes above
// Features.MaxTextureSize are fatal. Returns nil if the backend fails.
func (g *Graphics) CreateTexture(width, height int, format TextureFormat) Texture {
	assert(width > 0 && height > 0, "texture size must be positive, got %dx%d", width, height)
	assert(width <= g.features.MaxTextureSize && height <= g.features.MaxTextureSize,
		"texture size %dx%d exceeds max %d", width, height, g.features.MaxTextureSize)
	assert(format != TextureFormatNone, "texture format must be set")
	return g.backend.CreateTexture(width, height, format)
}

// CreateTextureFromImage creates an RGBA texture holding img.
func (g *Graphics) CreateTextureFromImage(img image.Image) Texture {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	tex := g.CreateTexture(b.Dx(), b.Dy(), TextureFormatRGBA)
	if tex != nil {
		tex.SetData(rgba.Pix)
	}
	return tex
}

// CreateTarget creates an offscreen target. At least one attachment, at
// most MaxTargetAttachments color attachments and one depth-stencil
// attachment are allowed.
func (g *Graphics) CreateTarget(width, height int, attachments ...TextureFormat) Target {
	assert(width > 0 && height > 0, "target size must be positive, got %dx%d", width, height)
	assert(len(attachments) > 0, "target requires at least one attachment")

	color, depth := 0, 0
	for _, a := range attachments {
		switch a {
		case TextureFormatDepthStencil:
			depth++
		case TextureFormatNone:
			assert(false, "target attachment format must be set")
		default:
			color++
		}
	}
	assert(color <= MaxTargetAttachments, "target has %d color attachments, max %d", color, MaxTargetAttachments)
	assert(depth <= 1, "target has %d depth attachments, max 1", depth)
	return g.backend.CreateTarget(width, height, attachments...)
}

// CreateShader compiles data. Returns nil, after logging, on failure.
func (g *Graphics) CreateShader(data ShaderData) Shader {
	return g.backend.CreateShader(data)
}

// CreateMesh creates an empty mesh.
func (g *Graphics) CreateMesh() Mesh {
	return g.backend.CreateMesh()
}

// DefaultShader returns the backend's sprite shader, compiling it once.
func (g *Graphics) DefaultShader() Shader {
	if g.defaultShader == nil {
		g.defaultShader = g.backend.CreateShader(g.backend.DefaultShaderData())
		assert(g.defaultShader != nil, "default shader failed to compile")
	}
	return g.defaultShader
}

// Render validates pass and hands it to the backend. A nil target falls
// back to the backbuffer with a warning.
func (g *Graphics) Render(pass RenderPass) {
	if pass.Target == nil {
		Logger().Warn("render pass: no target, using backbuffer")
		pass.Target = g.backend.Backbuffer()
	}

	bounds := Point{X: pass.Target.Width(), Y: pass.Target.Height()}
	validated, ok := Validate(pass, bounds)
	if !ok {
		return
	}
	g.backend.Render(validated)
}
