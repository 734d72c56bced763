package wgpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/backend"
	"github.com/gogpu/blit/internal/cache"
	"github.com/gogpu/blit/internal/wgsl"
)

func init() {
	backend.Register(backend.NameWGPU, func() blit.Backend { return New() })
}

// Defaults used when no option overrides them.
const (
	DefaultMaxTextureSize    = 8192
	DefaultPipelineCacheSize = 64
	DefaultFenceTimeout      = 5 * time.Second
)

// Option configures a Backend.
type Option func(*options)

type options struct {
	maxTextureSize    int
	pipelineCacheSize int
	fenceTimeout      time.Duration
	provider          gpucontext.DeviceProvider
	instances         InstanceCreator
}

// WithMaxTextureSize sets the largest texture width or height reported in
// Features and enforced by CreateTexture.
func WithMaxTextureSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxTextureSize = n
		}
	}
}

// WithPipelineCacheSize bounds the number of cached render pipelines.
func WithPipelineCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pipelineCacheSize = n
		}
	}
}

// WithFenceTimeout sets how long Render waits for a submission.
func WithFenceTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.fenceTimeout = d
		}
	}
}

// WithDeviceProvider shares an existing device. The provider must also
// expose HalDevice() and HalQueue() returning hal.Device and hal.Queue.
// The backend never destroys a shared device.
func WithDeviceProvider(p gpucontext.DeviceProvider) Option {
	return func(o *options) { o.provider = p }
}

// WithInstanceCreator opens the device through c instead of the Vulkan
// HAL backend.
func WithInstanceCreator(c InstanceCreator) Option {
	return func(o *options) { o.instances = c }
}

// Backend is the wgpu HAL implementation of blit.Backend.
type Backend struct {
	opts options
	gpu  *device

	backbuffer *Target
	white      *Texture

	shaderID  uint64
	samplers  *cache.LRU[blit.TextureSampler, hal.Sampler]
	layouts   *cache.LRU[uint64, []gputypes.VertexAttribute]
	pipelines *cache.LRU[pipelineKey, hal.RenderPipeline]
}

// New returns an uninitialized backend.
func New(opts ...Option) *Backend {
	o := options{
		maxTextureSize:    DefaultMaxTextureSize,
		pipelineCacheSize: DefaultPipelineCacheSize,
		fenceTimeout:      DefaultFenceTimeout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Backend{opts: o}
}

// Init opens the device and allocates the backbuffer.
func (b *Backend) Init(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("wgpu: invalid backbuffer size %dx%d", width, height)
	}
	if b.gpu != nil {
		return fmt.Errorf("wgpu: already initialized")
	}

	gpu, err := openDevice(&b.opts)
	if err != nil {
		return err
	}
	b.gpu = gpu

	b.samplers = cache.New[blit.TextureSampler, hal.Sampler](32, func(_ blit.TextureSampler, s hal.Sampler) {
		gpu.dev.DestroySampler(s)
	})
	b.layouts = cache.New[uint64, []gputypes.VertexAttribute](64, nil)
	b.pipelines = cache.New[pipelineKey, hal.RenderPipeline](b.opts.pipelineCacheSize, func(_ pipelineKey, p hal.RenderPipeline) {
		gpu.dev.DestroyRenderPipeline(p)
	})

	if b.backbuffer, err = newBackbuffer(gpu, width, height); err != nil {
		b.Shutdown()
		return err
	}
	if b.white, err = newTexture(gpu, 1, 1, blit.TextureFormatRGBA, false); err != nil {
		b.Shutdown()
		return fmt.Errorf("wgpu: default texture: %w", err)
	}
	b.white.SetData([]byte{255, 255, 255, 255})

	blit.Logger().Info("wgpu: initialized", "width", width, "height", height, "shared_device", gpu.shared)
	return nil
}

// Shutdown releases every GPU object the backend created. Resources
// handed out earlier must not be used afterwards.
func (b *Backend) Shutdown() {
	if b.gpu == nil {
		return
	}
	if b.pipelines != nil {
		b.pipelines.Clear()
	}
	if b.samplers != nil {
		b.samplers.Clear()
	}
	if b.layouts != nil {
		b.layouts.Clear()
	}
	if b.white != nil {
		b.white.destroy()
		b.white = nil
	}
	if b.backbuffer != nil {
		b.backbuffer.destroy()
		b.backbuffer = nil
	}
	b.gpu.close()
	b.gpu = nil
}

// Renderer returns blit.RendererWebGPU.
func (b *Backend) Renderer() blit.Renderer { return blit.RendererWebGPU }

// Features reports instancing support and a top-left texture origin.
func (b *Backend) Features() blit.Features {
	return blit.Features{
		Instancing:       true,
		MaxTextureSize:   b.opts.maxTextureSize,
		OriginBottomLeft: false,
	}
}

// BeforeRender recreates the backbuffer when the drawable size changed.
func (b *Backend) BeforeRender(drawWidth, drawHeight int) {
	if b.backbuffer == nil || drawWidth <= 0 || drawHeight <= 0 {
		return
	}
	if drawWidth == b.backbuffer.width && drawHeight == b.backbuffer.height {
		return
	}
	bb, err := newBackbuffer(b.gpu, drawWidth, drawHeight)
	if err != nil {
		blit.Logger().Error("wgpu: backbuffer resize failed", "err", err)
		return
	}
	b.backbuffer.destroy()
	b.backbuffer = bb
	blit.Logger().Debug("wgpu: backbuffer resized", "width", drawWidth, "height", drawHeight)
}

// AfterRender ends the frame. Every Render call has already completed.
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

// CreateTexture allocates a texture. Failures are logged and yield nil.
func (b *Backend) CreateTexture(width, height int, format blit.TextureFormat) blit.Texture {
	if b.gpu == nil {
		blit.Logger().Error("wgpu: create texture", "err", backend.ErrNotInitialized)
		return nil
	}
	if width <= 0 || height <= 0 || width > b.opts.maxTextureSize || height > b.opts.maxTextureSize {
		blit.Logger().Error("wgpu: invalid texture size", "width", width, "height", height)
		return nil
	}
	t, err := newTexture(b.gpu, width, height, format, false)
	if err != nil {
		blit.Logger().Error("wgpu: create texture failed", "err", err)
		return nil
	}
	return t
}

// CreateTarget allocates an offscreen target.
func (b *Backend) CreateTarget(width, height int, attachments ...blit.TextureFormat) blit.Target {
	if b.gpu == nil {
		blit.Logger().Error("wgpu: create target", "err", backend.ErrNotInitialized)
		return nil
	}
	t, err := newTarget(b.gpu, width, height, attachments)
	if err != nil {
		blit.Logger().Error("wgpu: create target failed", "err", err)
		return nil
	}
	return t
}

// CreateShader compiles and reflects data. Failures are logged and yield nil.
func (b *Backend) CreateShader(data blit.ShaderData) blit.Shader {
	if b.gpu == nil {
		blit.Logger().Error("wgpu: create shader", "err", backend.ErrNotInitialized)
		return nil
	}
	b.shaderID++
	s, err := newShader(b.gpu, b.shaderID, data)
	if err != nil {
		blit.Logger().Error("wgpu: create shader failed", "err", err)
		return nil
	}
	return s
}

// CreateMesh returns an empty mesh.
func (b *Backend) CreateMesh() blit.Mesh {
	if b.gpu == nil {
		blit.Logger().Error("wgpu: create mesh", "err", backend.ErrNotInitialized)
		return nil
	}
	return &Mesh{gpu: b.gpu}
}

// DefaultShaderData returns the WGSL sprite shader.
func (b *Backend) DefaultShaderData() blit.ShaderData { return wgsl.SpriteShader() }

// Render encodes, submits and waits for a validated pass.
func (b *Backend) Render(pass blit.RenderPass) {
	if b.gpu == nil {
		blit.Logger().Error("wgpu: render", "err", backend.ErrNotInitialized)
		return
	}
	if err := b.render(&pass); err != nil {
		blit.Logger().Error("wgpu: render failed", "err", err)
	}
}
