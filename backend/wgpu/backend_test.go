package wgpu

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/blit"
	"github.com/gogpu/blit/backend"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := blit.Logger()
	t.Cleanup(func() { blit.SetLogger(orig) })

	var buf bytes.Buffer
	blit.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	return &buf
}

// newNoop returns a backend initialized on the noop HAL.
func newNoop(t *testing.T, w, h int, opts ...Option) *Backend {
	t.Helper()
	b := New(append([]Option{WithInstanceCreator(&noop.API{})}, opts...)...)
	if err := b.Init(w, h); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(b.Shutdown)
	return b
}

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.NameWGPU) {
		t.Fatal("wgpu backend not registered")
	}
	if _, ok := backend.Get(backend.NameWGPU).(*Backend); !ok {
		t.Error("Get(wgpu) did not return a *Backend")
	}
}

func TestInit(t *testing.T) {
	b := New(WithInstanceCreator(&noop.API{}))
	if err := b.Init(0, 10); err == nil {
		t.Error("Init(0, 10) should fail")
	}
	if b.Backbuffer() != nil {
		t.Error("Backbuffer() before Init should be nil")
	}
	if err := b.Init(32, 16); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer b.Shutdown()

	if err := b.Init(32, 16); err == nil {
		t.Error("second Init should fail")
	}
	bb := b.Backbuffer()
	if bb.Width() != 32 || bb.Height() != 16 {
		t.Errorf("backbuffer = %dx%d, want 32x16", bb.Width(), bb.Height())
	}
	if len(bb.Textures()) != 0 {
		t.Errorf("backbuffer exposes %d textures, want 0", len(bb.Textures()))
	}
	if b.Renderer() != blit.RendererWebGPU {
		t.Errorf("Renderer() = %v", b.Renderer())
	}
}

func TestFeatures(t *testing.T) {
	b := New(WithMaxTextureSize(2048))
	f := b.Features()
	if !f.Instancing || f.MaxTextureSize != 2048 || f.OriginBottomLeft {
		t.Errorf("Features() = %+v", f)
	}
	if got := New().Features().MaxTextureSize; got != DefaultMaxTextureSize {
		t.Errorf("default MaxTextureSize = %d, want %d", got, DefaultMaxTextureSize)
	}
}

func TestShutdownTwice(t *testing.T) {
	b := New(WithInstanceCreator(&noop.API{}))
	if err := b.Init(8, 8); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	b.Shutdown()
	b.Shutdown()
	if b.Backbuffer() != nil {
		t.Error("Backbuffer() after Shutdown should be nil")
	}
}

func TestFactoriesBeforeInit(t *testing.T) {
	logs := captureLogs(t)
	b := New()
	if b.CreateTexture(4, 4, blit.TextureFormatRGBA) != nil {
		t.Error("CreateTexture before Init should return nil")
	}
	if b.CreateMesh() != nil {
		t.Error("CreateMesh before Init should return nil")
	}
	if !strings.Contains(logs.String(), "not initialized") {
		t.Errorf("logs = %q, want not initialized", logs.String())
	}
}

func TestBeforeRenderResizes(t *testing.T) {
	b := newNoop(t, 16, 16)
	old := b.backbuffer

	b.BeforeRender(16, 16)
	if b.backbuffer != old {
		t.Error("same size recreated the backbuffer")
	}
	b.BeforeRender(40, 20)
	if w, h := b.Backbuffer().Width(), b.Backbuffer().Height(); w != 40 || h != 20 {
		t.Errorf("backbuffer = %dx%d, want 40x20", w, h)
	}
	b.BeforeRender(0, 20)
	if b.Backbuffer().Width() != 40 {
		t.Error("zero size resized the backbuffer")
	}
}

func TestCreateTexture(t *testing.T) {
	b := newNoop(t, 16, 16, WithMaxTextureSize(64))
	logs := captureLogs(t)

	tex := b.CreateTexture(8, 4, blit.TextureFormatRG)
	if tex == nil {
		t.Fatal("CreateTexture returned nil")
	}
	if tex.Width() != 8 || tex.Height() != 4 || tex.Format() != blit.TextureFormatRG || tex.IsFramebuffer() {
		t.Errorf("texture = %dx%d %v framebuffer=%v", tex.Width(), tex.Height(), tex.Format(), tex.IsFramebuffer())
	}
	tex.SetData(make([]byte, 8*4*2))
	tex.SetData(make([]byte, 3))
	if !strings.Contains(logs.String(), "size mismatch") {
		t.Error("short SetData was not logged")
	}
	if err := tex.GetData(make([]byte, 64)); !errors.Is(err, blit.ErrNotImplemented) {
		t.Errorf("GetData() error = %v, want ErrNotImplemented", err)
	}

	for _, tc := range []struct {
		w, h   int
		format blit.TextureFormat
	}{
		{0, 4, blit.TextureFormatRGBA},
		{65, 4, blit.TextureFormatRGBA},
		{4, 4, blit.TextureFormatNone},
	} {
		if b.CreateTexture(tc.w, tc.h, tc.format) != nil {
			t.Errorf("CreateTexture(%d, %d, %v) should fail", tc.w, tc.h, tc.format)
		}
	}
}

func TestCreateTarget(t *testing.T) {
	b := newNoop(t, 16, 16)

	target := b.CreateTarget(32, 8, blit.TextureFormatRGBA, blit.TextureFormatR, blit.TextureFormatDepthStencil)
	if target == nil {
		t.Fatal("CreateTarget returned nil")
	}
	textures := target.Textures()
	if len(textures) != 3 {
		t.Fatalf("Textures() = %d, want 3", len(textures))
	}
	for i, tex := range textures {
		if !tex.IsFramebuffer() {
			t.Errorf("attachment %d is not a framebuffer", i)
		}
	}
	colors, n, depth := target.(*Target).formats()
	if n != 2 || !depth || colors[0] != blit.TextureFormatRGBA || colors[1] != blit.TextureFormatR {
		t.Errorf("formats() = %v %d %v", colors, n, depth)
	}
	target.Clear(blit.Red, 1, 0, blit.ClearAll)

	if b.CreateTarget(8, 8) != nil {
		t.Error("CreateTarget with no attachments should fail")
	}
}

func TestCreateShader(t *testing.T) {
	b := newNoop(t, 16, 16)

	s := b.CreateShader(b.DefaultShaderData())
	if s == nil {
		t.Fatal("default shader failed")
	}
	if n := len(s.Uniforms()); n != 3 {
		t.Errorf("Uniforms() = %d, want 3", n)
	}
	if s.Data() != b.DefaultShaderData() {
		t.Error("Data() does not return the source")
	}

	tests := []struct {
		name string
		data blit.ShaderData
	}{
		{"no entry points", blit.ShaderData{Vertex: "fn main() {}", Fragment: "fn main() {}"}},
		{"bind group 1", blit.ShaderData{
			Vertex:   "@group(1) @binding(0) var<uniform> u: vec4<f32>;\nfn vs_main() {}",
			Fragment: "fn fs_main() {}",
		}},
		{"reflection error", blit.ShaderData{
			Vertex:   "@group(0) @binding(0) var<uniform> u: i32;\nfn vs_main() {}",
			Fragment: "fn fs_main() {}",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := captureLogs(t)
			if b.CreateShader(tt.data) != nil {
				t.Error("CreateShader should fail")
			}
			if !strings.Contains(logs.String(), "create shader failed") {
				t.Errorf("logs = %q", logs.String())
			}
		})
	}
}

func TestMeshBufferReuse(t *testing.T) {
	b := newNoop(t, 16, 16)
	m := b.CreateMesh().(*Mesh)

	verts := blit.VertexBytes(nil, make([]blit.Vertex, 8))
	m.VertexData(blit.VertexFormatSprite, verts, 8)
	first := m.vertices.buf
	if first == nil || m.vertices.size != uint64(len(verts)) {
		t.Fatalf("vertex buffer = %v size %d", first, m.vertices.size)
	}

	m.VertexData(blit.VertexFormatSprite, verts[:4*blit.VertexStride], 4)
	if m.vertices.buf != first || m.VertexCount() != 4 {
		t.Error("smaller upload reallocated the buffer")
	}

	big := blit.VertexBytes(nil, make([]blit.Vertex, 32))
	m.VertexData(blit.VertexFormatSprite, big, 32)
	if m.vertices.size < uint64(len(big)) {
		t.Errorf("buffer did not grow: %d < %d", m.vertices.size, len(big))
	}

	idx := blit.IndexBytes16(nil, []uint16{0, 1, 2})
	m.IndexData(blit.IndexUInt16, idx, 3)
	if m.indices.size != 8 || m.IndexCount() != 3 {
		t.Errorf("index buffer size = %d count = %d, want padded 8 and 3", m.indices.size, m.IndexCount())
	}
}

func TestMeshShortData(t *testing.T) {
	b := newNoop(t, 16, 16)
	logs := captureLogs(t)
	m := b.CreateMesh()

	m.IndexData(blit.IndexUInt32, make([]byte, 8), 6)
	if m.IndexCount() != 2 {
		t.Errorf("IndexCount() = %d, want 2", m.IndexCount())
	}
	if !strings.Contains(logs.String(), "shorter than count") {
		t.Error("short mesh data was not logged")
	}
}

func drawRect(t *testing.T, g *blit.Graphics, mode blit.BlendMode) {
	t.Helper()
	batch := blit.NewBatch(g)
	batch.PushBlend(mode)
	batch.Rect(blit.R(2, 2, 8, 8), blit.Red)
	batch.Render(g.Backbuffer())
}

func TestRenderCachesPipelines(t *testing.T) {
	b := newNoop(t, 32, 32)
	logs := captureLogs(t)
	g := blit.NewGraphics(b)
	g.Clear(blit.Black)

	drawRect(t, g, blit.BlendNormal)
	if n := b.pipelines.Len(); n != 1 {
		t.Fatalf("pipelines = %d after first draw, want 1", n)
	}
	drawRect(t, g, blit.BlendNormal)
	if n := b.pipelines.Len(); n != 1 {
		t.Errorf("pipelines = %d after identical draw, want 1", n)
	}
	if s := b.pipelines.Stats(); s.Hits == 0 {
		t.Errorf("stats = %+v, want a hit", s)
	}

	drawRect(t, g, blit.BlendAdditive)
	if n := b.pipelines.Len(); n != 2 {
		t.Errorf("pipelines = %d after blend change, want 2", n)
	}
	if b.samplers.Len() != 1 {
		t.Errorf("samplers = %d, want 1", b.samplers.Len())
	}
	if strings.Contains(logs.String(), "render failed") {
		t.Errorf("render logged a failure: %s", logs.String())
	}
}

func TestRenderToTarget(t *testing.T) {
	b := newNoop(t, 32, 32)
	logs := captureLogs(t)
	g := blit.NewGraphics(b)

	target := g.CreateTarget(16, 16, blit.TextureFormatRGBA)
	target.Clear(blit.Transparent, 1, 0, blit.ClearAll)

	batch := blit.NewBatch(g)
	batch.Tex(target.Textures()[0], blit.V2(0, 0), blit.White)
	batch.Render(g.Backbuffer())

	batch.Clear()
	batch.Circle(blit.V2(8, 8), 4, 12, blit.Blue)
	batch.Render(target)

	if strings.Contains(logs.String(), "render failed") {
		t.Errorf("render logged a failure: %s", logs.String())
	}
	if b.pipelines.Len() != 2 {
		t.Errorf("pipelines = %d, want one per target format set", b.pipelines.Len())
	}
}

func TestRenderRejectsForeignResources(t *testing.T) {
	b := newNoop(t, 16, 16)
	logs := captureLogs(t)

	b.Render(blit.RenderPass{Target: foreignTarget{}, Mesh: b.CreateMesh()})
	if !strings.Contains(logs.String(), "not a wgpu target") {
		t.Errorf("logs = %q", logs.String())
	}
}

type foreignTarget struct{}

func (foreignTarget) Width() int                                       { return 1 }
func (foreignTarget) Height() int                                      { return 1 }
func (foreignTarget) Textures() []blit.Texture                         { return nil }
func (foreignTarget) Clear(blit.Color, float32, uint8, blit.ClearMask) {}

func TestPassRects(t *testing.T) {
	target := &Target{width: 100, height: 50}
	tests := []struct {
		name    string
		pass    blit.RenderPass
		scissor [4]uint32
		visible bool
	}{
		{"full", blit.RenderPass{}, [4]uint32{0, 0, 100, 50}, true},
		{"scissor", blit.RenderPass{HasScissor: true, Scissor: blit.R(10.5, 5, 20.2, 10)}, [4]uint32{10, 5, 21, 10}, true},
		{"scissor clamped", blit.RenderPass{HasScissor: true, Scissor: blit.R(-10, -10, 500, 500)}, [4]uint32{0, 0, 100, 50}, true},
		{"empty scissor", blit.RenderPass{HasScissor: true, Scissor: blit.R(10, 10, 0, 5)}, [4]uint32{}, false},
		{"empty viewport", blit.RenderPass{HasViewport: true, Viewport: blit.R(0, 0, 0, 10)}, [4]uint32{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, scissor, visible := passRects(&tt.pass, target)
			if visible != tt.visible || scissor != tt.scissor {
				t.Errorf("passRects() = %v %v, want %v %v", scissor, visible, tt.scissor, tt.visible)
			}
		})
	}
}

// provider is a gpucontext.DeviceProvider that also exposes HAL objects.
type provider struct {
	dev   any
	queue any
}

func (p *provider) Device() gpucontext.Device             { return nil }
func (p *provider) Queue() gpucontext.Queue               { return nil }
func (p *provider) Adapter() gpucontext.Adapter           { return nil }
func (p *provider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }
func (p *provider) HalDevice() any                        { return p.dev }
func (p *provider) HalQueue() any                         { return p.queue }

type plainProvider struct{}

func (plainProvider) Device() gpucontext.Device             { return nil }
func (plainProvider) Queue() gpucontext.Queue               { return nil }
func (plainProvider) Adapter() gpucontext.Adapter           { return nil }
func (plainProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

func openNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

func TestDeviceProvider(t *testing.T) {
	dev, queue := openNoopDevice(t)

	b := New(WithDeviceProvider(&provider{dev: dev, queue: queue}))
	if err := b.Init(16, 16); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if !b.gpu.shared || b.gpu.dev != dev {
		t.Error("backend did not adopt the provider device")
	}
	b.Shutdown()
}

func TestDeviceProviderErrors(t *testing.T) {
	dev, _ := openNoopDevice(t)
	tests := []struct {
		name string
		p    gpucontext.DeviceProvider
		want string
	}{
		{"no hal", plainProvider{}, "does not expose HAL"},
		{"bad device", &provider{dev: 1}, "not hal.Device"},
		{"bad queue", &provider{dev: dev, queue: "q"}, "not hal.Queue"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(WithDeviceProvider(tt.p)).Init(8, 8)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Init() error = %v, want %q", err, tt.want)
			}
		})
	}
}
