package software

import (
	"bytes"
	"errors"
	"image/color"
	"log/slog"
	"strings"
	"testing"

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

func newGraphics(t *testing.T, w, h int) (*Backend, *blit.Graphics) {
	t.Helper()
	b := New()
	if err := b.Init(w, h); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(b.Shutdown)
	g := blit.NewGraphics(b)
	g.Clear(blit.Black)
	return b, g
}

func pixel(t *testing.T, target *Target, x, y int) color.RGBA {
	t.Helper()
	return target.Image().RGBAAt(x, y)
}

func TestRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.NameSoftware) {
		t.Fatal("software backend not registered")
	}
	if _, ok := backend.Get(backend.NameSoftware).(*Backend); !ok {
		t.Error("Get(software) did not return a *Backend")
	}
}

func TestInit(t *testing.T) {
	b := New(WithMaxTextureSize(1024))
	if err := b.Init(0, 10); err == nil {
		t.Error("Init(0, 10) should fail")
	}
	if b.Backbuffer() != nil {
		t.Error("Backbuffer() before Init should be nil")
	}
	if err := b.Init(32, 16); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	bb := b.Backbuffer()
	if bb.Width() != 32 || bb.Height() != 16 {
		t.Errorf("backbuffer = %dx%d, want 32x16", bb.Width(), bb.Height())
	}
	if len(bb.Textures()) != 0 {
		t.Errorf("backbuffer exposes %d textures, want 0", len(bb.Textures()))
	}

	f := b.Features()
	if f.Instancing || f.OriginBottomLeft || f.MaxTextureSize != 1024 {
		t.Errorf("Features() = %+v", f)
	}
	if b.Renderer() != blit.RendererSoftware {
		t.Errorf("Renderer() = %v, want Software", b.Renderer())
	}
}

func TestBeforeRenderResizes(t *testing.T) {
	b, _ := newGraphics(t, 8, 8)
	first := b.BackbufferTarget()

	b.BeforeRender(8, 8)
	if b.BackbufferTarget() != first {
		t.Error("same size should keep the backbuffer")
	}
	b.BeforeRender(20, 10)
	if bb := b.Backbuffer(); bb.Width() != 20 || bb.Height() != 10 {
		t.Errorf("backbuffer = %dx%d, want 20x10", bb.Width(), bb.Height())
	}
}

func TestRectFill(t *testing.T) {
	b, g := newGraphics(t, 8, 8)
	batch := blit.NewBatch(g)
	batch.Rect(blit.R(2, 2, 4, 4), blit.Red)
	batch.Render(nil)

	bb := b.BackbufferTarget()
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{2, 2, color.RGBA{255, 0, 0, 255}},
		{5, 5, color.RGBA{255, 0, 0, 255}},
		{1, 1, color.RGBA{0, 0, 0, 255}},
		{6, 6, color.RGBA{0, 0, 0, 255}},
		{6, 2, color.RGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := pixel(t, bb, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSharedEdgeDrawnOnce(t *testing.T) {
	b, g := newGraphics(t, 8, 8)
	batch := blit.NewBatch(g)
	// half transparent, premultiplied
	batch.Rect(blit.R(0, 0, 8, 8), blit.RGBA(128, 0, 0, 128))
	batch.Render(nil)

	bb := b.BackbufferTarget()
	diagonal := pixel(t, bb, 3, 3)
	offDiagonal := pixel(t, bb, 5, 2)
	if diagonal.R != 128 || offDiagonal.R != 128 {
		t.Errorf("diagonal R = %d, off-diagonal R = %d, want 128 for both", diagonal.R, offDiagonal.R)
	}
}

func checkerTexture(t *testing.T, g *blit.Graphics) blit.Texture {
	t.Helper()
	tex := g.CreateTexture(2, 2, blit.TextureFormatRGBA)
	tex.SetData([]byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 255,
	})
	return tex
}

func TestTexturedNearest(t *testing.T) {
	b, g := newGraphics(t, 8, 8)
	tex := checkerTexture(t, g)

	batch := blit.NewBatch(g)
	batch.SetSampler(blit.NewSampler(blit.FilterNearest, blit.WrapClamp))
	batch.TexTransform(tex, blit.Vec2{}, blit.Vec2{}, blit.V2(4, 4), 0, blit.White)
	batch.Render(nil)

	bb := b.BackbufferTarget()
	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{1, 1, color.RGBA{255, 0, 0, 255}},
		{6, 1, color.RGBA{0, 255, 0, 255}},
		{1, 6, color.RGBA{0, 0, 255, 255}},
		{6, 6, color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := pixel(t, bb, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestTexturedLinearBlendsNeighbours(t *testing.T) {
	b, g := newGraphics(t, 2, 1)
	tex := g.CreateTexture(2, 1, blit.TextureFormatRGBA)
	tex.SetData([]byte{0, 0, 0, 255, 255, 255, 255, 255})

	batch := blit.NewBatch(g)
	batch.SetSampler(blit.NewSampler(blit.FilterLinear, blit.WrapClamp))
	batch.Tex(tex, blit.Vec2{}, blit.White)
	batch.Render(nil)

	// texel centers land on pixel centers, so no blending at 1:1
	bb := b.BackbufferTarget()
	if p := pixel(t, bb, 0, 0); p.R != 0 {
		t.Errorf("pixel(0,0).R = %d, want 0", p.R)
	}
	if p := pixel(t, bb, 1, 0); p.R != 255 {
		t.Errorf("pixel(1,0).R = %d, want 255", p.R)
	}

	got := sample(tex.(*Texture), blit.DefaultSampler, 0.5, 0.5)
	if got[0] < 0.49 || got[0] > 0.51 {
		t.Errorf("sample at seam = %v, want 0.5", got[0])
	}
}

func TestWashMode(t *testing.T) {
	b, g := newGraphics(t, 2, 2)
	tex := g.CreateTexture(1, 1, blit.TextureFormatRGBA)
	tex.SetData([]byte{10, 20, 30, 255})

	batch := blit.NewBatch(g)
	batch.PushColorMode(blit.ColorModeWash)
	batch.TexTransform(tex, blit.Vec2{}, blit.Vec2{}, blit.V2(2, 2), 0, blit.Green)
	batch.Render(nil)

	if p := pixel(t, b.BackbufferTarget(), 1, 1); p != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("washed pixel = %v, want green", p)
	}
}

func TestScissor(t *testing.T) {
	b, g := newGraphics(t, 8, 8)
	batch := blit.NewBatch(g)
	batch.PushScissor(blit.R(0, 0, 4, 4))
	batch.Rect(blit.R(0, 0, 8, 8), blit.White)
	batch.Render(nil)

	bb := b.BackbufferTarget()
	if p := pixel(t, bb, 3, 3); p.R != 255 {
		t.Errorf("inside scissor = %v, want white", p)
	}
	if p := pixel(t, bb, 4, 4); p.R != 0 {
		t.Errorf("outside scissor = %v, want black", p)
	}
}

func TestRenderToTarget(t *testing.T) {
	_, g := newGraphics(t, 4, 4)
	target := g.CreateTarget(4, 4, blit.TextureFormatRGBA, blit.TextureFormatDepthStencil)
	if n := len(target.Textures()); n != 2 {
		t.Fatalf("Textures() = %d, want 2", n)
	}
	if !target.Textures()[0].IsFramebuffer() {
		t.Error("attachment should be a framebuffer")
	}
	target.Clear(blit.Blue, 1, 0, blit.ClearAll)

	batch := blit.NewBatch(g)
	batch.Rect(blit.R(0, 0, 2, 4), blit.Red)
	batch.Render(target)

	img := target.(*Target).Image()
	if p := img.RGBAAt(0, 0); p != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("drawn pixel = %v, want red", p)
	}
	if p := img.RGBAAt(3, 0); p != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("cleared pixel = %v, want blue", p)
	}
}

// trianglePass builds a pass drawing the triangle (0,0) (8,0) (0,8) in
// pixel space on an 8x8 target.
func trianglePass(t *testing.T, g *blit.Graphics) blit.RenderPass {
	t.Helper()
	verts := []blit.Vertex{
		{Pos: blit.V2(0, 0), Col: blit.White, Fill: 255},
		{Pos: blit.V2(8, 0), Col: blit.White, Fill: 255},
		{Pos: blit.V2(0, 8), Col: blit.White, Fill: 255},
	}
	mesh := g.CreateMesh()
	mesh.VertexData(blit.VertexFormatSprite, blit.VertexBytes(nil, verts), len(verts))
	mesh.IndexData(blit.IndexUInt16, blit.IndexBytes16(nil, []uint16{0, 1, 2}), 3)

	mat := blit.NewMaterial(g.DefaultShader())
	ortho := blit.Mat4x4Ortho(0, 8, 8, 0, 0.01, 1000)
	mat.SetValue("u_matrix", ortho[:])
	return blit.NewRenderPass(g.Backbuffer(), mesh, mat)
}

func TestCulling(t *testing.T) {
	tests := []struct {
		cull  blit.Cull
		drawn bool
	}{
		{blit.CullNone, true},
		{blit.CullBack, false},
		{blit.CullFront, true},
	}
	for _, tt := range tests {
		b, g := newGraphics(t, 8, 8)
		pass := trianglePass(t, g)
		pass.Cull = tt.cull
		g.Render(pass)

		drawn := pixel(t, b.BackbufferTarget(), 1, 1).R == 255
		if drawn != tt.drawn {
			t.Errorf("cull %v: drawn = %v, want %v", tt.cull, drawn, tt.drawn)
		}
	}
}

func TestViewport(t *testing.T) {
	b, g := newGraphics(t, 8, 8)
	pass := trianglePass(t, g)
	pass.HasViewport = true
	pass.Viewport = blit.R(4, 4, 4, 4)
	g.Render(pass)

	bb := b.BackbufferTarget()
	if p := pixel(t, bb, 4, 4); p.R != 255 {
		t.Errorf("viewport origin = %v, want white", p)
	}
	if p := pixel(t, bb, 1, 1); p.R != 0 {
		t.Errorf("outside viewport = %v, want black", p)
	}
}

func TestDepthCompare(t *testing.T) {
	b, g := newGraphics(t, 8, 8)
	b.ClearBackbuffer(blit.Black, 0, 0, blit.ClearAll)

	pass := trianglePass(t, g)
	pass.Depth = blit.CompareLess
	g.Render(pass)
	if p := pixel(t, b.BackbufferTarget(), 1, 1); p.R != 0 {
		t.Errorf("depth 0 < 0 drew %v", p)
	}

	pass.Depth = blit.CompareLessOrEqual
	g.Render(pass)
	if p := pixel(t, b.BackbufferTarget(), 1, 1); p.R != 255 {
		t.Errorf("depth 0 <= 0 did not draw: %v", p)
	}
}

func TestBlendEquations(t *testing.T) {
	approx := func(a, b float32) bool { return a-b < 1e-4 && b-a < 1e-4 }
	tests := []struct {
		name     string
		mode     blit.BlendMode
		src, dst [4]float32
		wantR    float32
	}{
		{"normal", blit.BlendNormal, [4]float32{0.5, 0, 0, 0.5}, [4]float32{0.2, 0, 0, 1}, 0.6},
		{"non premultiplied", blit.BlendNonPremultiplied, [4]float32{1, 0, 0, 0.25}, [4]float32{0, 0, 0, 1}, 0.25},
		{"additive", blit.BlendAdditive, [4]float32{0.5, 0, 0, 0.5}, [4]float32{0.2, 0, 0, 1}, 0.45},
		{"subtract", blit.BlendSubtract, [4]float32{0.3, 0, 0, 1}, [4]float32{0.8, 0, 0, 1}, 0.5},
		{"max", blit.BlendMode{ColorOp: blit.BlendOpMax, AlphaOp: blit.BlendOpMax}, [4]float32{0.3, 0, 0, 1}, [4]float32{0.8, 0, 0, 1}, 0.8},
		{"constant", blit.BlendMode{ColorSrc: blit.BlendConstantColor, RGBA: 0x80000000}, [4]float32{1, 0, 0, 1}, [4]float32{}, 128.0 / 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := blend(tt.mode, tt.src, tt.dst)
			if !approx(got[0], tt.wantR) {
				t.Errorf("blend R = %v, want %v", got[0], tt.wantR)
			}
		})
	}
}

func TestBlendMask(t *testing.T) {
	b, g := newGraphics(t, 2, 2)
	batch := blit.NewBatch(g)
	mode := blit.BlendNormal
	mode.Mask = blit.BlendMaskGreen | blit.BlendMaskAlpha
	batch.PushBlend(mode)
	batch.Rect(blit.R(0, 0, 2, 2), blit.White)
	batch.Render(nil)

	if p := pixel(t, b.BackbufferTarget(), 0, 0); p != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("masked pixel = %v, want green only", p)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		i, n int
		mode blit.TextureWrap
		want int
	}{
		{-1, 4, blit.WrapClamp, 0},
		{5, 4, blit.WrapClamp, 3},
		{5, 4, blit.WrapRepeat, 1},
		{-1, 4, blit.WrapRepeat, 3},
		{2, 4, blit.WrapNone, 2},
	}
	for _, tt := range tests {
		if got := wrap(tt.i, tt.n, tt.mode); got != tt.want {
			t.Errorf("wrap(%d, %d, %v) = %d, want %d", tt.i, tt.n, tt.mode, got, tt.want)
		}
	}
}

func TestTextureData(t *testing.T) {
	logs := captureLogs(t)
	b := New()

	tex := b.CreateTexture(2, 1, blit.TextureFormatR).(*Texture)
	tex.SetData([]byte{7})
	if !strings.Contains(logs.String(), "size mismatch") {
		t.Errorf("short SetData not logged: %q", logs.String())
	}

	tex.SetData([]byte{200, 100})
	if p := tex.Image().RGBAAt(0, 0); p != (color.RGBA{200, 0, 0, 255}) {
		t.Errorf("R texel = %v, want {200 0 0 255}", p)
	}
	if err := tex.GetData(make([]byte, 2)); !errors.Is(err, blit.ErrNotImplemented) {
		t.Errorf("GetData() error = %v, want ErrNotImplemented", err)
	}
	if tex.IsFramebuffer() {
		t.Error("plain texture reported as framebuffer")
	}
}

func TestCreateTextureFailures(t *testing.T) {
	logs := captureLogs(t)
	b := New(WithMaxTextureSize(4))
	if b.CreateTexture(8, 1, blit.TextureFormatRGBA) != nil {
		t.Error("oversized texture should be nil")
	}
	if b.CreateTexture(1, 1, blit.TextureFormatNone) != nil {
		t.Error("format None should be nil")
	}
	if b.CreateTarget(2, 2) != nil {
		t.Error("target without attachments should be nil")
	}
	if n := strings.Count(logs.String(), "level=ERROR"); n != 3 {
		t.Errorf("logged %d errors, want 3", n)
	}
}

func TestCreateShader(t *testing.T) {
	logs := captureLogs(t)
	b := New()

	s := b.CreateShader(b.DefaultShaderData())
	if s == nil {
		t.Fatal("default shader failed")
	}
	if n := len(s.Uniforms()); n != 3 {
		t.Errorf("Uniforms() = %d, want 3", n)
	}

	mismatch := blit.ShaderData{
		Vertex:   "@group(0) @binding(0) var<uniform> u: vec4<f32>;\nfn vs_main() {}",
		Fragment: "@group(0) @binding(0) var<uniform> u: vec2<f32>;\nfn fs_main() {}",
	}
	if b.CreateShader(mismatch) != nil {
		t.Error("mismatched uniforms should fail")
	}
	if b.CreateShader(blit.ShaderData{Vertex: "fn main() {}", Fragment: "fn fs_main() {}"}) != nil {
		t.Error("missing vs_main should fail")
	}
	if !strings.Contains(logs.String(), "invalid shader") {
		t.Errorf("failure not logged as invalid shader: %q", logs.String())
	}
}

func TestMeshReusesStorage(t *testing.T) {
	m := &Mesh{}
	m.IndexData(blit.IndexUInt32, blit.IndexBytes32(nil, []uint32{0, 1, 2, 2, 3, 0}), 6)
	buf := m.indices

	m.IndexData(blit.IndexUInt32, blit.IndexBytes32(nil, []uint32{5, 6, 7}), 3)
	if &m.indices[0] != &buf[0] {
		t.Error("smaller upload reallocated storage")
	}
	if m.IndexCount() != 3 || m.index(2) != 7 {
		t.Errorf("IndexCount() = %d, index(2) = %d", m.IndexCount(), m.index(2))
	}
}

func TestMeshShortData(t *testing.T) {
	captureLogs(t)
	m := &Mesh{}
	m.VertexData(blit.VertexFormatSprite, make([]byte, blit.VertexStride*2), 5)
	if m.VertexCount() != 2 {
		t.Errorf("VertexCount() = %d, want 2", m.VertexCount())
	}
}

func TestDecodeAttribute(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		attr blit.VertexAttribute
		want [4]float32
	}{
		{"ubyte4 normalized", []byte{255, 0, 51, 255}, blit.VertexAttribute{Type: blit.VertexUByte4, Normalized: true}, [4]float32{1, 0, 0.2, 1}},
		{"byte4 normalized", []byte{0x81, 127, 0, 0}, blit.VertexAttribute{Type: blit.VertexByte4, Normalized: true}, [4]float32{-1, 1, 0, 0}},
		{"ushort2 raw", []byte{2, 0, 0, 1}, blit.VertexAttribute{Type: blit.VertexUShort2}, [4]float32{2, 256, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeAttribute(tt.data, tt.attr)
			for i := range 4 {
				if d := got[i] - tt.want[i]; d > 1e-4 || d < -1e-4 {
					t.Fatalf("decodeAttribute() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func BenchmarkBatchRects(b *testing.B) {
	sw := New()
	if err := sw.Init(256, 256); err != nil {
		b.Fatal(err)
	}
	g := blit.NewGraphics(sw)
	batch := blit.NewBatch(g)
	for i := range 64 {
		batch.Rect(blit.R(float32(i*4), float32(i*4), 16, 16), blit.Red)
	}

	b.ReportAllocs()
	for b.Loop() {
		batch.Render(nil)
	}
}
