package blit

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"
)

// captureLogs routes the package logger into a buffer for the duration of t.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

// expectFatal fails t unless fn panics with an ErrFatal-wrapped error.
func expectFatal(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrFatal) {
			t.Fatalf("panic value = %v, want ErrFatal", r)
		}
	}()
	fn()
}

type fakeTexture struct {
	w, h        int
	format      TextureFormat
	framebuffer bool
	data        []byte
}

func (t *fakeTexture) Width() int                { return t.w }
func (t *fakeTexture) Height() int               { return t.h }
func (t *fakeTexture) Format() TextureFormat     { return t.format }
func (t *fakeTexture) SetData(data []byte)       { t.data = append(t.data[:0], data...) }
func (t *fakeTexture) GetData(data []byte) error { return ErrNotImplemented }
func (t *fakeTexture) IsFramebuffer() bool       { return t.framebuffer }

type fakeTarget struct {
	w, h     int
	textures []Texture
	clears   int
}

func (t *fakeTarget) Width() int          { return t.w }
func (t *fakeTarget) Height() int         { return t.h }
func (t *fakeTarget) Textures() []Texture { return t.textures }
func (t *fakeTarget) Clear(Color, float32, uint8, ClearMask) {
	t.clears++
}

type fakeMesh struct {
	indexCount, vertexCount, instanceCount int
	indexUploads, vertexUploads            int
	vertexFormat                           VertexFormat
	vertexData                             []byte
}

func (m *fakeMesh) IndexData(_ IndexFormat, _ []byte, count int) {
	m.indexCount = count
	m.indexUploads++
}

func (m *fakeMesh) VertexData(format VertexFormat, data []byte, count int) {
	m.vertexCount = count
	m.vertexFormat = format
	m.vertexData = append(m.vertexData[:0], data...)
	m.vertexUploads++
}

func (m *fakeMesh) InstanceData(_ VertexFormat, _ []byte, count int) { m.instanceCount = count }
func (m *fakeMesh) IndexCount() int                                  { return m.indexCount }
func (m *fakeMesh) VertexCount() int                                 { return m.vertexCount }
func (m *fakeMesh) InstanceCount() int                               { return m.instanceCount }

type fakeShader struct {
	uniforms []UniformInfo
}

func (s *fakeShader) Uniforms() []UniformInfo { return s.uniforms }
func (s *fakeShader) Data() ShaderData        { return ShaderData{} }

// spriteUniforms mirrors the uniforms of the shipped sprite shaders.
var spriteUniforms = []UniformInfo{
	{Name: "u_matrix", Type: UniformMat4x4, Stages: StageVertex, ArrayLength: 1},
	{Name: "u_texture", Type: UniformTexture2D, Stages: StageFragment, RegisterIndex: 1, ArrayLength: 1},
	{Name: "u_texture_sampler", Type: UniformSampler2D, Stages: StageFragment, RegisterIndex: 2, ArrayLength: 1},
}

// renderedPass is a snapshot of a RenderPass as the backend saw it.
type renderedPass struct {
	pass    RenderPass
	texture Texture
	sampler TextureSampler
	matrix  []float32
}

type fakeBackend struct {
	features   Features
	backbuffer *fakeTarget
	meshes     []*fakeMesh
	shaders    int
	passes     []renderedPass
	frames     int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		features:   Features{Instancing: true, MaxTextureSize: 4096},
		backbuffer: &fakeTarget{w: 320, h: 240},
	}
}

func (b *fakeBackend) Init(width, height int) error {
	b.backbuffer.w, b.backbuffer.h = width, height
	return nil
}
func (b *fakeBackend) Shutdown()               {}
func (b *fakeBackend) Renderer() Renderer      { return RendererNone }
func (b *fakeBackend) Features() Features      { return b.features }
func (b *fakeBackend) BeforeRender(w, h int)   { b.frames++ }
func (b *fakeBackend) AfterRender()            {}
func (b *fakeBackend) Backbuffer() Target      { return b.backbuffer }

func (b *fakeBackend) DefaultShaderData() ShaderData {
	return ShaderData{Vertex: "vs", Fragment: "fs"}
}

func (b *fakeBackend) ClearBackbuffer(c Color, d float32, s uint8, m ClearMask) {
	b.backbuffer.Clear(c, d, s, m)
}

func (b *fakeBackend) CreateTexture(w, h int, f TextureFormat) Texture {
	return &fakeTexture{w: w, h: h, format: f}
}

func (b *fakeBackend) CreateTarget(w, h int, attachments ...TextureFormat) Target {
	t := &fakeTarget{w: w, h: h}
	for _, a := range attachments {
		t.textures = append(t.textures, &fakeTexture{w: w, h: h, format: a, framebuffer: true})
	}
	return t
}

func (b *fakeBackend) CreateShader(ShaderData) Shader {
	b.shaders++
	return &fakeShader{uniforms: spriteUniforms}
}

func (b *fakeBackend) CreateMesh() Mesh {
	m := &fakeMesh{}
	b.meshes = append(b.meshes, m)
	return m
}

func (b *fakeBackend) Render(pass RenderPass) {
	b.passes = append(b.passes, renderedPass{
		pass:    pass,
		texture: pass.Material.GetTexture("u_texture", 0),
		sampler: pass.Material.GetSampler("u_texture_sampler", 0),
		matrix:  append([]float32(nil), pass.Material.GetValue("u_matrix")...),
	})
}

func newTestBatch(t *testing.T) (*Batch, *fakeBackend) {
	t.Helper()
	fb := newFakeBackend()
	return NewBatch(NewGraphics(fb)), fb
}
