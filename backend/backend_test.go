package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/blit"
)

// stubBackend satisfies blit.Backend without drawing anything.
type stubBackend struct {
	name    string
	initErr error
	inited  bool
}

func (b *stubBackend) Init(width, height int) error {
	if b.initErr != nil {
		return b.initErr
	}
	b.inited = true
	return nil
}

func (b *stubBackend) Shutdown()                                                  {}
func (b *stubBackend) Renderer() blit.Renderer                                    { return blit.RendererNone }
func (b *stubBackend) Features() blit.Features                                    { return blit.Features{MaxTextureSize: 16} }
func (b *stubBackend) BeforeRender(int, int)                                      {}
func (b *stubBackend) AfterRender()                                               {}
func (b *stubBackend) ClearBackbuffer(blit.Color, float32, uint8, blit.ClearMask) {}
func (b *stubBackend) Backbuffer() blit.Target                                    { return nil }
func (b *stubBackend) CreateTexture(int, int, blit.TextureFormat) blit.Texture    { return nil }
func (b *stubBackend) CreateTarget(int, int, ...blit.TextureFormat) blit.Target {
	return nil
}
func (b *stubBackend) CreateShader(blit.ShaderData) blit.Shader { return nil }
func (b *stubBackend) CreateMesh() blit.Mesh                    { return nil }
func (b *stubBackend) DefaultShaderData() blit.ShaderData       { return blit.ShaderData{} }
func (b *stubBackend) Render(blit.RenderPass)                   {}

// withRegistry swaps in an empty registry for the duration of the test.
func withRegistry(t *testing.T) {
	t.Helper()
	registryMu.Lock()
	saved := backends
	backends = make(map[string]Factory)
	registryMu.Unlock()

	t.Cleanup(func() {
		registryMu.Lock()
		backends = saved
		registryMu.Unlock()
	})
}

func register(name string, initErr error) {
	Register(name, func() blit.Backend { return &stubBackend{name: name, initErr: initErr} })
}

func nameOf(b blit.Backend) string {
	if s, ok := b.(*stubBackend); ok {
		return s.name
	}
	return ""
}

func TestRegisterAndGet(t *testing.T) {
	withRegistry(t)
	register("software", nil)

	if !IsRegistered("software") {
		t.Fatal("IsRegistered(software) = false")
	}
	if got := nameOf(Get("software")); got != "software" {
		t.Errorf("Get(software) = %q, want software", got)
	}
	if Get("missing") != nil {
		t.Error("Get(missing) should return nil")
	}
}

func TestGetReturnsFreshInstances(t *testing.T) {
	withRegistry(t)
	register("software", nil)

	if Get("software") == Get("software") {
		t.Error("Get returned the same instance twice")
	}
}

func TestUnregister(t *testing.T) {
	withRegistry(t)
	register("software", nil)
	Unregister("software")

	if IsRegistered("software") {
		t.Error("software still registered after Unregister")
	}
}

func TestAvailableSorted(t *testing.T) {
	withRegistry(t)
	register("wgpu", nil)
	register("custom", nil)
	register("software", nil)

	want := []string{"custom", "software", "wgpu"}
	if got := Available(); !slices.Equal(got, want) {
		t.Errorf("Available() = %v, want %v", got, want)
	}
}

func TestDefaultPriority(t *testing.T) {
	tests := []struct {
		name       string
		registered []string
		want       string
	}{
		{"wgpu wins", []string{"software", "wgpu"}, "wgpu"},
		{"software fallback", []string{"software"}, "software"},
		{"software before others", []string{"custom", "software"}, "software"},
		{"any other", []string{"zeta", "alpha"}, "alpha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withRegistry(t)
			for _, n := range tt.registered {
				register(n, nil)
			}
			if got := nameOf(Default()); got != tt.want {
				t.Errorf("Default() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultEmpty(t *testing.T) {
	withRegistry(t)
	if Default() != nil {
		t.Error("Default() with empty registry should be nil")
	}
}

func TestMustDefaultPanics(t *testing.T) {
	withRegistry(t)
	defer func() {
		if recover() == nil {
			t.Error("MustDefault() did not panic")
		}
	}()
	MustDefault()
}

func TestInitDefaultFallsBack(t *testing.T) {
	withRegistry(t)
	errNoDevice := errors.New("no device")
	register("wgpu", errNoDevice)
	register("software", nil)

	b, err := InitDefault(64, 64)
	if err != nil {
		t.Fatalf("InitDefault() error = %v", err)
	}
	if got := nameOf(b); got != "software" {
		t.Errorf("InitDefault() = %q, want software", got)
	}
	if !b.(*stubBackend).inited {
		t.Error("backend not initialized")
	}
}

func TestInitDefaultErrors(t *testing.T) {
	withRegistry(t)
	if _, err := InitDefault(1, 1); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("empty registry: error = %v, want ErrBackendNotAvailable", err)
	}

	errNoDevice := errors.New("no device")
	register("wgpu", errNoDevice)
	_, err := InitDefault(1, 1)
	if !errors.Is(err, ErrBackendNotAvailable) || !errors.Is(err, errNoDevice) {
		t.Errorf("failing backend: error = %v, want both causes", err)
	}
}

func TestInitByName(t *testing.T) {
	withRegistry(t)
	register("software", nil)

	if _, err := Init("software", 8, 8); err != nil {
		t.Errorf("Init(software) error = %v", err)
	}
	if _, err := Init("wgpu", 8, 8); !errors.Is(err, ErrBackendNotAvailable) {
		t.Errorf("Init(wgpu) error = %v, want ErrBackendNotAvailable", err)
	}
}
