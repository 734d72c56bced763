package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/blit"
)

// Factory creates a new, uninitialized backend instance.
type Factory func() blit.Backend

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{NameWGPU, NameSoftware}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string) blit.Backend {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available backend based on priority.
// Priority order: wgpu > software, then any other registered backend in
// name order. Returns nil if no backends are registered.
func Default() blit.Backend {
	for _, name := range candidates() {
		if b := Get(name); b != nil {
			return b
		}
	}
	return nil
}

// candidates returns registered names in selection order.
func candidates() []string {
	names := Available()
	out := make([]string, 0, len(names))
	for _, name := range backendPriority {
		if slices.Contains(names, name) {
			out = append(out, name)
		}
	}
	for _, name := range names {
		if !slices.Contains(backendPriority, name) {
			out = append(out, name)
		}
	}
	return out
}

// MustDefault returns the default backend or panics.
func MustDefault() blit.Backend {
	b := Default()
	if b == nil {
		panic("backend: no backend available")
	}
	return b
}

// InitDefault initializes the best backend that accepts a backbuffer of
// the given size. A backend whose Init fails is logged and the next
// candidate is tried.
func InitDefault(width, height int) (blit.Backend, error) {
	var lastErr error
	for _, name := range candidates() {
		b := Get(name)
		if b == nil {
			continue
		}
		if err := b.Init(width, height); err != nil {
			blit.Logger().Warn("backend: init failed", "backend", name, "err", err)
			lastErr = err
			continue
		}
		return b, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrBackendNotAvailable, lastErr)
	}
	return nil, ErrBackendNotAvailable
}

// Init initializes the backend registered under name.
func Init(name string, width, height int) (blit.Backend, error) {
	b := Get(name)
	if b == nil {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	if err := b.Init(width, height); err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	return b, nil
}
