package backend

import (
	"errors"
)

// Backend names.
const (
	// NameWGPU is the GPU backend over gogpu/wgpu hal.
	NameWGPU = "wgpu"
	// NameSoftware is the CPU rasterizer.
	NameSoftware = "software"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)
