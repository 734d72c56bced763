// Package wgpu implements blit.Backend on the gogpu/wgpu hardware
// abstraction layer.
//
// The backend renders into an offscreen RGBA8 backbuffer with a
// Depth24PlusStencil8 attachment. Shaders are WGSL, compiled to SPIR-V with
// gogpu/naga and reflected for their bindings; every shader uses bind group
// 0 only.
//
// Render pipelines, samplers and vertex layouts are created on first use
// and kept in bounded LRU caches keyed by the state that affects them:
//
//	shader, vertex format, instance format, blend mode, depth compare,
//	cull mode, target attachment formats
//
// Importing the package registers it with the backend registry:
//
//	import _ "github.com/gogpu/blit/backend/wgpu"
//
//	b, err := backend.Init(backend.NameWGPU, 1280, 720)
//
// Without options the backend opens a Vulkan adapter, preferring discrete
// and integrated GPUs. An application that already owns a device passes it
// with WithDeviceProvider; tests pass the noop HAL with WithInstanceCreator.
//
// Each Render call encodes one render pass that loads the target, submits
// it and waits for the fence, so draws are ordered and uniform buffers can
// be released immediately.
package wgpu
