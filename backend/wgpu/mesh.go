package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/blit"
)

// meshBuffer is a GPU buffer that grows on demand and is reused while it
// is large enough.
type meshBuffer struct {
	buf   hal.Buffer
	size  uint64
	usage gputypes.BufferUsage
	label string
}

// write uploads data, reallocating when the buffer is too small. Buffer
// sizes are padded to 4 bytes.
func (b *meshBuffer) write(gpu *device, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	need := uint64(len(data)+3) &^ 3
	if b.buf == nil || b.size < need {
		b.release(gpu)
		buf, err := gpu.dev.CreateBuffer(&hal.BufferDescriptor{
			Label: b.label,
			Size:  need,
			Usage: b.usage | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return err
		}
		b.buf, b.size = buf, need
		blit.Logger().Debug("wgpu: mesh buffer grown", "label", b.label, "size", need)
	}
	if pad := int(need) - len(data); pad > 0 {
		data = append(data[:len(data):len(data)], make([]byte, pad)...)
	}
	gpu.queue.WriteBuffer(b.buf, 0, data)
	return nil
}

func (b *meshBuffer) release(gpu *device) {
	if b.buf != nil {
		gpu.dev.DestroyBuffer(b.buf)
		b.buf, b.size = nil, 0
	}
}

// Mesh holds index, vertex and instance data in GPU buffers.
type Mesh struct {
	gpu *device

	indexFormat blit.IndexFormat
	indices     meshBuffer
	indexCount  int

	vertexFormat blit.VertexFormat
	vertices     meshBuffer
	vertexCount  int

	instanceFormat blit.VertexFormat
	instances      meshBuffer
	instanceCount  int
}

// IndexData replaces the indices.
func (m *Mesh) IndexData(format blit.IndexFormat, data []byte, count int) {
	m.init()
	m.indexFormat = format
	m.indexCount = m.upload(&m.indices, data, count, format.Size())
}

// VertexData replaces the vertices.
func (m *Mesh) VertexData(format blit.VertexFormat, data []byte, count int) {
	m.init()
	m.vertexFormat = format
	m.vertexCount = m.upload(&m.vertices, data, count, format.Stride)
}

// InstanceData replaces the per-instance data.
func (m *Mesh) InstanceData(format blit.VertexFormat, data []byte, count int) {
	m.init()
	m.instanceFormat = format
	m.instanceCount = m.upload(&m.instances, data, count, format.Stride)
}

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int { return m.indexCount }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return m.vertexCount }

// InstanceCount returns the number of instances.
func (m *Mesh) InstanceCount() int { return m.instanceCount }

func (m *Mesh) init() {
	if m.indices.label != "" {
		return
	}
	m.indices = meshBuffer{label: "blit_mesh_indices", usage: gputypes.BufferUsageIndex}
	m.vertices = meshBuffer{label: "blit_mesh_vertices", usage: gputypes.BufferUsageVertex}
	m.instances = meshBuffer{label: "blit_mesh_instances", usage: gputypes.BufferUsageVertex}
}

// upload writes count elements of size bytes and returns the count
// actually stored.
func (m *Mesh) upload(b *meshBuffer, data []byte, count, size int) int {
	if count < 0 {
		count = 0
	}
	if size > 0 && count*size > len(data) {
		blit.Logger().Warn("wgpu: mesh data shorter than count",
			"count", count, "bytes", len(data), "element_size", size)
		count = len(data) / size
	}
	if err := b.write(m.gpu, data[:count*size]); err != nil {
		blit.Logger().Error("wgpu: mesh upload failed", "label", b.label, "err", err)
		return 0
	}
	return count
}
