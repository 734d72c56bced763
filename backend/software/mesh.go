package software

import (
	"encoding/binary"

	"github.com/gogpu/blit"
)

// Mesh keeps copies of index, vertex and instance data. Storage is reused
// across updates while it is large enough.
type Mesh struct {
	indexFormat blit.IndexFormat
	indices     []byte
	indexCount  int

	vertexFormat blit.VertexFormat
	vertices     []byte
	vertexCount  int

	instanceFormat blit.VertexFormat
	instances      []byte
	instanceCount  int
}

// IndexData replaces the indices.
func (m *Mesh) IndexData(format blit.IndexFormat, data []byte, count int) {
	m.indexFormat = format
	m.indices, m.indexCount = store(m.indices, data, count, format.Size())
}

// VertexData replaces the vertices.
func (m *Mesh) VertexData(format blit.VertexFormat, data []byte, count int) {
	m.vertexFormat = format
	m.vertices, m.vertexCount = store(m.vertices, data, count, format.Stride)
}

// InstanceData replaces the per-instance data. The rasterizer draws a
// single instance, so it is kept for bookkeeping only.
func (m *Mesh) InstanceData(format blit.VertexFormat, data []byte, count int) {
	m.instanceFormat = format
	m.instances, m.instanceCount = store(m.instances, data, count, format.Stride)
}

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int { return m.indexCount }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return m.vertexCount }

// InstanceCount returns the number of instances.
func (m *Mesh) InstanceCount() int { return m.instanceCount }

// store copies count elements of size bytes from data into dst, clamping
// count to what data holds.
func store(dst, data []byte, count, size int) ([]byte, int) {
	if count < 0 {
		count = 0
	}
	if size > 0 && count*size > len(data) {
		blit.Logger().Warn("software: mesh data shorter than count",
			"count", count, "bytes", len(data), "element_size", size)
		count = len(data) / size
	}
	n := count * size
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	copy(dst, data)
	return dst, count
}

// index returns index i.
func (m *Mesh) index(i int) int {
	if m.indexFormat == blit.IndexUInt32 {
		return int(binary.LittleEndian.Uint32(m.indices[i*4:]))
	}
	return int(binary.LittleEndian.Uint16(m.indices[i*2:]))
}
