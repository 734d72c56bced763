package blit

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// TextureFormat is the pixel format of a texture.
type TextureFormat uint8

// Texture formats.
const (
	TextureFormatNone TextureFormat = iota
	TextureFormatR
	TextureFormatRG
	TextureFormatRGBA
	TextureFormatDepthStencil
)

// BytesPerPixel returns the size of one texel, or 0 for TextureFormatNone.
func (f TextureFormat) BytesPerPixel() int {
	switch f {
	case TextureFormatR:
		return 1
	case TextureFormatRG:
		return 2
	case TextureFormatRGBA, TextureFormatDepthStencil:
		return 4
	default:
		return 0
	}
}

// String returns the format name.
func (f TextureFormat) String() string {
	switch f {
	case TextureFormatR:
		return "R"
	case TextureFormatRG:
		return "RG"
	case TextureFormatRGBA:
		return "RGBA"
	case TextureFormatDepthStencil:
		return "DepthStencil"
	default:
		return "None"
	}
}

// Texture is a backend-owned 2D image.
type Texture interface {
	Width() int
	Height() int
	Format() TextureFormat
	// SetData replaces the contents. len(data) must be Width*Height*BytesPerPixel.
	SetData(data []byte)
	// GetData reads the contents back into data.
	// Shipped backends return ErrNotImplemented.
	GetData(data []byte) error
	// IsFramebuffer reports whether the texture is a Target attachment.
	IsFramebuffer() bool
}

// ClearMask selects which attachments a clear affects.
type ClearMask uint8

// Clear masks.
const (
	ClearNone    ClearMask = 0
	ClearColor   ClearMask = 1
	ClearDepth   ClearMask = 2
	ClearStencil ClearMask = 4
	ClearAll     ClearMask = ClearColor | ClearDepth | ClearStencil
)

// Target is something a RenderPass can draw into: the backbuffer or an
// offscreen framebuffer with one or more texture attachments.
type Target interface {
	Width() int
	Height() int
	// Textures returns the attachments. The backbuffer returns none.
	Textures() []Texture
	Clear(color Color, depth float32, stencil uint8, mask ClearMask)
}

// MaxTargetAttachments is the maximum number of color attachments a Target
// may have, not counting a single depth-stencil attachment.
const MaxTargetAttachments = 4

// VertexType is the data type of a vertex attribute.
type VertexType uint8

// Vertex attribute types.
const (
	VertexNone VertexType = iota
	VertexFloat
	VertexFloat2
	VertexFloat3
	VertexFloat4
	VertexByte4
	VertexUByte4
	VertexShort2
	VertexUShort2
	VertexShort4
	VertexUShort4
)

// Size returns the size of the type in bytes.
func (t VertexType) Size() int {
	switch t {
	case VertexFloat:
		return 4
	case VertexFloat2:
		return 8
	case VertexFloat3:
		return 12
	case VertexFloat4:
		return 16
	case VertexByte4, VertexUByte4, VertexShort2, VertexUShort2:
		return 4
	case VertexShort4, VertexUShort4:
		return 8
	default:
		return 0
	}
}

// VertexAttribute describes one attribute in a vertex.
type VertexAttribute struct {
	// Index is the shader input location the attribute binds to.
	Index int
	Type  VertexType
	// Normalized maps integer types to [0,1] (or [-1,1]) in the shader.
	Normalized bool
}

// VertexFormat is an ordered list of attributes and the stride between vertices.
type VertexFormat struct {
	Attributes []VertexAttribute
	Stride     int
}

// NewVertexFormat builds a tightly packed format from attributes.
func NewVertexFormat(attrs ...VertexAttribute) VertexFormat {
	stride := 0
	for _, a := range attrs {
		stride += a.Type.Size()
	}
	return VertexFormat{Attributes: attrs, Stride: stride}
}

// Offset returns the byte offset of attribute i.
func (f VertexFormat) Offset(i int) int {
	offset := 0
	for j := 0; j < i && j < len(f.Attributes); j++ {
		offset += f.Attributes[j].Type.Size()
	}
	return offset
}

// Hash returns a FNV-1a hash of the attributes and stride.
// Backends use it as part of their layout cache keys.
func (f VertexFormat) Hash() uint64 {
	h := fnv.New64a()
	var buf [4]byte
	for _, a := range f.Attributes {
		buf[0] = byte(a.Index)
		buf[1] = byte(a.Type)
		buf[2] = 0
		if a.Normalized {
			buf[2] = 1
		}
		buf[3] = 0xff
		_, _ = h.Write(buf[:])
	}
	binary.LittleEndian.PutUint32(buf[:], uint32(f.Stride))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// Equal reports whether two formats describe the same layout.
func (f VertexFormat) Equal(o VertexFormat) bool {
	if f.Stride != o.Stride || len(f.Attributes) != len(o.Attributes) {
		return false
	}
	for i := range f.Attributes {
		if f.Attributes[i] != o.Attributes[i] {
			return false
		}
	}
	return true
}

// IndexFormat is the width of mesh indices.
type IndexFormat uint8

// Index formats.
const (
	IndexUInt16 IndexFormat = iota
	IndexUInt32
)

// Size returns the size of one index in bytes.
func (f IndexFormat) Size() int {
	if f == IndexUInt32 {
		return 4
	}
	return 2
}

// Mesh holds index, vertex and optional instance data on the backend.
// Setting data again reuses the backend storage when it is large enough.
type Mesh interface {
	IndexData(format IndexFormat, data []byte, count int)
	VertexData(format VertexFormat, data []byte, count int)
	InstanceData(format VertexFormat, data []byte, count int)
	IndexCount() int
	VertexCount() int
	InstanceCount() int
}

// IndexBytes32 encodes indices as little-endian uint32 values.
func IndexBytes32(dst []byte, indices []uint32) []byte {
	dst = dst[:0]
	for _, i := range indices {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}

// IndexBytes16 encodes indices as little-endian uint16 values.
func IndexBytes16(dst []byte, indices []uint16) []byte {
	dst = dst[:0]
	for _, i := range indices {
		dst = binary.LittleEndian.AppendUint16(dst, i)
	}
	return dst
}

// VertexStride is the size in bytes of an encoded Vertex.
const VertexStride = 24

// VertexBytes encodes vertices in the sprite vertex layout.
func VertexBytes(dst []byte, vertices []Vertex) []byte {
	dst = dst[:0]
	for _, v := range vertices {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Pos.X))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Pos.Y))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Tex.X))
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v.Tex.Y))
		dst = append(dst, v.Col.R, v.Col.G, v.Col.B, v.Col.A, v.Mult, v.Wash, v.Fill, v.Pad)
	}
	return dst
}

// Vertex is the sprite vertex emitted by Batch.
//
// Mult, Wash and Fill select between the three terms of the default shader:
// texture*color, texture alpha*color, and flat color.
type Vertex struct {
	Pos  Vec2
	Tex  Vec2
	Col  Color
	Mult uint8
	Wash uint8
	Fill uint8
	Pad  uint8
}

// VertexFormatSprite is the VertexFormat of Vertex.
var VertexFormatSprite = NewVertexFormat(
	VertexAttribute{Index: 0, Type: VertexFloat2},
	VertexAttribute{Index: 1, Type: VertexFloat2},
	VertexAttribute{Index: 2, Type: VertexUByte4, Normalized: true},
	VertexAttribute{Index: 3, Type: VertexUByte4, Normalized: true},
)
