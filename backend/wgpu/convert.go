package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/blit"
)

// blendState converts a blend mode. WebGPU has a single constant blend
// factor, so the constant alpha factors use the whole constant color.
func blendState(m blit.BlendMode) gputypes.BlendState {
	return gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: blendFactor(m.ColorSrc),
			DstFactor: blendFactor(m.ColorDst),
			Operation: blendOp(m.ColorOp),
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: blendFactor(m.AlphaSrc),
			DstFactor: blendFactor(m.AlphaDst),
			Operation: blendOp(m.AlphaOp),
		},
	}
}

func blendOp(op blit.BlendOp) gputypes.BlendOperation {
	switch op {
	case blit.BlendOpSubtract:
		return gputypes.BlendOperationSubtract
	case blit.BlendOpReverseSubtract:
		return gputypes.BlendOperationReverseSubtract
	case blit.BlendOpMin:
		return gputypes.BlendOperationMin
	case blit.BlendOpMax:
		return gputypes.BlendOperationMax
	default:
		return gputypes.BlendOperationAdd
	}
}

func blendFactor(f blit.BlendFactor) gputypes.BlendFactor {
	switch f {
	case blit.BlendOne:
		return gputypes.BlendFactorOne
	case blit.BlendSrcColor:
		return gputypes.BlendFactorSrc
	case blit.BlendOneMinusSrcColor:
		return gputypes.BlendFactorOneMinusSrc
	case blit.BlendDstColor:
		return gputypes.BlendFactorDst
	case blit.BlendOneMinusDstColor:
		return gputypes.BlendFactorOneMinusDst
	case blit.BlendSrcAlpha:
		return gputypes.BlendFactorSrcAlpha
	case blit.BlendOneMinusSrcAlpha:
		return gputypes.BlendFactorOneMinusSrcAlpha
	case blit.BlendDstAlpha:
		return gputypes.BlendFactorDstAlpha
	case blit.BlendOneMinusDstAlpha:
		return gputypes.BlendFactorOneMinusDstAlpha
	case blit.BlendConstantColor, blit.BlendConstantAlpha:
		return gputypes.BlendFactorConstant
	case blit.BlendOneMinusConstantColor, blit.BlendOneMinusConstantAlpha:
		return gputypes.BlendFactorOneMinusConstant
	case blit.BlendSrcAlphaSaturate:
		return gputypes.BlendFactorSrcAlphaSaturated
	default:
		return gputypes.BlendFactorZero
	}
}

func writeMask(m blit.BlendMask) gputypes.ColorWriteMask {
	mask := gputypes.ColorWriteMaskNone
	if m&blit.BlendMaskRed != 0 {
		mask |= gputypes.ColorWriteMaskRed
	}
	if m&blit.BlendMaskGreen != 0 {
		mask |= gputypes.ColorWriteMaskGreen
	}
	if m&blit.BlendMaskBlue != 0 {
		mask |= gputypes.ColorWriteMaskBlue
	}
	if m&blit.BlendMaskAlpha != 0 {
		mask |= gputypes.ColorWriteMaskAlpha
	}
	return mask
}

// compareFunction converts a depth comparison. CompareNone passes every
// fragment.
func compareFunction(c blit.Compare) gputypes.CompareFunction {
	switch c {
	case blit.CompareNever:
		return gputypes.CompareFunctionNever
	case blit.CompareLess:
		return gputypes.CompareFunctionLess
	case blit.CompareEqual:
		return gputypes.CompareFunctionEqual
	case blit.CompareLessOrEqual:
		return gputypes.CompareFunctionLessEqual
	case blit.CompareGreater:
		return gputypes.CompareFunctionGreater
	case blit.CompareNotEqual:
		return gputypes.CompareFunctionNotEqual
	case blit.CompareGreaterOrEqual:
		return gputypes.CompareFunctionGreaterEqual
	default:
		return gputypes.CompareFunctionAlways
	}
}

// depthStencilState returns the depth state for a pass on a target with a
// depth attachment. The stencil buffer is kept as is.
func depthStencilState(c blit.Compare) *hal.DepthStencilState {
	keep := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	return &hal.DepthStencilState{
		Format:            gputypes.TextureFormatDepth24PlusStencil8,
		DepthWriteEnabled: c != blit.CompareNone,
		DepthCompare:      compareFunction(c),
		StencilFront:      keep,
		StencilBack:       keep,
		StencilReadMask:   0xFF,
		StencilWriteMask:  0,
	}
}

// primitiveState converts a cull mode. Counter-clockwise triangles in
// normalized device coordinates are front faces.
func primitiveState(c blit.Cull) gputypes.PrimitiveState {
	state := gputypes.PrimitiveState{
		Topology:  gputypes.PrimitiveTopologyTriangleList,
		FrontFace: gputypes.FrontFaceCCW,
		CullMode:  gputypes.CullModeNone,
	}
	switch c {
	case blit.CullFront:
		state.CullMode = gputypes.CullModeFront
	case blit.CullBack:
		state.CullMode = gputypes.CullModeBack
	}
	return state
}

// vertexFormat converts an attribute type. Types without a WebGPU
// equivalent report false.
func vertexFormat(a blit.VertexAttribute) (gputypes.VertexFormat, bool) {
	switch a.Type {
	case blit.VertexFloat:
		return gputypes.VertexFormatFloat32, true
	case blit.VertexFloat2:
		return gputypes.VertexFormatFloat32x2, true
	case blit.VertexFloat3:
		return gputypes.VertexFormatFloat32x3, true
	case blit.VertexFloat4:
		return gputypes.VertexFormatFloat32x4, true
	case blit.VertexByte4:
		if a.Normalized {
			return gputypes.VertexFormatSnorm8x4, true
		}
		return gputypes.VertexFormatSint8x4, true
	case blit.VertexUByte4:
		if a.Normalized {
			return gputypes.VertexFormatUnorm8x4, true
		}
		return gputypes.VertexFormatUint8x4, true
	case blit.VertexShort2:
		if a.Normalized {
			return gputypes.VertexFormatSnorm16x2, true
		}
		return gputypes.VertexFormatSint16x2, true
	case blit.VertexUShort2:
		if a.Normalized {
			return gputypes.VertexFormatUnorm16x2, true
		}
		return gputypes.VertexFormatUint16x2, true
	case blit.VertexShort4:
		if a.Normalized {
			return gputypes.VertexFormatSnorm16x4, true
		}
		return gputypes.VertexFormatSint16x4, true
	case blit.VertexUShort4:
		if a.Normalized {
			return gputypes.VertexFormatUnorm16x4, true
		}
		return gputypes.VertexFormatUint16x4, true
	default:
		return gputypes.VertexFormatFloat32, false
	}
}

// vertexAttributes converts a vertex format. Unknown attribute types are
// skipped with a warning.
func vertexAttributes(f blit.VertexFormat) []gputypes.VertexAttribute {
	attrs := make([]gputypes.VertexAttribute, 0, len(f.Attributes))
	offset := 0
	for _, a := range f.Attributes {
		format, ok := vertexFormat(a)
		if !ok {
			blit.Logger().Warn("wgpu: unsupported vertex attribute", "index", a.Index, "type", a.Type)
			offset += a.Type.Size()
			continue
		}
		attrs = append(attrs, gputypes.VertexAttribute{
			Format:         format,
			Offset:         uint64(offset),
			ShaderLocation: uint32(a.Index),
		})
		offset += a.Type.Size()
	}
	return attrs
}

func indexFormat(f blit.IndexFormat) gputypes.IndexFormat {
	if f == blit.IndexUInt32 {
		return gputypes.IndexFormatUint32
	}
	return gputypes.IndexFormatUint16
}

// samplerDescriptor converts a sampler. Unset fields default to linear
// filtering and clamped edges.
func samplerDescriptor(s blit.TextureSampler) *hal.SamplerDescriptor {
	filter := gputypes.FilterModeLinear
	if s.Filter == blit.FilterNearest {
		filter = gputypes.FilterModeNearest
	}
	return &hal.SamplerDescriptor{
		Label:        "blit_sampler",
		AddressModeU: addressMode(s.WrapX),
		AddressModeV: addressMode(s.WrapY),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filter,
		MinFilter:    filter,
		MipmapFilter: filter,
	}
}

func addressMode(w blit.TextureWrap) gputypes.AddressMode {
	if w == blit.WrapRepeat {
		return gputypes.AddressModeRepeat
	}
	return gputypes.AddressModeClampToEdge
}
