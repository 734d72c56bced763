package wgpu

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/blit"
)

func TestBlendState(t *testing.T) {
	s := blendState(blit.BlendNormal)
	if s.Color.SrcFactor != gputypes.BlendFactorOne || s.Color.DstFactor != gputypes.BlendFactorOneMinusSrcAlpha {
		t.Errorf("normal color = %+v", s.Color)
	}
	if s.Alpha.Operation != gputypes.BlendOperationAdd {
		t.Errorf("normal alpha op = %v", s.Alpha.Operation)
	}

	sub := blendState(blit.BlendSubtract)
	if sub.Color.Operation != gputypes.BlendOperationReverseSubtract {
		t.Errorf("subtract color op = %v", sub.Color.Operation)
	}
}

func TestBlendFactorConstants(t *testing.T) {
	tests := []struct {
		in   blit.BlendFactor
		want gputypes.BlendFactor
	}{
		{blit.BlendZero, gputypes.BlendFactorZero},
		{blit.BlendSrcColor, gputypes.BlendFactorSrc},
		{blit.BlendOneMinusDstColor, gputypes.BlendFactorOneMinusDst},
		{blit.BlendConstantColor, gputypes.BlendFactorConstant},
		{blit.BlendConstantAlpha, gputypes.BlendFactorConstant},
		{blit.BlendOneMinusConstantAlpha, gputypes.BlendFactorOneMinusConstant},
		{blit.BlendSrcAlphaSaturate, gputypes.BlendFactorSrcAlphaSaturated},
	}
	for _, tt := range tests {
		if got := blendFactor(tt.in); got != tt.want {
			t.Errorf("blendFactor(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWriteMask(t *testing.T) {
	if writeMask(blit.BlendMaskRGBA) != gputypes.ColorWriteMaskAll {
		t.Error("RGBA mask is not ColorWriteMaskAll")
	}
	if writeMask(blit.BlendMaskNone) != gputypes.ColorWriteMaskNone {
		t.Error("empty mask writes channels")
	}
	if writeMask(blit.BlendMaskRed|blit.BlendMaskAlpha) != gputypes.ColorWriteMaskRed|gputypes.ColorWriteMaskAlpha {
		t.Error("red|alpha mask mismatch")
	}
}

func TestDepthAndCull(t *testing.T) {
	off := depthStencilState(blit.CompareNone)
	if off.DepthWriteEnabled || off.DepthCompare != gputypes.CompareFunctionAlways {
		t.Errorf("disabled depth = %+v", off)
	}
	on := depthStencilState(blit.CompareLessOrEqual)
	if !on.DepthWriteEnabled || on.DepthCompare != gputypes.CompareFunctionLessEqual {
		t.Errorf("less-equal depth = %+v", on)
	}

	for _, tc := range []struct {
		cull blit.Cull
		want gputypes.CullMode
	}{
		{blit.CullNone, gputypes.CullModeNone},
		{blit.CullFront, gputypes.CullModeFront},
		{blit.CullBack, gputypes.CullModeBack},
	} {
		p := primitiveState(tc.cull)
		if p.CullMode != tc.want || p.FrontFace != gputypes.FrontFaceCCW {
			t.Errorf("primitiveState(%d) = %+v", tc.cull, p)
		}
	}
}

func TestVertexAttributes(t *testing.T) {
	attrs := vertexAttributes(blit.VertexFormatSprite)
	want := []gputypes.VertexAttribute{
		{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
		{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
		{Format: gputypes.VertexFormatUnorm8x4, Offset: 16, ShaderLocation: 2},
		{Format: gputypes.VertexFormatUnorm8x4, Offset: 20, ShaderLocation: 3},
	}
	if len(attrs) != len(want) {
		t.Fatalf("attributes = %+v", attrs)
	}
	for i := range want {
		if attrs[i] != want[i] {
			t.Errorf("attribute %d = %+v, want %+v", i, attrs[i], want[i])
		}
	}

	skipped := vertexAttributes(blit.NewVertexFormat(
		blit.VertexAttribute{Index: 0, Type: blit.VertexNone},
		blit.VertexAttribute{Index: 1, Type: blit.VertexFloat},
	))
	if len(skipped) != 1 || skipped[0].ShaderLocation != 1 {
		t.Errorf("unsupported attribute not skipped: %+v", skipped)
	}
}

func TestSamplerDescriptor(t *testing.T) {
	d := samplerDescriptor(blit.NewSampler(blit.FilterNearest, blit.WrapRepeat))
	if d.MagFilter != gputypes.FilterModeNearest || d.AddressModeU != gputypes.AddressModeRepeat {
		t.Errorf("nearest repeat = %+v", d)
	}
	d = samplerDescriptor(blit.TextureSampler{})
	if d.MagFilter != gputypes.FilterModeLinear || d.AddressModeV != gputypes.AddressModeClampToEdge {
		t.Errorf("zero sampler = %+v", d)
	}
}
