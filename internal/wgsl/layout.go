package wgsl

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/naga/ir"

	"github.com/gogpu/blit"
)

// uniformLayout returns the fields of a uniform buffer of type h and the
// buffer size. A struct exposes one field per member at the member offset
// naga assigned; any other type is a single field named after the buffer.
func uniformLayout(mod *ir.Module, name string, h ir.TypeHandle) ([]Field, int, error) {
	if st, ok := mod.Types[h].Inner.(ir.StructType); ok {
		fields := make([]Field, 0, len(st.Members))
		for _, m := range st.Members {
			f, err := field(mod, m.Name, m.Type)
			if err != nil {
				return nil, 0, fmt.Errorf("%s: %w", m.Name, err)
			}
			f.Offset = int(m.Offset)
			fields = append(fields, f)
		}
		return fields, roundUp(16, int(st.Span)), nil
	}

	f, err := field(mod, name, h)
	if err != nil {
		return nil, 0, err
	}
	return []Field{f}, roundUp(16, int(ir.TypeSize(mod, h))), nil
}

// field describes a value of type h, unwrapping fixed-size arrays.
func field(mod *ir.Module, name string, h ir.TypeHandle) (Field, error) {
	f := Field{Name: name, ArrayLength: 1, Stride: int(ir.TypeSize(mod, h))}
	if arr, ok := mod.Types[h].Inner.(ir.ArrayType); ok {
		if arr.Size.Constant == nil || *arr.Size.Constant == 0 {
			return Field{}, fmt.Errorf("%w: runtime-sized array", ErrParse)
		}
		f.ArrayLength = int(*arr.Size.Constant)
		f.Stride = int(arr.Stride)
		h = arr.Base
	}
	t, ok := valueType(mod.Types[h].Inner)
	if !ok {
		return Field{}, fmt.Errorf("%w: unsupported uniform type", ErrParse)
	}
	f.Type = t
	return f, nil
}

// valueType maps the f32 value types materials can hold.
func valueType(inner ir.TypeInner) (blit.UniformType, bool) {
	f32 := func(s ir.ScalarType) bool { return s.Kind == ir.ScalarFloat && s.Width == 4 }

	switch t := inner.(type) {
	case ir.ScalarType:
		if f32(t) {
			return blit.UniformFloat, true
		}
	case ir.VectorType:
		if !f32(t.Scalar) {
			break
		}
		switch t.Size {
		case ir.Vec2:
			return blit.UniformFloat2, true
		case ir.Vec3:
			return blit.UniformFloat3, true
		case ir.Vec4:
			return blit.UniformFloat4, true
		}
	case ir.MatrixType:
		if !f32(t.Scalar) {
			break
		}
		switch {
		case t.Columns == ir.Vec3 && t.Rows == ir.Vec2:
			return blit.UniformMat3x2, true
		case t.Columns == ir.Vec4 && t.Rows == ir.Vec4:
			return blit.UniformMat4x4, true
		}
	}
	return blit.UniformNone, false
}

func roundUp(align, n int) int {
	return (n + align - 1) / align * align
}

// Pack writes material data, packed as consecutive floats per uniform,
// into dst laid out as binding b. dst must be at least b.Size bytes.
// data holds the floats of b's fields in order.
func Pack(dst []byte, b *Binding, data []float32) []float32 {
	for _, f := range b.Fields {
		n := f.Type.Components()
		for i := range f.ArrayLength {
			if len(data) < n {
				return data[:0]
			}
			at := f.Offset + i*f.Stride
			for k := range n {
				putFloat(dst[at+k*4:], data[k])
			}
			data = data[n:]
		}
	}
	return data
}

func putFloat(b []byte, f float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(f))
}
