package blit

import "github.com/chewxy/math32"

// Mat3x2 represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Mat3x2 struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transformation matrix.
func Identity() Mat3x2 {
	return Mat3x2{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float32) Mat3x2 {
	return Mat3x2{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float32) Mat3x2 {
	return Mat3x2{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float32) Mat3x2 {
	sin, cos := math32.Sincos(angle)
	return Mat3x2{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
}

// Transform builds the usual sprite transform: the origin is moved to
// zero, then the result is scaled, rotated and placed at position.
func Transform(position, origin, scale Vec2, rotation float32) Mat3x2 {
	m := Identity()
	if origin.X != 0 || origin.Y != 0 {
		m = Translate(-origin.X, -origin.Y)
	}
	if scale.X != 1 || scale.Y != 1 {
		m = Scale(scale.X, scale.Y).Multiply(m)
	}
	if rotation != 0 {
		m = Rotate(rotation).Multiply(m)
	}
	if position.X != 0 || position.Y != 0 {
		m = Translate(position.X, position.Y).Multiply(m)
	}
	return m
}

// Multiply multiplies two matrices (m * other): other is applied first.
func (m Mat3x2) Multiply(other Mat3x2) Mat3x2 {
	return Mat3x2{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Mat3x2) TransformPoint(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// TransformVector applies the transformation to a vector (no translation).
func (m Mat3x2) TransformVector(p Vec2) Vec2 {
	return Vec2{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is not invertible.
func (m Mat3x2) Invert() Mat3x2 {
	det := m.A*m.E - m.B*m.D
	if math32.Abs(det) < 1e-10 {
		return Identity()
	}

	invDet := 1.0 / det
	return Mat3x2{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Mat3x2) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// Floats returns the matrix as a WGSL mat3x2<f32>: three columns of vec2.
func (m Mat3x2) Floats() [6]float32 {
	return [6]float32{m.A, m.D, m.B, m.E, m.C, m.F}
}

// Mat4x4 is a column-major 4x4 matrix laid out the way shaders expect it.
type Mat4x4 [16]float32

// Mat4x4Identity returns the 4x4 identity matrix.
func Mat4x4Identity() Mat4x4 {
	return Mat4x4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4x4Ortho creates an orthographic projection mapping the box
// [left,right]x[bottom,top]x[near,far] to clip space with depth in [0,1].
func Mat4x4Ortho(left, right, bottom, top, near, far float32) Mat4x4 {
	return Mat4x4{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, 1 / (near - far), 0,
		(left + right) / (left - right), (top + bottom) / (bottom - top), near / (near - far), 1,
	}
}

// Mat4x4Translate creates a translation matrix.
func Mat4x4Translate(x, y, z float32) Mat4x4 {
	m := Mat4x4Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Mat4x4Scale creates a scaling matrix.
func Mat4x4Scale(x, y, z float32) Mat4x4 {
	m := Mat4x4Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// Multiply returns m * o (o is applied first).
func (m Mat4x4) Multiply(o Mat4x4) Mat4x4 {
	var r Mat4x4
	for col := range 4 {
		for row := range 4 {
			var sum float32
			for k := range 4 {
				sum += m[k*4+row] * o[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// TransformVec4 multiplies the column vector (x, y, z, w) by m.
func (m Mat4x4) TransformVec4(x, y, z, w float32) [4]float32 {
	return [4]float32{
		m[0]*x + m[4]*y + m[8]*z + m[12]*w,
		m[1]*x + m[5]*y + m[9]*z + m[13]*w,
		m[2]*x + m[6]*y + m[10]*z + m[14]*w,
		m[3]*x + m[7]*y + m[11]*z + m[15]*w,
	}
}
