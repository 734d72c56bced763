package blit

import "github.com/chewxy/math32"

// Vec2 represents a 2D position or displacement in float32 space.
// Vertex positions and texture coordinates are stored as Vec2.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Vec2 constants.
var (
	Vec2Zero  = Vec2{}
	Vec2One   = Vec2{X: 1, Y: 1}
	Vec2Right = Vec2{X: 1}
	Vec2Up    = Vec2{Y: -1}
	Vec2Down  = Vec2{Y: 1}
	Vec2Left  = Vec2{X: -1}
)

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// MulVec returns the component-wise product of two vectors.
func (v Vec2) MulVec(w Vec2) Vec2 {
	return Vec2{X: v.X * w.X, Y: v.Y * w.Y}
}

// Div returns the vector divided by a scalar.
func (v Vec2) Div(s float32) Vec2 {
	return Vec2{X: v.X / s, Y: v.Y / s}
}

// Neg returns the negation of the vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float32 {
	return v.X*w.X + v.Y*w.Y
}

// Length returns the length (magnitude) of the vector.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSq returns the squared length of the vector.
func (v Vec2) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Normal returns a unit vector in the same direction.
// Returns the zero vector if v has zero length.
func (v Vec2) Normal() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// TurnRight returns v rotated 90 degrees clockwise in y-down screen space.
func (v Vec2) TurnRight() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// TurnLeft returns v rotated 90 degrees counter-clockwise in y-down screen space.
func (v Vec2) TurnLeft() Vec2 {
	return Vec2{X: v.Y, Y: -v.X}
}

// Round rounds both components to the nearest integer.
func (v Vec2) Round() Vec2 {
	return Vec2{X: math32.Round(v.X), Y: math32.Round(v.Y)}
}

// Floor returns both components rounded down.
func (v Vec2) Floor() Vec2 {
	return Vec2{X: math32.Floor(v.X), Y: math32.Floor(v.Y)}
}

// Lerp performs linear interpolation between two vectors.
func (v Vec2) Lerp(w Vec2, t float32) Vec2 {
	return Vec2{
		X: v.X + (w.X-v.X)*t,
		Y: v.Y + (w.Y-v.Y)*t,
	}
}

// Angle returns the angle of the vector in radians.
func (v Vec2) Angle() float32 {
	return math32.Atan2(v.Y, v.X)
}

// FromAngle returns a vector of the given length pointing at angle radians.
func FromAngle(angle, length float32) Vec2 {
	return Vec2{X: math32.Cos(angle) * length, Y: math32.Sin(angle) * length}
}

// Point is an integer 2D coordinate or size.
type Point struct {
	X, Y int
}

// Pt is a convenience function to create a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Vec2 converts the point to float space.
func (p Point) Vec2() Vec2 {
	return Vec2{X: float32(p.X), Y: float32(p.Y)}
}
