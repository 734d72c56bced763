package blit

import "github.com/chewxy/math32"

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float32
}

// R is a convenience function to create a Rect.
func R(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// NoScissor is the scissor marker meaning "scissor disabled".
// Any rectangle with a negative width is treated the same way.
var NoScissor = Rect{X: 0, Y: 0, W: -1, H: -1}

// Left returns the left edge.
func (r Rect) Left() float32 { return r.X }

// Right returns the right edge.
func (r Rect) Right() float32 { return r.X + r.W }

// Top returns the top edge.
func (r Rect) Top() float32 { return r.Y }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float32 { return r.Y + r.H }

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Vec2 { return Vec2{X: r.X, Y: r.Y} }

// TopRight returns the top-right corner.
func (r Rect) TopRight() Vec2 { return Vec2{X: r.X + r.W, Y: r.Y} }

// BottomRight returns the bottom-right corner.
func (r Rect) BottomRight() Vec2 { return Vec2{X: r.X + r.W, Y: r.Y + r.H} }

// BottomLeft returns the bottom-left corner.
func (r Rect) BottomLeft() Vec2 { return Vec2{X: r.X, Y: r.Y + r.H} }

// Center returns the center point.
func (r Rect) Center() Vec2 { return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Size returns the width and height as a vector.
func (r Rect) Size() Vec2 { return Vec2{X: r.W, Y: r.H} }

// Contains reports whether p lies inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Overlaps reports whether the two rectangles share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X+r.W > o.X && r.Y+r.H > o.Y && r.X < o.X+o.W && r.Y < o.Y+o.H
}

// OverlapRect returns the intersection of r and o.
// The result is the zero rectangle if they do not overlap.
func (r Rect) OverlapRect(o Rect) Rect {
	if !r.Overlaps(o) {
		return Rect{}
	}
	x := math32.Max(r.X, o.X)
	y := math32.Max(r.Y, o.Y)
	return Rect{
		X: x,
		Y: y,
		W: math32.Min(r.X+r.W, o.X+o.W) - x,
		H: math32.Min(r.Y+r.H, o.Y+o.H) - y,
	}
}

// Inflate grows the rectangle by amount on every side.
func (r Rect) Inflate(amount float32) Rect {
	return Rect{X: r.X - amount, Y: r.Y - amount, W: r.W + amount*2, H: r.H + amount*2}
}

// Translate offsets the rectangle by v.
func (r Rect) Translate(v Vec2) Rect {
	return Rect{X: r.X + v.X, Y: r.Y + v.Y, W: r.W, H: r.H}
}

// Scale multiplies position and size by s.
func (r Rect) Scale(s float32) Rect {
	return Rect{X: r.X * s, Y: r.Y * s, W: r.W * s, H: r.H * s}
}
