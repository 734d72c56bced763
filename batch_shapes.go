package blit

import "github.com/chewxy/math32"

// Angles in y-down screen space.
const (
	angleRight = 0
	angleDown  = math32.Pi / 2
	angleLeft  = math32.Pi
	angleUp    = -math32.Pi / 2
	tau        = math32.Pi * 2
)

// Corner is the radius and tessellation of one rounded rectangle corner.
type Corner struct {
	Radius float32
	Steps  int
}

// Corners lists rounded corners clockwise from the top-left.
type Corners struct {
	TopLeft, TopRight, BottomRight, BottomLeft Corner
}

// checkSteps enforces steps >= 1, logging and substituting 1 otherwise.
func checkSteps(steps int) int {
	if steps < 1 {
		logLogic("batch: tessellation steps must be at least 1", "steps", steps)
		return 1
	}
	return steps
}

// shape emits a filled triangle that ignores the texture.
func (b *Batch) shapeTri(p0, p1, p2 Vec2, c0, c1, c2 Color) {
	b.pushTri(p0, p1, p2, Vec2{}, Vec2{}, Vec2{}, c0, c1, c2, 0, 0, 255)
}

// shapeQuad emits a filled quad that ignores the texture.
func (b *Batch) shapeQuad(p0, p1, p2, p3 Vec2, c0, c1, c2, c3 Color) {
	b.pushQuad(p0, p1, p2, p3, Vec2{}, Vec2{}, Vec2{}, Vec2{}, c0, c1, c2, c3, 0, 0, 255)
}

// Line draws a segment of thickness t.
func (b *Batch) Line(from, to Vec2, t float32, color Color) {
	b.LineGradient(from, to, t, color, color)
}

// LineGradient draws a segment of thickness t blending between two colors.
func (b *Batch) LineGradient(from, to Vec2, t float32, fromColor, toColor Color) {
	if from == to {
		return
	}
	normal := to.Sub(from).Normal()
	perp := Vec2{X: normal.Y, Y: -normal.X}.Mul(t * 0.5)
	b.shapeQuad(
		from.Add(perp), to.Add(perp), to.Sub(perp), from.Sub(perp),
		fromColor, toColor, toColor, fromColor)
}

// BezierLine draws a quadratic curve through control point c as steps line segments.
func (b *Batch) BezierLine(from, c, to Vec2, steps int, t float32, color Color) {
	steps = checkSteps(steps)
	prev := from
	for i := 1; i <= steps; i++ {
		k := float32(i) / float32(steps)
		at := from.Lerp(c, k).Lerp(c.Lerp(to, k), k)
		b.Line(prev, at, t, color)
		prev = at
	}
}

// BezierLineCubic draws a cubic curve through controls c0 and c1.
func (b *Batch) BezierLineCubic(from, c0, c1, to Vec2, steps int, t float32, color Color) {
	steps = checkSteps(steps)
	prev := from
	for i := 1; i <= steps; i++ {
		k := float32(i) / float32(steps)
		ab := from.Lerp(c0, k)
		bc := c0.Lerp(c1, k)
		cd := c1.Lerp(to, k)
		at := ab.Lerp(bc, k).Lerp(bc.Lerp(cd, k), k)
		b.Line(prev, at, t, color)
		prev = at
	}
}

// Tri draws a filled triangle.
func (b *Batch) Tri(p0, p1, p2 Vec2, color Color) {
	b.shapeTri(p0, p1, p2, color, color, color)
}

// TriColors draws a filled triangle with a color per vertex.
func (b *Batch) TriColors(p0, p1, p2 Vec2, c0, c1, c2 Color) {
	b.shapeTri(p0, p1, p2, c0, c1, c2)
}

// TriTex draws a triangle textured with the current texture.
func (b *Batch) TriTex(p0, p1, p2, t0, t1, t2 Vec2, color Color) {
	b.pushTri(p0, p1, p2, t0, t1, t2, color, color, color, b.texMult, b.texWash, 0)
}

// TriTexColors draws a textured triangle with a color per vertex.
func (b *Batch) TriTexColors(p0, p1, p2, t0, t1, t2 Vec2, c0, c1, c2 Color) {
	b.pushTri(p0, p1, p2, t0, t1, t2, c0, c1, c2, b.texMult, b.texWash, 0)
}

// TriLine draws the outline of a triangle with thickness t, inside its edges.
func (b *Batch) TriLine(p0, p1, p2 Vec2, t float32, color Color) {
	b.polyLine([]Vec2{p0, p1, p2}, t, color)
}

// Rect draws a filled rectangle.
func (b *Batch) Rect(r Rect, color Color) {
	b.shapeQuad(r.TopLeft(), r.TopRight(), r.BottomRight(), r.BottomLeft(), color, color, color, color)
}

// RectColors draws a rectangle with a color per corner, clockwise from the top-left.
func (b *Batch) RectColors(r Rect, tl, tr, br, bl Color) {
	b.shapeQuad(r.TopLeft(), r.TopRight(), r.BottomRight(), r.BottomLeft(), tl, tr, br, bl)
}

// RectLine draws the outline of r with thickness t, inside its edges.
func (b *Batch) RectLine(r Rect, t float32, color Color) {
	if t >= r.W/2 || t >= r.H/2 {
		b.Rect(r, color)
		return
	}
	b.Rect(Rect{X: r.X, Y: r.Y, W: r.W, H: t}, color)
	b.Rect(Rect{X: r.X, Y: r.Y + r.H - t, W: r.W, H: t}, color)
	b.Rect(Rect{X: r.X, Y: r.Y + t, W: t, H: r.H - t*2}, color)
	b.Rect(Rect{X: r.X + r.W - t, Y: r.Y + t, W: t, H: r.H - t*2}, color)
}

// RectRounded draws a filled rectangle with equally rounded corners.
func (b *Batch) RectRounded(r Rect, radius float32, steps int, color Color) {
	c := Corner{Radius: radius, Steps: steps}
	b.RectRoundedCorners(r, Corners{TopLeft: c, TopRight: c, BottomRight: c, BottomLeft: c}, color)
}

// clampCorners limits every radius to half the shorter side.
func clampCorners(r Rect, c Corners) Corners {
	limit := math32.Min(r.W, r.H) / 2
	clampOne := func(k Corner) Corner {
		k.Radius = math32.Max(0, math32.Min(k.Radius, limit))
		return k
	}
	return Corners{
		TopLeft:     clampOne(c.TopLeft),
		TopRight:    clampOne(c.TopRight),
		BottomRight: clampOne(c.BottomRight),
		BottomLeft:  clampOne(c.BottomLeft),
	}
}

// RectRoundedCorners draws a filled rectangle with individually rounded corners.
func (b *Batch) RectRoundedCorners(r Rect, corners Corners, color Color) {
	c := clampCorners(r, corners)
	if c.TopLeft.Radius <= 0 && c.TopRight.Radius <= 0 && c.BottomRight.Radius <= 0 && c.BottomLeft.Radius <= 0 {
		b.Rect(r, color)
		return
	}

	rtl, rtr, rbr, rbl := c.TopLeft.Radius, c.TopRight.Radius, c.BottomRight.Radius, c.BottomLeft.Radius

	// inner corners, where each arc is centered
	tl := Vec2{X: r.X + rtl, Y: r.Y + rtl}
	tr := Vec2{X: r.Right() - rtr, Y: r.Y + rtr}
	br := Vec2{X: r.Right() - rbr, Y: r.Bottom() - rbr}
	bl := Vec2{X: r.X + rbl, Y: r.Bottom() - rbl}

	if rtl > 0 {
		b.SemiCircle(tl, angleLeft, angleLeft+tau/4, rtl, c.TopLeft.Steps, color)
	}
	if rtr > 0 {
		b.SemiCircle(tr, angleUp, angleUp+tau/4, rtr, c.TopRight.Steps, color)
	}
	if rbr > 0 {
		b.SemiCircle(br, angleRight, angleRight+tau/4, rbr, c.BottomRight.Steps, color)
	}
	if rbl > 0 {
		b.SemiCircle(bl, angleDown, angleDown+tau/4, rbl, c.BottomLeft.Steps, color)
	}

	// edge bands between the arcs
	b.Quad(Vec2{X: tl.X, Y: r.Y}, Vec2{X: tr.X, Y: r.Y}, tr, tl, color)
	b.Quad(Vec2{X: r.Right(), Y: tr.Y}, Vec2{X: r.Right(), Y: br.Y}, br, tr, color)
	b.Quad(Vec2{X: br.X, Y: r.Bottom()}, Vec2{X: bl.X, Y: r.Bottom()}, bl, br, color)
	b.Quad(Vec2{X: r.X, Y: bl.Y}, Vec2{X: r.X, Y: tl.Y}, tl, bl, color)

	// center
	b.Quad(tl, tr, br, bl, color)
}

// RectRoundedLine draws the outline of a rounded rectangle.
func (b *Batch) RectRoundedLine(r Rect, radius float32, steps int, t float32, color Color) {
	c := Corner{Radius: radius, Steps: steps}
	b.RectRoundedLineCorners(r, Corners{TopLeft: c, TopRight: c, BottomRight: c, BottomLeft: c}, t, color)
}

// RectRoundedLineCorners draws the outline of a rectangle with
// individually rounded corners.
func (b *Batch) RectRoundedLineCorners(r Rect, corners Corners, t float32, color Color) {
	c := clampCorners(r, corners)
	if c.TopLeft.Radius <= 0 && c.TopRight.Radius <= 0 && c.BottomRight.Radius <= 0 && c.BottomLeft.Radius <= 0 {
		b.RectLine(r, t, color)
		return
	}

	rtl, rtr, rbr, rbl := c.TopLeft.Radius, c.TopRight.Radius, c.BottomRight.Radius, c.BottomLeft.Radius

	// straight edges
	b.Rect(Rect{X: r.X + rtl, Y: r.Y, W: r.W - rtl - rtr, H: t}, color)
	b.Rect(Rect{X: r.Right() - t, Y: r.Y + rtr, W: t, H: r.H - rtr - rbr}, color)
	b.Rect(Rect{X: r.X + rbl, Y: r.Bottom() - t, W: r.W - rbl - rbr, H: t}, color)
	b.Rect(Rect{X: r.X, Y: r.Y + rtl, W: t, H: r.H - rtl - rbl}, color)

	if rtl > 0 {
		b.SemiCircleLine(Vec2{X: r.X + rtl, Y: r.Y + rtl}, angleLeft, angleLeft+tau/4, rtl, c.TopLeft.Steps, t, color)
	}
	if rtr > 0 {
		b.SemiCircleLine(Vec2{X: r.Right() - rtr, Y: r.Y + rtr}, angleUp, angleUp+tau/4, rtr, c.TopRight.Steps, t, color)
	}
	if rbr > 0 {
		b.SemiCircleLine(Vec2{X: r.Right() - rbr, Y: r.Bottom() - rbr}, angleRight, angleRight+tau/4, rbr, c.BottomRight.Steps, t, color)
	}
	if rbl > 0 {
		b.SemiCircleLine(Vec2{X: r.X + rbl, Y: r.Bottom() - rbl}, angleDown, angleDown+tau/4, rbl, c.BottomLeft.Steps, t, color)
	}
}

// SemiCircle draws a filled arc sector from start to end radians.
func (b *Batch) SemiCircle(center Vec2, start, end, radius float32, steps int, color Color) {
	b.SemiCircleGradient(center, start, end, radius, steps, color, color)
}

// SemiCircleGradient draws an arc sector blending from the center color to the edge color.
func (b *Batch) SemiCircleGradient(center Vec2, start, end, radius float32, steps int, centerColor, edgeColor Color) {
	steps = checkSteps(steps)
	last := center.Add(FromAngle(start, radius))
	for i := 1; i <= steps; i++ {
		angle := start + (end-start)*float32(i)/float32(steps)
		next := center.Add(FromAngle(angle, radius))
		b.shapeTri(center, last, next, centerColor, edgeColor, edgeColor)
		last = next
	}
}

// SemiCircleLine draws an arc of thickness t whose outer edge lies on radius.
func (b *Batch) SemiCircleLine(center Vec2, start, end, radius float32, steps int, t float32, color Color) {
	if t >= radius {
		b.SemiCircle(center, start, end, radius, steps, color)
		return
	}
	steps = checkSteps(steps)
	inner := radius - t
	lastOuter := center.Add(FromAngle(start, radius))
	lastInner := center.Add(FromAngle(start, inner))
	for i := 1; i <= steps; i++ {
		angle := start + (end-start)*float32(i)/float32(steps)
		nextOuter := center.Add(FromAngle(angle, radius))
		nextInner := center.Add(FromAngle(angle, inner))
		b.Quad(lastOuter, nextOuter, nextInner, lastInner, color)
		lastOuter, lastInner = nextOuter, nextInner
	}
}

// Circle draws a filled circle as steps triangles.
func (b *Batch) Circle(center Vec2, radius float32, steps int, color Color) {
	b.SemiCircleGradient(center, 0, tau, radius, steps, color, color)
}

// CircleGradient draws a filled circle blending from the center to the edge.
func (b *Batch) CircleGradient(center Vec2, radius float32, steps int, centerColor, edgeColor Color) {
	b.SemiCircleGradient(center, 0, tau, radius, steps, centerColor, edgeColor)
}

// CircleLine draws a ring of thickness t.
func (b *Batch) CircleLine(center Vec2, radius, t float32, steps int, color Color) {
	b.SemiCircleLine(center, 0, tau, radius, steps, t, color)
}

// Quad draws a filled quadrilateral p0..p3.
func (b *Batch) Quad(p0, p1, p2, p3 Vec2, color Color) {
	b.shapeQuad(p0, p1, p2, p3, color, color, color, color)
}

// QuadColors draws a quadrilateral with a color per vertex.
func (b *Batch) QuadColors(p0, p1, p2, p3 Vec2, c0, c1, c2, c3 Color) {
	b.shapeQuad(p0, p1, p2, p3, c0, c1, c2, c3)
}

// QuadTex draws a quadrilateral textured with the current texture.
func (b *Batch) QuadTex(p0, p1, p2, p3, t0, t1, t2, t3 Vec2, color Color) {
	b.pushQuad(p0, p1, p2, p3, t0, t1, t2, t3, color, color, color, color, b.texMult, b.texWash, 0)
}

// QuadTexColors draws a textured quadrilateral with a color per vertex.
func (b *Batch) QuadTexColors(p0, p1, p2, p3, t0, t1, t2, t3 Vec2, c0, c1, c2, c3 Color) {
	b.pushQuad(p0, p1, p2, p3, t0, t1, t2, t3, c0, c1, c2, c3, b.texMult, b.texWash, 0)
}

// QuadLine draws the outline of a convex quadrilateral with thickness t.
func (b *Batch) QuadLine(p0, p1, p2, p3 Vec2, t float32, color Color) {
	b.polyLine([]Vec2{p0, p1, p2, p3}, t, color)
}

// ArrowHead draws an equilateral triangle with sides of length side,
// its tip at point, pointing along angle radians.
func (b *Batch) ArrowHead(point Vec2, angle, side float32, color Color) {
	dir := FromAngle(angle, 1)
	base := point.Sub(dir.Mul(side * math32.Sqrt(3) / 2))
	half := dir.TurnRight().Mul(side / 2)
	b.Tri(point, base.Add(half), base.Sub(half), color)
}

// ArrowHeadFrom draws an arrow head at point pointing away from from.
func (b *Batch) ArrowHeadFrom(point, from Vec2, side float32, color Color) {
	b.ArrowHead(point, point.Sub(from).Angle(), side, color)
}

// polyLine outlines a convex polygon, keeping the band of thickness t
// inside the edges. Each inner vertex is where the two neighbouring
// edges, offset inward by t, intersect.
func (b *Batch) polyLine(points []Vec2, t float32, color Color) {
	n := len(points)

	// signed area tells the winding, and so which side is inward
	var area float32
	for i := range n {
		p, q := points[i], points[(i+1)%n]
		area += p.X*q.Y - q.X*p.Y
	}
	if area == 0 {
		return
	}
	inward := func(from, to Vec2) Vec2 {
		d := to.Sub(from).Normal()
		if area > 0 {
			return d.TurnRight()
		}
		return d.TurnLeft()
	}

	inner := make([]Vec2, n)
	for i := range n {
		prev, cur, next := points[(i+n-1)%n], points[i], points[(i+1)%n]
		n0 := inward(prev, cur).Mul(t)
		n1 := inward(cur, next).Mul(t)
		p, ok := intersectLines(prev.Add(n0), cur.Add(n0), cur.Add(n1), next.Add(n1))
		if !ok {
			p = cur.Add(n1)
		}
		inner[i] = p
	}

	if swallowed(points, inner, t, inward) {
		for i := 1; i+1 < n; i++ {
			b.Tri(points[0], points[i], points[i+1], color)
		}
		return
	}

	for i := range n {
		j := (i + 1) % n
		b.Quad(points[i], points[j], inner[j], inner[i], color)
	}
}

// swallowed reports whether thickness t reaches past the inradius, which
// shows as an inner vertex closer than t to some edge.
func swallowed(points, inner []Vec2, t float32, inward func(from, to Vec2) Vec2) bool {
	n := len(points)
	slack := 1e-3 * max(1, t)
	for j := range n {
		p, q := points[j], points[(j+1)%n]
		nrm := inward(p, q)
		for _, v := range inner {
			if v.Sub(p).Dot(nrm) < t-slack {
				return true
			}
		}
	}
	return false
}

// intersectLines returns the intersection of the infinite lines a0-a1 and b0-b1.
func intersectLines(a0, a1, b0, b1 Vec2) (Vec2, bool) {
	da := a1.Sub(a0)
	db := b1.Sub(b0)
	denom := da.X*db.Y - da.Y*db.X
	if math32.Abs(denom) < 1e-6 {
		return Vec2{}, false
	}
	diff := b0.Sub(a0)
	k := (diff.X*db.Y - diff.Y*db.X) / denom
	return a0.Add(da.Mul(k)), true
}
