package blit

// Subtexture is a region of a Texture, optionally trimmed: Frame describes
// the untrimmed sprite relative to Source, so Frame.X and Frame.Y are zero
// or negative.
type Subtexture struct {
	Texture Texture
	Source  Rect
	Frame   Rect

	// DrawCoords are the quad corners in sprite space, clockwise from the
	// top-left. TexCoords are the matching normalized texture coordinates.
	DrawCoords [4]Vec2
	TexCoords  [4]Vec2
}

// NewSubtexture returns the whole of tex.
func NewSubtexture(tex Texture) Subtexture {
	r := Rect{W: float32(tex.Width()), H: float32(tex.Height())}
	return NewSubtextureFrame(tex, r, Rect{W: r.W, H: r.H})
}

// NewSubtextureRect returns region source of tex, untrimmed.
func NewSubtextureRect(tex Texture, source Rect) Subtexture {
	return NewSubtextureFrame(tex, source, Rect{W: source.W, H: source.H})
}

// NewSubtextureFrame returns region source of tex within frame.
func NewSubtextureFrame(tex Texture, source, frame Rect) Subtexture {
	s := Subtexture{Texture: tex, Source: source, Frame: frame}
	s.Update()
	return s
}

// Width is the frame width.
func (s *Subtexture) Width() float32 { return s.Frame.W }

// Height is the frame height.
func (s *Subtexture) Height() float32 { return s.Frame.H }

// Update recomputes DrawCoords and TexCoords from Source and Frame.
func (s *Subtexture) Update() {
	x0, y0 := -s.Frame.X, -s.Frame.Y
	x1, y1 := x0+s.Source.W, y0+s.Source.H
	s.DrawCoords = [4]Vec2{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}

	if s.Texture == nil {
		s.TexCoords = [4]Vec2{}
		return
	}
	uw := 1 / float32(s.Texture.Width())
	vh := 1 / float32(s.Texture.Height())
	u0, v0 := s.Source.X*uw, s.Source.Y*vh
	u1, v1 := s.Source.Right()*uw, s.Source.Bottom()*vh
	s.TexCoords = [4]Vec2{{u0, v0}, {u1, v0}, {u1, v1}, {u0, v1}}
}

// CropInfo returns the source and frame of the part of s inside clip,
// where clip is in frame space.
func (s *Subtexture) CropInfo(clip Rect) (source, frame Rect) {
	source = clip.Translate(s.Source.TopLeft()).Translate(s.Frame.TopLeft()).OverlapRect(s.Source)
	frame = Rect{
		X: min(0, s.Frame.X+clip.X),
		Y: min(0, s.Frame.Y+clip.Y),
		W: clip.W,
		H: clip.H,
	}
	return source, frame
}

// Crop returns the part of s inside clip.
func (s *Subtexture) Crop(clip Rect) Subtexture {
	source, frame := s.CropInfo(clip)
	return NewSubtextureFrame(s.Texture, source, frame)
}
