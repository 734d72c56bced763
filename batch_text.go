package blit

import (
	"github.com/chewxy/math32"
	"golang.org/x/text/unicode/norm"
)

// TextAlign positions text relative to its anchor. Center is the zero
// value; horizontal and vertical flags combine with |.
type TextAlign uint8

// Text alignments.
const (
	AlignCenter TextAlign = 0
	AlignLeft   TextAlign = 1 << 1
	AlignRight  TextAlign = 1 << 2
	AlignTop    TextAlign = 1 << 3
	AlignBottom TextAlign = 1 << 4

	AlignTopLeft     = AlignTop | AlignLeft
	AlignTopRight    = AlignTop | AlignRight
	AlignBottomLeft  = AlignBottom | AlignLeft
	AlignBottomRight = AlignBottom | AlignRight
)

// Has reports whether all bits of flag are set.
func (a TextAlign) Has(flag TextAlign) bool { return a&flag == flag }

// Tex draws texture at position at its natural size.
func (b *Batch) Tex(texture Texture, position Vec2, color Color) {
	if texture == nil {
		return
	}
	b.SetTexture(texture)

	w, h := float32(texture.Width()), float32(texture.Height())
	p := position
	b.pushQuad(
		p, Vec2{X: p.X + w, Y: p.Y}, Vec2{X: p.X + w, Y: p.Y + h}, Vec2{X: p.X, Y: p.Y + h},
		Vec2{X: 0, Y: 0}, Vec2{X: 1, Y: 0}, Vec2{X: 1, Y: 1}, Vec2{X: 0, Y: 1},
		color, color, color, color, b.texMult, b.texWash, 0)
}

// TexTransform draws texture placed at position, rotated and scaled about origin.
func (b *Batch) TexTransform(texture Texture, position, origin, scale Vec2, rotation float32, color Color) {
	b.PushMatrix(Transform(position, origin, scale, rotation), false)
	b.Tex(texture, Vec2{}, color)
	b.PopMatrix()
}

// TexClip draws the clip region of texture, given in pixels, transformed
// like TexTransform.
func (b *Batch) TexClip(texture Texture, clip Rect, position, origin, scale Vec2, rotation float32, color Color) {
	if texture == nil {
		return
	}
	b.PushMatrix(Transform(position, origin, scale, rotation), false)
	b.SetTexture(texture)

	tw, th := float32(texture.Width()), float32(texture.Height())
	u0, v0 := clip.X/tw, clip.Y/th
	u1, v1 := clip.Right()/tw, clip.Bottom()/th
	b.pushQuad(
		Vec2{}, Vec2{X: clip.W}, Vec2{X: clip.W, Y: clip.H}, Vec2{Y: clip.H},
		Vec2{X: u0, Y: v0}, Vec2{X: u1, Y: v0}, Vec2{X: u1, Y: v1}, Vec2{X: u0, Y: v1},
		color, color, color, color, b.texMult, b.texWash, 0)

	b.PopMatrix()
}

// Sub draws a subtexture with its frame's top-left at position.
func (b *Batch) Sub(sub Subtexture, position Vec2, color Color) {
	b.SetTexture(sub.Texture)
	d, t := sub.DrawCoords, sub.TexCoords
	b.pushQuad(
		position.Add(d[0]), position.Add(d[1]), position.Add(d[2]), position.Add(d[3]),
		t[0], t[1], t[2], t[3],
		color, color, color, color, b.texMult, b.texWash, 0)
}

// SubTransform draws a subtexture placed at position, rotated and scaled about origin.
func (b *Batch) SubTransform(sub Subtexture, position, origin, scale Vec2, rotation float32, color Color) {
	b.PushMatrix(Transform(position, origin, scale, rotation), false)
	b.Sub(sub, Vec2{}, color)
	b.PopMatrix()
}

// SubClip draws the clip region (in frame space) of a subtexture.
func (b *Batch) SubClip(sub Subtexture, clip Rect, position, origin, scale Vec2, rotation float32, color Color) {
	b.SubTransform(sub.Crop(clip), position, origin, scale, rotation, color)
}

// Str draws text with its top-left at position at the font's native size.
func (b *Batch) Str(font *SpriteFont, text string, position Vec2, color Color) {
	if font == nil {
		return
	}
	b.StrAligned(font, text, position, AlignTopLeft, font.Size, color)
}

// StrAligned draws text at size pixels, aligned around position.
// Every line is aligned on its own horizontally; the block as a whole is
// aligned vertically.
func (b *Batch) StrAligned(font *SpriteFont, text string, position Vec2, align TextAlign, size float32, color Color) {
	if font == nil || len(text) == 0 {
		return
	}
	if !norm.NFC.IsNormalString(text) {
		text = norm.NFC.String(text)
	}

	b.PushMatrix(Translate(position.X, position.Y).Multiply(Scale(size/font.Size, size/font.Size)), false)

	lineX := func(start int) float32 {
		switch {
		case align.Has(AlignLeft):
			return 0
		case align.Has(AlignRight):
			return -font.WidthOfLine(text, start)
		default:
			return -math32.Floor(font.WidthOfLine(text, start) * 0.5)
		}
	}

	var offset Vec2
	offset.X = lineX(0)
	switch {
	case align.Has(AlignTop):
		offset.Y = font.Ascent
	case align.Has(AlignBottom):
		offset.Y = font.Ascent - font.HeightOf(text)
	default:
		offset.Y = font.Ascent - math32.Floor(font.HeightOf(text)*0.5)
	}

	var last rune
	for i, r := range text {
		if r == '\n' {
			offset.Y += font.LineHeight()
			offset.X = lineX(i + 1)
			last = 0
			continue
		}

		ch := font.Characters[r]
		if last != 0 {
			offset.X += font.Kerning(last, r)
		}
		if ch.Subtexture.Texture != nil {
			b.Sub(ch.Subtexture, offset.Add(ch.Offset), color)
		}
		offset.X += ch.Advance
		last = r
	}

	b.PopMatrix()
}
