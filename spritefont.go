package blit

import "strings"

// Character is one glyph of a SpriteFont.
type Character struct {
	Subtexture Subtexture
	// Advance is the horizontal distance to the next glyph origin.
	Advance float32
	// Offset places the subtexture relative to the pen position on the
	// baseline. Glyphs above the baseline have a negative Y offset.
	Offset Vec2
}

type kerningPair struct {
	a, b rune
}

// SpriteFont is a bitmap font: a glyph atlas plus the metrics needed to
// lay out text. Descent is negative (below the baseline).
type SpriteFont struct {
	Name    string
	Size    float32
	Ascent  float32
	Descent float32
	LineGap float32

	Characters map[rune]Character
	kerning    map[kerningPair]float32
}

// NewSpriteFont returns an empty font of the given pixel size.
func NewSpriteFont(name string, size float32) *SpriteFont {
	return &SpriteFont{
		Name:       name,
		Size:       size,
		Characters: make(map[rune]Character),
		kerning:    make(map[kerningPair]float32),
	}
}

// Height is the distance between ascent and descent.
func (f *SpriteFont) Height() float32 { return f.Ascent - f.Descent }

// LineHeight is the distance between consecutive baselines.
func (f *SpriteFont) LineHeight() float32 { return f.Ascent - f.Descent + f.LineGap }

// Character returns the glyph for r. Missing glyphs yield the zero value.
func (f *SpriteFont) Character(r rune) Character { return f.Characters[r] }

// SetKerning sets the extra advance between a and b. Zero removes the pair.
func (f *SpriteFont) SetKerning(a, b rune, value float32) {
	if f.kerning == nil {
		f.kerning = make(map[kerningPair]float32)
	}
	if value == 0 {
		delete(f.kerning, kerningPair{a, b})
		return
	}
	f.kerning[kerningPair{a, b}] = value
}

// Kerning returns the extra advance between a and b.
func (f *SpriteFont) Kerning(a, b rune) float32 {
	return f.kerning[kerningPair{a, b}]
}

// KerningPairs returns the number of stored kerning pairs.
func (f *SpriteFont) KerningPairs() int { return len(f.kerning) }

// WidthOf returns the width of the widest line of text.
func (f *SpriteFont) WidthOf(text string) float32 {
	var width, line float32
	var last rune
	for _, r := range text {
		if r == '\n' {
			width = max(width, line)
			line, last = 0, 0
			continue
		}
		if last != 0 {
			line += f.Kerning(last, r)
		}
		line += f.Characters[r].Advance
		last = r
	}
	return max(width, line)
}

// WidthOfLine returns the width of the line of text that starts at byte
// offset start.
func (f *SpriteFont) WidthOfLine(text string, start int) float32 {
	if start < 0 || start >= len(text) {
		return 0
	}
	var width float32
	var last rune
	for _, r := range text[start:] {
		if r == '\n' {
			break
		}
		if last != 0 {
			width += f.Kerning(last, r)
		}
		width += f.Characters[r].Advance
		last = r
	}
	return width
}

// HeightOf returns the height of text: one line height per line, minus the
// trailing line gap.
func (f *SpriteFont) HeightOf(text string) float32 {
	if len(text) == 0 {
		return 0
	}
	lines := 1 + strings.Count(text, "\n")
	return float32(lines)*f.LineHeight() - f.LineGap
}
