package font

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/blit"
)

var (
	// ErrInvalidSize is returned for non-positive pixel sizes.
	ErrInvalidSize = errors.New("font: size must be positive")
	// ErrAtlasFull is returned when the glyphs do not fit the maximum
	// atlas size.
	ErrAtlasFull = errors.New("font: glyphs do not fit the atlas")
)

// glyph is one rasterized rune waiting to be packed.
type glyph struct {
	r       rune
	mask    *image.Alpha
	bounds  image.Rectangle
	advance float32
	x, y    int
}

// Build parses TrueType or OpenType data and renders the character set at
// size pixels. The returned font's subtextures have no texture until the
// atlas is uploaded with Upload.
func Build(data []byte, size float32, opts ...Option) (*blit.SpriteFont, *image.RGBA, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("font: parse: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("font: new face: %w", err)
	}
	defer face.Close()

	name := o.name
	if name == "" {
		name, _ = f.Name(nil, sfnt.NameIDFamily)
	}
	sf := blit.NewSpriteFont(name, size)
	m := face.Metrics()
	sf.Ascent = fixedToFloat(m.Ascent)
	sf.Descent = -fixedToFloat(m.Descent)
	sf.LineGap = fixedToFloat(m.Height - m.Ascent - m.Descent)

	glyphs := rasterize(f, face, o.charset)
	atlas, err := pack(glyphs, o.padding, o.maxAtlas)
	if err != nil {
		return nil, nil, err
	}

	runes := make([]rune, 0, len(glyphs))
	for i := range glyphs {
		g := &glyphs[i]
		w, h := float32(g.bounds.Dx()), float32(g.bounds.Dy())
		source := blit.Rect{X: float32(g.x), Y: float32(g.y), W: w, H: h}
		sf.Characters[g.r] = blit.Character{
			Subtexture: blit.NewSubtextureFrame(nil, source, blit.Rect{W: w, H: h}),
			Advance:    g.advance,
			Offset:     blit.V2(float32(g.bounds.Min.X), float32(g.bounds.Min.Y)),
		}
		runes = append(runes, g.r)
	}

	switch o.kerning {
	case KerningTable:
		tableKerning(sf, face, runes)
	case KerningShaped:
		if err := shapedKerning(sf, data, size, runes); err != nil {
			return nil, nil, err
		}
	}

	blit.Logger().Debug("font: built",
		"name", sf.Name, "size", size, "glyphs", len(glyphs),
		"atlas", atlas.Bounds().Dx(), "kerning", o.kerning, "pairs", sf.KerningPairs())
	return sf, atlas, nil
}

// Default builds Go Regular at size pixels.
func Default(size float32, opts ...Option) (*blit.SpriteFont, *image.RGBA, error) {
	return Build(goregular.TTF, size, opts...)
}

// Upload creates the atlas texture and binds it into every character.
func Upload(g *blit.Graphics, sf *blit.SpriteFont, atlas image.Image) blit.Texture {
	tex := g.CreateTextureFromImage(atlas)
	if tex == nil {
		return nil
	}
	for r, c := range sf.Characters {
		c.Subtexture = blit.NewSubtextureFrame(tex, c.Subtexture.Source, c.Subtexture.Frame)
		sf.Characters[r] = c
	}
	return tex
}

// rasterize renders every rune the font maps to a glyph, with its bounds
// relative to the pen on the baseline.
func rasterize(f *opentype.Font, face xfont.Face, runes []rune) []glyph {
	var buf sfnt.Buffer
	glyphs := make([]glyph, 0, len(runes))
	for _, r := range runes {
		if idx, err := f.GlyphIndex(&buf, r); err != nil || idx == 0 {
			continue
		}
		dr, mask, mp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok || dr.Empty() {
			if advance, ok = face.GlyphAdvance(r); ok {
				glyphs = append(glyphs, glyph{r: r, advance: fixedToFloat(advance)})
			}
			continue
		}
		// The face reuses its mask between calls.
		dst := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
		draw.Draw(dst, dst.Bounds(), mask, mp, draw.Src)
		glyphs = append(glyphs, glyph{
			r:       r,
			mask:    dst,
			bounds:  dr,
			advance: fixedToFloat(advance),
		})
	}
	return glyphs
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
