package font

import (
	"bytes"
	"fmt"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/blit"
)

// minKerning drops adjustments below a 64th of a pixel.
const minKerning = 1.0 / 64

// tableKerning reads every pair of runes from the face's kern table.
func tableKerning(sf *blit.SpriteFont, face xfont.Face, runes []rune) {
	for _, a := range runes {
		for _, b := range runes {
			if k := fixedToFloat(face.Kern(a, b)); k >= minKerning || k <= -minKerning {
				sf.SetKerning(a, b, k)
			}
		}
	}
}

// shapedKerning shapes every pair of runes and records how much the first
// glyph's advance differs from its advance when shaped alone. Pairs that
// shape into ligatures are skipped.
func shapedKerning(sf *blit.SpriteFont, data []byte, size float32, runes []rune) error {
	parsed, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("font: parse for shaping: %w", err)
	}
	face := gotext.NewFace(parsed.Font)
	shaper := &shaping.HarfbuzzShaper{}
	ppem := fixed.Int26_6(size * 64)

	shape := func(text []rune) []shaping.Glyph {
		return shaper.Shape(shaping.Input{
			Text:      text,
			RunStart:  0,
			RunEnd:    len(text),
			Direction: di.DirectionLTR,
			Face:      face,
			Size:      ppem,
			Script:    language.LookupScript(text[0]),
			Language:  language.NewLanguage("en"),
		}).Glyphs
	}

	alone := make(map[rune]fixed.Int26_6, len(runes))
	for _, r := range runes {
		if g := shape([]rune{r}); len(g) == 1 {
			alone[r] = g[0].Advance
		}
	}
	pair := make([]rune, 2)
	for _, a := range runes {
		base, ok := alone[a]
		if !ok {
			continue
		}
		for _, b := range runes {
			pair[0], pair[1] = a, b
			g := shape(pair)
			if len(g) != 2 {
				continue
			}
			if k := fixedToFloat(g[0].Advance - base); k >= minKerning || k <= -minKerning {
				sf.SetKerning(a, b, k)
			}
		}
	}
	return nil
}
