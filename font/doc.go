// Package font builds blit sprite fonts from TrueType and OpenType data.
//
// Build rasterizes a character set at one pixel size, packs the glyphs
// into a power-of-two RGBA atlas and returns the font metrics alongside
// the atlas image. The atlas stores premultiplied white glyphs, so text
// can be tinted through the batch color.
//
//	sf, atlas, err := font.Default(16)
//	if err != nil {
//		return err
//	}
//	font.Upload(g, sf, atlas)
//	batch.Str(sf, "Hello", blit.V2(8, 8), blit.White)
//
// Kerning comes from the font's kern table by default. WithKerning
// selects HarfBuzz shaping through go-text/typesetting, which also reads
// GPOS pair adjustments.
package font
