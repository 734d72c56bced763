package font

import (
	"cmp"
	"fmt"
	"image"
	"slices"

	"golang.org/x/image/draw"
)

// pack places the glyphs on shelves in the smallest square power-of-two
// atlas that holds them and draws them as premultiplied white.
func pack(glyphs []glyph, padding, maxSize int) (*image.RGBA, error) {
	order := make([]*glyph, 0, len(glyphs))
	for i := range glyphs {
		if glyphs[i].mask != nil {
			order = append(order, &glyphs[i])
		}
	}
	slices.SortStableFunc(order, func(a, b *glyph) int {
		return cmp.Compare(b.bounds.Dy(), a.bounds.Dy())
	})

	size := minAtlasSize
	for !shelve(order, padding, size) {
		if size >= maxSize {
			return nil, fmt.Errorf("%w: %d glyphs at %dpx", ErrAtlasFull, len(order), maxSize)
		}
		size = min(size*2, maxSize)
	}

	atlas := image.NewRGBA(image.Rect(0, 0, size, size))
	for _, g := range order {
		r := image.Rect(g.x, g.y, g.x+g.bounds.Dx(), g.y+g.bounds.Dy())
		draw.DrawMask(atlas, r, image.White, image.Point{}, g.mask, image.Point{}, draw.Over)
	}
	return atlas, nil
}

// shelve assigns positions in a size by size atlas, reporting whether
// every glyph fits. Glyphs must be sorted by descending height.
func shelve(order []*glyph, padding, size int) bool {
	x, y, shelf := padding, padding, 0
	for _, g := range order {
		w, h := g.bounds.Dx(), g.bounds.Dy()
		if x+w+padding > size {
			x = padding
			y += shelf + padding
			shelf = 0
		}
		if x+w+padding > size || y+h+padding > size {
			return false
		}
		g.x, g.y = x, y
		x += w + padding
		shelf = max(shelf, h)
	}
	return true
}
