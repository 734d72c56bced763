package font

import (
	"slices"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// KerningSource selects where pair adjustments are read from.
type KerningSource int

const (
	// KerningTable reads the sfnt kern table.
	KerningTable KerningSource = iota
	// KerningShaped shapes every glyph pair with HarfBuzz.
	KerningShaped
	// KerningNone disables kerning.
	KerningNone
)

// String returns the source name.
func (k KerningSource) String() string {
	switch k {
	case KerningTable:
		return "table"
	case KerningShaped:
		return "shaped"
	case KerningNone:
		return "none"
	default:
		return "unknown"
	}
}

const (
	// DefaultPadding is the empty border kept around every glyph.
	DefaultPadding = 1
	// DefaultMaxAtlasSize bounds the atlas edge in pixels.
	DefaultMaxAtlasSize = 4096
	minAtlasSize        = 64
)

type options struct {
	name     string
	charset  []rune
	padding  int
	maxAtlas int
	kerning  KerningSource
}

// Option configures Build.
type Option func(*options)

// WithName overrides the font family name read from the font.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithCharset replaces the default character set. The text is NFC
// normalized; duplicate and non-graphic runes are dropped.
func WithCharset(chars string) Option {
	return func(o *options) {
		o.charset = charset(chars)
	}
}

// WithPadding sets the border in pixels kept around every glyph.
// Negative values are treated as zero.
func WithPadding(px int) Option {
	return func(o *options) {
		o.padding = max(px, 0)
	}
}

// WithMaxAtlasSize bounds the atlas edge in pixels.
func WithMaxAtlasSize(px int) Option {
	return func(o *options) {
		if px > 0 {
			o.maxAtlas = px
		}
	}
}

// WithKerning selects the kerning source.
func WithKerning(k KerningSource) Option {
	return func(o *options) {
		o.kerning = k
	}
}

func defaultOptions() options {
	return options{
		charset:  DefaultCharset(),
		padding:  DefaultPadding,
		maxAtlas: DefaultMaxAtlasSize,
		kerning:  KerningTable,
	}
}

// DefaultCharset returns printable ASCII followed by printable Latin-1.
func DefaultCharset() []rune {
	runes := make([]rune, 0, 95+96)
	for r := rune(0x20); r <= 0x7E; r++ {
		runes = append(runes, r)
	}
	for r := rune(0xA0); r <= 0xFF; r++ {
		runes = append(runes, r)
	}
	return runes
}

func charset(chars string) []rune {
	runes := slices.DeleteFunc([]rune(norm.NFC.String(chars)), func(r rune) bool {
		return !unicode.IsGraphic(r)
	})
	slices.Sort(runes)
	return slices.Compact(runes)
}
