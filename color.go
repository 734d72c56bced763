package blit

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Color is an 8-bit per channel RGBA color, stored the way vertices carry it.
type Color struct {
	R, G, B, A uint8
}

// RGBA creates a color from 8-bit components.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// FromColor converts a standard color.Color to a non-premultiplied Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// NRGBA converts the color to the standard library representation.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with an optional
// leading '#' or "0x". Malformed input yields opaque black.
func Hex(hex string) Color {
	switch {
	case len(hex) > 0 && hex[0] == '#':
		hex = hex[1:]
	case len(hex) > 1 && hex[0] == '0' && (hex[1] == 'x' || hex[1] == 'X'):
		hex = hex[2:]
	}

	var r, g, b uint32
	a := uint32(255)

	switch len(hex) {
	case 3: // RGB
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
		parseHex(hex[6:8], &a)
	default:
		return Black
	}

	return Color{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// Uint32 packs the color as 0xRRGGBBAA.
func (c Color) Uint32() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// FromUint32 unpacks a 0xRRGGBBAA value.
func FromUint32(v uint32) Color {
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
}

// Premultiply returns the color with RGB scaled by alpha.
func (c Color) Premultiply() Color {
	return Color{
		R: uint8(uint32(c.R) * uint32(c.A) / 255),
		G: uint8(uint32(c.G) * uint32(c.A) / 255),
		B: uint8(uint32(c.B) * uint32(c.A) / 255),
		A: c.A,
	}
}

// Multiply scales every channel, alpha included, by f.
func (c Color) Multiply(f float32) Color {
	return Color{
		R: clamp255(float32(c.R) * f),
		G: clamp255(float32(c.G) * f),
		B: clamp255(float32(c.B) * f),
		A: clamp255(float32(c.A) * f),
	}
}

// Lerp performs linear interpolation between two colors.
func Lerp(a, b Color, t float32) Color {
	return Color{
		R: clamp255(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: clamp255(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: clamp255(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: clamp255(float32(a.A) + (float32(b.A)-float32(a.A))*t),
	}
}

// Floats returns the color as normalized [0,1] components.
func (c Color) Floats() [4]float32 {
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

// clamp255 rounds x and restricts it to [0, 255].
func clamp255(x float32) uint8 {
	return uint8(math32.Max(0, math32.Min(255, math32.Round(x))))
}

// Common colors
var (
	Transparent = RGBA(0, 0, 0, 0)
	White       = RGB(255, 255, 255)
	Black       = RGB(0, 0, 0)
	Red         = RGB(255, 0, 0)
	Green       = RGB(0, 255, 0)
	Blue        = RGB(0, 0, 255)
	Yellow      = RGB(255, 255, 0)
	Orange      = RGB(255, 165, 0)
	Purple      = RGB(255, 0, 255)
	Teal        = RGB(0, 255, 255)
)
