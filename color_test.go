package blit

import (
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want Color
	}{
		{"rrggbb", "ff8000", RGB(255, 128, 0)},
		{"hash rrggbb", "#ff8000", RGB(255, 128, 0)},
		{"0x rrggbbaa", "0x11223344", RGBA(0x11, 0x22, 0x33, 0x44)},
		{"upper case", "#ABCDEF", RGB(0xab, 0xcd, 0xef)},
		{"rgb", "f80", RGB(255, 136, 0)},
		{"rgba", "#f808", RGBA(255, 136, 0, 136)},
		{"empty", "", Black},
		{"bad length", "#12345", Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hex(tt.hex); got != tt.want {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestColorUint32(t *testing.T) {
	c := RGBA(0x12, 0x34, 0x56, 0x78)
	if got := c.Uint32(); got != 0x12345678 {
		t.Errorf("Uint32() = %#x, want 0x12345678", got)
	}
	if got := FromUint32(0x12345678); got != c {
		t.Errorf("FromUint32() = %+v, want %+v", got, c)
	}
}

func TestColorPremultiply(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want Color
	}{
		{"opaque", RGB(200, 100, 50), RGB(200, 100, 50)},
		{"transparent", RGBA(200, 100, 50, 0), RGBA(0, 0, 0, 0)},
		{"half", RGBA(255, 128, 0, 128), RGBA(128, 64, 0, 128)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Premultiply(); got != tt.want {
				t.Errorf("Premultiply() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestColorMultiplyClamps(t *testing.T) {
	if got := RGBA(100, 200, 0, 255).Multiply(2); got != RGBA(200, 255, 0, 255) {
		t.Errorf("Multiply(2) = %+v", got)
	}
	if got := White.Multiply(0.5); got != RGBA(128, 128, 128, 128) {
		t.Errorf("Multiply(0.5) = %+v", got)
	}
	if got := White.Multiply(-1); got != Transparent {
		t.Errorf("Multiply(-1) = %+v, want transparent", got)
	}
}

func TestColorLerp(t *testing.T) {
	if got := Lerp(Black, White, 0); got != Black {
		t.Errorf("Lerp(0) = %+v", got)
	}
	if got := Lerp(Black, White, 1); got != White {
		t.Errorf("Lerp(1) = %+v", got)
	}
	if got := Lerp(Transparent, White, 0.5); got != RGBA(128, 128, 128, 128) {
		t.Errorf("Lerp(0.5) = %+v", got)
	}
}

func TestColorStdConversion(t *testing.T) {
	c := RGBA(10, 20, 30, 40)
	if got := FromColor(c.NRGBA()); got != c {
		t.Errorf("FromColor(NRGBA()) = %+v, want %+v", got, c)
	}
	if got := FromColor(color.Gray{Y: 77}); got != RGB(77, 77, 77) {
		t.Errorf("FromColor(gray) = %+v", got)
	}
}

func TestColorFloats(t *testing.T) {
	f := RGBA(255, 0, 51, 255).Floats()
	if f[0] != 1 || f[1] != 0 || f[3] != 1 {
		t.Errorf("Floats() = %v", f)
	}
	if d := f[2] - 0.2; d > 1e-6 || d < -1e-6 {
		t.Errorf("Floats()[2] = %v, want 0.2", f[2])
	}
}
