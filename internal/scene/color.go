package scene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color is a linear RGB triple with channels in [0, 1].
type Color [3]float64

var (
	Black   = Color{0, 0, 0}
	White   = Color{1, 1, 1}
	Red     = Color{1, 0, 0}
	Green   = Color{0, 1, 0}
	Blue    = Color{0, 0, 1}
	Yellow  = Color{1, 1, 0}
	Cyan    = Color{0, 1, 1}
	Magenta = Color{1, 0, 1}
	Gray    = Color{0.5, 0.5, 0.5}
)

// Lerp interpolates c → d by t.
func (c Color) Lerp(d Color, t float64) Color {
	return Color{
		c[0] + t*(d[0]-c[0]),
		c[1] + t*(d[1]-c[1]),
		c[2] + t*(d[2]-c[2]),
	}
}

// NRGBA quantizes c to 8 bits per channel, clamping to [0, 1].
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: clamp8(c[0]), G: clamp8(c[1]), B: clamp8(c[2]), A: 255}
}

// FromNRGBA converts an 8-bit color to a Color; alpha is dropped.
func FromNRGBA(n color.NRGBA) Color {
	return Color{float64(n.R) / 255, float64(n.G) / 255, float64(n.B) / 255}
}

// ParseHex parses "#rrggbb" or "#rgb" (the leading '#' is optional).
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return Color{}, fmt.Errorf("scene: bad color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("scene: bad color %q: %w", s, err)
	}
	return FromNRGBA(color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}), nil
}

func (c Color) String() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
