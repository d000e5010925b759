package colors

import (
	"image/color"
	"math"

	"golang.org/x/exp/constraints"
)

// Color4 is a linear RGBA color with float64 components, nominally in [0,1].
// Values outside that range are kept as-is; they are only saturated when
// serialized to 8-bit channels. Arithmetic works on R, G and B; alpha is
// carried over from the receiver.
type Color4 struct {
	R, G, B, A float64
}

func New(r, g, b, a float64) Color4 {
	return Color4{R: r, G: g, B: b, A: a}
}

// Gray returns an opaque gray of intensity v.
func Gray(v float64) Color4 {
	return Color4{R: v, G: v, B: v, A: 1}
}

func From8BitRgb(r, g, b, a byte) Color4 {
	return Color4{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
		A: float64(a) / 255.0,
	}
}

// FromARGB unpacks a 0xAARRGGBB word.
func FromARGB(v uint32) Color4 {
	return From8BitRgb(byte(v>>16), byte(v>>8), byte(v), byte(v>>24))
}

func White() Color4 {
	return Color4{R: 1, G: 1, B: 1, A: 1}
}

func Black() Color4 {
	return Color4{R: 0, G: 0, B: 0, A: 1}
}

func Yellow() Color4 {
	return FromARGB(0xffffd34e)
}

func Green() Color4 {
	return FromARGB(0xff34d138)
}

func Blue() Color4 {
	return FromARGB(0xff003366)
}

// Add returns c + o (component-wise).
func (c Color4) Add(o Color4) Color4 {
	return Color4{c.R + o.R, c.G + o.G, c.B + o.B, c.A}
}

// Sub returns c - o (component-wise).
func (c Color4) Sub(o Color4) Color4 {
	return Color4{c.R - o.R, c.G - o.G, c.B - o.B, c.A}
}

// Mul returns c * o (component-wise).
func (c Color4) Mul(o Color4) Color4 {
	return Color4{c.R * o.R, c.G * o.G, c.B * o.B, c.A}
}

// Scale returns c * s. Alpha is not scaled.
func (c Color4) Scale(s float64) Color4 {
	return Color4{c.R * s, c.G * s, c.B * s, c.A}
}

// Invert returns white - c, leaving alpha untouched.
func (c Color4) Invert() Color4 {
	return Color4{1 - c.R, 1 - c.G, 1 - c.B, c.A}
}

// ApproxEqual compares all four channels within eps.
func (c Color4) ApproxEqual(o Color4, eps float64) bool {
	return math.Abs(c.R-o.R) <= eps &&
		math.Abs(c.G-o.G) <= eps &&
		math.Abs(c.B-o.B) <= eps &&
		math.Abs(c.A-o.A) <= eps
}

// ToNRGBA serializes to 8-bit channels, rounding to the nearest step and
// saturating outside [0,1].
func (c Color4) ToNRGBA() color.NRGBA {
	return color.NRGBA{
		To8bit(c.R),
		To8bit(c.G),
		To8bit(c.B),
		To8bit(c.A),
	}
}

// ARGB packs the color as 0xAARRGGBB.
func (c Color4) ARGB() uint32 {
	n := c.ToNRGBA()
	return uint32(n.A)<<24 | uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B)
}

// ABGR packs the color as 0xAABBGGRR, which is RGBA byte order in memory on
// little-endian machines.
func (c Color4) ABGR() uint32 {
	return ARGBToABGR(c.ARGB())
}

// ARGBToABGR swaps the red and blue bytes of a packed word.
func ARGBToABGR(v uint32) uint32 {
	return v&0xff00ff00 | (v&0x00ff0000)>>16 | (v&0x000000ff)<<16
}

// --- helpers ---

// Clamp limits x to [lo, hi].
func Clamp[T constraints.Float](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// To8bit maps [0,1] onto 0..255 with rounding. NaN maps to 0.
func To8bit(x float64) uint8 {
	if math.IsNaN(x) {
		return 0
	}
	return uint8(math.Round(255.0 * Clamp(x, 0, 1)))
}
