package gradient

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGBA8 is a non-premultiplied 8-bit per channel color
type RGBA8 struct {
	R, G, B, A uint8
}

// Opaque returns a fully opaque color
func Opaque(r, g, b uint8) RGBA8 {
	return RGBA8{R: r, G: g, B: b, A: 255}
}

// Common endpoints
var (
	Black = Opaque(0, 0, 0)
	White = Opaque(255, 255, 255)
)

// Equal returns true if all four channels match
func (c RGBA8) Equal(other RGBA8) bool {
	return c == other
}

// NRGBA converts to the image/color non-premultiplied form
func (c RGBA8) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA implements color.Color
func (c RGBA8) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Tcell converts to a terminal color, alpha is dropped
func (c RGBA8) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// channel order used by interpolation: alpha, red, green, blue
const channelCount = 4

// units returns the channels as unit fractions in [0,1]
func (c RGBA8) units() [channelCount]float64 {
	return [channelCount]float64{
		float64(c.A) / 255,
		float64(c.R) / 255,
		float64(c.G) / 255,
		float64(c.B) / 255,
	}
}

// fromUnits rounds unit fractions back to device channels
func fromUnits(u [channelCount]float64) RGBA8 {
	return RGBA8{
		A: unitToByte(u[0]),
		R: unitToByte(u[1]),
		G: unitToByte(u[2]),
		B: unitToByte(u[3]),
	}
}

func unitToByte(u float64) uint8 {
	v := u * 255
	switch {
	case v != v || v <= 0: // NaN
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}

// Light reports whether the color reads as light, for choosing overlay text
// Uses CIE L* so yellows and greens count as light where plain averages would not
func (c RGBA8) Light() bool {
	l, _, _ := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Lab()
	return l > 0.6
}
