package intensity

import (
	"errors"
	"math"

	"github.com/lixenwraith/irbview/gradient"
)

// ErrEmptyFrame is returned for a nil or zero-dimension frame
var ErrEmptyFrame = errors.New("intensity: empty frame")

const (
	// DefaultSteps is the quantization resolution; gradient stops live in [0, DefaultSteps]
	DefaultSteps = 1023

	// LegacySteps is the 8-bit resolution used by the grayscale-only variant
	LegacySteps = 255

	// DefaultMinRangeWidth is the smallest mapping window in sample units
	DefaultMinRangeWidth = 1.0
)

// WidenPolicy places a window narrower than the minimum width
type WidenPolicy uint8

const (
	// WidenUpward maps to [min, min+w], a flat frame lands on level 0
	WidenUpward WidenPolicy = iota
	// WidenCentered maps to [min-w/2, min+w/2], a flat frame lands on the middle level
	WidenCentered
)

// Mapper quantizes frames and looks colors up in a gradient
// The zero value uses DefaultSteps, DefaultMinRangeWidth and WidenUpward
type Mapper struct {
	Steps         int
	MinRangeWidth float64
	Widen         WidenPolicy
}

// DefaultMapper is the zero-configuration mapper
var DefaultMapper = Mapper{}

// Map converts a frame with the default mapper
func Map(frame *Frame, g *gradient.Gradient, rng Range) (*ColorMatrix, error) {
	return DefaultMapper.Map(frame, g, rng)
}

func (m Mapper) steps() int {
	if m.Steps <= 0 {
		return DefaultSteps
	}
	return m.Steps
}

func (m Mapper) minWidth() float64 {
	if m.MinRangeWidth <= 0 {
		return DefaultMinRangeWidth
	}
	return m.MinRangeWidth
}

// Resolution returns the effective quantization resolution
func (m Mapper) Resolution() int {
	return m.steps()
}

// Bounds resolves the effective mapping window for frame
func (m Mapper) Bounds(frame *Frame, rng Range) (Bounds, error) {
	if frame.Empty() {
		return Bounds{}, ErrEmptyFrame
	}

	var fMin, fMax float64
	if rng.needsExtrema() {
		// All-NaN frames fall through to the width guard from zero
		fMin, fMax, _ = frame.Extrema()
	}

	lo, hi := rng.Resolve(fMin, fMax)
	b := Bounds{Min: lo, Max: hi}
	if w := m.minWidth(); math.Abs(hi-lo) < w {
		if m.Widen == WidenCentered {
			b.Min, b.Max = lo-w/2, lo+w/2
		} else {
			b.Max = lo + w
		}
		b.Widened = true
	}
	return b, nil
}

// Levels quantizes every sample into [0, Steps]
func (m Mapper) Levels(frame *Frame, rng Range) ([]int, Bounds, error) {
	b, err := m.Bounds(frame, rng)
	if err != nil {
		return nil, Bounds{}, err
	}

	steps := m.steps()
	scale := float64(steps) / b.Width()
	levels := make([]int, frame.Len())
	for i, s := range frame.Data[:len(levels)] {
		levels[i] = quantize(float64(s), b.Min, scale, steps)
	}
	return levels, b, nil
}

// Map converts one frame into a freshly allocated color matrix
func (m Mapper) Map(frame *Frame, g *gradient.Gradient, rng Range) (*ColorMatrix, error) {
	out, _, err := m.MapBounds(frame, g, rng)
	return out, err
}

// MapBounds is Map that also reports the window it applied
func (m Mapper) MapBounds(frame *Frame, g *gradient.Gradient, rng Range) (*ColorMatrix, Bounds, error) {
	levels, b, err := m.Levels(frame, rng)
	if err != nil {
		return nil, Bounds{}, err
	}

	lut := gradient.NewLUT(g, m.steps())
	out := &ColorMatrix{
		Width:  frame.Width,
		Height: frame.Height,
		Pix:    make([]gradient.RGBA8, len(levels)),
	}
	for i, lvl := range levels {
		out.Pix[i] = lut.At(lvl)
	}
	return out, b, nil
}

// quantize maps one sample to an index in [0, steps]
// NaN maps to 0, infinities to the nearest end
func quantize(s, lo, scale float64, steps int) int {
	v := math.Round((s - lo) * scale)
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= float64(steps):
		return steps
	}
	return int(v)
}
