package intensity

import "fmt"

// Range is the sample window used to normalize a frame
// A nil axis is derived from the frame being mapped
type Range struct {
	Min *float64
	Max *float64
}

// Auto derives both axes from each frame
func Auto() Range {
	return Range{}
}

// Fixed overrides both axes
func Fixed(minV, maxV float64) Range {
	return Range{Min: &minV, Max: &maxV}
}

// WithMin returns a copy with the lower axis overridden
func (r Range) WithMin(v float64) Range {
	r.Min = &v
	return r
}

// WithMax returns a copy with the upper axis overridden
func (r Range) WithMax(v float64) Range {
	r.Max = &v
	return r
}

// Clear drops both overrides
func (r Range) Clear() Range {
	return Range{}
}

// IsAuto reports whether neither axis is overridden
func (r Range) IsAuto() bool {
	return r.Min == nil && r.Max == nil
}

// needsExtrema reports whether the frame must be scanned
func (r Range) needsExtrema() bool {
	return r.Min == nil || r.Max == nil
}

// Resolve merges overrides with the frame's extrema, override wins per axis
func (r Range) Resolve(frameMin, frameMax float64) (float64, float64) {
	lo, hi := frameMin, frameMax
	if r.Min != nil {
		lo = *r.Min
	}
	if r.Max != nil {
		hi = *r.Max
	}
	return lo, hi
}

// String formats the range for status output
func (r Range) String() string {
	f := func(v *float64) string {
		if v == nil {
			return "auto"
		}
		return fmt.Sprintf("%g", *v)
	}
	return f(r.Min) + ".." + f(r.Max)
}

// Bounds is the effective window applied to one frame
type Bounds struct {
	Min float64
	Max float64
	// Widened is set when the degenerate-range guard moved Max
	Widened bool
}

// Width returns Max - Min
func (b Bounds) Width() float64 {
	return b.Max - b.Min
}
