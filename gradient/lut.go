package gradient

import "github.com/samber/lo"

// LUT holds precomputed colors for every integer index in [0, steps]
// Lookups match Gradient.Color at the same index
type LUT struct {
	colors []RGBA8
}

// NewLUT evaluates g once per index
func NewLUT(g *Gradient, steps int) *LUT {
	if steps < 0 {
		steps = 0
	}
	colors := make([]RGBA8, steps+1)
	for i := range colors {
		colors[i] = g.Color(float64(i))
	}
	return &LUT{colors: colors}
}

// Steps returns the highest valid index
func (l *LUT) Steps() int {
	return len(l.colors) - 1
}

// At returns the color for index i, clamped to the table
func (l *LUT) At(i int) RGBA8 {
	return l.colors[lo.Clamp(i, 0, len(l.colors)-1)]
}
