// Package gradient maps scalar values to colors by piecewise-linear
// interpolation between ordered color stops.
package gradient

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInvalidGradient is returned when fewer than two stops are supplied
	ErrInvalidGradient = errors.New("gradient: at least two color stops are required")

	// ErrUnknownGradient is returned by Preset for an unregistered name
	ErrUnknownGradient = errors.New("gradient: unknown gradient")
)

// Stop anchors a color at a value
type Stop struct {
	Value float64
	Color RGBA8
}

// Gradient is an immutable, value-sorted set of stops
type Gradient struct {
	stops []Stop
	min   float64
	max   float64
}

// New builds a gradient from stops, sorting them ascending by value
// Stops with equal values keep their input order
func New(stops []Stop) (*Gradient, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidGradient, len(stops))
	}

	sorted := make([]Stop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value < sorted[j].Value
	})

	return &Gradient{
		stops: sorted,
		min:   sorted[0].Value,
		max:   sorted[len(sorted)-1].Value,
	}, nil
}

// MustNew is New for package-level literals, panics on error
func MustNew(stops ...Stop) *Gradient {
	g, err := New(stops)
	if err != nil {
		panic(err)
	}
	return g
}

// Min returns the lowest stop value
func (g *Gradient) Min() float64 { return g.min }

// Max returns the highest stop value
func (g *Gradient) Max() float64 { return g.max }

// Stops returns a copy of the sorted stops
func (g *Gradient) Stops() []Stop {
	out := make([]Stop, len(g.stops))
	copy(out, g.stops)
	return out
}

// Color evaluates the gradient at value
// Values outside [Min, Max] are clamped, NaN evaluates as Min
func (g *Gradient) Color(value float64) RGBA8 {
	switch {
	case value != value: // NaN
		value = g.min
	case value < g.min:
		value = g.min
	case value > g.max:
		value = g.max
	}

	// First stop with Value >= value; always found after clamping
	i := sort.Search(len(g.stops), func(i int) bool {
		return g.stops[i].Value >= value
	})
	if i == len(g.stops) {
		i = len(g.stops) - 1
	}
	end := g.stops[i]
	begin := g.stops[max(0, i-1)]

	from := begin.Color.units()
	to := end.Color.units()

	var out [channelCount]float64
	for c := 0; c < channelCount; c++ {
		out[c] = lerp(begin.Value, from[c], end.Value, to[c], value)
	}
	return fromUnits(out)
}

// lerp solves the line through (x1,y1),(x2,y2) at x
// Equal stop values or equal channel values return y1 unchanged
func lerp(x1, y1, x2, y2, x float64) float64 {
	if x1 == x2 || y1 == y2 {
		return y1
	}
	return (x-x1)*(y2-y1)/(x2-x1) + y1
}
