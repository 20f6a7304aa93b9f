// Package grid places logical cells on a device surface at a zoom factor.
package grid

import "math"

// Rect is a device-space rectangle
type Rect struct {
	Left, Top     int
	Width, Height int
}

// Right returns the exclusive right edge
func (r Rect) Right() int { return r.Left + r.Width }

// Bottom returns the exclusive bottom edge
func (r Rect) Bottom() int { return r.Top + r.Height }

// Empty reports a zero-area rectangle
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// RectFor returns the device rectangle of logical cell (x, y)
// Edges are rounded rather than sizes, so neighbouring cells share edges exactly
// at any zoom. zoom <= 0 yields unscaled 1x1 cells
func RectFor(x, y int, zoom float64) Rect {
	if !(zoom > 0) {
		return Rect{Left: x, Top: y, Width: 1, Height: 1}
	}

	left := edge(x, zoom)
	top := edge(y, zoom)
	return Rect{
		Left:   left,
		Top:    top,
		Width:  edge(x+1, zoom) - left,
		Height: edge(y+1, zoom) - top,
	}
}

// edge rounds half away from zero
func edge(i int, zoom float64) int {
	return int(math.Round(float64(i) * zoom))
}

// Extent returns the device size of a w x h grid
func Extent(w, h int, zoom float64) (int, int) {
	if !(zoom > 0) {
		return w, h
	}
	return edge(w, zoom), edge(h, zoom)
}

// CellAt returns the logical cell covering device point (px, py)
// Inverse of RectFor for points inside the grid
func CellAt(px, py int, zoom float64) (int, int) {
	if !(zoom > 0) {
		return px, py
	}
	return cellIndex(px, zoom), cellIndex(py, zoom)
}

func cellIndex(p int, zoom float64) int {
	i := int(math.Floor(float64(p) / zoom))
	// Correct for edge rounding: step until p lies in [edge(i), edge(i+1))
	for i > 0 && edge(i, zoom) > p {
		i--
	}
	for edge(i+1, zoom) <= p {
		i++
	}
	return i
}
