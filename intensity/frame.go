// Package intensity converts raw radiometric frames into color matrices.
//
// Mapping is a pure function of its arguments: a frame, a gradient and a
// range. Nothing is cached between calls, so concurrent callers only need
// to own their own frames.
package intensity

import (
	"image"
	"image/color"
	"math"

	"github.com/lixenwraith/irbview/gradient"
)

// Frame is a row-major matrix of raw samples
type Frame struct {
	Width  int
	Height int
	Data   []float32
}

// NewFrame allocates a zeroed frame
func NewFrame(w, h int) *Frame {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Frame{Width: w, Height: h, Data: make([]float32, w*h)}
}

// Len returns the number of samples
func (f *Frame) Len() int {
	return f.Width * f.Height
}

// Empty reports a nil frame, a zero dimension or a data slice shorter than w*h
func (f *Frame) Empty() bool {
	// Division keeps huge dimensions from overflowing w*h
	return f == nil || f.Width <= 0 || f.Height <= 0 || len(f.Data)/f.Width < f.Height
}

// At returns the sample at (x, y)
func (f *Frame) At(x, y int) float32 {
	return f.Data[y*f.Width+x]
}

// Set writes the sample at (x, y)
func (f *Frame) Set(x, y int, v float32) {
	f.Data[y*f.Width+x] = v
}

// Extrema returns min and max over all finite samples
// ok is false when the frame holds no finite sample
func (f *Frame) Extrema() (minV, maxV float64, ok bool) {
	minV, maxV = math.MaxFloat64, -math.MaxFloat64
	for _, s := range f.Data[:f.Len()] {
		v := float64(s)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
		ok = true
	}
	if !ok {
		return 0, 0, false
	}
	return minV, maxV, true
}

// ColorMatrix is the row-major output of a mapping, one color per sample
type ColorMatrix struct {
	Width  int
	Height int
	Pix    []gradient.RGBA8
}

// Cell returns the color at (x, y)
func (m *ColorMatrix) Cell(x, y int) gradient.RGBA8 {
	return m.Pix[y*m.Width+x]
}

// ColorModel implements image.Image
func (m *ColorMatrix) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements image.Image
func (m *ColorMatrix) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// At implements image.Image
func (m *ColorMatrix) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return color.NRGBA{}
	}
	return m.Cell(x, y).NRGBA()
}
