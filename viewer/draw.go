package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/irbview/gradient"
	"github.com/lixenwraith/irbview/grid"
)

// Status bar palette
var (
	statusBg = gradient.Opaque(40, 40, 50)
	statusFg = gradient.Opaque(200, 200, 200)
	keyFg    = gradient.Opaque(100, 180, 255)
)

const helpText = " q:quit n/p:frame +/-:zoom c:gradient r:lock m:mode"

// canvas is a device-pixel buffer covering the image area
type canvas struct {
	w, h int
	pix  []gradient.RGBA8
	set  []bool
}

func newCanvas(w, h int) *canvas {
	return &canvas{w: w, h: h, pix: make([]gradient.RGBA8, w*h), set: make([]bool, w*h)}
}

// fill paints r clipped to the canvas
func (c *canvas) fill(r grid.Rect, col gradient.RGBA8) {
	x0, y0 := max(r.Left, 0), max(r.Top, 0)
	x1, y1 := min(r.Right(), c.w), min(r.Bottom(), c.h)
	for y := y0; y < y1; y++ {
		row := y * c.w
		for x := x0; x < x1; x++ {
			c.pix[row+x] = col
			c.set[row+x] = true
		}
	}
}

func (c *canvas) at(x, y int) (gradient.RGBA8, bool) {
	i := y*c.w + x
	return c.pix[i], c.set[i]
}

// imageRows is the terminal height left for the image
func (v *Viewer) imageRows(termH int) int {
	h := termH
	if v.ShowStatus {
		h--
	}
	if v.ShowLegend {
		h--
	}
	return max(h, 0)
}

// DeviceSize returns the current frame's extent in device pixels
func (v *Viewer) DeviceSize() (int, int) {
	if v.matrix == nil {
		return 0, 0
	}
	return grid.Extent(v.matrix.Width, v.matrix.Height, v.Zoom)
}

// viewSize is the image area in device pixels
func (v *Viewer) viewSize(termW, termH int) (int, int) {
	return termW, v.imageRows(termH) * v.RenderMode.rowsPerCell()
}

// clampViewport ensures viewport stays within bounds
func (v *Viewer) clampViewport(termW, termH int) {
	devW, devH := v.DeviceSize()
	viewW, viewH := v.viewSize(termW, termH)

	v.ViewportX = min(max(v.ViewportX, 0), max(devW-viewW, 0))
	v.ViewportY = min(max(v.ViewportY, 0), max(devH-viewH, 0))
}

// Pan moves the viewport by terminal cells
func (v *Viewer) Pan(dx, dy int, termW, termH int) {
	v.ViewportX += dx
	v.ViewportY += dy * v.RenderMode.rowsPerCell()
	v.clampViewport(termW, termH)
}

// PanTo moves viewport to an absolute device position
func (v *Viewer) PanTo(x, y int, termW, termH int) {
	v.ViewportX = x
	v.ViewportY = y
	v.clampViewport(termW, termH)
}

// paint places every visible logical cell on the canvas via its zoomed rectangle
func (v *Viewer) paint(c *canvas) {
	m := v.matrix
	devW, devH := v.DeviceSize()

	// Center images smaller than the view
	offX := max((c.w-devW)/2, 0)
	offY := max((c.h-devH)/2, 0)

	x0, y0 := grid.CellAt(v.ViewportX, v.ViewportY, v.Zoom)
	x1, y1 := grid.CellAt(v.ViewportX+c.w-1, v.ViewportY+c.h-1, v.Zoom)
	x1 = min(x1, m.Width-1)
	y1 = min(y1, m.Height-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r := grid.RectFor(x, y, v.Zoom)
			if r.Empty() {
				continue
			}
			r.Left += offX - v.ViewportX
			r.Top += offY - v.ViewportY
			c.fill(r, m.Cell(x, y))
		}
	}
}

// Draw renders image, legend and status line to the screen
func (v *Viewer) Draw(s tcell.Screen) {
	s.Clear()
	termW, termH := s.Size()
	rows := v.imageRows(termH)
	v.clampViewport(termW, termH)

	if v.matrix != nil && rows > 0 && termW > 0 {
		viewW, viewH := v.viewSize(termW, termH)
		c := newCanvas(viewW, viewH)
		v.paint(c)
		v.blit(s, c, rows)
	}

	y := rows
	if v.ShowLegend && y < termH {
		v.drawLegend(s, termW, y)
		y++
	}
	if v.ShowStatus && y < termH {
		v.drawStatus(s, termW, y)
	}
}

// blit converts canvas pixels to terminal cells
func (v *Viewer) blit(s tcell.Screen, c *canvas, rows int) {
	for y := 0; y < rows; y++ {
		for x := 0; x < c.w; x++ {
			if v.RenderMode == ModeBackground {
				if col, ok := c.at(x, y); ok {
					s.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(col.Tcell()))
				}
				continue
			}

			upper, hasUpper := c.at(x, 2*y)
			lower, hasLower := c.at(x, 2*y+1)
			switch {
			case hasUpper && hasLower:
				s.SetContent(x, y, '▀', nil, tcell.StyleDefault.Foreground(upper.Tcell()).Background(lower.Tcell()))
			case hasUpper:
				s.SetContent(x, y, '▀', nil, tcell.StyleDefault.Foreground(upper.Tcell()))
			case hasLower:
				s.SetContent(x, y, '▄', nil, tcell.StyleDefault.Foreground(lower.Tcell()))
			}
		}
	}
}

// drawLegend draws the gradient strip with the active bounds at both ends
func (v *Viewer) drawLegend(s tcell.Screen, termW, y int) {
	strip := gradient.Preview(v.grad, termW)
	for x, col := range strip {
		s.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(col.Tcell()))
	}
	if v.matrix == nil {
		return
	}

	lo := fmt.Sprintf("%.1f", v.bounds.Min)
	hi := fmt.Sprintf("%.1f", v.bounds.Max)
	labelOn(s, strip, 0, y, lo)
	if start := termW - len(hi); start > len(lo) {
		labelOn(s, strip, start, y, hi)
	}
}

// labelOn writes text over strip colors with a readable foreground
func labelOn(s tcell.Screen, strip []gradient.RGBA8, x, y int, text string) {
	for _, r := range text {
		if x >= len(strip) {
			return
		}
		bg := strip[x]
		fg := gradient.White
		if bg.Light() {
			fg = gradient.Black
		}
		s.SetContent(x, y, r, nil, tcell.StyleDefault.Foreground(fg.Tcell()).Background(bg.Tcell()))
		x++
	}
}

// StatusText builds the left part of the status line
func (v *Viewer) StatusText() string {
	idx, count := v.Frame()
	status := fmt.Sprintf(" Frame %d/%d", idx+1, count)

	if v.matrix != nil {
		rng := fmt.Sprintf("%.2f..%.2f", v.bounds.Min, v.bounds.Max)
		if v.bounds.Widened {
			rng += "~"
		}
		if v.Locked() {
			rng += " [locked]"
		}
		status += fmt.Sprintf(" | %dx%d | Scale: %.2f | %s", v.matrix.Width, v.matrix.Height, v.Zoom, rng)
	}

	status += fmt.Sprintf(" | %s | %s ", v.GradientName(), v.RenderMode)
	if v.message != "" {
		status += "| " + v.message + " "
	}
	return status
}

// drawStatus draws the status line
func (v *Viewer) drawStatus(s tcell.Screen, termW, y int) {
	base := tcell.StyleDefault.Foreground(statusFg.Tcell()).Background(statusBg.Tcell())
	keys := base.Foreground(keyFg.Tcell())

	for x := 0; x < termW; x++ {
		s.SetContent(x, y, ' ', nil, base)
	}

	x := 0
	for _, r := range v.StatusText() {
		if x >= termW {
			break
		}
		s.SetContent(x, y, r, nil, base)
		x++
	}

	// Help (right-aligned) when it fits
	helpStart := termW - len(helpText)
	if helpStart > x {
		x = helpStart
		for _, r := range helpText {
			style := base
			if r == ':' || (r >= 'a' && r <= 'z') {
				style = keys
			}
			s.SetContent(x, y, r, nil, style)
			x++
		}
	}
}
