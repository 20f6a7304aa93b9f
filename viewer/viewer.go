// Package viewer renders thermal sequences in a terminal.
//
// The viewer owns all presentation state: the frame cursor, zoom, active
// gradient and range lock. Each frame change calls the stateless mapper with
// explicit arguments and keeps only the resulting color matrix.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/lixenwraith/irbview/gradient"
	"github.com/lixenwraith/irbview/grid"
	"github.com/lixenwraith/irbview/intensity"
	"github.com/lixenwraith/irbview/sequence"
)

// GradientResolver looks up a gradient by name
type GradientResolver func(name string) (*gradient.Gradient, error)

// Options configures a Viewer
type Options struct {
	Mapper    intensity.Mapper
	Range     intensity.Range
	Gradient  string
	Gradients []string // cycle order for the gradient key
	Resolve   GradientResolver
	Zoom      float64
	Mode      RenderMode
	Status    bool
	Legend    bool
}

// Viewer manages sequence display with viewport and navigation
type Viewer struct {
	seq    sequence.Sequence
	cursor *sequence.Cursor
	mapper intensity.Mapper

	// Range from config/flags, and the sequence-wide lock toggled at runtime
	override intensity.Range
	locked   *intensity.Range

	resolve     GradientResolver
	gradients   []string
	gradientIdx int
	grad        *gradient.Gradient

	// Current frame
	matrix *intensity.ColorMatrix
	bounds intensity.Bounds

	// Display settings
	Zoom       float64
	RenderMode RenderMode
	ShowStatus bool
	ShowLegend bool

	// Viewport for panning, in device pixels
	ViewportX int
	ViewportY int

	// Transient status message
	message string
}

// New creates a viewer positioned on the first frame
func New(seq sequence.Sequence, opts Options) (*Viewer, error) {
	if opts.Resolve == nil {
		steps := opts.Mapper.Resolution()
		opts.Resolve = func(name string) (*gradient.Gradient, error) {
			return gradient.Preset(name, steps)
		}
	}
	if len(opts.Gradients) == 0 {
		opts.Gradients = gradient.PresetNames()
	}
	if opts.Gradient == "" {
		opts.Gradient = gradient.DefaultPreset
	}

	v := &Viewer{
		seq:        seq,
		cursor:     sequence.NewCursor(seq.FrameCount()),
		mapper:     opts.Mapper,
		override:   opts.Range,
		resolve:    opts.Resolve,
		gradients:  opts.Gradients,
		Zoom:       opts.Zoom,
		RenderMode: opts.Mode,
		ShowStatus: opts.Status,
		ShowLegend: opts.Legend,
	}

	if err := v.SetGradient(opts.Gradient); err != nil {
		return nil, err
	}
	if err := v.Load(); err != nil {
		return nil, err
	}
	return v, nil
}

// Frame returns the current index and the frame count
func (v *Viewer) Frame() (int, int) {
	return v.cursor.Index(), v.cursor.Count()
}

// Matrix returns the current color matrix, nil when no frame is shown
func (v *Viewer) Matrix() *intensity.ColorMatrix {
	return v.matrix
}

// Bounds returns the mapping window applied to the current frame
func (v *Viewer) Bounds() intensity.Bounds {
	return v.bounds
}

// Gradient returns the active gradient
func (v *Viewer) Gradient() *gradient.Gradient {
	return v.grad
}

// GradientName returns the active gradient name
func (v *Viewer) GradientName() string {
	return v.gradients[v.gradientIdx]
}

// Message returns the transient status message
func (v *Viewer) Message() string {
	return v.message
}

// Locked reports whether a sequence-wide range is in effect
func (v *Viewer) Locked() bool {
	return v.locked != nil
}

// activeRange is the lock when set, else the configured override
func (v *Viewer) activeRange() intensity.Range {
	if v.locked != nil {
		return *v.locked
	}
	return v.override
}

// Load maps the frame under the cursor
// End of sequence and empty frames are reported in the status line, other errors returned
func (v *Viewer) Load() error {
	v.message = ""
	if v.cursor.Count() == 0 {
		v.matrix = nil
		v.message = "no frames"
		return nil
	}

	frame, err := v.seq.ReadFrame(v.cursor.Index())
	if err != nil {
		if errors.Is(err, sequence.ErrEndOfSequence) {
			log.Printf("[viewer] %v", err)
			v.message = "end of sequence"
			return nil
		}
		return fmt.Errorf("frame %d: %w", v.cursor.Index(), err)
	}

	return v.remap(frame)
}

func (v *Viewer) remap(frame *intensity.Frame) error {
	m, b, err := v.mapper.MapBounds(frame, v.grad, v.activeRange())
	if errors.Is(err, intensity.ErrEmptyFrame) {
		v.matrix = nil
		v.message = "empty frame skipped"
		return nil
	}
	if err != nil {
		return err
	}
	v.matrix, v.bounds = m, b
	return nil
}

// Next advances one frame
func (v *Viewer) Next() error {
	if v.cursor.AtEnd() {
		v.message = "last frame"
		return nil
	}
	v.cursor.Next()
	return v.Load()
}

// Prev steps back one frame
func (v *Viewer) Prev() error {
	if v.cursor.Index() == 0 {
		v.message = "first frame"
		return nil
	}
	v.cursor.Prev()
	return v.Load()
}

// First jumps to frame 0
func (v *Viewer) First() error {
	v.cursor.First()
	return v.Load()
}

// Last jumps to the final frame
func (v *Viewer) Last() error {
	v.cursor.Last()
	return v.Load()
}

// SetGradient activates a gradient by name and remaps the current frame
func (v *Viewer) SetGradient(name string) error {
	g, err := v.resolve(name)
	if err != nil {
		return err
	}
	v.grad = g

	v.gradientIdx = -1
	for i, n := range v.gradients {
		if strings.EqualFold(n, name) {
			v.gradientIdx = i
			break
		}
	}
	if v.gradientIdx < 0 {
		v.gradients = append(v.gradients, name)
		v.gradientIdx = len(v.gradients) - 1
	}

	if v.matrix != nil {
		return v.Load()
	}
	return nil
}

// CycleGradient switches to the next gradient in the list
func (v *Viewer) CycleGradient() error {
	next := (v.gradientIdx + 1) % len(v.gradients)
	return v.SetGradient(v.gradients[next])
}

// ToggleLock scans the whole sequence once and pins its range, or releases the pin
func (v *Viewer) ToggleLock(ctx context.Context) error {
	if v.locked != nil {
		v.locked = nil
		return v.Load()
	}

	ext, err := sequence.ScanRange(ctx, v.seq, runtime.GOMAXPROCS(0))
	if err != nil {
		return fmt.Errorf("range scan: %w", err)
	}
	if ext.Frames == 0 {
		v.message = "no samples to lock"
		return nil
	}
	r := intensity.Fixed(ext.Min, ext.Max)
	v.locked = &r
	log.Printf("[viewer] range locked to %s over %d frames", r, ext.Frames)
	return v.Load()
}

// ZoomIn advances one zoom step
func (v *Viewer) ZoomIn() { v.Zoom = grid.ZoomIn(v.Zoom) }

// ZoomOut retreats one zoom step
func (v *Viewer) ZoomOut() { v.Zoom = grid.ZoomOut(v.Zoom) }

// ResetZoom returns to 1:1
func (v *Viewer) ResetZoom() { v.Zoom = grid.DefaultZoom }

// ToggleRenderMode cycles render modes
func (v *Viewer) ToggleRenderMode() {
	if v.RenderMode == ModeHalfBlock {
		v.RenderMode = ModeBackground
	} else {
		v.RenderMode = ModeHalfBlock
	}
	v.ViewportY = 0
}
