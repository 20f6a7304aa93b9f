package viewer

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// Action is the outcome of a key press
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionRedraw
)

// HandleKey applies one key press
// Frame read errors other than end of sequence are returned
func (v *Viewer) HandleKey(ctx context.Context, key tcell.Key, r rune, mod tcell.ModMask, termW, termH int) (Action, error) {
	// Pan step sizes
	smallStep := 1
	largeStep := 10
	if mod&tcell.ModShift != 0 {
		smallStep = largeStep
	}

	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlD:
		return ActionQuit, nil

	case tcell.KeyRight:
		return ActionRedraw, v.Next()
	case tcell.KeyLeft:
		return ActionRedraw, v.Prev()
	case tcell.KeyHome:
		return ActionRedraw, v.First()
	case tcell.KeyEnd:
		return ActionRedraw, v.Last()

	case tcell.KeyUp:
		v.Pan(0, -smallStep, termW, termH)
	case tcell.KeyDown:
		v.Pan(0, smallStep, termW, termH)
	case tcell.KeyPgUp:
		v.Pan(0, -termH/2, termW, termH)
	case tcell.KeyPgDn:
		v.Pan(0, termH/2, termW, termH)

	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return ActionQuit, nil

		// Frames
		case 'n', ' ':
			return ActionRedraw, v.Next()
		case 'p':
			return ActionRedraw, v.Prev()
		case 'g':
			return ActionRedraw, v.First()
		case 'G':
			return ActionRedraw, v.Last()

		// Zoom
		case '+', '=':
			v.ZoomIn()
		case '-', '_':
			v.ZoomOut()
		case '0':
			v.ResetZoom()

		// Display
		case 'c', 'C':
			return ActionRedraw, v.CycleGradient()
		case 'm', 'M':
			v.ToggleRenderMode()
		case 's', 'S':
			v.ShowStatus = !v.ShowStatus
		case 'b', 'B':
			v.ShowLegend = !v.ShowLegend
		case 'r', 'R':
			return ActionRedraw, v.ToggleLock(ctx)

		// Vim-style panning
		case 'h':
			v.Pan(-1, 0, termW, termH)
		case 'j':
			v.Pan(0, 1, termW, termH)
		case 'k':
			v.Pan(0, -1, termW, termH)
		case 'l':
			v.Pan(1, 0, termW, termH)
		case 'H':
			v.Pan(-largeStep, 0, termW, termH)
		case 'J':
			v.Pan(0, largeStep, termW, termH)
		case 'K':
			v.Pan(0, -largeStep, termW, termH)
		case 'L':
			v.Pan(largeStep, 0, termW, termH)
		default:
			return ActionNone, nil
		}
	default:
		return ActionNone, nil
	}

	return ActionRedraw, nil
}

// Run draws and processes events until quit, screen close or ctx cancellation
func (v *Viewer) Run(ctx context.Context, s tcell.Screen) error {
	stop := context.AfterFunc(ctx, func() {
		_ = s.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	v.Draw(s)
	s.Show()

	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil

		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return err
			}

		case *tcell.EventResize:
			s.Sync()

		case *tcell.EventKey:
			w, h := s.Size()
			action, err := v.HandleKey(ctx, ev.Key(), ev.Rune(), ev.Modifiers(), w, h)
			if err != nil {
				return err
			}
			if action == ActionQuit {
				return nil
			}
			if action == ActionNone {
				continue
			}
		}

		v.Draw(s)
		s.Show()
	}
}
