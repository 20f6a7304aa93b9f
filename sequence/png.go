package sequence

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/lixenwraith/irbview/intensity"
)

// decodePNG reads one frame from a grayscale PNG
// Each pixel's 16-bit gray level is the raw sample
func decodePNG(r io.Reader) (*intensity.Frame, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrCorrupt)
	}

	frame := intensity.NewFrame(w, h)
	switch src := img.(type) {
	case *image.Gray16:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				frame.Set(x, y, float32(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y))
			}
		}
	default:
		// 8-bit and color images go through the Gray16 model
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
				frame.Set(x, y, float32(g.Y))
			}
		}
	}
	return frame, nil
}
