package sequence

import (
	"context"
	"fmt"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Extent is the sample range over several frames
type Extent struct {
	Min float64
	Max float64
	// Frames counts frames that held at least one finite sample
	Frames int
}

// ScanRange computes min and max over every frame of seq
// Frames are read by up to workers goroutines; workers <= 0 means one
// The first read error cancels the scan and is returned unchanged
func ScanRange(ctx context.Context, seq Sequence, workers int) (Extent, error) {
	if workers <= 0 {
		workers = 1
	}

	var (
		mu  sync.Mutex
		ext = Extent{Min: math.MaxFloat64, Max: -math.MaxFloat64}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < seq.FrameCount(); i++ {
		if gctx.Err() != nil {
			break
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			frame, err := seq.ReadFrame(i)
			if err != nil {
				return fmt.Errorf("scan frame %d: %w", i, err)
			}
			if frame.Empty() {
				return nil
			}
			lo, hi, ok := frame.Extrema()
			if !ok {
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			ext.Min = math.Min(ext.Min, lo)
			ext.Max = math.Max(ext.Max, hi)
			ext.Frames++
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Extent{}, err
	}
	if err := ctx.Err(); err != nil {
		return Extent{}, err
	}
	if ext.Frames == 0 {
		return Extent{}, nil
	}
	return ext, nil
}
