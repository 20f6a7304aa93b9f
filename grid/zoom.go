package grid

import "github.com/samber/lo"

// Zoom ladder used by the viewer
const (
	MinZoom     = 0.5
	MaxZoom     = 3.0
	ZoomStep    = 0.25
	DefaultZoom = 1.0
)

// ClampZoom limits z to [MinZoom, MaxZoom]
func ClampZoom(z float64) float64 {
	return lo.Clamp(z, MinZoom, MaxZoom)
}

// ZoomIn advances one step
func ZoomIn(z float64) float64 {
	return ClampZoom(z + ZoomStep)
}

// ZoomOut retreats one step
func ZoomOut(z float64) float64 {
	return ClampZoom(z - ZoomStep)
}
