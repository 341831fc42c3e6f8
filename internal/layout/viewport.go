package layout

import "math"

const (
	MaxWidth       = 1400.0
	MaxHeight      = 600.0
	HeightFraction = 0.6
)

// Margins around the plot area, in device units.
const (
	MarginTop    = 20.0
	MarginRight  = 20.0
	MarginBottom = 50.0
	MarginLeft   = 50.0
)

type Viewport struct {
	Width, Height float64
}

// ClampViewport derives the drawing size from the container width and the
// vertical space available to the diagram.
func ClampViewport(containerWidth, availableHeight float64) Viewport {
	return Viewport{
		Width:  math.Min(containerWidth, MaxWidth),
		Height: math.Min(availableHeight*HeightFraction, MaxHeight),
	}
}
