package trace

import "image/color"

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Empty reports whether the rectangle covers no area.
func (r Rect) Empty() bool { return !(r.W > 0) || !(r.H > 0) }

// Scene is a renderable frame description. Renderers paint its layers
// back to front: Background fill, Trace stroke, Mask rectangle, Grid lines.
// Grid lines therefore stay visible inside the masked area.
type Scene struct {
	Size       Size
	Background color.RGBA

	Trace      Path
	TraceColor color.RGBA
	TraceWidth float64

	Mask      Rect
	MaskColor color.RGBA

	Grid      []Line
	GridColor color.RGBA
	GridWidth float64
}

// Compose layers the trace of frame, the scroll mask of the given overlay
// width and the grid overlay into a scene for a canvas of the given size.
// The mask is anchored to the right edge and clamped to the canvas.
func Compose(cfg Config, frame Frame, size Size, overlayWidth float64) Scene {
	scene := Scene{
		Size:       size,
		Background: cfg.Background,
		TraceColor: cfg.TraceColor,
		TraceWidth: cfg.TraceWidth,
		MaskColor:  cfg.Background,
		GridColor:  cfg.GridColor,
		GridWidth:  cfg.GridWidth,
	}
	if size.Degenerate() {
		return scene
	}

	scene.Trace = GeneratePath(frame, size, cfg.VerticalScale, cfg.HorizontalShift())

	overlay := overlayWidth
	if !(overlay > 0) {
		overlay = 0
	}
	if overlay > size.W {
		overlay = size.W
	}
	scene.Mask = Rect{X: size.W - overlay, W: overlay, H: size.H}

	scene.Grid = GridLines(size, cfg.VerticalGridLines, cfg.HorizontalGridLines)
	return scene
}
