// Package render draws trace scenes as braille terminal art.
package render

import (
	"math"

	"github.com/olivier-w/tracescope/internal/trace"
)

// Layer identifies what painted a dot last.
type Layer uint8

const (
	LayerNone Layer = iota
	LayerTrace
	LayerGrid
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// CanvasSize is the geometry, in braille dots, of a cols×rows cell area.
func CanvasSize(cols, rows int) trace.Size {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return trace.Size{W: float64(cols * 2), H: float64(rows * 4)}
}

// Canvas is a rasterized scene: one layer tag per braille dot.
type Canvas struct {
	cols, rows int
	dotW, dotH int
	dots       []Layer
	scene      trace.Scene
}

// Rasterize paints scene onto a cols×rows braille canvas in layer order:
// trace, then mask, then grid. The scene is scaled to the dot grid.
func Rasterize(scene trace.Scene, cols, rows int) *Canvas {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c := &Canvas{
		cols:  cols,
		rows:  rows,
		dotW:  cols * 2,
		dotH:  rows * 4,
		scene: scene,
	}
	c.dots = make([]Layer, c.dotW*c.dotH)
	if c.dotW == 0 || c.dotH == 0 || scene.Size.Degenerate() {
		return c
	}

	sx := float64(c.dotW) / scene.Size.W
	sy := float64(c.dotH) / scene.Size.H

	limit := max(c.dotW, c.dotH)
	thick := thickness(scene.TraceWidth, limit)
	scene.Trace.Segments(func(from, to trace.Point) {
		for k := range thick {
			off := k - thick/2
			c.line(from.X*sx, from.Y*sy+float64(off), to.X*sx, to.Y*sy+float64(off), LayerTrace)
		}
	})

	if !scene.Mask.Empty() {
		x0 := int(math.Round(scene.Mask.X * sx))
		y0 := int(math.Round(scene.Mask.Y * sy))
		y1 := int(math.Round((scene.Mask.Y + scene.Mask.H) * sy))
		for y := max(y0, 0); y < min(y1, c.dotH); y++ {
			for x := max(x0, 0); x < c.dotW; x++ {
				c.dots[y*c.dotW+x] = LayerNone
			}
		}
	}

	thick = thickness(scene.GridWidth, limit)
	for _, l := range scene.Grid {
		for k := range thick {
			off := float64(k - thick/2)
			if l.Vertical() {
				x := clampInt(int(math.Round(l.From.X*sx+off)), 0, c.dotW-1)
				c.line(float64(x), l.From.Y*sy, float64(x), l.To.Y*sy-1, LayerGrid)
			} else {
				y := clampInt(int(math.Round(l.From.Y*sy+off)), 0, c.dotH-1)
				c.line(l.From.X*sx, float64(y), l.To.X*sx-1, float64(y), LayerGrid)
			}
		}
	}
	return c
}

// Cols returns the canvas width in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the canvas height in cells.
func (c *Canvas) Rows() int { return c.rows }

// Dot returns the layer at dot (x, y); out-of-range dots are LayerNone.
func (c *Canvas) Dot(x, y int) Layer {
	if x < 0 || y < 0 || x >= c.dotW || y >= c.dotH {
		return LayerNone
	}
	return c.dots[y*c.dotW+x]
}

// Cell returns the braille rune for a cell and the layer that owns it.
// The layer with more lit dots wins; ties go to the grid, which is on top.
func (c *Canvas) Cell(col, row int) (rune, Layer) {
	var pattern uint
	var traceDots, gridDots int
	for dx := range 2 {
		for dy := range 4 {
			switch c.Dot(col*2+dx, row*4+dy) {
			case LayerTrace:
				traceDots++
			case LayerGrid:
				gridDots++
			default:
				continue
			}
			pattern |= 1 << brailleBits[dx][dy]
		}
	}

	layer := LayerNone
	switch {
	case gridDots > 0 && gridDots >= traceDots:
		layer = LayerGrid
	case traceDots > 0:
		layer = LayerTrace
	}
	return rune(0x2800 + pattern), layer
}

// line plots a Bresenham line between two dot positions, discarding dots
// outside the canvas. Segments reaching absurdly far off-canvas are dropped
// whole so a wild sample cannot stall the frame.
func (c *Canvas) line(fx0, fy0, fx1, fy1 float64, layer Layer) {
	limit := float64(16 * (c.dotW + c.dotH))
	for _, v := range []float64{fx0, fy0, fx1, fy1} {
		if math.IsNaN(v) || math.Abs(v) > limit {
			return
		}
	}
	x0, y0 := int(math.Round(fx0)), int(math.Round(fy0))
	x1, y1 := int(math.Round(fx1)), int(math.Round(fy1))

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy

	for {
		if x0 >= 0 && x0 < c.dotW && y0 >= 0 && y0 < c.dotH {
			c.dots[y0*c.dotW+x0] = layer
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// thickness converts a stroke width to a dot count in [1, limit]. A stroke
// wider than the canvas covers it already.
func thickness(w float64, limit int) int {
	if math.IsNaN(w) || w < 1 {
		return 1
	}
	if w > float64(limit) {
		return max(limit, 1)
	}
	return int(math.Round(w))
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
