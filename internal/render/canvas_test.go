package render

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivier-w/tracescope/internal/trace"
)

func flatScene(cols, rows int, overlay float64, vgrid int) trace.Scene {
	cfg := trace.DefaultConfig()
	cfg.VerticalGridLines = vgrid
	frame := make(trace.Frame, cfg.FrameLen())
	return trace.Compose(cfg, frame, CanvasSize(cols, rows), overlay)
}

func countLayer(c *Canvas, layer Layer) int {
	n := 0
	for y := range c.Rows() * 4 {
		for x := range c.Cols() * 2 {
			if c.Dot(x, y) == layer {
				n++
			}
		}
	}
	return n
}

func TestCanvasSize(t *testing.T) {
	assert.Equal(t, trace.Size{W: 20, H: 20}, CanvasSize(10, 5))
	assert.Equal(t, trace.Size{}, CanvasSize(-1, -3))
}

func TestRasterizeFlatTraceOnMidline(t *testing.T) {
	c := Rasterize(flatScene(10, 4, 0, 0), 10, 4)

	for x := range 20 {
		assert.Equalf(t, LayerTrace, c.Dot(x, 8), "dot %d on midline", x)
	}
	assert.Equal(t, LayerNone, c.Dot(5, 0))
	assert.Equal(t, 20, countLayer(c, LayerTrace))
}

func TestRasterizeMaskHidesRightSide(t *testing.T) {
	c := Rasterize(flatScene(10, 4, 10, 0), 10, 4)

	assert.Equal(t, LayerTrace, c.Dot(9, 8))
	assert.Equal(t, LayerNone, c.Dot(10, 8))
	assert.Equal(t, 10, countLayer(c, LayerTrace))
}

func TestRasterizeGridVisibleThroughMask(t *testing.T) {
	c := Rasterize(flatScene(10, 4, 20, 1), 10, 4)

	assert.Zero(t, countLayer(c, LayerTrace), "full mask hides the trace")
	for y := range 16 {
		assert.Equalf(t, LayerGrid, c.Dot(10, y), "grid dot at row %d", y)
	}
}

func TestRasterizeGridOverTrace(t *testing.T) {
	c := Rasterize(flatScene(10, 4, 0, 1), 10, 4)
	assert.Equal(t, LayerGrid, c.Dot(10, 8))
	assert.Equal(t, LayerTrace, c.Dot(9, 8))
}

func TestRasterizeSingleSampleDrawsNothing(t *testing.T) {
	cfg := trace.DefaultConfig()
	scene := trace.Compose(cfg, trace.Frame{0.3}, CanvasSize(8, 2), 0)
	c := Rasterize(scene, 8, 2)
	assert.Zero(t, countLayer(c, LayerTrace))
}

func TestRasterizeIgnoresWildSamples(t *testing.T) {
	cfg := trace.DefaultConfig()
	scene := trace.Compose(cfg, trace.Frame{0, 1e12, 0}, CanvasSize(8, 2), 0)
	c := Rasterize(scene, 8, 2)
	assert.Zero(t, countLayer(c, LayerTrace))
}

func TestCellPattern(t *testing.T) {
	c := Rasterize(flatScene(10, 4, 0, 0), 10, 4)

	r, layer := c.Cell(0, 2)
	// midline dot row 8 is the top dot row of cell row 2: bits 0 and 3
	assert.Equal(t, rune(0x2800+1+8), r)
	assert.Equal(t, LayerTrace, layer)

	r, layer = c.Cell(0, 0)
	assert.Equal(t, rune(0x2800), r)
	assert.Equal(t, LayerNone, layer)
}

func TestRenderDimensions(t *testing.T) {
	scene := flatScene(12, 3, 6, 2)
	out := Render(scene, 12, 3)
	assert.Equal(t, 3, lipgloss.Height(out))
	assert.Equal(t, 12, lipgloss.Width(out))

	plain := Rasterize(scene, 12, 3).Plain()
	require.Len(t, strings.Split(plain, "\n"), 3)
	assert.Empty(t, Render(scene, 0, 3))
}

func TestRenderDeterministic(t *testing.T) {
	scene := flatScene(16, 4, 7, 3)
	assert.Equal(t, Render(scene, 16, 4), Render(scene, 16, 4))
}

func TestThicknessBounds(t *testing.T) {
	assert.Equal(t, 1, thickness(0, 40))
	assert.Equal(t, 1, thickness(math.NaN(), 40))
	assert.Equal(t, 3, thickness(3, 40))
	assert.Equal(t, 40, thickness(3e8, 40))
	assert.Equal(t, 1, thickness(3e8, 0))
}

func TestRasterizeHugeGridWidthCoversCanvas(t *testing.T) {
	cfg := trace.DefaultConfig()
	cfg.HorizontalGridLines = 1
	cfg.GridWidth = 3e8
	scene := trace.Compose(cfg, nil, CanvasSize(10, 4), 0)

	done := make(chan *Canvas, 1)
	go func() { done <- Rasterize(scene, 10, 4) }()
	select {
	case c := <-done:
		assert.Equal(t, 20*16, countLayer(c, LayerGrid))
	case <-time.After(2 * time.Second):
		t.Fatal("rasterizing a huge grid stroke did not finish")
	}
}
