package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/tracescope/internal/trace"
)

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// Render rasterizes scene and returns it as cols×rows coloured braille
// cells on the scene background.
func Render(scene trace.Scene, cols, rows int) string {
	return Rasterize(scene, cols, rows).String()
}

// String renders the canvas, one line per cell row. Runs of cells owned by
// the same layer share one style.
func (c *Canvas) String() string {
	if c.cols == 0 || c.rows == 0 {
		return ""
	}

	bg := hex(c.scene.Background)
	styles := map[Layer]lipgloss.Style{
		LayerNone:  lipgloss.NewStyle().Background(bg),
		LayerTrace: lipgloss.NewStyle().Background(bg).Foreground(hex(c.scene.TraceColor)),
		LayerGrid:  lipgloss.NewStyle().Background(bg).Foreground(hex(c.scene.GridColor)),
	}

	var out strings.Builder
	var run strings.Builder
	for row := range c.rows {
		if row > 0 {
			out.WriteByte('\n')
		}
		current := LayerNone
		run.Reset()
		for col := range c.cols {
			r, layer := c.Cell(col, row)
			if layer != current && run.Len() > 0 {
				out.WriteString(styles[current].Render(run.String()))
				run.Reset()
			}
			current = layer
			run.WriteRune(r)
		}
		if run.Len() > 0 {
			out.WriteString(styles[current].Render(run.String()))
		}
	}
	return out.String()
}

// Plain renders the canvas without colour. It is a test and diagnostic
// helper; the TUI draws through Render.
func (c *Canvas) Plain() string {
	var out strings.Builder
	for row := range c.rows {
		if row > 0 {
			out.WriteByte('\n')
		}
		for col := range c.cols {
			r, _ := c.Cell(col, row)
			out.WriteRune(r)
		}
	}
	return out.String()
}
