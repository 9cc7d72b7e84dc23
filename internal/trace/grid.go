package trace

// Line is a straight segment between two canvas points.
type Line struct {
	From Point
	To   Point
}

// Vertical reports whether the line runs top to bottom.
func (l Line) Vertical() bool { return l.From.X == l.To.X }

// GridLines returns evenly spaced reference lines: vertical lines first,
// then horizontal ones. Line i of n sits at (extent/(n+1))*(i+1), so the
// canvas edges never carry a line. Counts are clamped to [0, MaxGridLines].
func GridLines(size Size, vertical, horizontal int) []Line {
	if size.Degenerate() {
		return nil
	}
	vertical = min(max(vertical, 0), MaxGridLines)
	horizontal = min(max(horizontal, 0), MaxGridLines)
	if vertical+horizontal == 0 {
		return nil
	}

	lines := make([]Line, 0, vertical+horizontal)
	vStep := size.W / float64(vertical+1)
	for i := range vertical {
		x := vStep * float64(i+1)
		lines = append(lines, Line{From: Point{X: x}, To: Point{X: x, Y: size.H}})
	}
	hStep := size.H / float64(horizontal+1)
	for i := range horizontal {
		y := hStep * float64(i+1)
		lines = append(lines, Line{From: Point{Y: y}, To: Point{X: size.W, Y: y}})
	}
	return lines
}
