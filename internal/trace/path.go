package trace

// Verb is the drawing instruction attached to a path vertex.
type Verb uint8

const (
	MoveTo Verb = iota
	LineTo
)

func (v Verb) String() string {
	if v == MoveTo {
		return "move"
	}
	return "line"
}

// Vertex is one point of a path together with how it is reached.
type Vertex struct {
	Verb Verb
	Point
}

// Path is an open polyline: one MoveTo followed by straight LineTo segments.
type Path struct {
	Vertices []Vertex
}

// Empty reports whether the path has nothing to draw.
func (p Path) Empty() bool { return len(p.Vertices) == 0 }

// Len returns the number of vertices.
func (p Path) Len() int { return len(p.Vertices) }

// Segments calls fn for every straight segment of the path in order.
// A single-vertex path has no segments.
func (p Path) Segments(fn func(from, to Point)) {
	for i := 1; i < len(p.Vertices); i++ {
		fn(p.Vertices[i-1].Point, p.Vertices[i].Point)
	}
}

// GeneratePath maps a frame onto a canvas, one vertex per sample.
//
// Sample i with value d lands at x = i*horizontalShift*W and
// y = H/2 - (H*d/2)*yScale. Values outside [-1, 1] are not clamped and
// produce vertices outside the canvas; clipping is left to the renderer.
func GeneratePath(frame Frame, size Size, yScale, horizontalShift float64) Path {
	if len(frame) == 0 || size.Degenerate() {
		return Path{}
	}

	mid := size.H / 2
	verts := make([]Vertex, len(frame))
	for i, d := range frame {
		verts[i] = Vertex{
			Verb: LineTo,
			Point: Point{
				X: float64(i) * horizontalShift * size.W,
				Y: mid - (size.H*d/2)*yScale,
			},
		}
	}
	verts[0].Verb = MoveTo
	return Path{Vertices: verts}
}
