package render

import (
	"github.com/ntwkui/ntwk/pkg/editor"
	"github.com/ntwkui/ntwk/pkg/netwk"
)

// Dot is a node as drawn: its name and center.
type Dot struct {
	Name   string
	Center netwk.Point
}

// Stroke is one connection as drawn, from its owning node to the
// destination. Curved strokes bend through Control.
type Stroke struct {
	From    netwk.Point
	To      netwk.Point
	Control netwk.Point
	Curved  bool
}

// Scene is everything to draw for one frame.
type Scene struct {
	Dots    []Dot
	Strokes []Stroke

	// Pen is the preview under the cursor, or nil.
	Pen *editor.Pen
}

// FromGraph builds a scene from g in node order. Each node contributes a dot
// and one stroke per connection it owns.
func FromGraph(g *netwk.Graph) Scene {
	nodes := g.Nodes()
	s := Scene{Dots: make([]Dot, 0, len(nodes))}
	for _, n := range nodes {
		s.Dots = append(s.Dots, Dot{Name: n.Name(), Center: n.Pos()})
		for _, c := range n.Edges() {
			st := Stroke{From: n.Pos(), To: c.Destination().Pos()}
			st.Control, st.Curved = c.Control()
			s.Strokes = append(s.Strokes, st)
		}
	}
	return s
}

// FromEditor builds a scene from the editor's graph and adds the pending
// preview for a cursor at p.
func FromEditor(e *editor.Editor, cursor netwk.Point) Scene {
	s := FromGraph(e.Graph())
	if pen, ok := e.Pending(cursor); ok {
		s.Pen = &pen
	}
	return s
}

// Bounds returns the smallest box holding every dot and stroke point,
// control points included. ok is false for an empty scene.
func (s Scene) Bounds() (lo, hi netwk.Point, ok bool) {
	grow := func(p netwk.Point) {
		if !ok {
			lo, hi, ok = p, p, true
			return
		}
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	for _, d := range s.Dots {
		grow(d.Center)
	}
	for _, st := range s.Strokes {
		grow(st.From)
		grow(st.To)
		if st.Curved {
			grow(st.Control)
		}
	}
	return lo, hi, ok
}

// QuadAt evaluates the quadratic Bézier from p0 through control c to p1 at
// parameter t in [0, 1].
func QuadAt(p0, c, p1 netwk.Point, t float32) netwk.Point {
	u := 1 - t
	a, b, d := u*u, 2*u*t, t*t
	return netwk.Point{
		X: a*p0.X + b*c.X + d*p1.X,
		Y: a*p0.Y + b*c.Y + d*p1.Y,
	}
}

// Flatten samples the curve into n segments, returning n+1 points that start
// at p0 and end at p1. n below 1 is treated as 1.
func Flatten(p0, c, p1 netwk.Point, n int) []netwk.Point {
	n = max(n, 1)
	pts := make([]netwk.Point, n+1)
	for i := range pts {
		pts[i] = QuadAt(p0, c, p1, float32(i)/float32(n))
	}
	pts[0], pts[n] = p0, p1
	return pts
}
