package netwk

import "fmt"

// NearTolerance is the half-width of the square neighbourhood searched by
// [Graph.NearPoint]. A node qualifies when both |dx| and |dy| are strictly
// less than this value.
const NearTolerance float32 = 5.0

// Point is a coordinate on the drawing surface, as reported by the host
// windowing system. Equality is exact floating-point equality.
type Point struct {
	X float32
	Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point { return Point{X: x, Y: y} }

// String formats the point as "(x, y)".
func (p Point) String() string { return fmt.Sprintf("(%g, %g)", p.X, p.Y) }

// Near reports whether q lies inside the open square of half-width
// NearTolerance centred on p.
func (p Point) Near(q Point) bool {
	return abs32(p.X-q.X) < NearTolerance && abs32(p.Y-q.Y) < NearTolerance
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
