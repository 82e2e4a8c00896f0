package internal

import (
	"fmt"
	"math"
)

// Points are passed around as pointers. Output triangles refer back to the
// exact *Point values the caller handed in, and synthetic vertices are
// recognized by identity. Equality between distinct pointers is exact
// coordinate equality; there is no tolerance anywhere in the triangulation.
type Point struct {
	X float64
	Y float64
}

// Not a point. This is what undefined constructions (parallel lines, the
// circumcircle of a collinear triple) return. NaN never compares equal, so
// always test with IsNaP rather than ==.
var NaP = Point{X: math.NaN(), Y: math.NaN()}

func (p Point) IsNaP() bool {
	return math.IsNaN(p.X) || math.IsNaN(p.Y)
}

func (p *Point) String() string {
	if p == nil {
		return "<nil>"
	}
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Output triangle. Vertices are always counterclockwise.
type Triangle struct {
	A, B, C *Point
}

func (t *Triangle) String() string {
	return fmt.Sprintf("[%s %s %s]", t.A, t.B, t.C)
}

func (t *Triangle) Points() [3]*Point {
	return [3]*Point{t.A, t.B, t.C}
}

type TriangleList []*Triangle

type PointSet map[Point]struct{}

func (s PointSet) Add(p *Point) {
	s[*p] = struct{}{}
}

func (s PointSet) Contains(p *Point) bool {
	_, ok := s[*p]
	return ok
}
