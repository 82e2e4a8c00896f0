package internal

import "math"

// Cross product of the vectors p0->p1 and p0->p2. Positive when p0, p1, p2
// make a left (counterclockwise) turn.
func CrossProduct(p0, p1, p2 *Point) float64 {
	return (p1.X-p0.X)*(p2.Y-p0.Y) - (p2.X-p0.X)*(p1.Y-p0.Y)
}

func IsLeftTurn(p0, p1, p2 *Point) bool {
	return Orientation(p0, p1, p2) > 0
}

func IsRightTurn(p0, p1, p2 *Point) bool {
	return Orientation(p0, p1, p2) < 0
}

func IsCollinear(p0, p1, p2 *Point) bool {
	return Orientation(p0, p1, p2) == 0
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func Dist(a, b *Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Signed area of the triangle. Positive for CCW.
func (t *Triangle) SignedArea() float64 {
	return CrossProduct(t.A, t.B, t.C) / 2
}

func (t *Triangle) Area() float64 {
	return math.Abs(t.SignedArea())
}

// Winding is decided exactly, even where SignedArea rounds to zero.
func (t *Triangle) IsCCW() bool {
	return Orientation(t.A, t.B, t.C) > 0
}

func (t *Triangle) IsCW() bool {
	return Orientation(t.A, t.B, t.C) < 0
}

// A line in the form Ax + By + C = 0
type Line struct {
	A, B, C float64
}

// Intersect two lines. Parallel and coincident lines have no single
// intersection, so they give NaP.
func (l Line) Intersection(other Line) Point {
	det := l.A*other.B - other.A*l.B
	if det == 0 {
		return NaP
	}
	return Point{
		X: (l.B*other.C - other.B*l.C) / det,
		Y: (other.A*l.C - l.A*other.C) / det,
	}
}

type Circle struct {
	Center Point
	Radius float64
}

// Circle through three points, found by intersecting the perpendicular
// bisectors of (a, b) and (a, c). Collinear points give a circle with a NaP
// center, which contains nothing.
//
// The bisectors are built relative to a, which keeps the squared terms small
// when the triangle is far from the origin.
func Circumcircle(a, b, c *Point) Circle {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	l1 := Line{A: bx, B: by, C: -(bx*bx + by*by) / 2}
	l2 := Line{A: cx, B: cy, C: -(cx*cx + cy*cy) / 2}
	center := l1.Intersection(l2)
	if center.IsNaP() {
		return Circle{Center: NaP, Radius: math.NaN()}
	}
	center.X += a.X
	center.Y += a.Y
	return Circle{Center: center, Radius: Dist(&center, a)}
}

func (c Circle) IsNaP() bool {
	return c.Center.IsNaP() || math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0)
}

// Strict containment: points on the circle are outside.
func (c Circle) Contains(p *Point) bool {
	if c.IsNaP() {
		return false
	}
	return Dist(&c.Center, p) < c.Radius
}
