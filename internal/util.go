package internal

// Often we want to treat an array as a circular buffer. This gives the modular
// index given length n, but unlike the raw modulo operator, it only gives positive values
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// Lexicographic order on points: y first, then x. This is the order used to
// pick the topmost point, and to canonicalize segments so that predicates give
// bit-identical answers regardless of the direction a segment is walked.
func (p *Point) Below(otherPoint *Point) bool {
	if p.Y == otherPoint.Y {
		return p.X < otherPoint.X
	}
	return p.Y < otherPoint.Y
}

func (p *Point) Above(otherPoint *Point) bool {
	return otherPoint.Below(p)
}

// Find the lexicographically highest point.
func TopPoint(points []*Point) *Point {
	var top *Point
	for _, p := range points {
		if top == nil || p.Above(top) {
			top = p
		}
	}
	return top
}
