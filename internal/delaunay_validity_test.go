package internal

// This contains no actual tests. It is just a helper for testing triangulation
// validity.

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// Helper to check that a triangulation is a Delaunay triangulation of the
// points. The rules are:
// 1. Every triangle vertex is one of the input pointers, and every input point is a vertex.
// 2. Every triangle is counterclockwise, with nonzero area.
// 3. No edge is shared by more than two triangles.
// 4. The sum of the areas of all triangles is equal to the area of the convex hull.
// 5. There are exactly 2n - 2 - h triangles, where h counts the points on the hull boundary.
// 6. No input point is strictly inside any triangle's circumcircle, decided exactly.
func AssertValidDelaunay(t *testing.T, points []*Point, triangles []*Triangle) {
	inputs := make(map[*Point]bool, len(points))
	for _, p := range points {
		inputs[p] = true
	}
	used := make(map[*Point]bool, len(points))
	edgeCounts := make(map[normalizedSegment]int)

	var triangleArea float64
	for _, tri := range triangles {
		for _, p := range tri.Points() {
			require.True(t, inputs[p], "vertex %s of %s is not an input point", p, tri)
			used[p] = true
		}
		require.True(t, tri.IsCCW(), "triangle is not counterclockwise: %s", tri)
		triangleArea += tri.Area()

		for _, segment := range [][2]*Point{{tri.A, tri.B}, {tri.B, tri.C}, {tri.C, tri.A}} {
			key := newNormalizedSegment(segment[0], segment[1])
			edgeCounts[key]++
			require.LessOrEqual(t, edgeCounts[key], 2, "edge %s-%s is shared by more than two triangles", segment[0], segment[1])
		}
	}
	require.Len(t, used, len(points), "every input point must be a vertex")

	hull := convexHull(points)
	hullArea := polygonArea(hull)
	require.InEpsilon(t, hullArea, triangleArea, 1e-9, "triangles must tile the convex hull")

	h := countOnHull(points, hull)
	require.Len(t, triangles, 2*len(points)-2-h, "triangle count")

	for _, tri := range triangles {
		for _, p := range points {
			if p == tri.A || p == tri.B || p == tri.C {
				continue
			}
			require.LessOrEqual(t, InCircle(tri.A, tri.B, tri.C, p), 0,
				"%s is inside the circumcircle of %s", p, tri)
		}
	}
}

// Used in the helper above, this is a "normalized" line segment, where the
// "lower" point is always first
type normalizedSegment struct {
	lower, upper *Point
}

func newNormalizedSegment(a, b *Point) normalizedSegment {
	if a.Below(b) {
		return normalizedSegment{a, b}
	}
	return normalizedSegment{b, a}
}

// Monotone chain. Returns the strict hull (no collinear points) in CCW order.
func convexHull(points []*Point) []*Point {
	sorted := make([]*Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Below(sorted[j])
	})

	var hull []*Point
	for pass := 0; pass < 2; pass++ {
		start := len(hull)
		for _, p := range sorted {
			for len(hull) >= start+2 && !IsLeftTurn(hull[len(hull)-2], hull[len(hull)-1], p) {
				hull = hull[:len(hull)-1]
			}
			hull = append(hull, p)
		}
		// The last point of each chain is the first of the next
		hull = hull[:len(hull)-1]
		for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	}
	return hull
}

// Shoelace formula, relative to the first vertex so that polygons far from
// the origin don't lose their precision.
func polygonArea(points []*Point) float64 {
	origin := points[0]
	var sum float64
	for i := 1; i+1 < len(points); i++ {
		sum += CrossProduct(origin, points[i], points[i+1])
	}
	return math.Abs(sum) / 2
}

func countOnHull(points []*Point, hull []*Point) int {
	count := 0
	for _, p := range points {
		for i, a := range hull {
			b := hull[(i+1)%len(hull)]
			if IsCollinear(a, b, p) &&
				p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
				p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y) {
				count++
				break
			}
		}
	}
	return count
}
