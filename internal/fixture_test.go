package internal

import (
	"embed"
	"log"
	"math"
	"math/rand"
)

// Point sets for tests. SVG fixtures are available by name from the fixtures/
// directory, sans extension; see ReadSVGPoints for which elements count. If
// anything goes wrong loading one, it exits.

//go:embed fixtures
var fixtures embed.FS

func LoadFixture(name string) []*Point {
	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		log.Fatalf("Could not load fixture %q: %v", name, err)
	}
	defer fixture.Close()

	points, err := ReadSVGPoints(fixture)
	if err != nil {
		log.Fatalf("Failed to read fixture %q: %v", name, err)
	}
	if len(points) == 0 {
		log.Fatalf("No points found in fixture %q", name)
	}
	return points
}

// Some ad hoc point sets

func RandomPoints(seed int64, n int) []*Point {
	r := rand.New(rand.NewSource(seed))
	points := make([]*Point, 0, n)
	seen := make(PointSet)
	for len(points) < n {
		p := &Point{X: r.Float64() * 1000, Y: r.Float64() * 1000}
		if seen.Contains(p) {
			continue
		}
		seen.Add(p)
		points = append(points, p)
	}
	return points
}

// Integer lattice. Full of collinear and cocircular points.
func GridPoints(width, height int) []*Point {
	return SpacedGridPoints(width, height, 1, 1)
}

// Lattice with the given spacing. With spacings like 0.1, the coordinates are
// rounded, so points that should be collinear or cocircular are only nearly
// so.
func SpacedGridPoints(width, height int, dx, dy float64) []*Point {
	var points []*Point
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			points = append(points, &Point{X: float64(x) * dx, Y: float64(y) * dy})
		}
	}
	return points
}

// Random points in a width x height box.
func BoxPoints(seed int64, n int, width, height float64) []*Point {
	var points []*Point
	for _, p := range RandomPoints(seed, n) {
		points = append(points, &Point{X: p.X / 1000 * width, Y: p.Y / 1000 * height})
	}
	return points
}

// Points evenly spaced on a circle, plus its center.
func RingPoints(n int) []*Point {
	points := []*Point{{X: 0, Y: 0}}
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		points = append(points, &Point{X: 100 * math.Cos(angle), Y: 100 * math.Sin(angle)})
	}
	return points
}

func UnitSquare() []*Point {
	return []*Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0},
		{X: 1, Y: 1},
		{X: 0, Y: 1},
	}
}
