// Delaunay triangulation of planar point sets for Go.
//
// This package computes the Delaunay triangulation of a set of distinct
// points with the randomized incremental algorithm: points are inserted one
// at a time in random order, located through a history DAG, and the mesh is
// kept Delaunay by flipping illegal edges. Expected running time is
// O(n log n).
package delaunay

import (
	"github.com/osuushi/delaunay/internal"
)

type Point = internal.Point
type Triangle = internal.Triangle
type Options = internal.Options
type Stats = internal.Stats
type Result = internal.Result

// Precondition failures, returned wrapped. Test with errors.Is.
var (
	ErrTooFewPoints      = internal.ErrTooFewPoints
	ErrNilPoint          = internal.ErrNilPoint
	ErrInvalidCoordinate = internal.ErrInvalidCoordinate
	ErrDuplicatePoint    = internal.ErrDuplicatePoint
	ErrCollinear         = internal.ErrCollinear
)

// Triangulate a set of points.
//
// There must be at least three points, they must be distinct, and they must
// not all be collinear. The result covers the convex hull of the points, every
// triangle is counterclockwise, and its vertices are the pointers passed in.
//
// The insertion order is pseudorandom but deterministic. Use
// TriangulateWithOptions to change the seed or to get statistics.
func Triangulate(points []*Point) ([]*Triangle, error) {
	result, err := TriangulateWithOptions(points, Options{})
	if err != nil {
		return nil, err
	}
	return result.Triangles, nil
}

func TriangulateWithOptions(points []*Point, opts Options) (result *Result, err error) {
	defer func() {
		recoveredErr := internal.HandleTriangulatePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return internal.Triangulate(points, opts), nil
}
