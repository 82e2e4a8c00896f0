package internal

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Precondition failures. These are reported before any mesh is built, and are
// always returned wrapped; use errors.Is (or errors.Cause) to test for them.
var (
	ErrTooFewPoints      = errors.New("at least 3 points are required")
	ErrNilPoint          = errors.New("nil point")
	ErrInvalidCoordinate = errors.New("coordinates must be finite")
	ErrDuplicatePoint    = errors.New("duplicate point")
	ErrCollinear         = errors.New("all points are collinear")
)

// Check that the points can be triangulated. Problems with individual points
// are all reported together.
func ValidatePoints(points []*Point) error {
	if len(points) < 3 {
		return errors.Wrapf(ErrTooFewPoints, "got %d", len(points))
	}

	var err error
	seen := make(map[Point]int, len(points))
	for i, p := range points {
		if p == nil {
			err = multierr.Append(err, errors.Wrapf(ErrNilPoint, "index %d", i))
			continue
		}
		if !isFinite(p.X) || !isFinite(p.Y) {
			err = multierr.Append(err, errors.Wrapf(ErrInvalidCoordinate, "index %d is %s", i, p))
			continue
		}
		if j, ok := seen[*p]; ok {
			err = multierr.Append(err, errors.Wrapf(ErrDuplicatePoint, "indexes %d and %d are both %s", j, i, p))
			continue
		}
		seen[*p] = i
	}
	if err != nil {
		return err
	}

	// Points are distinct now, so the first two define a line
	for _, p := range points[2:] {
		if !IsCollinear(points[0], points[1], p) {
			return nil
		}
	}
	return errors.Wrapf(ErrCollinear, "%d points on the line through %s and %s", len(points), points[0], points[1])
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
