package internal

import (
	"math"
	"math/big"
)

// Exact orientation and in-circle predicates.
//
// Both are first evaluated in floating point, and the sign is trusted only if
// the result is larger than a bound on its rounding error (Shewchuk's static
// filters). Otherwise the same expression is evaluated exactly with big.Rat,
// which can represent any finite float64 and every sum and product of them.
// The answer is therefore always the sign of the exact determinant over the
// stored coordinates, so a point is never on both sides of a line, and a
// triangle that looks collinear really is.
//
// A Kernel additionally knows about far vertices: points at Base + R*Dir for
// an arbitrarily large R. Predicates involving them are evaluated as
// polynomials in R, and the sign is taken at the limit. This is how the
// vertices of the embracing triangle are treated as points at infinity in
// every case, rather than at some finite distance that a long thin input can
// exceed.

const epsilon = 0x1p-53

var (
	ccwErrBound = (3 + 16*epsilon) * epsilon
	iccErrBound = (10 + 96*epsilon) * epsilon
)

// Below this, products may have underflowed, and the error bounds don't hold.
const minFilterMagnitude = 0x1p-900

type farVertex struct {
	Base, Dir Point
}

type Kernel struct {
	far map[*Point]farVertex
}

func NewKernel() *Kernel {
	return &Kernel{far: make(map[*Point]farVertex)}
}

// Register p as the point Base + R*Dir. The coordinates stored in p itself are
// only used for display.
func (k *Kernel) AddFarVertex(p *Point, base, dir Point) {
	k.far[p] = farVertex{Base: base, Dir: dir}
}

func (k *Kernel) IsFar(p *Point) bool {
	if k == nil {
		return false
	}
	_, ok := k.far[p]
	return ok
}

func (k *Kernel) anyFar(points ...*Point) bool {
	if k == nil || len(k.far) == 0 {
		return false
	}
	for _, p := range points {
		if k.IsFar(p) {
			return true
		}
	}
	return false
}

// Sign of the turn p0 -> p1 -> p2: 1 for left, -1 for right, 0 for collinear.
func (k *Kernel) Orientation(p0, p1, p2 *Point) int {
	if !k.anyFar(p0, p1, p2) {
		if o, ok := orientationFilter(p0, p1, p2); ok {
			return o
		}
	}
	x0, y0 := k.coordinates(p0)
	x1, y1 := k.coordinates(p1)
	x2, y2 := k.coordinates(p2)
	dx1, dy1 := x1.sub(x0), y1.sub(y0)
	dx2, dy2 := x2.sub(x0), y2.sub(y0)
	return dx1.mul(dy2).sub(dx2.mul(dy1)).sign()
}

// 1 if d is strictly inside the circle through a, b and c, -1 if strictly
// outside, 0 if on it. a, b and c must be counterclockwise; for clockwise
// triangles the sign is reversed, and for collinear ones it is meaningless.
func (k *Kernel) InCircle(a, b, c, d *Point) int {
	if !k.anyFar(a, b, c, d) {
		if o, ok := inCircleFilter(a, b, c, d); ok {
			return o
		}
	}
	ax, ay := k.coordinates(a)
	bx, by := k.coordinates(b)
	cx, cy := k.coordinates(c)
	dx, dy := k.coordinates(d)

	adx, ady := ax.sub(dx), ay.sub(dy)
	bdx, bdy := bx.sub(dx), by.sub(dy)
	cdx, cdy := cx.sub(dx), cy.sub(dy)
	aLift := adx.mul(adx).add(ady.mul(ady))
	bLift := bdx.mul(bdx).add(bdy.mul(bdy))
	cLift := cdx.mul(cdx).add(cdy.mul(cdy))

	det := aLift.mul(bdx.mul(cdy).sub(cdx.mul(bdy))).
		add(bLift.mul(cdx.mul(ady).sub(adx.mul(cdy)))).
		add(cLift.mul(adx.mul(bdy).sub(bdx.mul(ady))))
	return det.sign()
}

func (k *Kernel) coordinates(p *Point) (poly, poly) {
	if k != nil {
		if v, ok := k.far[p]; ok {
			return poly{ratOf(v.Base.X), ratOf(v.Dir.X)}, poly{ratOf(v.Base.Y), ratOf(v.Dir.Y)}
		}
	}
	return poly{ratOf(p.X)}, poly{ratOf(p.Y)}
}

func orientationFilter(p0, p1, p2 *Point) (int, bool) {
	detLeft := (p1.X - p0.X) * (p2.Y - p0.Y)
	detRight := (p2.X - p0.X) * (p1.Y - p0.Y)
	det := detLeft - detRight
	detSum := math.Abs(detLeft) + math.Abs(detRight)
	if detSum < minFilterMagnitude {
		return 0, false
	}
	// Comparisons with NaN (from overflow) are false, which falls through
	errBound := ccwErrBound * detSum
	if det > errBound || -det > errBound {
		return sign(det), true
	}
	return 0, false
}

func inCircleFilter(a, b, c, d *Point) (int, bool) {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	bdxcdy, cdxbdy := bdx*cdy, cdx*bdy
	cdxady, adxcdy := cdx*ady, adx*cdy
	adxbdy, bdxady := adx*bdy, bdx*ady
	aLift := adx*adx + ady*ady
	bLift := bdx*bdx + bdy*bdy
	cLift := cdx*cdx + cdy*cdy

	det := aLift*(bdxcdy-cdxbdy) + bLift*(cdxady-adxcdy) + cLift*(adxbdy-bdxady)
	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*aLift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*bLift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*cLift
	if permanent < minFilterMagnitude {
		return 0, false
	}
	errBound := iccErrBound * permanent
	if det > errBound || -det > errBound {
		return sign(det), true
	}
	return 0, false
}

// The predicates for plain points

func Orientation(p0, p1, p2 *Point) int {
	return (*Kernel)(nil).Orientation(p0, p1, p2)
}

func InCircle(a, b, c, d *Point) int {
	return (*Kernel)(nil).InCircle(a, b, c, d)
}

// Polynomial in R with exact coefficients, lowest degree first.
type poly []*big.Rat

// Coordinates are validated to be finite, so SetFloat64 never fails.
func ratOf(v float64) *big.Rat {
	return new(big.Rat).SetFloat64(v)
}

func (a poly) add(b poly) poly {
	return a.combine(b, (*big.Rat).Add)
}

func (a poly) sub(b poly) poly {
	return a.combine(b, (*big.Rat).Sub)
}

func (a poly) combine(b poly, op func(z, x, y *big.Rat) *big.Rat) poly {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	result := make(poly, n)
	zero := new(big.Rat)
	for i := range result {
		x, y := zero, zero
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		result[i] = op(new(big.Rat), x, y)
	}
	return result
}

func (a poly) mul(b poly) poly {
	result := make(poly, len(a)+len(b)-1)
	for i := range result {
		result[i] = new(big.Rat)
	}
	term := new(big.Rat)
	for i, x := range a {
		for j, y := range b {
			result[i+j].Add(result[i+j], term.Mul(x, y))
		}
	}
	return result
}

// Sign for all large enough R: the sign of the highest nonzero coefficient.
func (a poly) sign() int {
	for i := len(a) - 1; i >= 0; i-- {
		if s := a[i].Sign(); s != 0 {
			return s
		}
	}
	return 0
}
