package internal

import (
	"math"
	"math/rand"
	"time"

	"github.com/osuushi/delaunay/internal/dbg"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Randomized incremental Delaunay triangulation, with point location through
// the history DAG and legalization by edge flips.
//
// The construction starts from an embracing triangle whose three synthetic
// vertices lie far outside the input. Points are inserted in random order,
// which is what gives expected O(log n) location per point and O(n log n)
// overall. At the end, triangles touching a synthetic vertex are dropped.

// How far out the synthetic vertices are drawn, as a multiple of the input's
// extent. This only affects their stored coordinates; every predicate treats
// them as infinitely far away.
const EmbracingScale = 1e5

// Directions in which the synthetic vertices recede: the apex straight up, and
// the base corners down and out to either side.
var embracingDirections = [3]Point{{X: 0, Y: 1}, {X: -2, Y: -1}, {X: 2, Y: -1}}

type Options struct {
	// Seed for the insertion order. Ignored when Rand is set.
	Seed int64
	// Seed from the clock instead. By default the shuffle is pseudorandom but
	// deterministic, since predictable results are easier to debug. With
	// untrusted input this raises the potential for adversarial insertion
	// orders, so this should be set in that case.
	Nondeterministic bool
	// Source for the insertion order shuffle.
	Rand *rand.Rand
	// Defaults to a no-op logger.
	Logger *zap.Logger
	// Validate the mesh after every insertion. Slow.
	Debug bool
}

type Stats struct {
	Points         int
	InteriorSplits int
	EdgeSplits     int
	Flips          int
	DAGNodes       int
	ArenaTriangles int
	DAGDepth       int
}

type Result struct {
	Triangles TriangleList
	Stats     Stats
}

type Triangulator struct {
	mesh      *Mesh
	dag       *DAG
	rand      *rand.Rand
	logger    *zap.Logger
	debug     bool
	synthetic [3]*Point

	// Points in insertion order, and how many have been inserted
	order    []*Point
	inserted int

	stats      Stats
	flipBudget int
	flipCount  int
}

// Validate the points, build the embracing triangle and fix the insertion
// order. Panics with a TriangulateError if the points are invalid.
func NewTriangulator(points []*Point, opts Options) *Triangulator {
	if err := ValidatePoints(points); err != nil {
		fatal(err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("delaunay")

	r := opts.Rand
	if r == nil {
		seed := opts.Seed
		if opts.Nondeterministic {
			seed = time.Now().UnixNano()
		}
		r = rand.New(rand.NewSource(seed))
	}

	tr := &Triangulator{
		mesh:       NewMesh(logger),
		rand:       r,
		logger:     logger,
		debug:      opts.Debug,
		synthetic:  EmbracingTriangle(points),
		flipBudget: 4*len(points) + 16,
	}
	tr.mesh.Kernel = EmbracingKernel(points, tr.synthetic)
	root := tr.mesh.NewTriangle(tr.synthetic[0], tr.synthetic[1], tr.synthetic[2])
	tr.dag = NewDAG(tr.mesh, root)

	// Fisher-Yates shuffle. This is what gives us the expected time bounds.
	tr.order = make([]*Point, len(points))
	copy(tr.order, points)
	tr.rand.Shuffle(len(tr.order), func(i, j int) {
		tr.order[i], tr.order[j] = tr.order[j], tr.order[i]
	})
	return tr
}

// Where the synthetic vertices start from. Each one is its base plus an
// unbounded multiple of its direction.
func embracingBases(points []*Point) [3]Point {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX := math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
	}
	top := TopPoint(points)
	// Halves first, so that huge coordinates can't overflow
	centerX := minX/2 + maxX/2
	return [3]Point{
		{X: top.X, Y: top.Y},
		{X: centerX, Y: minY},
		{X: centerX, Y: minY},
	}
}

// Three synthetic vertices enclosing every point with a wide margin. The apex
// sits straight above the topmost point, and the base runs below the bounding
// box.
func EmbracingTriangle(points []*Point) [3]*Point {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	bases := embracingBases(points)
	r := EmbracingScale * math.Max(maxX-minX, maxY-minY)

	var synthetic [3]*Point
	for i, base := range bases {
		dir := embracingDirections[i]
		synthetic[i] = &Point{X: base.X, Y: base.Y + r*dir.Y}
		if dir.X != 0 {
			synthetic[i].X += r * dir.X
		}
	}
	return synthetic
}

// A kernel in which the synthetic vertices are at infinity, each receding from
// its base along its direction.
func EmbracingKernel(points []*Point, synthetic [3]*Point) *Kernel {
	kernel := NewKernel()
	for i, base := range embracingBases(points) {
		kernel.AddFarVertex(synthetic[i], base, embracingDirections[i])
	}
	return kernel
}

func (tr *Triangulator) Mesh() *Mesh {
	return tr.mesh
}

func (tr *Triangulator) DAG() *DAG {
	return tr.dag
}

func (tr *Triangulator) Synthetic() [3]*Point {
	return tr.synthetic
}

func (tr *Triangulator) IsSynthetic(p *Point) bool {
	return p == tr.synthetic[0] || p == tr.synthetic[1] || p == tr.synthetic[2]
}

func (tr *Triangulator) TouchesSynthetic(t *MeshTriangle) bool {
	for _, v := range t.Vertices {
		if tr.IsSynthetic(v) {
			return true
		}
	}
	return false
}

// Insert the next point. Returns false once every point has been inserted.
func (tr *Triangulator) Step() bool {
	if tr.inserted == len(tr.order) {
		return false
	}
	p := tr.order[tr.inserted]
	tr.Insert(p)
	tr.inserted++

	if tr.debug {
		tr.checkMesh(p)
	}
	return true
}

// Insert every remaining point and extract the triangulation.
func (tr *Triangulator) Run() *Result {
	for tr.Step() {
	}
	result := &Result{
		Triangles: tr.Extract(),
		Stats:     tr.Stats(),
	}
	tr.logger.Debug("triangulation finished",
		zap.Int("points", result.Stats.Points),
		zap.Int("triangles", len(result.Triangles)),
		zap.Int("interiorSplits", result.Stats.InteriorSplits),
		zap.Int("edgeSplits", result.Stats.EdgeSplits),
		zap.Int("flips", result.Stats.Flips),
		zap.Int("dagNodes", result.Stats.DAGNodes),
		zap.Int("dagDepth", result.Stats.DAGDepth),
	)
	return result
}

func (tr *Triangulator) Stats() Stats {
	stats := tr.stats
	stats.Points = tr.inserted
	stats.DAGNodes = tr.dag.Len()
	stats.ArenaTriangles = tr.mesh.Len()
	stats.DAGDepth = tr.dag.Depth()
	return stats
}

// Insert a single point into the mesh. The point must lie strictly inside the
// embracing triangle and must not already be a vertex.
func (tr *Triangulator) Insert(p *Point) {
	tr.flipCount = 0
	leaf := tr.dag.Locate(p)
	id := tr.dag.Get(leaf).Triangle
	t := *tr.mesh.Get(id)

	if t.HasVertex(p) {
		fatalf("point %s is already in the mesh", p)
	}

	if tr.mesh.ContainsPoint(id, p, true) {
		tr.splitInterior(leaf, p)
		return
	}

	side, ok := tr.mesh.SideContaining(id, p)
	if !ok {
		fatalf("located triangle %s neither contains %s nor has it on an edge", t.Triangle(), p)
	}
	tr.splitEdge(leaf, side, p)
}

// Split a triangle into three around a point strictly inside it.
func (tr *Triangulator) splitInterior(leaf NodeID, p *Point) {
	id := tr.dag.Get(leaf).Triangle
	t := *tr.mesh.Get(id)
	a, b, c := t.Vertices[0], t.Vertices[1], t.Vertices[2]

	ab := tr.mesh.NewTriangle(a, b, p)
	bc := tr.mesh.NewTriangle(b, c, p)
	ca := tr.mesh.NewTriangle(c, a, p)

	// The new triangles around p
	tr.link(ab, bc)
	tr.link(bc, ca)
	tr.link(ca, ab)
	// The old outer neighbors
	tr.link(ab, t.Adjacent[SideAB])
	tr.link(bc, t.Adjacent[SideBC])
	tr.link(ca, t.Adjacent[SideCA])

	tr.dag.RecordSplit(leaf, ab, bc, ca)
	tr.stats.InteriorSplits++
	if tr.debug {
		tr.logger.Debug("interior split", zap.Stringer("point", p), zap.String("node", dbg.Name(leaf)))
	}

	for _, n := range []TriangleID{ab, bc, ca} {
		tr.legalizeOpposite(p, n)
	}
}

// Split the two triangles sharing the edge that p lies on into four.
//
// With t = (a, b, c), p on a-b, and the neighbor across a-b being (b, a, d),
// t becomes (a, p, c) and (p, b, c), and the neighbor becomes (b, p, d) and
// (p, a, d). Each old node gets exactly the two triangles that tile it, so
// a later location query descending through either of them still finds
// its point in one of its own children.
func (tr *Triangulator) splitEdge(leaf NodeID, side Side, p *Point) {
	id := tr.dag.Get(leaf).Triangle
	t := *tr.mesh.Get(id)
	a, b := t.Edge(side)
	c := t.OppositeVertex(side)

	otherID := t.Adjacent[side]
	if otherID == NoTriangle {
		fatalf("point %s lies on the boundary of the embracing triangle", p)
	}
	otherSide, ok := tr.mesh.SideOf(otherID, id)
	if !ok {
		fatalf("neighbor of %s across %s does not point back", t.Triangle(), side)
	}
	other := *tr.mesh.Get(otherID)
	d := other.OppositeVertex(otherSide)

	apc := tr.mesh.NewTriangle(a, p, c)
	pbc := tr.mesh.NewTriangle(p, b, c)
	bpd := tr.mesh.NewTriangle(b, p, d)
	pad := tr.mesh.NewTriangle(p, a, d)

	// The new triangles around p
	tr.link(apc, pbc)
	tr.link(pbc, bpd)
	tr.link(bpd, pad)
	tr.link(pad, apc)
	// The old outer neighbors
	tr.link(apc, t.Adjacent[side.Prev()])
	tr.link(pbc, t.Adjacent[side.Next()])
	tr.link(pad, other.Adjacent[otherSide.Next()])
	tr.link(bpd, other.Adjacent[otherSide.Prev()])

	tr.dag.RecordSplit(leaf, apc, pbc)
	tr.dag.RecordSplit(other.Node, bpd, pad)
	tr.stats.EdgeSplits++
	if tr.debug {
		tr.logger.Debug("edge split",
			zap.Stringer("point", p),
			zap.String("node", dbg.Name(leaf)),
			zap.String("neighbor", dbg.Name(other.Node)),
		)
	}

	for _, n := range []TriangleID{apc, pbc, bpd, pad} {
		tr.legalizeOpposite(p, n)
	}
}

// Link two new neighbors. A missing neighbor (the outside of the embracing
// triangle) is fine; two triangles that don't share an edge are not.
func (tr *Triangulator) link(t1, t2 TriangleID) {
	if t2 == NoTriangle {
		return
	}
	if !tr.mesh.Link(t1, t2) {
		tr.invariantf("triangles %s and %s share no edge", tr.mesh.Get(t1).Triangle(), tr.mesh.Get(t2).Triangle())
	}
}

func (tr *Triangulator) legalizeOpposite(p *Point, t TriangleID) {
	side, ok := tr.mesh.Get(t).OppositeSide(p)
	if !ok {
		fatalf("triangle %s does not have %s as a vertex", tr.mesh.Get(t).Triangle(), p)
	}
	tr.legalize(p, t, side)
}

// Flip the edge on the given side of t if it's illegal, and then recurse on
// the two edges that the flip exposed. t must have p opposite the side. Edges
// incident to p are legal after a flip, so they are never revisited, which is
// what guarantees termination.
func (tr *Triangulator) legalize(p *Point, t TriangleID, side Side) {
	other := tr.mesh.Get(t).Adjacent[side]
	if other == NoTriangle {
		return
	}
	otherSide, ok := tr.mesh.SideOf(other, t)
	if !ok {
		tr.invariantf("neighbor of %s across %s does not point back", tr.mesh.Get(t).Triangle(), side)
		return
	}
	if !tr.IsIllegal(t, side, other, otherSide) {
		return
	}

	tr.flipCount++
	if tr.flipCount > tr.flipBudget {
		fatalf("legalization around %s did not converge after %d flips", p, tr.flipBudget)
	}

	oldNode, otherOldNode := tr.mesh.Get(t).Node, tr.mesh.Get(other).Node
	flip, ok := tr.mesh.FlipEdge(t, side, other, otherSide)
	if !ok {
		tr.invariantf("could not flip edge %s of %s", side, tr.mesh.Get(t).Triangle())
		return
	}
	tr.dag.RecordFlip(oldNode, otherOldNode, flip)
	tr.stats.Flips++

	tr.legalizeOpposite(p, flip.First)
	tr.legalizeOpposite(p, flip.Second)
}

// Whether the edge on side s1 of t1, shared with t2 on side s2, is illegal:
// the vertex of t2 across the edge lies strictly inside t1's circumcircle.
// Edges whose quadrilateral is not strictly convex are never illegal.
//
// The mesh's kernel puts the synthetic vertices at infinity, so a circle
// through two input points and a synthetic vertex is in the limit a half-plane,
// and a circle through three input points never contains a synthetic vertex.
// The cases with more synthetic vertices are decided by the same limit.
func (tr *Triangulator) IsIllegal(t1 TriangleID, s1 Side, t2 TriangleID, s2 Side) bool {
	if !tr.mesh.IsFlippable(t1, s1, t2, s2) {
		return false
	}
	far := tr.mesh.Get(t2).OppositeVertex(s2)
	return tr.mesh.InCircumcircle(t1, far)
}

// Live triangles that don't touch the embracing triangle's vertices.
func (tr *Triangulator) Extract() TriangleList {
	var result TriangleList
	for _, id := range tr.dag.LiveTriangles() {
		t := tr.mesh.Get(id)
		if tr.TouchesSynthetic(t) {
			continue
		}
		result = append(result, t.Triangle())
	}
	return result
}

// An adjacency problem means a bug in the driver, not bad input. Report it,
// and in debug mode stop.
func (tr *Triangulator) invariantf(format string, args ...interface{}) {
	err := errors.Errorf(format, args...)
	tr.logger.Error("mesh invariant violated", zap.Error(err))
	if tr.debug {
		fatal(err)
	}
}

func (tr *Triangulator) checkMesh(p *Point) {
	live := tr.dag.LiveTriangles()
	if err := tr.mesh.Validate(live); err != nil {
		fatal(errors.Wrapf(err, "after inserting %s", p))
	}
	// Every insertion adds exactly two triangles
	if expected := 1 + 2*tr.inserted; len(live) != expected {
		fatalf("after inserting %s: %d live triangles, expected %d", p, len(live), expected)
	}
}

// Triangulate a point set. Panics with a TriangulateError on invalid input or
// an internal inconsistency; see HandleTriangulatePanicRecover.
func Triangulate(points []*Point, opts Options) *Result {
	return NewTriangulator(points, opts).Run()
}
