package internal

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// The mesh is an arena of triangles. Triangles refer to each other (and to
// their owning DAG node) by index, so cyclic adjacency needs no pointer
// juggling, and a triangle is never modified once it has been replaced. A
// triangle that has been split or flipped simply stops being live; its record
// stays in the arena as the snapshot the history DAG needs.
//
// Note that indexes are only stable handles; *MeshTriangle values returned by
// Get are invalidated by the next NewTriangle call.

type TriangleID int32

const NoTriangle TriangleID = -1

// Sides are named by the edge they cover. Side i runs from vertex i to vertex
// i+1, so the vertex opposite side i is vertex i+2.
type Side int

const (
	SideAB Side = iota
	SideBC
	SideCA
)

func (s Side) Next() Side {
	return Side(CircularIndex(int(s)+1, 3))
}

func (s Side) Prev() Side {
	return Side(CircularIndex(int(s)-1, 3))
}

func (s Side) String() string {
	switch s {
	case SideAB:
		return "AB"
	case SideBC:
		return "BC"
	case SideCA:
		return "CA"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

var AllSides = [3]Side{SideAB, SideBC, SideCA}

type MeshTriangle struct {
	Vertices [3]*Point
	Adjacent [3]TriangleID
	// The DAG node that owns this triangle. For a live triangle, this is a
	// leaf.
	Node NodeID
}

func (t *MeshTriangle) Edge(s Side) (*Point, *Point) {
	return t.Vertices[s], t.Vertices[s.Next()]
}

func (t *MeshTriangle) OppositeVertex(s Side) *Point {
	return t.Vertices[s.Prev()]
}

// Find the side that does not touch the given vertex.
func (t *MeshTriangle) OppositeSide(v *Point) (Side, bool) {
	for i, vertex := range t.Vertices {
		if *vertex == *v {
			return Side(i).Next(), true
		}
	}
	return 0, false
}

func (t *MeshTriangle) HasVertex(v *Point) bool {
	_, ok := t.OppositeSide(v)
	return ok
}

func (t *MeshTriangle) Triangle() *Triangle {
	return &Triangle{t.Vertices[0], t.Vertices[1], t.Vertices[2]}
}

type Mesh struct {
	Triangles []MeshTriangle
	// Predicates for every geometric decision. Nil means plain points only.
	Kernel *Kernel
	logger *zap.Logger
}

func NewMesh(logger *zap.Logger) *Mesh {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mesh{logger: logger}
}

func (m *Mesh) Get(id TriangleID) *MeshTriangle {
	return &m.Triangles[id]
}

func (m *Mesh) Len() int {
	return len(m.Triangles)
}

// Add a triangle to the arena with no neighbors and no owner. The vertices are
// reordered to be counterclockwise if necessary. The mesh never holds a
// triangle with zero area; asking for one panics.
func (m *Mesh) NewTriangle(a, b, c *Point) TriangleID {
	switch m.Kernel.Orientation(a, b, c) {
	case 0:
		fatalf("degenerate triangle [%s %s %s]", a, b, c)
	case -1:
		a, b = b, a
	}
	m.Triangles = append(m.Triangles, MeshTriangle{
		Vertices: [3]*Point{a, b, c},
		Adjacent: [3]TriangleID{NoTriangle, NoTriangle, NoTriangle},
		Node:     NoNode,
	})
	return TriangleID(len(m.Triangles) - 1)
}

// Point in triangle. The strict test rejects points on the boundary; the
// non-strict test accepts them. Triangles are always CCW, so only left turns
// need to be considered.
func (m *Mesh) ContainsPoint(id TriangleID, p *Point, strict bool) bool {
	t := m.Get(id)
	for _, side := range AllSides {
		a, b := t.Edge(side)
		o := m.Kernel.Orientation(a, b, p)
		if o < 0 || (strict && o == 0) {
			return false
		}
	}
	return true
}

// Which side of the triangle the point sits exactly on, if any.
func (m *Mesh) SideContaining(id TriangleID, p *Point) (Side, bool) {
	t := m.Get(id)
	for _, side := range AllSides {
		a, b := t.Edge(side)
		if m.Kernel.Orientation(a, b, p) == 0 {
			return side, true
		}
	}
	return 0, false
}

// Whether p is strictly inside the triangle's circumcircle.
func (m *Mesh) InCircumcircle(id TriangleID, p *Point) bool {
	t := m.Get(id)
	return m.Kernel.InCircle(t.Vertices[0], t.Vertices[1], t.Vertices[2], p) > 0
}

func sameEdge(a1, b1, a2, b2 *Point) bool {
	return (*a1 == *a2 && *b1 == *b2) || (*a1 == *b2 && *b1 == *a2)
}

// Make two triangles neighbors along their shared edge. Whatever either
// triangle previously had on that side is overwritten. Returns false if the
// triangles share no edge.
func (m *Mesh) Link(t1, t2 TriangleID) bool {
	if t1 == NoTriangle || t2 == NoTriangle {
		return false
	}
	first, second := m.Get(t1), m.Get(t2)
	for _, s1 := range AllSides {
		a1, b1 := first.Edge(s1)
		for _, s2 := range AllSides {
			a2, b2 := second.Edge(s2)
			if sameEdge(a1, b1, a2, b2) {
				first.Adjacent[s1] = t2
				second.Adjacent[s2] = t1
				return true
			}
		}
	}
	return false
}

// Which side of t points at the neighbor.
func (m *Mesh) SideOf(t, neighbor TriangleID) (Side, bool) {
	for _, side := range AllSides {
		if m.Triangles[t].Adjacent[side] == neighbor {
			return side, true
		}
	}
	return 0, false
}

func (m *Mesh) areMutuallyAdjacent(t1 TriangleID, s1 Side, t2 TriangleID, s2 Side) bool {
	if t1 == NoTriangle || t2 == NoTriangle {
		return false
	}
	first, second := m.Get(t1), m.Get(t2)
	if first.Adjacent[s1] != t2 || second.Adjacent[s2] != t1 {
		return false
	}
	a1, b1 := first.Edge(s1)
	a2, b2 := second.Edge(s2)
	return sameEdge(a1, b1, a2, b2)
}

// Check whether the two triangles sharing the edge form a strictly convex
// quadrilateral, which is what makes the edge flippable.
func (m *Mesh) IsFlippable(t1 TriangleID, s1 Side, t2 TriangleID, s2 Side) bool {
	if !m.areMutuallyAdjacent(t1, s1, t2, s2) {
		return false
	}
	first, second := m.Get(t1), m.Get(t2)
	a, b := first.Edge(s1)
	c := first.OppositeVertex(s1)
	d := second.OppositeVertex(s2)
	return m.Kernel.Orientation(c, a, d) > 0 && m.Kernel.Orientation(d, b, c) > 0
}

// Everything a flip touched. First and Second are the new triangles, sharing
// the new diagonal. Patched lists the outer neighbors whose back pointers were
// redirected to them.
type FlipResult struct {
	First, Second TriangleID
	Patched       []TriangleID
}

// Flip the edge shared by t1 (on side s1) and t2 (on side s2).
//
// Given t1 = (a, b, c) with the edge a-b on s1 and t2 = (b, a, d), the result
// is First = (c, a, d) and Second = (d, b, c), sharing c-d. First takes over
// the outer neighbors on c-a and a-d; Second takes over d-b and b-c. The old
// triangles are left untouched in the arena.
//
// If the triangles are not mutually adjacent along the given sides, this is a
// no-op returning false.
func (m *Mesh) FlipEdge(t1 TriangleID, s1 Side, t2 TriangleID, s2 Side) (FlipResult, bool) {
	if !m.areMutuallyAdjacent(t1, s1, t2, s2) {
		m.reportInconsistency("flip on non-adjacent triangles", t1, t2)
		return FlipResult{}, false
	}

	// Copy, since adding triangles invalidates pointers into the arena
	first, second := m.Triangles[t1], m.Triangles[t2]
	a, b := first.Edge(s1)
	c := first.OppositeVertex(s1)
	d := second.OppositeVertex(s2)

	var (
		adjBC = first.Adjacent[s1.Next()]
		adjCA = first.Adjacent[s1.Prev()]
		adjAD = second.Adjacent[s2.Next()]
		adjDB = second.Adjacent[s2.Prev()]
	)

	result := FlipResult{
		First:  m.NewTriangle(c, a, d),
		Second: m.NewTriangle(d, b, c),
	}
	m.Link(result.First, result.Second)

	for _, outer := range []struct {
		owner, neighbor TriangleID
	}{
		{result.First, adjCA},
		{result.First, adjAD},
		{result.Second, adjDB},
		{result.Second, adjBC},
	} {
		if outer.neighbor == NoTriangle {
			continue
		}
		if !m.Link(outer.owner, outer.neighbor) {
			m.reportInconsistency("outer neighbor lost its edge during flip", outer.owner, outer.neighbor)
			continue
		}
		result.Patched = append(result.Patched, outer.neighbor)
	}
	return result, true
}

func (m *Mesh) reportInconsistency(msg string, t1, t2 TriangleID) {
	fields := []zap.Field{zap.Int32("t1", int32(t1)), zap.Int32("t2", int32(t2))}
	if t1 != NoTriangle && t2 != NoTriangle {
		fields = append(fields, zap.String("dump", pretty.Sprint(m.Triangles[t1], m.Triangles[t2])))
	}
	m.logger.Error(msg, fields...)
}

// Check adjacency over a set of live triangles. Every neighbor must be live,
// must point back along some side, and that side must be the same edge.
func (m *Mesh) Validate(live []TriangleID) error {
	liveSet := make(map[TriangleID]struct{}, len(live))
	for _, id := range live {
		liveSet[id] = struct{}{}
	}

	var err error
	for _, id := range live {
		t := m.Get(id)
		for _, side := range AllSides {
			neighborID := t.Adjacent[side]
			if neighborID == NoTriangle {
				continue
			}
			if _, ok := liveSet[neighborID]; !ok {
				err = multierr.Append(err, errors.Errorf("triangle %d side %s points at dead triangle %d", id, side, neighborID))
				continue
			}
			backSide, ok := m.SideOf(neighborID, id)
			if !ok {
				err = multierr.Append(err, errors.Errorf("triangle %d side %s points at %d, which does not point back", id, side, neighborID))
				continue
			}
			a1, b1 := t.Edge(side)
			a2, b2 := m.Get(neighborID).Edge(backSide)
			if !sameEdge(a1, b1, a2, b2) {
				err = multierr.Append(err, errors.Errorf("triangles %d and %d are linked along different edges", id, neighborID))
			}
		}
	}
	return err
}
