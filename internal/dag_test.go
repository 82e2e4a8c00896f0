package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Root triangle split into three around the point (1, 1)
func splitDAG() (*Mesh, *DAG, []NodeID) {
	mesh := NewMesh(nil)
	a, b, c := &Point{0, 0}, &Point{4, 0}, &Point{0, 4}
	p := &Point{1, 1}
	dag := NewDAG(mesh, mesh.NewTriangle(a, b, c))
	leaves := dag.RecordSplit(dag.Root,
		mesh.NewTriangle(a, b, p),
		mesh.NewTriangle(b, c, p),
		mesh.NewTriangle(c, a, p),
	)
	return mesh, dag, leaves
}

func TestDAG_RecordSplit(t *testing.T) {
	mesh, dag, leaves := splitDAG()
	require.Len(t, leaves, 3)
	assert.Equal(t, 4, dag.Len())

	root := dag.Get(dag.Root)
	assert.False(t, root.IsLeaf())
	assert.Equal(t, leaves, root.ChildNodes())
	for _, leaf := range leaves {
		node := dag.Get(leaf)
		assert.True(t, node.IsLeaf())
		assert.Equal(t, []NodeID{dag.Root}, node.ParentNodes())
		// The triangle's tag points at its leaf
		assert.Equal(t, leaf, mesh.Get(node.Triangle).Node)
	}

	assert.Panics(t, func() {
		dag.RecordSplit(dag.Root, mesh.NewTriangle(&Point{0, 0}, &Point{1, 0}, &Point{0, 1}))
	})
}

func TestDAG_Locate(t *testing.T) {
	mesh, dag, leaves := splitDAG()

	// Strictly inside the a-b-p piece
	assert.Equal(t, leaves[0], dag.Locate(&Point{2, 0.5}))
	// Strictly inside the b-c-p piece
	assert.Equal(t, leaves[1], dag.Locate(&Point{1.5, 1.5}))

	// On the edge shared by the first two pieces, either will do
	onEdge := dag.Locate(&Point{2.5, 0.5})
	assert.Contains(t, leaves[:2], onEdge)
	assert.True(t, mesh.ContainsPoint(dag.Get(onEdge).Triangle, &Point{2.5, 0.5}, false))

	assert.Panics(t, func() {
		dag.Locate(&Point{10, 10})
	})
}

func TestDAG_RecordFlip(t *testing.T) {
	mesh, t1, t2, _, _, _, _ := squareMesh()
	dag := NewDAG(mesh, mesh.NewTriangle(&Point{-10, -10}, &Point{10, -10}, &Point{0, 10}))
	leaves := dag.RecordSplit(dag.Root, t1, t2)

	flip, ok := mesh.FlipEdge(t1, SideCA, t2, SideAB)
	require.True(t, ok)
	first, second := dag.RecordFlip(leaves[0], leaves[1], flip)

	for _, old := range leaves {
		assert.Equal(t, []NodeID{first, second}, dag.Get(old).ChildNodes())
	}
	for _, node := range []NodeID{first, second} {
		assert.Equal(t, leaves, dag.Get(node).ParentNodes())
	}
	assert.ElementsMatch(t, []TriangleID{flip.First, flip.Second}, dag.LiveTriangles())
	assert.Equal(t, 2, dag.Depth())

	// Points on either side of the old diagonal find the new triangles
	assert.Equal(t, first, dag.Locate(&Point{0.6, 0.5}))
	assert.Equal(t, second, dag.Locate(&Point{0.4, 0.5}))
}

func TestDAG_Attach(t *testing.T) {
	mesh, dag, leaves := splitDAG()
	extra := dag.AddLeaf(leaves[0], mesh.NewTriangle(&Point{1, 0}, &Point{2, 0}, &Point{1, 0.5}))

	// Attaching twice is a no-op
	dag.Attach(leaves[0], extra)
	assert.Equal(t, []NodeID{leaves[0]}, dag.Get(extra).ParentNodes())

	dag.Attach(leaves[1], extra)
	assert.Panics(t, func() {
		dag.Attach(leaves[2], extra)
	}, "a node can't have three parents")
	assert.Panics(t, func() {
		dag.Attach(dag.Root, extra)
	}, "the root already has three children")
}

func TestGraphIterator(t *testing.T) {
	mesh, t1, t2, _, _, _, _ := squareMesh()
	dag := NewDAG(mesh, mesh.NewTriangle(&Point{-10, -10}, &Point{10, -10}, &Point{0, 10}))
	leaves := dag.RecordSplit(dag.Root, t1, t2)
	flip, _ := mesh.FlipEdge(t1, SideCA, t2, SideAB)
	dag.RecordFlip(leaves[0], leaves[1], flip)

	// The new nodes have two parents each, but are visited once
	seen := map[NodeID]int{}
	iter := dag.Iterate()
	for {
		node, ok := iter.Next()
		if !ok {
			break
		}
		seen[node]++
	}
	assert.Len(t, seen, dag.Len())
	for node, count := range seen {
		assert.Equal(t, 1, count, "node %d", node)
	}
	assert.Len(t, dag.Leaves(), 2)
	assert.NotEmpty(t, dag.String())
}
