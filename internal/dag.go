package internal

import (
	"fmt"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/delaunay/internal/dbg"
)

// History DAG for point location. Every triangle that ever existed during the
// construction has a node here. When a triangle is split, its node gets the
// pieces as children. When an edge is flipped, both old nodes get both new
// triangles as children, since each new triangle covers part of each old one.
// A node's triangle therefore always contains the triangles of all its
// descendants, and the leaves are exactly the current mesh.
//
// Like the mesh, the graph is an index arena. Nodes are only ever appended,
// and a child is always created after its parents, so index order is a
// topological order.

type NodeID int32

const NoNode NodeID = -1

type Node struct {
	Triangle TriangleID
	// Filled from the front. A flip is the only way to get two parents.
	Parents [2]NodeID
	// Filled from the front. Three children for an interior split, two for an
	// edge split or a flip.
	Children [3]NodeID
}

func (n *Node) IsLeaf() bool {
	return n.Children[0] == NoNode
}

func (n *Node) ChildNodes() []NodeID {
	var children []NodeID
	for _, child := range n.Children {
		if child != NoNode {
			children = append(children, child)
		}
	}
	return children
}

func (n *Node) ParentNodes() []NodeID {
	var parents []NodeID
	for _, parent := range n.Parents {
		if parent != NoNode {
			parents = append(parents, parent)
		}
	}
	return parents
}

type DAG struct {
	Nodes []Node
	Root  NodeID
	mesh  *Mesh
}

// Create a graph whose root owns the given triangle.
func NewDAG(mesh *Mesh, root TriangleID) *DAG {
	g := &DAG{mesh: mesh}
	g.Root = g.newNode(root)
	return g
}

func (g *DAG) Get(id NodeID) *Node {
	return &g.Nodes[id]
}

func (g *DAG) Len() int {
	return len(g.Nodes)
}

func (g *DAG) newNode(triangle TriangleID) NodeID {
	g.Nodes = append(g.Nodes, Node{
		Triangle: triangle,
		Parents:  [2]NodeID{NoNode, NoNode},
		Children: [3]NodeID{NoNode, NoNode, NoNode},
	})
	id := NodeID(len(g.Nodes) - 1)
	g.mesh.Get(triangle).Node = id
	return id
}

// Link an existing node under a parent.
func (g *DAG) Attach(parent, child NodeID) {
	p := g.Get(parent)
	attached := false
	for i, existing := range p.Children {
		if existing == child {
			return
		}
		if existing == NoNode {
			p.Children[i] = child
			attached = true
			break
		}
	}
	if !attached {
		fatalf("node %s already has three children", g.DbgName(parent))
	}

	c := g.Get(child)
	for i, existing := range c.Parents {
		if existing == NoNode {
			c.Parents[i] = parent
			return
		}
	}
	fatalf("node %s already has two parents", g.DbgName(child))
}

// Create a leaf for the triangle under the given parent. The triangle's tag is
// moved to the new leaf.
func (g *DAG) AddLeaf(parent NodeID, triangle TriangleID) NodeID {
	leaf := g.newNode(triangle)
	g.Attach(parent, leaf)
	return leaf
}

// Record that the parent's triangle was split into the given triangles.
func (g *DAG) RecordSplit(parent NodeID, triangles ...TriangleID) []NodeID {
	if !g.Get(parent).IsLeaf() {
		fatalf("cannot split internal node %s", g.DbgName(parent))
	}
	leaves := make([]NodeID, 0, len(triangles))
	for _, triangle := range triangles {
		leaves = append(leaves, g.AddLeaf(parent, triangle))
	}
	return leaves
}

// Record an edge flip. The two old leaves keep their (unchanged) triangles as
// snapshots, and each gets both new triangles as children.
func (g *DAG) RecordFlip(old1, old2 NodeID, flip FlipResult) (NodeID, NodeID) {
	first := g.AddLeaf(old1, flip.First)
	g.Attach(old2, first)
	second := g.AddLeaf(old1, flip.Second)
	g.Attach(old2, second)
	return first, second
}

// Find the leaf whose triangle contains the point. Containment is non-strict:
// a point on a shared edge belongs to both children, and we take the first.
func (g *DAG) Locate(p *Point) NodeID {
	node := g.Root
	if !g.mesh.ContainsPoint(g.Get(node).Triangle, p, false) {
		fatalf("point %s is outside the root triangle", p)
	}
nodeLoop:
	for {
		n := g.Get(node)
		if n.IsLeaf() {
			return node
		}
		for _, child := range n.Children {
			if child == NoNode {
				break
			}
			if g.mesh.ContainsPoint(g.Get(child).Triangle, p, false) {
				node = child
				continue nodeLoop
			}
		}
		fatalf("point %s is in %s but in none of its children", p, g.DbgName(node))
	}
}

// All leaves, each exactly once.
func (g *DAG) Leaves() []NodeID {
	var leaves []NodeID
	iter := g.Iterate()
	for {
		node, ok := iter.Next()
		if !ok {
			break
		}
		if g.Get(node).IsLeaf() {
			leaves = append(leaves, node)
		}
	}
	return leaves
}

// Triangles owned by leaves, i.e. the current mesh including the triangles
// that touch the embracing vertices.
func (g *DAG) LiveTriangles() []TriangleID {
	leaves := g.Leaves()
	triangles := make([]TriangleID, 0, len(leaves))
	for _, leaf := range leaves {
		triangles = append(triangles, g.Get(leaf).Triangle)
	}
	return triangles
}

// Length of the longest root-to-leaf path.
func (g *DAG) Depth() int {
	depths := make([]int, len(g.Nodes))
	maxDepth := 0
	for i := range g.Nodes {
		for _, child := range g.Nodes[i].Children {
			if child == NoNode {
				break
			}
			if depths[i]+1 > depths[child] {
				depths[child] = depths[i] + 1
				if depths[child] > maxDepth {
					maxDepth = depths[child]
				}
			}
		}
	}
	return maxDepth
}

// A graph iterator lets you loop over the nodes in a graph exactly once.
// Traversal order is not defined. Behavior is also undefined if you modify the
// graph during iteration.
type GraphIterator struct {
	graph *DAG
	stack []NodeID
	seen  []bool
}

func (g *DAG) Iterate() *GraphIterator {
	return &GraphIterator{
		graph: g,
		stack: []NodeID{g.Root},
		seen:  make([]bool, len(g.Nodes)),
	}
}

func (iter *GraphIterator) Next() (NodeID, bool) {
	for len(iter.stack) > 0 {
		node := iter.stack[len(iter.stack)-1]
		iter.stack = iter.stack[:len(iter.stack)-1]
		// Skip if we've seen the node before
		if iter.seen[node] {
			continue
		}
		iter.seen[node] = true

		// Push the children onto the stack
		iter.stack = append(iter.stack, iter.graph.Get(node).ChildNodes()...)
		return node, true
	}
	return NoNode, false
}

func (g *DAG) DbgName(id NodeID) string {
	name := dbg.Name(id)
	if g.Get(id).IsLeaf() {
		return aurora.Green(name).String()
	}
	return aurora.Red(name).String()
}

func (g *DAG) String() string {
	var parts []string
	iter := g.Iterate()
	for {
		id, ok := iter.Next()
		if !ok {
			break
		}
		node := g.Get(id)
		var children []string
		for _, child := range node.ChildNodes() {
			children = append(children, g.DbgName(child))
		}
		parts = append(parts, fmt.Sprintf("%s %s -> [%s]",
			g.DbgName(id),
			g.mesh.Get(node.Triangle).Triangle(),
			strings.Join(children, ", "),
		))
	}
	return strings.Join(parts, "\n")
}
