// Package bsp builds binary space partition trees from wall segments,
// classifies their leaves as empty or solid, and extracts leaf polygons.
package bsp

import (
	"github.com/Faultbox/leafbsp/pkg/math"
)

// NodeID indexes a node in its tree's arena.
type NodeID int32

// NoNode marks a missing parent or child.
const NoNode NodeID = -1

// Child indices of an internal node.
const (
	Front = 0
	Back  = 1
)

// Node is an internal node (with a plane and two children) or a leaf.
type Node struct {
	Plane    math.Plane
	Parent   NodeID
	Children [2]NodeID
	Depth    int

	// Empty is set on leaves reached by wall filtering; unreached leaves are solid.
	Empty bool
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n.Children[Front] == NoNode
}

// Tree owns every node of one build. Relations between nodes are indices
// into Nodes, so the whole tree is released at once.
type Tree struct {
	Nodes  []Node
	Root   NodeID
	leaves []NodeID
	depth  int
	opts   Options
}

// NewTree returns a tree holding only a root leaf.
func NewTree() *Tree {
	t := &Tree{opts: DefaultOptions()}
	t.Root = t.newNode(NoNode)
	return t
}

func (t *Tree) newNode(parent NodeID) NodeID {
	depth := 0
	if parent != NoNode {
		depth = t.Nodes[parent].Depth + 1
	}
	id := NodeID(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{
		Parent:   parent,
		Children: [2]NodeID{NoNode, NoNode},
		Depth:    depth,
	})
	if depth > t.depth {
		t.depth = depth
	}
	return id
}

// split turns leaf id into an internal node with two fresh children.
func (t *Tree) split(id NodeID, plane math.Plane) (front, back NodeID) {
	front = t.newNode(id)
	back = t.newNode(id)
	n := &t.Nodes[id]
	n.Plane = plane
	n.Children = [2]NodeID{front, back}
	return front, back
}

func (t *Tree) addLeaf(id NodeID) {
	t.leaves = append(t.leaves, id)
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) *Node {
	return &t.Nodes[id]
}

// IsLeaf reports whether id has no children.
func (t *Tree) IsLeaf(id NodeID) bool {
	return t.Nodes[id].IsLeaf()
}

// Leaves returns leaf ids in the order the builder finished them.
func (t *Tree) Leaves() []NodeID {
	return t.leaves
}

// NumNodes returns the node count, root included.
func (t *Tree) NumNodes() int {
	return len(t.Nodes)
}

// NumLeafs returns the leaf count.
func (t *Tree) NumLeafs() int {
	return len(t.leaves)
}

// NumEmpty returns how many leaves are marked empty.
func (t *Tree) NumEmpty() int {
	n := 0
	for _, id := range t.leaves {
		if t.Nodes[id].Empty {
			n++
		}
	}
	return n
}

// Options returns the options the tree was built with.
func (t *Tree) Options() Options {
	return t.opts
}

// Depth returns the depth of the deepest node; a lone root has depth 0.
func (t *Tree) Depth() int {
	return t.depth
}

// PointLeaf descends from the root by point side; points on a plane go front.
func (t *Tree) PointLeaf(p math.Vec2) NodeID {
	id := t.Root
	for !t.IsLeaf(id) {
		n := &t.Nodes[id]
		if n.Plane.Distance(p) >= 0 {
			id = n.Children[Front]
		} else {
			id = n.Children[Back]
		}
	}
	return id
}
