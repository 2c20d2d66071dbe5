package bsp

import (
	"errors"
	"testing"

	"github.com/Faultbox/leafbsp/pkg/geom"
	"github.com/Faultbox/leafbsp/pkg/math"
)

// roomWalls is a 64x64 room whose walls face inward.
func roomWalls() []geom.Segment {
	return []geom.Segment{
		geom.Seg(0, 0, 0, 64),
		geom.Seg(0, 64, 64, 64),
		geom.Seg(64, 64, 64, 0),
		geom.Seg(64, 0, 0, 0),
	}
}

func buildRoom(t *testing.T) *Tree {
	t.Helper()
	tree, err := NewBuilder(DefaultOptions()).Build(roomWalls())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return tree
}

func TestBuildEmpty(t *testing.T) {
	tree, err := NewBuilder(DefaultOptions()).Build(nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if tree.NumNodes() != 1 {
		t.Errorf("expected 1 node, got %d", tree.NumNodes())
	}
	if tree.NumLeafs() != 1 {
		t.Errorf("expected 1 leaf, got %d", tree.NumLeafs())
	}
	if !tree.IsLeaf(tree.Root) {
		t.Error("root should be a leaf")
	}
	if tree.Depth() != 0 {
		t.Errorf("expected depth 0, got %d", tree.Depth())
	}
}

func TestBuildSingleSegment(t *testing.T) {
	tree, err := NewBuilder(DefaultOptions()).Build([]geom.Segment{geom.Seg(0, 0, 10, 0)})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if tree.NumNodes() != 3 {
		t.Errorf("expected 3 nodes, got %d", tree.NumNodes())
	}
	if tree.NumLeafs() != 2 {
		t.Errorf("expected 2 leaves, got %d", tree.NumLeafs())
	}

	root := tree.Node(tree.Root)
	if root.IsLeaf() {
		t.Fatal("root should be internal")
	}
	// front leaf is finished first
	if got := tree.Leaves(); got[0] != root.Children[Front] || got[1] != root.Children[Back] {
		t.Errorf("leaf order = %v, want front %d then back %d", got, root.Children[Front], root.Children[Back])
	}
	for _, id := range root.Children {
		if tree.Node(id).Parent != tree.Root {
			t.Errorf("child %d has parent %d", id, tree.Node(id).Parent)
		}
	}
}

func TestBuildRoom(t *testing.T) {
	tree := buildRoom(t)

	if tree.NumNodes() != 9 {
		t.Errorf("expected 9 nodes, got %d", tree.NumNodes())
	}
	if tree.NumLeafs() != 5 {
		t.Errorf("expected 5 leaves, got %d", tree.NumLeafs())
	}
	if tree.Depth() != 4 {
		t.Errorf("expected depth 4, got %d", tree.Depth())
	}

	// every wall scores 4, so the first one is the root plane
	want, _ := roomWalls()[0].Plane()
	if got := tree.Node(tree.Root).Plane; got != want {
		t.Errorf("root plane = %v, want %v", got, want)
	}

	// arena invariants
	leaves := 0
	for i := range tree.Nodes {
		n := &tree.Nodes[i]
		if n.IsLeaf() {
			leaves++
			if n.Children[Back] != NoNode {
				t.Errorf("leaf %d has a back child", i)
			}
			continue
		}
		for _, c := range n.Children {
			if tree.Nodes[c].Parent != NodeID(i) {
				t.Errorf("node %d: child %d points to parent %d", i, c, tree.Nodes[c].Parent)
			}
			if tree.Nodes[c].Depth != n.Depth+1 {
				t.Errorf("node %d: child depth %d, want %d", i, tree.Nodes[c].Depth, n.Depth+1)
			}
		}
	}
	if leaves != tree.NumLeafs() {
		t.Errorf("leaf list has %d entries, arena has %d leaves", tree.NumLeafs(), leaves)
	}
}

func TestBuildSkipsZeroLength(t *testing.T) {
	segs := append(roomWalls(), geom.Seg(5, 5, 5, 5))
	tree, err := NewBuilder(DefaultOptions()).Build(segs)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if tree.NumNodes() != 9 {
		t.Errorf("expected 9 nodes, got %d", tree.NumNodes())
	}
}

func TestBuildDepthExceeded(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDepth = 1

	_, err := NewBuilder(opts).Build(roomWalls())
	if !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("expected ErrDepthExceeded, got %v", err)
	}

	opts.MaxDepth = 4
	if _, err := NewBuilder(opts).Build(roomWalls()); err != nil {
		t.Errorf("depth 4 should be enough, got %v", err)
	}
}

func TestScorePlane(t *testing.T) {
	a := geom.Seg(0, 0, 10, 0)
	b := geom.Seg(5, -5, 5, 5)
	c := geom.Seg(20, -5, 20, 5)
	list := []geom.Segment{a, b, c}

	tests := []struct {
		name  string
		seg   geom.Segment
		score int
	}{
		{"horizontal cuts both", a, 1},
		{"middle vertical cuts a", b, 2},
		{"outer vertical cuts none", c, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plane, err := tt.seg.Plane()
			if err != nil {
				t.Fatal(err)
			}
			if got := ScorePlane(plane, list, 0.2); got != tt.score {
				t.Errorf("score = %d, want %d", got, tt.score)
			}
		})
	}
}

func TestSelectSplitPlane(t *testing.T) {
	a := geom.Seg(0, 0, 10, 0)
	b := geom.Seg(5, -5, 5, 5)
	c := geom.Seg(20, -5, 20, 5)

	plane, score, err := SelectSplitPlane([]geom.Segment{a, b, c}, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := c.Plane()
	if plane != want || score != 3 {
		t.Errorf("got %v score %d, want %v score 3", plane, score, want)
	}
}

func TestSelectSplitPlaneTieKeepsFirst(t *testing.T) {
	walls := roomWalls()
	for i := range walls {
		rotated := append(append([]geom.Segment{}, walls[i:]...), walls[:i]...)

		plane, score, err := SelectSplitPlane(rotated, 0.2)
		if err != nil {
			t.Fatal(err)
		}
		want, _ := rotated[0].Plane()
		if plane != want {
			t.Errorf("rotation %d: got %v, want first candidate %v", i, plane, want)
		}
		if score != 4 {
			t.Errorf("rotation %d: score %d, want 4", i, score)
		}
	}
}

func TestSelectSplitPlaneDegenerate(t *testing.T) {
	_, _, err := SelectSplitPlane([]geom.Segment{geom.Seg(1, 1, 1, 1)}, 0.2)
	if !errors.Is(err, ErrNoSplitPlane) {
		t.Errorf("expected ErrNoSplitPlane, got %v", err)
	}
}

func TestPartitionSegments(t *testing.T) {
	plane, _ := geom.Seg(5, -5, 5, 5).Plane() // front is x > 5

	sides := PartitionSegments(plane, []geom.Segment{
		geom.Seg(0, 0, 10, 0),
		geom.Seg(5, -5, 5, 5),
		geom.Seg(7, 1, 9, 1),
		geom.Seg(1, 1, 2, 2),
	}, 0.2)

	if len(sides[Front]) != 2 || len(sides[Back]) != 2 {
		t.Fatalf("got %d front, %d back; want 2 and 2", len(sides[Front]), len(sides[Back]))
	}

	// pieces come out last first
	mid := math.V2(5, 0)
	if sides[Front][0] != geom.Seg(7, 1, 9, 1) {
		t.Errorf("first front piece = %v", sides[Front][0])
	}
	if sides[Front][1] != (geom.Segment{V0: mid, V1: math.V2(10, 0)}) {
		t.Errorf("split front piece = %v", sides[Front][1])
	}
	if sides[Back][0] != geom.Seg(1, 1, 2, 2) {
		t.Errorf("first back piece = %v", sides[Back][0])
	}
	if sides[Back][1] != (geom.Segment{V0: math.V2(0, 0), V1: mid}) {
		t.Errorf("split back piece = %v", sides[Back][1])
	}
}

func TestPointLeaf(t *testing.T) {
	tree := buildRoom(t)

	inside := tree.PointLeaf(math.V2(32, 32))
	if inside != tree.Leaves()[0] {
		t.Errorf("interior point landed in %d, want %d", inside, tree.Leaves()[0])
	}

	outside := tree.PointLeaf(math.V2(-100, 0))
	if outside != tree.Node(tree.Root).Children[Back] {
		t.Errorf("point left of the room landed in %d", outside)
	}
}
