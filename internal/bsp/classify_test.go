package bsp

import (
	"testing"

	"github.com/Faultbox/leafbsp/pkg/geom"
	"github.com/Faultbox/leafbsp/pkg/math"
)

func TestMarkEmptyLeavesRoom(t *testing.T) {
	tree := buildRoom(t)
	tree.MarkEmptyLeaves(roomWalls())

	if tree.NumEmpty() != 1 {
		t.Fatalf("expected 1 empty leaf, got %d", tree.NumEmpty())
	}

	interior := tree.PointLeaf(math.V2(32, 32))
	if !tree.Node(interior).Empty {
		t.Error("interior leaf should be empty")
	}
	for _, p := range []math.Vec2{
		math.V2(-100, 32),
		math.V2(100, 32),
		math.V2(32, 100),
		math.V2(32, -100),
	} {
		if id := tree.PointLeaf(p); tree.Node(id).Empty {
			t.Errorf("leaf %d at %v should be solid", id, p)
		}
	}
}

func TestMarkEmptyLeavesDividedRoom(t *testing.T) {
	divider := geom.Seg(32, 0, 32, 64)
	segs := append(roomWalls(), divider)

	tests := []struct {
		name  string
		walls []geom.Segment
	}{
		{"one sided divider", append(roomWalls(), divider)},
		{"two sided divider", append(roomWalls(), divider, divider.Reverse())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := NewBuilder(DefaultOptions()).Build(segs)
			if err != nil {
				t.Fatal(err)
			}
			tree.MarkEmptyLeaves(tt.walls)

			if tree.NumLeafs() != 6 {
				t.Fatalf("expected 6 leaves, got %d", tree.NumLeafs())
			}
			if tree.NumEmpty() != 2 {
				t.Errorf("expected 2 empty leaves, got %d", tree.NumEmpty())
			}

			left := tree.PointLeaf(math.V2(16, 32))
			right := tree.PointLeaf(math.V2(48, 32))
			if left == right {
				t.Fatal("the divider should separate the halves")
			}
			if !tree.Node(left).Empty || !tree.Node(right).Empty {
				t.Errorf("halves should be empty: left %v, right %v",
					tree.Node(left).Empty, tree.Node(right).Empty)
			}
			for _, id := range tree.Leaves() {
				if id != left && id != right && tree.Node(id).Empty {
					t.Errorf("outside leaf %d should be solid", id)
				}
			}
		})
	}
}

func TestMarkEmptyLeavesSingleWall(t *testing.T) {
	wall := geom.Seg(0, 0, 10, 0)

	tests := []struct {
		name      string
		walls     []geom.Segment
		wantFront bool
		wantBack  bool
	}{
		{"one sided", []geom.Segment{wall}, true, false},
		{"two sided", []geom.Segment{wall, wall.Reverse()}, true, true},
		{"back side only", []geom.Segment{wall.Reverse()}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := NewBuilder(DefaultOptions()).Build([]geom.Segment{wall})
			if err != nil {
				t.Fatal(err)
			}
			tree.MarkEmptyLeaves(tt.walls)

			root := tree.Node(tree.Root)
			if got := tree.Node(root.Children[Front]).Empty; got != tt.wantFront {
				t.Errorf("front leaf empty = %v, want %v", got, tt.wantFront)
			}
			if got := tree.Node(root.Children[Back]).Empty; got != tt.wantBack {
				t.Errorf("back leaf empty = %v, want %v", got, tt.wantBack)
			}
		})
	}
}

func TestFilterSegmentSplits(t *testing.T) {
	tree := buildRoom(t)

	// crosses the bottom wall plane only
	tree.FilterSegment(geom.Seg(32, 32, 32, -32))

	inside := tree.PointLeaf(math.V2(32, 32))
	below := tree.PointLeaf(math.V2(32, -32))
	if inside == below {
		t.Fatal("test points should be in different leaves")
	}
	if !tree.Node(inside).Empty || !tree.Node(below).Empty {
		t.Errorf("both pieces should mark their leaves: inside %v, below %v",
			tree.Node(inside).Empty, tree.Node(below).Empty)
	}
	if tree.NumEmpty() != 2 {
		t.Errorf("expected 2 empty leaves, got %d", tree.NumEmpty())
	}
}

func TestUnreachedLeavesStaySolid(t *testing.T) {
	tree := buildRoom(t)
	tree.MarkEmptyLeaves(nil)

	if tree.NumEmpty() != 0 {
		t.Errorf("expected no empty leaves, got %d", tree.NumEmpty())
	}
}
