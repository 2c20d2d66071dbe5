package dump

import (
	"bytes"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/leafbsp/internal/bsp"
	"github.com/Faultbox/leafbsp/pkg/geom"
	"github.com/Faultbox/leafbsp/pkg/math"
)

func room() []geom.Segment {
	return []geom.Segment{
		geom.Seg(0, 0, 0, 64),
		geom.Seg(0, 64, 64, 64),
		geom.Seg(64, 64, 64, 0),
		geom.Seg(64, 0, 0, 0),
	}
}

func TestLeafColor(t *testing.T) {
	if c := LeafColor(0, 4); c != (colorful.Color{R: 1, G: 0, B: 0}) {
		t.Errorf("first leaf = %v, want red", c)
	}

	// a quarter of the way round is chartreuse (90 degrees)
	c := LeafColor(1, 4)
	if !mgl64.FloatEqualThreshold(c.R, 0.5, 1e-9) || !mgl64.FloatEqualThreshold(c.G, 1, 1e-9) || c.B != 0 {
		t.Errorf("second leaf = %v", c)
	}

	if LeafColor(0, 0) != White {
		t.Error("no leaves should give white")
	}
}

func TestLeafKind(t *testing.T) {
	if LeafKind(false) != KindPolygon {
		t.Error("solid leaves are polygons")
	}
	if LeafKind(true) != KindPolyline {
		t.Error("empty leaves are polylines")
	}
}

func TestWriteLeaves(t *testing.T) {
	tree, err := bsp.NewBuilder(bsp.DefaultOptions()).Build(room())
	if err != nil {
		t.Fatal(err)
	}
	tree.MarkEmptyLeaves(room())

	var buf bytes.Buffer
	n, err := WriteLeaves(&buf, tree)
	if err != nil {
		t.Fatalf("WriteLeaves failed: %v", err)
	}
	if n != 5 {
		t.Errorf("wrote %d shapes, want 5", n)
	}

	shapes, err := Read(&buf)
	if err != nil {
		t.Fatalf("reading dump back: %v", err)
	}
	if len(shapes) != 5 {
		t.Fatalf("read %d shapes", len(shapes))
	}

	polylines := 0
	for i, s := range shapes {
		if s.Kind == KindPolyline {
			polylines++
		}
		// rings are closed
		if len(s.Points) < 4 || s.Points[0] != s.Points[len(s.Points)-1] {
			t.Errorf("shape %d is not a closed ring: %v", i, s.Points)
		}
	}
	if polylines != 1 {
		t.Errorf("expected 1 empty leaf outline, got %d", polylines)
	}

	// the first leaf finished is the room interior
	interior := shapes[0]
	if interior.Kind != KindPolyline {
		t.Errorf("interior leaf kind = %s", interior.Kind)
	}
	if got := Bounds([]Shape{interior}); got.Max.X() != 64 || got.Max.Y() != 64 {
		t.Errorf("interior bounds = %v..%v", got.Min, got.Max)
	}
}

func TestLeafShapesSkipsDegenerate(t *testing.T) {
	leaves := []bsp.Leaf{
		{Index: 0, Polygon: nil},
		{Index: 1, Polygon: geom.Square(math.Vec2{}, 8), Empty: true},
	}

	shapes := LeafShapes(leaves)
	if len(shapes) != 1 {
		t.Fatalf("expected 1 shape, got %d", len(shapes))
	}
	// hue still counts the skipped leaf
	if shapes[0].Color != LeafColor(1, 2) {
		t.Errorf("color = %v, want %v", shapes[0].Color, LeafColor(1, 2))
	}
	if len(shapes[0].Points) != 5 {
		t.Errorf("closed square should have 5 points, got %d", len(shapes[0].Points))
	}
}

func TestWriteWalls(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteWalls(&buf, room()[:2]); err != nil {
		t.Fatal(err)
	}

	want := "color 1 1 1 1\nlines\n4\n0 0 0\n0 64 0\n0 64 0\n64 64 0\n"
	if buf.String() != want {
		t.Errorf("got\n%s\nwant\n%s", buf.String(), want)
	}
}
