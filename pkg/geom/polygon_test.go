package geom

import (
	"errors"
	stdmath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/leafbsp/pkg/math"
)

func square10() *Polygon {
	return PolygonFromPoints(
		math.V2(0, 0), math.V2(10, 0), math.V2(10, 10), math.V2(0, 10),
	)
}

func TestPolygonArea(t *testing.T) {
	p := square10()
	if got := p.SignedArea(); got != 100 {
		t.Errorf("SignedArea = %v, want 100", got)
	}
	r := p.Reverse()
	if got := r.SignedArea(); got != -100 {
		t.Errorf("reversed SignedArea = %v, want -100", got)
	}
	if r.Area() != 100 {
		t.Errorf("Area = %v, want 100", r.Area())
	}
	if r.Vertices[0] != p.Vertices[0] || r.Vertices[1] != p.Vertices[3] {
		t.Errorf("Reverse ring = %v", r.Vertices)
	}
}

func TestPolygonQueries(t *testing.T) {
	p := square10()
	if c := p.Centroid(); c != math.V2(5, 5) {
		t.Errorf("Centroid = %v, want (5,5)", c)
	}
	b := p.BoundingBox()
	if b.Min != math.V2(0, 0) || b.Max != math.V2(10, 10) {
		t.Errorf("BoundingBox = %v-%v", b.Min, b.Max)
	}
	closed := p.Closed()
	if len(closed) != 5 || closed[4] != closed[0] {
		t.Errorf("Closed = %v", closed)
	}
}

func TestPolygonAddVertex(t *testing.T) {
	p := NewPolygon(2)
	if err := p.AddVertex(math.V2(0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := p.AddVertex(math.V2(1, 0)); err != nil {
		t.Fatal(err)
	}
	if err := p.AddVertex(math.V2(1, 1)); !errors.Is(err, ErrVertexOverflow) {
		t.Errorf("expected ErrVertexOverflow, got %v", err)
	}
	if p.NumVertices() != 2 || p.Capacity() != 2 {
		t.Errorf("NumVertices=%d Capacity=%d", p.NumVertices(), p.Capacity())
	}
}

// ring returns n vertices on a counter-clockwise circle starting at (r, 0).
func ring(n int, r float64) *Polygon {
	p := NewPolygon(n)
	for i := 0; i < n; i++ {
		a := 2 * stdmath.Pi * float64(i) / float64(n)
		p.Vertices = append(p.Vertices, math.V2(r*stdmath.Cos(a), r*stdmath.Sin(a)))
	}
	return p
}

func TestSplitVertexLimit(t *testing.T) {
	// keeps x < 99, cutting off only the vertex at (100, 0)
	plane := math.Plane{A: -1, B: 0, C: 99}

	tests := []struct {
		name     string
		n        int
		overflow bool
	}{
		{"30 sides", 30, false},
		{"31 sides", 31, false},
		{"32 sides", 32, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			front, back, err := ring(tt.n, 100).SplitWithPlane(plane, 0.2)
			if tt.overflow {
				if !errors.Is(err, ErrVertexOverflow) {
					t.Fatalf("expected ErrVertexOverflow, got %v", err)
				}
				if front != nil || back != nil {
					t.Error("expected no pieces on overflow")
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitWithPlane failed: %v", err)
			}
			if front.NumVertices() != tt.n+1 || back.NumVertices() != 3 {
				t.Errorf("pieces have %d/%d vertices", front.NumVertices(), back.NumVertices())
			}
		})
	}
}

func TestSplitGrowthLimit(t *testing.T) {
	// a zigzag crossing y = 0 on every edge gains one vertex per edge
	zigzag := func(n int) *Polygon {
		p := NewPolygon(n)
		for i := 0; i < n; i++ {
			y := 1.0
			if i%2 == 1 {
				y = -1
			}
			p.Vertices = append(p.Vertices, math.V2(float64(i), y))
		}
		return p
	}
	plane := math.Plane{A: 0, B: 1, C: 0}

	front, back, err := zigzag(8).SplitWithPlane(plane, 0.2)
	if err != nil {
		t.Fatalf("8 vertices: %v", err)
	}
	if front.NumVertices() != 12 || back.NumVertices() != 12 {
		t.Errorf("8 vertices: pieces have %d/%d vertices", front.NumVertices(), back.NumVertices())
	}

	if _, _, err := zigzag(10).SplitWithPlane(plane, 0.2); !errors.Is(err, ErrVertexOverflow) {
		t.Errorf("10 vertices: expected ErrVertexOverflow, got %v", err)
	}
}

func TestSquareIsCounterClockwise(t *testing.T) {
	sq := Square(math.V2(0, 0), 16384)
	if sq.SignedArea() <= 0 {
		t.Errorf("canonical square should wind counter-clockwise, area %v", sq.SignedArea())
	}
	if sq.Area() != 32768*32768 {
		t.Errorf("Area = %v", sq.Area())
	}
}

func TestPolygonClipWithPlane(t *testing.T) {
	plane := math.Plane{A: 1, B: 0, C: -5} // keep x >= 5

	front, err := square10().ClipWithPlane(plane, 0.1)
	if err != nil {
		t.Fatalf("ClipWithPlane failed: %v", err)
	}
	if front == nil {
		t.Fatal("expected a front piece")
	}

	want := []math.Vec2{
		math.V2(5, 0), math.V2(10, 0), math.V2(10, 10), math.V2(5, 10),
	}
	if len(front.Vertices) != len(want) {
		t.Fatalf("front ring = %v, want %v", front.Vertices, want)
	}
	for i := range want {
		if front.Vertices[i] != want[i] {
			t.Errorf("vertex %d = %v, want %v", i, front.Vertices[i], want[i])
		}
	}
}

func TestPolygonClip_EntirelyFront(t *testing.T) {
	p := square10()
	plane := math.Plane{A: 1, B: 0, C: 5} // x >= -5

	front, back, err := p.SplitWithPlane(plane, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if back != nil {
		t.Errorf("expected no back piece, got %v", back.Vertices)
	}
	if front == nil || len(front.Vertices) != len(p.Vertices) {
		t.Fatalf("front = %v", front)
	}
	for i := range p.Vertices {
		if front.Vertices[i] != p.Vertices[i] {
			t.Errorf("vertex %d changed: %v -> %v", i, p.Vertices[i], front.Vertices[i])
		}
	}
}

func TestPolygonClip_EntirelyBack(t *testing.T) {
	front, err := square10().ClipWithPlane(math.Plane{A: 1, B: 0, C: -20}, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if front != nil {
		t.Errorf("expected polygon to be clipped away, got %v", front.Vertices)
	}
}

func TestPolygonSplit_AreaAndSides(t *testing.T) {
	polys := []*Polygon{
		square10(),
		PolygonFromPoints(math.V2(-3, -1), math.V2(7, 2), math.V2(4, 9), math.V2(-5, 6), math.V2(-6, 2)),
		Square(math.V2(0, 0), 16384),
	}

	var planes []math.Plane
	for _, s := range []Segment{
		Seg(0, 0, 1, 1), Seg(5, -10, 5, 10), Seg(-2, 3, 8, 4), Seg(1, 7, -4, -2),
	} {
		pl, err := s.Plane()
		if err != nil {
			t.Fatal(err)
		}
		planes = append(planes, pl)
	}

	const eps = 0.1
	for pi, p := range polys {
		for _, plane := range planes {
			front, back, err := p.SplitWithPlane(plane, eps)
			if err != nil {
				t.Fatalf("poly %d plane %v: %v", pi, plane, err)
			}
			if front == nil || back == nil {
				continue
			}

			sum := front.Area() + back.Area()
			if !mgl64.FloatEqualThreshold(sum, p.Area(), 1e-9) {
				t.Errorf("poly %d plane %v: area %v + %v != %v", pi, plane, front.Area(), back.Area(), p.Area())
			}
			if stdmath.Signbit(front.SignedArea()) != stdmath.Signbit(p.SignedArea()) {
				t.Errorf("poly %d plane %v: front winding flipped", pi, plane)
			}

			for _, v := range front.Vertices {
				if plane.ClassifyPoint(v, eps) == math.SideBack {
					t.Errorf("poly %d plane %v: front vertex %v is behind", pi, plane, v)
				}
			}
			for _, v := range back.Vertices {
				if plane.ClassifyPoint(v, eps) == math.SideFront {
					t.Errorf("poly %d plane %v: back vertex %v is in front", pi, plane, v)
				}
			}
		}
	}
}

func TestPolygonSplit_OnVerticesShared(t *testing.T) {
	// diagonal through two corners
	plane, err := Seg(0, 0, 10, 10).Plane()
	if err != nil {
		t.Fatal(err)
	}
	front, back, err := square10().SplitWithPlane(plane, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	if front == nil || back == nil {
		t.Fatal("expected two triangles")
	}
	if front.NumVertices() != 3 || back.NumVertices() != 3 {
		t.Errorf("expected triangles, got %d and %d vertices", front.NumVertices(), back.NumVertices())
	}
	if front.Area() != 50 || back.Area() != 50 {
		t.Errorf("areas = %v / %v, want 50 / 50", front.Area(), back.Area())
	}
}

func TestPolygonClassify(t *testing.T) {
	p := square10()
	tests := []struct {
		plane math.Plane
		want  math.Side
	}{
		{math.Plane{A: 1, B: 0, C: 5}, math.SideFront},
		{math.Plane{A: 1, B: 0, C: -20}, math.SideBack},
		{math.Plane{A: 1, B: 0, C: -5}, math.SideCross},
		{math.Plane{A: 1, B: 0, C: 0}, math.SideFront}, // edge on plane, rest in front
	}
	for _, tc := range tests {
		if got := p.Classify(tc.plane, 0.1); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.plane, got, tc.want)
		}
	}

	flat := PolygonFromPoints(math.V2(5, 0), math.V2(5, 10))
	if got := flat.Classify(math.Plane{A: 1, B: 0, C: -5}, 0.1); got != math.SideOn {
		t.Errorf("degenerate polygon on plane: got %v", got)
	}
}
