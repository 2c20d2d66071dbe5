package geom

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/Faultbox/leafbsp/pkg/math"
)

// MaxVertices is the largest ring a split may produce.
const MaxVertices = 32

// ErrVertexOverflow is returned when a polygon outgrows its vertex buffer.
var ErrVertexOverflow = errors.New("polygon vertex overflow")

// Polygon is a closed ring of vertices; the edge from the last vertex back
// to the first is implicit. Winding is preserved by every operation.
type Polygon struct {
	Vertices []math.Vec2
}

// NewPolygon returns an empty polygon able to hold capacity vertices.
func NewPolygon(capacity int) *Polygon {
	return &Polygon{Vertices: make([]math.Vec2, 0, capacity)}
}

// PolygonFromPoints returns a polygon with the given ring.
func PolygonFromPoints(points ...math.Vec2) *Polygon {
	p := NewPolygon(len(points))
	p.Vertices = append(p.Vertices, points...)
	return p
}

// Square returns the counter-clockwise square of the given half-extent
// centered on c.
func Square(c math.Vec2, halfExtent float64) *Polygon {
	return PolygonFromPoints(
		math.V2(c[0]-halfExtent, c[1]-halfExtent),
		math.V2(c[0]+halfExtent, c[1]-halfExtent),
		math.V2(c[0]+halfExtent, c[1]+halfExtent),
		math.V2(c[0]-halfExtent, c[1]+halfExtent),
	)
}

// NumVertices returns the ring length.
func (p *Polygon) NumVertices() int {
	return len(p.Vertices)
}

// Capacity returns the number of vertices the buffer holds without growing.
func (p *Polygon) Capacity() int {
	return cap(p.Vertices)
}

// AddVertex appends v, failing when the buffer is full.
func (p *Polygon) AddVertex(v math.Vec2) error {
	if len(p.Vertices) >= cap(p.Vertices) {
		return fmt.Errorf("%w: capacity %d", ErrVertexOverflow, cap(p.Vertices))
	}
	p.Vertices = append(p.Vertices, v)
	return nil
}

// Copy returns a deep copy with the same capacity.
func (p *Polygon) Copy() *Polygon {
	c := NewPolygon(cap(p.Vertices))
	c.Vertices = append(c.Vertices, p.Vertices...)
	return c
}

// Reverse returns the polygon with opposite winding, starting at the same vertex.
func (p *Polygon) Reverse() *Polygon {
	n := len(p.Vertices)
	r := NewPolygon(cap(p.Vertices))
	r.Vertices = r.Vertices[:n]
	for i := 0; i < n; i++ {
		r.Vertices[(i+1)%n] = p.Vertices[n-1-i]
	}
	return r
}

// Closed returns the ring with the first vertex repeated at the end.
func (p *Polygon) Closed() []math.Vec2 {
	if len(p.Vertices) == 0 {
		return nil
	}
	out := make([]math.Vec2, 0, len(p.Vertices)+1)
	out = append(out, p.Vertices...)
	return append(out, p.Vertices[0])
}

// BoundingBox returns the bound of all vertices.
func (p *Polygon) BoundingBox() math.Box2 {
	return math.BoxFromPoints(p.Vertices...)
}

// Centroid returns the vertex average.
func (p *Polygon) Centroid() math.Vec2 {
	if len(p.Vertices) == 0 {
		return math.Vec2{}
	}
	var c math.Vec2
	for _, v := range p.Vertices {
		c = c.Add(v)
	}
	return c.Scale(1 / float64(len(p.Vertices)))
}

// SignedArea returns the shoelace area: positive for counter-clockwise rings.
func (p *Polygon) SignedArea() float64 {
	n := len(p.Vertices)
	var sum float64
	for i := 0; i < n; i++ {
		vi := p.Vertices[i]
		vj := p.Vertices[(i+1)%n]
		sum += vi[0]*vj[1] - vj[0]*vi[1]
	}
	return sum / 2
}

// Area returns the unsigned area.
func (p *Polygon) Area() float64 {
	return stdmath.Abs(p.SignedArea())
}

// Classify returns SideCross when vertices lie on both sides of plane,
// otherwise the single side seen, or SideOn.
func (p *Polygon) Classify(plane math.Plane, eps float64) math.Side {
	front, back := false, false
	for _, v := range p.Vertices {
		switch plane.ClassifyPoint(v, eps) {
		case math.SideFront:
			if back {
				return math.SideCross
			}
			front = true
		case math.SideBack:
			if front {
				return math.SideCross
			}
			back = true
		}
	}
	if back {
		return math.SideBack
	}
	if front {
		return math.SideFront
	}
	return math.SideOn
}

// SplitWithPlane cuts p by plane. Vertices on the plane go to both pieces.
// A nil piece means nothing of p lies on that side.
func (p *Polygon) SplitWithPlane(plane math.Plane, eps float64) (front, back *Polygon, err error) {
	n := len(p.Vertices)
	sides := make([]math.Side, n+1)
	var counts [3]int
	for i, v := range p.Vertices {
		sides[i] = plane.ClassifyPoint(v, eps)
		counts[sides[i]]++
	}
	if n > 0 {
		sides[n] = sides[0]
	}

	if counts[math.SideBack] == 0 {
		return p.Copy(), nil, nil
	}
	if counts[math.SideFront] == 0 {
		return nil, p.Copy(), nil
	}

	// not counts+2: points grouped by round-off can add more
	maxpts := min(n+4, MaxVertices)
	f := NewPolygon(maxpts)
	b := NewPolygon(maxpts)
	add := func(v math.Vec2, dst ...*Polygon) error {
		for _, d := range dst {
			if err := d.AddVertex(v); err != nil {
				return fmt.Errorf("split of %d vertices: %w", n, err)
			}
		}
		return nil
	}

	for i := 0; i < n; i++ {
		p1 := p.Vertices[i]

		switch sides[i] {
		case math.SideOn:
			if err := add(p1, f, b); err != nil {
				return nil, nil, err
			}
			continue
		case math.SideFront:
			err = add(p1, f)
		case math.SideBack:
			err = add(p1, b)
		}
		if err != nil {
			return nil, nil, err
		}

		if sides[i+1] == math.SideOn || sides[i+1] == sides[i] {
			continue
		}

		mid := splitPoint(p1, p.Vertices[(i+1)%n], plane)
		if err := add(mid, f, b); err != nil {
			return nil, nil, err
		}
	}

	return f, b, nil
}

// ClipWithPlane keeps the part of p in front of plane, or nil if none.
func (p *Polygon) ClipWithPlane(plane math.Plane, eps float64) (*Polygon, error) {
	front, _, err := p.SplitWithPlane(plane, eps)
	return front, err
}
