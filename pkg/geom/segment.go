// Package geom provides oriented segments and convex polygons that can be
// split by planes.
package geom

import (
	"fmt"

	"github.com/Faultbox/leafbsp/pkg/math"
)

// Segment is an oriented edge from V0 to V1.
type Segment struct {
	V0, V1 math.Vec2
}

// Seg returns the segment (x0, y0) -> (x1, y1).
func Seg(x0, y0, x1, y1 float64) Segment {
	return Segment{V0: math.V2(x0, y0), V1: math.V2(x1, y1)}
}

// Direction returns V1 - V0.
func (s Segment) Direction() math.Vec2 {
	return s.V1.Sub(s.V0)
}

// Length returns the length of the segment.
func (s Segment) Length() float64 {
	return s.Direction().Length()
}

// Reverse returns the segment running from V1 to V0.
func (s Segment) Reverse() Segment {
	return Segment{V0: s.V1, V1: s.V0}
}

// Normal returns the unit normal skew(V1 - V0).
func (s Segment) Normal() (math.Vec2, error) {
	n, err := s.Direction().Skew().Normalize()
	if err != nil {
		return math.Vec2{}, fmt.Errorf("segment %s: %w", s, err)
	}
	return n, nil
}

// Plane returns the plane through the segment with a unit normal.
func (s Segment) Plane() (math.Plane, error) {
	n, err := s.Normal()
	if err != nil {
		return math.Plane{}, err
	}
	return math.PlaneThroughPoint(n, s.V0), nil
}

// Bounds returns the bounding box of both endpoints.
func (s Segment) Bounds() math.Box2 {
	return math.BoxFromPoints(s.V0, s.V1)
}

// String formats the segment as (x0,y0)-(x1,y1).
func (s Segment) String() string {
	return fmt.Sprintf("(%g,%g)-(%g,%g)", s.V0[0], s.V0[1], s.V1[0], s.V1[1])
}

// ClassifySegment returns the side of plane the segment lies on.
func ClassifySegment(s Segment, plane math.Plane, eps float64) math.Side {
	s0 := plane.ClassifyPoint(s.V0, eps)
	s1 := plane.ClassifyPoint(s.V1, eps)

	if s0 == math.SideOn && s1 == math.SideOn {
		return math.SideOn
	}
	// nothing on the back side
	if s0 != math.SideBack && s1 != math.SideBack {
		return math.SideFront
	}
	// nothing on the front side
	if s0 != math.SideFront && s1 != math.SideFront {
		return math.SideBack
	}
	return math.SideCross
}

// SplitSegment cuts s by plane. A nil piece means no geometry on that side;
// a segment lying on the plane yields two nil pieces.
func SplitSegment(s Segment, plane math.Plane, eps float64) (front, back *Segment) {
	switch ClassifySegment(s, plane, eps) {
	case math.SideOn:
		return nil, nil
	case math.SideFront:
		f := s
		return &f, nil
	case math.SideBack:
		b := s
		return nil, &b
	}

	mid := splitPoint(s.V0, s.V1, plane)
	first := &Segment{V0: s.V0, V1: mid}
	second := &Segment{V0: mid, V1: s.V1}

	if plane.ClassifyPoint(s.V0, eps) == math.SideFront {
		return first, second
	}
	return second, first
}

// splitPoint returns where the edge p1-p2 crosses plane. Coefficients of
// exactly +1 or -1 give the coordinate directly to avoid round-off.
func splitPoint(p1, p2 math.Vec2, plane math.Plane) math.Vec2 {
	var mid math.Vec2
	for i := 0; i < 2; i++ {
		switch plane.Coeff(i) {
		case 1:
			mid[i] = -plane.C
		case -1:
			mid[i] = plane.C
		default:
			d1 := plane.Distance(p1)
			d2 := plane.Distance(p2)
			t := d1 / (d1 - d2)
			mid[i] = p1[i]*(1-t) + t*p2[i]
		}
	}
	return mid
}
