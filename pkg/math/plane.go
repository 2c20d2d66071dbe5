package math

import (
	"fmt"
	"math"
)

// Side is the position of a point, segment, box or polygon relative to a plane.
type Side int

// Side values. Front and Back double as child indices of a BSP node.
const (
	SideFront Side = 0
	SideBack  Side = 1
	SideOn    Side = 2
	SideCross Side = 3
)

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case SideFront:
		return "Front"
	case SideBack:
		return "Back"
	case SideOn:
		return "On"
	case SideCross:
		return "Cross"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Plane is the implicit line A*x + B*y + C = 0.
// The front half-plane is where the signed distance is positive.
type Plane struct {
	A, B, C float64
}

// NewPlane returns the plane with the given normal at distance d from the origin.
func NewPlane(normal Vec2, d float64) Plane {
	return Plane{A: normal[0], B: normal[1], C: -d}
}

// PlaneThroughPoint returns the plane with the given normal passing through p.
func PlaneThroughPoint(normal Vec2, p Vec2) Plane {
	return Plane{A: normal[0], B: normal[1], C: -normal.Dot(p)}
}

// Coeff returns coefficient i (0 = A, 1 = B, 2 = C).
func (p Plane) Coeff(i int) float64 {
	switch i {
	case 0:
		return p.A
	case 1:
		return p.B
	default:
		return p.C
	}
}

// Normal returns (A, B).
func (p Plane) Normal() Vec2 {
	return Vec2{p.A, p.B}
}

// Distance returns the signed distance of point v. It is a true distance
// only when the normal has unit length.
func (p Plane) Distance(v Vec2) float64 {
	return p.A*v[0] + p.B*v[1] + p.C
}

// ClassifyPoint returns SideFront, SideBack or SideOn for v.
func (p Plane) ClassifyPoint(v Vec2, eps float64) Side {
	d := p.Distance(v)
	if d > eps {
		return SideFront
	}
	if d < -eps {
		return SideBack
	}
	return SideOn
}

// ClassifyBox tests the two corners of b that are most extreme along the
// plane normal.
func (p Plane) ClassifyBox(b Box2, eps float64) Side {
	var corners [2]Vec2
	normal := p.Normal()
	for i := 0; i < 2; i++ {
		if normal[i] < 0 {
			corners[0][i] = b.Min[i]
			corners[1][i] = b.Max[i]
		} else {
			corners[1][i] = b.Min[i]
			corners[0][i] = b.Max[i]
		}
	}

	d0 := p.Distance(corners[0])
	d1 := p.Distance(corners[1])

	if math.Abs(d0) < eps && math.Abs(d1) < eps {
		return SideOn
	}
	if d0 >= 0 && d1 >= 0 {
		return SideFront
	}
	if d0 <= 0 && d1 <= 0 {
		return SideBack
	}
	return SideCross
}

// Reverse returns the plane with all coefficients negated, swapping front and back.
func (p Plane) Reverse() Plane {
	return Plane{A: -p.A, B: -p.B, C: -p.C}
}

// IsAxial reports whether the normal points exactly along +X or +Y.
// Negative axis normals are not axial.
func (p Plane) IsAxial() bool {
	return (p.A > 0 && p.B == 0) || (p.A == 0 && p.B > 0)
}

// String formats the plane coefficients.
func (p Plane) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.A, p.B, p.C)
}
