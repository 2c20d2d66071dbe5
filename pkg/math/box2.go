package math

import "math"

// Box2 is an axis-aligned bounding box.
// An empty box has Min = +Inf and Max = -Inf so that the first AddPoint
// collapses it onto the point.
type Box2 struct {
	Min Vec2
	Max Vec2
}

// EmptyBox returns a box containing nothing.
func EmptyBox() Box2 {
	return Box2{
		Min: Vec2{math.Inf(1), math.Inf(1)},
		Max: Vec2{math.Inf(-1), math.Inf(-1)},
	}
}

// BoxFromPoints returns the bound of the given points.
func BoxFromPoints(points ...Vec2) Box2 {
	b := EmptyBox()
	for _, p := range points {
		b = b.AddPoint(p)
	}
	return b
}

// IsEmpty reports whether the box contains no point.
func (b Box2) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1]
}

// AddPoint returns the box grown to include p.
func (b Box2) AddPoint(p Vec2) Box2 {
	for i := 0; i < 2; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
	return b
}

// Union returns the smallest box containing both boxes.
func (b Box2) Union(other Box2) Box2 {
	if other.IsEmpty() {
		return b
	}
	return b.AddPoint(other.Min).AddPoint(other.Max)
}

// Expand returns the box grown by d on every side.
func (b Box2) Expand(d float64) Box2 {
	if b.IsEmpty() {
		return b
	}
	return Box2{
		Min: Vec2{b.Min[0] - d, b.Min[1] - d},
		Max: Vec2{b.Max[0] + d, b.Max[1] + d},
	}
}

// ContainsPoint reports whether p lies inside the box or on its border.
func (b Box2) ContainsPoint(p Vec2) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1]
}

// Intersects reports whether two boxes overlap.
func (b Box2) Intersects(other Box2) bool {
	return b.Max[0] >= other.Min[0] && b.Min[0] <= other.Max[0] &&
		b.Max[1] >= other.Min[1] && b.Min[1] <= other.Max[1]
}

// Center returns the midpoint of the box.
func (b Box2) Center() Vec2 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box along each axis.
func (b Box2) Size() Vec2 {
	return b.Max.Sub(b.Min)
}

// LargestSide returns the index of the longest axis.
func (b Box2) LargestSide() int {
	return b.Size().LargestComponentIndex()
}
