package bsp

import (
	"fmt"

	"github.com/Faultbox/leafbsp/pkg/geom"
	"github.com/Faultbox/leafbsp/pkg/math"
)

// Leaf is a leaf together with its derived polygon.
type Leaf struct {
	ID    NodeID
	Index int
	Empty bool
	// Polygon is nil when the region clipped away to nothing.
	Polygon *geom.Polygon
}

// LeafPolygon returns the convex region of node id: the canonical square
// clipped by the planes of every ancestor, reversed where the path runs
// through a back child. A nil polygon with a nil error means the region is
// degenerate.
func (t *Tree) LeafPolygon(id NodeID) (*geom.Polygon, error) {
	eps := t.opts.Epsilon
	poly := geom.Square(math.Vec2{}, t.opts.Extent)

	for child := id; t.Nodes[child].Parent != NoNode; {
		parent := t.Nodes[child].Parent
		plane := t.Nodes[parent].Plane
		if t.Nodes[parent].Children[Back] == child {
			plane = plane.Reverse()
		}

		var err error
		poly, err = poly.ClipWithPlane(plane, eps)
		if err != nil {
			return nil, fmt.Errorf("clipping node %d by node %d: %w", id, parent, err)
		}
		if poly == nil {
			return nil, nil
		}
		child = parent
	}

	return poly, nil
}

// LeafPolygons derives the polygon of every leaf, in leaf list order.
func (t *Tree) LeafPolygons() ([]Leaf, error) {
	out := make([]Leaf, 0, len(t.leaves))
	for i, id := range t.leaves {
		poly, err := t.LeafPolygon(id)
		if err != nil {
			return nil, err
		}
		out = append(out, Leaf{
			ID:      id,
			Index:   i,
			Empty:   t.Nodes[id].Empty,
			Polygon: poly,
		})
	}
	return out, nil
}
