package bsp

import (
	"go.uber.org/zap"

	"github.com/Faultbox/leafbsp/internal/logger"
	"github.com/Faultbox/leafbsp/pkg/geom"
	"github.com/Faultbox/leafbsp/pkg/math"
)

type filterWork struct {
	node NodeID
	seg  geom.Segment
	// splitAt is the node that produced seg by cutting, or NoNode.
	splitAt NodeID
}

// MarkEmptyLeaves filters every wall through the tree and marks each leaf a
// wall reaches as empty. Walls must face away from solid space.
func (t *Tree) MarkEmptyLeaves(walls []geom.Segment) {
	for _, w := range walls {
		t.FilterSegment(w)
	}
	logger.Debug("leaves classified",
		zap.Int("walls", len(walls)),
		zap.Int("leafs", t.NumLeafs()),
		zap.Int("empty", t.NumEmpty()),
	)
}

// FilterSegment pushes s down the tree, splitting it where it crosses a
// plane, and marks every leaf it reaches as empty. A piece lying on a node
// plane continues on the side its own normal faces.
func (t *Tree) FilterSegment(s geom.Segment) {
	eps := t.opts.Epsilon
	stack := []filterWork{{node: t.Root, seg: s, splitAt: NoNode}}

	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.Nodes[w.node]
		if n.IsLeaf() {
			n.Empty = true
			continue
		}

		switch side := geom.ClassifySegment(w.seg, n.Plane, eps); side {
		case math.SideFront, math.SideBack:
			stack = append(stack, filterWork{node: n.Children[side], seg: w.seg, splitAt: NoNode})

		case math.SideOn:
			child := n.Children[Back]
			if n.Plane.Normal().Dot(w.seg.Direction().Skew()) >= 0 {
				child = n.Children[Front]
			}
			stack = append(stack, filterWork{node: child, seg: w.seg, splitAt: NoNode})

		case math.SideCross:
			if w.splitAt == w.node {
				// round-off left a piece straddling the plane it was cut by
				mid := w.seg.V0.Add(w.seg.V1).Scale(0.5)
				child := n.Children[Back]
				if n.Plane.Distance(mid) >= 0 {
					child = n.Children[Front]
				}
				stack = append(stack, filterWork{node: child, seg: w.seg, splitAt: NoNode})
				continue
			}
			f, b := geom.SplitSegment(w.seg, n.Plane, eps)
			if b != nil {
				stack = append(stack, filterWork{node: w.node, seg: *b, splitAt: w.node})
			}
			if f != nil {
				stack = append(stack, filterWork{node: w.node, seg: *f, splitAt: w.node})
			}
		}
	}
}
