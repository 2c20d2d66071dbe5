package bsp

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/leafbsp/internal/logger"
	"github.com/Faultbox/leafbsp/pkg/geom"
	"github.com/Faultbox/leafbsp/pkg/math"
)

// Build errors.
var (
	ErrDepthExceeded = errors.New("bsp depth exceeded")
	ErrNoSplitPlane  = errors.New("no usable split plane")
)

// Options controls tree construction and the geometry derived from it.
type Options struct {
	// Epsilon is the ON tolerance of every side test. It assumes unit normals.
	Epsilon float64
	// MaxDepth bounds the tree depth; 0 disables the check.
	MaxDepth int
	// Extent is the half-size of the square every leaf polygon is clipped from.
	Extent float64
}

// DefaultOptions returns the settings used by the command line tools.
func DefaultOptions() Options {
	return Options{
		Epsilon:  0.2,
		MaxDepth: 4096,
		Extent:   16384,
	}
}

// Builder partitions segment lists into a Tree.
type Builder struct {
	opts Options
}

// NewBuilder creates a builder with the given options.
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

type buildWork struct {
	node NodeID
	segs []geom.Segment
}

// Build partitions segs depth first, front child before back child.
// Every node that receives an empty list becomes a leaf.
func (b *Builder) Build(segs []geom.Segment) (*Tree, error) {
	input := make([]geom.Segment, 0, len(segs))
	skipped := 0
	for _, s := range segs {
		if s.V0 == s.V1 {
			skipped++
			continue
		}
		input = append(input, s)
	}
	if skipped > 0 {
		logger.Warn("skipped zero-length segments", zap.Int("count", skipped))
	}

	tree := NewTree()
	tree.opts = b.opts

	stack := []buildWork{{node: tree.Root, segs: input}}
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(w.segs) == 0 {
			tree.addLeaf(w.node)
			continue
		}

		if b.opts.MaxDepth > 0 && tree.Nodes[w.node].Depth >= b.opts.MaxDepth {
			return nil, fmt.Errorf("%w: limit %d with %d segments left",
				ErrDepthExceeded, b.opts.MaxDepth, len(w.segs))
		}

		plane, _, err := SelectSplitPlane(w.segs, b.opts.Epsilon)
		if err != nil {
			return nil, err
		}

		sides := PartitionSegments(plane, w.segs, b.opts.Epsilon)
		front, back := tree.split(w.node, plane)

		stack = append(stack,
			buildWork{node: back, segs: sides[Back]},
			buildWork{node: front, segs: sides[Front]},
		)
	}

	logger.Debug("bsp built",
		zap.Int("segments", len(input)),
		zap.Int("nodes", tree.NumNodes()),
		zap.Int("leafs", tree.NumLeafs()),
		zap.Int("depth", tree.Depth()),
	)

	return tree, nil
}

// ScorePlane counts the segments of list that plane does not cut.
func ScorePlane(plane math.Plane, list []geom.Segment, eps float64) int {
	score := 0
	for _, s := range list {
		if geom.ClassifySegment(s, plane, eps) != math.SideCross {
			score++
		}
	}
	return score
}

// SelectSplitPlane tries the plane of every segment in list and returns the
// best scoring one. Ties keep the earliest candidate.
func SelectSplitPlane(list []geom.Segment, eps float64) (math.Plane, int, error) {
	var bestPlane math.Plane
	bestScore := -1

	for _, candidate := range list {
		plane, err := candidate.Plane()
		if err != nil {
			continue
		}
		score := ScorePlane(plane, list, eps)
		if bestScore < 0 || score > bestScore {
			bestScore = score
			bestPlane = plane
		}
	}

	if bestScore < 0 {
		return math.Plane{}, 0, fmt.Errorf("%w: %d degenerate segments", ErrNoSplitPlane, len(list))
	}
	return bestPlane, bestScore, nil
}

// PartitionSegments splits every segment by plane into front and back lists.
// Segments lying on the plane are dropped. Each side lists its pieces last
// first; the next level's candidate order, and so its tie breaks, follow
// from that.
func PartitionSegments(plane math.Plane, list []geom.Segment, eps float64) [2][]geom.Segment {
	var sides [2][]geom.Segment
	for i := len(list) - 1; i >= 0; i-- {
		f, b := geom.SplitSegment(list[i], plane, eps)
		if f != nil {
			sides[Front] = append(sides[Front], *f)
		}
		if b != nil {
			sides[Back] = append(sides[Back], *b)
		}
	}
	return sides
}
