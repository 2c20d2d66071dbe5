package dump

import (
	"io"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/leafbsp/internal/bsp"
	"github.com/Faultbox/leafbsp/pkg/geom"
	"github.com/Faultbox/leafbsp/pkg/math"
)

// LeafColor returns the hue sweep colour of leaf index out of n.
func LeafColor(index, n int) colorful.Color {
	if n <= 0 {
		return White
	}
	return colorful.Hsv(360*float64(index)/float64(n), 1, 1)
}

// LeafKind returns the shape kind a leaf is drawn with: solid leaves are
// filled polygons, empty leaves outlines.
func LeafKind(empty bool) Kind {
	if empty {
		return KindPolyline
	}
	return KindPolygon
}

// LeafShapes converts leaves to closed, coloured rings. Leaves without a
// polygon are skipped but still advance the hue.
func LeafShapes(leaves []bsp.Leaf) []Shape {
	shapes := make([]Shape, 0, len(leaves))
	for _, leaf := range leaves {
		if leaf.Polygon == nil || leaf.Polygon.NumVertices() == 0 {
			continue
		}
		shapes = append(shapes, Shape{
			Color:  LeafColor(leaf.Index, len(leaves)),
			Alpha:  1,
			Kind:   LeafKind(leaf.Empty),
			Points: leaf.Polygon.Closed(),
		})
	}
	return shapes
}

// WallShape returns every wall as one white point-pair list.
func WallShape(walls []geom.Segment) Shape {
	points := make([]math.Vec2, 0, 2*len(walls))
	for _, w := range walls {
		points = append(points, w.V0, w.V1)
	}
	return Shape{Color: White, Alpha: 1, Kind: KindLines, Points: points}
}

// WriteLeaves derives every leaf polygon of tree and writes them to w. It
// returns the number of shapes written.
func WriteLeaves(w io.Writer, tree *bsp.Tree) (int, error) {
	leaves, err := tree.LeafPolygons()
	if err != nil {
		return 0, err
	}
	shapes := LeafShapes(leaves)
	return len(shapes), WriteShapes(w, shapes)
}

// WriteWalls writes the wall overlay to w.
func WriteWalls(w io.Writer, walls []geom.Segment) error {
	return WriteShapes(w, []Shape{WallShape(walls)})
}
