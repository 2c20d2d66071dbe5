// Package dump reads and writes the text geometry format used to inspect
// BSP output: per shape a "color r g b a" line, a kind line, a point count
// line and one "x y z" line per point.
package dump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/leafbsp/pkg/math"
)

// ErrSyntax is returned when a dump cannot be parsed.
var ErrSyntax = errors.New("dump syntax error")

// Kind tells a viewer how to connect a shape's points.
type Kind string

// Shape kinds.
const (
	KindPolygon  Kind = "polygon"  // closed ring, filled
	KindPolyline Kind = "polyline" // connected outline
	KindLines    Kind = "lines"    // unconnected point pairs
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindPolygon, KindPolyline, KindLines:
		return true
	}
	return false
}

// Shape is one coloured point list.
type Shape struct {
	Color  colorful.Color
	Alpha  float64
	Kind   Kind
	Points []math.Vec2
}

// White is the colour of uncoloured shapes.
var White = colorful.Color{R: 1, G: 1, B: 1}

// Bounds returns the box around the points of all shapes.
func Bounds(shapes []Shape) math.Box2 {
	b := math.EmptyBox()
	for _, s := range shapes {
		for _, p := range s.Points {
			b = b.AddPoint(p)
		}
	}
	return b
}

// Writer emits shapes in the text format.
type Writer struct {
	w      *bufio.Writer
	shapes int
}

// NewWriter returns a Writer buffering into w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteShape writes one shape.
func (w *Writer) WriteShape(s Shape) error {
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrSyntax, s.Kind)
	}

	fmt.Fprintf(w.w, "color %s %s %s %s\n",
		formatFloat(s.Color.R), formatFloat(s.Color.G), formatFloat(s.Color.B), formatFloat(s.Alpha))
	fmt.Fprintf(w.w, "%s\n%d\n", s.Kind, len(s.Points))
	for _, p := range s.Points {
		fmt.Fprintf(w.w, "%s %s 0\n", formatCoord(p.X()), formatCoord(p.Y()))
	}
	w.shapes++
	return nil
}

// Shapes returns the number of shapes written so far.
func (w *Writer) Shapes() int {
	return w.shapes
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// WriteShapes writes all shapes to w.
func WriteShapes(w io.Writer, shapes []Shape) error {
	dw := NewWriter(w)
	for i, s := range shapes {
		if err := dw.WriteShape(s); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return dw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// formatCoord keeps every digit so that a dump reads back exactly.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// reader tracks line numbers for error messages.
type reader struct {
	sc   *bufio.Scanner
	line int
}

// next returns the next non-blank line.
func (r *reader) next() (string, bool) {
	for r.sc.Scan() {
		r.line++
		if text := strings.TrimSpace(r.sc.Text()); text != "" {
			return text, true
		}
	}
	return "", false
}

func (r *reader) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, r.line, fmt.Sprintf(format, args...))
}

func (r *reader) floats(text string, n int) ([]float64, error) {
	fields := strings.Fields(text)
	if len(fields) != n {
		return nil, r.errorf("expected %d numbers, got %q", n, text)
	}
	out := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, r.errorf("bad number %q", f)
		}
		out[i] = v
	}
	return out, nil
}

// Read parses every shape in r.
func Read(r io.Reader) ([]Shape, error) {
	rd := &reader{sc: bufio.NewScanner(r)}
	var shapes []Shape

	for {
		text, ok := rd.next()
		if !ok {
			break
		}

		if !strings.HasPrefix(text, "color") {
			return nil, rd.errorf("expected color, got %q", text)
		}
		rgba, err := rd.floats(strings.TrimPrefix(text, "color"), 4)
		if err != nil {
			return nil, err
		}
		shape := Shape{
			Color: colorful.Color{R: rgba[0], G: rgba[1], B: rgba[2]},
			Alpha: rgba[3],
		}

		text, ok = rd.next()
		if !ok {
			return nil, rd.errorf("missing kind")
		}
		shape.Kind = Kind(text)
		if !shape.Kind.Valid() {
			return nil, rd.errorf("unknown kind %q", text)
		}

		text, ok = rd.next()
		if !ok {
			return nil, rd.errorf("missing point count")
		}
		count, err := strconv.Atoi(text)
		if err != nil || count < 0 {
			return nil, rd.errorf("bad point count %q", text)
		}

		shape.Points = make([]math.Vec2, 0, count)
		for i := 0; i < count; i++ {
			text, ok = rd.next()
			if !ok {
				return nil, rd.errorf("expected %d points, got %d", count, i)
			}
			xyz, err := rd.floats(text, 3)
			if err != nil {
				return nil, err
			}
			shape.Points = append(shape.Points, math.V2(xyz[0], xyz[1]))
		}

		shapes = append(shapes, shape)
	}

	if err := rd.sc.Err(); err != nil {
		return nil, fmt.Errorf("reading dump: %w", err)
	}
	return shapes, nil
}
