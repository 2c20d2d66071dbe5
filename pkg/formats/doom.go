package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Faultbox/leafbsp/pkg/geom"
	"github.com/Faultbox/leafbsp/pkg/math"
	"github.com/Faultbox/leafbsp/pkg/wad"
)

// Level record errors.
var (
	ErrTruncatedRecord = errors.New("truncated level record")
	ErrVertexIndex     = errors.New("vertex index out of range")
)

// Record sizes in bytes.
const (
	VertexSize  = 4
	LinedefSize = 14
)

// NoSide marks a linedef side without a sidedef.
const NoSide = -1

// rawVertex is the VERTEXES record.
type rawVertex struct {
	X int16
	Y int16
}

// rawLinedef is the Doom LINEDEFS record. Sides hold 0xFFFF for no sidedef.
type rawLinedef struct {
	V1      uint16
	V2      uint16
	Flags   int16
	Special int16
	Tag     int16
	Sides   [2]uint16
}

// Linedef is a wall between two vertices. Sides[0] is the front (right)
// side, Sides[1] the back; NoSide means nothing is there.
type Linedef struct {
	Vertices [2]int
	Sides    [2]int
	Flags    int16
	Special  int16
	Tag      int16
}

// TwoSided reports whether both sides have a sidedef.
func (l Linedef) TwoSided() bool {
	return l.Sides[0] != NoSide && l.Sides[1] != NoSide
}

// Level holds the geometry of one map.
type Level struct {
	Name     string
	Vertices []math.Vec2
	Linedefs []Linedef
}

// ParseVertexes decodes a VERTEXES lump. A trailing partial record is an error.
func ParseVertexes(data []byte) ([]math.Vec2, error) {
	if len(data)%VertexSize != 0 {
		return nil, fmt.Errorf("%w: VERTEXES has %d bytes", ErrTruncatedRecord, len(data))
	}

	raw := make([]rawVertex, len(data)/VertexSize)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedRecord, err)
	}

	vertices := make([]math.Vec2, len(raw))
	for i, v := range raw {
		vertices[i] = math.V2(float64(v.X), float64(v.Y))
	}
	return vertices, nil
}

// ParseLinedefs decodes a Doom-format LINEDEFS lump.
func ParseLinedefs(data []byte) ([]Linedef, error) {
	if len(data)%LinedefSize != 0 {
		return nil, fmt.Errorf("%w: LINEDEFS has %d bytes", ErrTruncatedRecord, len(data))
	}

	raw := make([]rawLinedef, len(data)/LinedefSize)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncatedRecord, err)
	}

	linedefs := make([]Linedef, len(raw))
	for i, l := range raw {
		linedefs[i] = Linedef{
			Vertices: [2]int{int(l.V1), int(l.V2)},
			Sides:    [2]int{sideIndex(l.Sides[0]), sideIndex(l.Sides[1])},
			Flags:    l.Flags,
			Special:  l.Special,
			Tag:      l.Tag,
		}
	}
	return linedefs, nil
}

func sideIndex(s uint16) int {
	if s == 0xFFFF {
		return NoSide
	}
	return int(s)
}

// EncodeVertexes is the inverse of ParseVertexes. Coordinates are truncated
// to int16.
func EncodeVertexes(vertices []math.Vec2) []byte {
	buf := new(bytes.Buffer)
	for _, v := range vertices {
		binary.Write(buf, binary.LittleEndian, rawVertex{X: int16(v.X()), Y: int16(v.Y())})
	}
	return buf.Bytes()
}

// EncodeLinedefs is the inverse of ParseLinedefs.
func EncodeLinedefs(linedefs []Linedef) []byte {
	buf := new(bytes.Buffer)
	for _, l := range linedefs {
		raw := rawLinedef{
			V1:      uint16(l.Vertices[0]),
			V2:      uint16(l.Vertices[1]),
			Flags:   l.Flags,
			Special: l.Special,
			Tag:     l.Tag,
		}
		for s := 0; s < 2; s++ {
			raw.Sides[s] = 0xFFFF
			if l.Sides[s] != NoSide {
				raw.Sides[s] = uint16(l.Sides[s])
			}
		}
		binary.Write(buf, binary.LittleEndian, raw)
	}
	return buf.Bytes()
}

// LoadLevel reads the LINEDEFS and VERTEXES lumps of mapName from a.
func LoadLevel(a *wad.Archive, mapName string) (*Level, error) {
	lineData, err := a.LevelLump(mapName, wad.LinedefsOffset)
	if err != nil {
		return nil, err
	}
	vertexData, err := a.LevelLump(mapName, wad.VertexesOffset)
	if err != nil {
		return nil, err
	}

	level := &Level{Name: mapName}
	if level.Linedefs, err = ParseLinedefs(lineData); err != nil {
		return nil, fmt.Errorf("%s: %w", mapName, err)
	}
	if level.Vertices, err = ParseVertexes(vertexData); err != nil {
		return nil, fmt.Errorf("%s: %w", mapName, err)
	}
	if err := level.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", mapName, err)
	}
	return level, nil
}

// Validate checks that every linedef references existing vertices.
func (l *Level) Validate() error {
	for i, ld := range l.Linedefs {
		for _, v := range ld.Vertices {
			if v < 0 || v >= len(l.Vertices) {
				return fmt.Errorf("%w: linedef %d uses vertex %d of %d",
					ErrVertexIndex, i, v, len(l.Vertices))
			}
		}
	}
	return nil
}

// Bounds returns the box around all vertices.
func (l *Level) Bounds() math.Box2 {
	return math.BoxFromPoints(l.Vertices...)
}

// segment returns the v1->v2 segment of linedef i.
func (l *Level) segment(i int) geom.Segment {
	ld := l.Linedefs[i]
	return geom.Segment{V0: l.Vertices[ld.Vertices[0]], V1: l.Vertices[ld.Vertices[1]]}
}

// Segments returns one v1->v2 segment per linedef, last linedef first,
// which is the candidate order the builder's tie breaks are defined on.
// Zero-length linedefs are skipped.
func (l *Level) Segments() []geom.Segment {
	segs := make([]geom.Segment, 0, len(l.Linedefs))
	for i := len(l.Linedefs) - 1; i >= 0; i-- {
		s := l.segment(i)
		if s.V0 == s.V1 {
			continue
		}
		segs = append(segs, s)
	}
	return segs
}

// Lines returns one v1->v2 segment per linedef, in lump order.
func (l *Level) Lines() []geom.Segment {
	lines := make([]geom.Segment, len(l.Linedefs))
	for i := range l.Linedefs {
		lines[i] = l.segment(i)
	}
	return lines
}

// Walls returns an oriented segment for every side with a sidedef. The
// back side runs v2->v1 so that each wall's front faces open space.
func (l *Level) Walls() []geom.Segment {
	walls := make([]geom.Segment, 0, len(l.Linedefs))
	for i, ld := range l.Linedefs {
		s := l.segment(i)
		if s.V0 == s.V1 {
			continue
		}
		if ld.Sides[0] != NoSide {
			walls = append(walls, s)
		}
		if ld.Sides[1] != NoSide {
			walls = append(walls, s.Reverse())
		}
	}
	return walls
}
