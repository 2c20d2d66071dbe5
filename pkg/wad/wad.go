// Package wad provides reading functionality for Doom WAD archives.
package wad

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/leafbsp/pkg/encoding"
)

// Archive errors.
var (
	ErrInvalidMagic = errors.New("invalid WAD magic")
	ErrTruncated    = errors.New("truncated WAD")
	ErrMapNotFound  = errors.New("map not found")
	ErrLumpMissing  = errors.New("lump missing")
)

// Lump offsets relative to a level marker.
const (
	ThingsOffset = iota + 1
	LinedefsOffset
	SidedefsOffset
	VertexesOffset
	SegsOffset
	SSectorsOffset
	NodesOffset
	SectorsOffset
	RejectOffset
	BlockmapOffset
)

// levelLumps names the lumps following a level marker, in order.
var levelLumps = [...]string{
	"THINGS", "LINEDEFS", "SIDEDEFS", "VERTEXES", "SEGS",
	"SSECTORS", "NODES", "SECTORS", "REJECT", "BLOCKMAP",
}

const (
	headerSize = 12
	entrySize  = 16
)

// Header is the fixed WAD header.
type Header struct {
	Magic     [4]byte
	NumLumps  int32
	DirOffset int32
}

// Entry is one lump directory entry.
type Entry struct {
	Name   string
	Offset int32
	Size   int32
}

type rawEntry struct {
	Offset int32
	Size   int32
	Name   [encoding.LumpNameSize]byte
}

// Archive represents an opened WAD file.
type Archive struct {
	r       io.ReadSeeker
	closer  io.Closer
	size    int64
	header  Header
	entries []Entry
}

// Open opens a WAD file for reading.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	archive, err := Load(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	archive.closer = file
	return archive, nil
}

// Load reads the header and directory from r. The archive keeps reading
// lumps from r until it is closed.
func Load(r io.ReadSeeker) (*Archive, error) {
	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("sizing archive: %w", err)
	}

	archive := &Archive{r: r, size: size}

	if err := archive.readHeader(); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := archive.readDirectory(); err != nil {
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	return archive, nil
}

// Close closes the underlying file, if the archive opened one.
func (a *Archive) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

func (a *Archive) readHeader() error {
	if a.size < headerSize {
		return fmt.Errorf("%w: %d bytes", ErrTruncated, a.size)
	}
	if _, err := a.r.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if err := binary.Read(a.r, binary.LittleEndian, &a.header); err != nil {
		return err
	}

	switch string(a.header.Magic[:]) {
	case "IWAD", "PWAD":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMagic, a.header.Magic[:])
	}

	if a.header.NumLumps < 0 || a.header.DirOffset < 0 {
		return fmt.Errorf("%w: negative directory (%d lumps at %d)",
			ErrTruncated, a.header.NumLumps, a.header.DirOffset)
	}
	return nil
}

func (a *Archive) readDirectory() error {
	end := int64(a.header.DirOffset) + int64(a.header.NumLumps)*entrySize
	if end > a.size {
		return fmt.Errorf("%w: directory ends at %d, file has %d bytes", ErrTruncated, end, a.size)
	}
	if _, err := a.r.Seek(int64(a.header.DirOffset), io.SeekStart); err != nil {
		return err
	}

	raw := make([]rawEntry, a.header.NumLumps)
	if err := binary.Read(a.r, binary.LittleEndian, raw); err != nil {
		return err
	}

	a.entries = make([]Entry, len(raw))
	for i, e := range raw {
		if e.Size < 0 || e.Offset < 0 || int64(e.Offset)+int64(e.Size) > a.size {
			return fmt.Errorf("%w: lump %d (%q) outside file", ErrTruncated, i, encoding.LumpName(e.Name[:]))
		}
		a.entries[i] = Entry{
			Name:   encoding.NormalizeLumpName(encoding.LumpName(e.Name[:])),
			Offset: e.Offset,
			Size:   e.Size,
		}
	}
	return nil
}

// Header returns the archive header.
func (a *Archive) Header() Header {
	return a.header
}

// IsIWAD reports whether the archive is a main game file.
func (a *Archive) IsIWAD() bool {
	return string(a.header.Magic[:]) == "IWAD"
}

// Lumps returns the directory in file order.
func (a *Archive) Lumps() []Entry {
	return a.entries
}

// Find returns the index of the last lump called name, or -1. Later lumps
// override earlier ones, as the engine does.
func (a *Archive) Find(name string) int {
	name = encoding.NormalizeLumpName(name)
	for i := len(a.entries) - 1; i >= 0; i-- {
		if a.entries[i].Name == name {
			return i
		}
	}
	return -1
}

// Read returns the data of lump i.
func (a *Archive) Read(i int) ([]byte, error) {
	if i < 0 || i >= len(a.entries) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrLumpMissing, i, len(a.entries))
	}
	e := a.entries[i]

	if _, err := a.r.Seek(int64(e.Offset), io.SeekStart); err != nil {
		return nil, err
	}
	data := make([]byte, e.Size)
	if _, err := io.ReadFull(a.r, data); err != nil {
		return nil, fmt.Errorf("reading %s: %w", e.Name, err)
	}
	return data, nil
}

// ReadNamed returns the data of the lump called name.
func (a *Archive) ReadNamed(name string) ([]byte, error) {
	i := a.Find(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrLumpMissing, name)
	}
	return a.Read(i)
}

// Maps returns the names of all level markers: empty lumps followed by THINGS.
func (a *Archive) Maps() []string {
	var maps []string
	for i, e := range a.entries {
		if e.Size != 0 || i+ThingsOffset >= len(a.entries) {
			continue
		}
		if a.entries[i+ThingsOffset].Name == levelLumps[0] {
			maps = append(maps, e.Name)
		}
	}
	return maps
}

// LevelLump returns the data of lump at offset after the level marker mapName.
func (a *Archive) LevelLump(mapName string, offset int) ([]byte, error) {
	base := a.Find(mapName)
	if base < 0 || a.entries[base].Size != 0 {
		return nil, fmt.Errorf("%w: %q", ErrMapNotFound, mapName)
	}
	if offset < ThingsOffset || offset > len(levelLumps) {
		return nil, fmt.Errorf("%w: offset %d", ErrLumpMissing, offset)
	}

	want := levelLumps[offset-1]
	i := base + offset
	if i >= len(a.entries) || a.entries[i].Name != want {
		return nil, fmt.Errorf("%w: %s in %s", ErrLumpMissing, want, mapName)
	}
	return a.Read(i)
}
