package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Faultbox/leafbsp/pkg/encoding"
)

// Lump is a named block of data to be written.
type Lump struct {
	Name string
	Data []byte
}

// Write stores lumps as a WAD of the given kind ("IWAD" or "PWAD"). Lump
// data follows the header and the directory comes last.
func Write(w io.Writer, kind string, lumps []Lump) error {
	if kind != "IWAD" && kind != "PWAD" {
		return fmt.Errorf("%w: %q", ErrInvalidMagic, kind)
	}

	var data bytes.Buffer
	dir := make([]rawEntry, len(lumps))
	for i, l := range lumps {
		dir[i] = rawEntry{
			Offset: int32(headerSize + data.Len()),
			Size:   int32(len(l.Data)),
			Name:   encoding.EncodeLumpName(l.Name),
		}
		data.Write(l.Data)
	}

	var header Header
	copy(header.Magic[:], kind)
	header.NumLumps = int32(len(lumps))
	header.DirOffset = int32(headerSize + data.Len())

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := w.Write(data.Bytes()); err != nil {
		return fmt.Errorf("writing lumps: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, dir); err != nil {
		return fmt.Errorf("writing directory: %w", err)
	}
	return nil
}

// Level returns the marker and the fixed lump sequence of a level. Lumps
// without data are written empty.
func Level(name string, data map[string][]byte) []Lump {
	lumps := []Lump{{Name: name}}
	for _, n := range levelLumps {
		lumps = append(lumps, Lump{Name: n, Data: data[n]})
	}
	return lumps
}
