// Package encoding converts the fixed-size names stored in WAD directories.
package encoding

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// LumpNameSize is the width of a lump name field.
const LumpNameSize = 8

// CP437ToUTF8 decodes code page 437 bytes. Returns the input unchanged if
// decoding fails.
func CP437ToUTF8(data []byte) string {
	result, _, err := transform.Bytes(charmap.CodePage437.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// UTF8ToCP437 encodes s as code page 437, replacing runes it cannot represent.
func UTF8ToCP437(s string) []byte {
	result, _, err := transform.Bytes(charmap.CodePage437.NewEncoder(), []byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}

// TrimNull cuts data at the first null byte.
func TrimNull(data []byte) []byte {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return data[:i]
	}
	return data
}

// LumpName decodes a null padded lump name field.
func LumpName(field []byte) string {
	return CP437ToUTF8(TrimNull(field))
}

// NormalizeLumpName upper-cases a name for lookup. Lump names are case
// insensitive in practice.
func NormalizeLumpName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// EncodeLumpName returns the null padded field for name, truncated to
// LumpNameSize bytes.
func EncodeLumpName(name string) [LumpNameSize]byte {
	var field [LumpNameSize]byte
	copy(field[:], UTF8ToCP437(NormalizeLumpName(name)))
	return field
}
