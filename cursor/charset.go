package cursor

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Charset identifies the text encoding of a fixed-width string field.
type Charset uint8

const (
	Latin1  Charset = iota // ISO-8859-1
	UTF8                   // UTF-8
	UTF16LE                // UTF-16, little-endian, no BOM
	UTF16BE                // UTF-16, big-endian, no BOM
)

func (cs Charset) String() string {
	switch cs {
	case Latin1:
		return "ISO-8859-1"
	case UTF8:
		return "UTF-8"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	default:
		return "Unknown"
	}
}

func (cs Charset) encoding() encoding.Encoding {
	switch cs {
	case Latin1:
		return charmap.ISO8859_1
	case UTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	default:
		return unicode.UTF8
	}
}

// UnitSize returns the width in bytes of one code unit.
func (cs Charset) UnitSize() int {
	if cs == UTF16LE || cs == UTF16BE {
		return 2
	}

	return 1
}

// Decode converts raw bytes to a Go string. Invalid UTF-8 sequences and
// unpaired UTF-16 surrogates decode to U+FFFD.
func (cs Charset) Decode(b []byte) (string, error) {
	if cs == UTF8 && utf8.Valid(b) {
		return string(b), nil
	}

	out, err := cs.encoding().NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// Encode converts s into the charset. Runes that Latin-1 cannot represent are
// an error.
func (cs Charset) Encode(s string) ([]byte, error) {
	if cs == UTF8 {
		return []byte(s), nil
	}

	return cs.encoding().NewEncoder().Bytes([]byte(s))
}

// Trim cuts b at the first zero code unit.
func (cs Charset) Trim(b []byte) []byte {
	t, _ := cs.Terminated(b)
	return t
}

// Terminated cuts b at the first zero code unit and reports whether there was
// one. Without a terminator the result is b cut to whole code units.
func (cs Charset) Terminated(b []byte) ([]byte, bool) {
	if cs.UnitSize() == 1 {
		for i, c := range b {
			if c == 0 {
				return b[:i], true
			}
		}

		return b, false
	}

	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return b[:i], true
		}
	}

	return b[:len(b)&^1], false
}
