// Package endian provides the byte order engines used by every multi-byte
// read and write in this module.
//
// An EndianEngine combines binary.ByteOrder and binary.AppendByteOrder, so the
// same value can decode a field in place and append an encoded field to a
// growing buffer:
//
//	le := endian.Little()
//	n := le.Uint32(b[8:12])
//	out = le.AppendUint64(out, length)
//
// # Explicit byte order
//
// Block layouts mix little-endian structure with big-endian channel data, so
// there is no "current" byte order anywhere in the module. Callers pick an
// engine at each call site; cursor methods carry the order in their name
// (ReadU32LE, ReadU32BE).
//
// # Thread Safety
//
// The engines are the stateless binary.LittleEndian and binary.BigEndian
// values and are safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Little returns the little-endian engine.
func Little() EndianEngine {
	return binary.LittleEndian
}

// Big returns the big-endian engine.
func Big() EndianEngine {
	return binary.BigEndian
}

// Of returns the big-endian engine when bigEndian is true and the
// little-endian engine otherwise.
func Of(bigEndian bool) EndianEngine {
	if bigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsBig reports whether engine encodes most significant byte first.
func IsBig(engine EndianEngine) bool {
	return engine.Uint16([]byte{0x01, 0x00}) == 0x0100
}
