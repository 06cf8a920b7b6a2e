// Package de is the seam between how channel bytes are laid out and what a
// caller wants them turned into.
//
// A Deserializer knows how to decode one value of one channel and hands the
// decoded primitive to exactly one method of a Visitor. Visitors are written
// by the caller, usually by embedding Expected and overriding the methods
// for the kinds they accept:
//
//	type celsius struct {
//		de.Expected
//		v float64
//	}
//
//	func (c *celsius) VisitF64(v float64) error { c.v = v; return nil }
//
//	c := &celsius{Expected: "temperature"}
//	err := d.Deserialize(c)
//
// Ready made helpers (Int64, Float64, String, Any, ...) cover the common
// cases, and the Into* binders turn a setter into a DeserializeInto that the
// record reader calls once per channel and record.
package de

// Visitor receives exactly one decoded value per Deserialize call.
//
// Unsigned kinds carry the raw unsigned value. VisitBytes receives a view
// into the record buffer that is valid only for the duration of the call.
// VisitInvalid is called instead of a value method when the channel's
// invalidation bit is set for the current record.
type Visitor interface {
	// Expecting describes what the visitor accepts, used in error messages.
	Expecting() string

	VisitU8(v uint8) error
	VisitU16(v uint16) error
	VisitU32(v uint32) error
	VisitU64(v uint64) error
	VisitI8(v int8) error
	VisitI16(v int16) error
	VisitI32(v int32) error
	VisitI64(v int64) error
	VisitF32(v float32) error
	VisitF64(v float64) error
	VisitString(v string) error
	VisitBytes(v []byte) error
	VisitStruct(s StructAccess) error
	VisitInvalid() error
}

// Deserializer decodes a single channel value of the current record.
type Deserializer interface {
	// Deserialize decodes the value and dispatches it to v.
	Deserialize(v Visitor) error
	// Ignore skips the value without decoding it.
	Ignore() error
}

// StructAccess yields one deserializer per struct member, in layout order.
type StructAccess interface {
	// Len returns the number of members.
	Len() int
	// Next returns the next member. ok is false once all members were
	// returned.
	Next() (name string, d Deserializer, ok bool)
}

// DeserializeInto decodes a value from d and stores it into dest.
type DeserializeInto[B any] func(d Deserializer, dest B) error
