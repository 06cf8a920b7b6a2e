package de

import (
	"math"
	"strconv"
)

// Int64 decodes any integer that fits into an int64.
func Int64(d Deserializer) (int64, error) {
	v := &int64Visitor{Expected: "64-bit signed integer"}
	err := d.Deserialize(v)

	return v.v, err
}

type int64Visitor struct {
	Expected
	v int64
}

func (x *int64Visitor) VisitU8(v uint8) error   { x.v = int64(v); return nil }
func (x *int64Visitor) VisitU16(v uint16) error { x.v = int64(v); return nil }
func (x *int64Visitor) VisitU32(v uint32) error { x.v = int64(v); return nil }
func (x *int64Visitor) VisitI8(v int8) error    { x.v = int64(v); return nil }
func (x *int64Visitor) VisitI16(v int16) error  { x.v = int64(v); return nil }
func (x *int64Visitor) VisitI32(v int32) error  { x.v = int64(v); return nil }
func (x *int64Visitor) VisitI64(v int64) error  { x.v = v; return nil }

func (x *int64Visitor) VisitU64(v uint64) error {
	if v > math.MaxInt64 {
		return x.Reject("u64 " + strconv.FormatUint(v, 10))
	}
	x.v = int64(v)

	return nil
}

// Uint64 decodes any non-negative integer.
func Uint64(d Deserializer) (uint64, error) {
	v := &uint64Visitor{Expected: "64-bit unsigned integer"}
	err := d.Deserialize(v)

	return v.v, err
}

type uint64Visitor struct {
	Expected
	v uint64
}

func (x *uint64Visitor) VisitU8(v uint8) error   { x.v = uint64(v); return nil }
func (x *uint64Visitor) VisitU16(v uint16) error { x.v = uint64(v); return nil }
func (x *uint64Visitor) VisitU32(v uint32) error { x.v = uint64(v); return nil }
func (x *uint64Visitor) VisitU64(v uint64) error { x.v = v; return nil }
func (x *uint64Visitor) VisitI8(v int8) error    { return x.signed(int64(v)) }
func (x *uint64Visitor) VisitI16(v int16) error  { return x.signed(int64(v)) }
func (x *uint64Visitor) VisitI32(v int32) error  { return x.signed(int64(v)) }
func (x *uint64Visitor) VisitI64(v int64) error  { return x.signed(v) }

func (x *uint64Visitor) signed(v int64) error {
	if v < 0 {
		return x.Reject("negative integer " + strconv.FormatInt(v, 10))
	}
	x.v = uint64(v)

	return nil
}

// Float64 decodes a float or an integer as float64. Integers wider than 53
// bits may lose precision.
func Float64(d Deserializer) (float64, error) {
	v := &float64Visitor{Expected: "64-bit floating point value"}
	err := d.Deserialize(v)

	return v.v, err
}

type float64Visitor struct {
	Expected
	v float64
}

func (x *float64Visitor) VisitU8(v uint8) error    { x.v = float64(v); return nil }
func (x *float64Visitor) VisitU16(v uint16) error  { x.v = float64(v); return nil }
func (x *float64Visitor) VisitU32(v uint32) error  { x.v = float64(v); return nil }
func (x *float64Visitor) VisitU64(v uint64) error  { x.v = float64(v); return nil }
func (x *float64Visitor) VisitI8(v int8) error     { x.v = float64(v); return nil }
func (x *float64Visitor) VisitI16(v int16) error   { x.v = float64(v); return nil }
func (x *float64Visitor) VisitI32(v int32) error   { x.v = float64(v); return nil }
func (x *float64Visitor) VisitI64(v int64) error   { x.v = float64(v); return nil }
func (x *float64Visitor) VisitF32(v float32) error { x.v = float64(v); return nil }
func (x *float64Visitor) VisitF64(v float64) error { x.v = v; return nil }

// Float32 decodes a 16 or 32-bit float channel.
func Float32(d Deserializer) (float32, error) {
	v := &float32Visitor{Expected: "32-bit floating point value"}
	err := d.Deserialize(v)

	return v.v, err
}

type float32Visitor struct {
	Expected
	v float32
}

func (x *float32Visitor) VisitF32(v float32) error { x.v = v; return nil }

// Bool decodes an integer as v != 0.
func Bool(d Deserializer) (bool, error) {
	v := &boolVisitor{Expected: "boolean"}
	err := d.Deserialize(v)

	return v.v, err
}

type boolVisitor struct {
	Expected
	v bool
}

func (x *boolVisitor) VisitU8(v uint8) error   { x.v = v != 0; return nil }
func (x *boolVisitor) VisitU16(v uint16) error { x.v = v != 0; return nil }
func (x *boolVisitor) VisitU32(v uint32) error { x.v = v != 0; return nil }
func (x *boolVisitor) VisitU64(v uint64) error { x.v = v != 0; return nil }
func (x *boolVisitor) VisitI8(v int8) error    { x.v = v != 0; return nil }
func (x *boolVisitor) VisitI16(v int16) error  { x.v = v != 0; return nil }
func (x *boolVisitor) VisitI32(v int32) error  { x.v = v != 0; return nil }
func (x *boolVisitor) VisitI64(v int64) error  { x.v = v != 0; return nil }

// String decodes a string channel.
func String(d Deserializer) (string, error) {
	v := &stringVisitor{Expected: "string"}
	err := d.Deserialize(v)

	return v.v, err
}

type stringVisitor struct {
	Expected
	v string
}

func (x *stringVisitor) VisitString(v string) error { x.v = v; return nil }

// Bytes decodes a byte array channel into a fresh slice.
func Bytes(d Deserializer) ([]byte, error) {
	v := &bytesVisitor{Expected: "byte array"}
	err := d.Deserialize(v)

	return v.v, err
}

type bytesVisitor struct {
	Expected
	v []byte
}

func (x *bytesVisitor) VisitBytes(v []byte) error {
	x.v = append([]byte(nil), v...)
	return nil
}

// Any decodes every value kind into its natural Go representation: the
// sized integer and float types, string, a copied []byte, []any for structs
// in member order, and nil for an invalid value.
func Any(d Deserializer) (any, error) {
	v := &anyVisitor{}
	err := d.Deserialize(v)

	return v.v, err
}

type anyVisitor struct {
	v any
}

func (x *anyVisitor) Expecting() string          { return "any value" }
func (x *anyVisitor) VisitU8(v uint8) error      { x.v = v; return nil }
func (x *anyVisitor) VisitU16(v uint16) error    { x.v = v; return nil }
func (x *anyVisitor) VisitU32(v uint32) error    { x.v = v; return nil }
func (x *anyVisitor) VisitU64(v uint64) error    { x.v = v; return nil }
func (x *anyVisitor) VisitI8(v int8) error       { x.v = v; return nil }
func (x *anyVisitor) VisitI16(v int16) error     { x.v = v; return nil }
func (x *anyVisitor) VisitI32(v int32) error     { x.v = v; return nil }
func (x *anyVisitor) VisitI64(v int64) error     { x.v = v; return nil }
func (x *anyVisitor) VisitF32(v float32) error   { x.v = v; return nil }
func (x *anyVisitor) VisitF64(v float64) error   { x.v = v; return nil }
func (x *anyVisitor) VisitString(v string) error { x.v = v; return nil }
func (x *anyVisitor) VisitInvalid() error        { x.v = nil; return nil }

func (x *anyVisitor) VisitBytes(v []byte) error {
	x.v = append([]byte(nil), v...)
	return nil
}

func (x *anyVisitor) VisitStruct(s StructAccess) error {
	fields := make([]any, 0, s.Len())
	for {
		_, d, ok := s.Next()
		if !ok {
			break
		}
		f, err := Any(d)
		if err != nil {
			return err
		}
		fields = append(fields, f)
	}
	x.v = fields

	return nil
}

// Ignore skips a value.
func Ignore(d Deserializer) error {
	return d.Ignore()
}

// Optional wraps a value helper so that an invalid value yields nil instead
// of an error. Only the outermost value is affected; invalid struct members
// still reach the wrapped helper.
//
//	speed, err := de.Optional(de.Float64)(d)
func Optional[T any](get func(Deserializer) (T, error)) func(Deserializer) (*T, error) {
	return func(d Deserializer) (*T, error) {
		od := &optionalDeserializer{Deserializer: d}
		v, err := get(od)
		if od.invalid {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}

		return &v, nil
	}
}

type optionalDeserializer struct {
	Deserializer
	invalid bool
}

func (d *optionalDeserializer) Deserialize(v Visitor) error {
	return d.Deserializer.Deserialize(&optionalVisitor{Visitor: v, invalid: &d.invalid})
}

type optionalVisitor struct {
	Visitor
	invalid *bool
}

func (v *optionalVisitor) VisitInvalid() error {
	*v.invalid = true
	return nil
}
