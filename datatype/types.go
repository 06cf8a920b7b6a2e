// Package datatype describes how the raw bytes of a channel map to a logical
// value.
//
// Type is a closed set: IntegerType, UnsignedIntegerType, FloatType,
// StringType, ByteArrayType and StructType. Code that acts per variant
// implements Visitor and dispatches with Accept, or fills in only the cases
// it cares about with a Partial:
//
//	bits, err := datatype.Accept(t, datatype.Partial[int]{
//		Integer: func(t datatype.IntegerType) (int, error) { return t.BitCount, nil },
//		Else:    func(t datatype.Type) (int, error) { return 0, nil },
//	})
package datatype

import (
	"fmt"
	"strings"

	"github.com/R1tschY/mdf4j-sub001/cursor"
	"github.com/R1tschY/mdf4j-sub001/errs"
)

const (
	MaxIntegerBits = 64
	// MaxSignedSafeBits is the widest unsigned integer whose values all fit
	// into an int64.
	MaxSignedSafeBits = 63
)

// Type is a channel value encoding.
type Type interface {
	fmt.Stringer
	isType()
}

// IntegerType is a two's complement signed integer of 1..64 bits.
type IntegerType struct {
	BitCount int
}

// UnsignedIntegerType is an unsigned integer of 1..64 bits.
type UnsignedIntegerType struct {
	BitCount int
}

// FloatType is an IEEE 754 float of 16, 32 or 64 bits.
type FloatType struct {
	BitCount int
	// Precision is the number of decimal places for display, -1 if unknown.
	Precision int
}

// StringType is a fixed-width, zero-terminated string field.
type StringType struct {
	MaxLength int // in bytes
	Charset   cursor.Charset
}

// ByteArrayType is an opaque fixed-width byte field.
type ByteArrayType struct {
	MaxLength int
}

// StructType is a composition of named fields. Field order is the layout
// order and is significant.
type StructType struct {
	Fields []Field
}

// Field is one member of a StructType.
type Field struct {
	Name string
	Type Type
}

func (IntegerType) isType()         {}
func (UnsignedIntegerType) isType() {}
func (FloatType) isType()           {}
func (StringType) isType()          {}
func (ByteArrayType) isType()       {}
func (StructType) isType()          {}

// NewInteger returns a signed integer type, validating the width.
func NewInteger(bitCount int) (IntegerType, error) {
	if bitCount < 1 || bitCount > MaxIntegerBits {
		return IntegerType{}, errs.Formatf("integer width %d out of range 1..%d", bitCount, MaxIntegerBits)
	}

	return IntegerType{BitCount: bitCount}, nil
}

// NewUnsignedInteger returns an unsigned integer type, validating the width.
func NewUnsignedInteger(bitCount int) (UnsignedIntegerType, error) {
	if bitCount < 1 || bitCount > MaxIntegerBits {
		return UnsignedIntegerType{}, errs.Formatf("unsigned integer width %d out of range 1..%d", bitCount, MaxIntegerBits)
	}

	return UnsignedIntegerType{BitCount: bitCount}, nil
}

// NewFloat returns a float type. Only 16, 32 and 64 bit floats exist.
func NewFloat(bitCount int, precision int) (FloatType, error) {
	switch bitCount {
	case 16, 32, 64:
		return FloatType{BitCount: bitCount, Precision: precision}, nil
	default:
		return FloatType{}, errs.Formatf("float width %d is not one of 16, 32, 64", bitCount)
	}
}

// NewStruct returns a struct type with the given fields in order.
func NewStruct(fields ...Field) StructType {
	return StructType{Fields: append([]Field(nil), fields...)}
}

// FitsInt64 reports whether every value of t is representable as int64.
// Consumers with a signed 64-bit value model reject wider types.
func (t UnsignedIntegerType) FitsInt64() bool {
	return t.BitCount <= MaxSignedSafeBits
}

func (t IntegerType) String() string         { return fmt.Sprintf("int%d", t.BitCount) }
func (t UnsignedIntegerType) String() string { return fmt.Sprintf("uint%d", t.BitCount) }
func (t FloatType) String() string           { return fmt.Sprintf("float%d", t.BitCount) }
func (t StringType) String() string          { return fmt.Sprintf("string[%d, %s]", t.MaxLength, t.Charset) }
func (t ByteArrayType) String() string       { return fmt.Sprintf("bytes[%d]", t.MaxLength) }

func (t StructType) String() string {
	var sb strings.Builder
	sb.WriteString("struct{")
	for i, f := range t.Fields {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(f.Name)
		sb.WriteByte(' ')
		sb.WriteString(f.Type.String())
	}
	sb.WriteByte('}')

	return sb.String()
}
