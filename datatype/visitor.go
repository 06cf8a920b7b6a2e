package datatype

import (
	"fmt"

	"github.com/R1tschY/mdf4j-sub001/errs"
)

// Visitor handles every Type variant.
type Visitor[R any] interface {
	VisitInteger(t IntegerType) (R, error)
	VisitUnsignedInteger(t UnsignedIntegerType) (R, error)
	VisitFloat(t FloatType) (R, error)
	VisitString(t StringType) (R, error)
	VisitByteArray(t ByteArrayType) (R, error)
	VisitStruct(t StructType) (R, error)
}

// Accept dispatches t to the matching method of v.
func Accept[R any](t Type, v Visitor[R]) (R, error) {
	switch t := t.(type) {
	case IntegerType:
		return v.VisitInteger(t)
	case UnsignedIntegerType:
		return v.VisitUnsignedInteger(t)
	case FloatType:
		return v.VisitFloat(t)
	case StringType:
		return v.VisitString(t)
	case ByteArrayType:
		return v.VisitByteArray(t)
	case StructType:
		return v.VisitStruct(t)
	default:
		var zero R
		return zero, fmt.Errorf("datatype: unknown type %T", t)
	}
}

// Partial is a Visitor built from optional per-variant functions. Variants
// without a function go to Else; without Else they fail with a not
// implemented error naming the type.
type Partial[R any] struct {
	Integer         func(IntegerType) (R, error)
	UnsignedInteger func(UnsignedIntegerType) (R, error)
	Float           func(FloatType) (R, error)
	String          func(StringType) (R, error)
	ByteArray       func(ByteArrayType) (R, error)
	Struct          func(StructType) (R, error)
	Else            func(Type) (R, error)
}

var _ Visitor[int] = Partial[int]{}

func (p Partial[R]) VisitInteger(t IntegerType) (R, error) {
	if p.Integer != nil {
		return p.Integer(t)
	}

	return p.visitElse(t)
}

func (p Partial[R]) VisitUnsignedInteger(t UnsignedIntegerType) (R, error) {
	if p.UnsignedInteger != nil {
		return p.UnsignedInteger(t)
	}

	return p.visitElse(t)
}

func (p Partial[R]) VisitFloat(t FloatType) (R, error) {
	if p.Float != nil {
		return p.Float(t)
	}

	return p.visitElse(t)
}

func (p Partial[R]) VisitString(t StringType) (R, error) {
	if p.String != nil {
		return p.String(t)
	}

	return p.visitElse(t)
}

func (p Partial[R]) VisitByteArray(t ByteArrayType) (R, error) {
	if p.ByteArray != nil {
		return p.ByteArray(t)
	}

	return p.visitElse(t)
}

func (p Partial[R]) VisitStruct(t StructType) (R, error) {
	if p.Struct != nil {
		return p.Struct(t)
	}

	return p.visitElse(t)
}

func (p Partial[R]) visitElse(t Type) (R, error) {
	if p.Else != nil {
		return p.Else(t)
	}

	var zero R
	return zero, errs.NotImplementedf("unsupported data type %s", t)
}
