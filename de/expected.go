package de

import (
	"github.com/R1tschY/mdf4j-sub001/errs"
)

// Expected is a Visitor that rejects every value kind. Embed it and override
// the methods for the kinds you accept; the string is the description
// returned by Expecting.
type Expected string

var _ Visitor = Expected("")

func (e Expected) Expecting() string { return string(e) }

// Reject returns the error reported for an unexpected value kind.
func (e Expected) Reject(unexpected string) error {
	return &errs.InvalidTypeError{Unexpected: unexpected, Expected: string(e)}
}

func (e Expected) VisitU8(uint8) error            { return e.Reject("u8") }
func (e Expected) VisitU16(uint16) error          { return e.Reject("u16") }
func (e Expected) VisitU32(uint32) error          { return e.Reject("u32") }
func (e Expected) VisitU64(uint64) error          { return e.Reject("u64") }
func (e Expected) VisitI8(int8) error             { return e.Reject("i8") }
func (e Expected) VisitI16(int16) error           { return e.Reject("i16") }
func (e Expected) VisitI32(int32) error           { return e.Reject("i32") }
func (e Expected) VisitI64(int64) error           { return e.Reject("i64") }
func (e Expected) VisitF32(float32) error         { return e.Reject("f32") }
func (e Expected) VisitF64(float64) error         { return e.Reject("f64") }
func (e Expected) VisitString(string) error       { return e.Reject("string") }
func (e Expected) VisitBytes([]byte) error        { return e.Reject("byte array") }
func (e Expected) VisitStruct(StructAccess) error { return e.Reject("struct") }
func (e Expected) VisitInvalid() error            { return e.Reject("invalid value") }
