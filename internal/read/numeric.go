package read

import (
	"math"

	"github.com/R1tschY/mdf4j-sub001/de"
	"github.com/R1tschY/mdf4j-sub001/endian"
	"github.com/R1tschY/mdf4j-sub001/errs"
)

// field locates a fixed-width value inside a record. For integers the value
// occupies bits [shift, shift+bits) of the width bytes starting at start,
// read as one number in the channel's byte order.
type field struct {
	start  int
	shift  uint
	bits   int
	bigEnd bool
}

// width is the number of bytes the value touches.
func (f field) width() int {
	return (int(f.shift) + f.bits + 7) / 8
}

func (f field) end() int {
	return f.start + f.width()
}

func (f field) check(l Layout) error {
	if f.bits < 1 {
		return errs.Formatf("channel with %d bits", f.bits)
	}
	if limit := l.RecordIDSize + l.DataBytes; f.end() > limit {
		return errs.Formatf("value at byte %d with %d bits ends after the %d data bytes of the record",
			f.start-l.RecordIDSize, f.bits, l.DataBytes)
	}

	return nil
}

func (f field) checkBytes(l Layout) error {
	if f.shift != 0 || f.bits%8 != 0 {
		return errs.NotImplementedf("byte field with bit offset %d and %d bits", f.shift, f.bits)
	}

	return f.check(l)
}

// raw returns the value bits right-aligned and masked.
func (f field) raw(rec RecordBuffer) uint64 {
	w := f.width()
	b := rec.Bytes(f.start, w)

	var u uint64
	switch {
	case w == 9 && f.bigEnd:
		u = endian.Big().Uint64(b[1:])>>f.shift | uint64(b[0])<<(64-f.shift)
	case w == 9:
		u = endian.Little().Uint64(b)>>f.shift | uint64(b[8])<<(64-f.shift)
	case f.bigEnd:
		for _, c := range b {
			u = u<<8 | uint64(c)
		}
		u >>= f.shift
	default:
		for i := w - 1; i >= 0; i-- {
			u = u<<8 | uint64(b[i])
		}
		u >>= f.shift
	}

	if f.bits < 64 {
		u &= 1<<f.bits - 1
	}

	return u
}

func (f field) aligned() bool {
	return f.shift == 0 && (f.bits == 8 || f.bits == 16 || f.bits == 32 || f.bits == 64)
}

func (f field) engine() endian.EndianEngine {
	return endian.Of(f.bigEnd)
}

func (f field) unsignedRead() ValueRead {
	if f.aligned() {
		e := f.engine()
		switch f.bits {
		case 8:
			return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
				return v.VisitU8(rec.Bytes(f.start, 1)[0])
			})
		case 16:
			return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
				return v.VisitU16(e.Uint16(rec.Bytes(f.start, 2)))
			})
		case 32:
			return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
				return v.VisitU32(e.Uint32(rec.Bytes(f.start, 4)))
			})
		default:
			return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
				return v.VisitU64(e.Uint64(rec.Bytes(f.start, 8)))
			})
		}
	}

	return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
		return visitUnsigned(v, f.bits, f.raw(rec))
	})
}

func (f field) signedRead() ValueRead {
	if f.aligned() {
		e := f.engine()
		switch f.bits {
		case 8:
			return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
				return v.VisitI8(int8(rec.Bytes(f.start, 1)[0]))
			})
		case 16:
			return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
				return v.VisitI16(int16(e.Uint16(rec.Bytes(f.start, 2))))
			})
		case 32:
			return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
				return v.VisitI32(int32(e.Uint32(rec.Bytes(f.start, 4))))
			})
		default:
			return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
				return v.VisitI64(int64(e.Uint64(rec.Bytes(f.start, 8))))
			})
		}
	}

	unused := uint(64 - f.bits)
	return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
		return visitSigned(v, f.bits, int64(f.raw(rec)<<unused)>>unused)
	})
}

func (f field) floatRead() ValueRead {
	e := f.engine()
	switch f.bits {
	case 16:
		return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
			return v.VisitF32(de.HalfToFloat32(e.Uint16(rec.Bytes(f.start, 2))))
		})
	case 32:
		return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
			return v.VisitF32(math.Float32frombits(e.Uint32(rec.Bytes(f.start, 4))))
		})
	default:
		return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
			return v.VisitF64(math.Float64frombits(e.Uint64(rec.Bytes(f.start, 8))))
		})
	}
}

// visitUnsigned dispatches to the narrowest unsigned visit method holding bits.
func visitUnsigned(v de.Visitor, bits int, u uint64) error {
	switch {
	case bits <= 8:
		return v.VisitU8(uint8(u))
	case bits <= 16:
		return v.VisitU16(uint16(u))
	case bits <= 32:
		return v.VisitU32(uint32(u))
	default:
		return v.VisitU64(u)
	}
}

func visitSigned(v de.Visitor, bits int, i int64) error {
	switch {
	case bits <= 8:
		return v.VisitI8(int8(i))
	case bits <= 16:
		return v.VisitI16(int16(i))
	case bits <= 32:
		return v.VisitI32(int32(i))
	default:
		return v.VisitI64(i)
	}
}
