package read

import (
	"github.com/R1tschY/mdf4j-sub001/blocks"
	"github.com/R1tschY/mdf4j-sub001/datatype"
	"github.com/R1tschY/mdf4j-sub001/de"
	"github.com/R1tschY/mdf4j-sub001/errs"
	"github.com/R1tschY/mdf4j-sub001/format"
)

// ValueRead decodes one channel value out of a record and hands it to a
// visitor. A ValueRead is built once per channel and reused for every record.
type ValueRead interface {
	Read(rec RecordBuffer, v de.Visitor) error
}

// ValueReadFunc adapts a function to ValueRead.
type ValueReadFunc func(rec RecordBuffer, v de.Visitor) error

func (f ValueReadFunc) Read(rec RecordBuffer, v de.Visitor) error { return f(rec, v) }

// Channel is a channel block together with the blocks it links to that
// decoding depends on.
type Channel struct {
	Name       string
	Block      *blocks.ChannelBlock
	Conversion *blocks.ConversionBlock // nil without conversion
	Members    []*Channel              // struct members in layout order
}

// IsStruct reports whether the channel is a composition of member channels.
func (ch *Channel) IsStruct() bool {
	return len(ch.Members) > 0
}

// TypeOf returns the type of the values a ValueRead for ch produces: the raw
// type, a struct of the member types, or float64 after a numeric conversion.
func TypeOf(ch *Channel) (datatype.Type, error) {
	if ch.IsStruct() {
		fields := make([]datatype.Field, len(ch.Members))
		for i, m := range ch.Members {
			t, err := TypeOf(m)
			if err != nil {
				return nil, err
			}
			fields[i] = datatype.Field{Name: m.Name, Type: t}
		}

		return datatype.NewStruct(fields...), nil
	}

	raw, err := datatype.OfChannel(ch.Block)
	if err != nil {
		return nil, err
	}
	if ch.Conversion == nil || ch.Conversion.Type == format.ConversionIdentity {
		return raw, nil
	}

	return datatype.FloatType{BitCount: 64, Precision: conversionPrecision(ch.Conversion)}, nil
}

// NewValueRead builds the decode step of ch for records with layout l.
//
// Features the reader does not support yield an error matching
// errs.ErrNotImplemented; callers may skip such channels. Layout
// inconsistencies, such as a value reaching past the data bytes, are format
// errors.
func NewValueRead(l Layout, ch *Channel) (ValueRead, error) {
	return newValueRead(l, ch, 0)
}

func newValueRead(l Layout, ch *Channel, base int) (ValueRead, error) {
	cn := ch.Block
	if cn.Flags.Has(blocks.ChannelAllValuesInvalid) {
		return ValueReadFunc(readInvalid), nil
	}

	var (
		r   ValueRead
		err error
	)
	switch {
	case ch.IsStruct():
		r, err = newStructRead(l, ch, base)
	case cn.Type.IsVirtual():
		r = ValueReadFunc(readRecordIndex)
	case cn.Type == format.ChannelFixedLength, cn.Type == format.ChannelMaster, cn.Type == format.ChannelSync:
		r, err = newFixedLengthRead(l, cn, base)
	default:
		return nil, errs.NotImplementedf("channel type %s", cn.Type)
	}
	if err != nil {
		return nil, err
	}

	if ch.Conversion != nil && !ch.IsStruct() {
		if r, err = newConversionRead(ch, r); err != nil {
			return nil, err
		}
	}

	if cn.Flags.Has(blocks.ChannelInvalidationBitValid) {
		return newInvalidationRead(l, cn, r)
	}

	return r, nil
}

func newFixedLengthRead(l Layout, cn *blocks.ChannelBlock, base int) (ValueRead, error) {
	f := field{
		start:  l.RecordIDSize + base + int(cn.ByteOffset),
		shift:  uint(cn.BitOffset),
		bits:   int(cn.BitCount),
		bigEnd: isBigEndian(cn.DataType),
	}
	if cn.BitOffset > 7 {
		return nil, errs.Formatf("bit offset %d out of range 0..7", cn.BitOffset)
	}

	t, err := datatype.OfChannel(cn)
	if err != nil {
		return nil, err
	}

	switch t := t.(type) {
	case datatype.UnsignedIntegerType, datatype.IntegerType:
		if err := f.check(l); err != nil {
			return nil, err
		}
		if _, signed := t.(datatype.IntegerType); signed {
			return f.signedRead(), nil
		}

		return f.unsignedRead(), nil
	case datatype.FloatType:
		if f.shift != 0 {
			return nil, errs.NotImplementedf("float channel with bit offset %d", f.shift)
		}
		if err := f.check(l); err != nil {
			return nil, err
		}

		return f.floatRead(), nil
	case datatype.StringType:
		if err := f.checkBytes(l); err != nil {
			return nil, err
		}

		return stringRead(f.start, t), nil
	case datatype.ByteArrayType:
		if err := f.checkBytes(l); err != nil {
			return nil, err
		}

		return bytesRead(f.start, t.MaxLength), nil
	default:
		return nil, errs.NotImplementedf("reading data type %s", t)
	}
}

func isBigEndian(dt format.ChannelDataType) bool {
	switch dt {
	case format.DataUintBE, format.DataIntBE, format.DataFloatBE:
		return true
	default:
		return false
	}
}

func readInvalid(_ RecordBuffer, v de.Visitor) error {
	return v.VisitInvalid()
}

func readRecordIndex(rec RecordBuffer, v de.Visitor) error {
	return v.VisitU64(rec.Index())
}
