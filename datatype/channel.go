package datatype

import (
	"github.com/R1tschY/mdf4j-sub001/blocks"
	"github.com/R1tschY/mdf4j-sub001/cursor"
	"github.com/R1tschY/mdf4j-sub001/errs"
	"github.com/R1tschY/mdf4j-sub001/format"
)

// OfChannel derives the raw value type of a channel from its data type and
// bit count, before any conversion. Virtual channels carry the record index
// and are 64-bit unsigned integers.
func OfChannel(cn *blocks.ChannelBlock) (Type, error) {
	if cn.Type.IsVirtual() {
		return UnsignedIntegerType{BitCount: MaxIntegerBits}, nil
	}

	bits := int(cn.BitCount)
	switch cn.DataType {
	case format.DataUintLE, format.DataUintBE:
		return NewUnsignedInteger(bits)
	case format.DataIntLE, format.DataIntBE:
		return NewInteger(bits)
	case format.DataFloatLE, format.DataFloatBE:
		precision := -1
		if cn.Flags.Has(blocks.ChannelPrecisionValid) {
			precision = int(cn.Precision)
		}

		return NewFloat(bits, precision)
	case format.DataStringLatin1:
		return StringType{MaxLength: bits / 8, Charset: cursor.Latin1}, nil
	case format.DataStringUTF8:
		return StringType{MaxLength: bits / 8, Charset: cursor.UTF8}, nil
	case format.DataStringUTF16LE:
		return StringType{MaxLength: bits / 8, Charset: cursor.UTF16LE}, nil
	case format.DataStringUTF16BE:
		return StringType{MaxLength: bits / 8, Charset: cursor.UTF16BE}, nil
	case format.DataByteArray:
		return ByteArrayType{MaxLength: bits / 8}, nil
	default:
		return nil, errs.NotImplementedf("data type %s", cn.DataType)
	}
}
