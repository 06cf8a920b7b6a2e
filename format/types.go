package format

import "strconv"

type (
	ChannelType     uint8
	SyncType        uint8
	ChannelDataType uint8
	ZipType         uint8
	ConversionType  uint8
	CompressionType uint8
)

const (
	ChannelFixedLength    ChannelType = 0 // ChannelFixedLength is a plain fixed-width signal.
	ChannelVariableLength ChannelType = 1 // ChannelVariableLength stores values in signal data blocks.
	ChannelMaster         ChannelType = 2 // ChannelMaster is the time/angle/... axis of its group.
	ChannelVirtualMaster  ChannelType = 3 // ChannelVirtualMaster is a master derived from the record index.
	ChannelSync           ChannelType = 4 // ChannelSync links to an attachment stream.
	ChannelMaximumLength  ChannelType = 5 // ChannelMaximumLength holds the used length of another channel.
	ChannelVirtualData    ChannelType = 6 // ChannelVirtualData is a value derived from the record index.
)

const (
	SyncNone     SyncType = 0
	SyncTime     SyncType = 1
	SyncAngle    SyncType = 2
	SyncDistance SyncType = 3
	SyncIndex    SyncType = 4
)

const (
	DataUintLE        ChannelDataType = 0
	DataUintBE        ChannelDataType = 1
	DataIntLE         ChannelDataType = 2
	DataIntBE         ChannelDataType = 3
	DataFloatLE       ChannelDataType = 4
	DataFloatBE       ChannelDataType = 5
	DataStringLatin1  ChannelDataType = 6
	DataStringUTF8    ChannelDataType = 7
	DataStringUTF16LE ChannelDataType = 8
	DataStringUTF16BE ChannelDataType = 9
	DataByteArray     ChannelDataType = 10
	DataMIMESample    ChannelDataType = 11
	DataMIMEStream    ChannelDataType = 12
	DataCANopenDate   ChannelDataType = 13
	DataCANopenTime   ChannelDataType = 14
	DataComplexLE     ChannelDataType = 15
	DataComplexBE     ChannelDataType = 16
)

const (
	ZipDeflate              ZipType = 0 // ZipDeflate is a zlib stream of the original data.
	ZipTranspositionDeflate ZipType = 1 // ZipTranspositionDeflate transposes columns of ZipParam bytes before deflating.
)

const (
	ConversionIdentity           ConversionType = 0
	ConversionLinear             ConversionType = 1
	ConversionRational           ConversionType = 2
	ConversionAlgebraic          ConversionType = 3
	ConversionValueToValueInterp ConversionType = 4
	ConversionValueToValue       ConversionType = 5
	ConversionRangeToValue       ConversionType = 6
	ConversionValueToText        ConversionType = 7
	ConversionRangeToText        ConversionType = 8
	ConversionTextToValue        ConversionType = 9
	ConversionTextToText         ConversionType = 10
	ConversionBitfieldText       ConversionType = 11
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func unknown(v uint8) string {
	return "Unknown(" + strconv.Itoa(int(v)) + ")"
}

func (t ChannelType) String() string {
	switch t {
	case ChannelFixedLength:
		return "FixedLength"
	case ChannelVariableLength:
		return "VariableLength"
	case ChannelMaster:
		return "Master"
	case ChannelVirtualMaster:
		return "VirtualMaster"
	case ChannelSync:
		return "Synchronization"
	case ChannelMaximumLength:
		return "MaximumLength"
	case ChannelVirtualData:
		return "VirtualData"
	default:
		return unknown(uint8(t))
	}
}

// IsVirtual reports whether values of the channel are derived from the record
// index instead of stored bytes.
func (t ChannelType) IsVirtual() bool {
	return t == ChannelVirtualMaster || t == ChannelVirtualData
}

// IsMaster reports whether the channel is a master (axis) channel.
func (t ChannelType) IsMaster() bool {
	return t == ChannelMaster || t == ChannelVirtualMaster
}

func (t SyncType) String() string {
	switch t {
	case SyncNone:
		return "None"
	case SyncTime:
		return "Time"
	case SyncAngle:
		return "Angle"
	case SyncDistance:
		return "Distance"
	case SyncIndex:
		return "Index"
	default:
		return unknown(uint8(t))
	}
}

func (t ChannelDataType) String() string {
	switch t {
	case DataUintLE:
		return "UintLE"
	case DataUintBE:
		return "UintBE"
	case DataIntLE:
		return "IntLE"
	case DataIntBE:
		return "IntBE"
	case DataFloatLE:
		return "FloatLE"
	case DataFloatBE:
		return "FloatBE"
	case DataStringLatin1:
		return "StringLatin1"
	case DataStringUTF8:
		return "StringUTF8"
	case DataStringUTF16LE:
		return "StringUTF16LE"
	case DataStringUTF16BE:
		return "StringUTF16BE"
	case DataByteArray:
		return "ByteArray"
	case DataMIMESample:
		return "MIMESample"
	case DataMIMEStream:
		return "MIMEStream"
	case DataCANopenDate:
		return "CANopenDate"
	case DataCANopenTime:
		return "CANopenTime"
	case DataComplexLE:
		return "ComplexLE"
	case DataComplexBE:
		return "ComplexBE"
	default:
		return unknown(uint8(t))
	}
}

// IsBigEndian reports whether a numeric data type is stored most significant
// byte first.
func (t ChannelDataType) IsBigEndian() bool {
	switch t {
	case DataUintBE, DataIntBE, DataFloatBE, DataComplexBE:
		return true
	default:
		return false
	}
}

func (t ZipType) String() string {
	switch t {
	case ZipDeflate:
		return "Deflate"
	case ZipTranspositionDeflate:
		return "TranspositionDeflate"
	default:
		return unknown(uint8(t))
	}
}

func (t ConversionType) String() string {
	switch t {
	case ConversionIdentity:
		return "Identity"
	case ConversionLinear:
		return "Linear"
	case ConversionRational:
		return "Rational"
	case ConversionAlgebraic:
		return "Algebraic"
	case ConversionValueToValueInterp:
		return "ValueToValueInterpolated"
	case ConversionValueToValue:
		return "ValueToValue"
	case ConversionRangeToValue:
		return "RangeToValue"
	case ConversionValueToText:
		return "ValueToText"
	case ConversionRangeToText:
		return "RangeToText"
	case ConversionTextToValue:
		return "TextToValue"
	case ConversionTextToText:
		return "TextToText"
	case ConversionBitfieldText:
		return "BitfieldText"
	default:
		return unknown(uint8(t))
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a lower-case name ("none", "zstd", "s2", "lz4")
// to its CompressionType.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch name {
	case "", "none":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
