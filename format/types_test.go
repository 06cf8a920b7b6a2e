package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrings(t *testing.T) {
	require.Equal(t, "VirtualMaster", ChannelVirtualMaster.String())
	require.Equal(t, "Unknown(42)", ChannelType(42).String())
	require.Equal(t, "Time", SyncTime.String())
	require.Equal(t, "StringUTF16BE", DataStringUTF16BE.String())
	require.Equal(t, "TranspositionDeflate", ZipTranspositionDeflate.String())
	require.Equal(t, "Rational", ConversionRational.String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
}

func TestChannelTypePredicates(t *testing.T) {
	require.True(t, ChannelVirtualData.IsVirtual())
	require.True(t, ChannelVirtualMaster.IsVirtual())
	require.False(t, ChannelMaster.IsVirtual())
	require.True(t, ChannelMaster.IsMaster())
	require.False(t, ChannelFixedLength.IsMaster())
}

func TestDataTypeByteOrder(t *testing.T) {
	require.True(t, DataIntBE.IsBigEndian())
	require.True(t, DataFloatBE.IsBigEndian())
	require.False(t, DataUintLE.IsBigEndian())
	require.False(t, DataStringUTF16BE.IsBigEndian())
}

func TestParseCompressionType(t *testing.T) {
	for name, want := range map[string]CompressionType{
		"":     CompressionNone,
		"none": CompressionNone,
		"zstd": CompressionZstd,
		"s2":   CompressionS2,
		"lz4":  CompressionLZ4,
	} {
		got, ok := ParseCompressionType(name)
		require.True(t, ok, name)
		require.Equal(t, want, got)
	}

	_, ok := ParseCompressionType("gzip")
	require.False(t, ok)
}
