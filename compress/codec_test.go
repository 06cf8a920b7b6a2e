package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/R1tschY/mdf4j-sub001/errs"
	"github.com/R1tschY/mdf4j-sub001/format"
	"github.com/stretchr/testify/require"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp":    NewNoOpCompressor(),
		"LZ4":     NewLZ4Compressor(),
		"S2":      NewS2Compressor(),
		"Zstd":    NewZstdCompressor(),
		"Deflate": NewDeflateCompressor(),
	}
}

func recordLikeData(records, recordLen int) []byte {
	data := make([]byte, records*recordLen)
	for r := range records {
		for b := range recordLen {
			// slowly changing counters, like sampled signals
			data[r*recordLen+b] = byte((r >> (b % 4)) + b)
		}
	}

	return data
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := CreateCodec(ct, "export")
			require.NoError(t, err)
			require.NotNil(t, codec)

			builtin, err := GetCodec(ct)
			require.NoError(t, err)
			require.IsType(t, codec, builtin)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := CreateCodec(format.CompressionType(0x7f), "export")
		require.ErrorContains(t, err, "invalid export compression")

		_, err = GetCodec(format.CompressionType(0x7f))
		require.Error(t, err)
	})
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress([]byte{})
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "single_byte", data: []byte{0x42}},
		{name: "binary_data", data: []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD, 0xFC}},
		{name: "records", data: recordLikeData(1000, 16)},
		{name: "zeros", data: make([]byte, 1024*1024)},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotNil(t, compressed)

					decompressed, err := codec.Decompress(compressed)
					require.NoError(t, err)
					require.Equal(t, tc.data, decompressed)
				})
			}
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := []struct {
		name string
		data []byte
	}{
		{name: "random_bytes", data: []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{name: "text_as_compressed", data: []byte("this is not compressed data")},
		{name: "corrupted_header", data: []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}},
	}

	for codecName, codec := range getAllCodecs() {
		if codecName == "NoOp" {
			continue
		}
		t.Run(codecName, func(t *testing.T) {
			for _, input := range invalidInputs {
				t.Run(input.name, func(t *testing.T) {
					_, err := codec.Decompress(input.data)
					require.Error(t, err)
				})
			}
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 16
	data := recordLikeData(64, 12)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			done := make(chan error, numGoroutines)
			for range numGoroutines {
				go func() {
					out, err := codec.Decompress(compressed)
					if err == nil && !bytes.Equal(out, data) {
						err = io.ErrUnexpectedEOF
					}
					done <- err
				}()
			}
			for range numGoroutines {
				require.NoError(t, <-done)
			}
		})
	}
}

func TestTranspose(t *testing.T) {
	t.Run("columns", func(t *testing.T) {
		// 3 rows of 4 bytes plus a 2 byte tail
		data := []byte{
			1, 2, 3, 4,
			5, 6, 7, 8,
			9, 10, 11, 12,
			13, 14,
		}
		transposed := Transpose(data, 4)
		require.Equal(t, []byte{1, 5, 9, 2, 6, 10, 3, 7, 11, 4, 8, 12, 13, 14}, transposed)
		require.Equal(t, data, Untranspose(transposed, 4))
	})

	t.Run("width larger than data", func(t *testing.T) {
		data := []byte{1, 2, 3}
		require.Equal(t, data, Transpose(data, 8))
		require.Equal(t, data, Untranspose(data, 8))
	})

	t.Run("zero width copies", func(t *testing.T) {
		data := []byte{1, 2, 3}
		out := Untranspose(data, 0)
		require.Equal(t, data, out)
		out[0] = 9
		require.Equal(t, byte(1), data[0])
	})
}

func TestZipUnzip(t *testing.T) {
	data := recordLikeData(100, 8)

	for _, zt := range []format.ZipType{format.ZipDeflate, format.ZipTranspositionDeflate} {
		t.Run(zt.String(), func(t *testing.T) {
			zipped, err := Zip(zt, 8, data)
			require.NoError(t, err)

			raw, err := Unzip(zt, 8, zipped, uint64(len(data)))
			require.NoError(t, err)
			require.Equal(t, data, raw)
		})
	}

	t.Run("length mismatch", func(t *testing.T) {
		zipped, err := Zip(format.ZipDeflate, 0, data)
		require.NoError(t, err)

		_, err = Unzip(format.ZipDeflate, 0, zipped, uint64(len(data)+1))
		require.ErrorIs(t, err, errs.ErrFormat)
	})

	t.Run("inflation stops at declared length", func(t *testing.T) {
		zeros := make([]byte, 32<<20)
		zipped, err := Zip(format.ZipDeflate, 0, zeros)
		require.NoError(t, err)
		require.Less(t, len(zipped), 1<<20)

		_, err = Unzip(format.ZipDeflate, 0, zipped, 6)
		require.ErrorIs(t, err, errs.ErrFormat)
		require.ErrorContains(t, err, "more than 6 bytes")

		_, err = inflate(zipped, 6)
		require.ErrorIs(t, err, errInflateLimit)

		out, err := inflate(zipped, int64(len(zeros)))
		require.NoError(t, err)
		require.Len(t, out, len(zeros))
	})

	t.Run("corrupted stream", func(t *testing.T) {
		_, err := Unzip(format.ZipDeflate, 0, []byte("garbage"), 7)
		require.ErrorIs(t, err, errs.ErrFormat)
	})

	t.Run("unknown zip type", func(t *testing.T) {
		_, err := Unzip(format.ZipType(7), 0, nil, 0)
		require.ErrorIs(t, err, errs.ErrNotImplemented)

		_, err = Zip(format.ZipType(7), 0, data)
		require.ErrorIs(t, err, errs.ErrNotImplemented)
	})
}

func TestStreamWriterReader(t *testing.T) {
	data := recordLikeData(500, 10)

	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(ct, &buf)
			require.NoError(t, err)
			_, err = w.Write(data)
			require.NoError(t, err)
			require.NoError(t, w.Close())

			r, err := NewReader(ct, &buf)
			require.NoError(t, err)
			out, err := io.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, data, out)
		})
	}

	t.Run("extension", func(t *testing.T) {
		require.Equal(t, ".zst", Extension(format.CompressionZstd))
		require.Equal(t, "", Extension(format.CompressionNone))
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := NewWriter(format.CompressionType(0), io.Discard)
		require.Error(t, err)
	})
}
