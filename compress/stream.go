package compress

import (
	"fmt"
	"io"

	"github.com/R1tschY/mdf4j-sub001/format"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// NewWriter wraps w with a streaming compressor. Closing the returned writer
// flushes the compressed stream but does not close w.
func NewWriter(compressionType format.CompressionType, w io.Writer) (io.WriteCloser, error) {
	switch compressionType {
	case format.CompressionNone:
		return nopWriteCloser{w}, nil
	case format.CompressionZstd:
		return zstd.NewWriter(w)
	case format.CompressionS2:
		return s2.NewWriter(w), nil
	case format.CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported stream compression: %s", compressionType)
	}
}

// NewReader is the reading counterpart of NewWriter.
func NewReader(compressionType format.CompressionType, r io.Reader) (io.Reader, error) {
	switch compressionType {
	case format.CompressionNone:
		return r, nil
	case format.CompressionZstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}

		return d.IOReadCloser(), nil
	case format.CompressionS2:
		return s2.NewReader(r), nil
	case format.CompressionLZ4:
		return lz4.NewReader(r), nil
	default:
		return nil, fmt.Errorf("unsupported stream compression: %s", compressionType)
	}
}

// Extension returns the conventional file suffix, including the dot.
func Extension(compressionType format.CompressionType) string {
	switch compressionType {
	case format.CompressionZstd:
		return ".zst"
	case format.CompressionS2:
		return ".s2"
	case format.CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
