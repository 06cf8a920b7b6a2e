package compress

import (
	"errors"
	"math"

	"github.com/R1tschY/mdf4j-sub001/errs"
	"github.com/R1tschY/mdf4j-sub001/format"
)

// Unzip restores the payload of a ##DZ block. param is the zip parameter
// (column width for transposition) and origLen the declared inflated length.
// A length mismatch is a format error.
func Unzip(zt format.ZipType, param uint32, data []byte, origLen uint64) ([]byte, error) {
	switch zt {
	case format.ZipDeflate, format.ZipTranspositionDeflate:
	default:
		return nil, errs.NotImplementedf("zip type %s", zt)
	}

	if origLen > math.MaxInt64-1 {
		return nil, errs.Formatf("zipped data: declared length %d out of range", origLen)
	}
	out, err := inflate(data, int64(origLen))
	if errors.Is(err, errInflateLimit) {
		return nil, errs.Formatf("zipped data inflates to more than %d bytes", origLen)
	}
	if err != nil {
		return nil, errs.Formatf("zipped data: %v", err)
	}
	if uint64(len(out)) != origLen {
		return nil, errs.Formatf("zipped data inflates to %d bytes, expected %d", len(out), origLen)
	}
	if zt == format.ZipTranspositionDeflate {
		out = Untranspose(out, int(param))
	}

	return out, nil
}

// Zip compresses data for a ##DZ block with the given zip type.
func Zip(zt format.ZipType, param uint32, data []byte) ([]byte, error) {
	switch zt {
	case format.ZipDeflate:
	case format.ZipTranspositionDeflate:
		data = Transpose(data, int(param))
	default:
		return nil, errs.NotImplementedf("zip type %s", zt)
	}

	return NewDeflateCompressor().Compress(data)
}

// Transpose reorders data viewed as rows of n bytes into columns: all first
// bytes, then all second bytes and so on. Bytes after the last complete row
// stay in place.
func Transpose(data []byte, n int) []byte {
	out := make([]byte, len(data))
	if n <= 0 {
		copy(out, data)
		return out
	}

	m := len(data) / n
	k := 0
	for i := range n {
		for j := range m {
			out[k] = data[j*n+i]
			k++
		}
	}
	copy(out[k:], data[k:])

	return out
}

// Untranspose is the inverse of Transpose.
func Untranspose(data []byte, n int) []byte {
	out := make([]byte, len(data))
	if n <= 0 {
		copy(out, data)
		return out
	}

	m := len(data) / n
	k := 0
	for i := range n {
		for j := range m {
			out[j*n+i] = data[k]
			k++
		}
	}
	copy(out[k:], data[k:])

	return out
}
