package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/R1tschY/mdf4j-sub001/internal/pool"
	"github.com/klauspost/compress/zlib"
)

var zlibWriterPool = sync.Pool{
	New: func() any {
		w, err := zlib.NewWriterLevel(nil, zlib.DefaultCompression)
		if err != nil {
			panic(fmt.Sprintf("failed to create zlib writer for pool: %v", err))
		}

		return w
	},
}

// DeflateCompressor produces zlib streams, the container used by ##DZ blocks.
type DeflateCompressor struct{}

var _ Codec = (*DeflateCompressor)(nil)

func NewDeflateCompressor() DeflateCompressor {
	return DeflateCompressor{}
}

// Compress writes data as one zlib stream.
func (c DeflateCompressor) Compress(data []byte) ([]byte, error) {
	var out bytes.Buffer
	w := zlibWriterPool.Get().(*zlib.Writer)
	defer zlibWriterPool.Put(w)

	w.Reset(&out)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// Decompress inflates a complete zlib stream.
func (c DeflateCompressor) Decompress(data []byte) ([]byte, error) {
	return inflate(data, -1)
}

// maxInflateHint caps the up-front allocation taken from a declared length.
const maxInflateHint = 16 << 20

var errInflateLimit = errors.New("inflated data exceeds declared length")

// inflate decodes a zlib stream. With limit >= 0 it stops reading as soon as
// the output grows past limit bytes and fails with errInflateLimit.
func inflate(data []byte, limit int64) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("zlib stream: %w", err)
	}
	defer r.Close()

	var src io.Reader = r
	var out pool.ByteBuffer
	if limit >= 0 {
		src = io.LimitReader(r, limit+1)
		out.Grow(int(min(limit, maxInflateHint)))
	}
	if _, err := out.ReadFrom(src); err != nil {
		return nil, fmt.Errorf("inflate: %w", err)
	}
	if limit >= 0 && int64(out.Len()) > limit {
		return nil, errInflateLimit
	}

	return out.Bytes(), nil
}
