package cursor

import (
	"io"
	"os"

	"github.com/R1tschY/mdf4j-sub001/errs"
	"github.com/R1tschY/mdf4j-sub001/internal/pool"
)

// Backend is the positionless byte source behind a Cursor.
//
// ReadAt must be safe for concurrent use when the backend is shared between
// duplicated cursors, which holds for *os.File and for Buffer as long as no
// one writes to it.
type Backend interface {
	io.ReaderAt
	io.WriterAt
	Size() (int64, error)
}

// FileBackend is a Backend over an open *os.File.
type FileBackend struct {
	f *os.File
}

var _ Backend = (*FileBackend)(nil)

// NewFileBackend wraps f. The caller keeps ownership of f.
func NewFileBackend(f *os.File) *FileBackend {
	return &FileBackend{f: f}
}

func (fb *FileBackend) ReadAt(p []byte, off int64) (int, error) {
	return fb.f.ReadAt(p, off)
}

func (fb *FileBackend) WriteAt(p []byte, off int64) (int, error) {
	return fb.f.WriteAt(p, off)
}

func (fb *FileBackend) Size() (int64, error) {
	st, err := fb.f.Stat()
	if err != nil {
		return 0, err
	}

	return st.Size(), nil
}

// File returns the wrapped file.
func (fb *FileBackend) File() *os.File {
	return fb.f
}

// Buffer is an in-memory Backend. Writes past the end grow the buffer and
// zero-fill any gap.
type Buffer struct {
	bb *pool.ByteBuffer
}

var _ Backend = (*Buffer)(nil)

// NewBuffer creates a Buffer over b without copying it.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{bb: &pool.ByteBuffer{B: b}}
}

func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errs.ErrNegativeSeek
	}
	if off >= int64(b.bb.Len()) {
		return 0, io.EOF
	}

	n := copy(p, b.bb.B[off:])
	if n < len(p) {
		return n, io.EOF
	}

	return n, nil
}

func (b *Buffer) WriteAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errs.ErrNegativeSeek
	}

	end := int(off) + len(p)
	if end > b.bb.Len() {
		b.bb.SetLength(end)
	}

	return copy(b.bb.B[off:end], p), nil
}

func (b *Buffer) Size() (int64, error) {
	return int64(b.bb.Len()), nil
}

// Bytes returns the buffer content. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte {
	return b.bb.B
}

// view returns n bytes at off without copying.
func (b *Buffer) view(off int64, n int) ([]byte, error) {
	if off < 0 {
		return nil, errs.ErrNegativeSeek
	}
	if n < 0 || int64(n) > int64(b.bb.Len())-off {
		return nil, io.ErrUnexpectedEOF
	}

	return b.bb.B[off : off+int64(n) : off+int64(n)], nil
}

type readOnly struct {
	r    io.ReaderAt
	size int64
}

// ReaderAt adapts a read-only io.ReaderAt of known size into a Backend.
// Writes fail with errs.ErrReadOnly.
func ReaderAt(r io.ReaderAt, size int64) Backend {
	return &readOnly{r: r, size: size}
}

func (ro *readOnly) ReadAt(p []byte, off int64) (int, error) {
	return ro.r.ReadAt(p, off)
}

func (ro *readOnly) WriteAt([]byte, int64) (int, error) {
	return 0, errs.ErrReadOnly
}

func (ro *readOnly) Size() (int64, error) {
	return ro.size, nil
}
