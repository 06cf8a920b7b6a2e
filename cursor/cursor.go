// Package cursor provides a positioned, endian-explicit byte cursor over a
// file or an in-memory buffer.
//
// A Cursor owns nothing but its position. All reads and writes go through a
// Backend at absolute offsets, so several cursors can share one Backend and
// move independently:
//
//	c := cursor.New(cursor.NewFileBackend(f))
//	dup := c.Dup() // own position, same file
//
// Every multi-byte operation names its byte order (ReadU32LE, WriteF64BE).
// There is no default order to forget between calls.
//
// Seeking beyond the end of the backend is allowed. The next read fails with
// io.ErrUnexpectedEOF; the next write on a Buffer grows it and zero-fills the
// gap, which lets writers reserve space and come back later.
package cursor

import (
	"io"
	"math"

	"github.com/R1tschY/mdf4j-sub001/endian"
	"github.com/R1tschY/mdf4j-sub001/errs"
)

// Cursor is a position over a Backend. A Cursor is not safe for concurrent
// use; use Dup to get one cursor per goroutine.
type Cursor struct {
	backend Backend
	pos     int64
	scratch [8]byte
}

// New creates a cursor at offset 0 of b.
func New(b Backend) *Cursor {
	return &Cursor{backend: b}
}

// FromBytes creates a cursor over an in-memory copy-free view of data.
func FromBytes(data []byte) *Cursor {
	return New(NewBuffer(data))
}

// Backend returns the backend shared by this cursor and its duplicates.
func (c *Cursor) Backend() Backend {
	return c.backend
}

// Dup returns an independent cursor over the same backend at the same position.
func (c *Cursor) Dup() *Cursor {
	return &Cursor{backend: c.backend, pos: c.pos}
}

// Pos returns the current absolute position.
func (c *Cursor) Pos() int64 {
	return c.pos
}

// Seek moves to an absolute position. Positions past the end are accepted.
func (c *Cursor) Seek(pos int64) error {
	if pos < 0 {
		return errs.ErrNegativeSeek
	}
	c.pos = pos

	return nil
}

// Skip advances the position by n bytes.
func (c *Cursor) Skip(n int64) error {
	return c.Seek(c.pos + n)
}

// Size returns the current size of the backend.
func (c *Cursor) Size() (int64, error) {
	return c.backend.Size()
}

// read returns the next n bytes and advances. For n <= 8 the returned slice is
// the cursor's scratch space and is only valid until the next call.
func (c *Cursor) read(n int) ([]byte, error) {
	var buf []byte
	if n <= len(c.scratch) {
		buf = c.scratch[:n]
	} else {
		if err := c.available(n); err != nil {
			return nil, err
		}
		buf = make([]byte, n)
	}
	if err := c.readFull(buf); err != nil {
		return nil, err
	}

	return buf, nil
}

func (c *Cursor) readFull(buf []byte) error {
	n, err := c.backend.ReadAt(buf, c.pos)
	if n == len(buf) {
		c.pos += int64(n)
		return nil
	}
	if err == nil || err == io.EOF {
		return io.ErrUnexpectedEOF
	}

	return err
}

// Read fills p completely from the current position.
func (c *Cursor) Read(p []byte) error {
	return c.readFull(p)
}

// available fails with io.ErrUnexpectedEOF unless n bytes remain at the
// current position. Lengths taken from the file are checked here before they
// size an allocation.
func (c *Cursor) available(n int) error {
	if n < 0 {
		return io.ErrUnexpectedEOF
	}
	size, err := c.backend.Size()
	if err != nil {
		return err
	}
	if c.pos > size || int64(n) > size-c.pos {
		return io.ErrUnexpectedEOF
	}

	return nil
}

// ReadBytes returns a fresh copy of the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.available(n); err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if err := c.readFull(buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// View returns the next n bytes. On a Buffer backend the result aliases the
// buffer and must not be modified; other backends return a copy.
func (c *Cursor) View(n int) ([]byte, error) {
	if b, ok := c.backend.(*Buffer); ok {
		v, err := b.view(c.pos, n)
		if err != nil {
			return nil, err
		}
		c.pos += int64(n)

		return v, nil
	}

	return c.ReadBytes(n)
}

// ReadString reads n bytes and decodes them with cs. Terminators are kept.
func (c *Cursor) ReadString(n int, cs Charset) (string, error) {
	b, err := c.View(n)
	if err != nil {
		return "", err
	}

	return cs.Decode(b)
}

func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.read(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (c *Cursor) ReadI8() (int8, error) {
	v, err := c.ReadU8()
	return int8(v), err
}

func (c *Cursor) readU16(e endian.EndianEngine) (uint16, error) {
	b, err := c.read(2)
	if err != nil {
		return 0, err
	}

	return e.Uint16(b), nil
}

func (c *Cursor) readU32(e endian.EndianEngine) (uint32, error) {
	b, err := c.read(4)
	if err != nil {
		return 0, err
	}

	return e.Uint32(b), nil
}

func (c *Cursor) readU64(e endian.EndianEngine) (uint64, error) {
	b, err := c.read(8)
	if err != nil {
		return 0, err
	}

	return e.Uint64(b), nil
}

func (c *Cursor) ReadU16LE() (uint16, error) { return c.readU16(endian.Little()) }
func (c *Cursor) ReadU16BE() (uint16, error) { return c.readU16(endian.Big()) }
func (c *Cursor) ReadU32LE() (uint32, error) { return c.readU32(endian.Little()) }
func (c *Cursor) ReadU32BE() (uint32, error) { return c.readU32(endian.Big()) }
func (c *Cursor) ReadU64LE() (uint64, error) { return c.readU64(endian.Little()) }
func (c *Cursor) ReadU64BE() (uint64, error) { return c.readU64(endian.Big()) }

func (c *Cursor) ReadI16LE() (int16, error) {
	v, err := c.readU16(endian.Little())
	return int16(v), err
}

func (c *Cursor) ReadI16BE() (int16, error) {
	v, err := c.readU16(endian.Big())
	return int16(v), err
}

func (c *Cursor) ReadI32LE() (int32, error) {
	v, err := c.readU32(endian.Little())
	return int32(v), err
}

func (c *Cursor) ReadI32BE() (int32, error) {
	v, err := c.readU32(endian.Big())
	return int32(v), err
}

func (c *Cursor) ReadI64LE() (int64, error) {
	v, err := c.readU64(endian.Little())
	return int64(v), err
}

func (c *Cursor) ReadI64BE() (int64, error) {
	v, err := c.readU64(endian.Big())
	return int64(v), err
}

func (c *Cursor) ReadF32LE() (float32, error) {
	v, err := c.readU32(endian.Little())
	return math.Float32frombits(v), err
}

func (c *Cursor) ReadF32BE() (float32, error) {
	v, err := c.readU32(endian.Big())
	return math.Float32frombits(v), err
}

func (c *Cursor) ReadF64LE() (float64, error) {
	v, err := c.readU64(endian.Little())
	return math.Float64frombits(v), err
}

func (c *Cursor) ReadF64BE() (float64, error) {
	v, err := c.readU64(endian.Big())
	return math.Float64frombits(v), err
}
