package cursor

import (
	"io"
	"math"

	"github.com/R1tschY/mdf4j-sub001/endian"
)

var zeros [512]byte

// Write writes p at the current position and advances.
func (c *Cursor) Write(p []byte) error {
	n, err := c.backend.WriteAt(p, c.pos)
	c.pos += int64(n)
	if err != nil {
		return err
	}
	if n < len(p) {
		return io.ErrShortWrite
	}

	return nil
}

// WritePadding writes n zero bytes.
func (c *Cursor) WritePadding(n int64) error {
	for n > 0 {
		chunk := min(n, int64(len(zeros)))
		if err := c.Write(zeros[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}

	return nil
}

// WriteString encodes s with cs and writes it without a terminator.
func (c *Cursor) WriteString(s string, cs Charset) error {
	b, err := cs.Encode(s)
	if err != nil {
		return err
	}

	return c.Write(b)
}

// WriteFixedString writes s encoded with cs into exactly n bytes, truncating
// or zero-padding as needed.
func (c *Cursor) WriteFixedString(s string, n int, cs Charset) error {
	b, err := cs.Encode(s)
	if err != nil {
		return err
	}
	if len(b) >= n {
		return c.Write(b[:n])
	}
	if err := c.Write(b); err != nil {
		return err
	}

	return c.WritePadding(int64(n - len(b)))
}

func (c *Cursor) WriteU8(v uint8) error {
	c.scratch[0] = v
	return c.Write(c.scratch[:1])
}

func (c *Cursor) WriteI8(v int8) error {
	return c.WriteU8(uint8(v))
}

func (c *Cursor) writeU16(e endian.EndianEngine, v uint16) error {
	return c.Write(e.AppendUint16(c.scratch[:0], v))
}

func (c *Cursor) writeU32(e endian.EndianEngine, v uint32) error {
	return c.Write(e.AppendUint32(c.scratch[:0], v))
}

func (c *Cursor) writeU64(e endian.EndianEngine, v uint64) error {
	return c.Write(e.AppendUint64(c.scratch[:0], v))
}

func (c *Cursor) WriteU16LE(v uint16) error { return c.writeU16(endian.Little(), v) }
func (c *Cursor) WriteU16BE(v uint16) error { return c.writeU16(endian.Big(), v) }
func (c *Cursor) WriteU32LE(v uint32) error { return c.writeU32(endian.Little(), v) }
func (c *Cursor) WriteU32BE(v uint32) error { return c.writeU32(endian.Big(), v) }
func (c *Cursor) WriteU64LE(v uint64) error { return c.writeU64(endian.Little(), v) }
func (c *Cursor) WriteU64BE(v uint64) error { return c.writeU64(endian.Big(), v) }

func (c *Cursor) WriteI16LE(v int16) error { return c.writeU16(endian.Little(), uint16(v)) }
func (c *Cursor) WriteI16BE(v int16) error { return c.writeU16(endian.Big(), uint16(v)) }
func (c *Cursor) WriteI32LE(v int32) error { return c.writeU32(endian.Little(), uint32(v)) }
func (c *Cursor) WriteI32BE(v int32) error { return c.writeU32(endian.Big(), uint32(v)) }
func (c *Cursor) WriteI64LE(v int64) error { return c.writeU64(endian.Little(), uint64(v)) }
func (c *Cursor) WriteI64BE(v int64) error { return c.writeU64(endian.Big(), uint64(v)) }

func (c *Cursor) WriteF32LE(v float32) error {
	return c.writeU32(endian.Little(), math.Float32bits(v))
}

func (c *Cursor) WriteF32BE(v float32) error {
	return c.writeU32(endian.Big(), math.Float32bits(v))
}

func (c *Cursor) WriteF64LE(v float64) error {
	return c.writeU64(endian.Little(), math.Float64bits(v))
}

func (c *Cursor) WriteF64BE(v float64) error {
	return c.writeU64(endian.Big(), math.Float64bits(v))
}
