// Package writer emits MDF4 files block by block.
//
// A Writer starts with an unfinalized identification block and the file
// header, then appends caller-built blocks at 8-byte aligned offsets:
//
//	w, err := writer.Create("out.mf4")
//	if err != nil { ... }
//	defer w.Close()
//
//	hd := &blocks.HeaderBlock{}
//	if err := w.WriteHeader(hd); err != nil { ... }
//	dt, err := w.WriteBlock(&blocks.DataBlock{Data: records})
//	...
//	err = w.FinalizeFile()
//
// The Writer keeps no block graph. Links must point at blocks that are
// already written or at offsets the caller fills in later with Cursor. A
// file that is never finalized keeps the "UnFinMF " magic and is rejected
// by readers.
//
// A Writer is not safe for concurrent use, and a file being written must not
// be read at the same time.
package writer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/R1tschY/mdf4j-sub001/blocks"
	"github.com/R1tschY/mdf4j-sub001/cursor"
	"github.com/R1tschY/mdf4j-sub001/errs"
	"github.com/R1tschY/mdf4j-sub001/internal/options"
)

var errNoHeader = errors.New("writer: file header not written")

// Writer appends blocks to a file or buffer.
type Writer struct {
	c      *cursor.Cursor
	file   *os.File // nil for in-memory writers
	cfg    Config
	header bool
	closed bool
}

// Create creates or truncates the file at path.
func Create(path string, opts ...Option) (*Writer, error) {
	cfg := DefaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w, err := New(cursor.NewFileBackend(f), cfg)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, err
	}
	w.file = f

	return w, nil
}

// CreateForMemory writes into buf.
func CreateForMemory(buf *cursor.Buffer, opts ...Option) (*Writer, error) {
	cfg := DefaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	return New(buf, cfg)
}

// New writes to an arbitrary backend with an explicit configuration.
func New(b cursor.Backend, cfg Config) (*Writer, error) {
	if b == nil {
		return nil, errs.ErrNilBackend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Writer{c: cursor.New(b), cfg: cfg}, nil
}

// Config returns the configuration of the writer.
func (w *Writer) Config() Config {
	return w.cfg
}

// WriteHeader writes the unfinalized identification block and hd right
// after it. It must be called first and only once; the header may be
// rewritten with RewriteHeader once its links are known.
func (w *Writer) WriteHeader(hd *blocks.HeaderBlock) error {
	if w.closed {
		return errs.ErrClosed
	}
	if w.header {
		return errors.New("writer: file header already written")
	}

	if err := w.c.Seek(0); err != nil {
		return err
	}
	id := &blocks.IDBlock{Version: w.cfg.Version, ProgramID: w.cfg.ProgramID}
	if err := id.Encode(w.c); err != nil {
		return fmt.Errorf("identification block: %w", err)
	}
	if err := blocks.Encode(w.c, hd); err != nil {
		return fmt.Errorf("header block: %w", err)
	}
	w.header = true

	return nil
}

// RewriteHeader overwrites the header block in place, typically to set the
// first data group link after the groups are written.
func (w *Writer) RewriteHeader(hd *blocks.HeaderBlock) error {
	if w.closed {
		return errs.ErrClosed
	}
	if !w.header {
		return errNoHeader
	}

	return w.at(blocks.IDBlockSize, func(c *cursor.Cursor) error {
		return blocks.Encode(c, hd)
	})
}

// WriteBlockHeader aligns the position to 8 bytes and writes a block header
// whose total length is 24 + 8*len(links) + dataLength. The caller writes
// exactly dataLength body bytes next, with Write or Cursor.
func (w *Writer) WriteBlockHeader(id blocks.TypeID, links []blocks.Link, dataLength int64) (blocks.Link, error) {
	start, err := w.align()
	if err != nil {
		return blocks.NilLink, err
	}
	if err := blocks.WriteHeader(w.c, id, links, dataLength); err != nil {
		return blocks.NilLink, err
	}

	return blocks.Link(start), nil
}

// WriteBlock aligns the position to 8 bytes, encodes b and returns its link.
func (w *Writer) WriteBlock(b blocks.Encoder) (blocks.Link, error) {
	start, err := w.align()
	if err != nil {
		return blocks.NilLink, err
	}
	if err := blocks.Encode(w.c, b); err != nil {
		return blocks.NilLink, err
	}

	return blocks.Link(start), nil
}

// UpdateBlock re-encodes b over the block at l. The block at l must have the
// same type and encoded length as b.
func (w *Writer) UpdateBlock(l blocks.Link, b blocks.Encoder) error {
	if w.closed {
		return errs.ErrClosed
	}
	if l.IsNil() {
		return errs.Formatf("cannot update %s block at nil link", b.TypeID())
	}

	return w.at(l.Offset(), func(c *cursor.Cursor) error {
		old, err := blocks.ReadHeader(c.Dup())
		if err != nil {
			return err
		}
		length := uint64(blocks.HeaderSize) + uint64(blocks.LinkSize*len(b.Links())) + uint64(b.BodyLength())
		if old.ID != b.TypeID() || old.Length != length {
			return errs.Formatf("cannot replace %s block of %d bytes at offset %d with %s block of %d bytes",
				old.ID, old.Length, l.Offset(), b.TypeID(), length)
		}

		return blocks.Encode(c, b)
	})
}

// Write writes raw body bytes at the current position.
func (w *Writer) Write(p []byte) error {
	if w.closed {
		return errs.ErrClosed
	}

	return w.c.Write(p)
}

// Pos returns the current write position.
func (w *Writer) Pos() int64 {
	return w.c.Pos()
}

// Cursor returns the cursor of the writer for direct writes. Writes through
// it move the writer position.
func (w *Writer) Cursor() *cursor.Cursor {
	return w.c
}

// FinalizeFile replaces the unfinalized magic with "MDF     " and flushes
// the file to disk. The write position is kept.
func (w *Writer) FinalizeFile() error {
	if w.closed {
		return errs.ErrClosed
	}
	if !w.header {
		return errNoHeader
	}

	err := w.at(0, func(c *cursor.Cursor) error {
		return c.WriteFixedString(blocks.FileMagic, len(blocks.FileMagic), cursor.Latin1)
	})
	if err != nil {
		return err
	}
	if w.file != nil {
		return w.file.Sync()
	}

	return nil
}

// Close closes the underlying file. It does not finalize.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.file != nil {
		return w.file.Close()
	}

	return nil
}

func (w *Writer) align() (int64, error) {
	if w.closed {
		return 0, errs.ErrClosed
	}
	if !w.header {
		return 0, errNoHeader
	}

	pos := w.c.Pos()
	if pad := blocks.AlignUp(pos) - pos; pad > 0 {
		if err := w.c.WritePadding(pad); err != nil {
			return 0, err
		}
	}

	return w.c.Pos(), nil
}

// at runs fn on a duplicate cursor at off, leaving the write position alone.
func (w *Writer) at(off int64, fn func(c *cursor.Cursor) error) error {
	d := w.c.Dup()
	if err := d.Seek(off); err != nil {
		return err
	}

	return fn(d)
}

var _ io.Closer = (*Writer)(nil)
