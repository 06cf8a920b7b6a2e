package mdf4

import (
	"io"
	"iter"
	"os"
	"sync/atomic"

	"github.com/R1tschY/mdf4j-sub001/blocks"
	"github.com/R1tschY/mdf4j-sub001/cursor"
	"github.com/R1tschY/mdf4j-sub001/errs"
	"github.com/R1tschY/mdf4j-sub001/internal/options"
)

// File is an open MDF 4 file.
type File struct {
	c      *cursor.Cursor
	shared *shared
	closed bool

	id     *blocks.IDBlock
	header *blocks.HeaderBlock
	cfg    *Config
}

// shared is the state common to a file and its duplicates.
type shared struct {
	closer io.Closer
	refs   atomic.Int32
}

// Open opens the file at path.
func Open(path string, opts ...Option) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	f, err := open(cursor.New(cursor.NewFileBackend(fh)), fh, opts)
	if err != nil {
		_ = fh.Close()
		return nil, err
	}

	return f, nil
}

// OpenBytes opens a file held in memory. data must not be modified while the
// file is open.
func OpenBytes(data []byte, opts ...Option) (*File, error) {
	return open(cursor.FromBytes(data), nil, opts)
}

// OpenReader opens a file of the given size read through r. Closing the File
// does not close r.
func OpenReader(r io.ReaderAt, size int64, opts ...Option) (*File, error) {
	return open(cursor.New(cursor.ReaderAt(r, size)), nil, opts)
}

func open(c *cursor.Cursor, closer io.Closer, opts []Option) (*File, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	id, err := blocks.ReadIDBlock(c)
	if err != nil {
		return nil, err
	}
	if !id.Finalized {
		return nil, errs.Formatf("file is not finalized (flags %#x, custom flags %#x)",
			uint16(id.UnfinalizedFlags), id.CustomUnfinalizedFlags)
	}

	header, _, err := blocks.Resolve(c, blocks.Link(blocks.IDBlockSize), blocks.ReadHeaderBlock)
	if err != nil {
		return nil, err
	}

	s := &shared{closer: closer}
	s.refs.Store(1)
	cfg.logger.Info("opened MDF file", "version", id.Version.String(), "program", id.ProgramID)

	return &File{c: c, shared: s, id: id, header: header, cfg: cfg}, nil
}

// Dup returns an independent handle over the same file. The handles share
// nothing mutable and may be used on different goroutines. The underlying
// file is closed when the last handle is closed.
func (f *File) Dup() (*File, error) {
	if f.closed {
		return nil, errs.ErrClosed
	}
	f.shared.refs.Add(1)

	return &File{c: f.c.Dup(), shared: f.shared, id: f.id, header: f.header, cfg: f.cfg}, nil
}

// Close releases the handle. Closing twice is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true

	if f.shared.refs.Add(-1) == 0 && f.shared.closer != nil {
		return f.shared.closer.Close()
	}

	return nil
}

// ID returns the identification block.
func (f *File) ID() *blocks.IDBlock {
	return f.id
}

// Header returns the file header block.
func (f *File) Header() *blocks.HeaderBlock {
	return f.header
}

// Comment returns the text of the file comment, empty if there is none.
func (f *File) Comment() (string, error) {
	return f.text(f.header.Comment)
}

// DataGroups iterates the data groups in file order.
func (f *File) DataGroups() iter.Seq2[*DataGroup, error] {
	return func(yield func(*DataGroup, error) bool) {
		if f.closed {
			yield(nil, errs.ErrClosed)
			return
		}
		for dg, err := range blocks.List(f.c, f.header.FirstDataGroup, blocks.ReadDataGroup, blocks.NextDataGroup, f.cfg.maxListLength) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(&DataGroup{f: f, Block: dg}, nil) {
				return
			}
		}
	}
}

func (f *File) text(l blocks.Link) (string, error) {
	tx, ok, err := blocks.Resolve(f.c, l, blocks.ReadTextOrMetadata)
	if err != nil || !ok {
		return "", err
	}

	return tx.Text, nil
}
