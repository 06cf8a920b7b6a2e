package read

import (
	"fmt"
	"io"
	"sort"

	"github.com/R1tschY/mdf4j-sub001/blocks"
	"github.com/R1tschY/mdf4j-sub001/cursor"
	"github.com/R1tschY/mdf4j-sub001/errs"
)

// segment is one contiguous piece of the data stream: the payload of a ##DT
// block, or the inflated payload of a ##DZ block.
type segment struct {
	zipped blocks.Link // ##DZ block, NilLink for raw data
	offset int64       // payload offset of raw data
	start  int64       // position of the segment within the stream
	length int64
}

// Stream reads the concatenated record bytes behind a data group's data
// link sequentially. Zipped blocks are inflated one at a time when the
// stream enters them.
type Stream struct {
	c        *cursor.Cursor
	segments []segment
	length   int64

	seg      int
	pos      int64
	inflated []byte
}

// OpenStream collects the data blocks reachable from root. A nil root is an
// empty stream. maxListLength bounds ##DL chains, 0 for the default.
func OpenStream(c *cursor.Cursor, root blocks.Link, maxListLength int) (*Stream, error) {
	s := &Stream{c: c}
	if root.IsNil() {
		return s, nil
	}

	r, _, err := blocks.Resolve(c, root, blocks.ReadDataRoot)
	if err != nil {
		return nil, err
	}

	switch r := r.(type) {
	case *blocks.DataListBlock:
		err = s.addList(root, maxListLength)
	case *blocks.HeaderListBlock:
		err = s.addList(r.FirstDataList, maxListLength)
	default:
		err = s.addLeaf(root, r)
	}
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Stream) addList(first blocks.Link, maxListLength int) error {
	for dl, err := range blocks.List(s.c, first, blocks.ReadDataList, blocks.NextDataList, maxListLength) {
		if err != nil {
			return err
		}
		for _, l := range dl.Data {
			if l.IsNil() {
				continue
			}
			r, _, err := blocks.Resolve(s.c, l, blocks.ReadDataRoot)
			if err != nil {
				return err
			}
			if err := s.addLeaf(l, r); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Stream) addLeaf(at blocks.Link, r blocks.DataRoot) error {
	var seg segment
	switch r := r.(type) {
	case *blocks.DataBlock:
		seg = segment{offset: r.PayloadOffset, length: r.PayloadLength}
	case *blocks.DataZippedBlock:
		if r.Original() != blocks.IDData {
			return errs.NotImplementedf("zipped %s block in record data", r.Original())
		}
		seg = segment{zipped: at, length: int64(r.OriginalLength)}
	default:
		return errs.Formatf("%s block at offset %d inside a data list", r.TypeID(), at.Offset())
	}

	if seg.length > 0 {
		seg.start = s.length
		s.segments = append(s.segments, seg)
		s.length += seg.length
	}

	return nil
}

// Len returns the total number of bytes in the stream.
func (s *Stream) Len() int64 {
	return s.length
}

// Pos returns the stream position of the next byte to read.
func (s *Stream) Pos() int64 {
	if s.seg >= len(s.segments) {
		return s.length
	}

	return s.segments[s.seg].start + s.pos
}

// Seek moves to stream position off. Segments before off are skipped without
// being read; a zipped segment is inflated when the first byte is read from
// it.
func (s *Stream) Seek(off int64) error {
	if off < 0 {
		return errs.ErrNegativeSeek
	}
	if off > s.length {
		return fmt.Errorf("seek to %d past end of %d byte stream", off, s.length)
	}

	i := sort.Search(len(s.segments), func(i int) bool {
		return s.segments[i].start+s.segments[i].length > off
	})
	if i != s.seg {
		s.inflated = nil
	}
	s.seg = i
	s.pos = 0
	if i < len(s.segments) {
		s.pos = off - s.segments[i].start
	}

	return nil
}

// Clone returns a stream over the same blocks with its own cursor, positioned
// at the start. The clone may be read on another goroutine.
func (s *Stream) Clone() *Stream {
	return &Stream{c: s.c.Dup(), segments: s.segments, length: s.length}
}

// ReadFull fills p with the next len(p) bytes. It returns io.EOF at the end
// of the stream and io.ErrUnexpectedEOF if the stream ends inside p.
func (s *Stream) ReadFull(p []byte) error {
	n := 0
	for n < len(p) {
		if s.seg >= len(s.segments) {
			if n == 0 {
				return io.EOF
			}
			return io.ErrUnexpectedEOF
		}

		seg := s.segments[s.seg]
		if !seg.zipped.IsNil() && s.inflated == nil {
			if err := s.inflate(seg); err != nil {
				return err
			}
		}

		chunk := p[n:min(len(p), n+int(seg.length-s.pos))]
		if s.inflated != nil {
			copy(chunk, s.inflated[s.pos:])
		} else {
			if err := s.c.Seek(seg.offset + s.pos); err != nil {
				return err
			}
			if err := s.c.Read(chunk); err != nil {
				return err
			}
		}
		n += len(chunk)
		s.pos += int64(len(chunk))

		if s.pos == seg.length {
			s.seg++
			s.pos = 0
			s.inflated = nil
		}
	}

	return nil
}

func (s *Stream) inflate(seg segment) error {
	dz, _, err := blocks.Resolve(s.c, seg.zipped, blocks.ReadDataZipped)
	if err != nil {
		return err
	}
	if s.inflated, err = dz.Inflate(); err != nil {
		return err
	}

	return nil
}

// Close releases the inflated block held by the stream.
func (s *Stream) Close() {
	s.segments = nil
	s.inflated = nil
}
