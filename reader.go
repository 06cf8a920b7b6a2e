package mdf4

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/R1tschY/mdf4j-sub001/de"
	"github.com/R1tschY/mdf4j-sub001/errs"
	"github.com/R1tschY/mdf4j-sub001/internal/pool"
	"github.com/R1tschY/mdf4j-sub001/internal/read"
)

// RecordReader reads the records of one channel group. It is created by
// NewRecordReader and must be closed after use.
//
// A RecordReader is not safe for concurrent use. Split hands its records to
// independent readers that are.
type RecordReader[B, R any] struct {
	factory  RecordFactory[B, R]
	group    *ChannelGroup
	channels []*Channel
	columns  []column[B]
	logger   *slog.Logger

	stream     *read.Stream
	buf        *pool.ByteBuffer
	rec        read.Record
	recordSize int64

	// records [start, end) of the group belong to this reader
	start, end uint64
	index      uint64
	closed     bool
}

type column[B any] struct {
	name string
	vr   read.ValueRead
	d    *read.Deserializer
	into de.DeserializeInto[B]
}

// NewRecordReader selects a channel group and its channels through factory
// and prepares reading its records.
//
// Channels whose decoding is not implemented are skipped with a warning. It
// fails with errs.ErrChannelGroupNotFound when the factory accepts no group.
func NewRecordReader[B, R any](f *File, factory RecordFactory[B, R]) (*RecordReader[B, R], error) {
	group, err := selectGroup(f, factory)
	if err != nil {
		return nil, err
	}

	r := &RecordReader[B, R]{factory: factory, group: group, logger: f.cfg.logger}
	layout := group.layout()

	for ch, err := range group.Channels() {
		if err != nil {
			return nil, err
		}
		into, err := factory.SelectChannel(ch)
		if err != nil {
			return nil, err
		}
		if into == nil {
			continue
		}

		vr, err := ch.valueRead(layout)
		if errors.Is(err, errs.ErrNotImplemented) {
			name, _ := ch.Name()
			r.logger.Warn("skipping channel", "channel", name, "reason", err)
			continue
		}
		if err != nil {
			return nil, err
		}

		name, _ := ch.Name()
		r.channels = append(r.channels, ch)
		r.columns = append(r.columns, column[B]{name: name, vr: vr, into: into})
	}

	c := f.c.Dup()
	if r.stream, err = read.OpenStream(c, group.dg.Block.Data, f.cfg.maxListLength); err != nil {
		return nil, err
	}

	r.recordSize = int64(layout.RecordSize())
	total := r.stream.Len()
	switch {
	case r.recordSize == 0 && total != 0:
		r.stream.Close()
		return nil, errs.Formatf("%d bytes of data for records of length 0", total)
	case r.recordSize != 0 && total%r.recordSize != 0:
		r.stream.Close()
		return nil, errs.Formatf("data length %d is not a multiple of the record length %d", total, r.recordSize)
	case r.recordSize != 0:
		r.end = uint64(total / r.recordSize)
	}
	if r.end != group.CycleCount() {
		r.logger.Warn("record count does not match cycle count", "records", r.end, "cycle_count", group.CycleCount())
	}
	r.bind()

	return r, nil
}

// bind gives the reader its own record buffer and column deserializers.
func (r *RecordReader[B, R]) bind() {
	r.buf = pool.GetBuffer()
	r.buf.SetLength(int(r.recordSize))
	for i := range r.columns {
		r.columns[i].d = read.NewDeserializer(r.columns[i].vr, &r.rec)
	}
}

func selectGroup[B, R any](f *File, factory RecordFactory[B, R]) (*ChannelGroup, error) {
	for dg, err := range f.DataGroups() {
		if err != nil {
			return nil, err
		}
		for cg, err := range dg.ChannelGroups() {
			if err != nil {
				return nil, err
			}
			if !factory.SelectGroup(dg, cg) {
				continue
			}
			if dg.Block.RecordIDSize != 0 {
				return nil, errs.NotImplementedf("unsorted data group with %d byte record ids", dg.Block.RecordIDSize)
			}

			return cg, nil
		}
	}

	return nil, errs.ErrChannelGroupNotFound
}

func (ch *Channel) valueRead(layout read.Layout) (read.ValueRead, error) {
	rc, err := ch.resolve(0)
	if err != nil {
		return nil, err
	}

	return read.NewValueRead(layout, rc)
}

// Group returns the selected channel group.
func (r *RecordReader[B, R]) Group() *ChannelGroup {
	return r.group
}

// Channels returns the selected channels in column order.
func (r *RecordReader[B, R]) Channels() []*Channel {
	return r.channels
}

// Size returns the number of records of the reader: all records of the
// group, or the range handed over by Split.
func (r *RecordReader[B, R]) Size() uint64 {
	return r.end - r.start
}

// Remaining returns the number of records not yet read.
func (r *RecordReader[B, R]) Remaining() uint64 {
	return r.end - r.index
}

// HasNext reports whether another record can be read.
func (r *RecordReader[B, R]) HasNext() bool {
	return !r.closed && r.index < r.end
}

// Next reads the next record into a target from CreateRecord and returns the
// result of FinishRecord. It returns errs.ErrNoMoreRecords after the last
// record.
func (r *RecordReader[B, R]) Next() (R, error) {
	var zero R

	b := r.factory.CreateRecord()
	if err := r.NextInto(b); err != nil {
		return zero, err
	}

	return r.factory.FinishRecord(b)
}

// NextInto reads the next record into dest. When the record bytes cannot be
// read, the reader stays at that record and the next call reads it again. A
// record whose channels fail to decode is not retried; the following call
// continues with the next record.
func (r *RecordReader[B, R]) NextInto(dest B) error {
	if r.closed {
		return errs.ErrClosed
	}
	if r.index >= r.end {
		return errs.ErrNoMoreRecords
	}

	if err := r.stream.ReadFull(r.buf.B); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if serr := r.stream.Seek(r.offset(r.index)); serr != nil {
			r.closed = true
			return fmt.Errorf("record %d: %w", r.index, errors.Join(err, serr))
		}
		return fmt.Errorf("record %d: %w", r.index, err)
	}
	r.rec.Reset(r.index, r.buf.B)
	r.index++

	for _, col := range r.columns {
		if err := col.into(col.d, dest); err != nil {
			return fmt.Errorf("record %d, channel %q: %w", r.index-1, col.name, err)
		}
	}

	return nil
}

// All iterates the remaining records. Iteration stops after the first error.
func (r *RecordReader[B, R]) All() iter.Seq2[R, error] {
	return func(yield func(R, error) bool) {
		for r.HasNext() {
			rec, err := r.Next()
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}

// Split hands the remaining records to at most parts readers over disjoint,
// consecutive ranges, in record order. Every reader has its own position in
// the file and may be used on its own goroutine, provided the factory's
// CreateRecord, FinishRecord and bound deserializers are safe for concurrent
// use. Afterwards r has no remaining records. The returned readers must be
// closed.
func (r *RecordReader[B, R]) Split(parts int) ([]*RecordReader[B, R], error) {
	if parts < 1 {
		return nil, fmt.Errorf("split into %d parts", parts)
	}
	if r.closed {
		return nil, errs.ErrClosed
	}

	remaining := r.Remaining()
	n := max(min(uint64(parts), remaining), 1)
	size, extra := remaining/n, remaining%n

	out := make([]*RecordReader[B, R], 0, n)
	from := r.index
	for i := range n {
		to := from + size
		if i < extra {
			to++
		}
		part, err := r.detach(from, to)
		if err != nil {
			for _, p := range out {
				p.Close()
			}
			return nil, err
		}
		out = append(out, part)
		from = to
	}
	r.index = r.end

	return out, nil
}

func (r *RecordReader[B, R]) detach(from, to uint64) (*RecordReader[B, R], error) {
	part := &RecordReader[B, R]{
		factory:    r.factory,
		group:      r.group,
		channels:   r.channels,
		columns:    append([]column[B](nil), r.columns...),
		logger:     r.logger,
		stream:     r.stream.Clone(),
		recordSize: r.recordSize,
		start:      from,
		end:        to,
		index:      from,
	}
	if err := part.stream.Seek(part.offset(from)); err != nil {
		return nil, err
	}
	part.bind()

	return part, nil
}

func (r *RecordReader[B, R]) offset(index uint64) int64 {
	return int64(index) * r.recordSize
}

// Close releases the buffers of the reader. It does not close the file.
func (r *RecordReader[B, R]) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.stream.Close()
	pool.PutBuffer(r.buf)
	r.buf = nil

	return nil
}
