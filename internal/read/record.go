// Package read builds the per-channel decode steps of a record reader and
// streams record bytes out of a data group's data blocks.
package read

import (
	"github.com/R1tschY/mdf4j-sub001/blocks"
)

// RecordBuffer is the byte window of the current record.
type RecordBuffer interface {
	// Index is the zero-based number of the record within its group.
	Index() uint64
	// Bytes returns n bytes at offset off of the record. The result is only
	// valid until the next record is loaded.
	Bytes(off, n int) []byte
}

// Record is a RecordBuffer over a reusable byte slice.
type Record struct {
	index uint64
	data  []byte
}

var _ RecordBuffer = (*Record)(nil)

// Reset points r at the record with the given index and bytes.
func (r *Record) Reset(index uint64, data []byte) {
	r.index = index
	r.data = data
}

func (r *Record) Index() uint64 { return r.index }

func (r *Record) Bytes(off, n int) []byte {
	return r.data[off : off+n]
}

// Layout is the byte layout shared by all records of a channel group: an
// optional record id, the data bytes, then the invalidation bytes.
type Layout struct {
	RecordIDSize      int
	DataBytes         int
	InvalidationBytes int
}

// NewLayout returns the record layout of cg inside dg.
func NewLayout(dg *blocks.DataGroupBlock, cg *blocks.ChannelGroupBlock) Layout {
	return Layout{
		RecordIDSize:      int(dg.RecordIDSize),
		DataBytes:         int(cg.DataBytes),
		InvalidationBytes: int(cg.InvalidationBytes),
	}
}

// RecordSize is the total length of one record in bytes.
func (l Layout) RecordSize() int {
	return l.RecordIDSize + l.DataBytes + l.InvalidationBytes
}
