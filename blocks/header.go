package blocks

import (
	"github.com/R1tschY/mdf4j-sub001/cursor"
	"github.com/R1tschY/mdf4j-sub001/errs"
)

const (
	HeaderSize = 24 // fixed part of every block header
	LinkSize   = 8  // size of one link
)

// TypeID is the 4-byte block type tag.
type TypeID [4]byte

var (
	IDHeader       = TypeID{'#', '#', 'H', 'D'}
	IDDataGroup    = TypeID{'#', '#', 'D', 'G'}
	IDChannelGroup = TypeID{'#', '#', 'C', 'G'}
	IDChannel      = TypeID{'#', '#', 'C', 'N'}
	IDText         = TypeID{'#', '#', 'T', 'X'}
	IDMetadata     = TypeID{'#', '#', 'M', 'D'}
	IDConversion   = TypeID{'#', '#', 'C', 'C'}
	IDData         = TypeID{'#', '#', 'D', 'T'}
	IDDataZipped   = TypeID{'#', '#', 'D', 'Z'}
	IDDataList     = TypeID{'#', '#', 'D', 'L'}
	IDHeaderList   = TypeID{'#', '#', 'H', 'L'}
	IDSignalData   = TypeID{'#', '#', 'S', 'D'}
	IDFileHistory  = TypeID{'#', '#', 'F', 'H'}
	IDSource       = TypeID{'#', '#', 'S', 'I'}
)

func (id TypeID) String() string {
	return string(id[:])
}

// Short returns the two-letter block kind, e.g. "DT".
func (id TypeID) Short() [2]byte {
	return [2]byte{id[2], id[3]}
}

// IsValid reports whether id has the "##XX" shape with upper-case letters.
func (id TypeID) IsValid() bool {
	return id[0] == '#' && id[1] == '#' &&
		id[2] >= 'A' && id[2] <= 'Z' &&
		id[3] >= 'A' && id[3] <= 'Z'
}

// Header is the decoded common block header.
type Header struct {
	ID     TypeID
	Length uint64
	Links  []Link
}

// BodyLength returns the number of body bytes following the links.
func (h Header) BodyLength() int64 {
	return int64(h.Length) - HeaderSize - LinkSize*int64(len(h.Links))
}

// Link returns the i-th link or a nil link if the block has fewer links.
func (h Header) Link(i int) Link {
	if i < len(h.Links) {
		return h.Links[i]
	}

	return NilLink
}

// ReadHeader reads a block header at the cursor position.
func ReadHeader(c *cursor.Cursor) (Header, error) {
	var h Header
	start := c.Pos()

	if err := c.Read(h.ID[:]); err != nil {
		return h, err
	}
	if !h.ID.IsValid() {
		return h, errs.Formatf("invalid block id %q at offset %d", h.ID.String(), start)
	}
	if err := c.Skip(4); err != nil {
		return h, err
	}

	length, err := c.ReadU64LE()
	if err != nil {
		return h, err
	}
	linkCount, err := c.ReadU64LE()
	if err != nil {
		return h, err
	}
	if length < HeaderSize || linkCount > (length-HeaderSize)/LinkSize {
		return h, errs.Formatf("%s block at offset %d: length %d inconsistent with %d links",
			h.ID, start, length, linkCount)
	}
	size, err := c.Size()
	if err != nil {
		return h, err
	}
	if length > uint64(max(size-start, 0)) {
		return h, errs.Formatf("%s block at offset %d: length %d exceeds file size %d",
			h.ID, start, length, size)
	}
	h.Length = length

	// grow on demand, a bogus count fails on EOF before it can exhaust memory
	h.Links = make([]Link, 0, min(linkCount, 64))
	for range linkCount {
		l, err := c.ReadU64LE()
		if err != nil {
			return h, err
		}
		h.Links = append(h.Links, Link(l))
	}

	return h, nil
}

// ReadHeaderExpecting reads a header and checks its type id and minimum shape.
func ReadHeaderExpecting(c *cursor.Cursor, id TypeID, minLinks int, minBody int64) (Header, error) {
	start := c.Pos()
	h, err := ReadHeader(c)
	if err != nil {
		return h, err
	}
	if h.ID != id {
		return h, errs.Formatf("expected %s block at offset %d, got %s", id, start, h.ID)
	}
	if len(h.Links) < minLinks {
		return h, errs.Formatf("%s block at offset %d: expected at least %d links, got %d",
			id, start, minLinks, len(h.Links))
	}
	if h.BodyLength() < minBody {
		return h, errs.Formatf("%s block at offset %d: expected at least %d body bytes, got %d",
			id, start, minBody, h.BodyLength())
	}

	return h, nil
}

// PeekTypeID returns the type id at the cursor position without moving it.
func PeekTypeID(c *cursor.Cursor) (TypeID, error) {
	var id TypeID
	d := c.Dup()
	if err := d.Read(id[:]); err != nil {
		return id, err
	}

	return id, nil
}

// WriteHeader writes a block header whose total length is
// 24 + 8*len(links) + dataLength.
func WriteHeader(c *cursor.Cursor, id TypeID, links []Link, dataLength int64) error {
	if dataLength < 0 {
		return errs.Formatf("negative body length %d for %s block", dataLength, id)
	}
	if err := c.Write(id[:]); err != nil {
		return err
	}
	if err := c.WritePadding(4); err != nil {
		return err
	}
	total := uint64(HeaderSize) + uint64(LinkSize)*uint64(len(links)) + uint64(dataLength)
	if err := c.WriteU64LE(total); err != nil {
		return err
	}
	if err := c.WriteU64LE(uint64(len(links))); err != nil {
		return err
	}
	for _, l := range links {
		if err := c.WriteU64LE(uint64(l)); err != nil {
			return err
		}
	}

	return nil
}

// Encoder is a block that can write itself.
type Encoder interface {
	TypeID() TypeID
	Links() []Link
	BodyLength() int64
	EncodeBody(c *cursor.Cursor) error
}

// Encode writes the header and body of e at the cursor position.
func Encode(c *cursor.Cursor, e Encoder) error {
	if err := WriteHeader(c, e.TypeID(), e.Links(), e.BodyLength()); err != nil {
		return err
	}

	start := c.Pos()
	if err := e.EncodeBody(c); err != nil {
		return err
	}
	if written := c.Pos() - start; written != e.BodyLength() {
		return errs.Formatf("%s block body: wrote %d bytes, declared %d", e.TypeID(), written, e.BodyLength())
	}

	return nil
}
