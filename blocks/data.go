package blocks

import (
	"github.com/R1tschY/mdf4j-sub001/compress"
	"github.com/R1tschY/mdf4j-sub001/cursor"
	"github.com/R1tschY/mdf4j-sub001/errs"
	"github.com/R1tschY/mdf4j-sub001/format"
)

const (
	zippedFixedBody     = 24
	dataListFixedBody   = 8
	headerListBodySize  = 8
	maxInflatedDataSize = 1 << 31
)

func errFieldOverflow(id TypeID, field string, count int, avail int64) error {
	return errs.Formatf("%s block: %d %s do not fit into %d remaining body entries", id, count, field, avail)
}

// DataRoot is the block a data group's data link points to: ##DT, ##DZ,
// ##DL or ##HL.
type DataRoot interface {
	TypeID() TypeID
	isDataRoot()
}

// ReadDataRoot parses whichever data block lives at the cursor position.
// A ##DZ block is returned without its payload. Other block types are not
// implemented as data roots.
func ReadDataRoot(c *cursor.Cursor) (DataRoot, error) {
	id, err := PeekTypeID(c)
	if err != nil {
		return nil, err
	}

	switch id {
	case IDData:
		return ReadData(c)
	case IDDataZipped:
		return ReadDataZippedHeader(c)
	case IDDataList:
		return ReadDataList(c)
	case IDHeaderList:
		return ReadHeaderList(c)
	default:
		return nil, errs.NotImplementedf("data block type %s", id)
	}
}

// DataBlock is a ##DT block. Parsing records where the payload lives
// instead of loading it; Data is only used for writing.
type DataBlock struct {
	PayloadOffset int64
	PayloadLength int64

	Data []byte
}

var _ Encoder = (*DataBlock)(nil)

// ReadData parses a ##DT block header and locates its payload.
func ReadData(c *cursor.Cursor) (*DataBlock, error) {
	h, err := ReadHeaderExpecting(c, IDData, 0, 0)
	if err != nil {
		return nil, err
	}

	return &DataBlock{PayloadOffset: c.Pos(), PayloadLength: h.BodyLength()}, nil
}

func (b *DataBlock) isDataRoot()       {}
func (b *DataBlock) TypeID() TypeID    { return IDData }
func (b *DataBlock) Links() []Link     { return nil }
func (b *DataBlock) BodyLength() int64 { return int64(len(b.Data)) }

func (b *DataBlock) EncodeBody(c *cursor.Cursor) error {
	return c.Write(b.Data)
}

// DataZippedBlock is a ##DZ block: a compressed ##DT (or ##SD, ##RD) payload.
type DataZippedBlock struct {
	OriginalType   [2]byte
	ZipType        format.ZipType
	ZipParameter   uint32
	OriginalLength uint64
	ZippedLength   uint64 // set by the readers
	Data           []byte // compressed payload
}

var _ Encoder = (*DataZippedBlock)(nil)

// NewDataZipped compresses raw as the payload of a block of type orig.
func NewDataZipped(orig TypeID, zt format.ZipType, param uint32, raw []byte) (*DataZippedBlock, error) {
	zipped, err := compress.Zip(zt, param, raw)
	if err != nil {
		return nil, err
	}

	return &DataZippedBlock{
		OriginalType:   orig.Short(),
		ZipType:        zt,
		ZipParameter:   param,
		OriginalLength: uint64(len(raw)),
		ZippedLength:   uint64(len(zipped)),
		Data:           zipped,
	}, nil
}

// ReadDataZippedHeader parses the fixed part of a ##DZ block and leaves the
// cursor at the start of the compressed payload. Data stays nil.
func ReadDataZippedHeader(c *cursor.Cursor) (*DataZippedBlock, error) {
	start := c.Pos()
	h, err := ReadHeaderExpecting(c, IDDataZipped, 0, zippedFixedBody)
	if err != nil {
		return nil, err
	}

	b := &DataZippedBlock{}
	if err := c.Read(b.OriginalType[:]); err != nil {
		return nil, err
	}
	zt, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	b.ZipType = format.ZipType(zt)
	if err := c.Skip(1); err != nil {
		return nil, err
	}
	if b.ZipParameter, err = c.ReadU32LE(); err != nil {
		return nil, err
	}
	if b.OriginalLength, err = c.ReadU64LE(); err != nil {
		return nil, err
	}
	if b.ZippedLength, err = c.ReadU64LE(); err != nil {
		return nil, err
	}
	if b.ZippedLength > uint64(h.BodyLength()-zippedFixedBody) {
		return nil, errs.Formatf("DZ block at offset %d: compressed length %d exceeds block", start, b.ZippedLength)
	}
	if b.OriginalLength > maxInflatedDataSize {
		return nil, errs.NotImplementedf("zipped data of %d bytes", b.OriginalLength)
	}

	return b, nil
}

// ReadDataZipped parses a ##DZ block including its compressed payload.
func ReadDataZipped(c *cursor.Cursor) (*DataZippedBlock, error) {
	b, err := ReadDataZippedHeader(c)
	if err != nil {
		return nil, err
	}
	if b.Data, err = c.ReadBytes(int(b.ZippedLength)); err != nil {
		return nil, err
	}

	return b, nil
}

// Original returns the block type the payload was compressed from.
func (b *DataZippedBlock) Original() TypeID {
	return TypeID{'#', '#', b.OriginalType[0], b.OriginalType[1]}
}

// Inflate returns the uncompressed payload.
func (b *DataZippedBlock) Inflate() ([]byte, error) {
	return compress.Unzip(b.ZipType, b.ZipParameter, b.Data, b.OriginalLength)
}

func (b *DataZippedBlock) isDataRoot()    {}
func (b *DataZippedBlock) TypeID() TypeID { return IDDataZipped }
func (b *DataZippedBlock) Links() []Link  { return nil }

func (b *DataZippedBlock) BodyLength() int64 {
	return zippedFixedBody + int64(len(b.Data))
}

func (b *DataZippedBlock) EncodeBody(c *cursor.Cursor) error {
	if err := c.Write([]byte{b.OriginalType[0], b.OriginalType[1], uint8(b.ZipType), 0}); err != nil {
		return err
	}
	if err := c.WriteU32LE(b.ZipParameter); err != nil {
		return err
	}
	if err := c.WriteU64LE(b.OriginalLength); err != nil {
		return err
	}
	if err := c.WriteU64LE(uint64(len(b.Data))); err != nil {
		return err
	}

	return c.Write(b.Data)
}

// DataListBlock is a ##DL block: an ordered list of data blocks.
type DataListBlock struct {
	Next Link
	Data []Link

	Flags       DataListFlags
	EqualLength uint64   // valid with DataListEqualLength
	Offsets     []uint64 // otherwise, start offset of each block within the list
}

var _ Encoder = (*DataListBlock)(nil)

// ReadDataList parses a ##DL block.
func ReadDataList(c *cursor.Cursor) (*DataListBlock, error) {
	start := c.Pos()
	h, err := ReadHeaderExpecting(c, IDDataList, 1, dataListFixedBody)
	if err != nil {
		return nil, err
	}

	b := &DataListBlock{Next: h.Links[0]}
	if len(h.Links) > 1 {
		b.Data = h.Links[1:]
	}

	flags, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	b.Flags = DataListFlags(flags)
	if err := c.Skip(3); err != nil {
		return nil, err
	}
	count, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}
	if int(count) != len(b.Data) {
		return nil, errs.Formatf("DL block at offset %d: count %d does not match %d data links", start, count, len(b.Data))
	}

	avail := (h.BodyLength() - dataListFixedBody) / 8
	if b.Flags.Has(DataListEqualLength) {
		if avail < 1 {
			return nil, errFieldOverflow(IDDataList, "equal length", 1, avail)
		}
		if b.EqualLength, err = c.ReadU64LE(); err != nil {
			return nil, err
		}

		return b, nil
	}

	if int64(count) > avail {
		return nil, errFieldOverflow(IDDataList, "offsets", int(count), avail)
	}
	b.Offsets = make([]uint64, count)
	for i := range b.Offsets {
		if b.Offsets[i], err = c.ReadU64LE(); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// NextDataList returns the follow-up link for List.
func NextDataList(b *DataListBlock) Link { return b.Next }

func (b *DataListBlock) isDataRoot()    {}
func (b *DataListBlock) TypeID() TypeID { return IDDataList }

func (b *DataListBlock) Links() []Link {
	return append([]Link{b.Next}, b.Data...)
}

func (b *DataListBlock) BodyLength() int64 {
	if b.Flags.Has(DataListEqualLength) {
		return dataListFixedBody + 8
	}

	return dataListFixedBody + 8*int64(len(b.Data))
}

func (b *DataListBlock) EncodeBody(c *cursor.Cursor) error {
	if err := c.Write([]byte{uint8(b.Flags), 0, 0, 0}); err != nil {
		return err
	}
	if err := c.WriteU32LE(uint32(len(b.Data))); err != nil {
		return err
	}
	if b.Flags.Has(DataListEqualLength) {
		return c.WriteU64LE(b.EqualLength)
	}
	for i := range b.Data {
		var off uint64
		if i < len(b.Offsets) {
			off = b.Offsets[i]
		}
		if err := c.WriteU64LE(off); err != nil {
			return err
		}
	}

	return nil
}

// HeaderListBlock is a ##HL block announcing a list of ##DZ blocks.
type HeaderListBlock struct {
	FirstDataList Link

	Flags   HeaderListFlags
	ZipType format.ZipType
}

var _ Encoder = (*HeaderListBlock)(nil)

// ReadHeaderList parses a ##HL block.
func ReadHeaderList(c *cursor.Cursor) (*HeaderListBlock, error) {
	h, err := ReadHeaderExpecting(c, IDHeaderList, 1, 3)
	if err != nil {
		return nil, err
	}

	b := &HeaderListBlock{FirstDataList: h.Links[0]}
	flags, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	b.Flags = HeaderListFlags(flags)
	zt, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	b.ZipType = format.ZipType(zt)

	return b, nil
}

func (b *HeaderListBlock) isDataRoot()       {}
func (b *HeaderListBlock) TypeID() TypeID    { return IDHeaderList }
func (b *HeaderListBlock) Links() []Link     { return []Link{b.FirstDataList} }
func (b *HeaderListBlock) BodyLength() int64 { return headerListBodySize }

func (b *HeaderListBlock) EncodeBody(c *cursor.Cursor) error {
	if err := c.WriteU16LE(uint16(b.Flags)); err != nil {
		return err
	}
	if err := c.WriteU8(uint8(b.ZipType)); err != nil {
		return err
	}

	return c.WritePadding(headerListBodySize - 3)
}
