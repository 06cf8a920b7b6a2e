package blocks

import (
	"github.com/R1tschY/mdf4j-sub001/cursor"
)

const (
	dataGroupBodySize    = 8
	channelGroupBodySize = 32
)

// DataGroupBlock is a ##DG block: one physical record layout.
type DataGroupBlock struct {
	Next              Link
	FirstChannelGroup Link
	Data              Link
	Comment           Link

	RecordIDSize uint8 // bytes of record id prefixed to each record, 0 for sorted data
}

var _ Encoder = (*DataGroupBlock)(nil)

// ReadDataGroup parses a ##DG block at the cursor position.
func ReadDataGroup(c *cursor.Cursor) (*DataGroupBlock, error) {
	h, err := ReadHeaderExpecting(c, IDDataGroup, 4, 1)
	if err != nil {
		return nil, err
	}

	b := &DataGroupBlock{
		Next:              h.Links[0],
		FirstChannelGroup: h.Links[1],
		Data:              h.Links[2],
		Comment:           h.Links[3],
	}
	if b.RecordIDSize, err = c.ReadU8(); err != nil {
		return nil, err
	}

	return b, nil
}

// NextDataGroup returns the follow-up link for List.
func NextDataGroup(b *DataGroupBlock) Link { return b.Next }

func (b *DataGroupBlock) TypeID() TypeID { return IDDataGroup }

func (b *DataGroupBlock) Links() []Link {
	return []Link{b.Next, b.FirstChannelGroup, b.Data, b.Comment}
}

func (b *DataGroupBlock) BodyLength() int64 { return dataGroupBodySize }

func (b *DataGroupBlock) EncodeBody(c *cursor.Cursor) error {
	if err := c.WriteU8(b.RecordIDSize); err != nil {
		return err
	}

	return c.WritePadding(dataGroupBodySize - 1)
}

// ChannelGroupBlock is a ##CG block: a set of channels sharing one record
// layout.
type ChannelGroupBlock struct {
	Next              Link
	FirstChannel      Link
	AcquisitionName   Link
	AcquisitionSource Link
	SampleReduction   Link
	Comment           Link

	RecordID          uint64
	CycleCount        uint64
	Flags             ChannelGroupFlags
	PathSeparator     uint16
	DataBytes         uint32
	InvalidationBytes uint32
}

var _ Encoder = (*ChannelGroupBlock)(nil)

// ReadChannelGroup parses a ##CG block at the cursor position.
func ReadChannelGroup(c *cursor.Cursor) (*ChannelGroupBlock, error) {
	h, err := ReadHeaderExpecting(c, IDChannelGroup, 6, channelGroupBodySize)
	if err != nil {
		return nil, err
	}

	b := &ChannelGroupBlock{
		Next:              h.Links[0],
		FirstChannel:      h.Links[1],
		AcquisitionName:   h.Links[2],
		AcquisitionSource: h.Links[3],
		SampleReduction:   h.Links[4],
		Comment:           h.Links[5],
	}
	if b.RecordID, err = c.ReadU64LE(); err != nil {
		return nil, err
	}
	if b.CycleCount, err = c.ReadU64LE(); err != nil {
		return nil, err
	}
	flags, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	b.Flags = ChannelGroupFlags(flags)
	if b.PathSeparator, err = c.ReadU16LE(); err != nil {
		return nil, err
	}
	if err := c.Skip(4); err != nil {
		return nil, err
	}
	if b.DataBytes, err = c.ReadU32LE(); err != nil {
		return nil, err
	}
	if b.InvalidationBytes, err = c.ReadU32LE(); err != nil {
		return nil, err
	}

	return b, nil
}

// NextChannelGroup returns the follow-up link for List.
func NextChannelGroup(b *ChannelGroupBlock) Link { return b.Next }

func (b *ChannelGroupBlock) TypeID() TypeID { return IDChannelGroup }

func (b *ChannelGroupBlock) Links() []Link {
	return []Link{b.Next, b.FirstChannel, b.AcquisitionName, b.AcquisitionSource, b.SampleReduction, b.Comment}
}

func (b *ChannelGroupBlock) BodyLength() int64 { return channelGroupBodySize }

func (b *ChannelGroupBlock) EncodeBody(c *cursor.Cursor) error {
	if err := c.WriteU64LE(b.RecordID); err != nil {
		return err
	}
	if err := c.WriteU64LE(b.CycleCount); err != nil {
		return err
	}
	if err := c.WriteU16LE(uint16(b.Flags)); err != nil {
		return err
	}
	if err := c.WriteU16LE(b.PathSeparator); err != nil {
		return err
	}
	if err := c.WritePadding(4); err != nil {
		return err
	}
	if err := c.WriteU32LE(b.DataBytes); err != nil {
		return err
	}

	return c.WriteU32LE(b.InvalidationBytes)
}
