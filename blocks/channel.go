package blocks

import (
	"github.com/R1tschY/mdf4j-sub001/cursor"
	"github.com/R1tschY/mdf4j-sub001/format"
)

const (
	channelFixedLinks = 8
	channelBodySize   = 72
)

// ChannelBlock is a ##CN block describing one signal inside a record.
type ChannelBlock struct {
	Next        Link
	Component   Link
	Name        Link
	Source      Link
	Conversion  Link
	SignalData  Link
	Unit        Link
	Comment     Link
	Attachments []Link

	Type               format.ChannelType
	SyncType           format.SyncType
	DataType           format.ChannelDataType
	BitOffset          uint8
	ByteOffset         uint32
	BitCount           uint32
	Flags              ChannelFlags
	InvalidationBitPos uint32
	Precision          uint8
	ValueRangeMin      float64
	ValueRangeMax      float64
	LimitMin           float64
	LimitMax           float64
	ExtendedLimitMin   float64
	ExtendedLimitMax   float64
}

var _ Encoder = (*ChannelBlock)(nil)

// ReadChannel parses a ##CN block at the cursor position.
func ReadChannel(c *cursor.Cursor) (*ChannelBlock, error) {
	h, err := ReadHeaderExpecting(c, IDChannel, channelFixedLinks, channelBodySize)
	if err != nil {
		return nil, err
	}

	b := &ChannelBlock{
		Next:       h.Links[0],
		Component:  h.Links[1],
		Name:       h.Links[2],
		Source:     h.Links[3],
		Conversion: h.Links[4],
		SignalData: h.Links[5],
		Unit:       h.Links[6],
		Comment:    h.Links[7],
	}

	var head [4]byte
	if err := c.Read(head[:]); err != nil {
		return nil, err
	}
	b.Type = format.ChannelType(head[0])
	b.SyncType = format.SyncType(head[1])
	b.DataType = format.ChannelDataType(head[2])
	b.BitOffset = head[3]

	if b.ByteOffset, err = c.ReadU32LE(); err != nil {
		return nil, err
	}
	if b.BitCount, err = c.ReadU32LE(); err != nil {
		return nil, err
	}
	flags, err := c.ReadU32LE()
	if err != nil {
		return nil, err
	}
	b.Flags = ChannelFlags(flags)
	if b.InvalidationBitPos, err = c.ReadU32LE(); err != nil {
		return nil, err
	}
	if b.Precision, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if err := c.Skip(1); err != nil {
		return nil, err
	}
	attachmentCount, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}

	for _, dst := range []*float64{
		&b.ValueRangeMin, &b.ValueRangeMax,
		&b.LimitMin, &b.LimitMax,
		&b.ExtendedLimitMin, &b.ExtendedLimitMax,
	} {
		if *dst, err = c.ReadF64LE(); err != nil {
			return nil, err
		}
	}

	extra := h.Links[channelFixedLinks:]
	n := min(int(attachmentCount), len(extra))
	if n > 0 {
		b.Attachments = append([]Link(nil), extra[:n]...)
	}

	return b, nil
}

// NextChannel returns the follow-up link for List.
func NextChannel(b *ChannelBlock) Link { return b.Next }

// IsInvalidable reports whether the channel carries an invalidation bit.
func (b *ChannelBlock) IsInvalidable() bool {
	return b.Flags.Has(ChannelInvalidationBitValid)
}

func (b *ChannelBlock) TypeID() TypeID { return IDChannel }

func (b *ChannelBlock) Links() []Link {
	links := []Link{b.Next, b.Component, b.Name, b.Source, b.Conversion, b.SignalData, b.Unit, b.Comment}

	return append(links, b.Attachments...)
}

func (b *ChannelBlock) BodyLength() int64 { return channelBodySize }

func (b *ChannelBlock) EncodeBody(c *cursor.Cursor) error {
	head := []byte{uint8(b.Type), uint8(b.SyncType), uint8(b.DataType), b.BitOffset}
	if err := c.Write(head); err != nil {
		return err
	}
	if err := c.WriteU32LE(b.ByteOffset); err != nil {
		return err
	}
	if err := c.WriteU32LE(b.BitCount); err != nil {
		return err
	}
	if err := c.WriteU32LE(uint32(b.Flags)); err != nil {
		return err
	}
	if err := c.WriteU32LE(b.InvalidationBitPos); err != nil {
		return err
	}
	if err := c.Write([]byte{b.Precision, 0}); err != nil {
		return err
	}
	if err := c.WriteU16LE(uint16(len(b.Attachments))); err != nil {
		return err
	}

	for _, v := range []float64{
		b.ValueRangeMin, b.ValueRangeMax,
		b.LimitMin, b.LimitMax,
		b.ExtendedLimitMin, b.ExtendedLimitMax,
	} {
		if err := c.WriteF64LE(v); err != nil {
			return err
		}
	}

	return nil
}
