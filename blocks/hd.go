package blocks

import (
	"time"

	"github.com/R1tschY/mdf4j-sub001/cursor"
)

const headerBodySize = 32

// HeaderBlock is the ##HD file header, located right after the
// identification block.
type HeaderBlock struct {
	FirstDataGroup   Link
	FileHistory      Link
	ChannelHierarchy Link
	Attachment       Link
	Event            Link
	Comment          Link

	StartTimeNs   int64 // nanoseconds since the Unix epoch
	TZOffsetMin   int16
	DSTOffsetMin  int16
	TimeFlags     TimeFlags
	TimeClass     uint8
	Flags         uint8
	StartAngle    float64 // radians
	StartDistance float64 // meters
}

var _ Encoder = (*HeaderBlock)(nil)

// ReadHeaderBlock parses a ##HD block at the cursor position.
func ReadHeaderBlock(c *cursor.Cursor) (*HeaderBlock, error) {
	h, err := ReadHeaderExpecting(c, IDHeader, 6, headerBodySize)
	if err != nil {
		return nil, err
	}

	b := &HeaderBlock{
		FirstDataGroup:   h.Links[0],
		FileHistory:      h.Links[1],
		ChannelHierarchy: h.Links[2],
		Attachment:       h.Links[3],
		Event:            h.Links[4],
		Comment:          h.Links[5],
	}

	if b.StartTimeNs, err = c.ReadI64LE(); err != nil {
		return nil, err
	}
	if b.TZOffsetMin, err = c.ReadI16LE(); err != nil {
		return nil, err
	}
	if b.DSTOffsetMin, err = c.ReadI16LE(); err != nil {
		return nil, err
	}
	tf, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	b.TimeFlags = TimeFlags(tf)
	if b.TimeClass, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if b.Flags, err = c.ReadU8(); err != nil {
		return nil, err
	}
	if err := c.Skip(1); err != nil {
		return nil, err
	}
	if b.StartAngle, err = c.ReadF64LE(); err != nil {
		return nil, err
	}
	if b.StartDistance, err = c.ReadF64LE(); err != nil {
		return nil, err
	}

	return b, nil
}

// StartTime returns the recording start. With valid offsets the result is in
// the recorded zone, otherwise in UTC.
func (b *HeaderBlock) StartTime() time.Time {
	t := time.Unix(0, b.StartTimeNs).UTC()
	if b.TimeFlags.Has(TimeOffsetsValid) {
		offset := (int(b.TZOffsetMin) + int(b.DSTOffsetMin)) * 60
		t = t.In(time.FixedZone("", offset))
	}

	return t
}

func (b *HeaderBlock) TypeID() TypeID { return IDHeader }

func (b *HeaderBlock) Links() []Link {
	return []Link{b.FirstDataGroup, b.FileHistory, b.ChannelHierarchy, b.Attachment, b.Event, b.Comment}
}

func (b *HeaderBlock) BodyLength() int64 { return headerBodySize }

func (b *HeaderBlock) EncodeBody(c *cursor.Cursor) error {
	if err := c.WriteI64LE(b.StartTimeNs); err != nil {
		return err
	}
	if err := c.WriteI16LE(b.TZOffsetMin); err != nil {
		return err
	}
	if err := c.WriteI16LE(b.DSTOffsetMin); err != nil {
		return err
	}
	if err := c.Write([]byte{uint8(b.TimeFlags), b.TimeClass, b.Flags, 0}); err != nil {
		return err
	}
	if err := c.WriteF64LE(b.StartAngle); err != nil {
		return err
	}

	return c.WriteF64LE(b.StartDistance)
}
