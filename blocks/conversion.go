package blocks

import (
	"github.com/R1tschY/mdf4j-sub001/cursor"
	"github.com/R1tschY/mdf4j-sub001/format"
)

const (
	conversionFixedLinks = 4
	conversionFixedBody  = 24
)

// ConversionBlock is a ##CC block mapping raw values to physical values.
type ConversionBlock struct {
	Name    Link
	Unit    Link
	Comment Link
	Inverse Link
	Refs    []Link // TX blocks or nested CC blocks, depending on Type

	Type      format.ConversionType
	Precision uint8
	Flags     ConversionFlags
	PhysMin   float64
	PhysMax   float64
	Values    []float64
}

var _ Encoder = (*ConversionBlock)(nil)

// ReadConversion parses a ##CC block at the cursor position.
func ReadConversion(c *cursor.Cursor) (*ConversionBlock, error) {
	h, err := ReadHeaderExpecting(c, IDConversion, conversionFixedLinks, conversionFixedBody)
	if err != nil {
		return nil, err
	}

	b := &ConversionBlock{
		Name:    h.Links[0],
		Unit:    h.Links[1],
		Comment: h.Links[2],
		Inverse: h.Links[3],
	}

	var head [2]byte
	if err := c.Read(head[:]); err != nil {
		return nil, err
	}
	b.Type = format.ConversionType(head[0])
	b.Precision = head[1]

	flags, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	b.Flags = ConversionFlags(flags)
	refCount, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	valCount, err := c.ReadU16LE()
	if err != nil {
		return nil, err
	}
	if b.PhysMin, err = c.ReadF64LE(); err != nil {
		return nil, err
	}
	if b.PhysMax, err = c.ReadF64LE(); err != nil {
		return nil, err
	}

	if int(valCount) > 0 {
		if avail := (h.BodyLength() - conversionFixedBody) / 8; int64(valCount) > avail {
			return nil, errFieldOverflow(IDConversion, "values", int(valCount), avail)
		}
		b.Values = make([]float64, valCount)
		for i := range b.Values {
			if b.Values[i], err = c.ReadF64LE(); err != nil {
				return nil, err
			}
		}
	}

	refs := h.Links[conversionFixedLinks:]
	if n := min(int(refCount), len(refs)); n > 0 {
		b.Refs = append([]Link(nil), refs[:n]...)
	}

	return b, nil
}

func (b *ConversionBlock) TypeID() TypeID { return IDConversion }

func (b *ConversionBlock) Links() []Link {
	return append([]Link{b.Name, b.Unit, b.Comment, b.Inverse}, b.Refs...)
}

func (b *ConversionBlock) BodyLength() int64 {
	return conversionFixedBody + 8*int64(len(b.Values))
}

func (b *ConversionBlock) EncodeBody(c *cursor.Cursor) error {
	if err := c.Write([]byte{uint8(b.Type), b.Precision}); err != nil {
		return err
	}
	if err := c.WriteU16LE(uint16(b.Flags)); err != nil {
		return err
	}
	if err := c.WriteU16LE(uint16(len(b.Refs))); err != nil {
		return err
	}
	if err := c.WriteU16LE(uint16(len(b.Values))); err != nil {
		return err
	}
	if err := c.WriteF64LE(b.PhysMin); err != nil {
		return err
	}
	if err := c.WriteF64LE(b.PhysMax); err != nil {
		return err
	}
	for _, v := range b.Values {
		if err := c.WriteF64LE(v); err != nil {
			return err
		}
	}

	return nil
}
