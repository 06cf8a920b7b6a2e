package blocks

import (
	"bytes"

	"github.com/R1tschY/mdf4j-sub001/cursor"
	"github.com/R1tschY/mdf4j-sub001/errs"
)

// TextBlock is a ##TX block or a ##MD block. Both carry a zero-terminated
// UTF-8 string; MD content is XML and is not interpreted here.
type TextBlock struct {
	ID   TypeID
	Text string
}

var _ Encoder = (*TextBlock)(nil)

// NewText returns a ##TX block.
func NewText(s string) *TextBlock {
	return &TextBlock{ID: IDText, Text: s}
}

// NewMetadata returns a ##MD block.
func NewMetadata(xml string) *TextBlock {
	return &TextBlock{ID: IDMetadata, Text: xml}
}

// ReadText parses a ##TX block.
func ReadText(c *cursor.Cursor) (*TextBlock, error) {
	return readTextLike(c, IDText)
}

// ReadMetadata parses a ##MD block.
func ReadMetadata(c *cursor.Cursor) (*TextBlock, error) {
	return readTextLike(c, IDMetadata)
}

// ReadTextOrMetadata parses either a ##TX or a ##MD block, as comment links
// may point to both.
func ReadTextOrMetadata(c *cursor.Cursor) (*TextBlock, error) {
	id, err := PeekTypeID(c)
	if err != nil {
		return nil, err
	}
	if id != IDText && id != IDMetadata {
		return nil, errs.Formatf("expected %s or %s block at offset %d, got %s", IDText, IDMetadata, c.Pos(), id)
	}

	return readTextLike(c, id)
}

func readTextLike(c *cursor.Cursor, id TypeID) (*TextBlock, error) {
	start := c.Pos()
	h, err := ReadHeaderExpecting(c, id, 0, 0)
	if err != nil {
		return nil, err
	}

	body, err := c.View(int(h.BodyLength()))
	if err != nil {
		return nil, err
	}
	end := bytes.IndexByte(body, 0)
	if end < 0 {
		return nil, errs.Formatf("%s block at offset %d: missing zero terminator", id, start)
	}

	return &TextBlock{ID: id, Text: string(body[:end])}, nil
}

func (b *TextBlock) String() string { return b.Text }

func (b *TextBlock) TypeID() TypeID {
	if b.ID == (TypeID{}) {
		return IDText
	}

	return b.ID
}

func (b *TextBlock) Links() []Link { return nil }

// BodyLength includes the terminator and pads to 8 bytes.
func (b *TextBlock) BodyLength() int64 {
	return AlignUp(int64(len(b.Text)) + 1)
}

func (b *TextBlock) EncodeBody(c *cursor.Cursor) error {
	if err := c.WriteString(b.Text, cursor.UTF8); err != nil {
		return err
	}

	return c.WritePadding(b.BodyLength() - int64(len(b.Text)))
}

// Alignment is the block alignment in bytes.
const Alignment = 8

// AlignUp rounds n up to the next multiple of Alignment.
func AlignUp(n int64) int64 {
	return (n + Alignment - 1) &^ (Alignment - 1)
}
