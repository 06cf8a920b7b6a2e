package mdf4

import (
	"fmt"
	"iter"

	"github.com/R1tschY/mdf4j-sub001/blocks"
	"github.com/R1tschY/mdf4j-sub001/datatype"
	"github.com/R1tschY/mdf4j-sub001/errs"
	"github.com/R1tschY/mdf4j-sub001/internal/read"
)

// DataGroup is a data group of a file: a block of records of one or more
// channel groups.
type DataGroup struct {
	f     *File
	Block *blocks.DataGroupBlock
}

// Comment returns the data group comment, empty if there is none.
func (dg *DataGroup) Comment() (string, error) {
	return dg.f.text(dg.Block.Comment)
}

// ChannelGroups iterates the channel groups of dg in file order.
func (dg *DataGroup) ChannelGroups() iter.Seq2[*ChannelGroup, error] {
	return func(yield func(*ChannelGroup, error) bool) {
		for cg, err := range blocks.List(dg.f.c, dg.Block.FirstChannelGroup, blocks.ReadChannelGroup, blocks.NextChannelGroup, dg.f.cfg.maxListLength) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(&ChannelGroup{dg: dg, Block: cg}, nil) {
				return
			}
		}
	}
}

// ChannelGroup is a set of channels sharing one record layout.
type ChannelGroup struct {
	dg    *DataGroup
	Block *blocks.ChannelGroupBlock
}

// DataGroup returns the data group cg belongs to.
func (cg *ChannelGroup) DataGroup() *DataGroup {
	return cg.dg
}

// Name returns the acquisition name, empty if there is none.
func (cg *ChannelGroup) Name() (string, error) {
	return cg.dg.f.text(cg.Block.AcquisitionName)
}

func (cg *ChannelGroup) Comment() (string, error) {
	return cg.dg.f.text(cg.Block.Comment)
}

// CycleCount is the number of records the group header announces.
func (cg *ChannelGroup) CycleCount() uint64 {
	return cg.Block.CycleCount
}

// RecordSize is the length of one record in bytes, including record id and
// invalidation bytes.
func (cg *ChannelGroup) RecordSize() int {
	return cg.layout().RecordSize()
}

func (cg *ChannelGroup) layout() read.Layout {
	return read.NewLayout(cg.dg.Block, cg.Block)
}

// Channels iterates the top level channels of cg in file order.
func (cg *ChannelGroup) Channels() iter.Seq2[*Channel, error] {
	return channelList(cg, nil, cg.Block.FirstChannel)
}

func channelList(cg *ChannelGroup, parent *Channel, first blocks.Link) iter.Seq2[*Channel, error] {
	f := cg.dg.f
	return func(yield func(*Channel, error) bool) {
		for cn, err := range blocks.List(f.c, first, blocks.ReadChannel, blocks.NextChannel, f.cfg.maxListLength) {
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(&Channel{cg: cg, parent: parent, Block: cn}, nil) {
				return
			}
		}
	}
}

// Channel is one signal of a channel group.
type Channel struct {
	cg     *ChannelGroup
	parent *Channel
	name   *string
	Block  *blocks.ChannelBlock
}

// Group returns the channel group ch belongs to.
func (ch *Channel) Group() *ChannelGroup {
	return ch.cg
}

// Parent returns the struct channel ch is a member of, nil for top level
// channels.
func (ch *Channel) Parent() *Channel {
	return ch.parent
}

// Name returns the channel name. The name is resolved once and cached.
func (ch *Channel) Name() (string, error) {
	if ch.name != nil {
		return *ch.name, nil
	}

	name, err := ch.cg.dg.f.text(ch.Block.Name)
	if err != nil {
		return "", err
	}
	ch.name = &name

	return name, nil
}

// Unit returns the physical unit of the channel values. A unit on the
// conversion takes precedence over the unit of the channel.
func (ch *Channel) Unit() (string, error) {
	f := ch.cg.dg.f
	cc, ok, err := ch.Conversion()
	if err != nil {
		return "", err
	}
	if ok && !cc.Unit.IsNil() {
		return f.text(cc.Unit)
	}

	return f.text(ch.Block.Unit)
}

func (ch *Channel) Comment() (string, error) {
	return ch.cg.dg.f.text(ch.Block.Comment)
}

// Conversion resolves the conversion rule of the channel. ok is false when
// the channel has none.
func (ch *Channel) Conversion() (cc *blocks.ConversionBlock, ok bool, err error) {
	return blocks.Resolve(ch.cg.dg.f.c, ch.Block.Conversion, blocks.ReadConversion)
}

// IsStruct reports whether the channel is composed of member channels.
func (ch *Channel) IsStruct() (bool, error) {
	if ch.Block.Component.IsNil() {
		return false, nil
	}

	c := ch.cg.dg.f.c
	if err := c.Seek(ch.Block.Component.Offset()); err != nil {
		return false, err
	}
	id, err := blocks.PeekTypeID(c)
	if err != nil {
		return false, err
	}
	if id != blocks.IDChannel {
		return false, errs.NotImplementedf("channel component of type %s", id)
	}

	return true, nil
}

// Members iterates the member channels of a struct channel.
func (ch *Channel) Members() iter.Seq2[*Channel, error] {
	return func(yield func(*Channel, error) bool) {
		isStruct, err := ch.IsStruct()
		if err != nil {
			yield(nil, err)
			return
		}
		if !isStruct {
			return
		}
		for m, err := range channelList(ch.cg, ch, ch.Block.Component) {
			if !yield(m, err) || err != nil {
				return
			}
		}
	}
}

// RawType returns the type of the stored channel values.
func (ch *Channel) RawType() (datatype.Type, error) {
	return datatype.OfChannel(ch.Block)
}

// DataType returns the type of the values a record reader delivers for the
// channel: the raw type, float64 after a numeric conversion, or a struct of
// the member types.
func (ch *Channel) DataType() (datatype.Type, error) {
	rc, err := ch.resolve(0)
	if err != nil {
		return nil, err
	}

	return read.TypeOf(rc)
}

// maxStructDepth bounds the nesting of struct channels.
const maxStructDepth = 32

// resolve loads everything decoding the channel depends on.
func (ch *Channel) resolve(depth int) (*read.Channel, error) {
	if depth > maxStructDepth {
		return nil, errs.Formatf("struct channels nested deeper than %d levels", maxStructDepth)
	}

	name, err := ch.Name()
	if err != nil {
		return nil, err
	}

	rc := &read.Channel{Name: name, Block: ch.Block}
	if rc.Conversion, _, err = ch.Conversion(); err != nil {
		return nil, err
	}

	members, err := blocks.Collect(ch.Members())
	if err != nil {
		return nil, fmt.Errorf("members of channel %q: %w", name, err)
	}
	for _, m := range members {
		rm, err := m.resolve(depth + 1)
		if err != nil {
			return nil, err
		}
		rc.Members = append(rc.Members, rm)
	}

	return rc, nil
}
