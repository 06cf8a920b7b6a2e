package mdf4

import (
	"errors"

	"github.com/R1tschY/mdf4j-sub001/de"
	"github.com/R1tschY/mdf4j-sub001/internal/collision"
)

var errNoFinish = errors.New("mdf4: factory without Finish function and different record types")

// RecordFactory shapes the records of a RecordReader.
//
// B is the mutable target the channel values are stored into, R the record
// returned to the caller. Both may be the same type.
type RecordFactory[B, R any] interface {
	// SelectGroup reports whether records of cg are wanted. The first
	// accepted channel group is read.
	SelectGroup(dg *DataGroup, cg *ChannelGroup) bool
	// SelectChannel returns the decode step storing values of ch into the
	// target, or nil to skip the channel.
	SelectChannel(ch *Channel) (de.DeserializeInto[B], error)
	// CreateRecord returns the target for the next record. It may return
	// the same target every time.
	CreateRecord() B
	// FinishRecord converts a filled target into the returned record.
	FinishRecord(b B) (R, error)
}

// Factory is a RecordFactory built from functions. A nil Group selects the
// first channel group. Channel and Create are required; a nil Finish is only
// allowed when B and R are the same type.
type Factory[B, R any] struct {
	Group   func(dg *DataGroup, cg *ChannelGroup) bool
	Channel func(ch *Channel) (de.DeserializeInto[B], error)
	Create  func() B
	Finish  func(b B) (R, error)
}

var _ RecordFactory[int, int] = Factory[int, int]{}

func (f Factory[B, R]) SelectGroup(dg *DataGroup, cg *ChannelGroup) bool {
	if f.Group == nil {
		return true
	}

	return f.Group(dg, cg)
}

func (f Factory[B, R]) SelectChannel(ch *Channel) (de.DeserializeInto[B], error) {
	return f.Channel(ch)
}

func (f Factory[B, R]) CreateRecord() B {
	return f.Create()
}

func (f Factory[B, R]) FinishRecord(b B) (R, error) {
	if f.Finish != nil {
		return f.Finish(b)
	}
	if r, ok := any(b).(R); ok {
		return r, nil
	}

	var zero R
	return zero, errNoFinish
}

// SelectByName returns a channel selector for Factory that binds the named
// channels and skips all others. An invalid name such as "" fails the first
// selection.
func SelectByName[B any](binds map[string]de.DeserializeInto[B]) func(ch *Channel) (de.DeserializeInto[B], error) {
	index := collision.NewIndex[de.DeserializeInto[B]](len(binds))
	var err error
	for name, into := range binds {
		if err = index.Add(name, into); err != nil {
			break
		}
	}

	return func(ch *Channel) (de.DeserializeInto[B], error) {
		if err != nil {
			return nil, err
		}
		name, err := ch.Name()
		if err != nil {
			return nil, err
		}
		into, _ := index.Lookup(name)

		return into, nil
	}
}

// SelectAll returns a channel selector for Factory that binds every channel
// with the decode step returned by bind.
func SelectAll[B any](bind func(ch *Channel) de.DeserializeInto[B]) func(ch *Channel) (de.DeserializeInto[B], error) {
	return func(ch *Channel) (de.DeserializeInto[B], error) {
		return bind(ch), nil
	}
}
