package mdf4

import (
	"testing"

	"github.com/R1tschY/mdf4j-sub001/blocks"
	"github.com/R1tschY/mdf4j-sub001/cursor"
	"github.com/R1tschY/mdf4j-sub001/format"
	"github.com/R1tschY/mdf4j-sub001/writer"
	"github.com/stretchr/testify/require"
)

type testChannel struct {
	name       string
	unit       string
	block      blocks.ChannelBlock
	conversion *blocks.ConversionBlock
	ccUnit     string
	members    []testChannel
}

type testGroup struct {
	name         string
	block        blocks.ChannelGroupBlock
	recordIDSize uint8
	channels     []testChannel
	data         func(t *testing.T, w *writer.Writer) blocks.Link
}

type testFile struct {
	comment     string
	groups      []testGroup
	unfinalized bool
}

// uintChannel is an unsigned little endian channel of bits width at byte
// offset off.
func uintChannel(name string, off uint32, bits uint32) testChannel {
	return testChannel{
		name: name,
		block: blocks.ChannelBlock{
			DataType:   format.DataUintLE,
			ByteOffset: off,
			BitCount:   bits,
		},
	}
}

func dataBlock(records ...byte) func(t *testing.T, w *writer.Writer) blocks.Link {
	return func(t *testing.T, w *writer.Writer) blocks.Link {
		l, err := w.WriteBlock(&blocks.DataBlock{Data: records})
		require.NoError(t, err)

		return l
	}
}

func (tf testFile) build(t *testing.T) []byte {
	t.Helper()

	buf := cursor.NewBuffer(nil)
	w, err := writer.CreateForMemory(buf, writer.WithProgramID("test"))
	require.NoError(t, err)
	require.NoError(t, w.WriteHeader(&blocks.HeaderBlock{}))

	hd := &blocks.HeaderBlock{StartTimeNs: 1_700_000_000_000_000_000}
	hd.Comment = writeText(t, w, tf.comment)

	var next blocks.Link
	for i := len(tf.groups) - 1; i >= 0; i-- {
		g := tf.groups[i]
		cg := g.block
		cg.AcquisitionName = writeText(t, w, g.name)
		cg.FirstChannel = writeChannels(t, w, g.channels)

		dg := &blocks.DataGroupBlock{RecordIDSize: g.recordIDSize}
		if g.data != nil {
			dg.Data = g.data(t, w)
		}
		dg.FirstChannelGroup, err = w.WriteBlock(&cg)
		require.NoError(t, err)
		dg.Next = next
		next, err = w.WriteBlock(dg)
		require.NoError(t, err)
	}
	hd.FirstDataGroup = next

	require.NoError(t, w.RewriteHeader(hd))
	if !tf.unfinalized {
		require.NoError(t, w.FinalizeFile())
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}

func writeText(t *testing.T, w *writer.Writer, s string) blocks.Link {
	t.Helper()
	if s == "" {
		return blocks.NilLink
	}

	l, err := w.WriteBlock(blocks.NewText(s))
	require.NoError(t, err)

	return l
}

// writeChannels writes the channels back to front so every next link is
// known, and returns the link of the first one.
func writeChannels(t *testing.T, w *writer.Writer, channels []testChannel) blocks.Link {
	t.Helper()

	var next blocks.Link
	for i := len(channels) - 1; i >= 0; i-- {
		tc := channels[i]
		cn := tc.block
		cn.Next = next
		cn.Name = writeText(t, w, tc.name)
		cn.Unit = writeText(t, w, tc.unit)
		cn.Component = writeChannels(t, w, tc.members)
		if tc.conversion != nil {
			cc := *tc.conversion
			cc.Unit = writeText(t, w, tc.ccUnit)
			var err error
			cn.Conversion, err = w.WriteBlock(&cc)
			require.NoError(t, err)
		}

		var err error
		next, err = w.WriteBlock(&cn)
		require.NoError(t, err)
	}

	return next
}

func openTest(t *testing.T, tf testFile, opts ...Option) *File {
	t.Helper()

	f, err := OpenBytes(tf.build(t), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	return f
}

// pairGroup has two u8 channels "a" and "b" and the records {1,2} {3,4} {5,6}.
func pairGroup() testGroup {
	return testGroup{
		name:     "pairs",
		block:    blocks.ChannelGroupBlock{CycleCount: 3, DataBytes: 2},
		channels: []testChannel{uintChannel("a", 0, 8), uintChannel("b", 1, 8)},
		data:     dataBlock(1, 2, 3, 4, 5, 6),
	}
}
