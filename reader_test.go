package mdf4

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/R1tschY/mdf4j-sub001/blocks"
	"github.com/R1tschY/mdf4j-sub001/de"
	"github.com/R1tschY/mdf4j-sub001/errs"
	"github.com/R1tschY/mdf4j-sub001/format"
	"github.com/R1tschY/mdf4j-sub001/internal/collision"
	"github.com/R1tschY/mdf4j-sub001/internal/logger"
	"github.com/R1tschY/mdf4j-sub001/writer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct {
	A, B uint64
}

func pairFactory() Factory[*pair, pair] {
	return Factory[*pair, pair]{
		Channel: SelectByName(map[string]de.DeserializeInto[*pair]{
			"a": de.IntoUint64(func(p *pair, v uint64) { p.A = v }),
			"b": de.IntoUint64(func(p *pair, v uint64) { p.B = v }),
		}),
		Create: func() *pair { return &pair{} },
		Finish: func(p *pair) (pair, error) { return *p, nil },
	}
}

type row = map[string]any

// rowFactory reads every channel of the first group into a map by name.
func rowFactory() Factory[row, row] {
	return Factory[row, row]{
		Channel: func(ch *Channel) (de.DeserializeInto[row], error) {
			name, err := ch.Name()
			if err != nil {
				return nil, err
			}

			return de.IntoAny(func(r row, v any) { r[name] = v }), nil
		},
		Create: func() row { return row{} },
	}
}

func readAll[B, R any](t *testing.T, f *File, factory RecordFactory[B, R]) []R {
	t.Helper()

	r, err := NewRecordReader(f, factory)
	require.NoError(t, err)
	defer r.Close()

	var out []R
	for rec, err := range r.All() {
		require.NoError(t, err)
		out = append(out, rec)
	}

	return out
}

func newLogger(t *testing.T) (*bytes.Buffer, Option) {
	t.Helper()

	var buf bytes.Buffer
	l, err := logger.New(&buf, logger.FormatJSON, slog.LevelDebug)
	require.NoError(t, err)

	return &buf, WithLogger(l)
}

func TestRecordReader(t *testing.T) {
	t.Run("two int32 signals", func(t *testing.T) {
		type signals struct {
			S1, S2 int64
		}
		int32Channel := func(name string, off uint32) testChannel {
			return testChannel{name: name, block: blocks.ChannelBlock{DataType: format.DataIntLE, ByteOffset: off, BitCount: 32}}
		}
		f := openTest(t, testFile{groups: []testGroup{{
			name:     "signals",
			block:    blocks.ChannelGroupBlock{CycleCount: 3, DataBytes: 8},
			channels: []testChannel{int32Channel("signal1", 0), int32Channel("signal2", 4)},
			data: dataBlock(
				1, 0, 0, 0, 2, 0, 0, 0,
				3, 0, 0, 0, 4, 0, 0, 0,
				5, 0, 0, 0, 6, 0, 0, 0,
			),
		}}})

		factory := Factory[*signals, signals]{
			Channel: SelectByName(map[string]de.DeserializeInto[*signals]{
				"signal1": de.IntoInt64(func(s *signals, v int64) { s.S1 = v }),
				"signal2": de.IntoInt64(func(s *signals, v int64) { s.S2 = v }),
			}),
			Create: func() *signals { return &signals{} },
			Finish: func(s *signals) (signals, error) { return *s, nil },
		}

		assert.Equal(t, []signals{{1, 2}, {3, 4}, {5, 6}}, readAll(t, f, factory))
		assert.Equal(t, []row{
			{"signal1": int32(1), "signal2": int32(2)},
			{"signal1": int32(3), "signal2": int32(4)},
			{"signal1": int32(5), "signal2": int32(6)},
		}, readAll(t, f, rowFactory()))
	})

	t.Run("pairs", func(t *testing.T) {
		f := openTest(t, testFile{groups: []testGroup{pairGroup()}})

		r, err := NewRecordReader(f, pairFactory())
		require.NoError(t, err)
		defer r.Close()

		assert.Equal(t, uint64(3), r.Size())
		assert.Len(t, r.Channels(), 2)
		assert.Equal(t, "pairs", mustName(t, r.Group()))

		var got []pair
		for r.HasNext() {
			p, err := r.Next()
			require.NoError(t, err)
			got = append(got, p)
		}
		assert.Equal(t, []pair{{1, 2}, {3, 4}, {5, 6}}, got)
		assert.Zero(t, r.Remaining())

		_, err = r.Next()
		require.ErrorIs(t, err, errs.ErrNoMoreRecords)
	})

	t.Run("next into reused target", func(t *testing.T) {
		f := openTest(t, testFile{groups: []testGroup{pairGroup()}})

		r, err := NewRecordReader(f, pairFactory())
		require.NoError(t, err)
		defer r.Close()

		var p pair
		require.NoError(t, r.NextInto(&p))
		require.NoError(t, r.NextInto(&p))
		assert.Equal(t, pair{3, 4}, p)
		assert.Equal(t, uint64(1), r.Remaining())
	})

	t.Run("subset of channels", func(t *testing.T) {
		f := openTest(t, testFile{groups: []testGroup{pairGroup()}})

		factory := Factory[*pair, pair]{
			Channel: SelectByName(map[string]de.DeserializeInto[*pair]{
				"b": de.IntoUint64(func(p *pair, v uint64) { p.B = v }),
			}),
			Create: func() *pair { return &pair{} },
			Finish: func(p *pair) (pair, error) { return *p, nil },
		}
		assert.Equal(t, []pair{{0, 2}, {0, 4}, {0, 6}}, readAll(t, f, factory))
	})

	t.Run("early stop", func(t *testing.T) {
		f := openTest(t, testFile{groups: []testGroup{pairGroup()}})

		r, err := NewRecordReader(f, pairFactory())
		require.NoError(t, err)
		defer r.Close()

		for p, err := range r.All() {
			require.NoError(t, err)
			assert.Equal(t, pair{1, 2}, p)
			break
		}
		assert.Equal(t, uint64(2), r.Remaining())
	})

	t.Run("closed", func(t *testing.T) {
		f := openTest(t, testFile{groups: []testGroup{pairGroup()}})

		r, err := NewRecordReader(f, pairFactory())
		require.NoError(t, err)
		require.NoError(t, r.Close())
		require.NoError(t, r.Close())

		assert.False(t, r.HasNext())
		require.ErrorIs(t, r.NextInto(&pair{}), errs.ErrClosed)
	})

	t.Run("no data", func(t *testing.T) {
		g := pairGroup()
		g.data = nil
		g.block.CycleCount = 0
		f := openTest(t, testFile{groups: []testGroup{g}})

		assert.Empty(t, readAll(t, f, pairFactory()))
	})
}

func TestRecordReaderErrors(t *testing.T) {
	t.Run("partial record", func(t *testing.T) {
		g := pairGroup()
		g.data = dataBlock(1, 2, 3, 4, 5, 6, 7)
		f := openTest(t, testFile{groups: []testGroup{g}})

		_, err := NewRecordReader(f, pairFactory())
		require.ErrorIs(t, err, errs.ErrFormat)
	})

	t.Run("data for empty records", func(t *testing.T) {
		g := pairGroup()
		g.block.DataBytes = 0
		g.channels = nil
		f := openTest(t, testFile{groups: []testGroup{g}})

		_, err := NewRecordReader(f, pairFactory())
		require.ErrorIs(t, err, errs.ErrFormat)
	})

	t.Run("no group selected", func(t *testing.T) {
		f := openTest(t, testFile{groups: []testGroup{pairGroup()}})

		factory := pairFactory()
		factory.Group = func(*DataGroup, *ChannelGroup) bool { return false }
		_, err := NewRecordReader(f, factory)
		require.ErrorIs(t, err, errs.ErrChannelGroupNotFound)
	})

	t.Run("unsorted data group", func(t *testing.T) {
		g := pairGroup()
		g.recordIDSize = 1
		f := openTest(t, testFile{groups: []testGroup{g}})

		_, err := NewRecordReader(f, pairFactory())
		require.ErrorIs(t, err, errs.ErrNotImplemented)
	})

	t.Run("rejected value", func(t *testing.T) {
		f := openTest(t, testFile{groups: []testGroup{pairGroup()}})

		factory := Factory[*pair, pair]{
			Channel: SelectByName(map[string]de.DeserializeInto[*pair]{
				"a": de.IntoUint64(func(p *pair, v uint64) { p.A = v }),
				"b": de.IntoString(func(*pair, string) {}),
			}),
			Create: func() *pair { return &pair{} },
			Finish: func(p *pair) (pair, error) { return *p, nil },
		}
		r, err := NewRecordReader(f, factory)
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Next()
		require.ErrorIs(t, err, errs.ErrInvalidType)
		assert.Contains(t, err.Error(), `record 0, channel "b"`)

		_, err = r.Next()
		require.ErrorIs(t, err, errs.ErrInvalidType)
		assert.Contains(t, err.Error(), "record 1")
	})

	t.Run("empty channel name", func(t *testing.T) {
		f := openTest(t, testFile{groups: []testGroup{pairGroup()}})

		factory := pairFactory()
		factory.Channel = SelectByName(map[string]de.DeserializeInto[*pair]{"": de.Skip[*pair]()})
		_, err := NewRecordReader(f, factory)
		require.ErrorIs(t, err, collision.ErrEmptyName)
	})

	t.Run("record spanning a corrupt block", func(t *testing.T) {
		g := pairGroup()
		g.block.CycleCount = 2
		g.data = func(t *testing.T, w *writer.Writer) blocks.Link {
			head := dataBlock(1, 2, 3)(t, w)
			tail, err := w.WriteBlock(&blocks.DataZippedBlock{
				OriginalType:   blocks.IDData.Short(),
				OriginalLength: 1,
				Data:           []byte("garbage"),
			})
			require.NoError(t, err)
			l, err := w.WriteBlock(&blocks.DataListBlock{Data: []blocks.Link{head, tail}, Offsets: []uint64{0, 3}})
			require.NoError(t, err)

			return l
		}
		f := openTest(t, testFile{groups: []testGroup{g}})

		r, err := NewRecordReader(f, pairFactory())
		require.NoError(t, err)
		defer r.Close()

		p, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, pair{1, 2}, p)

		for range 2 {
			_, err = r.Next()
			require.ErrorIs(t, err, errs.ErrFormat)
			assert.Contains(t, err.Error(), "record 1")
			assert.Equal(t, uint64(1), r.Remaining())
			assert.Equal(t, int64(2), r.stream.Pos())
		}
	})

	t.Run("missing finish", func(t *testing.T) {
		f := openTest(t, testFile{groups: []testGroup{pairGroup()}})

		factory := pairFactory()
		factory.Finish = nil
		r, err := NewRecordReader(f, factory)
		require.NoError(t, err)
		defer r.Close()

		_, err = r.Next()
		require.ErrorIs(t, err, errNoFinish)
	})
}

func TestGroupSelection(t *testing.T) {
	second := pairGroup()
	second.name = "second"
	second.data = dataBlock(7, 8)
	second.block.CycleCount = 1
	f := openTest(t, testFile{groups: []testGroup{pairGroup(), second}})

	factory := pairFactory()
	factory.Group = func(_ *DataGroup, cg *ChannelGroup) bool {
		name, err := cg.Name()
		return err == nil && name == "second"
	}
	assert.Equal(t, []pair{{7, 8}}, readAll(t, f, factory))
}

func TestRecordReaderLogging(t *testing.T) {
	t.Run("skipped channel", func(t *testing.T) {
		g := pairGroup()
		g.block.DataBytes = 10
		g.data = dataBlock(make([]byte, 30)...)
		g.channels = append(g.channels, testChannel{
			name:  "z",
			block: blocks.ChannelBlock{DataType: format.DataComplexLE, ByteOffset: 2, BitCount: 64},
		})
		out, opt := newLogger(t)
		f := openTest(t, testFile{groups: []testGroup{g}}, opt)

		r, err := NewRecordReader(f, rowFactory())
		require.NoError(t, err)
		defer r.Close()

		assert.Len(t, r.Channels(), 2)
		rec, err := r.Next()
		require.NoError(t, err)
		assert.Equal(t, row{"a": uint8(0), "b": uint8(0)}, rec)

		assert.Contains(t, out.String(), `"msg":"opened MDF file"`)
		assert.Contains(t, out.String(), `"msg":"skipping channel"`)
		assert.Contains(t, out.String(), `"channel":"z"`)
	})

	t.Run("cycle count mismatch", func(t *testing.T) {
		g := pairGroup()
		g.block.CycleCount = 5
		out, opt := newLogger(t)
		f := openTest(t, testFile{groups: []testGroup{g}}, opt)

		assert.Len(t, readAll(t, f, pairFactory()), 3)
		assert.Contains(t, out.String(), "record count does not match cycle count")
	})
}

func TestChannelDecoding(t *testing.T) {
	t.Run("invalidation", func(t *testing.T) {
		ch := uintChannel("v", 0, 8)
		ch.block.Flags = blocks.ChannelInvalidationBitValid
		ch.block.InvalidationBitPos = 1
		f := openTest(t, testFile{groups: []testGroup{{
			block:    blocks.ChannelGroupBlock{CycleCount: 3, DataBytes: 1, InvalidationBytes: 1},
			channels: []testChannel{ch},
			data:     dataBlock(10, 0b00, 20, 0b10, 30, 0b01),
		}}})

		assert.Equal(t, []row{{"v": uint8(10)}, {"v": nil}, {"v": uint8(30)}}, readAll(t, f, rowFactory()))
	})

	t.Run("linear conversion", func(t *testing.T) {
		ch := uintChannel("v", 0, 8)
		ch.conversion = &blocks.ConversionBlock{Type: format.ConversionLinear, Values: []float64{1, 0.5}}
		f := openTest(t, testFile{groups: []testGroup{{
			block:    blocks.ChannelGroupBlock{CycleCount: 2, DataBytes: 1},
			channels: []testChannel{ch},
			data:     dataBlock(2, 4),
		}}})

		assert.Equal(t, []row{{"v": 2.0}, {"v": 3.0}}, readAll(t, f, rowFactory()))
	})

	t.Run("virtual master", func(t *testing.T) {
		f := openTest(t, testFile{groups: []testGroup{{
			block: blocks.ChannelGroupBlock{CycleCount: 3, DataBytes: 1},
			channels: []testChannel{
				{name: "t", block: blocks.ChannelBlock{Type: format.ChannelVirtualMaster, SyncType: format.SyncTime}},
				uintChannel("v", 0, 8),
			},
			data: dataBlock(7, 8, 9),
		}}})

		assert.Equal(t, []row{
			{"t": uint64(0), "v": uint8(7)},
			{"t": uint64(1), "v": uint8(8)},
			{"t": uint64(2), "v": uint8(9)},
		}, readAll(t, f, rowFactory()))
	})

	t.Run("struct", func(t *testing.T) {
		f := openTest(t, testFile{groups: []testGroup{{
			block: blocks.ChannelGroupBlock{CycleCount: 1, DataBytes: 3},
			channels: []testChannel{{
				name:  "s",
				block: blocks.ChannelBlock{DataType: format.DataByteArray, ByteOffset: 1, BitCount: 16},
				members: []testChannel{
					uintChannel("lo", 0, 8),
					uintChannel("hi", 1, 8),
				},
			}},
			data: dataBlock(0xff, 1, 2),
		}}})

		assert.Equal(t, []row{{"s": []any{uint8(1), uint8(2)}}}, readAll(t, f, rowFactory()))
	})

	t.Run("big endian bit field", func(t *testing.T) {
		f := openTest(t, testFile{groups: []testGroup{{
			block: blocks.ChannelGroupBlock{CycleCount: 1, DataBytes: 2},
			channels: []testChannel{{
				name:  "v",
				block: blocks.ChannelBlock{DataType: format.DataIntBE, BitOffset: 4, BitCount: 8},
			}},
			data: dataBlock(0x0f, 0xe0),
		}}})

		assert.Equal(t, []row{{"v": int8(-2)}}, readAll(t, f, rowFactory()))
	})
}

func TestDataRoots(t *testing.T) {
	want := []pair{{1, 2}, {3, 4}, {5, 6}}

	dz := func(t *testing.T, w *writer.Writer, zt format.ZipType, raw ...byte) blocks.Link {
		b, err := blocks.NewDataZipped(blocks.IDData, zt, 2, raw)
		require.NoError(t, err)
		l, err := w.WriteBlock(b)
		require.NoError(t, err)

		return l
	}

	tests := []struct {
		name string
		data func(t *testing.T, w *writer.Writer) blocks.Link
	}{
		{"deflate", func(t *testing.T, w *writer.Writer) blocks.Link {
			return dz(t, w, format.ZipDeflate, 1, 2, 3, 4, 5, 6)
		}},
		{"transposition", func(t *testing.T, w *writer.Writer) blocks.Link {
			return dz(t, w, format.ZipTranspositionDeflate, 1, 2, 3, 4, 5, 6)
		}},
		{"data list", func(t *testing.T, w *writer.Writer) blocks.Link {
			first := dataBlock(1, 2)(t, w)
			second := dz(t, w, format.ZipDeflate, 3, 4, 5, 6)
			l, err := w.WriteBlock(&blocks.DataListBlock{
				Data:    []blocks.Link{first, second},
				Offsets: []uint64{0, 2},
			})
			require.NoError(t, err)

			return l
		}},
		{"header list", func(t *testing.T, w *writer.Writer) blocks.Link {
			tail := dataBlock(5, 6)(t, w)
			next, err := w.WriteBlock(&blocks.DataListBlock{Data: []blocks.Link{tail}, Offsets: []uint64{4}})
			require.NoError(t, err)
			head := dz(t, w, format.ZipTranspositionDeflate, 1, 2, 3, 4)
			dl, err := w.WriteBlock(&blocks.DataListBlock{Next: next, Data: []blocks.Link{head}, Offsets: []uint64{0}})
			require.NoError(t, err)
			hl, err := w.WriteBlock(&blocks.HeaderListBlock{FirstDataList: dl, ZipType: format.ZipTranspositionDeflate})
			require.NoError(t, err)

			return hl
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := pairGroup()
			g.data = tt.data
			f := openTest(t, testFile{groups: []testGroup{g}})

			assert.Equal(t, want, readAll(t, f, pairFactory()))
		})
	}
}

// countingGroup holds n records of a virtual master "t" and a u8 "v" equal to
// the record index, spread over a DT, a transposed DZ and another DT block.
func countingGroup(n int) testGroup {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	a, b := n/3, 2*n/3

	return testGroup{
		name:  "counting",
		block: blocks.ChannelGroupBlock{CycleCount: uint64(n), DataBytes: 1},
		channels: []testChannel{
			{name: "t", block: blocks.ChannelBlock{Type: format.ChannelVirtualMaster, SyncType: format.SyncTime}},
			uintChannel("v", 0, 8),
		},
		data: func(t *testing.T, w *writer.Writer) blocks.Link {
			first := dataBlock(data[:a]...)(t, w)
			dz, err := blocks.NewDataZipped(blocks.IDData, format.ZipTranspositionDeflate, 1, data[a:b])
			require.NoError(t, err)
			second, err := w.WriteBlock(dz)
			require.NoError(t, err)
			third := dataBlock(data[b:]...)(t, w)
			l, err := w.WriteBlock(&blocks.DataListBlock{
				Data:    []blocks.Link{first, second, third},
				Offsets: []uint64{0, uint64(a), uint64(b)},
			})
			require.NoError(t, err)

			return l
		},
	}
}

func countingRows(from, to int) []row {
	var out []row
	for i := from; i < to; i++ {
		out = append(out, row{"t": uint64(i), "v": uint8(i)})
	}

	return out
}

func TestRecordReaderSplit(t *testing.T) {
	f := openTest(t, testFile{groups: []testGroup{countingGroup(30)}})

	t.Run("disjoint ranges in order", func(t *testing.T) {
		r, err := NewRecordReader(f, rowFactory())
		require.NoError(t, err)
		defer r.Close()

		parts, err := r.Split(4)
		require.NoError(t, err)
		require.Len(t, parts, 4)
		assert.Zero(t, r.Remaining())
		assert.False(t, r.HasNext())

		from := 0
		for i, want := range []int{8, 8, 7, 7} {
			p := parts[i]
			assert.Equal(t, uint64(want), p.Size())

			var got []row
			for rec, err := range p.All() {
				require.NoError(t, err)
				got = append(got, rec)
			}
			assert.Equal(t, countingRows(from, from+want), got)
			from += want
			require.NoError(t, p.Close())
		}
	})

	t.Run("after partial read", func(t *testing.T) {
		r, err := NewRecordReader(f, rowFactory())
		require.NoError(t, err)
		defer r.Close()

		for range 5 {
			_, err := r.Next()
			require.NoError(t, err)
		}
		parts, err := r.Split(2)
		require.NoError(t, err)
		require.Len(t, parts, 2)
		assert.Equal(t, uint64(13), parts[0].Size())
		assert.Equal(t, uint64(12), parts[1].Size())

		rec, err := parts[1].Next()
		require.NoError(t, err)
		assert.Equal(t, countingRows(18, 19)[0], rec)
		for _, p := range parts {
			require.NoError(t, p.Close())
		}
	})

	t.Run("more parts than records", func(t *testing.T) {
		small := openTest(t, testFile{groups: []testGroup{pairGroup()}})
		r, err := NewRecordReader(small, pairFactory())
		require.NoError(t, err)
		defer r.Close()

		parts, err := r.Split(10)
		require.NoError(t, err)
		require.Len(t, parts, 3)
		for i, p := range parts {
			got, err := p.Next()
			require.NoError(t, err)
			assert.Equal(t, pair{uint64(2*i + 1), uint64(2*i + 2)}, got)
			assert.False(t, p.HasNext())
			require.NoError(t, p.Close())
		}
	})

	t.Run("invalid", func(t *testing.T) {
		r, err := NewRecordReader(f, rowFactory())
		require.NoError(t, err)

		_, err = r.Split(0)
		require.Error(t, err)

		require.NoError(t, r.Close())
		_, err = r.Split(2)
		require.ErrorIs(t, err, errs.ErrClosed)
	})
}

func TestConcurrentReaders(t *testing.T) {
	t.Run("split ranges", func(t *testing.T) {
		f := openTest(t, testFile{groups: []testGroup{countingGroup(90)}})
		r, err := NewRecordReader(f, rowFactory())
		require.NoError(t, err)
		defer r.Close()

		parts, err := r.Split(4)
		require.NoError(t, err)

		results := make([][]row, len(parts))
		failures := make([]error, len(parts))
		var wg sync.WaitGroup
		for i, p := range parts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer p.Close()

				for rec, err := range p.All() {
					if err != nil {
						failures[i] = err
						return
					}
					results[i] = append(results[i], rec)
				}
			}()
		}
		wg.Wait()

		var all []row
		for i := range parts {
			require.NoError(t, failures[i])
			all = append(all, results[i]...)
		}
		assert.Equal(t, countingRows(0, 90), all)
	})

	t.Run("duplicated handles", testDuplicatedHandles)
}

func testDuplicatedHandles(t *testing.T) {
	f := openTest(t, testFile{groups: []testGroup{pairGroup()}})

	const workers = 4
	results := make([][]pair, workers)
	handles := make([]*File, workers)
	for i := range handles {
		var err error
		handles[i], err = f.Dup()
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for i, h := range handles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer h.Close()

			r, err := NewRecordReader(h, pairFactory())
			if err != nil {
				return
			}
			defer r.Close()
			for p, err := range r.All() {
				if err != nil {
					return
				}
				results[i] = append(results[i], p)
			}
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, []pair{{1, 2}, {3, 4}, {5, 6}}, got)
	}
}
