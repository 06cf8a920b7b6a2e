package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/R1tschY/mdf4j-sub001/blocks"
	"github.com/R1tschY/mdf4j-sub001/endian"
	"github.com/R1tschY/mdf4j-sub001/format"
	"github.com/R1tschY/mdf4j-sub001/writer"
	"github.com/urfave/cli/v3"
)

// Record layout of the sample group.
const (
	sampleDataBytes   = 23
	sampleRecordSize  = sampleDataBytes + 1
	sampleLabelLength = 8
)

type sampleOptions struct {
	records      int
	blockRecords int
	zip          string // none, deflate or transposition
}

func sampleCmd(a *app) *cli.Command {
	opts := sampleOptions{}

	return &cli.Command{
		Name:      "sample",
		Usage:     "Write a synthetic MDF 4 file for trying out the other commands",
		ArgsUsage: "OUTPUT",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "records", Aliases: []string{"n"}, Usage: "number of records", Value: 100, Destination: &opts.records},
			&cli.IntFlag{Name: "block-records", Usage: "records per data block", Value: 1000, Destination: &opts.blockRecords},
			&cli.StringFlag{Name: "zip", Usage: "none, deflate or transposition", Value: "none", Destination: &opts.zip},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("expected exactly one output argument")
			}
			path := cmd.Args().First()

			w, err := writer.Create(path, writer.WithProgramID("mdf4cli"))
			if err != nil {
				return err
			}
			defer w.Close()

			if err := writeSample(w, opts); err != nil {
				return err
			}
			a.logger.Info("sample written", "path", path, "records", opts.records, "zip", opts.zip)

			return nil
		},
	}
}

// writeSample writes one data group with a master channel, a counter, a
// converted speed with invalid values, two bit fields and a string.
func writeSample(w *writer.Writer, opts sampleOptions) error {
	if opts.records < 0 || opts.blockRecords <= 0 {
		return fmt.Errorf("invalid record counts %d / %d", opts.records, opts.blockRecords)
	}

	hd := &blocks.HeaderBlock{StartTimeNs: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).UnixNano()}
	if err := w.WriteHeader(hd); err != nil {
		return err
	}

	data, err := writeSampleData(w, opts)
	if err != nil {
		return err
	}

	first, err := writeSampleChannels(w)
	if err != nil {
		return err
	}
	name, err := w.WriteBlock(blocks.NewText("sample"))
	if err != nil {
		return err
	}
	cg, err := w.WriteBlock(&blocks.ChannelGroupBlock{
		FirstChannel:      first,
		AcquisitionName:   name,
		CycleCount:        uint64(opts.records),
		DataBytes:         sampleDataBytes,
		InvalidationBytes: 1,
	})
	if err != nil {
		return err
	}
	if hd.Comment, err = w.WriteBlock(blocks.NewText("written by mdf4 sample")); err != nil {
		return err
	}
	if hd.FirstDataGroup, err = w.WriteBlock(&blocks.DataGroupBlock{FirstChannelGroup: cg, Data: data}); err != nil {
		return err
	}
	if err := w.RewriteHeader(hd); err != nil {
		return err
	}

	return w.FinalizeFile()
}

func writeSampleChannels(w *writer.Writer) (blocks.Link, error) {
	type channel struct {
		name, unit string
		cn         blocks.ChannelBlock
		cc         *blocks.ConversionBlock
		ccUnit     string
	}

	channels := []channel{
		{name: "time", unit: "s", cn: blocks.ChannelBlock{
			Type: format.ChannelMaster, SyncType: format.SyncTime, DataType: format.DataFloatLE, BitCount: 64,
		}},
		{name: "counter", cn: blocks.ChannelBlock{DataType: format.DataUintLE, ByteOffset: 8, BitCount: 32}},
		{name: "speed", unit: "raw", ccUnit: "km/h", cn: blocks.ChannelBlock{
			DataType: format.DataUintLE, ByteOffset: 12, BitCount: 16, Flags: blocks.ChannelInvalidationBitValid,
		}, cc: &blocks.ConversionBlock{Type: format.ConversionLinear, Values: []float64{0, 0.01}}},
		{name: "gear", cn: blocks.ChannelBlock{DataType: format.DataIntLE, ByteOffset: 14, BitCount: 4}},
		{name: "brake", cn: blocks.ChannelBlock{DataType: format.DataUintLE, ByteOffset: 14, BitOffset: 4, BitCount: 1}},
		{name: "label", cn: blocks.ChannelBlock{DataType: format.DataStringLatin1, ByteOffset: 15, BitCount: 8 * sampleLabelLength}},
	}

	var next blocks.Link
	for i := len(channels) - 1; i >= 0; i-- {
		ch := channels[i]
		cn := ch.cn
		cn.Next = next

		var err error
		if cn.Name, err = w.WriteBlock(blocks.NewText(ch.name)); err != nil {
			return blocks.NilLink, err
		}
		if ch.unit != "" {
			if cn.Unit, err = w.WriteBlock(blocks.NewText(ch.unit)); err != nil {
				return blocks.NilLink, err
			}
		}
		if ch.cc != nil {
			cc := *ch.cc
			if cc.Unit, err = w.WriteBlock(blocks.NewText(ch.ccUnit)); err != nil {
				return blocks.NilLink, err
			}
			if cn.Conversion, err = w.WriteBlock(&cc); err != nil {
				return blocks.NilLink, err
			}
		}
		if next, err = w.WriteBlock(&cn); err != nil {
			return blocks.NilLink, err
		}
	}

	return next, nil
}

// sampleRecord encodes record i into rec.
func sampleRecord(rec []byte, i int) {
	le := endian.Little()
	le.PutUint64(rec[0:], math.Float64bits(float64(i)*0.01))
	le.PutUint32(rec[8:], uint32(i))
	le.PutUint16(rec[12:], uint16(i*37%20000))
	rec[14] = byte(int8(i%16-8))&0x0f | byte(i%2)<<4

	clear(rec[15:sampleDataBytes])
	copy(rec[15:sampleDataBytes-1], fmt.Sprintf("rec%d", i)) // keeps the zero terminator

	rec[sampleDataBytes] = 0
	if i%10 == 9 {
		rec[sampleDataBytes] = 1 // speed invalid
	}
}

// writeSampleData writes the records in blocks of opts.blockRecords and
// returns the data root: a single data block or a data list.
func writeSampleData(w *writer.Writer, opts sampleOptions) (blocks.Link, error) {
	if opts.records == 0 {
		return blocks.NilLink, nil
	}

	var links []blocks.Link
	var offsets []uint64
	rec := make([]byte, sampleRecordSize)
	for start := 0; start < opts.records; start += opts.blockRecords {
		end := min(start+opts.blockRecords, opts.records)
		raw := make([]byte, 0, (end-start)*sampleRecordSize)
		for i := start; i < end; i++ {
			sampleRecord(rec, i)
			raw = append(raw, rec...)
		}

		block, err := sampleBlock(opts.zip, raw)
		if err != nil {
			return blocks.NilLink, err
		}
		l, err := w.WriteBlock(block)
		if err != nil {
			return blocks.NilLink, err
		}
		links = append(links, l)
		offsets = append(offsets, uint64(start*sampleRecordSize))
	}

	if len(links) == 1 {
		return links[0], nil
	}

	return w.WriteBlock(&blocks.DataListBlock{Data: links, Offsets: offsets})
}

func sampleBlock(zip string, raw []byte) (blocks.Encoder, error) {
	switch zip {
	case "", "none":
		return &blocks.DataBlock{Data: raw}, nil
	case "deflate":
		return blocks.NewDataZipped(blocks.IDData, format.ZipDeflate, 0, raw)
	case "transposition":
		return blocks.NewDataZipped(blocks.IDData, format.ZipTranspositionDeflate, sampleRecordSize, raw)
	default:
		return nil, fmt.Errorf("unknown zip type %q", zip)
	}
}
