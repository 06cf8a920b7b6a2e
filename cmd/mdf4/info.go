package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	mdf4 "github.com/R1tschY/mdf4j-sub001"
	"github.com/R1tschY/mdf4j-sub001/blocks"
	"github.com/R1tschY/mdf4j-sub001/compress"
	"github.com/R1tschY/mdf4j-sub001/format"
	"github.com/urfave/cli/v3"
)

var estimateCodecs = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func infoCmd(a *app) *cli.Command {
	var estimate bool

	return &cli.Command{
		Name:      "info",
		Usage:     "Show the file header and the channel groups",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "estimate", Usage: "estimate the compressed JSON lines export size of each group", Destination: &estimate},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			f, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer f.Close()

			return printInfo(cmd.Root().Writer, f, estimate)
		},
	}
}

func printInfo(w io.Writer, f *mdf4.File, estimate bool) error {
	id := f.ID()
	hd := f.Header()
	fmt.Fprintf(w, "version:  %s\n", id.Version)
	fmt.Fprintf(w, "program:  %s\n", id.ProgramID)
	fmt.Fprintf(w, "start:    %s\n", hd.StartTime().Format(time.RFC3339Nano))
	if hd.TimeFlags.Has(blocks.TimeOffsetsValid) {
		fmt.Fprintf(w, "timezone: %+d min, dst %+d min\n", hd.TZOffsetMin, hd.DSTOffsetMin)
	}
	comment, err := f.Comment()
	if err != nil {
		return err
	}
	if comment != "" {
		fmt.Fprintf(w, "comment:  %s\n", comment)
	}

	list, err := groups(f)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "groups:   %d\n", len(list))

	for i, cg := range list {
		name, err := cg.Name()
		if err != nil {
			return err
		}
		n := 0
		for _, err := range cg.Channels() {
			if err != nil {
				return err
			}
			n++
		}
		fmt.Fprintf(w, "  [%d] %q records=%d record_size=%d channels=%d\n", i, name, cg.CycleCount(), cg.RecordSize(), n)

		if estimate {
			if err := printEstimate(w, f, i); err != nil {
				return fmt.Errorf("group %d: %w", i, err)
			}
		}
	}

	return nil
}

// printEstimate exports group index as JSON lines into memory and reports
// its size under every export codec.
func printEstimate(w io.Writer, f *mdf4.File, index int) error {
	var buf bytes.Buffer
	if _, err := export(f, exportRequest{group: index, format: formatJSONL}, &buf); err != nil {
		return err
	}

	for _, ct := range estimateCodecs {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return err
		}
		out, err := codec.Compress(buf.Bytes())
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "      %-5s %d bytes\n", ct, len(out))
	}

	return nil
}
