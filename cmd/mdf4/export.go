package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	mdf4 "github.com/R1tschY/mdf4j-sub001"
	"github.com/R1tschY/mdf4j-sub001/compress"
	"github.com/R1tschY/mdf4j-sub001/de"
	"github.com/R1tschY/mdf4j-sub001/format"
	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
)

const (
	formatCSV   = "csv"
	formatJSONL = "jsonl"
)

type exportRequest struct {
	group    int
	channels []string // empty for all
	format   string
}

func exportCmd(a *app) *cli.Command {
	var (
		req         exportRequest
		output      string
		compression string
	)

	return &cli.Command{
		Name:      "export",
		Usage:     "Export the records of a channel group as CSV or JSON lines",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "group", Aliases: []string{"g"}, Usage: "channel group index", Destination: &req.group},
			&cli.StringSliceFlag{Name: "channel", Aliases: []string{"c"}, Usage: "channel to export, repeatable (default all)", Destination: &req.channels},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "csv or jsonl", Value: formatCSV, Destination: &req.format},
			&cli.StringFlag{Name: "compression", Usage: "none, zstd, s2 or lz4", Value: "none", Destination: &compression},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output file (default stdout)", Destination: &output},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if a.cfg.ExportFormat != "" && !cmd.IsSet("format") {
				req.format = a.cfg.ExportFormat
			}
			if a.cfg.Compression != "" && !cmd.IsSet("compression") {
				compression = a.cfg.Compression
			}
			ct, ok := format.ParseCompressionType(compression)
			if !ok {
				return fmt.Errorf("unknown compression %q", compression)
			}

			f, err := a.open(cmd)
			if err != nil {
				return err
			}
			defer f.Close()

			out := cmd.Root().Writer
			if output != "" {
				if filepath.Ext(output) == "" {
					output += compress.Extension(ct)
				}
				file, err := os.Create(output)
				if err != nil {
					return err
				}
				defer file.Close()
				out = file
			}

			n, err := exportTo(f, req, ct, out)
			if err != nil {
				return err
			}
			a.logger.Info("export finished", "records", n, "format", req.format, "compression", ct.String())

			return nil
		},
	}
}

// exportTo runs export through a compressing writer.
func exportTo(f *mdf4.File, req exportRequest, ct format.CompressionType, w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	cw, err := compress.NewWriter(ct, bw)
	if err != nil {
		return 0, err
	}

	n, err := export(f, req, cw)
	if err != nil {
		return n, err
	}
	if err := cw.Close(); err != nil {
		return n, err
	}

	return n, bw.Flush()
}

type row = []any

// export writes the records of the requested group to w and returns the
// number of records.
func export(f *mdf4.File, req exportRequest, w io.Writer) (int, error) {
	enc, err := newEncoder(req.format, w)
	if err != nil {
		return 0, err
	}

	wanted := make(map[string]int, len(req.channels))
	for i, name := range req.channels {
		wanted[name] = i
	}

	columns := make(map[*mdf4.Channel]int)
	width := len(req.channels)
	factory := mdf4.Factory[row, row]{
		Group: groupAt(req.group),
		Channel: func(ch *mdf4.Channel) (de.DeserializeInto[row], error) {
			name, err := ch.Name()
			if err != nil {
				return nil, err
			}

			idx, ok := wanted[name]
			switch {
			case len(wanted) == 0:
				idx = width
				width++
			case !ok:
				return nil, nil
			}
			columns[ch] = idx

			return de.IntoAny(func(r row, v any) { r[idx] = v }), nil
		},
	}

	var current row
	factory.Create = func() row {
		if current == nil {
			current = make(row, width)
		}
		return current
	}

	r, err := mdf4.NewRecordReader(f, factory)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	// requested channels keep the requested order, all others file order
	names := req.channels
	order := make([]int, 0, len(r.Channels()))
	if len(names) == 0 {
		for _, ch := range r.Channels() {
			name, _ := ch.Name()
			names = append(names, name)
			order = append(order, columns[ch])
		}
	} else {
		if len(r.Channels()) != len(names) {
			return 0, fmt.Errorf("only %d of %d requested channels are readable", len(r.Channels()), len(names))
		}
		for i := range names {
			order = append(order, i)
		}
	}

	if err := enc.header(names); err != nil {
		return 0, err
	}
	values := make([]any, len(order))
	n := 0
	for rec, err := range r.All() {
		if err != nil {
			return n, err
		}
		for i, col := range order {
			values[i] = rec[col]
		}
		if err := enc.record(values); err != nil {
			return n, err
		}
		n++
	}

	return n, enc.flush()
}

type encoder interface {
	header(names []string) error
	record(values []any) error
	flush() error
}

func newEncoder(name string, w io.Writer) (encoder, error) {
	switch name {
	case formatCSV:
		return &csvEncoder{w: csv.NewWriter(w)}, nil
	case formatJSONL:
		return &jsonlEncoder{enc: json.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unknown export format %q", name)
	}
}

type csvEncoder struct {
	w      *csv.Writer
	fields []string
}

func (e *csvEncoder) header(names []string) error {
	e.fields = make([]string, len(names))
	return e.w.Write(names)
}

func (e *csvEncoder) record(values []any) error {
	for i, v := range values {
		s, err := formatValue(v)
		if err != nil {
			return err
		}
		e.fields[i] = s
	}

	return e.w.Write(e.fields)
}

func (e *csvEncoder) flush() error {
	e.w.Flush()
	return e.w.Error()
}

// formatValue renders a decoded value as a CSV field. Invalid values are
// empty, byte arrays hex and structs a JSON array.
func formatValue(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case string:
		return v, nil
	case []byte:
		return hex.EncodeToString(v), nil
	case []any:
		b, err := json.Marshal(v)
		return string(b), err
	default:
		return fmt.Sprint(v), nil
	}
}

type jsonlEncoder struct {
	enc   *json.Encoder
	names []string
	obj   map[string]any
}

func (e *jsonlEncoder) header(names []string) error {
	e.names = names
	e.obj = make(map[string]any, len(names))
	return nil
}

func (e *jsonlEncoder) record(values []any) error {
	for i, name := range e.names {
		e.obj[name] = values[i]
	}

	return e.enc.Encode(e.obj)
}

func (e *jsonlEncoder) flush() error { return nil }
