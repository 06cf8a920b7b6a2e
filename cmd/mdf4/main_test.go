package main

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdf4 "github.com/R1tschY/mdf4j-sub001"
	"github.com/R1tschY/mdf4j-sub001/compress"
	"github.com/R1tschY/mdf4j-sub001/format"
	"github.com/R1tschY/mdf4j-sub001/writer"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFile(t *testing.T, opts sampleOptions) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sample.mf4")
	w, err := writer.Create(path)
	require.NoError(t, err)
	require.NoError(t, writeSample(w, opts))
	require.NoError(t, w.Close())

	return path
}

func openSample(t *testing.T, opts sampleOptions) *mdf4.File {
	t.Helper()

	f, err := mdf4.Open(sampleFile(t, opts))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	return f
}

func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()

	var out []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	require.NoError(t, sc.Err())

	return out
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		cfg, err := loadConfig(filepath.Join(dir, "none.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Config{}, cfg)
	})

	t.Run("values", func(t *testing.T) {
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nexport_format: jsonl\ncompression: zstd\n"), 0o600))

		cfg, err := loadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, Config{LogLevel: "debug", ExportFormat: "jsonl", Compression: "zstd"}, cfg)
	})

	t.Run("invalid", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log_level: [\n"), 0o600))

		_, err := loadConfig(path)
		require.Error(t, err)
	})
}

func TestSampleExport(t *testing.T) {
	for _, zip := range []string{"none", "deflate", "transposition"} {
		t.Run(zip, func(t *testing.T) {
			f := openSample(t, sampleOptions{records: 20, blockRecords: 7, zip: zip})

			var buf bytes.Buffer
			n, err := export(f, exportRequest{format: formatJSONL}, &buf)
			require.NoError(t, err)
			require.Equal(t, 20, n)

			lines := decodeLines(t, buf.Bytes())
			require.Len(t, lines, 20)

			rec := lines[1]
			assert.InDelta(t, 0.01, rec["time"], 1e-12)
			assert.Equal(t, float64(1), rec["counter"])
			assert.InDelta(t, 0.37, rec["speed"], 1e-9)
			assert.Equal(t, float64(-7), rec["gear"])
			assert.Equal(t, float64(1), rec["brake"])
			assert.Equal(t, "rec1", rec["label"])

			assert.Nil(t, lines[9]["speed"])
			assert.Equal(t, "rec19", lines[19]["label"])
		})
	}
}

func TestExportCSV(t *testing.T) {
	f := openSample(t, sampleOptions{records: 3, blockRecords: 10})

	var buf bytes.Buffer
	_, err := export(f, exportRequest{channels: []string{"label", "counter", "gear"}, format: formatCSV}, &buf)
	require.NoError(t, err)
	assert.Equal(t, "label,counter,gear\nrec0,0,-8\nrec1,1,-7\nrec2,2,-6\n", buf.String())

	t.Run("unknown channel", func(t *testing.T) {
		_, err := export(f, exportRequest{channels: []string{"label", "nope"}, format: formatCSV}, io.Discard)
		require.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := export(f, exportRequest{format: "xml"}, io.Discard)
		require.Error(t, err)
	})
}

func TestExportCompressed(t *testing.T) {
	f := openSample(t, sampleOptions{records: 50, blockRecords: 50, zip: "deflate"})

	var plain bytes.Buffer
	_, err := exportTo(f, exportRequest{format: formatCSV}, format.CompressionNone, &plain)
	require.NoError(t, err)

	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		t.Run(ct.String(), func(t *testing.T) {
			var packed bytes.Buffer
			_, err := exportTo(f, exportRequest{format: formatCSV}, ct, &packed)
			require.NoError(t, err)

			r, err := compress.NewReader(ct, &packed)
			require.NoError(t, err)
			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, plain.String(), string(got))
		})
	}
}

func TestPrint(t *testing.T) {
	f := openSample(t, sampleOptions{records: 10, blockRecords: 4, zip: "transposition"})

	t.Run("info", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printInfo(&buf, f, true))

		out := buf.String()
		assert.Contains(t, out, "version:  4.20")
		assert.Contains(t, out, "comment:  written by mdf4 sample")
		assert.Contains(t, out, `[0] "sample" records=10 record_size=24 channels=6`)
		assert.Contains(t, out, "Zstd")
	})

	t.Run("channels", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printChannels(&buf, f, -1))

		out := buf.String()
		assert.True(t, strings.HasPrefix(out, "[0] sample\n"))
		assert.Contains(t, out, "speed")
		assert.Contains(t, out, "km/h")
		assert.Contains(t, out, "int4")

		require.Error(t, printChannels(io.Discard, f, 3))
	})
}

func TestApp(t *testing.T) {
	path := sampleFile(t, sampleOptions{records: 2, blockRecords: 10})
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("export_format: jsonl\n"), 0o600))

	var buf bytes.Buffer
	cmd := newApp()
	cmd.Writer = &buf
	require.NoError(t, cmd.Run(context.Background(), []string{"mdf4", "--config", cfg, "export", "-c", "counter", path}))
	assert.Equal(t, "{\"counter\":0}\n{\"counter\":1}\n", buf.String())
}
