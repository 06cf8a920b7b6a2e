// Package mdf4 reads measurement files in the ASAM MDF 4 format.
//
// An MDF 4 file is a graph of self-describing blocks addressed by file
// offsets. Recorded data lives in data groups; each data group holds one or
// more channel groups, and each channel group describes a fixed-length record
// made of channels (signals).
//
// # Opening Files
//
//	f, err := mdf4.Open("recording.mf4", mdf4.WithLogger(slog.Default()))
//	if err != nil {
//	    return err
//	}
//	defer f.Close()
//
//	for dg, err := range f.DataGroups() {
//	    ...
//	}
//
// A File is not safe for concurrent use. Dup returns an independent handle
// over the same file for use on another goroutine.
//
// # Extracting Records
//
// Records are pulled through a RecordReader. A RecordFactory decides which
// channel group and which channels are read and how each channel value is
// stored into the caller's record type. Channels that are not selected are
// never decoded.
//
//	type sample struct {
//	    Time  float64
//	    Speed int64
//	}
//
//	factory := mdf4.Factory[*sample, sample]{
//	    Channel: mdf4.SelectByName(map[string]de.DeserializeInto[*sample]{
//	        "time":  de.IntoFloat64(func(s *sample, v float64) { s.Time = v }),
//	        "speed": de.IntoInt64(func(s *sample, v int64) { s.Speed = v }),
//	    }),
//	    Create: func() *sample { return &sample{} },
//	    Finish: func(s *sample) (sample, error) { return *s, nil },
//	}
//
//	reader, err := mdf4.NewRecordReader(f, factory)
//	if err != nil {
//	    return err
//	}
//	defer reader.Close()
//
//	for rec, err := range reader.All() {
//	    ...
//	}
//
// # Errors
//
// Errors match the sentinels of package errs with errors.Is: errs.ErrFormat
// for structural problems, errs.ErrUnsupportedVersion, errs.ErrInvalidType
// when a visitor rejects a value, and errs.ErrNotImplemented for recognized
// but unsupported format features. I/O errors are returned unchanged.
package mdf4
