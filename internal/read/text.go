package read

import (
	"github.com/R1tschY/mdf4j-sub001/datatype"
	"github.com/R1tschY/mdf4j-sub001/de"
	"github.com/R1tschY/mdf4j-sub001/errs"
)

func stringRead(start int, t datatype.StringType) ValueRead {
	return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
		b, ok := t.Charset.Terminated(rec.Bytes(start, t.MaxLength))
		if !ok {
			return errs.Formatf("%s string of %d bytes is not zero terminated", t.Charset, t.MaxLength)
		}
		s, err := t.Charset.Decode(b)
		if err != nil {
			return err
		}

		return v.VisitString(s)
	})
}

func bytesRead(start, n int) ValueRead {
	return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
		return v.VisitBytes(rec.Bytes(start, n))
	})
}
