package read

import (
	"github.com/R1tschY/mdf4j-sub001/de"
)

// Deserializer binds a channel's ValueRead to the current record.
type Deserializer struct {
	read ValueRead
	rec  RecordBuffer
}

var _ de.Deserializer = (*Deserializer)(nil)

// NewDeserializer returns a deserializer reading r from rec.
func NewDeserializer(r ValueRead, rec RecordBuffer) *Deserializer {
	return &Deserializer{read: r, rec: rec}
}

func (d *Deserializer) Deserialize(v de.Visitor) error {
	return d.read.Read(d.rec, v)
}

func (d *Deserializer) Ignore() error {
	return nil
}
