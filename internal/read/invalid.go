package read

import (
	"github.com/R1tschY/mdf4j-sub001/blocks"
	"github.com/R1tschY/mdf4j-sub001/de"
	"github.com/R1tschY/mdf4j-sub001/errs"
)

// newInvalidationRead wraps r so that records with the channel's
// invalidation bit set visit invalid instead of a value.
func newInvalidationRead(l Layout, cn *blocks.ChannelBlock, r ValueRead) (ValueRead, error) {
	pos := int(cn.InvalidationBitPos)
	if groupBits := l.InvalidationBytes * 8; pos >= groupBits {
		return nil, errs.Formatf("invalidation bit position %d outside of %d invalidation bits", pos, groupBits)
	}

	index := l.RecordIDSize + l.DataBytes + pos>>3
	mask := byte(1) << (pos & 7)

	return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
		if rec.Bytes(index, 1)[0]&mask != 0 {
			return v.VisitInvalid()
		}

		return r.Read(rec, v)
	}), nil
}
