package read

import (
	"fmt"

	"github.com/R1tschY/mdf4j-sub001/de"
)

type member struct {
	name string
	read ValueRead
}

// newStructRead reads a struct channel member by member. Member byte offsets
// are relative to the byte offset of the parent channel.
func newStructRead(l Layout, ch *Channel, base int) (ValueRead, error) {
	base += int(ch.Block.ByteOffset)

	members := make([]member, len(ch.Members))
	for i, m := range ch.Members {
		r, err := newValueRead(l, m, base)
		if err != nil {
			return nil, fmt.Errorf("member %q of %q: %w", m.Name, ch.Name, err)
		}
		members[i] = member{name: m.Name, read: r}
	}

	return ValueReadFunc(func(rec RecordBuffer, v de.Visitor) error {
		return v.VisitStruct(&structAccess{rec: rec, members: members})
	}), nil
}

type structAccess struct {
	rec     RecordBuffer
	members []member
	next    int
}

var _ de.StructAccess = (*structAccess)(nil)

func (s *structAccess) Len() int { return len(s.members) }

func (s *structAccess) Next() (string, de.Deserializer, bool) {
	if s.next >= len(s.members) {
		return "", nil, false
	}
	m := s.members[s.next]
	s.next++

	return m.name, &Deserializer{read: m.read, rec: s.rec}, true
}
