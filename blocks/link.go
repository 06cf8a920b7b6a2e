package blocks

import (
	"iter"

	"github.com/R1tschY/mdf4j-sub001/cursor"
	"github.com/R1tschY/mdf4j-sub001/errs"
)

// DefaultMaxListLength bounds linked list walks.
const DefaultMaxListLength = 1 << 20

// Link is an absolute file offset of a block. Zero means absent.
type Link uint64

// NilLink is the absent link.
const NilLink Link = 0

// IsNil reports whether the link is absent.
func (l Link) IsNil() bool {
	return l == NilLink
}

// Offset returns the link as a file offset.
func (l Link) Offset() int64 {
	return int64(l)
}

// Parser decodes one block at the cursor position.
type Parser[T any] func(c *cursor.Cursor) (T, error)

// Resolve seeks to l and parses the block there. It reports false without
// touching the cursor when l is nil.
func Resolve[T any](c *cursor.Cursor, l Link, parse Parser[T]) (T, bool, error) {
	var zero T
	if l.IsNil() {
		return zero, false, nil
	}
	if err := c.Seek(l.Offset()); err != nil {
		return zero, false, err
	}

	v, err := parse(c)
	if err != nil {
		return zero, false, err
	}

	return v, true, nil
}

// List walks a linked list of blocks starting at first. next extracts the
// follow-up link from a parsed block. The walk ends at a nil link, at the
// first error, or when the consumer stops. A repeated offset yields
// errs.ErrLinkCycle and more than maxLen elements yields errs.ErrListTooLong;
// maxLen <= 0 selects DefaultMaxListLength.
func List[T any](c *cursor.Cursor, first Link, parse Parser[T], next func(T) Link, maxLen int) iter.Seq2[T, error] {
	if maxLen <= 0 {
		maxLen = DefaultMaxListLength
	}

	return func(yield func(T, error) bool) {
		var zero T
		visited := make(map[Link]struct{})

		for l := first; !l.IsNil(); {
			if _, seen := visited[l]; seen {
				yield(zero, errs.ErrLinkCycle)
				return
			}
			if len(visited) >= maxLen {
				yield(zero, errs.ErrListTooLong)
				return
			}
			visited[l] = struct{}{}

			v, _, err := Resolve(c, l, parse)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
			l = next(v)
		}
	}
}

// Collect drains seq into a slice and returns the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}

	return out, nil
}
