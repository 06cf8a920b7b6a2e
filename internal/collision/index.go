// Package collision implements a name lookup keyed by 64-bit name hashes
// that stays correct when two names share a hash.
package collision

import (
	"errors"
	"fmt"

	"github.com/R1tschY/mdf4j-sub001/internal/hash"
)

var (
	// ErrEmptyName reports an attempt to index the empty name.
	ErrEmptyName = errors.New("collision: empty name")
	// ErrDuplicateName reports a name added twice.
	ErrDuplicateName = errors.New("collision: duplicate name")
)

type entry[V any] struct {
	name  string
	value V
}

// Index maps names to values through their hash ID. Names with colliding
// IDs are chained and told apart by comparing the full name, so a lookup
// costs one hash and usually one string comparison.
type Index[V any] struct {
	hash         func(string) uint64
	byID         map[uint64][]entry[V]
	names        []string // insertion order
	hasCollision bool
}

// NewIndex creates an index sized for n names.
func NewIndex[V any](n int) *Index[V] {
	return newIndex[V](n, hash.ID)
}

func newIndex[V any](n int, fn func(string) uint64) *Index[V] {
	return &Index[V]{
		hash:  fn,
		byID:  make(map[uint64][]entry[V], n),
		names: make([]string, 0, n),
	}
}

// Add indexes value under name.
func (ix *Index[V]) Add(name string, value V) error {
	if name == "" {
		return ErrEmptyName
	}

	id := ix.hash(name)
	chain := ix.byID[id]
	for _, e := range chain {
		if e.name == name {
			return fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}
	if len(chain) > 0 {
		ix.hasCollision = true
	}

	ix.byID[id] = append(chain, entry[V]{name: name, value: value})
	ix.names = append(ix.names, name)

	return nil
}

// Lookup returns the value indexed under name.
func (ix *Index[V]) Lookup(name string) (V, bool) {
	for _, e := range ix.byID[ix.hash(name)] {
		if e.name == name {
			return e.value, true
		}
	}

	var zero V
	return zero, false
}

// HasCollision reports whether two indexed names share an ID.
func (ix *Index[V]) HasCollision() bool {
	return ix.hasCollision
}

// Names returns the indexed names in insertion order.
func (ix *Index[V]) Names() []string {
	return ix.names
}

// Len returns the number of indexed names.
func (ix *Index[V]) Len() int {
	return len(ix.names)
}
