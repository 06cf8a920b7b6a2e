// Package hash derives stable numeric keys from channel names.
package hash

import "github.com/cespare/xxhash/v2"

// ID returns the xxHash64 of name. Channel selection by name keys its lookup
// table with this value.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}
