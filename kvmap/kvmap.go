// Package kvmap provides generic wrappers over Go's built-in map that layer
// rehash and locking policy on top of it.
//
// This package offers two map types:
//   - Rehashing: counts fresh insertions and rebuilds its backing storage
//     once a growth heuristic is crossed
//   - Locked: a map behind a single mutex exposing atomic compound operations
//
// The built-in map is always the backing store; hashing and collision
// resolution are never reimplemented. Statistics are always enabled for
// observability, with optional Prometheus metrics via functional options.
package kvmap

import (
	"github.com/c360/containerkit/errors"
)

// Map is the interface both map wrappers satisfy. It is parameterized by key
// type K and value type V for type safety.
type Map[K comparable, V any] interface {
	// Set stores a value with the given key, overwriting any existing entry.
	Set(key K, value V)

	// Get retrieves a value by key. Returns the value and true if found,
	// zero value and false otherwise.
	Get(key K) (V, bool)

	// Require retrieves a value by key, returning a classified
	// errors.ErrKeyNotFound error on a miss.
	Require(key K) (V, error)

	// GetOrInsert returns the existing value for key, or evaluates lazy and
	// inserts its result. The lazy function runs only on the miss path.
	GetOrInsert(key K, lazy func() V) V

	// Delete removes an entry by key. Returns true if the key existed.
	Delete(key K) bool

	// Contains reports whether the key is present.
	Contains(key K) bool

	// Len returns the current number of entries.
	Len() int

	// Keys returns an independent slice of all keys.
	Keys() []K

	// Values returns an independent slice of all values.
	Values() []V

	// Rehash rebuilds the backing storage for improved lookup performance
	// without changing logical contents.
	Rehash()

	// Clear removes all entries.
	Clear()

	// Stats returns map statistics (always available for observability).
	Stats() *Statistics
}

// Integral constrains the key types usable with the unique-key reservation
// helpers.
type Integral interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// requireErr builds the classified miss error shared by both map types.
func requireErr(component string) error {
	return errors.WrapInvalid(errors.ErrKeyNotFound, component, "Require", "lookup")
}
