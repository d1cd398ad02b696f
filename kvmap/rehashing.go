package kvmap

import (
	"log/slog"
	"maps"
	"math/rand"

	"github.com/c360/containerkit/errors"
)

// Rehashing wraps a map and rebuilds its backing storage according to a
// growth heuristic. Go's runtime never shrinks or compacts a map in place, so
// the rebuild copies all entries into a freshly allocated map sized to the
// current length; logical contents are never changed.
//
// Every insertion of a new key runs the rehash-decision step: once more than
// MinKeysForRehash fresh keys have arrived since the last rehash AND the map
// has grown past its last-rehash length times GrowthMultiplier, a rehash is
// performed. Overwrites of existing keys do no bookkeeping.
//
// Rehashing is a heuristic optimizer, not a correctness-critical structure.
// It is a single-goroutine type with no internal locking; wrap shared access
// the way Locked wraps its map.
type Rehashing[K comparable, V any] struct {
	items map[K]V

	// Rehash bookkeeping
	rehashCount        int
	newKeysSinceRehash int
	lenAtLastRehash    int

	// Policy
	minKeysForRehash int
	growthMultiplier float64

	observer RehashObserver[K, V]
	logger   *slog.Logger
	stats    *Statistics // ALWAYS initialized
	metrics  *mapMetrics // Optional, if metrics enabled
}

// Compile-time interface compliance check.
var _ Map[string, int] = (*Rehashing[string, int])(nil)

// NewRehashing creates a self-rehashing map with the default policy.
// Stats are ALWAYS collected; metrics are optional via WithMetrics().
func NewRehashing[K comparable, V any](options ...Option[K, V]) (*Rehashing[K, V], error) {
	return NewRehashingFromConfig[K, V](DefaultConfig(), options...)
}

// NewRehashingFromConfig creates a self-rehashing map with the provided
// rehash policy. Returns a classified error if the config is invalid or
// metrics registration fails.
func NewRehashingFromConfig[K comparable, V any](config Config, options ...Option[K, V]) (*Rehashing[K, V], error) {
	if err := config.Validate(); err != nil {
		return nil, errors.WrapInvalid(err, "kvmap", "NewRehashingFromConfig", "config validation")
	}

	opts := applyOptions(options...)

	// Stats are ALWAYS initialized - observability is not optional
	stats := NewStatistics()

	var metrics *mapMetrics
	// Optionally expose stats as Prometheus metrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		var err error
		metrics, err = newMapMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			// Return classified error instead of silently ignoring
			return nil, errors.WrapTransient(err, "kvmap", "NewRehashingFromConfig", "metrics registration")
		}
	}

	return &Rehashing[K, V]{
		items:            make(map[K]V),
		minKeysForRehash: config.MinKeysForRehash,
		growthMultiplier: config.GrowthMultiplier,
		observer:         opts.observer,
		logger:           opts.logger,
		stats:            stats,   // ALWAYS present
		metrics:          metrics, // Optional
	}, nil
}

// Set stores a value. Existing keys are overwritten in place with no rehash
// bookkeeping; new keys insert and then run the rehash-decision step.
func (m *Rehashing[K, V]) Set(key K, value V) {
	_, exists := m.items[key]
	m.items[key] = value

	// ALWAYS track in stats
	m.stats.Set()
	m.stats.UpdateSize(int64(len(m.items)))

	// ALSO track in metrics if enabled
	if m.metrics != nil {
		m.metrics.recordSet()
		m.metrics.updateSize(len(m.items))
	}

	if !exists {
		m.considerRehash()
	}
}

// Get retrieves a value by key.
func (m *Rehashing[K, V]) Get(key K) (V, bool) {
	value, exists := m.items[key]

	// ALWAYS track in stats
	if exists {
		m.stats.Hit()
	} else {
		m.stats.Miss()
	}

	// ALSO track in metrics if enabled
	if m.metrics != nil {
		if exists {
			m.metrics.recordHit()
		} else {
			m.metrics.recordMiss()
		}
	}

	return value, exists
}

// Require retrieves a value by key, returning a classified error on a miss.
func (m *Rehashing[K, V]) Require(key K) (V, error) {
	value, exists := m.Get(key)
	if !exists {
		return value, requireErr("Rehashing")
	}
	return value, nil
}

// GetOrInsert returns the existing value for key, or evaluates lazy and
// inserts its result. The insert skips the rehash-decision step.
func (m *Rehashing[K, V]) GetOrInsert(key K, lazy func() V) V {
	if value, exists := m.items[key]; exists {
		m.stats.Hit()
		if m.metrics != nil {
			m.metrics.recordHit()
		}
		return value
	}

	value := lazy()
	m.items[key] = value

	// ALWAYS track in stats
	m.stats.Miss()
	m.stats.Set()
	m.stats.UpdateSize(int64(len(m.items)))

	// ALSO track in metrics if enabled
	if m.metrics != nil {
		m.metrics.recordMiss()
		m.metrics.recordSet()
		m.metrics.updateSize(len(m.items))
	}

	return value
}

// Delete removes an entry by key. Returns true if the key existed.
func (m *Rehashing[K, V]) Delete(key K) bool {
	if _, exists := m.items[key]; !exists {
		return false
	}

	delete(m.items, key)

	// ALWAYS track in stats
	m.stats.Delete()
	m.stats.UpdateSize(int64(len(m.items)))

	// ALSO track in metrics if enabled
	if m.metrics != nil {
		m.metrics.recordDelete()
		m.metrics.updateSize(len(m.items))
	}

	return true
}

// Contains reports whether the key is present, without lookup bookkeeping.
func (m *Rehashing[K, V]) Contains(key K) bool {
	_, exists := m.items[key]
	return exists
}

// Len returns the current number of entries.
func (m *Rehashing[K, V]) Len() int {
	return len(m.items)
}

// Keys returns an independent slice of all keys, in map iteration order.
func (m *Rehashing[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.items))
	for key := range m.items {
		keys = append(keys, key)
	}
	return keys
}

// Values returns an independent slice of all values, in map iteration order.
func (m *Rehashing[K, V]) Values() []V {
	values := make([]V, 0, len(m.items))
	for _, value := range m.items {
		values = append(values, value)
	}
	return values
}

// Rehash rebuilds the backing storage, records the current length, resets the
// fresh-key counter, bumps the rehash count and fires the observer. Entries
// are never discarded.
func (m *Rehashing[K, V]) Rehash() {
	rebuilt := make(map[K]V, len(m.items))
	maps.Copy(rebuilt, m.items)
	m.items = rebuilt

	m.lenAtLastRehash = len(m.items)
	m.newKeysSinceRehash = 0
	m.rehashCount++

	// ALWAYS track in stats
	m.stats.Rehash()

	// ALSO track in metrics if enabled
	if m.metrics != nil {
		m.metrics.recordRehash()
	}

	if m.logger != nil {
		m.logger.Debug("kvmap rehash",
			"len", len(m.items),
			"rehash_count", m.rehashCount)
	}

	if m.observer != nil {
		m.observer(m.items)
	}
}

// Clear wipes both storage and rehash counters.
func (m *Rehashing[K, V]) Clear() {
	m.items = make(map[K]V)
	m.rehashCount = 0
	m.newKeysSinceRehash = 0
	m.lenAtLastRehash = 0

	// ALWAYS track size update in stats
	m.stats.UpdateSize(0)

	// ALSO track in metrics if enabled
	if m.metrics != nil {
		m.metrics.updateSize(0)
	}
}

// Stats returns map statistics (always available for observability).
func (m *Rehashing[K, V]) Stats() *Statistics {
	return m.stats
}

// RehashCount returns how many rehashes have been performed.
func (m *Rehashing[K, V]) RehashCount() int {
	return m.rehashCount
}

// NewKeysSinceRehash returns the number of fresh keys inserted since the
// last rehash.
func (m *Rehashing[K, V]) NewKeysSinceRehash() int {
	return m.newKeysSinceRehash
}

// Dup returns a deep copy of the map. When copyCounters is true the rehash
// bookkeeping travels with the copy, otherwise the copy starts with fresh
// counters. Statistics are always fresh and metrics registrations are not
// duplicated.
func (m *Rehashing[K, V]) Dup(copyCounters bool) *Rehashing[K, V] {
	dup := &Rehashing[K, V]{
		items:            maps.Clone(m.items),
		minKeysForRehash: m.minKeysForRehash,
		growthMultiplier: m.growthMultiplier,
		observer:         m.observer,
		logger:           m.logger,
		stats:            NewStatistics(),
	}
	if dup.items == nil {
		dup.items = make(map[K]V)
	}

	if copyCounters {
		dup.rehashCount = m.rehashCount
		dup.newKeysSinceRehash = m.newKeysSinceRehash
		dup.lenAtLastRehash = m.lenAtLastRehash
	}

	dup.stats.UpdateSize(int64(len(dup.items)))
	return dup
}

// considerRehash is the rehash-decision step run after every fresh insertion.
func (m *Rehashing[K, V]) considerRehash() {
	m.newKeysSinceRehash++

	if m.newKeysSinceRehash <= m.minKeysForRehash {
		return
	}
	if float64(len(m.items)) <= float64(m.lenAtLastRehash)*m.growthMultiplier {
		return
	}

	m.Rehash()
}

// Equal reports whether two Rehashing maps hold equal backing storage.
// Counters and policy are never compared.
func Equal[K, V comparable](a, b *Rehashing[K, V]) bool {
	return maps.Equal(a.items, b.items)
}

// ReserveUniqueKey repeatedly samples a random key in [min, max) until an
// unused one is found, stores value there and returns the key. The insert
// runs the normal rehash-decision step. A nearly exhausted key space makes
// this spin; that is an accepted cost, not a guarded error path.
func ReserveUniqueKey[K Integral, V any](m *Rehashing[K, V], min, max K, value V) K {
	for {
		key := randomKey(min, max)
		if _, exists := m.items[key]; !exists {
			m.Set(key, value)
			return key
		}
	}
}

// randomKey samples uniformly from [min, max).
func randomKey[K Integral](min, max K) K {
	span := uint64(max - min)
	return min + K(rand.Uint64()%span)
}
