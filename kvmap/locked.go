package kvmap

import (
	"maps"
	"sync"

	"github.com/c360/containerkit/errors"
)

// Locked wraps a map behind a single mutex. Every public operation acquires
// the lock for its entire body, including any allocation and any
// user-supplied lazy callback, and releases it on every exit path. There is
// no reader/writer distinction: all operations take the same exclusive lock,
// trading read concurrency for simplicity and for atomicity of compound
// read-modify-write operations.
//
// Setup must be called before any other operation; it is idempotent. Calling
// any other operation first is a contract violation and panics.
//
// Callbacks passed to GetOrInsert and UpdateOrCreate run while the lock is
// held. A callback that touches the same Locked instance deadlocks; this is a
// documented caller obligation, not something the type can prevent.
type Locked[K comparable, V any] struct {
	mu    sync.Mutex
	items map[K]V
	ready bool

	stats   *Statistics // ALWAYS initialized by Setup
	metrics *mapMetrics // Optional, if metrics enabled
}

// Compile-time interface compliance check.
var _ Map[string, int] = (*Locked[string, int])(nil)

// NewLocked creates a mutex-guarded map. Setup must still be called before
// use. Stats are ALWAYS collected; metrics are optional via WithMetrics().
//
// The zero value of Locked is also usable once Setup has been called; the
// constructor exists so metrics and options can be attached.
func NewLocked[K comparable, V any](options ...Option[K, V]) (*Locked[K, V], error) {
	opts := applyOptions(options...)

	var metrics *mapMetrics
	// Optionally expose stats as Prometheus metrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		var err error
		metrics, err = newMapMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			// Return classified error instead of silently ignoring
			return nil, errors.WrapTransient(err, "kvmap", "NewLocked", "metrics registration")
		}
	}

	return &Locked[K, V]{
		stats:   NewStatistics(),
		metrics: metrics,
	}, nil
}

// Setup initializes the lock-guarded storage. Idempotent: a second call is a
// no-op and never resets existing entries.
func (m *Locked[K, V]) Setup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ready {
		return
	}

	m.items = make(map[K]V)
	if m.stats == nil {
		// Zero-value Locked, no constructor ran.
		m.stats = NewStatistics()
	}
	m.ready = true
}

// ensureReady panics if Setup has not been called. Must be called with the
// lock held.
func (m *Locked[K, V]) ensureReady() {
	if !m.ready {
		panic("kvmap: Locked operation before Setup")
	}
}

// Set stores a value with the given key.
func (m *Locked[K, V]) Set(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

	m.items[key] = value
	m.recordSet()
}

// Get retrieves a value by key.
func (m *Locked[K, V]) Get(key K) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

	value, exists := m.items[key]
	m.recordLookup(exists)
	return value, exists
}

// Require retrieves a value by key, returning a classified error on a miss.
func (m *Locked[K, V]) Require(key K) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

	value, exists := m.items[key]
	m.recordLookup(exists)
	if !exists {
		return value, requireErr("Locked")
	}
	return value, nil
}

// GetOrDefault retrieves a value by key, falling back to def on a miss.
// The miss does not insert anything.
func (m *Locked[K, V]) GetOrDefault(key K, def V) V {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

	value, exists := m.items[key]
	m.recordLookup(exists)
	if !exists {
		return def
	}
	return value
}

// GetOrInsert returns the existing value for key, or evaluates lazy under the
// same lock acquisition and inserts its result. This is the atomic
// get-or-create primitive: the check and the insert happen in one critical
// section, so concurrent callers can never insert twice or lose an update.
func (m *Locked[K, V]) GetOrInsert(key K, lazy func() V) V {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

	if value, exists := m.items[key]; exists {
		m.recordLookup(true)
		return value
	}

	value := lazy()
	m.items[key] = value
	m.recordLookup(false)
	m.recordSet()
	return value
}

// UpdateOrCreate invokes create() if the key is absent or update(existing) if
// present, and stores the result, all under one lock acquisition.
func (m *Locked[K, V]) UpdateOrCreate(key K, create func() V, update func(V) V) V {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

	var value V
	if existing, exists := m.items[key]; exists {
		value = update(existing)
	} else {
		value = create()
	}

	m.items[key] = value
	m.recordSet()
	return value
}

// Delete removes an entry by key. Returns true if the key existed.
func (m *Locked[K, V]) Delete(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

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

// Contains reports whether the key is present.
func (m *Locked[K, V]) Contains(key K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

	_, exists := m.items[key]
	return exists
}

// Len returns the current number of entries.
func (m *Locked[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

	return len(m.items)
}

// Keys returns an independent slice of all keys. Mutating the returned slice
// never affects the map.
func (m *Locked[K, V]) Keys() []K {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

	keys := make([]K, 0, len(m.items))
	for key := range m.items {
		keys = append(keys, key)
	}
	return keys
}

// Values returns an independent slice of all values.
func (m *Locked[K, V]) Values() []V {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

	values := make([]V, 0, len(m.items))
	for _, value := range m.items {
		values = append(values, value)
	}
	return values
}

// Rehash rebuilds the backing storage under the lock.
func (m *Locked[K, V]) Rehash() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

	rebuilt := make(map[K]V, len(m.items))
	maps.Copy(rebuilt, m.items)
	m.items = rebuilt

	// ALWAYS track in stats
	m.stats.Rehash()

	// ALSO track in metrics if enabled
	if m.metrics != nil {
		m.metrics.recordRehash()
	}
}

// Clear removes all entries.
func (m *Locked[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

	m.items = make(map[K]V)

	// ALWAYS track size update in stats
	m.stats.UpdateSize(0)

	// ALSO track in metrics if enabled
	if m.metrics != nil {
		m.metrics.updateSize(0)
	}
}

// Stats returns map statistics (always available for observability).
func (m *Locked[K, V]) Stats() *Statistics {
	return m.stats
}

// snapshot copies the backing storage under the lock.
func (m *Locked[K, V]) snapshot() map[K]V {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

	return maps.Clone(m.items)
}

// recordSet updates stats and metrics after a store. Lock must be held.
func (m *Locked[K, V]) recordSet() {
	// ALWAYS track in stats
	m.stats.Set()
	m.stats.UpdateSize(int64(len(m.items)))

	// ALSO track in metrics if enabled
	if m.metrics != nil {
		m.metrics.recordSet()
		m.metrics.updateSize(len(m.items))
	}
}

// recordLookup updates stats and metrics after a lookup. Lock must be held.
func (m *Locked[K, V]) recordLookup(hit bool) {
	// ALWAYS track in stats
	if hit {
		m.stats.Hit()
	} else {
		m.stats.Miss()
	}

	// ALSO track in metrics if enabled
	if m.metrics != nil {
		if hit {
			m.metrics.recordHit()
		} else {
			m.metrics.recordMiss()
		}
	}
}

// EqualLocked reports whether two Locked maps hold equal backing storage.
// The first map is snapshotted under its own lock, then compared under the
// second map's lock: equality therefore describes one observed interleaving,
// and no two locks are ever held at once, so lock ordering cannot deadlock.
func EqualLocked[K, V comparable](a, b *Locked[K, V]) bool {
	if a == b {
		return true
	}

	snapshot := a.snapshot()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.ensureReady()

	return maps.Equal(snapshot, b.items)
}

// ReserveUniqueKeyLocked repeatedly samples a random key in [min, max) until
// an unused one is found, stores value there and returns the key. The entire
// probe loop runs under one lock acquisition. A nearly exhausted key space
// makes this spin while holding the lock; that is an accepted cost.
func ReserveUniqueKeyLocked[K Integral, V any](m *Locked[K, V], min, max K, value V) K {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureReady()

	for {
		key := randomKey(min, max)
		if _, exists := m.items[key]; !exists {
			m.items[key] = value
			m.recordSet()
			return key
		}
	}
}
