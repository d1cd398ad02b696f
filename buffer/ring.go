package buffer

import "github.com/c360/containerkit/errors"

// Ring is a bounded history buffer: once full, each Put silently overwrites
// the oldest retained entry instead of growing. The head cursor always points
// at the most recently written element, so Front returns the newest item and
// PopFront walks backward toward progressively older ones. The head/tail pair
// together with the caughtUp flag encodes "is empty" rather than acting as a
// classic read/write cursor pair.
//
// A Ring is either fixed (NewRing) or growable via Resize (NewGrowableRing).
// Ring is a single-goroutine type with no internal locking.
type Ring[T any] struct {
	items       []T
	head        int // index of the most recently written element
	tail        int // index of the oldest retained element
	caughtUp    bool
	initialised bool
	fill        int // retained item count, bookkeeping for stats and drops only
	growable    bool
	stats       *Statistics    // ALWAYS initialized for observability
	metrics     *bufferMetrics // Optional Prometheus metrics
	dropFn      DropCallback[T]
}

// NewRing creates a fixed-capacity circular buffer. Capacity must be at least
// 2; smaller values are a contract violation and panic. Stats are ALWAYS
// collected; metrics are optional via WithMetrics().
func NewRing[T any](capacity int, options ...Option[T]) (*Ring[T], error) {
	return newRing(capacity, false, applyOptions(options...))
}

// NewGrowableRing creates a circular buffer whose capacity can later be
// changed with Resize. Capacity must be at least 2.
func NewGrowableRing[T any](capacity int, options ...Option[T]) (*Ring[T], error) {
	return newRing(capacity, true, applyOptions(options...))
}

func newRing[T any](capacity int, growable bool, opts *bufferOptions[T]) (*Ring[T], error) {
	if capacity < 2 {
		panic("buffer: Ring capacity must be at least 2")
	}

	// Stats are ALWAYS initialized - observability is not optional
	stats := NewStatistics()

	var metrics *bufferMetrics
	// Optionally expose stats as Prometheus metrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		var err error
		metrics, err = newBufferMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			// Return classified error instead of silently ignoring
			return nil, errors.WrapTransient(err, "buffer", "newRing", "metrics registration")
		}
	}

	return &Ring[T]{
		items:    make([]T, capacity),
		growable: growable,
		stats:    stats,   // ALWAYS present
		metrics:  metrics, // Optional
		dropFn:   opts.dropCallback,
	}, nil
}

// Put writes an item at the next head slot. The very first write lands at the
// initial head position; every later write advances head forward modulo
// capacity first. tail is then set to head and caughtUp raised, so tail acts
// purely as an emptiness witness, not a read cursor. When the buffer is full
// the displaced oldest entry is dropped.
func (r *Ring[T]) Put(item T) {
	if len(r.items) == 0 {
		panic("buffer: Put on a zero-capacity Ring buffer")
	}

	if r.initialised {
		r.head = (r.head + 1) % len(r.items)
	} else {
		r.initialised = true
	}

	if r.fill == len(r.items) {
		// Oldest retained entry is displaced.
		displaced := r.items[r.head]

		// ALWAYS track in stats
		r.stats.Overwrite()
		r.stats.Drop()

		// ALSO track in metrics if enabled
		if r.metrics != nil {
			r.metrics.recordOverwrite()
			r.metrics.recordDrop()
		}

		if r.dropFn != nil {
			r.dropFn(displaced)
		}
	} else {
		r.fill++
	}

	r.items[r.head] = item
	r.tail = r.head
	r.caughtUp = true

	// ALWAYS track in stats
	r.stats.Write()
	r.stats.UpdateLen(int64(r.fill))

	// ALSO track in metrics if enabled
	if r.metrics != nil {
		r.metrics.recordWrite(r.fill, len(r.items))
	}
}

// Front returns the most recently written element without removing it.
// Panics on a zero-capacity Ring.
func (r *Ring[T]) Front() T {
	if len(r.items) == 0 {
		panic("buffer: Front on a zero-capacity Ring buffer")
	}

	// ALWAYS track in stats
	r.stats.Peek()

	// ALSO track in metrics if enabled
	if r.metrics != nil {
		r.metrics.recordPeek()
	}

	return r.items[r.head]
}

// PopFront moves head one step backward toward older insertions, wrapping to
// capacity-1 from 0. The wrap clears caughtUp, which marks the buffer as
// empty once head returns to tail. Panics when empty or zero-capacity.
func (r *Ring[T]) PopFront() {
	if len(r.items) == 0 {
		panic("buffer: PopFront on a zero-capacity Ring buffer")
	}
	if r.Empty() {
		panic("buffer: PopFront on an empty Ring buffer")
	}

	if r.head == 0 {
		r.head = len(r.items) - 1
		r.caughtUp = false
	} else {
		r.head--
	}

	if r.fill > 0 {
		r.fill--
	}

	// ALWAYS track in stats
	r.stats.Read()
	r.stats.UpdateLen(int64(r.fill))

	// ALSO track in metrics if enabled
	if r.metrics != nil {
		r.metrics.recordRead(r.fill, len(r.items))
	}
}

// Empty returns true when the buffer holds no consumable items.
func (r *Ring[T]) Empty() bool {
	return !r.caughtUp && r.head == r.tail
}

// Cap returns the current storage capacity.
func (r *Ring[T]) Cap() int {
	return len(r.items)
}

// Resize changes capacity to n, preserving storage contents up to the new
// capacity. Cursors that end up outside [0, n) are clamped to n-1. Panics on
// a fixed Ring or when n is below the minimum capacity.
func (r *Ring[T]) Resize(n int) {
	if !r.growable {
		panic("buffer: Resize on a fixed Ring buffer")
	}
	if n < 2 {
		panic("buffer: Ring capacity must be at least 2")
	}

	items := make([]T, n)
	copy(items, r.items)
	r.items = items

	if r.head >= n {
		r.head = n - 1
	}
	if r.tail >= n {
		r.tail = n - 1
	}
	if r.fill > n {
		r.fill = n
	}

	r.stats.Grow()
	r.stats.UpdateLen(int64(r.fill))
	if r.metrics != nil {
		r.metrics.updateLen(r.fill, n)
	}
}

// Save returns a cursor snapshot that aliases the receiver's storage.
// Advancing the original afterwards does not move the snapshot's cursors.
func (r *Ring[T]) Save() Ring[T] {
	return *r
}

// Dup returns an independent copy with its own deep-copied storage and fresh
// statistics, so mutations of the copy never affect the original. Metrics
// registrations are not duplicated.
func (r *Ring[T]) Dup() *Ring[T] {
	dup := *r
	dup.items = make([]T, len(r.items))
	copy(dup.items, r.items)
	dup.stats = NewStatistics()
	dup.metrics = nil
	return &dup
}

// Clear resets the cursors and zeroes storage. Retained items are reported to
// the drop callback.
func (r *Ring[T]) Clear() {
	if r.dropFn != nil && r.fill > 0 {
		// Walk from newest to oldest over the retained region.
		idx := r.head
		for i := 0; i < r.fill; i++ {
			r.dropFn(r.items[idx])
			if idx == 0 {
				idx = len(r.items) - 1
			} else {
				idx--
			}
		}
	}

	dropped := r.fill
	var zero T
	for i := range r.items {
		r.items[i] = zero
	}
	r.resetCursors()

	// ALWAYS track in stats
	for i := 0; i < dropped; i++ {
		r.stats.Drop()
	}
	r.stats.UpdateLen(0)

	// ALSO track in metrics if enabled
	if r.metrics != nil {
		for i := 0; i < dropped; i++ {
			r.metrics.recordDrop()
		}
		r.metrics.updateLen(0, len(r.items))
	}
}

// Reset resets the cursors only; the contained values stay in storage.
func (r *Ring[T]) Reset() {
	r.resetCursors()
	r.stats.UpdateLen(0)
	if r.metrics != nil {
		r.metrics.updateLen(0, len(r.items))
	}
}

// Stats returns buffer statistics (always available for observability).
func (r *Ring[T]) Stats() *Statistics {
	return r.stats
}

func (r *Ring[T]) resetCursors() {
	r.head = 0
	r.tail = 0
	r.caughtUp = false
	r.initialised = false
	r.fill = 0
}
