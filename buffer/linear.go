package buffer

import "github.com/c360/containerkit/errors"

// Linear is a single-ended FIFO queue over a flat slice. Items are appended
// at the end cursor and consumed at the front cursor; when the queue drains
// completely both cursors snap back to zero, so a fully-consumed queue reuses
// its storage with no allocation and no zeroing.
//
// A Linear is either fixed (NewLinear) or growable (NewGrowableLinear).
// Overflowing a fixed Linear and reading an empty one are contract
// violations and panic.
//
// Linear is a single-goroutine type with no internal locking. The backing
// storage is exclusively owned by the buffer; no external aliasing.
type Linear[T any] struct {
	items      []T
	pos        int // index of the current front element
	end        int // index one past the last written element
	initialCap int
	growable   bool
	stats      *Statistics    // ALWAYS initialized for observability
	metrics    *bufferMetrics // Optional Prometheus metrics
	dropFn     DropCallback[T]
}

// NewLinear creates a fixed-capacity FIFO buffer. Writing past capacity
// panics. Stats are ALWAYS collected; metrics are optional via WithMetrics().
// Returns an error if metrics registration fails when metrics are requested.
func NewLinear[T any](capacity int, options ...Option[T]) (*Linear[T], error) {
	if capacity <= 0 {
		capacity = 1 // Minimum capacity
	}

	b, err := newLinear(capacity, applyOptions(options...))
	if err != nil {
		return nil, err
	}
	b.items = make([]T, capacity)
	return b, nil
}

// NewGrowableLinear creates a growable FIFO buffer. Storage starts empty; the
// first growth allocates initialCapacity slots and subsequent growths multiply
// capacity by 1.5, never dropping below initialCapacity.
func NewGrowableLinear[T any](initialCapacity int, options ...Option[T]) (*Linear[T], error) {
	if initialCapacity <= 0 {
		initialCapacity = 1 // Minimum capacity
	}

	b, err := newLinear(initialCapacity, applyOptions(options...))
	if err != nil {
		return nil, err
	}
	b.growable = true
	return b, nil
}

func newLinear[T any](initialCap int, opts *bufferOptions[T]) (*Linear[T], error) {
	// Stats are ALWAYS initialized - observability is not optional
	stats := NewStatistics()

	var metrics *bufferMetrics
	// Optionally expose stats as Prometheus metrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		var err error
		metrics, err = newBufferMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			// Return classified error instead of silently ignoring
			return nil, errors.WrapTransient(err, "buffer", "newLinear", "metrics registration")
		}
	}

	return &Linear[T]{
		initialCap: initialCap,
		stats:      stats,   // ALWAYS present
		metrics:    metrics, // Optional
		dropFn:     opts.dropCallback,
	}, nil
}

// Put appends one item at the end cursor. A growable buffer grows its
// capacity by 1.5x when exhausted; a fixed buffer panics.
func (b *Linear[T]) Put(item T) {
	if b.end == len(b.items) {
		if !b.growable {
			panic("buffer: Put on a full fixed Linear buffer")
		}
		b.grow(grownCapacity(len(b.items), b.initialCap))
	}

	b.items[b.end] = item
	b.end++

	// ALWAYS track in stats
	b.stats.Write()
	b.stats.UpdateLen(int64(b.Len()))

	// ALSO track in metrics if enabled
	if b.metrics != nil {
		b.metrics.recordWrite(b.Len(), len(b.items))
	}
}

// Front returns the element at the front cursor without removing it.
// Panics when the buffer is empty.
func (b *Linear[T]) Front() T {
	if b.Empty() {
		panic("buffer: Front on an empty Linear buffer")
	}

	// ALWAYS track in stats
	b.stats.Peek()

	// ALSO track in metrics if enabled
	if b.metrics != nil {
		b.metrics.recordPeek()
	}

	return b.items[b.pos]
}

// PopFront advances the front cursor past the current front element. When the
// last element is consumed both cursors reset to zero: the queue is emptied in
// O(1) without zeroing memory, and stale values stay in storage but are
// inaccessible. Panics when the buffer is empty.
func (b *Linear[T]) PopFront() {
	if b.Empty() {
		panic("buffer: PopFront on an empty Linear buffer")
	}

	b.pos++
	if b.pos == b.end {
		// Soft empty, storage contents retained.
		b.pos = 0
		b.end = 0
	}

	// ALWAYS track in stats
	b.stats.Read()
	b.stats.UpdateLen(int64(b.Len()))

	// ALSO track in metrics if enabled
	if b.metrics != nil {
		b.metrics.recordRead(b.Len(), len(b.items))
	}
}

// Len returns the current number of items in the buffer.
func (b *Linear[T]) Len() int {
	return b.end - b.pos
}

// Cap returns the current storage capacity.
func (b *Linear[T]) Cap() int {
	return len(b.items)
}

// Empty returns true if the buffer contains no items.
func (b *Linear[T]) Empty() bool {
	return b.end == b.pos
}

// Reserve grows capacity to at least n. No-op when capacity already suffices.
// Panics on a fixed buffer.
func (b *Linear[T]) Reserve(n int) {
	if !b.growable {
		panic("buffer: Reserve on a fixed Linear buffer")
	}
	if n <= len(b.items) {
		return
	}
	b.grow(n)
}

// Clear resets the cursors and overwrites every storage slot with the zero
// value, unlike the soft empty left behind by a full drain. Remaining items
// are reported to the drop callback.
func (b *Linear[T]) Clear() {
	dropped := b.Len()
	if b.dropFn != nil {
		for i := b.pos; i < b.end; i++ {
			b.dropFn(b.items[i])
		}
	}

	var zero T
	for i := range b.items {
		b.items[i] = zero
	}
	b.pos = 0
	b.end = 0

	// ALWAYS track in stats
	for i := 0; i < dropped; i++ {
		b.stats.Drop()
	}
	b.stats.UpdateLen(0)

	// ALSO track in metrics if enabled
	if b.metrics != nil {
		for i := 0; i < dropped; i++ {
			b.metrics.recordDrop()
		}
		b.metrics.updateLen(0, len(b.items))
	}
}

// Stats returns buffer statistics (always available for observability).
func (b *Linear[T]) Stats() *Statistics {
	return b.stats
}

// grow reallocates storage at the given capacity, preserving contents.
func (b *Linear[T]) grow(capacity int) {
	items := make([]T, capacity)
	copy(items, b.items[:b.end])
	b.items = items
	b.stats.Grow()
}
