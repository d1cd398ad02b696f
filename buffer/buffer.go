// Package buffer provides generic FIFO and circular buffers over flat backing
// storage, with always-on statistics and optional Prometheus metrics.
//
// This package offers two buffer types:
//   - Linear: single-ended FIFO queue, fixed capacity or amortized 1.5x growth
//   - Ring: circular buffer that overwrites the oldest entry once full and
//     drains newest-first
//
// Both types are single-goroutine value types with no internal locking.
// Statistics are always collected for observability. Prometheus metrics can be
// optionally enabled via the WithMetrics() functional option.
package buffer

// DropCallback is called when an item is discarded, either because a full
// Ring overwrote it or because Clear threw away remaining items.
// It receives the item that was dropped.
type DropCallback[T any] func(item T)

// growFactor is the amortized growth numerator/denominator pair: capacity
// grows by 3/2 (1.5x) when a growable buffer is exhausted.
const (
	growNumerator   = 3
	growDenominator = 2
)

// grownCapacity returns the next capacity for a growable buffer currently at
// cap, never smaller than the capacity requested at construction time.
// The first growth from zero jumps straight to the construction capacity.
func grownCapacity(current, initial int) int {
	next := current * growNumerator / growDenominator
	if next < initial {
		next = initial
	}
	if next <= current {
		// Guard against stalling on tiny capacities (0 or 1 with initial 0).
		next = current + 1
	}
	return next
}
