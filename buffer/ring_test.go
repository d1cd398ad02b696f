package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingCapacityTwoOverwrite(t *testing.T) {
	r, err := NewRing[int](2)
	require.NoError(t, err, "Failed to create ring")

	for _, v := range []int{1, 2, 3, 4} {
		r.Put(v)
	}

	// Oldest entries silently overwritten
	require.Equal(t, []int{3, 4}, r.items)
	require.Equal(t, 4, r.Front())
}

func TestRingCapacityThreeSequence(t *testing.T) {
	r, err := NewRing[int](3)
	require.NoError(t, err)

	for _, v := range []int{1, 2, 3, 4} {
		r.Put(v)
	}

	require.Equal(t, []int{4, 2, 3}, r.items)
	require.Equal(t, 4, r.Front())

	// Three pops drain it
	r.PopFront()
	require.False(t, r.Empty())
	r.PopFront()
	require.False(t, r.Empty())
	r.PopFront()
	require.True(t, r.Empty())
}

func TestRingDrainsNewestFirst(t *testing.T) {
	r, err := NewRing[int](4)
	require.NoError(t, err)

	r.Put(1)
	r.Put(2)
	r.Put(3)

	// Front walks from newest toward oldest
	require.Equal(t, 3, r.Front())
	r.PopFront()
	require.Equal(t, 2, r.Front())
	r.PopFront()
	require.Equal(t, 1, r.Front())
}

func TestRingEmptyAndZeroCapacity(t *testing.T) {
	r, err := NewRing[int](2)
	require.NoError(t, err)

	require.True(t, r.Empty())
	require.Panics(t, func() { r.PopFront() }, "PopFront on empty ring must panic")

	require.Panics(t, func() { NewRing[int](1) }, "capacity below 2 must panic")
	require.Panics(t, func() { NewRing[int](0) }, "zero capacity must panic")

	var zero Ring[int]
	require.Panics(t, func() { zero.Front() }, "Front on zero-capacity ring must panic")
	require.Panics(t, func() { zero.Put(1) }, "Put on zero-capacity ring must panic")
}

func TestRingSaveIsCursorIndependent(t *testing.T) {
	r, err := NewRing[int](3)
	require.NoError(t, err)

	r.Put(1)
	r.Put(2)
	r.Put(3)

	saved := r.Save()
	require.Equal(t, 3, saved.Front())

	// Advancing the original must not move the snapshot's cursors
	r.PopFront()
	r.PopFront()
	require.Equal(t, 1, r.Front())
	require.Equal(t, 3, saved.Front())
}

func TestRingDupIsStorageIndependent(t *testing.T) {
	r, err := NewGrowableRing[int](3)
	require.NoError(t, err)

	r.Put(1)
	r.Put(2)

	dup := r.Dup()

	// Mutating the copy never affects the original
	dup.Put(99)
	dup.Put(98)
	require.Equal(t, 2, r.Front())
	assert.NotEqual(t, r.items, dup.items)
}

func TestRingResizeClampsCursors(t *testing.T) {
	r, err := NewGrowableRing[int](5)
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		r.Put(i)
	}
	require.Equal(t, 4, r.head)

	r.Resize(3)
	require.Equal(t, 3, r.Cap())
	require.Equal(t, 2, r.head, "out-of-range head clamped to n-1")
	require.Equal(t, 2, r.tail, "out-of-range tail clamped to n-1")

	fixed, err := NewRing[int](3)
	require.NoError(t, err)
	require.Panics(t, func() { fixed.Resize(5) }, "Resize on a fixed ring must panic")
}

func TestRingClearVersusReset(t *testing.T) {
	r, err := NewRing[int](3)
	require.NoError(t, err)

	r.Put(1)
	r.Put(2)

	// Reset touches cursors only
	r.Reset()
	require.True(t, r.Empty())
	require.Equal(t, []int{1, 2, 0}, r.items, "Reset must not zero storage")

	r.Put(7)
	r.Clear()
	require.True(t, r.Empty())
	require.Equal(t, []int{0, 0, 0}, r.items, "Clear must zero storage")
}

func TestRingOverwriteStatsAndCallback(t *testing.T) {
	var dropped []int
	r, err := NewRing[int](2, WithDropCallback[int](func(v int) {
		dropped = append(dropped, v)
	}))
	require.NoError(t, err)

	r.Put(1)
	r.Put(2)
	r.Put(3)
	r.Put(4)

	require.Equal(t, []int{1, 2}, dropped)

	stats := r.Stats()
	assert.Equal(t, int64(4), stats.Writes())
	assert.Equal(t, int64(2), stats.Overwrites())
	assert.Equal(t, int64(2), stats.Drops())
	assert.Equal(t, int64(2), stats.CurrentLen())
}

func TestRingReuseAfterDrain(t *testing.T) {
	r, err := NewRing[int](3)
	require.NoError(t, err)

	r.Put(1)
	r.Put(2)
	r.PopFront()
	r.Put(9)

	require.Equal(t, 9, r.Front())
	require.False(t, r.Empty())
}
