package kvmap

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/c360/containerkit/errors"
)

func TestLockedRequiresSetup(t *testing.T) {
	m, err := NewLocked[string, int]()
	require.NoError(t, err, "Failed to create map")

	require.Panics(t, func() { m.Set("a", 1) })
	require.Panics(t, func() { m.Get("a") })
	require.Panics(t, func() { m.Len() })

	m.Setup()
	m.Set("a", 1)
	require.Equal(t, 1, m.Len())

	// Setup is idempotent: a second call never wipes entries
	m.Setup()
	require.Equal(t, 1, m.Len())
}

func TestLockedZeroValueAfterSetup(t *testing.T) {
	var m Locked[string, int]
	m.Setup()

	m.Set("a", 1)
	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.NotNil(t, m.Stats())
}

func TestLockedBasicOperations(t *testing.T) {
	m, err := NewLocked[string, int]()
	require.NoError(t, err)
	m.Setup()

	m.Set("a", 1)
	m.Set("b", 2)

	require.True(t, m.Contains("a"))
	require.True(t, m.Delete("a"))
	require.False(t, m.Delete("a"))
	require.Equal(t, 1, m.Len())

	_, err = m.Require("a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrKeyNotFound))

	v, err := m.Require("b")
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestLockedGetOrDefault(t *testing.T) {
	m, err := NewLocked[string, int]()
	require.NoError(t, err)
	m.Setup()

	m.Set("a", 1)
	require.Equal(t, 1, m.GetOrDefault("a", 99))
	require.Equal(t, 99, m.GetOrDefault("missing", 99))

	// GetOrDefault never inserts
	require.Equal(t, 1, m.Len())
}

func TestLockedConcurrentGetOrInsert(t *testing.T) {
	m, err := NewLocked[string, int]()
	require.NoError(t, err)
	m.Setup()

	const goroutines = 32
	var lazyCalls int64

	var g errgroup.Group
	results := make([]int, goroutines)
	for i := 0; i < goroutines; i++ {
		i := i
		g.Go(func() error {
			results[i] = m.GetOrInsert("shared", func() int {
				return int(atomic.AddInt64(&lazyCalls, 1))
			})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Exactly one racer wins the insert; every caller observes its value
	require.Equal(t, int64(1), atomic.LoadInt64(&lazyCalls))
	for _, r := range results {
		require.Equal(t, 1, r)
	}
	require.Equal(t, 1, m.Len())
}

func TestLockedUpdateOrCreate(t *testing.T) {
	m, err := NewLocked[string, int]()
	require.NoError(t, err)
	m.Setup()

	v := m.UpdateOrCreate("counter",
		func() int { return 1 },
		func(old int) int { return old + 1 },
	)
	require.Equal(t, 1, v)

	v = m.UpdateOrCreate("counter",
		func() int { return 1 },
		func(old int) int { return old + 1 },
	)
	require.Equal(t, 2, v)
}

func TestLockedConcurrentUpdateOrCreate(t *testing.T) {
	m, err := NewLocked[string, int]()
	require.NoError(t, err)
	m.Setup()

	const goroutines = 16
	const perGoroutine = 100

	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			for j := 0; j < perGoroutine; j++ {
				m.UpdateOrCreate("counter",
					func() int { return 1 },
					func(old int) int { return old + 1 },
				)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// Each increment is a single critical section, so none are lost
	v, ok := m.Get("counter")
	require.True(t, ok)
	require.Equal(t, goroutines*perGoroutine, v)
}

func TestLockedKeysValuesAreCopies(t *testing.T) {
	m, err := NewLocked[string, int]()
	require.NoError(t, err)
	m.Setup()

	m.Set("a", 1)
	keys := m.Keys()
	values := m.Values()

	m.Set("b", 2)
	require.Len(t, keys, 1)
	require.Len(t, values, 1)
}

func TestLockedClearAndRehash(t *testing.T) {
	m, err := NewLocked[string, int]()
	require.NoError(t, err)
	m.Setup()

	m.Set("a", 1)
	m.Set("b", 2)

	m.Rehash()
	require.Equal(t, 2, m.Len())
	assert.Equal(t, int64(1), m.Stats().Rehashes())

	m.Clear()
	require.Equal(t, 0, m.Len())
	require.False(t, m.Contains("a"))
}

func TestEqualLocked(t *testing.T) {
	a, err := NewLocked[string, int]()
	require.NoError(t, err)
	a.Setup()
	b, err := NewLocked[string, int]()
	require.NoError(t, err)
	b.Setup()

	require.True(t, EqualLocked(a, b))

	a.Set("x", 1)
	require.False(t, EqualLocked(a, b))

	b.Set("x", 1)
	require.True(t, EqualLocked(a, b))
}

func TestReserveUniqueKeyLocked(t *testing.T) {
	m, err := NewLocked[uint32, string]()
	require.NoError(t, err)
	m.Setup()

	const reservations = 64
	var g errgroup.Group
	keys := make([]uint32, reservations)
	for i := 0; i < reservations; i++ {
		i := i
		g.Go(func() error {
			keys[i] = ReserveUniqueKeyLocked(m, 0, 1<<16, "v")
			return nil
		})
	}
	require.NoError(t, g.Wait())

	seen := make(map[uint32]bool)
	for _, k := range keys {
		require.False(t, seen[k], "key %d reserved twice", k)
		seen[k] = true
	}
	require.Equal(t, reservations, m.Len())
}
