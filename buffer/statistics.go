package buffer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Statistics tracks buffer performance metrics.
// Counters are atomic so Statistics may be read from other goroutines even
// though the buffers themselves are single-goroutine types.
type Statistics struct {
	// Atomic counters for thread-safe updates
	writes     int64
	reads      int64
	peeks      int64
	overwrites int64
	drops      int64
	grows      int64

	// Protected by mutex
	mu         sync.RWMutex
	startTime  time.Time
	currentLen int64
	maxLen     int64
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{
		startTime: time.Now(),
	}
}

// Write records a buffer write operation.
func (s *Statistics) Write() {
	atomic.AddInt64(&s.writes, 1)
}

// Read records a buffer read operation.
func (s *Statistics) Read() {
	atomic.AddInt64(&s.reads, 1)
}

// Peek records a buffer peek operation.
func (s *Statistics) Peek() {
	atomic.AddInt64(&s.peeks, 1)
}

// Overwrite records a Ring write that displaced the oldest retained item.
func (s *Statistics) Overwrite() {
	atomic.AddInt64(&s.overwrites, 1)
}

// Drop records an item discarded by overwrite or Clear.
func (s *Statistics) Drop() {
	atomic.AddInt64(&s.drops, 1)
}

// Grow records a capacity growth of a growable buffer.
func (s *Statistics) Grow() {
	atomic.AddInt64(&s.grows, 1)
}

// UpdateLen updates the current buffer length.
func (s *Statistics) UpdateLen(length int64) {
	s.mu.Lock()
	s.currentLen = length
	if length > s.maxLen {
		s.maxLen = length
	}
	s.mu.Unlock()
}

// Writes returns the total number of write operations.
func (s *Statistics) Writes() int64 {
	return atomic.LoadInt64(&s.writes)
}

// Reads returns the total number of read operations.
func (s *Statistics) Reads() int64 {
	return atomic.LoadInt64(&s.reads)
}

// Peeks returns the total number of peek operations.
func (s *Statistics) Peeks() int64 {
	return atomic.LoadInt64(&s.peeks)
}

// Overwrites returns the total number of overwrite events.
func (s *Statistics) Overwrites() int64 {
	return atomic.LoadInt64(&s.overwrites)
}

// Drops returns the total number of dropped items.
func (s *Statistics) Drops() int64 {
	return atomic.LoadInt64(&s.drops)
}

// Grows returns the total number of capacity growth events.
func (s *Statistics) Grows() int64 {
	return atomic.LoadInt64(&s.grows)
}

// CurrentLen returns the current number of items in the buffer.
func (s *Statistics) CurrentLen() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentLen
}

// MaxLen returns the maximum number of items the buffer has held.
func (s *Statistics) MaxLen() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.maxLen
}

// Uptime returns how long the buffer has been running.
func (s *Statistics) Uptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.startTime)
}

// Reset resets all statistics to zero.
func (s *Statistics) Reset() {
	atomic.StoreInt64(&s.writes, 0)
	atomic.StoreInt64(&s.reads, 0)
	atomic.StoreInt64(&s.peeks, 0)
	atomic.StoreInt64(&s.overwrites, 0)
	atomic.StoreInt64(&s.drops, 0)
	atomic.StoreInt64(&s.grows, 0)

	s.mu.Lock()
	s.startTime = time.Now()
	s.currentLen = 0
	s.maxLen = 0
	s.mu.Unlock()
}

// StatsSummary returns a snapshot of all statistics.
type StatsSummary struct {
	Writes     int64         `json:"writes"`
	Reads      int64         `json:"reads"`
	Peeks      int64         `json:"peeks"`
	Overwrites int64         `json:"overwrites"`
	Drops      int64         `json:"drops"`
	Grows      int64         `json:"grows"`
	CurrentLen int64         `json:"current_len"`
	MaxLen     int64         `json:"max_len"`
	Uptime     time.Duration `json:"uptime"`
}

// Summary returns a snapshot of all statistics.
func (s *Statistics) Summary() StatsSummary {
	return StatsSummary{
		Writes:     s.Writes(),
		Reads:      s.Reads(),
		Peeks:      s.Peeks(),
		Overwrites: s.Overwrites(),
		Drops:      s.Drops(),
		Grows:      s.Grows(),
		CurrentLen: s.CurrentLen(),
		MaxLen:     s.MaxLen(),
		Uptime:     s.Uptime(),
	}
}
