// Package buffer provides FIFO and circular buffers over flat backing storage,
// with built-in statistics tracking and optional Prometheus metrics integration.
//
// # Overview
//
// The buffer package implements allocation-conscious buffers for applications
// that want predictable memory behavior: backing storage is a flat slice owned
// exclusively by the buffer, growth follows an explicit amortized 1.5x policy,
// and draining a queue completely costs O(1) without zeroing memory.
//
// # Quick Start
//
// Fixed FIFO queue:
//
//	q, err := buffer.NewLinear[int](16)
//	if err != nil {
//		log.Fatal(err)
//	}
//	q.Put(42)
//	v := q.Front()
//	q.PopFront()
//
// Growable FIFO queue:
//
//	q, _ := buffer.NewGrowableLinear[string](64)
//	q.Reserve(1024) // optional pre-sizing
//
// Bounded history ring:
//
//	r, _ := buffer.NewRing[event](128)
//	r.Put(ev)            // once full, the oldest entry is overwritten
//	latest := r.Front()  // most recently inserted
//	r.PopFront()         // walks toward older entries
//
// # Ring Drain Direction
//
// Ring deliberately drains newest-first: Front returns the most recently
// inserted element and PopFront steps backward through history. This suits
// the "bounded recent history" use case the type exists for; it is not a
// FIFO queue, use Linear for that.
//
// # Contract Violations
//
// Writing past the capacity of a fixed Linear, reading an empty buffer, and
// operating on a zero-capacity Ring are programming errors and panic. They
// are precondition failures correct calling code never triggers, not
// recoverable conditions.
//
// # Observability
//
// Statistics are ALWAYS collected (atomic counters, safe for concurrent
// reads). Prometheus export is opt-in:
//
//	r, err := buffer.NewRing[int](128,
//		buffer.WithMetrics[int](registry, "scrollback"),
//		buffer.WithDropCallback[int](func(v int) { log.Printf("dropped %d", v) }),
//	)
package buffer
