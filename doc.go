// Package containerkit provides allocation-conscious container primitives for
// performance-sensitive applications.
//
// # Philosophy
//
// ContainerKit wraps primitive backing stores (flat slices and Go maps) with
// just enough bookkeeping to make amortized-cost, low-allocation operations
// safe and correct. It does not reimplement hashing or collision resolution -
// the built-in map is always the backing store - and it does not do any I/O.
//
// The module contains four independent, leaf-level container types. None of
// them depends on another; each is usable standalone:
//
//   - buffer.Linear: single-ended FIFO queue over a flat slice, with either
//     fixed capacity or amortized 1.5x growth
//   - buffer.Ring: fixed-or-growable circular buffer that overwrites the
//     oldest entry once full and drains newest-first
//   - kvmap.Rehashing: a map wrapper that counts fresh insertions and rebuilds
//     its backing storage once a growth heuristic is crossed
//   - kvmap.Locked: a map behind a single mutex exposing atomic compound
//     operations (get-or-insert, update-or-create, unique-key reservation)
//
// # Observability
//
// Every container collects statistics unconditionally - observability is not
// optional. Statistics use atomic counters and are safe to read concurrently.
// Prometheus export is opt-in per container via the WithMetrics functional
// option together with a metric.MetricsRegistry.
//
// # Error Model
//
// Precondition failures (overflowing a fixed buffer, reading an empty one,
// using a kvmap.Locked before Setup) are programming errors and panic.
// Recoverable conditions (missing keys via Require, invalid configuration,
// metrics registration conflicts) return classified errors from the errors
// package, supporting errors.Is/As and transient/invalid/fatal triage.
//
// # Concurrency
//
// buffer.Linear, buffer.Ring and kvmap.Rehashing are single-goroutine value
// types with no internal synchronization. kvmap.Locked is the one concurrent
// type: a single mutex guards the whole backing map and every public
// operation, including user-supplied lazy callbacks, runs as one critical
// section.
package containerkit
