// Package kvmap provides map wrappers that layer rehash and locking policy
// on top of Go's built-in map, with built-in statistics and optional
// Prometheus metrics integration.
//
// # Overview
//
// Both types in this package wrap a plain map[K]V; neither reimplements
// hashing or collision resolution. What they add is bookkeeping:
//
//   - Rehashing counts fresh insertions and rebuilds the backing map into a
//     freshly allocated one once a growth heuristic is crossed, reclaiming
//     the slack Go's runtime never compacts away
//   - Locked serializes all access behind a single mutex and offers atomic
//     compound operations so callers never observe a half-updated map
//
// # Quick Start
//
// Self-rehashing map:
//
//	m, err := kvmap.NewRehashing[string, int]()
//	if err != nil {
//		log.Fatal(err)
//	}
//	m.Set("answer", 42)
//	v, ok := m.Get("answer")
//
// With a custom policy and a rehash observer:
//
//	m, err := kvmap.NewRehashingFromConfig[string, int](
//		kvmap.Config{MinKeysForRehash: 128, GrowthMultiplier: 2.0},
//		kvmap.WithRehashObserver[string, int](func(items map[string]int) {
//			// fired after every rebuild, items is the live backing map
//		}),
//	)
//
// Mutex-guarded map:
//
//	m, err := kvmap.NewLocked[string, *session]()
//	if err != nil {
//		log.Fatal(err)
//	}
//	m.Setup() // required before any operation, idempotent
//
//	s := m.GetOrInsert("nick", func() *session { return newSession() })
//
// # Atomic Compound Operations
//
// Locked exists for its compound primitives. GetOrInsert checks and inserts
// in one critical section, so concurrent callers racing on the same absent
// key produce exactly one stored value. UpdateOrCreate likewise runs its
// create-or-update callback and the store under a single lock acquisition.
// The naive alternative, a Contains call followed by a separate Set, would
// admit duplicate inserts and lost updates between the two lock windows.
//
// Lazy callbacks run while the lock is held. Touching the same map instance
// from inside one deadlocks permanently; this is a documented caller
// obligation.
//
// # Unique Key Reservation
//
// For integral key types, ReserveUniqueKey and ReserveUniqueKeyLocked sample
// random keys in [min, max) until a free one is found, then store the given
// value under it. The random source only needs to be uniform over the range;
// there are no cryptographic or seeding requirements. A nearly exhausted
// range makes the probe loop spin - an accepted cost, never an error.
//
// # Contract Violations
//
// Calling any Locked operation before Setup is a programming error and
// panics. Missing keys via Require are recoverable and return a classified
// errors.ErrKeyNotFound.
package kvmap
