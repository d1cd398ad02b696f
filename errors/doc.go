// Package errors provides standardized error handling patterns for ContainerKit.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable), and
// Fatal (unrecoverable, stop processing).
//
// The classification integrates with Go's standard error handling patterns,
// supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Quick Start
//
// Use standard error variables for known conditions:
//
//	if !m.Contains(key) {
//	    return errors.ErrKeyNotFound
//	}
//
// Wrap errors with context for debugging:
//
//	if err := cfg.Validate(); err != nil {
//	    return errors.WrapInvalid(err, "kvmap", "NewFromConfig", "config validation")
//	}
//
// Check classification to decide how to react:
//
//	if err := op(); err != nil {
//	    if errors.IsInvalid(err) {
//	        // caller bug or bad config, do not retry
//	    }
//	}
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: <underlying error>"
//
// which keeps error strings grep-able and uniform across packages.
//
// # Contract Violations
//
// Precondition failures inside the container types (overflowing a fixed
// buffer, popping an empty one, using kvmap.Locked before Setup) do NOT use
// this package: they are programming errors and panic instead. This package
// covers only recoverable conditions a correct caller may still encounter.
package errors
