// ============================================================================
// INTERRUPT-MASKED CRITICAL SECTIONS
// ============================================================================
//
// Runs a deferred computation atomically with respect to interrupt handlers
// on the same core. Atomicity comes from masking, not from any exclusive
// hardware mechanism: the wrapper saves the current interrupt-enable state,
// masks, runs the action, and writes the saved state back verbatim.
//
// Nesting property (the central correctness obligation): only the outermost
// section transitions the mask. An inner section finds interrupts already
// masked, receives that as its saved state, and restores exactly it — so it
// can never re-enable early and break the outer section's guarantee. Any
// nesting depth is balanced with no side effect beyond the first disable and
// the last enable.
//
// Caller obligations (documented, not enforceable here):
//   - The action must not block, sleep, or spin on interrupt-driven state;
//     with interrupts masked that deadlocks the core.
//   - The action must not panic: there is deliberately no defer on the
//     restore path, matching the zero-overhead contract of the entry points
//     built on top.

package critsec

import "main/cpu"

// With runs fn with interrupts masked. Unit-result form.
//
//go:nosplit
//go:inline
func With(fn func()) {
	st := cpu.DisableInterrupts()
	fn()
	cpu.RestoreInterrupts(st)
}

// Do runs fn with interrupts masked and forwards its result unchanged.
// Generic over the result type so the width entry points can defer loads,
// stores and exchanges through one primitive instead of per-type copies.
//
//go:nosplit
//go:inline
func Do[T any](fn func() T) T {
	st := cpu.DisableInterrupts()
	v := fn()
	cpu.RestoreInterrupts(st)
	return v
}
