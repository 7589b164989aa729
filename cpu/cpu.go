// ============================================================================
// EMULATED SINGLE-CORE INTERRUPT MODEL
// ============================================================================
//
// Hosted stand-in for the two hardware touchpoints the atomic runtime needs:
// the global interrupt-enable flag (PRIMASK on the modeled core) and the data
// memory barrier instruction. Everything above this package — ordering policy,
// critical sections, width dispatch — is portable and talks only to these
// primitives, so a real port replaces this package and nothing else.
//
// Execution model:
//   - One goroutine plays the core. All mainline calls (mask manipulation,
//     sync points, atomic entry points) happen on it.
//   - Interrupt requests are pended into a fixed FIFO and delivered
//     synchronously at sync points and at the masked→unmasked transition,
//     which is exactly where real hardware would take a pended IRQ.
//   - A handler frame runs with interrupts masked (same-priority blocking,
//     Cortex-M style); requests arriving meanwhile stay pended. Handler
//     frames never nest.
//
// Shared-state discipline:
//   - The mask and counters are process-global, mirroring the single global
//     interrupt-enable flag of the target. Save/restore is the only protocol:
//     DisableInterrupts returns the prior state and RestoreInterrupts writes
//     it back verbatim, so arbitrarily nested sections stay balanced.
//
// ⚠️  SPSC discipline on the pending FIFO: one pending producer at a time.

package cpu

import (
	"sync/atomic"

	"main/constants"
)

// ═══════════════════════════════════════════════════════════════════════════
// EMULATED REGISTERS
// ═══════════════════════════════════════════════════════════════════════════

// IntrState is a saved interrupt-mask value as returned by DisableInterrupts:
// 0 means interrupts were enabled, 1 means they were already masked.
type IntrState uint32

var (
	primask  uint32 // emulated PRIMASK: 0 = interrupts enabled, 1 = masked
	inIRQ    uint32 // non-zero while a handler frame is active
	barriers uint64 // barrier instructions issued since Reset
	dropped  uint64 // pend requests lost to FIFO overflow since Reset

	// Vector table. Registration is a setup-time operation; delivery only
	// ever reads it.
	handlers [constants.IRQLines]func()

	pending = newPendRing(1 << constants.PendRingBits)
)

// ═══════════════════════════════════════════════════════════════════════════
// INTERRUPT MASK (save/restore discipline)
// ═══════════════════════════════════════════════════════════════════════════

// DisableInterrupts masks interrupt delivery and returns the prior mask
// state. The caller must hand that exact value back to RestoreInterrupts;
// the pair is the cpsid/cpsie + PRIMASK-save sequence of the real core.
//
//go:nosplit
//go:inline
func DisableInterrupts() IntrState {
	prev := IntrState(atomic.LoadUint32(&primask))
	atomic.StoreUint32(&primask, 1)
	return prev
}

// RestoreInterrupts writes back a mask state saved by DisableInterrupts.
// Restoring the enabled state takes any pended interrupts immediately, the
// way hardware does on unmask. Restoring a masked state is a no-op beyond
// the register write, which is what keeps nested sections balanced: only the
// outermost restore re-enables.
//
//go:nosplit
func RestoreInterrupts(st IntrState) {
	atomic.StoreUint32(&primask, uint32(st))
	if st == 0 {
		deliverPending()
	}
}

// InterruptsEnabled reports the emulated mask state.
//
//go:nosplit
//go:inline
func InterruptsEnabled() bool {
	return atomic.LoadUint32(&primask) == 0
}

// ═══════════════════════════════════════════════════════════════════════════
// PENDING-INTERRUPT CONTROLLER
// ═══════════════════════════════════════════════════════════════════════════

// RegisterHandler installs fn on the given vector. Setup-time only; installing
// over a live storm is not supported. Panics on an out-of-range vector, same
// contract as configuring a nonexistent IRQ line.
func RegisterHandler(irq int, fn func()) {
	if irq < 0 || irq >= constants.IRQLines {
		panic("cpu: irq vector out of range")
	}
	handlers[irq] = fn
}

// Pend queues an interrupt request. Requests are never taken here — delivery
// happens at the next sync point or unmask on the core goroutine, so pending
// from a second goroutine cannot smear a handler across two threads. A full
// FIFO drops the request and counts it; a storm that outruns the ring is a
// harness configuration error, not silent corruption.
//
//go:nosplit
func Pend(irq int) {
	if irq < 0 || irq >= constants.IRQLines {
		panic("cpu: irq vector out of range")
	}
	if !pending.push(uint32(irq)) {
		atomic.AddUint64(&dropped, 1)
	}
}

// SyncPoint marks an instruction boundary: the only places the emulation may
// take a pended interrupt (besides unmask). The split-access path calls this
// between bus transactions; with interrupts masked it costs two loads and
// delivers nothing.
//
//go:nosplit
//go:inline
func SyncPoint() {
	if atomic.LoadUint32(&primask) == 0 && atomic.LoadUint32(&inIRQ) == 0 {
		deliverPending()
	}
}

// deliverPending drains the FIFO, running each handler in a masked frame.
// Handlers that pend further IRQs extend the drain; a handler pending its own
// vector livelocks exactly as it would on hardware.
func deliverPending() {
	if atomic.LoadUint32(&inIRQ) != 0 {
		return // handler frames don't nest
	}
	for {
		irq, ok := pending.pop()
		if !ok {
			return
		}
		atomic.StoreUint32(&inIRQ, 1)
		saved := atomic.LoadUint32(&primask)
		atomic.StoreUint32(&primask, 1)
		if h := handlers[irq]; h != nil {
			h()
		}
		atomic.StoreUint32(&primask, saved)
		atomic.StoreUint32(&inIRQ, 0)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// BARRIER INSTRUCTION
// ═══════════════════════════════════════════════════════════════════════════

// DataMemoryBarrier is the target's dmb: it orders memory accesses across
// itself. The hosted build issues a real fence for the architecture it runs
// on and records the issue for ordering verification.
//
//go:nosplit
//go:inline
func DataMemoryBarrier() {
	cpuFence()
	atomic.AddUint64(&barriers, 1)
}

// BarrierCount returns the number of barriers issued since Reset. Ordering
// tests difference this around an operation to pin barrier placement.
//
//go:nosplit
//go:inline
func BarrierCount() uint64 {
	return atomic.LoadUint64(&barriers)
}

// PendDrops returns the number of pend requests lost to FIFO overflow.
func PendDrops() uint64 {
	return atomic.LoadUint64(&dropped)
}

// ═══════════════════════════════════════════════════════════════════════════
// POWER-ON RESET
// ═══════════════════════════════════════════════════════════════════════════

// Reset returns the emulated core to its power-on state: interrupts enabled,
// no handler frame active, vector table cleared, FIFO empty, counters zero.
// Harness and test support only; never called by the runtime paths.
func Reset() {
	atomic.StoreUint32(&primask, 0)
	atomic.StoreUint32(&inIRQ, 0)
	atomic.StoreUint64(&barriers, 0)
	atomic.StoreUint64(&dropped, 0)
	for i := range handlers {
		handlers[i] = nil
	}
	pending.reset()
}
