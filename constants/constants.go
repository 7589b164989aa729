// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go — Target-Model Constants & Soak Tunables
//
// Purpose:
//   - Defines the modeled core's bus geometry and interrupt-controller sizing.
//   - Includes soak-harness tunables: iteration budgets, sweep depths, cadence.
//
// Notes:
//   - The modeled target is a single-core, 32-bit-bus MCU class (Cortex-M0
//     grade): no exclusive load/store, global interrupt masking, dmb only.
//   - Widths at or below BusWordBytes complete in one bus transaction and are
//     indivisible with respect to interrupts; wider accesses are split and
//     must be protected by the critical-section wrapper.
//
// ⚠️ No runtime logic here — all values must be compile-time resolvable
// ─────────────────────────────────────────────────────────────────────────────

package constants

// ───────────────────────────── Bus Geometry ────────────────────────────────

const (
	// BusWordBytes is the width of a single data-bus transaction on the
	// modeled target. Accesses wider than this are performed as multiple
	// transactions and can be interleaved by interrupt delivery unless
	// wrapped in a critical section. The 8-byte entry points derive their
	// "needs protection" decision from this value — it is the one knob to
	// retune when porting the model to a core with a different bus width.
	BusWordBytes = 4

	// DoubleWordBytes is the widest access the entry points support.
	DoubleWordBytes = 8
)

// ─────────────────────── Interrupt Controller Sizing ───────────────────────

const (
	// IRQLines is the number of external interrupt vectors the emulated
	// controller exposes. Matches the Cortex-M0 NVIC budget.
	IRQLines = 32

	// PendRingBits sizes the pending-interrupt FIFO: 2^8 = 256 slots.
	// Power-of-2 for mask-based indexing. Deep enough that a soak storm
	// pending from a single producer never overflows between sync points.
	PendRingBits = 8
)

// ─────────────────────────── Soak Harness Tunables ─────────────────────────

const (
	// DefaultIterations is the per-scenario iteration budget when the
	// target profile does not override it.
	DefaultIterations = 100000

	// PatternWords is how many 64-bit soak patterns are expanded from each
	// profile seed. Covers all-zeros, all-ones, half-splits and a body of
	// hash-derived noise.
	PatternWords = 64

	// NestDepthMax bounds the nesting-balance sweep. Real firmware rarely
	// nests critical sections beyond a handful of frames; 32 gives margin.
	NestDepthMax = 32

	// ProgressEvery controls heartbeat cadence: one activity signal per
	// this many scenario iterations. Keeps the soak loop branch-cheap.
	ProgressEvery = 1 << 12
)
