// ════════════════════════════════════════════════════════════════════════════════════════════════
// Host Fence & Relax - ARM64 Architecture
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Interrupt-Masked Atomic Runtime
// Component: ARM64 Hardware Primitive Backing
//
// Description:
//   Platform-specific backing for the emulated core's barrier and spin-hint
//   primitives on ARM64 hosts. The modeled target's dmb maps directly to
//   `dmb ish`; the harness spin hint maps to YIELD.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

//go:build arm64 && !noasm && !nocgo

package cpu

/*
#ifdef __aarch64__
static inline void cpu_fence() {
    __asm__ __volatile__("dmb ish" ::: "memory");
}
static inline void cpu_yield() {
    __asm__ __volatile__("yield" ::: "memory");
}
#else
#error "This file requires ARM64 architecture"
#endif
*/
import "C"

// cpuFence issues `dmb ish`, the same instruction the modeled target uses.
//
//go:nosplit
//go:inline
func cpuFence() {
	C.cpu_fence()
}

// Relax emits the ARM64 YIELD instruction for harness spin-wait loops.
//
//go:nosplit
//go:inline
func Relax() {
	C.cpu_yield()
}
