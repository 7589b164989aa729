// ════════════════════════════════════════════════════════════════════════════════════════════════
// Host Fence & Relax - AMD64 Architecture
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Interrupt-Masked Atomic Runtime
// Component: x86-64 Hardware Primitive Backing
//
// Description:
//   Platform-specific backing for the emulated core's barrier and spin-hint
//   primitives on x86-64 hosts. The modeled target's dmb maps to MFENCE, a
//   full load/store ordering fence; the harness spin hint maps to PAUSE.
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

//go:build amd64 && !noasm && !nocgo

package cpu

/*
#ifdef __x86_64__
static inline void cpu_fence() {
    __asm__ __volatile__("mfence" ::: "memory");
}
static inline void cpu_pause() {
    __asm__ __volatile__("pause" ::: "memory");
}
#else
#error "This file requires x86-64 architecture"
#endif
*/
import "C"

// cpuFence issues a full memory fence, the host-side stand-in for the
// target's dmb instruction.
//
//go:nosplit
//go:inline
func cpuFence() {
	C.cpu_fence()
}

// Relax emits the x86-64 PAUSE instruction. Used by the soak harness in
// spin-wait loops; never needed by the runtime paths themselves.
//
//go:nosplit
//go:inline
func Relax() {
	C.cpu_pause()
}
