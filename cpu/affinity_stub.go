// affinity_stub.go - CPU pinning no-op for platforms without sched_setaffinity
//
// Maintains the PinThread API on macOS, Windows, BSDs and restricted
// toolchains; the harness still runs, just without a hard core binding.

//go:build !linux || tinygo

package cpu

// PinThread is a no-op where thread affinity is unavailable.
//
//go:nosplit
//go:inline
func PinThread(core int) {}
