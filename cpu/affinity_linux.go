// affinity_linux.go - Linux CPU pinning via sched_setaffinity(2)
//
// The soak harness plays a single-core MCU on a multi-core host; pinning the
// core goroutine's thread keeps cache behavior and timing deterministic.

//go:build linux && !tinygo

package cpu

import (
	"syscall"
	"unsafe"
)

// PinThread binds the calling OS thread to the given CPU. Callers pair it
// with runtime.LockOSThread. Out-of-range values are ignored so profiles can
// carry a best-effort core hint.
//
//go:nosplit
func PinThread(core int) {
	if core < 0 || core >= 64 {
		return
	}
	mask := [1]uintptr{1 << uint(core)}
	_, _, _ = syscall.RawSyscall(
		syscall.SYS_SCHED_SETAFFINITY,
		0, // current thread
		uintptr(unsafe.Sizeof(mask[0])),
		uintptr(unsafe.Pointer(&mask)),
	)
}
