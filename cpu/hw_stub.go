// hw_stub.go — Fallback fence and relax for hosts without a dedicated path
//
// Used on non-amd64/arm64 hosts and on builds with assembly or CGO disabled
// (noasm / nocgo tags). The fence falls back to an atomic read-modify-write,
// which the Go memory model makes a full ordering point on every supported
// architecture; the relax hint degrades to a no-op.
//
//go:build (!amd64 && !arm64) || noasm || nocgo || !cgo

package cpu

import "sync/atomic"

var fenceWord uint32

// cpuFence orders memory accesses via an atomic RMW on a package-private
// word. Slower than a raw fence instruction, identical ordering effect.
//
//go:nosplit
//go:inline
func cpuFence() {
	atomic.AddUint32(&fenceWord, 0)
}

// Relax is a no-op on platforms without a spin-wait hint.
//
//go:nosplit
//go:inline
func Relax() {}
