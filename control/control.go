// control.go — Global run-control flags for the soak harness
// ============================================================================
// HARNESS RUN CONTROL
// ============================================================================
//
// Lightweight global signaling between the signal handler, the watch-mode
// reloader, and the pinned scenario loop. Zero-allocation flag access so the
// soak loop's per-iteration check is a single atomic load.
//
// Threading model:
//   • Signal handler / watcher goroutines set flags via RequestStop and
//     SignalActivity
//   • The pinned core goroutine polls Stopping() between iterations
//   • Progress counters feed the heartbeat reporter; approximate by design

package control

import "sync/atomic"

var (
	stop     uint32 // 1 = abandon the current suite and unwind
	activity uint64 // monotonically increasing iteration heartbeat
)

// RequestStop asks the scenario loop to unwind at the next iteration
// boundary. Safe from any goroutine, idempotent.
//
//go:nosplit
//go:inline
func RequestStop() {
	atomic.StoreUint32(&stop, 1)
}

// Stopping reports whether a stop has been requested.
//
//go:nosplit
//go:inline
func Stopping() bool {
	return atomic.LoadUint32(&stop) != 0
}

// ClearStop re-arms the loop for the next suite (watch mode re-runs).
//
//go:nosplit
//go:inline
func ClearStop() {
	atomic.StoreUint32(&stop, 0)
}

// SignalActivity bumps the heartbeat. Called once per ProgressEvery
// iterations from the scenario loop.
//
//go:nosplit
//go:inline
func SignalActivity(n uint64) {
	atomic.AddUint64(&activity, n)
}

// ActivityCount returns the heartbeat total for progress reporting.
//
//go:nosplit
//go:inline
func ActivityCount() uint64 {
	return atomic.LoadUint64(&activity)
}
