// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go — Cold-path diagnostic logging (zero-alloc)
//
// Purpose:
//   - Logs infrequent events without introducing heap pressure: harness phase
//     changes, profile reloads, pending-queue overflow, scenario failures.
//
// Notes:
//   - Avoids fmt.Sprintf to minimize footprint and latency.
//   - The atomic entry points themselves never log — they are drop-in
//     replacements for inlined instructions and carry no diagnostics.
//
// ⚠️ Never invoke from inside a critical section — use only around them.
// ─────────────────────────────────────────────────────────────────────────────

package debug

import "main/utils"

// DropError logs an error with a tag prefix using direct concatenation,
// avoiding allocation-heavy formatting.
//
//go:nosplit
//go:inline
func DropError(prefix string, err error) {
	if err != nil {
		utils.PrintWarning(prefix + ": " + err.Error() + "\n")
	} else {
		utils.PrintWarning(prefix + "\n")
	}
}

// DropMessage logs a tagged diagnostic message. Cold paths only: phase
// transitions, watch-mode reloads, end-of-scenario summaries.
//
//go:nosplit
//go:inline
func DropMessage(prefix, message string) {
	utils.PrintWarning(prefix + ": " + message + "\n")
}
