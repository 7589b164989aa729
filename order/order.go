// ============================================================================
// MEMORY-ORDERING TO BARRIER-PLACEMENT POLICY
// ============================================================================
//
// Leaf policy layer: maps a caller-supplied ordering code to the barrier
// placement (before / after the access) required for loads, stores, and
// exchanges. Pure functions over a closed tag set — no hardware access, no
// state, independently testable.
//
// Encoding follows the standard compiler-intrinsic convention:
//   0 = relaxed, 1 = consume (reserved), 2 = acquire, 3 = release,
//   4 = acquire-release, 5 = sequentially-consistent
//
// Placement contract (asymmetric between loads and stores, and load-bearing:
// swapping the two tables weakens ordering with no single-threaded symptom):
//   load:  before only for acq_rel/seq_cst; after whenever not relaxed
//   store: before whenever not relaxed; after only for acq_rel/seq_cst
//
// Unrecognized or reserved codes (including consume) clamp to the strongest
// policy, seq_cst. A wrong code is a caller contract violation; clamping
// costs nothing here and can only over-synchronize, never under.

package order

// Ordering is a caller-supplied memory-ordering tag. Produced by the
// toolchain that emits the libcalls; this package only consumes it.
type Ordering uint32

const (
	Relaxed Ordering = 0
	Consume Ordering = 1 // reserved, unimplemented: clamps to SeqCst
	Acquire Ordering = 2
	Release Ordering = 3
	AcqRel  Ordering = 4
	SeqCst  Ordering = 5
)

// Plan says on which sides of the raw access a data memory barrier must be
// issued.
type Plan struct {
	Before bool
	After  bool
}

// ForLoad returns the barrier placement for a load with ordering o.
//
// A trailing barrier appears for every ordering stronger than relaxed: no
// later memory operation in program order may be observed ahead of the load.
// A leading barrier appears only for acq_rel and seq_cst.
//
//go:nosplit
//go:inline
func ForLoad(o Ordering) Plan {
	switch o {
	case Relaxed:
		return Plan{}
	case Acquire, Release:
		return Plan{After: true}
	case AcqRel, SeqCst:
		return Plan{Before: true, After: true}
	default:
		// Reserved/out-of-range codes: strongest policy.
		return Plan{Before: true, After: true}
	}
}

// ForStore returns the barrier placement for a store with ordering o.
//
// Mirror image of ForLoad: a leading barrier for every ordering stronger
// than relaxed (no earlier operation may drift past the store), a trailing
// barrier only for acq_rel and seq_cst. A plain release store takes no
// trailing barrier.
//
//go:nosplit
//go:inline
func ForStore(o Ordering) Plan {
	switch o {
	case Relaxed:
		return Plan{}
	case Acquire, Release:
		return Plan{Before: true}
	case AcqRel, SeqCst:
		return Plan{Before: true, After: true}
	default:
		return Plan{Before: true, After: true}
	}
}

// ForExchange returns the barrier placement for a read-and-replace, which
// carries both load (acquire-side) and store (release-side) obligations:
// the union of the two tables. Anything stronger than relaxed barriers both
// sides.
//
//go:nosplit
//go:inline
func ForExchange(o Ordering) Plan {
	l, s := ForLoad(o), ForStore(o)
	return Plan{Before: l.Before || s.Before, After: l.After || s.After}
}
