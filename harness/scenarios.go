// ════════════════════════════════════════════════════════════════════════════════════════════════
// Soak Scenario Suite
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Project: Interrupt-Masked Atomic Runtime
// Component: Scenario Runner
//
// Description:
//   Hammers the fixed-width entry points on the emulated core under interrupt
//   storms and records pass/fail evidence per scenario. Runs pinned on one
//   goroutine playing the single-core target; interrupts arrive only through
//   the emulated controller's sync points.
//
// Scenario inventory:
//   - round_trip:        store(v) then load returns v, all widths × orderings
//   - exchange_sweep:    exchange returns prior value, load observes new
//   - nesting_sweep:     critical sections balanced at arbitrary depth
//   - torn_storm:        protected 8-byte ops never observe a half-written cell
//   - tear_sensitivity:  an unprotected split read DOES tear — proves the
//                        storm instrumentation can actually see the hazard
//   - seqcst_exchange:   scripted 8-byte exchange acceptance case
//   - nested_pair:       scripted two-level critical-section acceptance case
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package harness

import (
	"time"
	"unsafe"

	"main/atomics"
	"main/constants"
	"main/control"
	"main/cpu"
	"main/critsec"
	"main/debug"
	"main/order"
	"main/utils"

	"golang.org/x/crypto/sha3"
)

// Result summarizes one scenario run for the result store.
type Result struct {
	Profile    string
	Scenario   string
	Iterations int
	Failures   int
	Barriers   uint64 // barrier instructions issued during the run
	Elapsed    time.Duration
}

// Half-swapped patterns: any interleaving of their 32-bit halves produces a
// value outside the set, so torn observations are unambiguous.
const (
	patA = uint64(0xAAAAAAAA55555555)
	patB = uint64(0x55555555AAAAAAAA)
)

// storm IRQ vector used by the torn-value scenarios.
const stormIRQ = 0

var soakOrderings = [...]uintptr{
	uintptr(order.Relaxed),
	uintptr(order.Acquire),
	uintptr(order.Release),
	uintptr(order.AcqRel),
	uintptr(order.SeqCst),
}

// ═══════════════════════════════════════════════════════════════════════════
// PATTERN EXPANSION
// ═══════════════════════════════════════════════════════════════════════════

// expandPatterns derives the soak value set from the profile seed: fixed
// corner values first, then a sha3-chained stream so every run covers fresh
// bit noise while staying reproducible from the recorded seed.
func expandPatterns(seed uint64) []uint64 {
	pats := make([]uint64, 0, constants.PatternWords)
	pats = append(pats,
		0, ^uint64(0), patA, patB,
		0x00000000FFFFFFFF, 0xFFFFFFFF00000000,
		1, 1<<63,
	)
	var state [32]byte
	putWord(state[:8], utils.Mix64(seed))
	for len(pats) < constants.PatternWords {
		state = sha3.Sum256(state[:])
		for off := 0; off+8 <= len(state) && len(pats) < constants.PatternWords; off += 8 {
			pats = append(pats, word(state[off:off+8]))
		}
	}
	return pats
}

//go:nosplit
func putWord(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}

//go:nosplit
func word(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * i)
	}
	return v
}

// ═══════════════════════════════════════════════════════════════════════════
// SUITE DRIVER
// ═══════════════════════════════════════════════════════════════════════════

type scenarioFn func(p Profile, pats []uint64) (iterations, failures int)

var suite = []struct {
	name string
	fn   scenarioFn
}{
	{"round_trip", scnRoundTrip},
	{"exchange_sweep", scnExchangeSweep},
	{"nesting_sweep", scnNestingSweep},
	{"torn_storm", scnTornStorm},
	{"tear_sensitivity", scnTearSensitivity},
	{"seqcst_exchange", scnSeqCstExchange},
	{"nested_pair", scnNestedPair},
}

// RunSuite executes every scenario against one profile on the calling
// (pinned) goroutine and returns their results.
func RunSuite(p Profile) []Result {
	pats := expandPatterns(p.Seed)
	results := make([]Result, 0, len(suite))
	for _, sc := range suite {
		if control.Stopping() {
			break
		}
		cpu.Reset()
		startBarriers := cpu.BarrierCount()
		start := time.Now()
		iters, fails := sc.fn(p, pats)
		r := Result{
			Profile:    p.Name,
			Scenario:   sc.name,
			Iterations: iters,
			Failures:   fails,
			Barriers:   cpu.BarrierCount() - startBarriers,
			Elapsed:    time.Since(start),
		}
		results = append(results, r)
		tag := "PASS"
		if fails > 0 {
			tag = "FAIL"
		}
		debug.DropMessage(tag, p.Name+"/"+sc.name+" iters="+utils.Itoa(iters)+" fails="+utils.Itoa(fails))
	}
	return results
}

// heartbeat bumps the activity counter and polls for stop requests once per
// ProgressEvery iterations.
//
//go:inline
func heartbeat(i int) bool {
	if i&(constants.ProgressEvery-1) == 0 {
		control.SignalActivity(constants.ProgressEvery)
		if control.Stopping() {
			return false
		}
	}
	return true
}

// ═══════════════════════════════════════════════════════════════════════════
// SCENARIOS
// ═══════════════════════════════════════════════════════════════════════════

// scnRoundTrip: store(v) followed by load returns v unchanged, every width,
// every ordering, across the pattern set.
func scnRoundTrip(p Profile, pats []uint64) (int, int) {
	var c8 uint64
	var c4 uint32
	var c2 uint16
	var c1 uint8
	fails := 0
	for i := 0; i < p.Iterations; i++ {
		if !heartbeat(i) {
			return i, fails
		}
		v := pats[i%len(pats)]
		ord := soakOrderings[i%len(soakOrderings)]

		atomics.Store8(&c8, v, ord)
		if atomics.Load8(&c8, ord) != v {
			fails++
		}
		atomics.Store4(&c4, uint32(v), ord)
		if atomics.Load4(&c4, ord) != uint32(v) {
			fails++
		}
		atomics.Store2(&c2, uint16(v), ord)
		if atomics.Load2(&c2, ord) != uint16(v) {
			fails++
		}
		atomics.Store1(&c1, uint8(v), ord)
		if atomics.Load1(&c1, ord) != uint8(v) {
			fails++
		}
	}
	return p.Iterations, fails
}

// scnExchangeSweep: exchange returns the value present immediately before
// the call and a subsequent load observes the new value, every width.
func scnExchangeSweep(p Profile, pats []uint64) (int, int) {
	var c8 uint64
	var c4 uint32
	var c2 uint16
	var c1 uint8
	fails := 0
	prev8, prev4, prev2, prev1 := uint64(0), uint32(0), uint16(0), uint8(0)
	for i := 0; i < p.Iterations; i++ {
		if !heartbeat(i) {
			return i, fails
		}
		v := pats[i%len(pats)]
		ord := soakOrderings[i%len(soakOrderings)]

		if atomics.Exchange8(&c8, v, ord) != prev8 {
			fails++
		}
		prev8 = v
		if atomics.Load8(&c8, uintptr(order.Relaxed)) != v {
			fails++
		}

		if atomics.Exchange4(&c4, uint32(v), ord) != prev4 {
			fails++
		}
		prev4 = uint32(v)

		if atomics.Exchange2(&c2, uint16(v), ord) != prev2 {
			fails++
		}
		prev2 = uint16(v)

		if atomics.Exchange1(&c1, uint8(v), ord) != prev1 {
			fails++
		}
		prev1 = uint8(v)
	}
	return p.Iterations, fails
}

// scnNestingSweep: critical sections nested to varying depth leave the mask
// disabled throughout and restore it exactly once at the outermost exit.
func scnNestingSweep(p Profile, pats []uint64) (int, int) {
	fails := 0
	var nest func(depth int) bool
	nest = func(depth int) bool {
		ok := true
		critsec.With(func() {
			if cpu.InterruptsEnabled() {
				ok = false
			}
			if depth > 0 {
				ok = nest(depth-1) && ok
			}
			if cpu.InterruptsEnabled() {
				ok = false // an inner section re-enabled early
			}
		})
		return ok
	}
	for i := 0; i < p.Iterations; i++ {
		if !heartbeat(i) {
			return i, fails
		}
		depth := 1 + i%constants.NestDepthMax
		if !nest(depth) {
			fails++
		}
		if !cpu.InterruptsEnabled() {
			fails++ // outermost exit did not restore
		}
	}
	return p.Iterations, fails
}

// scnTornStorm: an interrupt handler rewrites the 8-byte cell between the
// half-swapped patterns while the mainline loads and exchanges it. Protected
// paths must only ever observe complete patterns.
func scnTornStorm(p Profile, pats []uint64) (int, int) {
	var cell = patA
	flip := false
	cpu.RegisterHandler(stormIRQ, func() {
		if flip {
			atomics.Store8(&cell, patA, uintptr(order.Relaxed))
		} else {
			atomics.Store8(&cell, patB, uintptr(order.Relaxed))
		}
		flip = !flip
	})
	fails := 0
	for i := 0; i < p.Iterations; i++ {
		if !heartbeat(i) {
			return i, fails
		}
		cpu.Pend(stormIRQ)
		v := atomics.Load8(&cell, uintptr(order.SeqCst))
		if v != patA && v != patB {
			fails++
			debug.DropMessage("TORN", "load observed "+utils.Utox64(v))
		}
		cpu.Pend(stormIRQ)
		old := atomics.Exchange8(&cell, patA, uintptr(order.SeqCst))
		if old != patA && old != patB {
			fails++
			debug.DropMessage("TORN", "exchange observed "+utils.Utox64(old))
		}
	}
	return p.Iterations, fails
}

// scnTearSensitivity: negative control for the storm. A split read with no
// critical section takes the pended handler between its two bus transactions
// and must observe a torn value; if it never does, the instrumentation has
// gone blind and the torn_storm verdict means nothing.
func scnTearSensitivity(p Profile, pats []uint64) (int, int) {
	var cell uint64
	cpu.RegisterHandler(stormIRQ, func() {
		atomics.Store8(&cell, patB, uintptr(order.Relaxed))
	})
	torn := 0
	for i := 0; i < p.Iterations; i++ {
		if !heartbeat(i) {
			return i, 0
		}
		atomics.Store8(&cell, patA, uintptr(order.Relaxed))
		cpu.Pend(stormIRQ)
		if v := unprotectedSplitLoad(&cell); v != patA && v != patB {
			torn++
		}
	}
	if torn == 0 {
		return p.Iterations, 1
	}
	return p.Iterations, 0
}

// scnSeqCstExchange: scripted acceptance case — 8-byte cell at zero,
// exchange all-ones seq_cst returns zero, relaxed load returns all-ones.
func scnSeqCstExchange(p Profile, pats []uint64) (int, int) {
	fails := 0
	for i := 0; i < p.Iterations; i++ {
		if !heartbeat(i) {
			return i, fails
		}
		var cell uint64
		if atomics.Exchange8(&cell, ^uint64(0), uintptr(order.SeqCst)) != 0 {
			fails++
		}
		if atomics.Load8(&cell, uintptr(order.Relaxed)) != ^uint64(0) {
			fails++
		}
	}
	return p.Iterations, fails
}

// scnNestedPair: scripted acceptance case — two nested critical sections
// disable once and re-enable once, after the outer exit.
func scnNestedPair(p Profile, pats []uint64) (int, int) {
	fails := 0
	for i := 0; i < p.Iterations; i++ {
		if !heartbeat(i) {
			return i, fails
		}
		ok := true
		critsec.With(func() {
			if cpu.InterruptsEnabled() {
				ok = false
			}
			critsec.With(func() {
				if cpu.InterruptsEnabled() {
					ok = false
				}
			})
			// inner exit must not have re-enabled
			if cpu.InterruptsEnabled() {
				ok = false
			}
		})
		if !cpu.InterruptsEnabled() {
			ok = false
		}
		if !ok {
			fails++
		}
	}
	return p.Iterations, fails
}

// ═══════════════════════════════════════════════════════════════════════════
// UNPROTECTED SPLIT ACCESS
// ═══════════════════════════════════════════════════════════════════════════

// unprotectedSplitLoad reads the cell as two word transactions with an open
// interrupt window between them — the exact access the runtime refuses to
// emit. Exists only so tear_sensitivity can prove the storm bites.
//
//go:nosplit
func unprotectedSplitLoad(ptr *uint64) uint64 {
	src0 := (*uint32)(unsafe.Pointer(ptr))
	src1 := (*uint32)(unsafe.Add(unsafe.Pointer(ptr), constants.BusWordBytes))
	var v uint64
	dst0 := (*uint32)(unsafe.Pointer(&v))
	dst1 := (*uint32)(unsafe.Add(unsafe.Pointer(&v), constants.BusWordBytes))
	*dst0 = *src0
	cpu.SyncPoint() // open window: pended storm handler lands here
	*dst1 = *src1
	return v
}
