// ============================================================================
// FIXED-WIDTH ENTRY POINT VALIDATION SUITE
// ============================================================================
//
// Correctness obligations per (operation, width) pair, driven against the
// emulated core:
//   - Round-trip: store(v) then load returns v, all widths, all orderings
//   - Exchange: returns the value present immediately before the call; a
//     subsequent load (any ordering) observes the new value
//   - Atomicity: a pended interrupt cannot land inside a protected access —
//     it is taken after the critical section, never between bus transactions
//   - Barrier accounting: relaxed emits zero barriers end to end; stronger
//     orderings emit exactly what the policy table says
//   - Mask hygiene: every entry point leaves the interrupt state as found

package atomics

import (
	"testing"
	"unsafe"

	"main/constants"
	"main/cpu"
	"main/order"
)

// ptr0/ptr1 address the first and second bus word of a double-word cell.
func ptr0(v *uint64) unsafe.Pointer { return unsafe.Pointer(v) }
func ptr1(v *uint64) unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(v), constants.BusWordBytes)
}

// Half-swapped patterns: any mix of their 32-bit halves is outside the set.
const (
	patA = uint64(0xAAAAAAAA55555555)
	patB = uint64(0x55555555AAAAAAAA)
)

var allOrderings = [...]uintptr{
	uintptr(order.Relaxed),
	uintptr(order.Acquire),
	uintptr(order.Release),
	uintptr(order.AcqRel),
	uintptr(order.SeqCst),
}

var soakValues = [...]uint64{
	0, 1, ^uint64(0), patA, patB,
	0x00000000FFFFFFFF, 0xFFFFFFFF00000000,
	0x8000000000000001, 0x0123456789ABCDEF,
}

// requireEnabled fails the test if an entry point leaked mask state.
func requireEnabled(t *testing.T, where string) {
	t.Helper()
	if !cpu.InterruptsEnabled() {
		t.Fatalf("%s: interrupts left masked", where)
	}
}

// ============================================================================
// ROUND-TRIP
// ============================================================================

func TestRoundTrip_AllWidths(t *testing.T) {
	cpu.Reset()
	var c8 uint64
	var c4 uint32
	var c2 uint16
	var c1 uint8
	for _, v := range soakValues {
		for _, ord := range allOrderings {
			Store8(&c8, v, ord)
			if got := Load8(&c8, ord); got != v {
				t.Fatalf("8-byte round-trip ord=%d: got %#x, want %#x", ord, got, v)
			}
			Store4(&c4, uint32(v), ord)
			if got := Load4(&c4, ord); got != uint32(v) {
				t.Fatalf("4-byte round-trip ord=%d: got %#x, want %#x", ord, got, uint32(v))
			}
			Store2(&c2, uint16(v), ord)
			if got := Load2(&c2, ord); got != uint16(v) {
				t.Fatalf("2-byte round-trip ord=%d: got %#x, want %#x", ord, got, uint16(v))
			}
			Store1(&c1, uint8(v), ord)
			if got := Load1(&c1, ord); got != uint8(v) {
				t.Fatalf("1-byte round-trip ord=%d: got %#x, want %#x", ord, got, uint8(v))
			}
		}
	}
	requireEnabled(t, "round-trip")
}

// ============================================================================
// EXCHANGE
// ============================================================================

func TestExchange_ReturnsPrior(t *testing.T) {
	cpu.Reset()
	var c8 uint64
	var c4 uint32
	var c2 uint16
	var c1 uint8
	prev8, prev4, prev2, prev1 := uint64(0), uint32(0), uint16(0), uint8(0)
	for i, v := range soakValues {
		ord := allOrderings[i%len(allOrderings)]
		if old := Exchange8(&c8, v, ord); old != prev8 {
			t.Fatalf("Exchange8: returned %#x, want prior %#x", old, prev8)
		}
		if got := Load8(&c8, uintptr(order.Relaxed)); got != v {
			t.Fatalf("Exchange8: relaxed load after = %#x, want %#x", got, v)
		}
		prev8 = v

		if old := Exchange4(&c4, uint32(v), ord); old != prev4 {
			t.Fatalf("Exchange4: returned %#x, want prior %#x", old, prev4)
		}
		prev4 = uint32(v)

		if old := Exchange2(&c2, uint16(v), ord); old != prev2 {
			t.Fatalf("Exchange2: returned %#x, want prior %#x", old, prev2)
		}
		prev2 = uint16(v)

		if old := Exchange1(&c1, uint8(v), ord); old != prev1 {
			t.Fatalf("Exchange1: returned %#x, want prior %#x", old, prev1)
		}
		prev1 = uint8(v)
	}
	requireEnabled(t, "exchange sweep")
}

// TestExchange8_SeqCstScenario is the scripted acceptance case: cell at zero,
// exchange all-ones seq_cst returns zero, relaxed load returns all-ones.
func TestExchange8_SeqCstScenario(t *testing.T) {
	cpu.Reset()
	var cell uint64
	if old := Exchange8(&cell, ^uint64(0), uintptr(order.SeqCst)); old != 0 {
		t.Fatalf("exchange returned %#x, want 0", old)
	}
	if got := Load8(&cell, uintptr(order.Relaxed)); got != ^uint64(0) {
		t.Fatalf("relaxed load after exchange = %#x, want all-ones", got)
	}
	requireEnabled(t, "seq_cst scenario")
}

// ============================================================================
// ATOMICITY UNDER INTERRUPT
// ============================================================================

// TestLoad8_InterruptHeldOff: a pended handler that rewrites the cell cannot
// land inside the protected load. The load returns the pre-handler value in
// full; the handler runs at the critical-section exit.
func TestLoad8_InterruptHeldOff(t *testing.T) {
	cpu.Reset()
	cell := patA
	cpu.RegisterHandler(0, func() {
		Store8(&cell, patB, uintptr(order.Relaxed))
	})
	cpu.Pend(0)
	if got := Load8(&cell, uintptr(order.SeqCst)); got != patA {
		t.Fatalf("protected load = %#x, want intact pre-handler %#x", got, patA)
	}
	// Handler fired on unmask, after the load completed.
	if got := Load8(&cell, uintptr(order.Relaxed)); got != patB {
		t.Fatalf("handler did not run at section exit: cell = %#x", got)
	}
}

// TestExchange8_InterruptHeldOff: same property through the read-modify-write
// window — the handler can never observe or mutate the intermediate state.
func TestExchange8_InterruptHeldOff(t *testing.T) {
	cpu.Reset()
	cell := patA
	cpu.RegisterHandler(0, func() {
		Store8(&cell, patB, uintptr(order.Relaxed))
	})
	cpu.Pend(0)
	if old := Exchange8(&cell, ^uint64(0), uintptr(order.SeqCst)); old != patA {
		t.Fatalf("exchange returned %#x, want intact %#x", old, patA)
	}
	// The handler ran after the exchange, overwriting the new value.
	if got := Load8(&cell, uintptr(order.Relaxed)); got != patB {
		t.Fatalf("handler did not run after exchange: cell = %#x", got)
	}
}

// TestUnprotectedSplitTears is the negative control: the same storm against
// a split read with an open interrupt window between its bus transactions
// observes a torn value. This is the failure mode the critical section
// exists to rule out — if this test ever stops tearing, the emulation has
// lost the ability to catch real atomicity bugs.
func TestUnprotectedSplitTears(t *testing.T) {
	cpu.Reset()
	cell := patA
	cpu.RegisterHandler(0, func() {
		Store8(&cell, patB, uintptr(order.Relaxed))
	})
	cpu.Pend(0)

	// Re-implements the runtime's split read without the mask, window open.
	var torn uint64
	func() {
		src0 := (*uint32)(ptr0(&cell))
		src1 := (*uint32)(ptr1(&cell))
		dst0 := (*uint32)(ptr0(&torn))
		dst1 := (*uint32)(ptr1(&torn))
		*dst0 = *src0
		cpu.SyncPoint() // handler lands here
		*dst1 = *src1
	}()

	if torn == patA || torn == patB {
		t.Fatalf("unprotected split read did not tear: got %#x", torn)
	}
}

// ============================================================================
// BARRIER ACCOUNTING
// ============================================================================

func TestBarrierCounts(t *testing.T) {
	cpu.Reset()
	var c8 uint64
	var c4 uint32

	cases := []struct {
		name string
		fn   func()
		want uint64
	}{
		{"relaxed load4", func() { Load4(&c4, uintptr(order.Relaxed)) }, 0},
		{"relaxed store4", func() { Store4(&c4, 1, uintptr(order.Relaxed)) }, 0},
		{"relaxed load8", func() { Load8(&c8, uintptr(order.Relaxed)) }, 0},
		{"relaxed exchange8", func() { Exchange8(&c8, 1, uintptr(order.Relaxed)) }, 0},
		{"acquire load4", func() { Load4(&c4, uintptr(order.Acquire)) }, 1},
		{"release store4", func() { Store4(&c4, 1, uintptr(order.Release)) }, 1},
		{"seq_cst load4", func() { Load4(&c4, uintptr(order.SeqCst)) }, 2},
		{"seq_cst store8", func() { Store8(&c8, 1, uintptr(order.SeqCst)) }, 2},
		{"seq_cst exchange8", func() { Exchange8(&c8, 1, uintptr(order.SeqCst)) }, 2},
		{"acquire exchange2", func() {
			var c2 uint16
			Exchange2(&c2, 1, uintptr(order.Acquire))
		}, 2}, // exchange unions both sides
	}
	for _, c := range cases {
		before := cpu.BarrierCount()
		c.fn()
		if got := cpu.BarrierCount() - before; got != c.want {
			t.Errorf("%s: issued %d barriers, want %d", c.name, got, c.want)
		}
	}
}

// ============================================================================
// LIBCALL SURFACE
// ============================================================================

// TestLibcallShims drives one call through every __atomic_* symbol to pin
// the signatures and the pass-through.
func TestLibcallShims(t *testing.T) {
	cpu.Reset()
	var c8 uint64
	var c4 uint32
	var c2 uint16
	var c1 uint8
	seq := uintptr(order.SeqCst)

	__atomic_store_1(&c1, 0x5A, seq)
	if __atomic_load_1(&c1, seq) != 0x5A {
		t.Error("__atomic_load_1 round-trip failed")
	}
	if __atomic_exchange_1(&c1, 0xA5, seq) != 0x5A {
		t.Error("__atomic_exchange_1 did not return prior value")
	}

	__atomic_store_2(&c2, 0x5AA5, seq)
	if __atomic_load_2(&c2, seq) != 0x5AA5 {
		t.Error("__atomic_load_2 round-trip failed")
	}
	if __atomic_exchange_2(&c2, 0xA55A, seq) != 0x5AA5 {
		t.Error("__atomic_exchange_2 did not return prior value")
	}

	__atomic_store_4(&c4, 0xDEADBEEF, seq)
	if __atomic_load_4(&c4, seq) != 0xDEADBEEF {
		t.Error("__atomic_load_4 round-trip failed")
	}
	if __atomic_exchange_4(&c4, 0xCAFEF00D, seq) != 0xDEADBEEF {
		t.Error("__atomic_exchange_4 did not return prior value")
	}

	__atomic_store_8(&c8, patA, seq)
	if __atomic_load_8(&c8, seq) != patA {
		t.Error("__atomic_load_8 round-trip failed")
	}
	if __atomic_exchange_8(&c8, patB, seq) != patA {
		t.Error("__atomic_exchange_8 did not return prior value")
	}
	requireEnabled(t, "libcall shims")
}
