// ============================================================================
// ENTRY POINT STRESS VALIDATION SUITE
// ============================================================================
//
// Long-running storm against the protected paths: every iteration pends the
// rewrite handler and drives a protected operation, so the handler lands on
// thousands of distinct critical-section exits. Any torn observation or mask
// leak fails immediately.

package atomics

import (
	"testing"

	"main/cpu"
	"main/order"
	"main/utils"
)

const stressIterations = 200000

func TestStress_TornStorm(t *testing.T) {
	if testing.Short() {
		t.Skip("storm runs long; skipped with -short")
	}
	cpu.Reset()
	cell := patA
	flip := false
	cpu.RegisterHandler(0, func() {
		if flip {
			Store8(&cell, patA, uintptr(order.Relaxed))
		} else {
			Store8(&cell, patB, uintptr(order.Relaxed))
		}
		flip = !flip
	})

	for i := 0; i < stressIterations; i++ {
		cpu.Pend(0)
		v := Load8(&cell, uintptr(order.SeqCst))
		if v != patA && v != patB {
			t.Fatalf("iteration %d: torn load %s", i, utils.Utox64(v))
		}
		cpu.Pend(0)
		old := Exchange8(&cell, patA, uintptr(order.SeqCst))
		if old != patA && old != patB {
			t.Fatalf("iteration %d: torn exchange %s", i, utils.Utox64(old))
		}
		if !cpu.InterruptsEnabled() {
			t.Fatalf("iteration %d: mask leaked", i)
		}
	}
	if cpu.PendDrops() != 0 {
		t.Errorf("pending FIFO dropped %d requests during the storm", cpu.PendDrops())
	}
}

// TestStress_MixedWidthChurn interleaves all widths and orderings over a
// deterministic pattern stream to shake out cross-width interference.
func TestStress_MixedWidthChurn(t *testing.T) {
	if testing.Short() {
		t.Skip("churn runs long; skipped with -short")
	}
	cpu.Reset()
	var c8 uint64
	var c4 uint32
	var c2 uint16
	var c1 uint8

	x := uint64(0x243F6A8885A308D3)
	for i := 0; i < stressIterations; i++ {
		x = utils.Mix64(x)
		ord := allOrderings[i%len(allOrderings)]
		switch i & 3 {
		case 0:
			Store8(&c8, x, ord)
			if Load8(&c8, ord) != x {
				t.Fatalf("iteration %d: 8-byte churn mismatch", i)
			}
		case 1:
			Store4(&c4, uint32(x), ord)
			if Load4(&c4, ord) != uint32(x) {
				t.Fatalf("iteration %d: 4-byte churn mismatch", i)
			}
		case 2:
			Store2(&c2, uint16(x), ord)
			if Load2(&c2, ord) != uint16(x) {
				t.Fatalf("iteration %d: 2-byte churn mismatch", i)
			}
		case 3:
			Exchange1(&c1, uint8(x), ord)
			if Load1(&c1, ord) != uint8(x) {
				t.Fatalf("iteration %d: 1-byte churn mismatch", i)
			}
		}
	}
}

// ============================================================================
// BENCHMARKS
// ============================================================================

func BenchmarkLoad4_Relaxed(b *testing.B) {
	cpu.Reset()
	var c uint32
	for i := 0; i < b.N; i++ {
		Load4(&c, uintptr(order.Relaxed))
	}
}

func BenchmarkLoad8_SeqCst(b *testing.B) {
	cpu.Reset()
	var c uint64
	for i := 0; i < b.N; i++ {
		Load8(&c, uintptr(order.SeqCst))
	}
}

func BenchmarkExchange8_SeqCst(b *testing.B) {
	cpu.Reset()
	var c uint64
	for i := 0; i < b.N; i++ {
		Exchange8(&c, uint64(i), uintptr(order.SeqCst))
	}
}
