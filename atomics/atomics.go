// ============================================================================
// FIXED-WIDTH ATOMIC ENTRY POINTS
// ============================================================================
//
// The libcall surface a code generator targets when it cannot lower an atomic
// access to one native instruction: load, store, and exchange at widths of
// 1, 2, 4 and 8 bytes. Each entry point composes the ordering-to-barrier
// policy and — where the access is not one bus transaction — the interrupt-
// masked critical section around a raw access to caller memory.
//
// Contract (drop-in replacement for inlined instructions):
//   - No validation in the hot path. A misaligned address, unmapped memory,
//     or out-of-range ordering code is a caller contract violation; ordering
//     codes additionally clamp to seq_cst in the policy layer.
//   - Addresses are borrowed for the duration of one call and never retained.
//   - Atomicity is with respect to interrupt handlers on the same core only.
//     There is no multi-core claim anywhere on this surface.
//
// Width dispatch:
//   - width <= BusWordBytes: the raw access is one bus transaction, already
//     indivisible with respect to interrupts. Barriers only, no masking.
//   - width > BusWordBytes: the access is split into word transactions that
//     an interrupt could otherwise interleave (torn read/write), so barriers
//     and the split run inside a critical section.
//   - exchange: read-modify-write at any width, always inside a critical
//     section so no handler observes the window between read and write.
//
// The external symbol names (__atomic_load_4, ...) match the standard libcall
// convention; the exported Go names carry identical semantics for in-module
// callers and the soak harness.

package atomics

import (
	"unsafe"

	"main/constants"
	"main/cpu"
	"main/critsec"
	"main/order"
)

// doubleWordNative is true when the modeled bus moves 8 bytes in a single
// transaction, in which case the 8-byte load/store paths need no masking.
// On the modeled 32-bit bus this is false; the constant exists so the width
// threshold tracks the bus geometry instead of hard-coding "8 needs a lock".
const doubleWordNative = constants.BusWordBytes >= constants.DoubleWordBytes

// ═══════════════════════════════════════════════════════════════════════════
// SPLIT BUS TRANSACTIONS (non-native width)
// ═══════════════════════════════════════════════════════════════════════════

// loadSplit reads a double word as two word-sized bus transactions with an
// instruction boundary between them. Unprotected, this is exactly the torn
// read the critical section exists to prevent; every runtime caller wraps it.
//
//go:nosplit
func loadSplit(ptr *uint64) uint64 {
	src0 := (*uint32)(unsafe.Pointer(ptr))
	src1 := (*uint32)(unsafe.Add(unsafe.Pointer(ptr), constants.BusWordBytes))
	var v uint64
	dst0 := (*uint32)(unsafe.Pointer(&v))
	dst1 := (*uint32)(unsafe.Add(unsafe.Pointer(&v), constants.BusWordBytes))
	*dst0 = *src0
	cpu.SyncPoint() // bus transaction boundary
	*dst1 = *src1
	return v
}

// storeSplit writes a double word as two word-sized bus transactions.
// Same hazard and same wrapping obligation as loadSplit.
//
//go:nosplit
func storeSplit(ptr *uint64, val uint64) {
	dst0 := (*uint32)(unsafe.Pointer(ptr))
	dst1 := (*uint32)(unsafe.Add(unsafe.Pointer(ptr), constants.BusWordBytes))
	src0 := (*uint32)(unsafe.Pointer(&val))
	src1 := (*uint32)(unsafe.Add(unsafe.Pointer(&val), constants.BusWordBytes))
	*dst0 = *src0
	cpu.SyncPoint() // bus transaction boundary
	*dst1 = *src1
}

// ═══════════════════════════════════════════════════════════════════════════
// 8-BIT ENTRY POINTS
// ═══════════════════════════════════════════════════════════════════════════

// Load1 returns the byte at ptr under the given ordering.
//
//go:nosplit
func Load1(ptr *uint8, ordering uintptr) uint8 {
	pl := order.ForLoad(order.Ordering(ordering))
	if pl.Before {
		cpu.DataMemoryBarrier()
	}
	v := *ptr
	if pl.After {
		cpu.DataMemoryBarrier()
	}
	return v
}

// Store1 writes val to ptr under the given ordering.
//
//go:nosplit
func Store1(ptr *uint8, val uint8, ordering uintptr) {
	pl := order.ForStore(order.Ordering(ordering))
	if pl.Before {
		cpu.DataMemoryBarrier()
	}
	*ptr = val
	if pl.After {
		cpu.DataMemoryBarrier()
	}
}

// Exchange1 writes val to ptr and returns the byte previously there.
func Exchange1(ptr *uint8, val uint8, ordering uintptr) uint8 {
	pl := order.ForExchange(order.Ordering(ordering))
	return critsec.Do(func() uint8 {
		if pl.Before {
			cpu.DataMemoryBarrier()
		}
		old := *ptr
		*ptr = val
		if pl.After {
			cpu.DataMemoryBarrier()
		}
		return old
	})
}

// ═══════════════════════════════════════════════════════════════════════════
// 16-BIT ENTRY POINTS
// ═══════════════════════════════════════════════════════════════════════════

// Load2 returns the half-word at ptr under the given ordering.
//
//go:nosplit
func Load2(ptr *uint16, ordering uintptr) uint16 {
	pl := order.ForLoad(order.Ordering(ordering))
	if pl.Before {
		cpu.DataMemoryBarrier()
	}
	v := *ptr
	if pl.After {
		cpu.DataMemoryBarrier()
	}
	return v
}

// Store2 writes val to ptr under the given ordering.
//
//go:nosplit
func Store2(ptr *uint16, val uint16, ordering uintptr) {
	pl := order.ForStore(order.Ordering(ordering))
	if pl.Before {
		cpu.DataMemoryBarrier()
	}
	*ptr = val
	if pl.After {
		cpu.DataMemoryBarrier()
	}
}

// Exchange2 writes val to ptr and returns the half-word previously there.
func Exchange2(ptr *uint16, val uint16, ordering uintptr) uint16 {
	pl := order.ForExchange(order.Ordering(ordering))
	return critsec.Do(func() uint16 {
		if pl.Before {
			cpu.DataMemoryBarrier()
		}
		old := *ptr
		*ptr = val
		if pl.After {
			cpu.DataMemoryBarrier()
		}
		return old
	})
}

// ═══════════════════════════════════════════════════════════════════════════
// 32-BIT ENTRY POINTS (native bus word)
// ═══════════════════════════════════════════════════════════════════════════

// Load4 returns the word at ptr under the given ordering. One bus
// transaction on the modeled target: barriers only, no masking.
//
//go:nosplit
func Load4(ptr *uint32, ordering uintptr) uint32 {
	pl := order.ForLoad(order.Ordering(ordering))
	if pl.Before {
		cpu.DataMemoryBarrier()
	}
	v := *ptr
	if pl.After {
		cpu.DataMemoryBarrier()
	}
	return v
}

// Store4 writes val to ptr under the given ordering.
//
//go:nosplit
func Store4(ptr *uint32, val uint32, ordering uintptr) {
	pl := order.ForStore(order.Ordering(ordering))
	if pl.Before {
		cpu.DataMemoryBarrier()
	}
	*ptr = val
	if pl.After {
		cpu.DataMemoryBarrier()
	}
}

// Exchange4 writes val to ptr and returns the word previously there. Native
// width or not, the read-write window must be closed to handlers.
func Exchange4(ptr *uint32, val uint32, ordering uintptr) uint32 {
	pl := order.ForExchange(order.Ordering(ordering))
	return critsec.Do(func() uint32 {
		if pl.Before {
			cpu.DataMemoryBarrier()
		}
		old := *ptr
		*ptr = val
		if pl.After {
			cpu.DataMemoryBarrier()
		}
		return old
	})
}

// ═══════════════════════════════════════════════════════════════════════════
// 64-BIT ENTRY POINTS (non-native width: split + masked)
// ═══════════════════════════════════════════════════════════════════════════

// Load8 returns the double word at ptr under the given ordering. Two bus
// transactions on the modeled target, so barriers and the split read run
// inside a critical section; a handler between the halves would otherwise
// hand the caller a torn value.
func Load8(ptr *uint64, ordering uintptr) uint64 {
	pl := order.ForLoad(order.Ordering(ordering))
	if doubleWordNative {
		if pl.Before {
			cpu.DataMemoryBarrier()
		}
		v := *ptr
		if pl.After {
			cpu.DataMemoryBarrier()
		}
		return v
	}
	return critsec.Do(func() uint64 {
		if pl.Before {
			cpu.DataMemoryBarrier()
		}
		v := loadSplit(ptr)
		if pl.After {
			cpu.DataMemoryBarrier()
		}
		return v
	})
}

// Store8 writes val to ptr under the given ordering, masked around the split
// write for the same reason as Load8.
func Store8(ptr *uint64, val uint64, ordering uintptr) {
	pl := order.ForStore(order.Ordering(ordering))
	if doubleWordNative {
		if pl.Before {
			cpu.DataMemoryBarrier()
		}
		*ptr = val
		if pl.After {
			cpu.DataMemoryBarrier()
		}
		return
	}
	critsec.With(func() {
		if pl.Before {
			cpu.DataMemoryBarrier()
		}
		storeSplit(ptr, val)
		if pl.After {
			cpu.DataMemoryBarrier()
		}
	})
}

// Exchange8 writes val to ptr and returns the double word previously there.
func Exchange8(ptr *uint64, val uint64, ordering uintptr) uint64 {
	pl := order.ForExchange(order.Ordering(ordering))
	return critsec.Do(func() uint64 {
		if pl.Before {
			cpu.DataMemoryBarrier()
		}
		var old uint64
		if doubleWordNative {
			old = *ptr
			*ptr = val
		} else {
			old = loadSplit(ptr)
			storeSplit(ptr, val)
		}
		if pl.After {
			cpu.DataMemoryBarrier()
		}
		return old
	})
}
