// libcalls.go — toolchain-facing symbol surface.
//
// The code generator emits calls against the standard __atomic_* libcall
// names; these shims pin that naming and calling convention bit-for-bit over
// the Go entry points. Ordering codes arrive as the raw intrinsic encoding
// (0=relaxed ... 5=seq_cst) and flow through unchanged.
//
// Documentation:
// * https://llvm.org/docs/Atomics.html
// * https://gcc.gnu.org/onlinedocs/gcc/_005f_005fsync-Builtins.html

package atomics

//export __atomic_load_1
func __atomic_load_1(ptr *uint8, ordering uintptr) uint8 {
	return Load1(ptr, ordering)
}

//export __atomic_store_1
func __atomic_store_1(ptr *uint8, val uint8, ordering uintptr) {
	Store1(ptr, val, ordering)
}

//export __atomic_exchange_1
func __atomic_exchange_1(ptr *uint8, val uint8, ordering uintptr) uint8 {
	return Exchange1(ptr, val, ordering)
}

//export __atomic_load_2
func __atomic_load_2(ptr *uint16, ordering uintptr) uint16 {
	return Load2(ptr, ordering)
}

//export __atomic_store_2
func __atomic_store_2(ptr *uint16, val uint16, ordering uintptr) {
	Store2(ptr, val, ordering)
}

//export __atomic_exchange_2
func __atomic_exchange_2(ptr *uint16, val uint16, ordering uintptr) uint16 {
	return Exchange2(ptr, val, ordering)
}

//export __atomic_load_4
func __atomic_load_4(ptr *uint32, ordering uintptr) uint32 {
	return Load4(ptr, ordering)
}

//export __atomic_store_4
func __atomic_store_4(ptr *uint32, val uint32, ordering uintptr) {
	Store4(ptr, val, ordering)
}

//export __atomic_exchange_4
func __atomic_exchange_4(ptr *uint32, val uint32, ordering uintptr) uint32 {
	return Exchange4(ptr, val, ordering)
}

//export __atomic_load_8
func __atomic_load_8(ptr *uint64, ordering uintptr) uint64 {
	return Load8(ptr, ordering)
}

//export __atomic_store_8
func __atomic_store_8(ptr *uint64, val uint64, ordering uintptr) {
	Store8(ptr, val, ordering)
}

//export __atomic_exchange_8
func __atomic_exchange_8(ptr *uint64, val uint64, ordering uintptr) uint64 {
	return Exchange8(ptr, val, ordering)
}
