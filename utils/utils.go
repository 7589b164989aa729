// utils.go — low-level helpers shared by the cpu emulation, debug & harness.
package utils

import "syscall"

///////////////////////////////////////////////////////////////////////////////
// Alloc-free diagnostics output
///////////////////////////////////////////////////////////////////////////////

// PrintWarning writes a message directly to stderr (fd 2), bypassing the
// fmt machinery. Cold paths only.
//
//go:nosplit
//go:inline
func PrintWarning(msg string) {
	_, _ = syscall.Write(2, []byte(msg))
}

///////////////////////////////////////////////////////////////////////////////
// Tiny formatters (no fmt, no strconv in hot-adjacent paths)
///////////////////////////////////////////////////////////////////////////////

// Itoa formats a signed integer into a freshly stacked buffer.
//
//go:nosplit
func Itoa(v int) string {
	if v == 0 {
		return "0"
	}
	// Widen before negating: -math.MinInt overflows in int.
	neg := v < 0
	u := uint64(v)
	if neg {
		u = -u
	}
	var buf [20]byte
	i := len(buf)
	for u > 0 {
		i--
		buf[i] = byte('0' + u%10)
		u /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Utox64 formats a uint64 as a fixed-width 0x-prefixed hex literal, the way
// torn-value diagnostics want to see it (both halves always visible).
//
//go:nosplit
func Utox64(v uint64) string {
	const digits = "0123456789abcdef"
	var buf [18]byte
	buf[0], buf[1] = '0', 'x'
	for i := 17; i >= 2; i-- {
		buf[i] = digits[v&0xf]
		v >>= 4
	}
	return string(buf[:])
}

///////////////////////////////////////////////////////////////////////////////
// Pattern mixing
///////////////////////////////////////////////////////////////////////////////

// Mix64 applies the splitmix64 finalizer. Used to expand soak seeds into
// well-spread 64-bit test patterns.
//
//go:nosplit
//go:inline
func Mix64(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}
