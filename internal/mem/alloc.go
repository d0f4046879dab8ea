package mem

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Alignment is the cache-line size of the target architecture.
const Alignment = int(unsafe.Sizeof(cpu.CacheLinePad{}))

// AllocAligned allocates a zeroed slice of n elements whose first element is
// Alignment-aligned. It over-allocates by at most one cache line; the
// capacity of the result equals n. Element types whose size does not divide
// the alignment offset fall back to a plain allocation.
func AllocAligned[T any](n int) []T {
	if n <= 0 {
		return nil
	}

	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 || size > Alignment {
		return make([]T, n)
	}

	buf := make([]T, n+(Alignment+size-1)/size)
	addr := int(uintptr(unsafe.Pointer(&buf[0]))) //nolint:gosec // address arithmetic for alignment
	shift := (Alignment - addr%Alignment) % Alignment
	if shift%size != 0 {
		return buf[:n:n]
	}

	off := shift / size
	return buf[off : off+n : off+n]
}

// IsAligned reports whether s starts on a cache-line boundary.
func IsAligned[T any](s []T) bool {
	if len(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&s[0]))%uintptr(Alignment) == 0 //nolint:gosec // address inspection only
}
