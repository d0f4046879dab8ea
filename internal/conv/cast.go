package conv

import (
	"fmt"
	"math"
)

// FitsInt32 reports whether every id in [0, n) is representable as int32.
func FitsInt32(n int) bool {
	return n >= 0 && n-1 <= math.MaxInt32
}

// Uint64ToInt converts uint64 to int safely.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}
