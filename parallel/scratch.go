package parallel

import (
	"unsafe"

	"golang.org/x/sys/cpu"

	"github.com/hupe1980/manifold/internal/mem"
)

// Scratch is a worker-local arena: one fixed-size slot per worker id, carved
// from a single allocation. Adjacent slots are separated by at least one cache
// line so that workers writing to neighboring slots do not share lines.
type Scratch[T any] struct {
	arena   []T
	size    int
	stride  int
	workers int
}

// NewScratch allocates workers slots of size elements each.
func NewScratch[T any](workers, size int) *Scratch[T] {
	workers = max(workers, 1)
	size = max(size, 0)

	var zero T
	pad := 0
	if sz := int(unsafe.Sizeof(zero)); sz > 0 {
		line := int(unsafe.Sizeof(cpu.CacheLinePad{}))
		pad = (line + sz - 1) / sz
	}
	stride := size + pad

	return &Scratch[T]{
		arena:   mem.AllocAligned[T](workers * stride),
		size:    size,
		stride:  stride,
		workers: workers,
	}
}

// Slot returns the slot owned by worker. The slice has length and capacity
// Size(), so appends never spill into a neighbor.
func (s *Scratch[T]) Slot(worker int) []T {
	lo := worker * s.stride
	return s.arena[lo : lo+s.size : lo+s.size]
}

// Size returns the number of elements per slot.
func (s *Scratch[T]) Size() int { return s.size }

// Workers returns the number of slots.
func (s *Scratch[T]) Workers() int { return s.workers }

// Bytes returns the arena footprint.
func (s *Scratch[T]) Bytes() int64 {
	var zero T
	return int64(len(s.arena)) * int64(unsafe.Sizeof(zero))
}
