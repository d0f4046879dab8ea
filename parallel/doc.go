// Package parallel runs data-parallel phases over contiguous index ranges.
//
// An Executor splits [0, n) into one contiguous chunk per worker and runs the
// chunks through an errgroup. For returns only after every chunk has finished,
// so consecutive calls are separated by a full barrier: a phase that
// aggregates per-vertex statistics completes before the phase that reads them
// starts.
//
// Worker-local scratch lives in a Scratch arena with one slot per worker id.
// Slots are allocated once, padded to cache-line boundaries, and never resized
// while a phase runs.
//
//	exec := parallel.New(8)
//	heaps := parallel.NewScratch[heap.Item](exec.Workers(), k)
//	err := exec.For(rows, func(worker, lo, hi int) error {
//	    h := heaps.Slot(worker)
//	    ...
//	})
//
// A nil *Executor is valid and runs everything on the calling goroutine.
package parallel
