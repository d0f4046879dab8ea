package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/manifold/internal/resource"
)

// ErrMemoryLimitExceeded is returned by Reserve when the scratch budget is exhausted.
var ErrMemoryLimitExceeded = resource.ErrScratchLimitExceeded

// Executor runs range-partitioned phases on a fixed number of workers.
type Executor struct {
	workers int
	rc      *resource.Controller
}

// Option configures an Executor.
type Option func(*Executor)

// WithMemoryLimit caps the transient scratch an Executor's phases may reserve.
// A limit <= 0 disables the cap (usage is still tracked).
func WithMemoryLimit(bytes int64) Option {
	return func(e *Executor) {
		e.rc = resource.NewController(resource.Config{ScratchLimitBytes: bytes})
	}
}

// New creates an Executor. workers <= 0 selects runtime.GOMAXPROCS(0).
func New(workers int, optFns ...Option) *Executor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	e := &Executor{workers: workers}
	for _, fn := range optFns {
		fn(e)
	}
	if e.rc == nil {
		e.rc = resource.NewController(resource.Config{})
	}
	return e
}

// Workers returns the number of workers (1 for a nil Executor).
func (e *Executor) Workers() int {
	if e == nil {
		return 1
	}
	return e.workers
}

// For partitions [0, n) into at most Workers() contiguous chunks and calls fn
// once per chunk with the chunk's worker id. Worker ids are dense in
// [0, Workers()). The first non-nil error is returned after all chunks finish.
func (e *Executor) For(n int, fn func(worker, lo, hi int) error) error {
	if n <= 0 {
		return nil
	}

	chunks := min(e.Workers(), n)
	if chunks == 1 {
		return fn(0, 0, n)
	}

	var g errgroup.Group
	g.SetLimit(chunks)
	for w := range chunks {
		lo := w * n / chunks
		hi := (w + 1) * n / chunks
		g.Go(func() error {
			return fn(w, lo, hi)
		})
	}
	return g.Wait()
}

// Reserve accounts bytes of transient scratch against the memory limit.
func (e *Executor) Reserve(bytes int64) error {
	if e == nil {
		return nil
	}
	return e.rc.AcquireScratch(bytes)
}

// Release returns bytes previously obtained with Reserve.
func (e *Executor) Release(bytes int64) {
	if e == nil {
		return
	}
	e.rc.ReleaseScratch(bytes)
}

// PeakScratch returns the largest amount of scratch reserved at once.
func (e *Executor) PeakScratch() int64 {
	if e == nil {
		return 0
	}
	return e.rc.PeakScratch()
}
