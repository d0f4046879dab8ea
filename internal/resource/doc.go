// Package resource accounts transient scratch memory against an optional budget.
//
// Phases that need scratch beyond their worker-local heap slots (index maps,
// row-index expansions, per-vertex statistics) reserve the bytes up front and
// release them when the phase ends:
//
//	rc := resource.NewController(resource.Config{
//	    ScratchLimitBytes: 1 << 30, // 1GB
//	})
//
//	if err := rc.AcquireScratch(n * 4); err != nil {
//	    // ErrScratchLimitExceeded - nothing has been mutated yet
//	}
//	defer rc.ReleaseScratch(n * 4)
//
// Acquisition never blocks: a phase either gets its scratch or fails before
// touching caller buffers.
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully; they become no-ops that
// still succeed.
package resource
