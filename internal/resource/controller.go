package resource

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrScratchLimitExceeded is returned when a reservation would exceed the scratch budget.
var ErrScratchLimitExceeded = errors.New("scratch memory limit exceeded")

// Config holds resource limits.
type Config struct {
	// ScratchLimitBytes is the hard limit for transient scratch memory.
	// If 0, no limit is enforced (only tracking).
	ScratchLimitBytes int64
}

// Controller tracks scratch memory.
type Controller struct {
	cfg Config

	sem  *semaphore.Weighted // nil if unlimited
	used atomic.Int64
	peak atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}
	if cfg.ScratchLimitBytes > 0 {
		c.sem = semaphore.NewWeighted(cfg.ScratchLimitBytes)
	}
	return c
}

// AcquireScratch reserves bytes of scratch memory.
// Returns ErrScratchLimitExceeded if the limit would be exceeded.
func (c *Controller) AcquireScratch(bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}

	if c.sem != nil && !c.sem.TryAcquire(bytes) {
		return ErrScratchLimitExceeded
	}

	used := c.used.Add(bytes)
	for {
		peak := c.peak.Load()
		if used <= peak || c.peak.CompareAndSwap(peak, used) {
			break
		}
	}
	return nil
}

// ReleaseScratch releases reserved scratch memory.
func (c *Controller) ReleaseScratch(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.sem != nil {
		c.sem.Release(bytes)
	}
	c.used.Add(-bytes)
}

// ScratchUsage returns the bytes currently reserved.
func (c *Controller) ScratchUsage() int64 {
	if c == nil {
		return 0
	}
	return c.used.Load()
}

// PeakScratch returns the high-water mark of reserved bytes.
func (c *Controller) PeakScratch() int64 {
	if c == nil {
		return 0
	}
	return c.peak.Load()
}

// ScratchLimit returns the configured limit in bytes (0 if unlimited).
func (c *Controller) ScratchLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.ScratchLimitBytes
}
