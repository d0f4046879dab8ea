package resource

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Scratch(t *testing.T) {
	c := NewController(Config{ScratchLimitBytes: 100})

	require.NoError(t, c.AcquireScratch(50))
	assert.Equal(t, int64(50), c.ScratchUsage())

	require.NoError(t, c.AcquireScratch(40))
	assert.Equal(t, int64(90), c.ScratchUsage())

	// Over the limit
	err := c.AcquireScratch(20)
	assert.ErrorIs(t, err, ErrScratchLimitExceeded)
	assert.Equal(t, int64(90), c.ScratchUsage())

	c.ReleaseScratch(50)
	assert.Equal(t, int64(40), c.ScratchUsage())

	require.NoError(t, c.AcquireScratch(20))
	assert.Equal(t, int64(60), c.ScratchUsage())
	assert.Equal(t, int64(90), c.PeakScratch())
	assert.Equal(t, int64(100), c.ScratchLimit())
}

func TestController_Unlimited(t *testing.T) {
	c := NewController(Config{})

	require.NoError(t, c.AcquireScratch(1000))
	assert.Equal(t, int64(1000), c.ScratchUsage())

	c.ReleaseScratch(500)
	assert.Equal(t, int64(500), c.ScratchUsage())
	assert.Equal(t, int64(0), c.ScratchLimit())
}

func TestController_NilSafe(t *testing.T) {
	var c *Controller

	assert.NoError(t, c.AcquireScratch(10))
	c.ReleaseScratch(10)
	assert.Zero(t, c.ScratchUsage())
	assert.Zero(t, c.PeakScratch())
	assert.Zero(t, c.ScratchLimit())
}

func TestController_ConcurrentPeak(t *testing.T) {
	c := NewController(Config{})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = c.AcquireScratch(8)
				c.ReleaseScratch(8)
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, c.ScratchUsage())
	assert.LessOrEqual(t, c.PeakScratch(), int64(64))
	assert.GreaterOrEqual(t, c.PeakScratch(), int64(8))
}
