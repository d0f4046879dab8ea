package parallel

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_ForCoversRange(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8, 64} {
		exec := New(workers)
		seen := make([]int32, 1000)

		err := exec.For(len(seen), func(worker, lo, hi int) error {
			assert.GreaterOrEqual(t, worker, 0)
			assert.Less(t, worker, exec.Workers())
			for i := lo; i < hi; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
			return nil
		})
		require.NoError(t, err)

		for i, c := range seen {
			require.Equal(t, int32(1), c, "index %d visited %d times (workers=%d)", i, c, workers)
		}
	}
}

func TestExecutor_DistinctWorkerIDs(t *testing.T) {
	exec := New(4)

	var mu sync.Mutex
	ids := map[int]int{}
	err := exec.For(100, func(worker, lo, hi int) error {
		mu.Lock()
		ids[worker]++
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, ids, 4)
	for _, c := range ids {
		assert.Equal(t, 1, c)
	}
}

func TestExecutor_FewerItemsThanWorkers(t *testing.T) {
	exec := New(16)

	var calls atomic.Int32
	err := exec.For(3, func(worker, lo, hi int) error {
		calls.Add(1)
		assert.Equal(t, 1, hi-lo)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestExecutor_Error(t *testing.T) {
	exec := New(4)
	boom := errors.New("boom")

	err := exec.For(100, func(worker, lo, hi int) error {
		if lo == 0 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestExecutor_Nil(t *testing.T) {
	var exec *Executor
	assert.Equal(t, 1, exec.Workers())

	called := false
	err := exec.For(10, func(worker, lo, hi int) error {
		called = true
		assert.Equal(t, 0, worker)
		assert.Equal(t, 0, lo)
		assert.Equal(t, 10, hi)
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.NoError(t, exec.Reserve(1<<40))
	exec.Release(1 << 40)
}

func TestExecutor_EmptyRange(t *testing.T) {
	exec := New(4)
	err := exec.For(0, func(worker, lo, hi int) error {
		t.Fatal("must not be called")
		return nil
	})
	assert.NoError(t, err)
}

func TestExecutor_MemoryLimit(t *testing.T) {
	exec := New(2, WithMemoryLimit(1024))

	require.NoError(t, exec.Reserve(1000))
	assert.ErrorIs(t, exec.Reserve(100), ErrMemoryLimitExceeded)
	exec.Release(1000)
	require.NoError(t, exec.Reserve(100))
	exec.Release(100)
	assert.Equal(t, int64(1000), exec.PeakScratch())
}

func TestScratch_Slots(t *testing.T) {
	s := NewScratch[float64](3, 5)
	assert.Equal(t, 3, s.Workers())
	assert.Equal(t, 5, s.Size())

	for w := range 3 {
		slot := s.Slot(w)
		require.Len(t, slot, 5)
		assert.Equal(t, 5, cap(slot))
		for i := range slot {
			slot[i] = float64(w*10 + i)
		}
	}

	// Slots must not overlap.
	for w := range 3 {
		for i, v := range s.Slot(w) {
			assert.Equal(t, float64(w*10+i), v)
		}
	}
	assert.GreaterOrEqual(t, s.Bytes(), int64(3*5*8))
}
