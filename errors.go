package manifold

import (
	"errors"
	"fmt"

	"github.com/hupe1980/manifold/knn"
	"github.com/hupe1980/manifold/model"
)

var (
	// ErrInvalidK is returned when k is not positive or exceeds the number of points.
	ErrInvalidK = errors.New("k must be in [1, n]")

	// ErrInvalidTileSize is returned when the tile size is not positive.
	ErrInvalidTileSize = errors.New("tile size must be positive")

	// ErrProducerMismatch is returned when a producer does not serve exactly n points.
	ErrProducerMismatch = errors.New("producer size does not match pipeline")

	// ErrAborted wraps every failure that stops a run. Once a run has
	// aborted, the Pipeline refuses further work and returns the first
	// failure wrapped with ErrAborted.
	ErrAborted = errors.New("pipeline aborted")
)

type (
	// RowInconsistencyError is returned when a neighbor row cannot be finalized.
	RowInconsistencyError = knn.RowInconsistencyError
	// BufferTooSmallError is returned when a caller buffer is below its required size.
	BufferTooSmallError = model.BufferTooSmallError
	// IndexOutOfRangeError is returned when a vertex id lies outside [0, n).
	IndexOutOfRangeError = model.IndexOutOfRangeError
)

// ErrInvalidArgument is returned when a scalar argument is out of its domain.
var ErrInvalidArgument = model.ErrInvalidArgument

func asRowInconsistency(err error) *RowInconsistencyError {
	var rie *RowInconsistencyError
	if errors.As(err, &rie) {
		return rie
	}
	return nil
}

// abortError wraps err with ErrAborted and the phase it happened in.
func abortError(phase string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrAborted) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrAborted, phase, err)
}
