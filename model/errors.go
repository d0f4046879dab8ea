package model

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a scalar argument is invalid (k <= 0, d > k, ...).
var ErrInvalidArgument = errors.New("invalid argument")

// BufferTooSmallError indicates a caller-owned output buffer below its documented capacity.
type BufferTooSmallError struct {
	Op       string
	Buffer   string
	Required int
	Actual   int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("%s: buffer %q too small: required %d, got %d", e.Op, e.Buffer, e.Required, e.Actual)
}

// IndexOutOfRangeError indicates a vertex id outside [0, Limit).
type IndexOutOfRangeError struct {
	Op       string
	Position int
	Index    int64
	Limit    int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: index %d at position %d out of range [0, %d)", e.Op, e.Index, e.Position, e.Limit)
}

// CheckLen returns a BufferTooSmallError when actual < required.
func CheckLen(op, buffer string, required, actual int) error {
	if actual < required {
		return &BufferTooSmallError{Op: op, Buffer: buffer, Required: required, Actual: actual}
	}
	return nil
}
