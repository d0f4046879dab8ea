// Package model defines the buffer types and contract errors shared by the
// neighbor-list, CSR and kernel packages.
//
// # Buffers
//
//   - Edges: COO triples (distance, column, row) in row-major order
//
// All buffers are caller-owned. Operations in this module shrink the logical
// length of a buffer (by reslicing) but never reallocate it.
//
// # Contract Errors
//
//   - ErrInvalidArgument: a scalar argument is out of its domain (k <= 0, d > k)
//   - BufferTooSmallError: an output buffer is shorter than the documented capacity
//   - IndexOutOfRangeError: a vertex id lies outside [0, N)
package model
