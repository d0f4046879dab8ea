// Package csr implements compressed-sparse-row graphs over caller-owned
// buffers.
//
// A Graph is three slices: RowPtr (rows+1 monotone offsets starting at 0),
// ColInd and Data (one entry per edge). Operations that shrink a graph, such
// as Subset, compact the buffers in place and reslice them; the backing
// arrays are never reallocated, so callers size them once for the worst case.
//
// RowIndices expands RowPtr into an explicit per-edge row array. Both kernel
// policies use it, so they always attribute edges to the same rows.
package csr
