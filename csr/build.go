package csr

import (
	"fmt"

	"github.com/hupe1980/manifold/model"
)

// FromEdges assembles a graph over n vertices from row-sorted COO triples.
// The triples' Cols and Data arrays become ColInd and Data without copying;
// rowPtr must hold at least n+1 entries.
func FromEdges(e model.Edges, n int, rowPtr []int) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative vertex count %d", model.ErrInvalidArgument, n)
	}
	if err := model.CheckLen("csr from edges", "row_ptr", n+1, len(rowPtr)); err != nil {
		return nil, err
	}

	nnz := e.Len()
	rowPtr = rowPtr[:n+1]
	clear(rowPtr)

	prev := int32(0)
	for i := range nnz {
		r, c := e.Rows[i], e.Cols[i]
		if r < 0 || int(r) >= n {
			return nil, &model.IndexOutOfRangeError{Op: "csr from edges", Position: i, Index: int64(r), Limit: n}
		}
		if c < 0 || int(c) >= n {
			return nil, &model.IndexOutOfRangeError{Op: "csr from edges", Position: i, Index: int64(c), Limit: n}
		}
		if r < prev {
			return nil, fmt.Errorf("%w: edges not sorted by row at position %d", model.ErrInvalidArgument, i)
		}
		prev = r
		rowPtr[r+1]++
	}
	for r := range n {
		rowPtr[r+1] += rowPtr[r]
	}

	return &Graph{
		RowPtr: rowPtr,
		ColInd: e.Cols[:nnz],
		Data:   e.Data[:nnz],
	}, nil
}

// FromDense assembles a graph from a dense neighbor form with exactly k
// entries per row. cols and data are used without copying; rowPtr must hold
// at least len(cols)/k+1 entries.
func FromDense(data []float32, cols []int32, k int, rowPtr []int) (*Graph, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", model.ErrInvalidArgument, k)
	}
	n := min(len(data), len(cols)) / k
	if err := model.CheckLen("csr from dense", "row_ptr", n+1, len(rowPtr)); err != nil {
		return nil, err
	}

	rowPtr = rowPtr[:n+1]
	for r := range rowPtr {
		rowPtr[r] = r * k
	}
	g := &Graph{RowPtr: rowPtr, ColInd: cols[:n*k], Data: data[:n*k]}
	for i, c := range g.ColInd {
		if c < 0 || int(c) >= n {
			return nil, &model.IndexOutOfRangeError{Op: "csr from dense", Position: i, Index: int64(c), Limit: n}
		}
	}
	return g, nil
}
