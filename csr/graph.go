package csr

import (
	"fmt"

	"github.com/hupe1980/manifold/model"
)

// Graph is a square sparse matrix in CSR form.
type Graph struct {
	RowPtr []int
	ColInd []int32
	Data   []float32
}

// Rows returns the number of rows (vertices).
func (g *Graph) Rows() int {
	return max(len(g.RowPtr)-1, 0)
}

// NNZ returns the number of stored edges.
func (g *Graph) NNZ() int {
	if len(g.RowPtr) == 0 {
		return 0
	}
	return g.RowPtr[len(g.RowPtr)-1]
}

// Row returns the column ids and values of row r.
func (g *Graph) Row(r int) ([]int32, []float32) {
	lo, hi := g.RowPtr[r], g.RowPtr[r+1]
	return g.ColInd[lo:hi], g.Data[lo:hi]
}

// Validate checks that the graph is well formed: RowPtr starts at 0 and is
// monotone, ColInd and Data hold exactly NNZ entries, and every column lies
// in [0, Rows()).
func (g *Graph) Validate() error {
	if len(g.RowPtr) == 0 {
		return fmt.Errorf("%w: empty row pointer", model.ErrInvalidArgument)
	}
	if g.RowPtr[0] != 0 {
		return fmt.Errorf("%w: row pointer starts at %d", model.ErrInvalidArgument, g.RowPtr[0])
	}
	for r := 1; r < len(g.RowPtr); r++ {
		if g.RowPtr[r] < g.RowPtr[r-1] {
			return fmt.Errorf("%w: row pointer decreases at row %d", model.ErrInvalidArgument, r-1)
		}
	}

	nnz := g.NNZ()
	if len(g.ColInd) != nnz || len(g.Data) != nnz {
		return fmt.Errorf("%w: nnz %d but %d columns and %d values", model.ErrInvalidArgument, nnz, len(g.ColInd), len(g.Data))
	}

	n := g.Rows()
	for i, c := range g.ColInd {
		if c < 0 || int(c) >= n {
			return &model.IndexOutOfRangeError{Op: "validate", Position: i, Index: int64(c), Limit: n}
		}
	}
	return nil
}
