package csr

import "github.com/hupe1980/manifold/parallel"

// RowIndexBytes is the scratch footprint of RowIndices for g.
func RowIndexBytes(g *Graph) int64 {
	return int64(g.NNZ()) * 4
}

// RowIndices returns an owned array with the row id of every edge of g,
// filled in parallel over rows.
func RowIndices(exec *parallel.Executor, g *Graph) ([]int32, error) {
	rows := make([]int32, g.NNZ())
	err := exec.For(g.Rows(), func(_, lo, hi int) error {
		for r := lo; r < hi; r++ {
			id := int32(r)
			for j := g.RowPtr[r]; j < g.RowPtr[r+1]; j++ {
				rows[j] = id
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
