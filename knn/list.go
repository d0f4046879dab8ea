package knn

import (
	"github.com/hupe1980/manifold/internal/conv"
	"github.com/hupe1980/manifold/model"
)

// NeighborList is the dense neighbor form: row r occupies slots [r*K, (r+1)*K)
// of Data (distances) and Cols (neighbor ids).
type NeighborList struct {
	K    int
	Data []float32
	Cols []int32
}

// Rows returns the number of complete rows the buffers hold.
func (l NeighborList) Rows() int {
	if l.K <= 0 {
		return 0
	}
	return min(len(l.Data), len(l.Cols)) / l.K
}

// Slice returns the rows [lo, hi) sharing the same storage.
func (l NeighborList) Slice(lo, hi int) NeighborList {
	return NeighborList{
		K:    l.K,
		Data: l.Data[lo*l.K : hi*l.K],
		Cols: l.Cols[lo*l.K : hi*l.K],
	}
}

// Row returns the distances and ids of row r.
func (l NeighborList) Row(r int) ([]float32, []int32) {
	return l.Data[r*l.K : (r+1)*l.K], l.Cols[r*l.K : (r+1)*l.K]
}

// Edges views the list as COO triples using rows for the row ids. rows must
// hold at least Rows()*K entries; use FillRows to populate it.
func (l NeighborList) Edges(rows []int32) model.Edges {
	n := l.Rows() * l.K
	return model.Edges{Data: l.Data[:n], Cols: l.Cols[:n], Rows: rows[:n]}
}

// FillRows writes the row id of every slot of a dense list with k entries per
// row into rows, starting at global row rowOffset.
func FillRows(rows []int32, k, rowOffset int) error {
	if k <= 0 {
		return model.ErrInvalidArgument
	}
	n := len(rows) / k
	if !conv.FitsInt32(rowOffset + n) {
		return &model.IndexOutOfRangeError{Op: "fill rows", Position: len(rows) - 1, Index: int64(rowOffset + n - 1), Limit: 1 << 31}
	}
	for r := range n {
		id := int32(rowOffset + r)
		seg := rows[r*k : (r+1)*k]
		for i := range seg {
			seg[i] = id
		}
	}
	return nil
}
