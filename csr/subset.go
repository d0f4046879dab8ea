package csr

import (
	"fmt"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/manifold/model"
	"github.com/hupe1980/manifold/parallel"
)

// Subset reduces g, in place, to the subgraph induced by selected: only edges
// whose endpoints are both selected survive, and every vertex id is remapped
// to its position in selected. Rows are emitted in selection order. It
// returns the number of edges kept; g is resliced to the new shape.
//
// Selections must be unique and in range. Ascending selections are compacted
// directly in the caller's buffers; any other order first snapshots the
// source rows into scratch.
func Subset(exec *parallel.Executor, g *Graph, selected []int32) (int, error) {
	n := g.Rows()
	scnt := len(selected)

	for s, v := range selected {
		if v < 0 || int(v) >= n {
			return 0, &model.IndexOutOfRangeError{Op: "subset", Position: s, Index: int64(v), Limit: n}
		}
	}

	mapBytes := int64(n) * 4
	if err := exec.Reserve(mapBytes); err != nil {
		return 0, err
	}
	defer exec.Release(mapBytes)

	index := make([]int32, n)
	if err := exec.For(n, func(_, lo, hi int) error {
		for i := lo; i < hi; i++ {
			index[i] = -1
		}
		return nil
	}); err != nil {
		return 0, err
	}
	for s, v := range selected {
		if index[v] != -1 {
			return 0, fmt.Errorf("%w: vertex %d selected twice (positions %d and %d)", model.ErrInvalidArgument, v, index[v], s)
		}
		index[v] = int32(s)
	}

	var cnt int
	if slices.IsSorted(selected) {
		cnt = subsetAscending(g, selected, index)
	} else {
		snapBytes := int64(n+1)*8 + int64(g.NNZ())*8
		if err := exec.Reserve(snapBytes); err != nil {
			return 0, err
		}
		defer exec.Release(snapBytes)

		src := Graph{
			RowPtr: slices.Clone(g.RowPtr),
			ColInd: slices.Clone(g.ColInd),
			Data:   slices.Clone(g.Data),
		}
		cnt = subsetFrom(g, &src, selected, index)
	}

	g.RowPtr = g.RowPtr[:scnt+1]
	g.ColInd = g.ColInd[:cnt]
	g.Data = g.Data[:cnt]
	return cnt, nil
}

// SubsetBitmap is Subset with the selection given as a bitmap; vertices are
// taken in ascending id order.
func SubsetBitmap(exec *parallel.Executor, g *Graph, bm *roaring.Bitmap) (int, error) {
	if bm.GetCardinality() > 0 && int64(bm.Maximum()) >= int64(g.Rows()) {
		return 0, &model.IndexOutOfRangeError{Op: "subset", Position: int(bm.GetCardinality()) - 1, Index: int64(bm.Maximum()), Limit: g.Rows()}
	}

	selected := make([]int32, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		selected = append(selected, int32(it.Next()))
	}
	return Subset(exec, g, selected)
}

// subsetAscending compacts in place. With an ascending selection, selected[s]
// >= s, so the write cursor never passes the read cursor. RowPtr[s] may
// already hold its new value when row s is read; pending keeps the original.
func subsetAscending(g *Graph, selected, index []int32) int {
	cnt := 0
	pending := g.RowPtr[0]
	for s, v := range selected {
		r := int(v)
		start := g.RowPtr[r]
		if r == s {
			start = pending
		}
		end := g.RowPtr[r+1]

		for j := start; j < end; j++ {
			if m := index[g.ColInd[j]]; m >= 0 {
				g.ColInd[cnt] = m
				g.Data[cnt] = g.Data[j]
				cnt++
			}
		}

		pending = g.RowPtr[s+1]
		g.RowPtr[s+1] = cnt
	}
	g.RowPtr[0] = 0
	return cnt
}

func subsetFrom(dst, src *Graph, selected, index []int32) int {
	cnt := 0
	dst.RowPtr[0] = 0
	for s, v := range selected {
		cols, data := src.Row(int(v))
		for j, c := range cols {
			if m := index[c]; m >= 0 {
				dst.ColInd[cnt] = m
				dst.Data[cnt] = data[j]
				cnt++
			}
		}
		dst.RowPtr[s+1] = cnt
	}
	return cnt
}
