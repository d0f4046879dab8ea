package knn

import (
	"fmt"

	"github.com/hupe1980/manifold/model"
)

// ReduceStride keeps the first d of every k entries of src and writes them to
// dst in order. src must hold whole rows of k entries. dst may alias src.
// It returns the number of entries written (rows*d).
func ReduceStride(dst, src model.Edges, k, d int) (int, error) {
	if k <= 0 || d <= 0 || d > k {
		return 0, fmt.Errorf("%w: stride reduction needs 0 < d <= k (k=%d, d=%d)", model.ErrInvalidArgument, k, d)
	}

	n := src.Len()
	if n%k != 0 {
		return 0, fmt.Errorf("%w: %d entries is not a multiple of k=%d", model.ErrInvalidArgument, n, k)
	}
	rows := n / k
	if err := checkEdges("reduce stride", dst, rows*d); err != nil {
		return 0, err
	}

	j := 0
	for r := range rows {
		base := r * k
		for c := range d {
			dst.Set(j, src.Data[base+c], src.Cols[base+c], src.Rows[base+c])
			j++
		}
	}
	return j, nil
}

// ReduceThreshold keeps the entries of src whose distance is strictly below
// eps, preserving order. dst may alias src for in-place compaction. It
// returns the number of entries kept.
func ReduceThreshold(dst, src model.Edges, eps float32) (int, error) {
	return reduceBelow(dst, src, src.Data, eps, "reduce threshold")
}

// ReduceThresholdCmp is ReduceThreshold comparing cmp[i] instead of the
// distance of entry i.
func ReduceThresholdCmp(dst, src model.Edges, cmp []float32, eps float32) (int, error) {
	if err := model.CheckLen("reduce threshold cmp", "cmp", src.Len(), len(cmp)); err != nil {
		return 0, err
	}
	return reduceBelow(dst, src, cmp, eps, "reduce threshold cmp")
}

func reduceBelow(dst, src model.Edges, cmp []float32, eps float32, op string) (int, error) {
	n := src.Len()
	j := 0
	for i := range n {
		if cmp[i] < eps {
			j++
		}
	}
	if err := checkEdges(op, dst, j); err != nil {
		return 0, err
	}

	j = 0
	for i := range n {
		if cmp[i] < eps {
			dst.Set(j, src.Data[i], src.Cols[i], src.Rows[i])
			j++
		}
	}
	return j, nil
}

func checkEdges(op string, e model.Edges, required int) error {
	if err := model.CheckLen(op, "data", required, len(e.Data)); err != nil {
		return err
	}
	if err := model.CheckLen(op, "cols", required, len(e.Cols)); err != nil {
		return err
	}
	return model.CheckLen(op, "rows", required, len(e.Rows))
}
