package knn

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/manifold/model"
)

// Mutualize reduces a directed k-NN edge list to its reciprocal edges, in
// place, and returns the number of edges kept.
//
// e must hold exactly k contiguous entries per row for rows 0..N-1, so that
// vertex v's neighbors occupy e.Cols[v*k : (v+1)*k]; e.Rows is overwritten
// with the row ids of the kept edges.
//
// An edge (i, j) survives iff j lists i and i lists j. The output is
// asymmetric: a mutual pair (i, j) with i < j appears once, from row i, and
// every vertex keeps exactly one self-loop with distance 0. Use
// MutualizeSymmetric when both directions are needed.
func Mutualize(e model.Edges, k int) (int, error) {
	return mutualize(e, k, false)
}

// MutualizeSymmetric is Mutualize with the mirrored direction of every pair:
// the pair is confirmed once, while scanning the lower row, and (j, i) is
// emitted again when row j is scanned. The output stays row-major.
func MutualizeSymmetric(e model.Edges, k int) (int, error) {
	return mutualize(e, k, true)
}

func mutualize(e model.Edges, k int, mirror bool) (int, error) {
	if k <= 0 {
		return 0, fmt.Errorf("%w: k must be positive, got %d", model.ErrInvalidArgument, k)
	}
	n := len(e.Cols)
	if n%k != 0 {
		return 0, fmt.Errorf("%w: %d entries is not a multiple of k=%d", model.ErrInvalidArgument, n, k)
	}
	if err := checkEdges("mutualize", e, n); err != nil {
		return 0, err
	}

	vertices := n / k
	for i, c := range e.Cols {
		if c < 0 || int(c) >= vertices {
			return 0, &model.IndexOutOfRangeError{Op: "mutualize", Position: i, Index: int64(c), Limit: vertices}
		}
	}

	// confirmed marks slots of higher rows whose reciprocal edge has already
	// been emitted from the lower row.
	confirmed := bitset.New(uint(n))

	j := 0
	for r := range n {
		row := int32(r / k)
		col := e.Cols[r]

		switch {
		case col > row:
			base := int(col) * k
			slice := e.Cols[base : base+k]
			for s, v := range slice {
				if v == row {
					confirmed.Set(uint(base + s))
					e.Set(j, e.Data[r], col, row)
					j++
					break
				}
			}
		case col < row:
			if mirror && confirmed.Test(uint(r)) {
				e.Set(j, e.Data[r], col, row)
				j++
			}
		default:
			e.Set(j, 0, col, row)
			j++
		}
	}
	return j, nil
}
