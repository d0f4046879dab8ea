package knn

import (
	"fmt"
	"slices"

	"github.com/hupe1980/manifold/internal/conv"
	"github.com/hupe1980/manifold/internal/heap"
	"github.com/hupe1980/manifold/model"
	"github.com/hupe1980/manifold/parallel"
)

// Merger folds distance blocks into per-row bounded max-heaps.
//
// Blocks for a row range must be pushed in ascending, contiguous column order
// starting at offset 0: the first min(k, offset) slots of each row are taken
// as the valid state left by earlier pushes. A Merger is not safe for
// concurrent use; its parallelism comes from the Executor.
type Merger struct {
	k       int
	exec    *parallel.Executor
	heaps   *parallel.Scratch[heap.Item]
	columns int
}

// NewMerger creates a Merger for k neighbors per row. A nil exec runs sequentially.
func NewMerger(k int, exec *parallel.Executor) (*Merger, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", model.ErrInvalidArgument, k)
	}
	return &Merger{
		k:     k,
		exec:  exec,
		heaps: parallel.NewScratch[heap.Item](exec.Workers(), k),
	}, nil
}

// K returns the number of neighbors per row.
func (m *Merger) K() int { return m.k }

// Columns returns the highest column offset+width pushed so far.
func (m *Merger) Columns() int { return m.columns }

// Reset forgets the pushed column range, e.g. before starting a new row range.
func (m *Merger) Reset() { m.columns = 0 }

// Push merges a row-major block of list.Rows() x cols distances whose first
// column has global id offset.
func (m *Merger) Push(dist []float32, cols int, list NeighborList, offset int) error {
	if list.K != m.k {
		return fmt.Errorf("%w: list has k=%d, merger has k=%d", model.ErrInvalidArgument, list.K, m.k)
	}
	if cols < 0 || offset < 0 {
		return fmt.Errorf("%w: negative block shape (cols=%d, offset=%d)", model.ErrInvalidArgument, cols, offset)
	}
	if !conv.FitsInt32(offset + cols) {
		return &model.IndexOutOfRangeError{Op: "push", Position: cols - 1, Index: int64(offset + cols - 1), Limit: 1 << 31}
	}

	rows := list.Rows()
	if err := model.CheckLen("push", "block", rows*cols, len(dist)); err != nil {
		return err
	}

	k := m.k
	valid := min(k, offset)

	err := m.exec.For(rows, func(worker, lo, hi int) error {
		h := m.heaps.Slot(worker)
		for r := lo; r < hi; r++ {
			data, ids := list.Row(r)
			block := dist[r*cols : (r+1)*cols]

			n := 0
			for ; n < valid; n++ {
				h[n] = heap.Item{Dist: data[n], Col: ids[n]}
			}
			c := 0
			for ; n < k && c < cols; c, n = c+1, n+1 {
				h[n] = heap.Item{Dist: block[c], Col: int32(offset + c)}
			}

			if n == k {
				heap.Init(h)
				for ; c < cols; c++ {
					if d := block[c]; d < h[0].Dist {
						heap.PushBounded(h, heap.Item{Dist: d, Col: int32(offset + c)})
					}
				}
			}

			for i := range n {
				data[i] = h[i].Dist
				ids[i] = h[i].Col
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.columns = max(m.columns, offset+cols)
	return nil
}

// Finalize sorts every row of list ascending and pins (0, own id) to slot 0.
// Row r of list has global id rowOffset+r. A self entry missing from the heap
// displaces the largest entry; later mentions of self are skipped.
//
// A row that cannot produce exactly K valid, unique entries yields a
// *RowInconsistencyError and the list must be treated as corrupt.
func (m *Merger) Finalize(list NeighborList, rowOffset int) error {
	if list.K != m.k {
		return fmt.Errorf("%w: list has k=%d, merger has k=%d", model.ErrInvalidArgument, list.K, m.k)
	}
	if rowOffset < 0 {
		return fmt.Errorf("%w: negative row offset %d", model.ErrInvalidArgument, rowOffset)
	}

	rows := list.Rows()
	if !conv.FitsInt32(rowOffset + rows) {
		return &model.IndexOutOfRangeError{Op: "finalize", Position: rows - 1, Index: int64(rowOffset + rows - 1), Limit: 1 << 31}
	}
	if rows > 0 && m.columns < m.k {
		return &RowInconsistencyError{
			Row:      rowOffset,
			Expected: m.k,
			Actual:   m.columns,
			Reason:   "fewer columns pushed than neighbors requested",
		}
	}

	k := m.k
	limit := m.columns

	return m.exec.For(rows, func(worker, lo, hi int) error {
		h := m.heaps.Slot(worker)
		for r := lo; r < hi; r++ {
			data, ids := list.Row(r)
			self := int32(rowOffset + r)

			for i := range h {
				h[i] = heap.Item{Dist: data[i], Col: ids[i]}
			}
			slices.SortFunc(h, heap.Compare)

			c := 0
			if h[0].Col != self {
				data[0] = 0
				ids[0] = self
				c = 1
			}
			for _, it := range h {
				if c == k {
					break
				}
				if it.Col == self && c > 0 {
					continue
				}
				if it.Col < 0 || int(it.Col) >= limit {
					return rowError(rowOffset+r, k, c, "neighbor id out of range", h)
				}
				if slices.Contains(ids[:c], it.Col) {
					return rowError(rowOffset+r, k, c, "duplicate neighbor id", h)
				}
				data[c] = it.Dist
				ids[c] = it.Col
				c++
			}
			if c != k {
				return rowError(rowOffset+r, k, c, "not enough unique neighbors", h)
			}
			data[0] = 0
		}
		return nil
	})
}

func rowError(row, expected, actual int, reason string, h []heap.Item) error {
	entries := make([]Neighbor, len(h))
	for i, it := range h {
		entries[i] = Neighbor{Dist: it.Dist, Col: it.Col}
	}
	return &RowInconsistencyError{
		Row:      row,
		Expected: expected,
		Actual:   actual,
		Reason:   reason,
		Entries:  entries,
	}
}
