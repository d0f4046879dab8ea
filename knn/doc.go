// Package knn builds exact k-nearest-neighbor lists from streamed distance
// blocks and shapes them into sparse edge lists.
//
// # Building
//
// A Merger folds row-major distance blocks into a dense NeighborList, one
// bounded max-heap of capacity k per row. Blocks can arrive in any tiling of
// the reference columns; the final top-k set of every row does not depend on
// it. Once every column has been pushed, Finalize sorts each row ascending and
// pins the row's own id to slot 0:
//
//	m, _ := knn.NewMerger(k, exec)
//	list := knn.NeighborList{K: k, Data: data, Cols: cols}
//	for off := 0; off < n; off += tile {
//	    // block holds rows x min(tile, n-off) squared distances
//	    _ = m.Push(block, cols, list, off)
//	}
//	if err := m.Finalize(list, 0); err != nil {
//	    var rie *knn.RowInconsistencyError
//	    ...
//	}
//
// # Shaping
//
// ReduceStride, ReduceThreshold and ReduceThresholdCmp compact COO triples in
// row-major order. Mutualize keeps each reciprocal pair once, from its lower
// row; MutualizeSymmetric keeps both directions.
//
// All buffers are caller-owned; nothing here reallocates them.
package knn
