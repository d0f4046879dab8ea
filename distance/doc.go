// Package distance produces dense blocks of pairwise distances.
//
// A Producer is the collaborator that feeds the blocked k-NN merge: it fills
// the row-major block for rows [rowLo, rowHi) and columns [colLo, colHi) of
// the N x N distance matrix. Producers must return non-negative distances and
// an exact zero on the diagonal.
//
// # Implementations
//
//   - Points: squared Euclidean (MetricL2) or cosine (MetricCosine) distances
//     between the rows of a point matrix, computed with a BLAS GEMM
//   - Matrix: blocks copied out of a precomputed gonum matrix
//
// # Usage
//
//	p, err := distance.NewPoints(data, dim, distance.MetricL2)
//	dst := make([]float32, rows*cols)
//	err = p.Block(dst, 0, rows, 0, cols)
package distance
