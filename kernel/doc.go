// Package kernel turns sparse distances into sparse similarity weights.
//
// Both policies run in two phases separated by a barrier. The first phase
// aggregates a per-vertex statistic into a single array of length N; workers
// own disjoint vertex stripes and each scans the column array for its own
// ids, so aggregation memory does not grow with the worker count. The second
// phase weights every edge from the finished statistics of its two
// endpoints, using csr.RowIndices for the row endpoint.
//
//   - SelfTuningGaussian: scale(v) = sqrt(max distance of any edge with v
//     as row or column), w(i,j) = exp(-d(i,j) / (scale(i)*scale(j) + Epsilon))
//   - Normalize: inv(v) = 1 / (sum of distances of edges into v + Epsilon),
//     w(i,j) = d(i,j) * inv(i) * inv(j)
//
// Since every edge raises the scale of both endpoints, Gaussian weights stay
// in (0, 1] on directed and one-sided graphs as well as symmetric ones.
// Degenerate vertices (no incident distance) are not errors: when
// scale(i)*scale(j) is zero the Gaussian falls back to exp(-d), and the
// Epsilon floor keeps the normalization finite.
package kernel
