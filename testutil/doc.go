// Package testutil provides testing utilities for manifold.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random point clouds and computing the
// exact neighbor lists the tiled builders are checked against.
//
// # Random Points
//
//	rng := testutil.NewRNG(seed)
//	pts := rng.UniformPoints(n, dim) // flat row-major, values in [0, 1)
//
// # Ground Truth
//
//	dist := testutil.SquaredDistances(pts, n, dim) // dense n x n
//	want := testutil.ExactTopK(dist, n, k)         // per-row ascending (dist, col)
package testutil
