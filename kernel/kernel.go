package kernel

import (
	"math"

	"github.com/hupe1980/manifold/csr"
	"github.com/hupe1980/manifold/model"
	"github.com/hupe1980/manifold/parallel"
)

// Epsilon floors bandwidths and row sums of isolated vertices.
const Epsilon = 1e-12

// LocalScale returns scale(v) = sqrt(max distance incident to v) for every
// vertex. Every edge counts for both of its endpoints, so a vertex that only
// appears as a row still gets the scale of its own neighborhood.
func LocalScale(exec *parallel.Executor, g *csr.Graph) ([]float64, error) {
	scale, err := aggregate(exec, g, true, math.Max)
	if err != nil {
		return nil, err
	}
	if err := exec.For(len(scale), func(_, lo, hi int) error {
		for v := lo; v < hi; v++ {
			scale[v] = math.Sqrt(scale[v])
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return scale, nil
}

// InverseRowSums returns 1 / (sum of distances into v + Epsilon) for every
// vertex, summing over the edges whose column is v. On a symmetric graph
// these are the row sums.
func InverseRowSums(exec *parallel.Executor, g *csr.Graph) ([]float64, error) {
	inv, err := aggregate(exec, g, false, func(a, b float64) float64 { return a + b })
	if err != nil {
		return nil, err
	}
	if err := exec.For(len(inv), func(_, lo, hi int) error {
		for v := lo; v < hi; v++ {
			inv[v] = 1 / (inv[v] + Epsilon)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return inv, nil
}

// SelfTuningGaussian writes exp(-d(i,j) / (scale(i)*scale(j) + Epsilon)) for
// every edge of g into dst. Weights lie in (0, 1] wherever the exponent does
// not underflow.
func SelfTuningGaussian(exec *parallel.Executor, dst []float32, g *csr.Graph) error {
	if err := model.CheckLen("self-tuning gaussian", "dst", g.NNZ(), len(dst)); err != nil {
		return err
	}

	scale, err := LocalScale(exec, g)
	if err != nil {
		return err
	}

	return weigh(exec, g, func(d float64, i, j int32) float32 {
		den := scale[i] * scale[j]
		if den != 0 {
			return float32(math.Exp(-d / (den + Epsilon)))
		}
		return float32(math.Exp(-d))
	}, dst)
}

// Normalize writes d(i,j) * inv(i) * inv(j) for every edge of g into dst,
// where inv is InverseRowSums.
func Normalize(exec *parallel.Executor, dst []float32, g *csr.Graph) error {
	if err := model.CheckLen("normalize", "dst", g.NNZ(), len(dst)); err != nil {
		return err
	}

	inv, err := InverseRowSums(exec, g)
	if err != nil {
		return err
	}

	return weigh(exec, g, func(d float64, i, j int32) float32 {
		return float32(d * inv[i] * inv[j])
	}, dst)
}

// aggregate folds every edge's distance into its column vertex with combine,
// and into its row vertex too when rows is set.
//
// Workers own disjoint stripes of vertices and share one output array. Each
// worker walks its own rows and scans the full column array for ids in its
// stripe, so every vertex is folded in edge order whatever the worker count.
func aggregate(exec *parallel.Executor, g *csr.Graph, rows bool, combine func(a, b float64) float64) ([]float64, error) {
	n := g.Rows()

	bytes := int64(n) * 8
	if err := exec.Reserve(bytes); err != nil {
		return nil, err
	}
	defer exec.Release(bytes)

	out := make([]float64, n)
	if err := exec.For(n, func(_, lo, hi int) error {
		if rows {
			for r := lo; r < hi; r++ {
				for j := g.RowPtr[r]; j < g.RowPtr[r+1]; j++ {
					out[r] = combine(out[r], float64(g.Data[j]))
				}
			}
		}
		for j, c := range g.ColInd {
			if int(c) >= lo && int(c) < hi {
				out[c] = combine(out[c], float64(g.Data[j]))
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func weigh(exec *parallel.Executor, g *csr.Graph, w func(d float64, i, j int32) float32, dst []float32) error {
	bytes := csr.RowIndexBytes(g)
	if err := exec.Reserve(bytes); err != nil {
		return err
	}
	defer exec.Release(bytes)

	rows, err := csr.RowIndices(exec, g)
	if err != nil {
		return err
	}
	return exec.For(len(rows), func(_, lo, hi int) error {
		for e := lo; e < hi; e++ {
			dst[e] = w(float64(g.Data[e]), rows[e], g.ColInd[e])
		}
		return nil
	})
}
