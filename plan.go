package manifold

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
)

// Kernel selects the weighting applied to the final graph.
type Kernel int

const (
	// KernelNone keeps the raw distances.
	KernelNone Kernel = iota
	// KernelGaussian applies the self-tuning Gaussian.
	KernelGaussian
	// KernelNormalize applies the symmetric row-sum normalization.
	KernelNormalize
)

func (k Kernel) String() string {
	switch k {
	case KernelNone:
		return "none"
	case KernelGaussian:
		return "gaussian"
	case KernelNormalize:
		return "normalize"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Plan describes how a finalized k-NN list is shaped into the output graph.
// Plans are immutable: each method returns a new Plan with the updated step.
//
// Steps run in a fixed order: stride, mutual, threshold, CSR assembly,
// subset, kernel.
//
// Example:
//
//	plan := manifold.NewPlan().
//	    Stride(10).
//	    Mutual().
//	    Threshold(4.0).
//	    Gaussian()
type Plan struct {
	stride       int
	mutual       bool
	symmetric    bool
	threshold    float32
	hasThreshold bool
	subset       []int32
	subsetBitmap *roaring.Bitmap
	kernel       Kernel
}

// NewPlan returns a Plan that keeps all k neighbors and raw distances.
func NewPlan() Plan {
	return Plan{}
}

// Stride keeps only the first d (nearest) of every row's k neighbors.
func (p Plan) Stride(d int) Plan {
	p.stride = d
	return p
}

// Mutual keeps only reciprocal edges. Each pair appears once, from its
// lower row, and every vertex keeps its self-loop.
func (p Plan) Mutual() Plan {
	p.mutual = true
	p.symmetric = false
	return p
}

// MutualSymmetric is Mutual with both directions of every pair.
func (p Plan) MutualSymmetric() Plan {
	p.mutual = true
	p.symmetric = true
	return p
}

// Threshold keeps only edges with distance strictly below eps.
func (p Plan) Threshold(eps float32) Plan {
	p.threshold = eps
	p.hasThreshold = true
	return p
}

// Subset restricts the graph to the subgraph induced by selected, with
// vertices renumbered by their position in selected.
func (p Plan) Subset(selected []int32) Plan {
	p.subset = selected
	p.subsetBitmap = nil
	return p
}

// SubsetBitmap is Subset with vertices taken from bm in ascending order.
func (p Plan) SubsetBitmap(bm *roaring.Bitmap) Plan {
	p.subsetBitmap = bm
	p.subset = nil
	return p
}

// Gaussian weights the final graph with the self-tuning Gaussian kernel.
func (p Plan) Gaussian() Plan {
	p.kernel = KernelGaussian
	return p
}

// Normalize weights the final graph with the row-sum normalization.
func (p Plan) Normalize() Plan {
	p.kernel = KernelNormalize
	return p
}

// Kernel returns the configured weighting.
func (p Plan) Kernel() Kernel {
	return p.kernel
}

// validate checks the plan against a graph of n vertices with k neighbors
// each, so that contract errors surface before any work starts.
func (p Plan) validate(n, k int) error {
	if p.stride < 0 || p.stride > k {
		return fmt.Errorf("%w: stride %d outside [0, %d]", ErrInvalidArgument, p.stride, k)
	}

	if bm := p.subsetBitmap; bm != nil && !bm.IsEmpty() && int64(bm.Maximum()) >= int64(n) {
		return &IndexOutOfRangeError{Op: "subset", Position: int(bm.GetCardinality()) - 1, Index: int64(bm.Maximum()), Limit: n}
	}

	seen := bitset.New(uint(n))
	for s, v := range p.subset {
		if v < 0 || int(v) >= n {
			return &IndexOutOfRangeError{Op: "subset", Position: s, Index: int64(v), Limit: n}
		}
		if seen.Test(uint(v)) {
			return fmt.Errorf("%w: vertex %d selected twice", ErrInvalidArgument, v)
		}
		seen.Set(uint(v))
	}
	return nil
}
