package distance

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/hupe1980/manifold/model"
)

// Points computes distance blocks between the rows of an N x dim point
// matrix. Blocks are one GEMM each: ||q||^2 + ||r||^2 - 2 q.r for MetricL2,
// 1 - q.r over normalized rows for MetricCosine. Results are clamped at zero
// and the diagonal is exactly zero.
type Points struct {
	data   []float32
	dim    int
	n      int
	metric Metric
	norms  []float32
}

// NewPoints wraps row-major point data with dim coordinates per point. For
// MetricCosine the rows are normalized into a private copy; zero rows stay
// zero and sit at distance 1 from everything else.
func NewPoints(data []float32, dim int, metric Metric) (*Points, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension must be positive, got %d", model.ErrInvalidArgument, dim)
	}
	if len(data)%dim != 0 {
		return nil, fmt.Errorf("%w: %d values is not a multiple of dimension %d", model.ErrInvalidArgument, len(data), dim)
	}

	p := &Points{data: data, dim: dim, n: len(data) / dim, metric: metric}

	switch metric {
	case MetricL2:
		p.norms = make([]float32, p.n)
		for i := range p.n {
			v := p.row(i)
			p.norms[i] = blas32.Dot(v, v)
		}
	case MetricCosine:
		p.data = make([]float32, len(data))
		copy(p.data, data)
		for i := range p.n {
			v := p.row(i)
			if nrm := blas32.Nrm2(v); nrm > 0 {
				blas32.Scal(1/nrm, v)
			}
		}
	default:
		return nil, fmt.Errorf("%w: unsupported metric %v", model.ErrInvalidArgument, metric)
	}

	return p, nil
}

// Len returns the number of points.
func (p *Points) Len() int { return p.n }

// Dim returns the number of coordinates per point.
func (p *Points) Dim() int { return p.dim }

// Metric returns the configured metric.
func (p *Points) Metric() Metric { return p.metric }

// Block implements Producer.
func (p *Points) Block(dst []float32, rowLo, rowHi, colLo, colHi int) error {
	if err := checkBlock("points block", p.n, dst, rowLo, rowHi, colLo, colHi); err != nil {
		return err
	}
	m, w := rowHi-rowLo, colHi-colLo
	if m == 0 || w == 0 {
		return nil
	}

	c := blas32.General{Rows: m, Cols: w, Stride: w, Data: dst[:m*w]}

	switch p.metric {
	case MetricL2:
		blas32.Gemm(blas.NoTrans, blas.Trans, -2, p.rows(rowLo, rowHi), p.rows(colLo, colHi), 0, c)
		for r := range m {
			nr := p.norms[rowLo+r]
			out := c.Data[r*w : (r+1)*w]
			for j := range out {
				out[j] = max(out[j]+nr+p.norms[colLo+j], 0)
			}
		}
	case MetricCosine:
		blas32.Gemm(blas.NoTrans, blas.Trans, -1, p.rows(rowLo, rowHi), p.rows(colLo, colHi), 0, c)
		for i := range c.Data {
			c.Data[i] = max(c.Data[i]+1, 0)
		}
	}

	zeroDiagonal(dst, rowLo, rowHi, colLo, colHi)
	return nil
}

func (p *Points) row(i int) blas32.Vector {
	return blas32.Vector{N: p.dim, Inc: 1, Data: p.data[i*p.dim : (i+1)*p.dim]}
}

func (p *Points) rows(lo, hi int) blas32.General {
	return blas32.General{Rows: hi - lo, Cols: p.dim, Stride: p.dim, Data: p.data[lo*p.dim : hi*p.dim]}
}
