package distance

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/hupe1980/manifold/model"
)

// Matrix serves blocks of a precomputed square distance matrix.
type Matrix struct {
	m mat.Matrix
	n int
}

// NewMatrix wraps a square matrix of non-negative distances.
func NewMatrix(m mat.Matrix) (*Matrix, error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("%w: distance matrix must be square, got %dx%d", model.ErrInvalidArgument, r, c)
	}
	return &Matrix{m: m, n: r}, nil
}

// Len returns the matrix order.
func (m *Matrix) Len() int { return m.n }

// Block implements Producer.
func (m *Matrix) Block(dst []float32, rowLo, rowHi, colLo, colHi int) error {
	if err := checkBlock("matrix block", m.n, dst, rowLo, rowHi, colLo, colHi); err != nil {
		return err
	}

	w := colHi - colLo
	for r := rowLo; r < rowHi; r++ {
		out := dst[(r-rowLo)*w : (r-rowLo+1)*w]
		for j := range out {
			out[j] = float32(max(m.m.At(r, colLo+j), 0))
		}
	}
	zeroDiagonal(dst, rowLo, rowHi, colLo, colHi)
	return nil
}
