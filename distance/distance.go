package distance

import (
	"errors"
	"fmt"

	"github.com/hupe1980/manifold/model"
)

// ErrInvalidRange is returned when a block range is empty-inverted or exceeds Len().
var ErrInvalidRange = errors.New("invalid block range")

// Producer fills dense distance blocks.
type Producer interface {
	// Len returns the number of points N.
	Len() int
	// Block writes the (rowHi-rowLo) x (colHi-colLo) row-major block of
	// distances into dst.
	Block(dst []float32, rowLo, rowHi, colLo, colHi int) error
}

// Metric selects the distance computed by Points.
type Metric int

const (
	// MetricL2 is the squared Euclidean distance.
	MetricL2 Metric = iota
	// MetricCosine is one minus the cosine similarity.
	MetricCosine
)

func (m Metric) String() string {
	switch m {
	case MetricL2:
		return "L2"
	case MetricCosine:
		return "Cosine"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// SquaredL2 returns the squared Euclidean distance between a and b.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float32) float32 {
	var s float32
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

// checkBlock validates a block request against n points and dst.
func checkBlock(op string, n int, dst []float32, rowLo, rowHi, colLo, colHi int) error {
	if rowLo < 0 || rowHi < rowLo || rowHi > n {
		return fmt.Errorf("%s: %w: rows [%d, %d) of %d", op, ErrInvalidRange, rowLo, rowHi, n)
	}
	if colLo < 0 || colHi < colLo || colHi > n {
		return fmt.Errorf("%s: %w: cols [%d, %d) of %d", op, ErrInvalidRange, colLo, colHi, n)
	}
	return model.CheckLen(op, "dst", (rowHi-rowLo)*(colHi-colLo), len(dst))
}

// zeroDiagonal clears the entries of a block that lie on the matrix diagonal.
func zeroDiagonal(dst []float32, rowLo, rowHi, colLo, colHi int) {
	w := colHi - colLo
	for r := max(rowLo, colLo); r < min(rowHi, colHi); r++ {
		dst[(r-rowLo)*w+(r-colLo)] = 0
	}
}
