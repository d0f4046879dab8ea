package testutil

import (
	"math/rand"
	"slices"
	"sync"
)

// Pair is one (distance, neighbor id) entry of a ground-truth row.
type Pair struct {
	Dist float32
	Col  int32
}

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Perm returns a pseudo-random permutation of [0,n) as int32 ids.
func (r *RNG) Perm(n int) []int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.rand.Perm(n)
	out := make([]int32, n)
	for i, v := range p {
		out[i] = int32(v)
	}
	return out
}

// UniformPoints generates num points of the given dimension in a single
// row-major array with values in [0, 1).
func (r *RNG) UniformPoints(num, dimensions int) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]float32, num*dimensions)
	for i := range data {
		data[i] = r.rand.Float32()
	}
	return data
}

// ClusteredPoints generates num points around clusters random centers with
// the given spread.
func (r *RNG) ClusteredPoints(num, dimensions, clusters int, spread float32) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	centers := make([]float32, clusters*dimensions)
	for i := range centers {
		centers[i] = r.rand.Float32() * 10
	}

	data := make([]float32, num*dimensions)
	for i := range num {
		c := r.rand.Intn(clusters)
		for j := range dimensions {
			data[i*dimensions+j] = centers[c*dimensions+j] + float32(r.rand.NormFloat64())*spread
		}
	}
	return data
}

// SquaredDistances computes the dense n x n matrix of squared Euclidean
// distances, accumulating in float64. The diagonal is exactly zero.
func SquaredDistances(points []float32, n, dim int) []float32 {
	out := make([]float32, n*n)
	for i := range n {
		a := points[i*dim : (i+1)*dim]
		for j := range n {
			if i == j {
				continue
			}
			b := points[j*dim : (j+1)*dim]
			var s float64
			for d := range dim {
				diff := float64(a[d]) - float64(b[d])
				s += diff * diff
			}
			out[i*n+j] = float32(s)
		}
	}
	return out
}

// Block copies rows [rowLo,rowHi) x cols [colLo,colHi) out of a dense n x n
// matrix into a fresh row-major block.
func Block(dist []float32, n, rowLo, rowHi, colLo, colHi int) []float32 {
	w := colHi - colLo
	out := make([]float32, (rowHi-rowLo)*w)
	for r := rowLo; r < rowHi; r++ {
		copy(out[(r-rowLo)*w:], dist[r*n+colLo:r*n+colHi])
	}
	return out
}

// ExactTopK returns, for every row of a dense n x n matrix, the k smallest
// (distance, column) pairs in ascending order with ties broken by column.
func ExactTopK(dist []float32, n, k int) [][]Pair {
	out := make([][]Pair, n)
	for i := range n {
		row := make([]Pair, n)
		for j := range n {
			row[j] = Pair{Dist: dist[i*n+j], Col: int32(j)}
		}
		slices.SortFunc(row, ComparePairs)
		out[i] = row[:k]
	}
	return out
}

// ComparePairs orders pairs by distance, then column.
func ComparePairs(a, b Pair) int {
	switch {
	case a.Dist < b.Dist:
		return -1
	case a.Dist > b.Dist:
		return 1
	case a.Col < b.Col:
		return -1
	case a.Col > b.Col:
		return 1
	}
	return 0
}

// Contains reports whether ids contains v.
func Contains(ids []int32, v int32) bool {
	return slices.Contains(ids, v)
}
