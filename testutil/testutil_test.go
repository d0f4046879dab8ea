package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)

	p := rng.UniformPoints(8, 3)
	require.Len(t, p, 24)
	for _, v := range p {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestSquaredDistances(t *testing.T) {
	pts := []float32{0, 0, 3, 4, 6, 8}
	d := SquaredDistances(pts, 3, 2)

	assert.Equal(t, []float32{
		0, 25, 100,
		25, 0, 25,
		100, 25, 0,
	}, d)
}

func TestExactTopK(t *testing.T) {
	pts := []float32{0, 1, 3, 7}
	d := SquaredDistances(pts, 4, 1)
	top := ExactTopK(d, 4, 2)

	assert.Equal(t, []Pair{{0, 0}, {1, 1}}, top[0])
	assert.Equal(t, []Pair{{0, 1}, {1, 0}}, top[1])
	assert.Equal(t, []Pair{{0, 2}, {4, 1}}, top[2])
	assert.Equal(t, []Pair{{0, 3}, {16, 2}}, top[3])
}

func TestBlock(t *testing.T) {
	d := []float32{
		0, 1, 2,
		3, 4, 5,
		6, 7, 8,
	}
	assert.Equal(t, []float32{4, 5, 7, 8}, Block(d, 3, 1, 3, 1, 3))
}

func TestPerm(t *testing.T) {
	p := NewRNG(1).Perm(10)
	require.Len(t, p, 10)
	seen := map[int32]bool{}
	for _, v := range p {
		seen[v] = true
	}
	assert.Len(t, seen, 10)
	assert.True(t, Contains(p, 9))
}
