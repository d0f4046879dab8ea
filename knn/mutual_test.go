package knn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/manifold/model"
	"github.com/hupe1980/manifold/parallel"
	"github.com/hupe1980/manifold/testutil"
)

func TestMutualizeSymmetric_Small(t *testing.T) {
	// k=2, 4 vertices:
	//   0 -> 1      1 -> 0      2 -> 1      3 -> 2
	// mutual pairs: (0,1). 2->1 is not reciprocated, 3->2 is not either.
	e := model.Edges{
		Data: []float32{0, 1, 0, 1, 0, 2, 0, 3},
		Cols: []int32{0, 1, 1, 0, 2, 1, 3, 2},
		Rows: make([]int32, 8),
	}

	n, err := MutualizeSymmetric(e, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []int32{0, 0, 1, 1, 2, 3}, e.Rows[:n])
	assert.Equal(t, []int32{0, 1, 1, 0, 2, 3}, e.Cols[:n])
	assert.Equal(t, []float32{0, 1, 0, 1, 0, 0}, e.Data[:n])
}

func TestMutualize_Small(t *testing.T) {
	e := model.Edges{
		Data: []float32{0, 1, 0, 1, 0, 2, 0, 3},
		Cols: []int32{0, 1, 1, 0, 2, 1, 3, 2},
		Rows: make([]int32, 8),
	}

	n, err := Mutualize(e, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []int32{0, 0, 1, 2, 3}, e.Rows[:n])
	assert.Equal(t, []int32{0, 1, 1, 2, 3}, e.Cols[:n])
	assert.Equal(t, []float32{0, 1, 0, 0, 0}, e.Data[:n])
}

func TestMutualize_Property(t *testing.T) {
	const n, dim, k = 60, 3, 5
	rng := testutil.NewRNG(99)
	dist := testutil.SquaredDistances(rng.ClusteredPoints(n, dim, 4, 0.3), n, dim)

	m, list := build(t, dist, n, k, []int{16, 16, 16, 12}, parallel.New(4))
	require.NoError(t, m.Finalize(list, 0))

	neighbors := make([][]int32, n)
	for r := range n {
		_, ids := list.Row(r)
		neighbors[r] = append([]int32(nil), ids...)
	}

	for _, symmetric := range []bool{false, true} {
		data := append([]float32(nil), list.Data...)
		cols := append([]int32(nil), list.Cols...)
		rows := make([]int32, n*k)
		require.NoError(t, FillRows(rows, k, 0))
		e := NeighborList{K: k, Data: data, Cols: cols}.Edges(rows)

		fn := Mutualize
		if symmetric {
			fn = MutualizeSymmetric
		}
		cnt, err := fn(e, k)
		require.NoError(t, err)

		got := map[[2]int32]bool{}
		selfLoops := make([]int, n)
		for i := range cnt {
			r, c := e.Rows[i], e.Cols[i]
			if r == c {
				selfLoops[r]++
				assert.Equal(t, float32(0), e.Data[i])
				continue
			}
			if !symmetric {
				assert.Less(t, r, c, "pairs are emitted from the lower row")
			}
			assert.False(t, got[[2]int32{r, c}], "edge (%d,%d) emitted twice", r, c)
			got[[2]int32{r, c}] = true
		}

		for v := range n {
			assert.Equal(t, 1, selfLoops[v], "vertex %d", v)
		}

		for i := range int32(n) {
			for j := range int32(n) {
				if i == j {
					continue
				}
				want := testutil.Contains(neighbors[i], j) && testutil.Contains(neighbors[j], i)
				if !symmetric && i > j {
					want = false
				}
				assert.Equal(t, want, got[[2]int32{i, j}], "edge (%d,%d) symmetric=%v", i, j, symmetric)
			}
		}

		// Output stays row-major.
		for i := 1; i < cnt; i++ {
			assert.LessOrEqual(t, e.Rows[i-1], e.Rows[i])
		}
	}
}

func TestMutualize_Contract(t *testing.T) {
	e := model.Edges{
		Data: make([]float32, 4),
		Cols: []int32{0, 5, 1, 0},
		Rows: make([]int32, 4),
	}
	_, err := Mutualize(e, 2)
	var oor *model.IndexOutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 1, oor.Position)

	_, err = Mutualize(e, 3)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	_, err = Mutualize(e, 0)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}
