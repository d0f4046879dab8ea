package model

// Edges holds COO triples as parallel arrays. Entry i is the edge
// Rows[i] -> Cols[i] with weight or distance Data[i].
type Edges struct {
	Data []float32
	Cols []int32
	Rows []int32
}

// Len returns the number of triples, i.e. the shortest of the three arrays.
func (e Edges) Len() int {
	return min(len(e.Data), len(e.Cols), len(e.Rows))
}

// Head returns the first n triples without copying.
func (e Edges) Head(n int) Edges {
	return Edges{
		Data: e.Data[:n],
		Cols: e.Cols[:n],
		Rows: e.Rows[:n],
	}
}

// Set writes triple i.
func (e Edges) Set(i int, d float32, col, row int32) {
	e.Data[i] = d
	e.Cols[i] = col
	e.Rows[i] = row
}
