package knn

import (
	"fmt"
	"strings"
)

// Neighbor is one (distance, id) entry, used in diagnostics.
type Neighbor struct {
	Dist float32
	Col  int32
}

// RowInconsistencyError reports a row that cannot produce exactly K valid,
// unique neighbors. It typically means k exceeds the number of columns
// pushed, a tile was pushed twice, or the list buffers were not initialized
// by a Merger.
type RowInconsistencyError struct {
	Row      int
	Expected int
	Actual   int
	Reason   string
	Entries  []Neighbor
}

func (e *RowInconsistencyError) Error() string {
	return fmt.Sprintf("inconsistent neighbor row %d: %s: expected %d entries, got %d", e.Row, e.Reason, e.Expected, e.Actual)
}

// Dump renders the offending heap contents, one "dist - col" pair per line.
func (e *RowInconsistencyError) Dump() string {
	var sb strings.Builder
	for _, n := range e.Entries {
		fmt.Fprintf(&sb, "%f - %d\n", n.Dist, n.Col)
	}
	return sb.String()
}
