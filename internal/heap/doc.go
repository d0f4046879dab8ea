// Package heap implements a fixed-capacity max-heap over caller-owned slices
// of (distance, column) items.
//
// The heap never allocates: it operates in place on the slice it is given, so
// a worker can reuse one scratch slot for every row it processes. Ordering is
// lexicographic on (Dist, Col), which makes the k smallest items of any
// sequence unique and therefore independent of the order they arrive in.
package heap
