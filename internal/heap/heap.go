package heap

import "cmp"

// Item is a candidate neighbor.
type Item struct {
	Dist float32
	Col  int32
}

// Less reports whether a sorts before b.
func Less(a, b Item) bool {
	if a.Dist != b.Dist {
		return a.Dist < b.Dist
	}
	return a.Col < b.Col
}

// Compare orders items ascending; suitable for slices.SortFunc.
func Compare(a, b Item) int {
	if c := cmp.Compare(a.Dist, b.Dist); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}

// Init establishes the max-heap invariant on h in O(len(h)).
func Init(h []Item) {
	for i := len(h)/2 - 1; i >= 0; i-- {
		siftDown(h, i, len(h))
	}
}

// PushBounded offers it to a full heap: when it sorts before the root (the
// current worst), the root is replaced and the heap repaired. It reports
// whether the item was taken.
func PushBounded(h []Item, it Item) bool {
	if len(h) == 0 || !Less(it, h[0]) {
		return false
	}
	h[0] = it
	siftDown(h, 0, len(h))
	return true
}

// Sort turns a valid max-heap into ascending order in place.
func Sort(h []Item) {
	for end := len(h) - 1; end > 0; end-- {
		h[0], h[end] = h[end], h[0]
		siftDown(h, 0, end)
	}
}

// Valid reports whether h satisfies the max-heap invariant.
func Valid(h []Item) bool {
	for i := 1; i < len(h); i++ {
		if Less(h[(i-1)/2], h[i]) {
			return false
		}
	}
	return true
}

// siftDown moves the element at index i down until the invariant holds within h[:n].
func siftDown(h []Item, i, n int) {
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		child := left
		if right := left + 1; right < n && Less(h[left], h[right]) {
			child = right
		}
		if !Less(h[i], h[child]) {
			return
		}
		h[i], h[child] = h[child], h[i]
		i = child
	}
}
