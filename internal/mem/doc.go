// Package mem allocates slices whose first element starts on a cache-line
// boundary. Distance tiles and per-worker scratch arenas use it so that a
// worker's slot never begins in the middle of a line another worker writes.
package mem
