// Package conv provides checked integer conversions.
//
// Vertex ids are stored as int32 while offsets and counts are int. These
// helpers check the narrowing at API boundaries and when decoding headers.
package conv
