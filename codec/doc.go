// Package codec serializes CSR graphs into a compact, self-describing byte form.
//
// # Format
//
// All integers are little-endian.
//
//	magic       [4]byte  "MFLD"
//	version     uint16
//	compression uint8    (None, LZ4, ZSTD)
//	stored      uint8    1 when the payload is kept uncompressed
//	rows        uint64
//	nnz         uint64
//	rawSize     uint64   payload size before compression
//	payloadSize uint64   payload size as stored
//	checksum    uint32   CRC32-C of the uncompressed payload
//	payload     rowPtr (rows+1 x uint64) | colInd (nnz x int32) | data (nnz x float32)
//
// When compression would not shrink the payload by at least 10% the payload is
// stored raw and the stored flag is set. Decode verifies the checksum and the
// graph's structure before returning it.
package codec
